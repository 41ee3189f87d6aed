package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/xaysimo/xaysimo/internal/apperrors"
	"github.com/xaysimo/xaysimo/internal/core/domain"
	portssvc "github.com/xaysimo/xaysimo/internal/core/ports/services"
	"github.com/xaysimo/xaysimo/internal/csvio"
	"github.com/xaysimo/xaysimo/internal/dto"
	"github.com/xaysimo/xaysimo/internal/middleware"
	"github.com/xaysimo/xaysimo/internal/store"
)

// ProductService manages the catalog and its CSV import/export.
type ProductService struct {
	store *store.Store
}

var _ portssvc.ProductSvcFacade = (*ProductService)(nil)

func NewProductService(s *store.Store) *ProductService {
	return &ProductService{store: s}
}

func (s *ProductService) CreateProduct(ctx context.Context, req dto.CreateProductRequest, actor string) (*domain.Product, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	product := domain.Product{
		ID:        uuid.NewString(),
		Name:      req.Name,
		SKU:       req.SKU,
		Barcode:   req.Barcode,
		CostPrice: req.CostPrice,
		SellPrice: req.SellPrice,
		Stock:     req.Stock,
		Category:  req.Category,
		Image:     req.Image,
	}

	_, err := s.store.Update(ctx, func(doc *domain.AppData) error {
		doc.Products = append(doc.Products, product)
		appendAudit(doc, actor, "Product Created", fmt.Sprintf("Added %s to the catalog", product.Name), time.Now().UTC())
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Product created", slog.String("product_id", product.ID), slog.String("name", product.Name))
	return &product, nil
}

func (s *ProductService) UpdateProduct(ctx context.Context, productID string, req dto.UpdateProductRequest, actor string) (*domain.Product, error) {
	var updated domain.Product
	_, err := s.store.Update(ctx, func(doc *domain.AppData) error {
		product := doc.ProductByID(productID)
		if product == nil {
			return fmt.Errorf("%w: product %s", apperrors.ErrNotFound, productID)
		}
		if req.Name != nil {
			product.Name = *req.Name
		}
		if req.SKU != nil {
			product.SKU = *req.SKU
		}
		if req.Barcode != nil {
			product.Barcode = *req.Barcode
		}
		if req.CostPrice != nil {
			product.CostPrice = *req.CostPrice
		}
		if req.SellPrice != nil {
			product.SellPrice = *req.SellPrice
		}
		if req.Stock != nil {
			product.Stock = *req.Stock
		}
		if req.Category != nil {
			product.Category = *req.Category
		}
		if req.Image != nil {
			product.Image = *req.Image
		}
		appendAudit(doc, actor, "Product Updated", fmt.Sprintf("Edited %s", product.Name), time.Now().UTC())
		updated = *product
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *ProductService) DeleteProduct(ctx context.Context, productID string, actor string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	_, err := s.store.Update(ctx, func(doc *domain.AppData) error {
		product := doc.ProductByID(productID)
		if product == nil {
			return fmt.Errorf("%w: product %s", apperrors.ErrNotFound, productID)
		}
		name := product.Name

		out := doc.Products[:0]
		for _, p := range doc.Products {
			if p.ID != productID {
				out = append(out, p)
			}
		}
		doc.Products = out

		appendAudit(doc, actor, "Product Deleted", fmt.Sprintf("Removed %s from the catalog", name), time.Now().UTC())
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info("Product deleted", slog.String("product_id", productID))
	return nil
}

func (s *ProductService) GetProduct(ctx context.Context, productID string) (*domain.Product, error) {
	product := s.store.Snapshot().ProductByID(productID)
	if product == nil {
		return nil, fmt.Errorf("%w: product %s", apperrors.ErrNotFound, productID)
	}
	out := *product
	return &out, nil
}

func (s *ProductService) ListProducts(ctx context.Context) []domain.Product {
	return s.store.Snapshot().Products
}

// ImportCSV appends the parsed rows to the catalog and returns how many were
// added. A parse failure rejects the whole file; no rows are applied.
func (s *ProductService) ImportCSV(ctx context.Context, r io.Reader, actor string) (int, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	imported, err := csvio.ReadProducts(r)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	_, err = s.store.Update(ctx, func(doc *domain.AppData) error {
		for i := range imported {
			imported[i].ID = uuid.NewString()
		}
		doc.Products = append(doc.Products, imported...)
		appendAudit(doc, actor, "Products Imported", fmt.Sprintf("Imported %d products from CSV", len(imported)), time.Now().UTC())
		return nil
	})
	if err != nil {
		return 0, err
	}

	logger.Info("Product CSV imported", slog.Int("count", len(imported)))
	return len(imported), nil
}

func (s *ProductService) ExportCSV(ctx context.Context, w io.Writer) error {
	return csvio.WriteProducts(w, s.store.Snapshot().Products)
}
