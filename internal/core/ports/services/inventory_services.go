package services

import (
	"context"
	"io"

	"github.com/xaysimo/xaysimo/internal/core/domain"
	"github.com/xaysimo/xaysimo/internal/dto"
)

// ProductSvcFacade manages the product catalog.
type ProductSvcFacade interface {
	CreateProduct(ctx context.Context, req dto.CreateProductRequest, actor string) (*domain.Product, error)
	UpdateProduct(ctx context.Context, productID string, req dto.UpdateProductRequest, actor string) (*domain.Product, error)
	DeleteProduct(ctx context.Context, productID string, actor string) error
	GetProduct(ctx context.Context, productID string) (*domain.Product, error)
	ListProducts(ctx context.Context) []domain.Product
	ImportCSV(ctx context.Context, r io.Reader, actor string) (int, error)
	ExportCSV(ctx context.Context, w io.Writer) error
}

// PurchaseSvcFacade records inventory purchases (stock-in).
type PurchaseSvcFacade interface {
	RecordPurchase(ctx context.Context, req dto.PurchaseRequest, actor string) (*dto.PurchaseResponse, error)
}

// AdjustmentSvcFacade records stock losses and their reversals.
type AdjustmentSvcFacade interface {
	RecordLoss(ctx context.Context, req dto.AdjustmentRequest, actor string) (*domain.StockAdjustment, error)
	ReverseAdjustment(ctx context.Context, adjustmentID string, actor string) error
	ListAdjustments(ctx context.Context) []domain.StockAdjustment
}
