package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/xaysimo/xaysimo/internal/apperrors"
	"github.com/xaysimo/xaysimo/internal/core/domain"
	portssvc "github.com/xaysimo/xaysimo/internal/core/ports/services"
	"github.com/xaysimo/xaysimo/internal/dto"
	"github.com/xaysimo/xaysimo/internal/middleware"
	"github.com/xaysimo/xaysimo/internal/platform/config"
	"github.com/xaysimo/xaysimo/internal/store"
)

// PurchaseService records stock-in events. Cash purchases debit a funding
// account under the configured funds policy; credit purchases post to the
// supplier's payable balance instead and are settled later by PaySupplier.
type PurchaseService struct {
	store       *store.Store
	fundsPolicy string
}

var _ portssvc.PurchaseSvcFacade = (*PurchaseService)(nil)

func NewPurchaseService(s *store.Store, fundsPolicy string) *PurchaseService {
	return &PurchaseService{store: s, fundsPolicy: fundsPolicy}
}

func (s *PurchaseService) RecordPurchase(ctx context.Context, req dto.PurchaseRequest, actor string) (*dto.PurchaseResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", apperrors.ErrValidation)
	}
	if req.UnitCost.IsNegative() {
		return nil, fmt.Errorf("%w: unit cost cannot be negative", apperrors.ErrValidation)
	}

	var resp dto.PurchaseResponse
	_, err := s.store.Update(ctx, func(doc *domain.AppData) error {
		product := doc.ProductByID(req.ProductID)
		if product == nil {
			return fmt.Errorf("%w: product %s", apperrors.ErrNotFound, req.ProductID)
		}

		now := time.Now().UTC()
		totalCost := req.UnitCost.Mul(decimal.NewFromInt(req.Quantity))

		supplierID := req.SupplierID
		supplierDetail := ""
		if req.OnCredit {
			supplier, err := resolveSupplier(doc, req.SupplierID, req.SupplierName)
			if err != nil {
				return err
			}
			supplier.Balance = supplier.Balance.Add(totalCost)
			supplierID = supplier.ID
			supplierDetail = fmt.Sprintf(" on credit from %s", supplier.Name)
		} else {
			account := doc.AccountByID(req.AccountID)
			if account == nil {
				return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, req.AccountID)
			}
			if account.Balance.LessThan(totalCost) {
				if s.fundsPolicy == config.FundsPolicyBlock {
					return fmt.Errorf("%w: %s holds %s, purchase costs %s",
						apperrors.ErrInsufficientFunds, account.Name, account.Balance.StringFixed(2), totalCost.StringFixed(2))
				}
				resp.FundsWarning = fmt.Sprintf("%s balance %s is below the purchase cost %s",
					account.Name, account.Balance.StringFixed(2), totalCost.StringFixed(2))
			}
			if err := applyPostings(doc, ledgerEvent{
				kind:      eventPurchase,
				amount:    totalCost,
				accountID: req.AccountID,
			}); err != nil {
				return err
			}
		}

		product.Stock += req.Quantity
		if req.UnitCost.IsPositive() {
			product.CostPrice = req.UnitCost
		}

		adjustment := domain.StockAdjustment{
			ID:          uuid.NewString(),
			ProductID:   product.ID,
			ProductName: product.Name,
			Type:        domain.AdjustStockIn,
			Quantity:    req.Quantity,
			UnitCost:    req.UnitCost,
			Timestamp:   now,
			Reason:      "Purchase",
			SupplierID:  supplierID,
			OnCredit:    req.OnCredit,
		}
		doc.StockAdjustments = append(doc.StockAdjustments, adjustment)

		appendAudit(doc, actor, "Purchase",
			fmt.Sprintf("Stocked %d x %s for %s%s", req.Quantity, product.Name, totalCost.StringFixed(2), supplierDetail), now)

		resp.Adjustment = adjustment
		resp.TotalCost = totalCost
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Purchase recorded",
		slog.String("product_id", req.ProductID),
		slog.Int64("quantity", req.Quantity),
		slog.String("total_cost", resp.TotalCost.String()),
		slog.Bool("on_credit", req.OnCredit))
	return &resp, nil
}

// resolveSupplier finds the payable counterparty of a credit purchase: by id
// when given, otherwise by name, creating the supplier on first mention.
func resolveSupplier(doc *domain.AppData, supplierID, supplierName string) (*domain.Supplier, error) {
	if supplierID != "" {
		supplier := doc.SupplierByID(supplierID)
		if supplier == nil {
			return nil, fmt.Errorf("%w: supplier %s", apperrors.ErrNotFound, supplierID)
		}
		return supplier, nil
	}
	if supplierName == "" {
		return nil, fmt.Errorf("%w: a credit purchase requires a supplier", apperrors.ErrValidation)
	}
	for i := range doc.Suppliers {
		if doc.Suppliers[i].Name == supplierName {
			return &doc.Suppliers[i], nil
		}
	}
	doc.Suppliers = append(doc.Suppliers, domain.Supplier{
		ID:   uuid.NewString(),
		Name: supplierName,
	})
	return &doc.Suppliers[len(doc.Suppliers)-1], nil
}
