package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/xaysimo/xaysimo/internal/apperrors"
	"github.com/xaysimo/xaysimo/internal/core/domain"
	portssvc "github.com/xaysimo/xaysimo/internal/core/ports/services"
	"github.com/xaysimo/xaysimo/internal/dto"
	"github.com/xaysimo/xaysimo/internal/middleware"
	"github.com/xaysimo/xaysimo/internal/store"
)

// AdjustmentService writes off stock losses and reverses them. The unit cost
// in effect at adjustment time is stored on the record, and the reversal
// values the restoration from it, so a loss followed by its reversal always
// nets to zero regardless of cost-price changes in between.
type AdjustmentService struct {
	store *store.Store
}

var _ portssvc.AdjustmentSvcFacade = (*AdjustmentService)(nil)

func NewAdjustmentService(s *store.Store) *AdjustmentService {
	return &AdjustmentService{store: s}
}

func (s *AdjustmentService) RecordLoss(ctx context.Context, req dto.AdjustmentRequest, actor string) (*domain.StockAdjustment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", apperrors.ErrValidation)
	}
	if !domain.ValidLossType(req.Type) {
		return nil, fmt.Errorf("%w: unknown adjustment type %q", apperrors.ErrValidation, req.Type)
	}

	var created domain.StockAdjustment
	_, err := s.store.Update(ctx, func(doc *domain.AppData) error {
		product := doc.ProductByID(req.ProductID)
		if product == nil {
			return fmt.Errorf("%w: product %s", apperrors.ErrNotFound, req.ProductID)
		}

		now := time.Now().UTC()
		adjustment := domain.StockAdjustment{
			ID:          uuid.NewString(),
			ProductID:   product.ID,
			ProductName: product.Name,
			Type:        req.Type,
			Quantity:    req.Quantity,
			UnitCost:    product.CostPrice,
			Timestamp:   now,
			Reason:      req.Reason,
		}

		product.Stock = max(0, product.Stock-req.Quantity)

		if err := applyPostings(doc, ledgerEvent{
			kind:        eventStockLoss,
			amount:      adjustment.Value(),
			lossAccount: req.Type.LossAccountName(),
		}); err != nil {
			return err
		}

		doc.StockAdjustments = append(doc.StockAdjustments, adjustment)
		appendAudit(doc, actor, "Stock Adjustment",
			fmt.Sprintf("Wrote off %d x %s as %s (%s)", req.Quantity, product.Name, req.Type, adjustment.Value().StringFixed(2)), now)

		created = adjustment
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Stock loss recorded",
		slog.String("adjustment_id", created.ID),
		slog.String("product_id", created.ProductID),
		slog.String("type", string(created.Type)))
	return &created, nil
}

func (s *AdjustmentService) ReverseAdjustment(ctx context.Context, adjustmentID string, actor string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	_, err := s.store.Update(ctx, func(doc *domain.AppData) error {
		adjustment := doc.AdjustmentByID(adjustmentID)
		if adjustment == nil {
			return fmt.Errorf("%w: adjustment %s", apperrors.ErrNotFound, adjustmentID)
		}
		if adjustment.Type == domain.AdjustStockIn {
			return fmt.Errorf("%w: purchases are reversed by deleting the purchase, not the stock record", apperrors.ErrValidation)
		}

		if product := doc.ProductByID(adjustment.ProductID); product != nil {
			product.Stock += adjustment.Quantity
		}

		if err := applyPostings(doc, ledgerEvent{
			kind:        eventStockLossReversal,
			amount:      adjustment.Value(),
			lossAccount: adjustment.Type.LossAccountName(),
		}); err != nil {
			return err
		}

		now := time.Now().UTC()
		appendAudit(doc, actor, "Adjustment Reversed",
			fmt.Sprintf("Restored %d x %s (%s)", adjustment.Quantity, adjustment.ProductName, adjustment.Value().StringFixed(2)), now)

		removeAdjustment(doc, adjustmentID)
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info("Stock adjustment reversed", slog.String("adjustment_id", adjustmentID))
	return nil
}

func (s *AdjustmentService) ListAdjustments(ctx context.Context) []domain.StockAdjustment {
	return s.store.Snapshot().StockAdjustments
}

func removeAdjustment(doc *domain.AppData, adjustmentID string) {
	out := doc.StockAdjustments[:0]
	for _, a := range doc.StockAdjustments {
		if a.ID != adjustmentID {
			out = append(out, a)
		}
	}
	doc.StockAdjustments = out
}
