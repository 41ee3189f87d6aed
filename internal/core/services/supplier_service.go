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

// SupplierService manages vendors and settles their payable balances.
type SupplierService struct {
	store *store.Store
}

var _ portssvc.SupplierSvcFacade = (*SupplierService)(nil)

func NewSupplierService(s *store.Store) *SupplierService {
	return &SupplierService{store: s}
}

func (s *SupplierService) CreateSupplier(ctx context.Context, req dto.CreateSupplierRequest, actor string) (*domain.Supplier, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	supplier := domain.Supplier{
		ID:      uuid.NewString(),
		Name:    req.Name,
		Contact: req.Contact,
		Phone:   req.Phone,
	}

	_, err := s.store.Update(ctx, func(doc *domain.AppData) error {
		doc.Suppliers = append(doc.Suppliers, supplier)
		appendAudit(doc, actor, "Supplier Created", fmt.Sprintf("Registered %s", supplier.Name), time.Now().UTC())
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Supplier created", slog.String("supplier_id", supplier.ID))
	return &supplier, nil
}

func (s *SupplierService) DeleteSupplier(ctx context.Context, supplierID string, actor string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	_, err := s.store.Update(ctx, func(doc *domain.AppData) error {
		supplier := doc.SupplierByID(supplierID)
		if supplier == nil {
			return fmt.Errorf("%w: supplier %s", apperrors.ErrNotFound, supplierID)
		}
		if supplier.Balance.IsPositive() {
			return fmt.Errorf("%w: %s is still owed %s", apperrors.ErrValidation, supplier.Name, supplier.Balance.StringFixed(2))
		}
		name := supplier.Name

		out := doc.Suppliers[:0]
		for _, sp := range doc.Suppliers {
			if sp.ID != supplierID {
				out = append(out, sp)
			}
		}
		doc.Suppliers = out

		appendAudit(doc, actor, "Supplier Deleted", fmt.Sprintf("Removed %s", name), time.Now().UTC())
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info("Supplier deleted", slog.String("supplier_id", supplierID))
	return nil
}

func (s *SupplierService) ListSuppliers(ctx context.Context) []domain.Supplier {
	return s.store.Snapshot().Suppliers
}

// PaySupplier settles part of a payable balance from a funding account.
func (s *SupplierService) PaySupplier(ctx context.Context, supplierID string, req dto.SupplierPaymentRequest, actor string) (*domain.Supplier, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: payment amount must be positive", apperrors.ErrValidation)
	}

	var updated domain.Supplier
	_, err := s.store.Update(ctx, func(doc *domain.AppData) error {
		supplier := doc.SupplierByID(supplierID)
		if supplier == nil {
			return fmt.Errorf("%w: supplier %s", apperrors.ErrNotFound, supplierID)
		}
		if req.Amount.GreaterThan(supplier.Balance) {
			return fmt.Errorf("%w: amount exceeds payable balance of %s", apperrors.ErrValidation, supplier.Balance.StringFixed(2))
		}
		account := doc.AccountByID(req.AccountID)
		if account == nil {
			return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, req.AccountID)
		}
		if account.Balance.LessThan(req.Amount) {
			return fmt.Errorf("%w: %s holds %s, payment is %s",
				apperrors.ErrInsufficientFunds, account.Name, account.Balance.StringFixed(2), req.Amount.StringFixed(2))
		}

		if err := applyPostings(doc, ledgerEvent{
			kind:      eventSupplierPayment,
			amount:    req.Amount,
			accountID: req.AccountID,
		}); err != nil {
			return err
		}
		supplier.Balance = floorZero(supplier.Balance.Sub(req.Amount))

		appendAudit(doc, actor, "Supplier Payment",
			fmt.Sprintf("Paid %s to %s, balance now %s", req.Amount.StringFixed(2), supplier.Name, supplier.Balance.StringFixed(2)), time.Now().UTC())
		updated = *supplier
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Supplier paid",
		slog.String("supplier_id", supplierID),
		slog.String("amount", req.Amount.String()))
	return &updated, nil
}
