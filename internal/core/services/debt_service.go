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

// DebtService collects outstanding customer debt into a destination account.
type DebtService struct {
	store *store.Store
}

var _ portssvc.DebtSvcFacade = (*DebtService)(nil)

func NewDebtService(s *store.Store) *DebtService {
	return &DebtService{store: s}
}

func (s *DebtService) ListDebtors(ctx context.Context) []domain.Customer {
	var debtors []domain.Customer
	for _, c := range s.store.Snapshot().Customers {
		if c.DebtBalance.IsPositive() {
			debtors = append(debtors, c)
		}
	}
	return debtors
}

func (s *DebtService) ReceivePayment(ctx context.Context, req dto.DebtPaymentRequest, actor string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: payment amount must be positive", apperrors.ErrValidation)
	}
	if req.PaymentMethod == domain.Debt || req.PaymentMethod == domain.PartialPayment {
		return nil, fmt.Errorf("%w: debt cannot be settled with %s", apperrors.ErrValidation, req.PaymentMethod)
	}
	if !domain.ValidPaymentMethod(req.PaymentMethod) {
		return nil, fmt.Errorf("%w: unknown payment method %q", apperrors.ErrValidation, req.PaymentMethod)
	}

	var created domain.Transaction
	_, err := s.store.Update(ctx, func(doc *domain.AppData) error {
		customer := doc.CustomerByID(req.CustomerID)
		if customer == nil {
			return fmt.Errorf("%w: customer %s", apperrors.ErrNotFound, req.CustomerID)
		}
		if req.Amount.GreaterThan(customer.DebtBalance) {
			return fmt.Errorf("%w: amount exceeds outstanding debt of %s", apperrors.ErrValidation, customer.DebtBalance.StringFixed(2))
		}
		if doc.AccountByID(req.AccountID) == nil {
			return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, req.AccountID)
		}

		now := time.Now().UTC()
		if err := applyPostings(doc, ledgerEvent{
			kind:      eventDebtPayment,
			amount:    req.Amount,
			accountID: req.AccountID,
		}); err != nil {
			return err
		}

		customer.DebtBalance = floorZero(customer.DebtBalance.Sub(req.Amount))

		tx := domain.Transaction{
			ID:           uuid.NewString(),
			Items:        []domain.CartItem{},
			Subtotal:     req.Amount,
			Total:        req.Amount,
			Currency:     doc.Settings.DefaultCurrency,
			ExchangeRate: doc.Settings.ExchangeRate,
			Payment:      domain.Payment{Method: req.PaymentMethod},
			AccountID:    req.AccountID,
			CustomerID:   customer.ID,
			Timestamp:    now,
			Type:         domain.TxDebtPayment,
		}
		customer.History = append(customer.History, tx.ID)
		doc.Transactions = append(doc.Transactions, tx)

		appendAudit(doc, actor, "Debt Payment",
			fmt.Sprintf("Received %s from %s, balance now %s", req.Amount.StringFixed(2), customer.Name, customer.DebtBalance.StringFixed(2)), now)

		created = tx
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Debt payment recorded",
		slog.String("transaction_id", created.ID),
		slog.String("customer_id", created.CustomerID),
		slog.String("amount", created.Total.String()))
	return &created, nil
}
