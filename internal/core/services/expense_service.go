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

// ExpenseService records business costs against funding accounts. Deleting an
// expense refunds its full amount back to the account it was paid from.
type ExpenseService struct {
	store *store.Store
}

var _ portssvc.ExpenseSvcFacade = (*ExpenseService)(nil)

func NewExpenseService(s *store.Store) *ExpenseService {
	return &ExpenseService{store: s}
}

func (s *ExpenseService) CreateExpense(ctx context.Context, req dto.CreateExpenseRequest, actor string) (*domain.Expense, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: expense amount must be positive", apperrors.ErrValidation)
	}

	var created domain.Expense
	_, err := s.store.Update(ctx, func(doc *domain.AppData) error {
		account := doc.AccountByID(req.AccountID)
		if account == nil {
			return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, req.AccountID)
		}
		if account.Balance.LessThan(req.Amount) {
			return fmt.Errorf("%w: %s holds %s, expense is %s",
				apperrors.ErrInsufficientFunds, account.Name, account.Balance.StringFixed(2), req.Amount.StringFixed(2))
		}

		now := time.Now().UTC()
		if err := applyPostings(doc, ledgerEvent{
			kind:      eventExpense,
			amount:    req.Amount,
			accountID: req.AccountID,
		}); err != nil {
			return err
		}

		currency := req.Currency
		if currency == "" {
			currency = doc.Settings.DefaultCurrency
		}

		expense := domain.Expense{
			ID:          uuid.NewString(),
			Category:    req.Category,
			Description: req.Description,
			Amount:      req.Amount,
			Currency:    currency,
			Timestamp:   now,
			AccountID:   req.AccountID,
			Receipt:     req.Receipt,
		}
		doc.Expenses = append(doc.Expenses, expense)

		appendAudit(doc, actor, "Expense Added",
			fmt.Sprintf("%s: %s %s from %s", expense.Description, expense.Amount.StringFixed(2), currency, account.Name), now)

		created = expense
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Expense recorded",
		slog.String("expense_id", created.ID),
		slog.String("amount", created.Amount.String()))
	return &created, nil
}

func (s *ExpenseService) DeleteExpense(ctx context.Context, expenseID string, actor string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	_, err := s.store.Update(ctx, func(doc *domain.AppData) error {
		expense := doc.ExpenseByID(expenseID)
		if expense == nil {
			return fmt.Errorf("%w: expense %s", apperrors.ErrNotFound, expenseID)
		}

		if err := applyPostings(doc, ledgerEvent{
			kind:      eventExpenseRefund,
			amount:    expense.Amount,
			accountID: expense.AccountID,
		}); err != nil {
			return err
		}

		description := expense.Description
		amount := expense.Amount

		out := doc.Expenses[:0]
		for _, e := range doc.Expenses {
			if e.ID != expenseID {
				out = append(out, e)
			}
		}
		doc.Expenses = out

		appendAudit(doc, actor, "Expense Deleted",
			fmt.Sprintf("Refunded %s for %s", amount.StringFixed(2), description), time.Now().UTC())
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info("Expense deleted", slog.String("expense_id", expenseID))
	return nil
}

func (s *ExpenseService) ListExpenses(ctx context.Context) []domain.Expense {
	return s.store.Snapshot().Expenses
}
