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

// AccountService manages the chart of accounts. Balances are maintained by
// the posting rules but remain directly editable, and deleting an account
// with a nonzero balance is permitted; the balance-sheet advisory surfaces
// the resulting drift rather than this service preventing it.
type AccountService struct {
	store *store.Store
}

var _ portssvc.AccountSvcFacade = (*AccountService)(nil)

func NewAccountService(s *store.Store) *AccountService {
	return &AccountService{store: s}
}

func (s *AccountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, actor string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !domain.ValidAccountType(req.Type) {
		return nil, fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, req.Type)
	}

	account := domain.Account{
		ID:      uuid.NewString(),
		Name:    req.Name,
		Type:    req.Type,
		Balance: req.Balance,
	}

	_, err := s.store.Update(ctx, func(doc *domain.AppData) error {
		if doc.AccountByName(req.Name) != nil {
			return fmt.Errorf("%w: an account named %q already exists", apperrors.ErrDuplicate, req.Name)
		}
		doc.Accounts = append(doc.Accounts, account)
		appendAudit(doc, actor, "Account Created", fmt.Sprintf("Added %s (%s)", account.Name, account.Type), time.Now().UTC())
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Account created", slog.String("account_id", account.ID), slog.String("name", account.Name))
	return &account, nil
}

func (s *AccountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, actor string) (*domain.Account, error) {
	if req.Type != nil && !domain.ValidAccountType(*req.Type) {
		return nil, fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, *req.Type)
	}

	var updated domain.Account
	_, err := s.store.Update(ctx, func(doc *domain.AppData) error {
		account := doc.AccountByID(accountID)
		if account == nil {
			return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
		}
		if req.Name != nil {
			account.Name = *req.Name
		}
		if req.Type != nil {
			account.Type = *req.Type
		}
		if req.Balance != nil {
			account.Balance = *req.Balance
		}
		appendAudit(doc, actor, "Account Updated", fmt.Sprintf("Edited %s", account.Name), time.Now().UTC())
		updated = *account
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *AccountService) DeleteAccount(ctx context.Context, accountID string, actor string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	_, err := s.store.Update(ctx, func(doc *domain.AppData) error {
		account := doc.AccountByID(accountID)
		if account == nil {
			return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
		}
		name := account.Name

		out := doc.Accounts[:0]
		for _, a := range doc.Accounts {
			if a.ID != accountID {
				out = append(out, a)
			}
		}
		doc.Accounts = out

		appendAudit(doc, actor, "Account Deleted", fmt.Sprintf("Removed %s", name), time.Now().UTC())
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info("Account deleted", slog.String("account_id", accountID))
	return nil
}

func (s *AccountService) GetAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	account := s.store.Snapshot().AccountByID(accountID)
	if account == nil {
		return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
	}
	out := *account
	return &out, nil
}

func (s *AccountService) ListAccounts(ctx context.Context) []domain.Account {
	return s.store.Snapshot().Accounts
}
