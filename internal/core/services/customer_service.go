package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/xaysimo/xaysimo/internal/apperrors"
	"github.com/xaysimo/xaysimo/internal/core/domain"
	portssvc "github.com/xaysimo/xaysimo/internal/core/ports/services"
	"github.com/xaysimo/xaysimo/internal/dto"
	"github.com/xaysimo/xaysimo/internal/middleware"
	"github.com/xaysimo/xaysimo/internal/store"
)

// CustomerService manages customer profiles. The phone number is the natural
// key and doubles as the record id.
type CustomerService struct {
	store *store.Store
}

var _ portssvc.CustomerSvcFacade = (*CustomerService)(nil)

func NewCustomerService(s *store.Store) *CustomerService {
	return &CustomerService{store: s}
}

func (s *CustomerService) CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest, actor string) (*domain.Customer, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	customer := domain.Customer{
		ID:      req.Phone,
		Name:    req.Name,
		Phone:   req.Phone,
		Photo:   req.Photo,
		History: []string{},
	}

	_, err := s.store.Update(ctx, func(doc *domain.AppData) error {
		if doc.CustomerByID(customer.ID) != nil {
			return fmt.Errorf("%w: a customer with phone %s already exists", apperrors.ErrDuplicate, req.Phone)
		}
		doc.Customers = append(doc.Customers, customer)
		appendAudit(doc, actor, "Customer Created", fmt.Sprintf("Registered %s (%s)", customer.Name, customer.Phone), time.Now().UTC())
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Customer created", slog.String("customer_id", customer.ID))
	return &customer, nil
}

func (s *CustomerService) UpdateCustomer(ctx context.Context, customerID string, req dto.UpdateCustomerRequest, actor string) (*domain.Customer, error) {
	var updated domain.Customer
	_, err := s.store.Update(ctx, func(doc *domain.AppData) error {
		customer := doc.CustomerByID(customerID)
		if customer == nil {
			return fmt.Errorf("%w: customer %s", apperrors.ErrNotFound, customerID)
		}
		if req.Name != nil {
			customer.Name = *req.Name
		}
		if req.Photo != nil {
			customer.Photo = *req.Photo
		}
		appendAudit(doc, actor, "Customer Updated", fmt.Sprintf("Edited %s", customer.Name), time.Now().UTC())
		updated = *customer
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *CustomerService) DeleteCustomer(ctx context.Context, customerID string, actor string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	_, err := s.store.Update(ctx, func(doc *domain.AppData) error {
		customer := doc.CustomerByID(customerID)
		if customer == nil {
			return fmt.Errorf("%w: customer %s", apperrors.ErrNotFound, customerID)
		}
		if customer.DebtBalance.IsPositive() {
			return fmt.Errorf("%w: customer still owes %s", apperrors.ErrValidation, customer.DebtBalance.StringFixed(2))
		}
		name := customer.Name

		out := doc.Customers[:0]
		for _, c := range doc.Customers {
			if c.ID != customerID {
				out = append(out, c)
			}
		}
		doc.Customers = out

		appendAudit(doc, actor, "Customer Deleted", fmt.Sprintf("Removed %s", name), time.Now().UTC())
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info("Customer deleted", slog.String("customer_id", customerID))
	return nil
}

func (s *CustomerService) GetCustomer(ctx context.Context, customerID string) (*domain.Customer, error) {
	customer := s.store.Snapshot().CustomerByID(customerID)
	if customer == nil {
		return nil, fmt.Errorf("%w: customer %s", apperrors.ErrNotFound, customerID)
	}
	out := *customer
	return &out, nil
}

func (s *CustomerService) ListCustomers(ctx context.Context) []domain.Customer {
	return s.store.Snapshot().Customers
}
