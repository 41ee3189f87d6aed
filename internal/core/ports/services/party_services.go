package services

import (
	"context"

	"github.com/xaysimo/xaysimo/internal/core/domain"
	"github.com/xaysimo/xaysimo/internal/dto"
)

// CustomerSvcFacade manages customer profiles.
type CustomerSvcFacade interface {
	CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest, actor string) (*domain.Customer, error)
	UpdateCustomer(ctx context.Context, customerID string, req dto.UpdateCustomerRequest, actor string) (*domain.Customer, error)
	DeleteCustomer(ctx context.Context, customerID string, actor string) error
	GetCustomer(ctx context.Context, customerID string) (*domain.Customer, error)
	ListCustomers(ctx context.Context) []domain.Customer
}

// SupplierSvcFacade manages suppliers and their payable balances.
type SupplierSvcFacade interface {
	CreateSupplier(ctx context.Context, req dto.CreateSupplierRequest, actor string) (*domain.Supplier, error)
	DeleteSupplier(ctx context.Context, supplierID string, actor string) error
	ListSuppliers(ctx context.Context) []domain.Supplier
	PaySupplier(ctx context.Context, supplierID string, req dto.SupplierPaymentRequest, actor string) (*domain.Supplier, error)
}

// AccountSvcFacade manages the chart of accounts. Deleting an account with a
// nonzero balance is allowed; the balance-sheet advisory flags the drift.
type AccountSvcFacade interface {
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, actor string) (*domain.Account, error)
	UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, actor string) (*domain.Account, error)
	DeleteAccount(ctx context.Context, accountID string, actor string) error
	GetAccount(ctx context.Context, accountID string) (*domain.Account, error)
	ListAccounts(ctx context.Context) []domain.Account
}

// ExpenseSvcFacade records and deletes business expenses. Deletion refunds
// the amount back to the funding account.
type ExpenseSvcFacade interface {
	CreateExpense(ctx context.Context, req dto.CreateExpenseRequest, actor string) (*domain.Expense, error)
	DeleteExpense(ctx context.Context, expenseID string, actor string) error
	ListExpenses(ctx context.Context) []domain.Expense
}
