package dto

import (
	"github.com/shopspring/decimal"
	"github.com/xaysimo/xaysimo/internal/core/domain"
)

// CreateCustomerRequest registers a customer; the phone number is the key.
type CreateCustomerRequest struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone" binding:"required"`
	Photo string `json:"photo,omitempty"`
}

// UpdateCustomerRequest carries optional customer updates.
type UpdateCustomerRequest struct {
	Name  *string `json:"name,omitempty"`
	Photo *string `json:"photo,omitempty"`
}

// CreateSupplierRequest registers a supplier.
type CreateSupplierRequest struct {
	Name    string `json:"name" binding:"required"`
	Contact string `json:"contact"`
	Phone   string `json:"phone" binding:"required"`
}

// SupplierPaymentRequest settles part of a supplier's payable balance from a
// funding account.
type SupplierPaymentRequest struct {
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	AccountID string          `json:"accountId" binding:"required"`
}

// CreateAccountRequest adds a ledger account to the chart of accounts.
type CreateAccountRequest struct {
	Name    string             `json:"name" binding:"required"`
	Type    domain.AccountType `json:"type" binding:"required"`
	Balance decimal.Decimal    `json:"balance"`
}

// UpdateAccountRequest carries optional account updates. Balance edits are
// allowed and can desynchronize the balance sheet; the advisory check in the
// balance-sheet report surfaces the drift.
type UpdateAccountRequest struct {
	Name    *string             `json:"name,omitempty"`
	Type    *domain.AccountType `json:"type,omitempty"`
	Balance *decimal.Decimal    `json:"balance,omitempty"`
}

// CreateExpenseRequest records a business cost against a funding account.
type CreateExpenseRequest struct {
	Category    string          `json:"category"`
	Description string          `json:"description" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Currency    string          `json:"currency,omitempty"`
	AccountID   string          `json:"accountId" binding:"required"`
	Receipt     string          `json:"receipt,omitempty"`
}
