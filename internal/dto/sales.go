package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/xaysimo/xaysimo/internal/core/domain"
)

// CartLine is one product line of a checkout request. The unit sell price is
// snapshotted client-side at the moment the line entered the cart.
type CartLine struct {
	ProductID string           `json:"productId" binding:"required"`
	Quantity  int64            `json:"quantity" binding:"required,gt=0"`
	SellPrice *decimal.Decimal `json:"sellPrice,omitempty"`
}

// PaymentSplitRequest carries the user-entered channel amounts of a partial
// payment. The amounts are deliberately not validated against the sale total.
type PaymentSplitRequest struct {
	Cash   decimal.Decimal `json:"cash"`
	Bank   decimal.Decimal `json:"bank"`
	Mobile decimal.Decimal `json:"mobile"`
}

// CheckoutRequest is the input of the sale handler.
type CheckoutRequest struct {
	Items         []CartLine           `json:"items" binding:"required,dive"`
	PaymentMethod domain.PaymentMethod `json:"paymentMethod" binding:"required"`
	AccountID     string               `json:"accountId,omitempty"`
	CustomerID    string               `json:"customerId,omitempty"`
	Split         *PaymentSplitRequest `json:"split,omitempty"`
	TaxRate       *decimal.Decimal     `json:"taxRate,omitempty"`
	Currency      string               `json:"currency,omitempty"`
}

// TransactionResponse mirrors a transaction log record.
type TransactionResponse struct {
	ID           string                 `json:"id"`
	Items        []domain.CartItem      `json:"items"`
	Subtotal     decimal.Decimal        `json:"subtotal"`
	Tax          decimal.Decimal        `json:"tax"`
	Total        decimal.Decimal        `json:"total"`
	Currency     string                 `json:"currency"`
	ExchangeRate decimal.Decimal        `json:"exchangeRate"`
	Payment      domain.Payment         `json:"payment"`
	AccountID    string                 `json:"accountId,omitempty"`
	CustomerID   string                 `json:"customerId,omitempty"`
	Timestamp    time.Time              `json:"timestamp"`
	Type         domain.TransactionType `json:"type"`
}

// NewTransactionResponse converts a domain transaction.
func NewTransactionResponse(tx domain.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:           tx.ID,
		Items:        tx.Items,
		Subtotal:     tx.Subtotal,
		Tax:          tx.Tax,
		Total:        tx.Total,
		Currency:     tx.Currency,
		ExchangeRate: tx.ExchangeRate,
		Payment:      tx.Payment,
		AccountID:    tx.AccountID,
		CustomerID:   tx.CustomerID,
		Timestamp:    tx.Timestamp,
		Type:         tx.Type,
	}
}

// DebtPaymentRequest is the input of the debt payment handler.
type DebtPaymentRequest struct {
	CustomerID    string               `json:"customerId" binding:"required"`
	Amount        decimal.Decimal      `json:"amount" binding:"required"`
	AccountID     string               `json:"accountId" binding:"required"`
	PaymentMethod domain.PaymentMethod `json:"paymentMethod" binding:"required"`
}
