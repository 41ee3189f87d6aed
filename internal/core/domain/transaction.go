package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType distinguishes the kinds of entries in the transaction log.
type TransactionType string

const (
	TxSale        TransactionType = "SALE"
	TxReturn      TransactionType = "RETURN"
	TxDebtPayment TransactionType = "DEBT_PAYMENT"
)

// Transaction is an immutable record in the transaction log. It carries a full
// snapshot of its item lines so that deletion can reverse stock, account and
// customer effects from the record alone.
type Transaction struct {
	ID           string          `json:"id"`
	Items        []CartItem      `json:"items"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	Tax          decimal.Decimal `json:"tax"`
	Total        decimal.Decimal `json:"total"`
	Currency     string          `json:"currency"`
	ExchangeRate decimal.Decimal `json:"exchangeRate"`
	Payment      Payment         `json:"payment"`
	AccountID    string          `json:"accountId,omitempty"`
	CustomerID   string          `json:"customerId,omitempty"`
	Timestamp    time.Time       `json:"timestamp"`
	Type         TransactionType `json:"type"`
}

// Expense is a recorded business cost funded from a named account.
// Deleting an expense refunds its amount back to that account.
type Expense struct {
	ID          string          `json:"id"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	Timestamp   time.Time       `json:"timestamp"`
	AccountID   string          `json:"accountId"`
	Receipt     string          `json:"receipt,omitempty"`
}
