package domain

import (
	"github.com/shopspring/decimal"
)

// Customer tracks a buyer's debt and loyalty balances. The phone number is the
// natural key and doubles as the ID.
type Customer struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Phone         string          `json:"phone"`
	Photo         string          `json:"photo,omitempty"`
	DebtBalance   decimal.Decimal `json:"debtBalance"`
	LoyaltyPoints int64           `json:"loyaltyPoints"`
	History       []string        `json:"history"`
}

// Supplier tracks a vendor and its payable balance. The balance is populated
// only by credit purchases and settled by supplier payments.
type Supplier struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Contact string          `json:"contact"`
	Phone   string          `json:"phone"`
	Balance decimal.Decimal `json:"balance"`
}
