package domain

import (
	"github.com/shopspring/decimal"
)

// AccountType classifies a ledger account for balance-sheet bucketing.
type AccountType string

const (
	Asset             AccountType = "Asset"
	FixedAsset        AccountType = "Fixed Asset"
	Equity            AccountType = "Equity"
	OtherCurrentAsset AccountType = "Other Current Asset"
	Liability         AccountType = "Liability"
)

// Well-known account names referenced by the posting rules. The seed document
// creates all of them; users may add more accounts but these are looked up by name.
const (
	AccountNameInventory   = "Inventory Asset"
	AccountNameLossDamaged = "Loss - Damaged Items"
	AccountNameLossLost    = "Loss - Lost Items"
	AccountNameLossExpired = "Loss - Expired Items"
)

// Account is a named running balance in the chart of accounts.
// Balance is a denormalized total maintained by the ledger posting rules;
// overall balance-sheet consistency is a derived, advisory property.
type Account struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Type    AccountType     `json:"type"`
	Balance decimal.Decimal `json:"balance"`
}

// ValidAccountType reports whether t is one of the known classifications.
func ValidAccountType(t AccountType) bool {
	switch t {
	case Asset, FixedAsset, Equity, OtherCurrentAsset, Liability:
		return true
	}
	return false
}
