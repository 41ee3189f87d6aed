package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AdjustmentType enumerates stock movement reasons outside of sales.
type AdjustmentType string

const (
	AdjustDamage         AdjustmentType = "DAMAGE"
	AdjustLost           AdjustmentType = "LOST"
	AdjustExpired        AdjustmentType = "EXPIRED"
	AdjustReturnToVendor AdjustmentType = "RETURN_TO_VENDOR"
	AdjustStockIn        AdjustmentType = "STOCK_IN"
)

// ValidLossType reports whether t is one of the outbound adjustment types a
// user can record directly. STOCK_IN records are produced by the purchase flow.
func ValidLossType(t AdjustmentType) bool {
	switch t {
	case AdjustDamage, AdjustLost, AdjustExpired, AdjustReturnToVendor:
		return true
	}
	return false
}

// LossAccountName maps an adjustment type to the fixed-name account its value
// posts to. RETURN_TO_VENDOR posts against Inventory Asset itself, which nets
// to zero and is preserved deliberately.
func (t AdjustmentType) LossAccountName() string {
	switch t {
	case AdjustDamage:
		return AccountNameLossDamaged
	case AdjustLost:
		return AccountNameLossLost
	case AdjustExpired:
		return AccountNameLossExpired
	default:
		return AccountNameInventory
	}
}

// StockAdjustment records a stock movement and the cost basis in effect when
// it was made. UnitCost is captured at adjustment time and reversal values the
// movement from it, so adjust-then-reverse conserves exactly even when the
// product's cost price changes in between.
type StockAdjustment struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	Type        AdjustmentType  `json:"type"`
	Quantity    int64           `json:"quantity"`
	UnitCost    decimal.Decimal `json:"unitCost"`
	Timestamp   time.Time       `json:"timestamp"`
	Reason      string          `json:"reason"`
	SupplierID  string          `json:"supplierId,omitempty"`
	OnCredit    bool            `json:"onCredit,omitempty"`
}

// Value returns quantity times the captured unit cost.
func (a StockAdjustment) Value() decimal.Decimal {
	return a.UnitCost.Mul(decimal.NewFromInt(a.Quantity))
}

// AuditLog is an append-only action record, most recent first.
type AuditLog struct {
	ID        string    `json:"id"`
	Action    string    `json:"action"`
	Details   string    `json:"details"`
	Timestamp time.Time `json:"timestamp"`
	User      string    `json:"user"`
}
