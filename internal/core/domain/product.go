package domain

import (
	"github.com/shopspring/decimal"
)

// Product is a catalog entry with its on-hand quantity and cost basis.
// CostPrice follows a last-cost policy: it is overwritten by each purchase
// that supplies a positive unit cost, not weighted-averaged.
type Product struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	SKU       string          `json:"sku"`
	Barcode   string          `json:"barcode"`
	CostPrice decimal.Decimal `json:"costPrice"`
	SellPrice decimal.Decimal `json:"sellPrice"`
	Stock     int64           `json:"stock"`
	Category  string          `json:"category"`
	Image     string          `json:"image,omitempty"`
}

// CartItem is a snapshot of a product line at sale time. Cost and sell price
// are frozen here so later reporting and reversal are drift-free even if the
// catalog entry changes afterwards.
type CartItem struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	SKU       string          `json:"sku"`
	CostPrice decimal.Decimal `json:"costPrice"`
	SellPrice decimal.Decimal `json:"sellPrice"`
	Quantity  int64           `json:"quantity"`
}

// LineTotal returns sellPrice multiplied by quantity.
func (ci CartItem) LineTotal() decimal.Decimal {
	return ci.SellPrice.Mul(decimal.NewFromInt(ci.Quantity))
}

// LineCost returns the cost basis of the line at sale time.
func (ci CartItem) LineCost() decimal.Decimal {
	return ci.CostPrice.Mul(decimal.NewFromInt(ci.Quantity))
}
