package dto

import (
	"github.com/shopspring/decimal"
	"github.com/xaysimo/xaysimo/internal/core/domain"
)

// CreateProductRequest creates or replaces a catalog entry.
type CreateProductRequest struct {
	Name      string          `json:"name" binding:"required"`
	SKU       string          `json:"sku"`
	Barcode   string          `json:"barcode"`
	CostPrice decimal.Decimal `json:"costPrice"`
	SellPrice decimal.Decimal `json:"sellPrice"`
	Stock     int64           `json:"stock"`
	Category  string          `json:"category"`
	Image     string          `json:"image,omitempty"`
}

// UpdateProductRequest carries optional catalog updates.
type UpdateProductRequest struct {
	Name      *string          `json:"name,omitempty"`
	SKU       *string          `json:"sku,omitempty"`
	Barcode   *string          `json:"barcode,omitempty"`
	CostPrice *decimal.Decimal `json:"costPrice,omitempty"`
	SellPrice *decimal.Decimal `json:"sellPrice,omitempty"`
	Stock     *int64           `json:"stock,omitempty"`
	Category  *string          `json:"category,omitempty"`
	Image     *string          `json:"image,omitempty"`
}

// PurchaseRequest is the input of the purchase / stock-in handler.
type PurchaseRequest struct {
	ProductID    string          `json:"productId" binding:"required"`
	Quantity     int64           `json:"quantity" binding:"required,gt=0"`
	UnitCost     decimal.Decimal `json:"unitCost"`
	AccountID    string          `json:"accountId,omitempty"`
	SupplierID   string          `json:"supplierId,omitempty"`
	SupplierName string          `json:"supplierName,omitempty"`
	OnCredit     bool            `json:"onCredit,omitempty"`
}

// PurchaseResponse reports the outcome, including the non-blocking funds
// warning issued under the warn policy.
type PurchaseResponse struct {
	Adjustment   domain.StockAdjustment `json:"adjustment"`
	TotalCost    decimal.Decimal        `json:"totalCost"`
	FundsWarning string                 `json:"fundsWarning,omitempty"`
}

// AdjustmentRequest is the input of the stock-loss adjustment handler.
type AdjustmentRequest struct {
	ProductID string                `json:"productId" binding:"required"`
	Quantity  int64                 `json:"quantity" binding:"required,gt=0"`
	Type      domain.AdjustmentType `json:"type" binding:"required"`
	Reason    string                `json:"reason"`
}
