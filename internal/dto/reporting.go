package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/xaysimo/xaysimo/internal/core/domain"
)

// IncomeStatement is the read-side profit and loss aggregation.
// COGS uses the cost recorded in each transaction's item snapshot, so it is
// drift-free with respect to later cost-price changes.
type IncomeStatement struct {
	Revenue     decimal.Decimal `json:"revenue"`
	COGS        decimal.Decimal `json:"cogs"`
	GrossProfit decimal.Decimal `json:"grossProfit"`
	Expenses    decimal.Decimal `json:"expenses"`
	NetProfit   decimal.Decimal `json:"netProfit"`
}

// BalanceSheet buckets the document into assets, liabilities and equity.
// IsBalanced is advisory: the system can drift out of balance under normal
// use (for example after deleting an account with a nonzero balance), and the
// report only surfaces the discrepancy.
type BalanceSheet struct {
	LiquidAssets       []domain.Account `json:"liquidAssets"`
	InventoryValue     decimal.Decimal  `json:"inventoryValue"`
	AccountsReceivable decimal.Decimal  `json:"accountsReceivable"`
	FixedAssets        decimal.Decimal  `json:"fixedAssets"`
	TotalAssets        decimal.Decimal  `json:"totalAssets"`
	AccountsPayable    decimal.Decimal  `json:"accountsPayable"`
	TotalLiabilities   decimal.Decimal  `json:"totalLiabilities"`
	RetainedEarnings   decimal.Decimal  `json:"retainedEarnings"`
	TotalEquity        decimal.Decimal  `json:"totalEquity"`
	Discrepancy        decimal.Decimal  `json:"discrepancy"`
	IsBalanced         bool             `json:"isBalanced"`
}

// ZReport is the end-of-day closing aggregation by payment channel.
// Partial payments contribute their per-channel components.
type ZReport struct {
	Date         time.Time       `json:"date"`
	Cash         decimal.Decimal `json:"cash"`
	Bank         decimal.Decimal `json:"bank"`
	Mobile       decimal.Decimal `json:"mobile"`
	Debt         decimal.Decimal `json:"debt"`
	TotalSales   decimal.Decimal `json:"totalSales"`
	Expenses     decimal.Decimal `json:"expenses"`
	NetPosition  decimal.Decimal `json:"netPosition"`
	Transactions int             `json:"transactions"`
}

// InsightsRequest is a free-form business question for the analysis model.
type InsightsRequest struct {
	Query string `json:"query" binding:"required"`
}

// InsightsResponse carries the model's Markdown-formatted answer.
type InsightsResponse struct {
	Answer string `json:"answer"`
}

// DashboardSummary is the landing-page aggregation.
type DashboardSummary struct {
	SalesToday    decimal.Decimal `json:"salesToday"`
	RevenueTotal  decimal.Decimal `json:"revenueTotal"`
	LowStockCount int             `json:"lowStockCount"`
	DebtTotal     decimal.Decimal `json:"debtTotal"`
	ProductCount  int             `json:"productCount"`
	CustomerCount int             `json:"customerCount"`
}
