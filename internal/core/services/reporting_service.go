package services

import (
	"context"
	"io"
	"time"

	"github.com/shopspring/decimal"

	"github.com/xaysimo/xaysimo/internal/core/domain"
	portssvc "github.com/xaysimo/xaysimo/internal/core/ports/services"
	"github.com/xaysimo/xaysimo/internal/csvio"
	"github.com/xaysimo/xaysimo/internal/dto"
	"github.com/xaysimo/xaysimo/internal/store"
)

// lowStockThreshold marks catalog entries for the dashboard reorder count.
const lowStockThreshold = 5

// balanceTolerance is the advisory threshold below which the balance sheet
// is reported as balanced.
var balanceTolerance = decimal.RequireFromString("0.01")

// ReportingService is the read side: pure aggregations over the current
// snapshot. COGS always comes from the cost recorded in each transaction's
// item snapshot, never from the current catalog cost.
type ReportingService struct {
	store *store.Store
}

var _ portssvc.ReportingSvcFacade = (*ReportingService)(nil)

func NewReportingService(s *store.Store) *ReportingService {
	return &ReportingService{store: s}
}

func (s *ReportingService) IncomeStatement(ctx context.Context) *dto.IncomeStatement {
	doc := s.store.Snapshot()
	return incomeStatement(doc)
}

func incomeStatement(doc *domain.AppData) *dto.IncomeStatement {
	// Revenue sums every transaction, debt collections included. A sale on
	// credit is therefore recognized twice over its lifetime, once at sale
	// and once at collection. Debt-payment transactions carry no items, so
	// COGS is unaffected.
	revenue := decimal.Zero
	cogs := decimal.Zero
	for _, tx := range doc.Transactions {
		revenue = revenue.Add(tx.Total)
		for _, item := range tx.Items {
			cogs = cogs.Add(item.LineCost())
		}
	}

	expenses := decimal.Zero
	for _, e := range doc.Expenses {
		expenses = expenses.Add(e.Amount)
	}

	gross := revenue.Sub(cogs)
	return &dto.IncomeStatement{
		Revenue:     revenue,
		COGS:        cogs,
		GrossProfit: gross,
		Expenses:    expenses,
		NetProfit:   gross.Sub(expenses),
	}
}

func (s *ReportingService) BalanceSheet(ctx context.Context) *dto.BalanceSheet {
	doc := s.store.Snapshot()

	liquid := []domain.Account{}
	liquidTotal := decimal.Zero
	fixedAssets := decimal.Zero
	liabilityAccounts := decimal.Zero
	customEquity := decimal.Zero
	for _, account := range doc.Accounts {
		switch account.Type {
		case domain.Asset, domain.OtherCurrentAsset:
			// Inventory is valued from the catalog, not from its
			// denormalized account balance, to avoid double counting.
			if account.Name == domain.AccountNameInventory {
				continue
			}
			liquid = append(liquid, account)
			liquidTotal = liquidTotal.Add(account.Balance)
		case domain.FixedAsset:
			fixedAssets = fixedAssets.Add(account.Balance)
		case domain.Liability:
			liabilityAccounts = liabilityAccounts.Add(account.Balance)
		case domain.Equity:
			customEquity = customEquity.Add(account.Balance)
		}
	}

	inventoryValue := decimal.Zero
	for _, p := range doc.Products {
		if p.Stock > 0 {
			inventoryValue = inventoryValue.Add(p.CostPrice.Mul(decimal.NewFromInt(p.Stock)))
		}
	}

	receivable := decimal.Zero
	for _, c := range doc.Customers {
		receivable = receivable.Add(c.DebtBalance)
	}

	payable := decimal.Zero
	for _, sp := range doc.Suppliers {
		payable = payable.Add(sp.Balance)
	}

	totalAssets := liquidTotal.Add(inventoryValue).Add(receivable).Add(fixedAssets)
	totalLiabilities := liabilityAccounts.Add(payable)
	retained := incomeStatement(doc).NetProfit
	totalEquity := retained.Add(customEquity)

	discrepancy := totalAssets.Sub(totalLiabilities.Add(totalEquity))
	return &dto.BalanceSheet{
		LiquidAssets:       liquid,
		InventoryValue:     inventoryValue,
		AccountsReceivable: receivable,
		FixedAssets:        fixedAssets,
		TotalAssets:        totalAssets,
		AccountsPayable:    payable,
		TotalLiabilities:   totalLiabilities,
		RetainedEarnings:   retained,
		TotalEquity:        totalEquity,
		Discrepancy:        discrepancy,
		IsBalanced:         discrepancy.Abs().LessThan(balanceTolerance),
	}
}

// ZReport buckets one day's takings by payment channel. Partial payments
// contribute their per-channel components; debt collections count toward the
// channel they arrived on but not toward sales.
func (s *ReportingService) ZReport(ctx context.Context, day time.Time) *dto.ZReport {
	doc := s.store.Snapshot()
	report := &dto.ZReport{Date: day}

	for _, tx := range doc.Transactions {
		if !sameDay(tx.Timestamp, day) {
			continue
		}
		switch tx.Type {
		case domain.TxSale:
			report.TotalSales = report.TotalSales.Add(tx.Total)
			report.Transactions++
			bucketPayment(report, tx)
		case domain.TxDebtPayment:
			bucketPayment(report, tx)
		}
	}

	for _, e := range doc.Expenses {
		if sameDay(e.Timestamp, day) {
			report.Expenses = report.Expenses.Add(e.Amount)
		}
	}

	received := report.Cash.Add(report.Bank).Add(report.Mobile)
	report.NetPosition = received.Sub(report.Expenses)
	return report
}

func bucketPayment(report *dto.ZReport, tx domain.Transaction) {
	switch tx.Payment.Method {
	case domain.Cash:
		report.Cash = report.Cash.Add(tx.Total)
	case domain.BankTransfer:
		report.Bank = report.Bank.Add(tx.Total)
	case domain.MobileMoney:
		report.Mobile = report.Mobile.Add(tx.Total)
	case domain.Debt:
		report.Debt = report.Debt.Add(tx.Total)
	case domain.PartialPayment:
		if tx.Payment.Split != nil {
			report.Cash = report.Cash.Add(tx.Payment.Split.Cash)
			report.Bank = report.Bank.Add(tx.Payment.Split.Bank)
			report.Mobile = report.Mobile.Add(tx.Payment.Split.Mobile)
			report.Debt = report.Debt.Add(tx.Payment.Split.Debt)
		}
	}
}

func (s *ReportingService) Dashboard(ctx context.Context) *dto.DashboardSummary {
	doc := s.store.Snapshot()
	now := time.Now().UTC()

	summary := &dto.DashboardSummary{
		ProductCount:  len(doc.Products),
		CustomerCount: len(doc.Customers),
	}

	for _, tx := range doc.Transactions {
		if tx.Type != domain.TxSale {
			continue
		}
		summary.RevenueTotal = summary.RevenueTotal.Add(tx.Total)
		if sameDay(tx.Timestamp, now) {
			summary.SalesToday = summary.SalesToday.Add(tx.Total)
		}
	}

	for _, p := range doc.Products {
		if p.Stock <= lowStockThreshold {
			summary.LowStockCount++
		}
	}

	for _, c := range doc.Customers {
		summary.DebtTotal = summary.DebtTotal.Add(c.DebtBalance)
	}
	return summary
}

func (s *ReportingService) ExportSalesCSV(ctx context.Context, w io.Writer) error {
	return csvio.WriteSales(w, s.store.Snapshot())
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}
