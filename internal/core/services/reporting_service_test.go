package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/xaysimo/xaysimo/internal/core/domain"
	"github.com/xaysimo/xaysimo/internal/core/services"
	"github.com/xaysimo/xaysimo/internal/dto"
	"github.com/xaysimo/xaysimo/internal/platform/config"
	"github.com/xaysimo/xaysimo/internal/store"
)

// The reporting suite drives a full trading day through the real services and
// checks the aggregations over the resulting document.
type ReportingServiceTestSuite struct {
	suite.Suite
	store   *store.Store
	service *services.ReportingService
	ctx     context.Context
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.store = newTestStore(suite.T())
	suite.service = services.NewReportingService(suite.store)
	suite.ctx = context.Background()

	seedProduct(suite.T(), suite.store, "p1", 0, "0", "10")
	seedCustomer(suite.T(), suite.store, "555-0100")
	_, err := suite.store.Update(suite.ctx, func(doc *domain.AppData) error {
		doc.AccountByID("acc-cash").Balance = decimal.RequireFromString("50")
		return nil
	})
	suite.Require().NoError(err)

	register := services.NewRegisterService(suite.store)
	purchase := services.NewPurchaseService(suite.store, config.FundsPolicyBlock)
	expense := services.NewExpenseService(suite.store)
	debt := services.NewDebtService(suite.store)

	// Stock in 10 units at 3, paid from cash.
	_, err = purchase.RecordPurchase(suite.ctx, dto.PurchaseRequest{
		ProductID: "p1", Quantity: 10, UnitCost: decimal.RequireFromString("3"), AccountID: "acc-cash",
	}, "tester")
	suite.Require().NoError(err)

	// Sell 4 units for cash.
	_, err = register.Checkout(suite.ctx, dto.CheckoutRequest{
		Items:         []dto.CartLine{{ProductID: "p1", Quantity: 4}},
		PaymentMethod: domain.Cash,
		AccountID:     "acc-cash",
	}, "tester")
	suite.Require().NoError(err)

	// One expense.
	_, err = expense.CreateExpense(suite.ctx, dto.CreateExpenseRequest{
		Description: "Electricity", Amount: decimal.RequireFromString("5"), AccountID: "acc-cash",
	}, "tester")
	suite.Require().NoError(err)

	// Sell 2 units on debt, then collect part of it.
	_, err = register.Checkout(suite.ctx, dto.CheckoutRequest{
		Items:         []dto.CartLine{{ProductID: "p1", Quantity: 2}},
		PaymentMethod: domain.Debt,
		CustomerID:    "555-0100",
	}, "tester")
	suite.Require().NoError(err)
	_, err = debt.ReceivePayment(suite.ctx, dto.DebtPaymentRequest{
		CustomerID: "555-0100", Amount: decimal.RequireFromString("10"),
		AccountID: "acc-cash", PaymentMethod: domain.Cash,
	}, "tester")
	suite.Require().NoError(err)
}

func (suite *ReportingServiceTestSuite) TestIncomeStatement() {
	// Sales 40 + 20 plus the 10 collected on the debt sale.
	is := suite.service.IncomeStatement(suite.ctx)
	suite.True(is.Revenue.Equal(decimal.RequireFromString("70")))
	suite.True(is.COGS.Equal(decimal.RequireFromString("18")))
	suite.True(is.GrossProfit.Equal(decimal.RequireFromString("52")))
	suite.True(is.Expenses.Equal(decimal.RequireFromString("5")))
	suite.True(is.NetProfit.Equal(decimal.RequireFromString("47")))
}

func (suite *ReportingServiceTestSuite) TestIncomeStatementCountsDebtCollections() {
	before := suite.service.IncomeStatement(suite.ctx).Revenue

	debt := services.NewDebtService(suite.store)
	_, err := debt.ReceivePayment(suite.ctx, dto.DebtPaymentRequest{
		CustomerID: "555-0100", Amount: decimal.RequireFromString("10"),
		AccountID: "acc-cash", PaymentMethod: domain.Cash,
	}, "tester")
	suite.Require().NoError(err)

	after := suite.service.IncomeStatement(suite.ctx)
	suite.True(after.Revenue.Sub(before).Equal(decimal.RequireFromString("10")))
	// Collections carry no line items.
	suite.True(after.COGS.Equal(decimal.RequireFromString("18")))
}

func (suite *ReportingServiceTestSuite) TestCOGSIsDriftFree() {
	// Raising the catalog cost after the sales must not change COGS.
	_, err := suite.store.Update(suite.ctx, func(doc *domain.AppData) error {
		doc.ProductByID("p1").CostPrice = decimal.RequireFromString("99")
		return nil
	})
	suite.Require().NoError(err)

	is := suite.service.IncomeStatement(suite.ctx)
	suite.True(is.COGS.Equal(decimal.RequireFromString("18")))
}

func (suite *ReportingServiceTestSuite) TestBalanceSheet() {
	bs := suite.service.BalanceSheet(suite.ctx)

	suite.True(bs.InventoryValue.Equal(decimal.RequireFromString("12")))
	suite.True(bs.AccountsReceivable.Equal(decimal.RequireFromString("10")))
	suite.True(bs.TotalAssets.Equal(decimal.RequireFromString("87")))
	suite.True(bs.TotalLiabilities.IsZero())
	suite.True(bs.RetainedEarnings.Equal(decimal.RequireFromString("47")))

	// The opening cash balance was seeded out of thin air (50), and the
	// collected debt payment re-recognized 10 of revenue, so the sheet
	// carries a discrepancy of 40.
	suite.True(bs.Discrepancy.Equal(decimal.RequireFromString("40")))
	suite.False(bs.IsBalanced)
}

func (suite *ReportingServiceTestSuite) TestTradingOperationsPreserveDiscrepancy() {
	before := suite.service.BalanceSheet(suite.ctx).Discrepancy

	register := services.NewRegisterService(suite.store)
	_, err := register.Checkout(suite.ctx, dto.CheckoutRequest{
		Items:         []dto.CartLine{{ProductID: "p1", Quantity: 1}},
		PaymentMethod: domain.Cash,
		AccountID:     "acc-bank",
	}, "tester")
	suite.Require().NoError(err)

	after := suite.service.BalanceSheet(suite.ctx).Discrepancy
	suite.True(after.Sub(before).Abs().LessThan(decimal.RequireFromString("0.01")))
}

func (suite *ReportingServiceTestSuite) TestZReport() {
	report := suite.service.ZReport(suite.ctx, time.Now().UTC())

	suite.True(report.Cash.Equal(decimal.RequireFromString("50")))
	suite.True(report.Debt.Equal(decimal.RequireFromString("20")))
	suite.True(report.TotalSales.Equal(decimal.RequireFromString("60")))
	suite.True(report.Expenses.Equal(decimal.RequireFromString("5")))
	suite.True(report.NetPosition.Equal(decimal.RequireFromString("45")))
	suite.Equal(2, report.Transactions)
}

func (suite *ReportingServiceTestSuite) TestZReportOtherDayIsEmpty() {
	report := suite.service.ZReport(suite.ctx, time.Now().UTC().AddDate(0, 0, -1))
	suite.True(report.TotalSales.IsZero())
	suite.Equal(0, report.Transactions)
}

func (suite *ReportingServiceTestSuite) TestDashboard() {
	summary := suite.service.Dashboard(suite.ctx)

	suite.True(summary.SalesToday.Equal(decimal.RequireFromString("60")))
	suite.True(summary.RevenueTotal.Equal(decimal.RequireFromString("60")))
	suite.True(summary.DebtTotal.Equal(decimal.RequireFromString("10")))
	suite.Equal(1, summary.ProductCount)
	suite.Equal(1, summary.CustomerCount)
	// 4 units left is at the reorder threshold.
	suite.Equal(1, summary.LowStockCount)
}

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
