package services_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/xaysimo/xaysimo/internal/apperrors"
	"github.com/xaysimo/xaysimo/internal/core/domain"
	"github.com/xaysimo/xaysimo/internal/core/services"
	"github.com/xaysimo/xaysimo/internal/dto"
	"github.com/xaysimo/xaysimo/internal/platform/config"
	"github.com/xaysimo/xaysimo/internal/store"
)

type PurchaseServiceTestSuite struct {
	suite.Suite
	store   *store.Store
	service *services.PurchaseService
	ctx     context.Context
}

func (suite *PurchaseServiceTestSuite) SetupTest() {
	suite.store = newTestStore(suite.T())
	suite.service = services.NewPurchaseService(suite.store, config.FundsPolicyBlock)
	suite.ctx = context.Background()

	seedProduct(suite.T(), suite.store, "p1", 10, "4", "7")
	_, err := suite.store.Update(suite.ctx, func(doc *domain.AppData) error {
		doc.AccountByID("acc-cash").Balance = decimal.RequireFromString("100")
		doc.Suppliers = append(doc.Suppliers, domain.Supplier{ID: "sup1", Name: "Acme Wholesale"})
		return nil
	})
	suite.Require().NoError(err)
}

func (suite *PurchaseServiceTestSuite) TestCashPurchase() {
	resp, err := suite.service.RecordPurchase(suite.ctx, dto.PurchaseRequest{
		ProductID: "p1",
		Quantity:  5,
		UnitCost:  decimal.RequireFromString("6"),
		AccountID: "acc-cash",
	}, "tester")
	suite.Require().NoError(err)

	suite.True(resp.TotalCost.Equal(decimal.RequireFromString("30")))
	suite.Empty(resp.FundsWarning)
	suite.Equal(domain.AdjustStockIn, resp.Adjustment.Type)
	suite.True(resp.Adjustment.UnitCost.Equal(decimal.RequireFromString("6")))

	doc := suite.store.Snapshot()
	product := doc.ProductByID("p1")
	suite.Equal(int64(15), product.Stock)
	// Last-cost policy overwrites the cost price.
	suite.True(product.CostPrice.Equal(decimal.RequireFromString("6")))
	suite.True(accountBalance(suite.T(), suite.store, "acc-cash").Equal(decimal.RequireFromString("70")))
}

func (suite *PurchaseServiceTestSuite) TestZeroUnitCostKeepsCostPrice() {
	_, err := suite.service.RecordPurchase(suite.ctx, dto.PurchaseRequest{
		ProductID: "p1",
		Quantity:  2,
		AccountID: "acc-cash",
	}, "tester")
	suite.Require().NoError(err)

	product := suite.store.Snapshot().ProductByID("p1")
	suite.Equal(int64(12), product.Stock)
	suite.True(product.CostPrice.Equal(decimal.RequireFromString("4")))
}

func (suite *PurchaseServiceTestSuite) TestBlockPolicyRejectsInsufficientFunds() {
	_, err := suite.service.RecordPurchase(suite.ctx, dto.PurchaseRequest{
		ProductID: "p1",
		Quantity:  50,
		UnitCost:  decimal.RequireFromString("6"),
		AccountID: "acc-cash",
	}, "tester")
	assert.ErrorIs(suite.T(), err, apperrors.ErrInsufficientFunds)

	// Nothing was applied.
	suite.Equal(int64(10), suite.store.Snapshot().ProductByID("p1").Stock)
}

func (suite *PurchaseServiceTestSuite) TestWarnPolicyProceedsWithWarning() {
	service := services.NewPurchaseService(suite.store, config.FundsPolicyWarn)

	resp, err := service.RecordPurchase(suite.ctx, dto.PurchaseRequest{
		ProductID: "p1",
		Quantity:  50,
		UnitCost:  decimal.RequireFromString("6"),
		AccountID: "acc-cash",
	}, "tester")
	suite.Require().NoError(err)
	suite.NotEmpty(resp.FundsWarning)

	suite.Equal(int64(60), suite.store.Snapshot().ProductByID("p1").Stock)
	// The account goes negative rather than blocking the receipt.
	suite.True(accountBalance(suite.T(), suite.store, "acc-cash").Equal(decimal.RequireFromString("-200")))
}

func (suite *PurchaseServiceTestSuite) TestCreditPurchasePostsToSupplier() {
	resp, err := suite.service.RecordPurchase(suite.ctx, dto.PurchaseRequest{
		ProductID:  "p1",
		Quantity:   10,
		UnitCost:   decimal.RequireFromString("5"),
		SupplierID: "sup1",
		OnCredit:   true,
	}, "tester")
	suite.Require().NoError(err)
	suite.True(resp.Adjustment.OnCredit)

	doc := suite.store.Snapshot()
	suite.True(doc.SupplierByID("sup1").Balance.Equal(decimal.RequireFromString("50")))
	// The funding accounts are untouched.
	suite.True(accountBalance(suite.T(), suite.store, "acc-cash").Equal(decimal.RequireFromString("100")))
}

func (suite *PurchaseServiceTestSuite) TestCreditPurchaseCreatesSupplierByName() {
	_, err := suite.service.RecordPurchase(suite.ctx, dto.PurchaseRequest{
		ProductID:    "p1",
		Quantity:     4,
		UnitCost:     decimal.RequireFromString("2"),
		SupplierName: "New Vendor",
		OnCredit:     true,
	}, "tester")
	suite.Require().NoError(err)

	doc := suite.store.Snapshot()
	suite.Require().Len(doc.Suppliers, 2)
	suite.Equal("New Vendor", doc.Suppliers[1].Name)
	suite.True(doc.Suppliers[1].Balance.Equal(decimal.RequireFromString("8")))
}

func (suite *PurchaseServiceTestSuite) TestCreditPurchaseWithoutSupplierRejected() {
	_, err := suite.service.RecordPurchase(suite.ctx, dto.PurchaseRequest{
		ProductID: "p1",
		Quantity:  1,
		UnitCost:  decimal.RequireFromString("2"),
		OnCredit:  true,
	}, "tester")
	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
}

type SupplierPaymentTestSuite struct {
	suite.Suite
	store    *store.Store
	purchase *services.PurchaseService
	service  *services.SupplierService
	ctx      context.Context
}

func (suite *SupplierPaymentTestSuite) SetupTest() {
	suite.store = newTestStore(suite.T())
	suite.purchase = services.NewPurchaseService(suite.store, config.FundsPolicyBlock)
	suite.service = services.NewSupplierService(suite.store)
	suite.ctx = context.Background()

	seedProduct(suite.T(), suite.store, "p1", 0, "4", "7")
	_, err := suite.store.Update(suite.ctx, func(doc *domain.AppData) error {
		doc.AccountByID("acc-bank").Balance = decimal.RequireFromString("100")
		doc.Suppliers = append(doc.Suppliers, domain.Supplier{ID: "sup1", Name: "Acme Wholesale"})
		return nil
	})
	suite.Require().NoError(err)

	_, err = suite.purchase.RecordPurchase(suite.ctx, dto.PurchaseRequest{
		ProductID:  "p1",
		Quantity:   10,
		UnitCost:   decimal.RequireFromString("5"),
		SupplierID: "sup1",
		OnCredit:   true,
	}, "tester")
	suite.Require().NoError(err)
}

func (suite *SupplierPaymentTestSuite) TestPaySupplier() {
	supplier, err := suite.service.PaySupplier(suite.ctx, "sup1", dto.SupplierPaymentRequest{
		Amount:    decimal.RequireFromString("20"),
		AccountID: "acc-bank",
	}, "tester")
	suite.Require().NoError(err)

	suite.True(supplier.Balance.Equal(decimal.RequireFromString("30")))
	suite.True(accountBalance(suite.T(), suite.store, "acc-bank").Equal(decimal.RequireFromString("80")))
}

func (suite *SupplierPaymentTestSuite) TestPaySupplierRejectsOverpayment() {
	_, err := suite.service.PaySupplier(suite.ctx, "sup1", dto.SupplierPaymentRequest{
		Amount:    decimal.RequireFromString("60"),
		AccountID: "acc-bank",
	}, "tester")
	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
}

func (suite *SupplierPaymentTestSuite) TestPaySupplierRejectsInsufficientFunds() {
	_, err := suite.store.Update(suite.ctx, func(doc *domain.AppData) error {
		doc.AccountByID("acc-bank").Balance = decimal.RequireFromString("10")
		return nil
	})
	suite.Require().NoError(err)

	_, err = suite.service.PaySupplier(suite.ctx, "sup1", dto.SupplierPaymentRequest{
		Amount:    decimal.RequireFromString("20"),
		AccountID: "acc-bank",
	}, "tester")
	assert.ErrorIs(suite.T(), err, apperrors.ErrInsufficientFunds)
}

func (suite *SupplierPaymentTestSuite) TestDeleteSupplierWithBalanceRejected() {
	err := suite.service.DeleteSupplier(suite.ctx, "sup1", "tester")
	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
}

func TestPurchaseServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PurchaseServiceTestSuite))
}

func TestSupplierPaymentTestSuite(t *testing.T) {
	suite.Run(t, new(SupplierPaymentTestSuite))
}
