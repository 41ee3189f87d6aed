package services_test

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/xaysimo/xaysimo/internal/apperrors"
	"github.com/xaysimo/xaysimo/internal/core/domain"
	"github.com/xaysimo/xaysimo/internal/core/services"
	"github.com/xaysimo/xaysimo/internal/dto"
	"github.com/xaysimo/xaysimo/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.New(context.Background(), nil, slog.New(slog.NewTextHandler(os.Stderr, nil)))
	require.NoError(t, err)
	return s
}

func seedProduct(t *testing.T, s *store.Store, id string, stock int64, cost, sell string) {
	t.Helper()
	_, err := s.Update(context.Background(), func(doc *domain.AppData) error {
		doc.Products = append(doc.Products, domain.Product{
			ID:        id,
			Name:      "Product " + id,
			SKU:       "SKU-" + id,
			CostPrice: decimal.RequireFromString(cost),
			SellPrice: decimal.RequireFromString(sell),
			Stock:     stock,
		})
		return nil
	})
	require.NoError(t, err)
}

func seedCustomer(t *testing.T, s *store.Store, id string) {
	t.Helper()
	_, err := s.Update(context.Background(), func(doc *domain.AppData) error {
		doc.Customers = append(doc.Customers, domain.Customer{
			ID:      id,
			Name:    "Customer " + id,
			Phone:   id,
			History: []string{},
		})
		return nil
	})
	require.NoError(t, err)
}

func accountBalance(t *testing.T, s *store.Store, accountID string) decimal.Decimal {
	t.Helper()
	account := s.Snapshot().AccountByID(accountID)
	require.NotNil(t, account)
	return account.Balance
}

type RegisterServiceTestSuite struct {
	suite.Suite
	store   *store.Store
	service *services.RegisterService
	ctx     context.Context
}

func (suite *RegisterServiceTestSuite) SetupTest() {
	suite.store = newTestStore(suite.T())
	suite.service = services.NewRegisterService(suite.store)
	suite.ctx = context.Background()

	seedProduct(suite.T(), suite.store, "p1", 10, "6", "10")
	seedProduct(suite.T(), suite.store, "p2", 5, "2.50", "4")
	seedCustomer(suite.T(), suite.store, "555-0100")
}

func (suite *RegisterServiceTestSuite) checkout(req dto.CheckoutRequest) *domain.Transaction {
	tx, err := suite.service.Checkout(suite.ctx, req, "tester")
	suite.Require().NoError(err)
	return tx
}

func (suite *RegisterServiceTestSuite) TestCheckoutCashSale() {
	tx := suite.checkout(dto.CheckoutRequest{
		Items: []dto.CartLine{
			{ProductID: "p1", Quantity: 2},
			{ProductID: "p2", Quantity: 1},
		},
		PaymentMethod: domain.Cash,
		AccountID:     "acc-cash",
	})

	suite.True(tx.Subtotal.Equal(decimal.RequireFromString("24")))
	suite.True(tx.Total.Equal(decimal.RequireFromString("24")))
	suite.Equal(domain.TxSale, tx.Type)

	doc := suite.store.Snapshot()
	suite.Equal(int64(8), doc.ProductByID("p1").Stock)
	suite.Equal(int64(4), doc.ProductByID("p2").Stock)
	suite.True(accountBalance(suite.T(), suite.store, "acc-cash").Equal(decimal.RequireFromString("24")))

	suite.Require().NotEmpty(doc.AuditLogs)
	suite.Equal("Sale", doc.AuditLogs[0].Action)
}

func (suite *RegisterServiceTestSuite) TestCheckoutAppliesTaxRate() {
	rate := decimal.RequireFromString("10")
	tx := suite.checkout(dto.CheckoutRequest{
		Items:         []dto.CartLine{{ProductID: "p1", Quantity: 1}},
		PaymentMethod: domain.Cash,
		AccountID:     "acc-cash",
		TaxRate:       &rate,
	})

	suite.True(tx.Tax.Equal(decimal.RequireFromString("1")))
	suite.True(tx.Total.Equal(decimal.RequireFromString("11")))
}

func (suite *RegisterServiceTestSuite) TestCheckoutDebtSale() {
	tx := suite.checkout(dto.CheckoutRequest{
		Items:         []dto.CartLine{{ProductID: "p1", Quantity: 3}},
		PaymentMethod: domain.Debt,
		CustomerID:    "555-0100",
	})

	doc := suite.store.Snapshot()
	customer := doc.CustomerByID("555-0100")
	suite.True(customer.DebtBalance.Equal(decimal.RequireFromString("30")))
	suite.Equal(int64(30), customer.LoyaltyPoints)
	suite.Contains(customer.History, tx.ID)

	// No account was touched.
	suite.True(accountBalance(suite.T(), suite.store, "acc-cash").IsZero())
}

func (suite *RegisterServiceTestSuite) TestCheckoutPartialPaymentRecordsRemainderAsDebt() {
	tx := suite.checkout(dto.CheckoutRequest{
		Items:         []dto.CartLine{{ProductID: "p1", Quantity: 3}},
		PaymentMethod: domain.PartialPayment,
		AccountID:     "acc-cash",
		CustomerID:    "555-0100",
		Split: &dto.PaymentSplitRequest{
			Cash: decimal.RequireFromString("20"),
		},
	})

	suite.Require().NotNil(tx.Payment.Split)
	suite.True(tx.Payment.Split.Debt.Equal(decimal.RequireFromString("10")))

	suite.True(accountBalance(suite.T(), suite.store, "acc-cash").Equal(decimal.RequireFromString("20")))
	customer := suite.store.Snapshot().CustomerByID("555-0100")
	suite.True(customer.DebtBalance.Equal(decimal.RequireFromString("10")))
}

func (suite *RegisterServiceTestSuite) TestCheckoutOverpaymentYieldsNegativeDebt() {
	tx := suite.checkout(dto.CheckoutRequest{
		Items:         []dto.CartLine{{ProductID: "p1", Quantity: 1}},
		PaymentMethod: domain.PartialPayment,
		AccountID:     "acc-cash",
		CustomerID:    "555-0100",
		Split: &dto.PaymentSplitRequest{
			Cash: decimal.RequireFromString("15"),
		},
	})

	suite.True(tx.Payment.Split.Debt.Equal(decimal.RequireFromString("-5")))
	customer := suite.store.Snapshot().CustomerByID("555-0100")
	suite.True(customer.DebtBalance.Equal(decimal.RequireFromString("-5")))
}

func (suite *RegisterServiceTestSuite) TestCheckoutRejectsEmptyCart() {
	_, err := suite.service.Checkout(suite.ctx, dto.CheckoutRequest{
		PaymentMethod: domain.Cash,
		AccountID:     "acc-cash",
	}, "tester")
	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
}

func (suite *RegisterServiceTestSuite) TestCheckoutRejectsMissingAccount() {
	_, err := suite.service.Checkout(suite.ctx, dto.CheckoutRequest{
		Items:         []dto.CartLine{{ProductID: "p1", Quantity: 1}},
		PaymentMethod: domain.Cash,
	}, "tester")
	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
}

func (suite *RegisterServiceTestSuite) TestCheckoutRejectsDebtWithoutCustomer() {
	_, err := suite.service.Checkout(suite.ctx, dto.CheckoutRequest{
		Items:         []dto.CartLine{{ProductID: "p1", Quantity: 1}},
		PaymentMethod: domain.Debt,
	}, "tester")
	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
}

func (suite *RegisterServiceTestSuite) TestCheckoutFailureLeavesDocumentUntouched() {
	before := suite.store.Snapshot()
	_, err := suite.service.Checkout(suite.ctx, dto.CheckoutRequest{
		Items:         []dto.CartLine{{ProductID: "p1", Quantity: 1}, {ProductID: "missing", Quantity: 1}},
		PaymentMethod: domain.Cash,
		AccountID:     "acc-cash",
	}, "tester")
	suite.Require().ErrorIs(err, apperrors.ErrNotFound)

	after := suite.store.Snapshot()
	suite.Same(before, after)
	suite.Equal(int64(10), after.ProductByID("p1").Stock)
}

func (suite *RegisterServiceTestSuite) TestDeleteInvoiceReversesCashSale() {
	tx := suite.checkout(dto.CheckoutRequest{
		Items:         []dto.CartLine{{ProductID: "p1", Quantity: 4}},
		PaymentMethod: domain.Cash,
		AccountID:     "acc-cash",
	})

	suite.Require().NoError(suite.service.DeleteInvoice(suite.ctx, tx.ID, "tester"))

	doc := suite.store.Snapshot()
	suite.Equal(int64(10), doc.ProductByID("p1").Stock)
	suite.True(accountBalance(suite.T(), suite.store, "acc-cash").IsZero())
	suite.Nil(doc.TransactionByID(tx.ID))
}

func (suite *RegisterServiceTestSuite) TestDeleteInvoiceReversesDebtAndLoyalty() {
	tx := suite.checkout(dto.CheckoutRequest{
		Items:         []dto.CartLine{{ProductID: "p1", Quantity: 3}},
		PaymentMethod: domain.Debt,
		CustomerID:    "555-0100",
	})

	suite.Require().NoError(suite.service.DeleteInvoice(suite.ctx, tx.ID, "tester"))

	customer := suite.store.Snapshot().CustomerByID("555-0100")
	suite.True(customer.DebtBalance.IsZero())
	suite.Equal(int64(0), customer.LoyaltyPoints)
	suite.NotContains(customer.History, tx.ID)
}

func (suite *RegisterServiceTestSuite) TestDeleteInvoiceUsesStoredSplitForDebtRevert() {
	tx := suite.checkout(dto.CheckoutRequest{
		Items:         []dto.CartLine{{ProductID: "p1", Quantity: 3}},
		PaymentMethod: domain.PartialPayment,
		AccountID:     "acc-bank",
		CustomerID:    "555-0100",
		Split: &dto.PaymentSplitRequest{
			Bank: decimal.RequireFromString("12"),
		},
	})

	suite.Require().NoError(suite.service.DeleteInvoice(suite.ctx, tx.ID, "tester"))

	doc := suite.store.Snapshot()
	suite.True(accountBalance(suite.T(), suite.store, "acc-bank").IsZero())
	suite.True(doc.CustomerByID("555-0100").DebtBalance.IsZero())
	suite.Equal(int64(10), doc.ProductByID("p1").Stock)
}

func (suite *RegisterServiceTestSuite) TestDeleteInvoiceFloorsAccountAtZero() {
	tx := suite.checkout(dto.CheckoutRequest{
		Items:         []dto.CartLine{{ProductID: "p1", Quantity: 2}},
		PaymentMethod: domain.Cash,
		AccountID:     "acc-cash",
	})

	// Drain the account below the recorded deposit before the reversal.
	_, err := suite.store.Update(suite.ctx, func(doc *domain.AppData) error {
		doc.AccountByID("acc-cash").Balance = decimal.RequireFromString("5")
		return nil
	})
	suite.Require().NoError(err)

	suite.Require().NoError(suite.service.DeleteInvoice(suite.ctx, tx.ID, "tester"))
	suite.True(accountBalance(suite.T(), suite.store, "acc-cash").IsZero())
}

func (suite *RegisterServiceTestSuite) TestDeleteInvoiceAuditsDeletedInvoiceFigures() {
	first := suite.checkout(dto.CheckoutRequest{
		Items:         []dto.CartLine{{ProductID: "p1", Quantity: 1}},
		PaymentMethod: domain.Cash,
		AccountID:     "acc-cash",
	})
	second := suite.checkout(dto.CheckoutRequest{
		Items:         []dto.CartLine{{ProductID: "p1", Quantity: 2}},
		PaymentMethod: domain.Cash,
		AccountID:     "acc-cash",
	})

	// Deleting the earlier invoice must log its own total, not the figures
	// of the transaction that slides into its slot.
	suite.Require().NoError(suite.service.DeleteInvoice(suite.ctx, first.ID, "tester"))

	doc := suite.store.Snapshot()
	suite.Require().NotEmpty(doc.AuditLogs)
	entry := doc.AuditLogs[0]
	suite.Equal("Invoice Deleted", entry.Action)
	suite.Contains(entry.Details, first.ID)
	suite.Contains(entry.Details, "10.00")
	suite.NotContains(entry.Details, "20.00")

	suite.NotNil(doc.TransactionByID(second.ID))
}

func (suite *RegisterServiceTestSuite) TestDeleteInvoiceUnknownTransaction() {
	err := suite.service.DeleteInvoice(suite.ctx, "nope", "tester")
	assert.ErrorIs(suite.T(), err, apperrors.ErrNotFound)
}

func TestRegisterServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RegisterServiceTestSuite))
}
