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
	"github.com/xaysimo/xaysimo/internal/store"
)

type DebtServiceTestSuite struct {
	suite.Suite
	store    *store.Store
	service  *services.DebtService
	register *services.RegisterService
	ctx      context.Context
}

func (suite *DebtServiceTestSuite) SetupTest() {
	suite.store = newTestStore(suite.T())
	suite.service = services.NewDebtService(suite.store)
	suite.register = services.NewRegisterService(suite.store)
	suite.ctx = context.Background()

	seedProduct(suite.T(), suite.store, "p1", 10, "6", "10")
	seedCustomer(suite.T(), suite.store, "555-0100")

	// Put the customer in debt through a real sale.
	_, err := suite.register.Checkout(suite.ctx, dto.CheckoutRequest{
		Items:         []dto.CartLine{{ProductID: "p1", Quantity: 5}},
		PaymentMethod: domain.Debt,
		CustomerID:    "555-0100",
	}, "tester")
	suite.Require().NoError(err)
}

func (suite *DebtServiceTestSuite) TestReceivePayment() {
	tx, err := suite.service.ReceivePayment(suite.ctx, dto.DebtPaymentRequest{
		CustomerID:    "555-0100",
		Amount:        decimal.RequireFromString("30"),
		AccountID:     "acc-cash",
		PaymentMethod: domain.Cash,
	}, "tester")
	suite.Require().NoError(err)
	suite.Equal(domain.TxDebtPayment, tx.Type)

	doc := suite.store.Snapshot()
	customer := doc.CustomerByID("555-0100")
	suite.True(customer.DebtBalance.Equal(decimal.RequireFromString("20")))
	suite.Contains(customer.History, tx.ID)
	suite.True(accountBalance(suite.T(), suite.store, "acc-cash").Equal(decimal.RequireFromString("30")))
}

func (suite *DebtServiceTestSuite) TestReceivePaymentRejectsOverpayment() {
	_, err := suite.service.ReceivePayment(suite.ctx, dto.DebtPaymentRequest{
		CustomerID:    "555-0100",
		Amount:        decimal.RequireFromString("51"),
		AccountID:     "acc-cash",
		PaymentMethod: domain.Cash,
	}, "tester")
	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
}

func (suite *DebtServiceTestSuite) TestReceivePaymentRejectsNonPositiveAmount() {
	_, err := suite.service.ReceivePayment(suite.ctx, dto.DebtPaymentRequest{
		CustomerID:    "555-0100",
		Amount:        decimal.Zero,
		AccountID:     "acc-cash",
		PaymentMethod: domain.Cash,
	}, "tester")
	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
}

func (suite *DebtServiceTestSuite) TestReceivePaymentRejectsDebtMethod() {
	_, err := suite.service.ReceivePayment(suite.ctx, dto.DebtPaymentRequest{
		CustomerID:    "555-0100",
		Amount:        decimal.RequireFromString("10"),
		AccountID:     "acc-cash",
		PaymentMethod: domain.Debt,
	}, "tester")
	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
}

func (suite *DebtServiceTestSuite) TestListDebtors() {
	debtors := suite.service.ListDebtors(suite.ctx)
	suite.Require().Len(debtors, 1)
	suite.Equal("555-0100", debtors[0].ID)
}

func (suite *DebtServiceTestSuite) TestDeletingDebtPaymentRestoresDebt() {
	tx, err := suite.service.ReceivePayment(suite.ctx, dto.DebtPaymentRequest{
		CustomerID:    "555-0100",
		Amount:        decimal.RequireFromString("50"),
		AccountID:     "acc-cash",
		PaymentMethod: domain.Cash,
	}, "tester")
	suite.Require().NoError(err)
	suite.True(suite.store.Snapshot().CustomerByID("555-0100").DebtBalance.IsZero())

	suite.Require().NoError(suite.register.DeleteInvoice(suite.ctx, tx.ID, "tester"))

	customer := suite.store.Snapshot().CustomerByID("555-0100")
	suite.True(customer.DebtBalance.Equal(decimal.RequireFromString("50")))
	suite.True(accountBalance(suite.T(), suite.store, "acc-cash").IsZero())
}

func TestDebtServiceTestSuite(t *testing.T) {
	suite.Run(t, new(DebtServiceTestSuite))
}
