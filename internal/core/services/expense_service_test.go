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

type ExpenseServiceTestSuite struct {
	suite.Suite
	store   *store.Store
	service *services.ExpenseService
	ctx     context.Context
}

func (suite *ExpenseServiceTestSuite) SetupTest() {
	suite.store = newTestStore(suite.T())
	suite.service = services.NewExpenseService(suite.store)
	suite.ctx = context.Background()

	_, err := suite.store.Update(suite.ctx, func(doc *domain.AppData) error {
		doc.AccountByID("acc-cash").Balance = decimal.RequireFromString("100")
		return nil
	})
	suite.Require().NoError(err)
}

func (suite *ExpenseServiceTestSuite) TestCreateExpenseDebitsAccount() {
	expense, err := suite.service.CreateExpense(suite.ctx, dto.CreateExpenseRequest{
		Category:    "Utilities",
		Description: "Electricity",
		Amount:      decimal.RequireFromString("40"),
		AccountID:   "acc-cash",
	}, "tester")
	suite.Require().NoError(err)

	suite.Equal("USD", expense.Currency)
	suite.True(accountBalance(suite.T(), suite.store, "acc-cash").Equal(decimal.RequireFromString("60")))
}

func (suite *ExpenseServiceTestSuite) TestCreateExpenseRejectsInsufficientFunds() {
	_, err := suite.service.CreateExpense(suite.ctx, dto.CreateExpenseRequest{
		Description: "Rent",
		Amount:      decimal.RequireFromString("500"),
		AccountID:   "acc-cash",
	}, "tester")
	assert.ErrorIs(suite.T(), err, apperrors.ErrInsufficientFunds)
}

func (suite *ExpenseServiceTestSuite) TestDeleteExpenseRefundsAccount() {
	expense, err := suite.service.CreateExpense(suite.ctx, dto.CreateExpenseRequest{
		Description: "Electricity",
		Amount:      decimal.RequireFromString("40"),
		AccountID:   "acc-cash",
	}, "tester")
	suite.Require().NoError(err)

	suite.Require().NoError(suite.service.DeleteExpense(suite.ctx, expense.ID, "tester"))

	suite.True(accountBalance(suite.T(), suite.store, "acc-cash").Equal(decimal.RequireFromString("100")))
	suite.Empty(suite.service.ListExpenses(suite.ctx))
}

func TestExpenseServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ExpenseServiceTestSuite))
}
