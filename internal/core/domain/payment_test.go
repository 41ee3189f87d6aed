package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xaysimo/xaysimo/internal/core/domain"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestNewPaymentValidation(t *testing.T) {
	_, err := domain.NewPayment("Barter", nil)
	assert.Error(t, err)

	_, err = domain.NewPayment(domain.PartialPayment, nil)
	assert.Error(t, err)

	_, err = domain.NewPayment(domain.Cash, &domain.PaymentSplit{})
	assert.Error(t, err)

	p, err := domain.NewPayment(domain.Cash, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.Cash, p.Method)
}

func TestReceivedAndDebtPortion(t *testing.T) {
	total := d("100")

	cash, _ := domain.NewPayment(domain.Cash, nil)
	assert.True(t, cash.Received(total).Equal(d("100")))
	assert.True(t, cash.DebtPortion(total).IsZero())

	debt, _ := domain.NewPayment(domain.Debt, nil)
	assert.True(t, debt.Received(total).IsZero())
	assert.True(t, debt.DebtPortion(total).Equal(d("100")))

	partial, _ := domain.NewPayment(domain.PartialPayment, &domain.PaymentSplit{
		Cash:   d("30"),
		Bank:   d("20"),
		Mobile: d("10"),
		Debt:   d("40"),
	})
	assert.True(t, partial.Received(total).Equal(d("60")))
	assert.True(t, partial.DebtPortion(total).Equal(d("40")))
}

func TestPaymentRequirements(t *testing.T) {
	cash, _ := domain.NewPayment(domain.Cash, nil)
	assert.True(t, cash.RequiresAccount())
	assert.False(t, cash.RequiresCustomer())

	debt, _ := domain.NewPayment(domain.Debt, nil)
	assert.False(t, debt.RequiresAccount())
	assert.True(t, debt.RequiresCustomer())

	partial, _ := domain.NewPayment(domain.PartialPayment, &domain.PaymentSplit{})
	assert.True(t, partial.RequiresAccount())
	assert.True(t, partial.RequiresCustomer())
}

func TestLossAccountNames(t *testing.T) {
	assert.Equal(t, domain.AccountNameLossDamaged, domain.AdjustDamage.LossAccountName())
	assert.Equal(t, domain.AccountNameLossLost, domain.AdjustLost.LossAccountName())
	assert.Equal(t, domain.AccountNameLossExpired, domain.AdjustExpired.LossAccountName())
	assert.Equal(t, domain.AccountNameInventory, domain.AdjustReturnToVendor.LossAccountName())
}

func TestCartItemLineMath(t *testing.T) {
	item := domain.CartItem{
		CostPrice: d("2.50"),
		SellPrice: d("4"),
		Quantity:  3,
	}
	assert.True(t, item.LineTotal().Equal(d("12")))
	assert.True(t, item.LineCost().Equal(d("7.50")))
}
