package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// PaymentMethod enumerates how a sale settles.
type PaymentMethod string

const (
	Cash           PaymentMethod = "Cash"
	BankTransfer   PaymentMethod = "Bank Transfer"
	MobileMoney    PaymentMethod = "Mobile Money"
	Debt           PaymentMethod = "Debt"
	PartialPayment PaymentMethod = "Partial Payment"
)

// ValidPaymentMethod reports whether m is a known payment method.
func ValidPaymentMethod(m PaymentMethod) bool {
	switch m {
	case Cash, BankTransfer, MobileMoney, Debt, PartialPayment:
		return true
	}
	return false
}

// PaymentSplit carries the per-channel amounts of a partial payment.
// Debt is the remainder recorded at sale time so reversal does not have to
// re-derive it. The split is user-entered: the system does not force
// cash+bank+mobile+debt to equal the sale total, and Debt can go negative
// when the customer overpays.
type PaymentSplit struct {
	Cash   decimal.Decimal `json:"cash"`
	Bank   decimal.Decimal `json:"bank"`
	Mobile decimal.Decimal `json:"mobile"`
	Debt   decimal.Decimal `json:"debt"`
}

// Payment is the tagged settlement of a transaction: Split is present exactly
// when Method is PartialPayment.
type Payment struct {
	Method PaymentMethod `json:"method"`
	Split  *PaymentSplit `json:"split,omitempty"`
}

// NewPayment builds a validated Payment. split must be non-nil for
// PartialPayment and nil otherwise.
func NewPayment(method PaymentMethod, split *PaymentSplit) (Payment, error) {
	if !ValidPaymentMethod(method) {
		return Payment{}, fmt.Errorf("unknown payment method %q", method)
	}
	if method == PartialPayment && split == nil {
		return Payment{}, fmt.Errorf("partial payment requires a payment split")
	}
	if method != PartialPayment && split != nil {
		return Payment{}, fmt.Errorf("payment split is only valid for partial payments")
	}
	return Payment{Method: method, Split: split}, nil
}

// Received returns the amount that reached the destination account for a
// transaction of the given total.
func (p Payment) Received(total decimal.Decimal) decimal.Decimal {
	switch p.Method {
	case Debt:
		return decimal.Zero
	case PartialPayment:
		if p.Split == nil {
			return decimal.Zero
		}
		return p.Split.Cash.Add(p.Split.Bank).Add(p.Split.Mobile)
	default:
		return total
	}
}

// DebtPortion returns the part of the total left owing on the customer.
func (p Payment) DebtPortion(total decimal.Decimal) decimal.Decimal {
	switch p.Method {
	case Debt:
		return total
	case PartialPayment:
		if p.Split == nil {
			return decimal.Zero
		}
		return p.Split.Debt
	default:
		return decimal.Zero
	}
}

// RequiresAccount reports whether the method needs a funds-destination account.
func (p Payment) RequiresAccount() bool {
	return p.Method != Debt
}

// RequiresCustomer reports whether the method needs an attached customer.
func (p Payment) RequiresCustomer() bool {
	return p.Method == Debt || p.Method == PartialPayment
}
