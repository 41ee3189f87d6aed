package services

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/xaysimo/xaysimo/internal/core/domain"
)

// The ledger posting rules. Every money movement in the system flows through
// this table: an event kind maps to the list of (account selector, sign)
// pairs it posts, so each handler moves balances the same way instead of
// naming accounts inline.

type eventKind int

const (
	eventSaleDeposit eventKind = iota
	eventSaleReversal
	eventDebtPayment
	eventDebtPaymentReversal
	eventPurchase
	eventSupplierPayment
	eventStockLoss
	eventStockLossReversal
	eventExpense
	eventExpenseRefund
)

// ledgerEvent is one money movement to be posted.
type ledgerEvent struct {
	kind   eventKind
	amount decimal.Decimal
	// accountID is the event's destination or funding account.
	accountID string
	// lossAccount is the fixed-name loss account for stock adjustments.
	lossAccount string
}

// accountRef selects an account either by id or by fixed name.
type accountRef struct {
	id   string
	name string
}

type sign int

const (
	credit sign = iota // adds to the balance
	debit              // subtracts from the balance
)

// postingRule is one leg of an event's posting.
type postingRule struct {
	selector func(ev ledgerEvent) accountRef
	sign     sign
	// floorZero clamps the resulting balance at zero, preserved from the
	// original reversal and loss flows.
	floorZero bool
}

func eventAccount(ev ledgerEvent) accountRef { return accountRef{id: ev.accountID} }
func inventoryAccount(ledgerEvent) accountRef {
	return accountRef{name: domain.AccountNameInventory}
}
func lossAccount(ev ledgerEvent) accountRef { return accountRef{name: ev.lossAccount} }

var postingRules = map[eventKind][]postingRule{
	eventSaleDeposit: {
		{selector: eventAccount, sign: credit},
	},
	eventSaleReversal: {
		{selector: eventAccount, sign: debit, floorZero: true},
	},
	eventDebtPayment: {
		{selector: eventAccount, sign: credit},
	},
	eventDebtPaymentReversal: {
		{selector: eventAccount, sign: debit, floorZero: true},
	},
	eventPurchase: {
		{selector: eventAccount, sign: debit},
	},
	eventSupplierPayment: {
		{selector: eventAccount, sign: debit},
	},
	eventStockLoss: {
		{selector: inventoryAccount, sign: debit, floorZero: true},
		{selector: lossAccount, sign: credit},
	},
	eventStockLossReversal: {
		{selector: inventoryAccount, sign: credit},
		{selector: lossAccount, sign: debit, floorZero: true},
	},
	eventExpense: {
		{selector: eventAccount, sign: debit},
	},
	eventExpenseRefund: {
		{selector: eventAccount, sign: credit},
	},
}

// applyPostings posts one event against the document's accounts. Zero-amount
// events are a no-op. A leg whose account does not exist is skipped: handlers
// validate account existence where it is required, and reversals of records
// whose account was deleted afterwards must still go through.
func applyPostings(doc *domain.AppData, ev ledgerEvent) error {
	if ev.amount.IsZero() {
		return nil
	}
	rules, ok := postingRules[ev.kind]
	if !ok {
		return fmt.Errorf("no posting rules for event kind %d", ev.kind)
	}

	for _, rule := range rules {
		ref := rule.selector(ev)

		var account *domain.Account
		if ref.id != "" {
			account = doc.AccountByID(ref.id)
		} else {
			account = doc.AccountByName(ref.name)
		}
		if account == nil {
			continue
		}

		switch rule.sign {
		case credit:
			account.Balance = account.Balance.Add(ev.amount)
		case debit:
			next := account.Balance.Sub(ev.amount)
			if rule.floorZero && next.IsNegative() {
				next = decimal.Zero
			}
			account.Balance = next
		}
	}
	return nil
}
