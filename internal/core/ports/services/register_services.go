package services

import (
	"context"

	"github.com/xaysimo/xaysimo/internal/core/domain"
	"github.com/xaysimo/xaysimo/internal/dto"
)

// RegisterSvcFacade is the sales register: checkout and invoice reversal.
// These are two of the ledger-consistency event handlers; each call commits a
// single atomic replace of the shared document or fails without mutating it.
type RegisterSvcFacade interface {
	Checkout(ctx context.Context, req dto.CheckoutRequest, actor string) (*domain.Transaction, error)
	DeleteInvoice(ctx context.Context, transactionID string, actor string) error
	GetTransaction(ctx context.Context, transactionID string) (*domain.Transaction, error)
	ListTransactions(ctx context.Context) []domain.Transaction
}

// DebtSvcFacade handles customer debt collection.
type DebtSvcFacade interface {
	ListDebtors(ctx context.Context) []domain.Customer
	ReceivePayment(ctx context.Context, req dto.DebtPaymentRequest, actor string) (*domain.Transaction, error)
}
