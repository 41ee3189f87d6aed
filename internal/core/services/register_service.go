package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/xaysimo/xaysimo/internal/apperrors"
	"github.com/xaysimo/xaysimo/internal/core/domain"
	portssvc "github.com/xaysimo/xaysimo/internal/core/ports/services"
	"github.com/xaysimo/xaysimo/internal/dto"
	"github.com/xaysimo/xaysimo/internal/middleware"
	"github.com/xaysimo/xaysimo/internal/store"
)

// RegisterService is the sales register. Checkout and DeleteInvoice are the
// two ends of the same contract: deletion re-derives its reversal purely from
// the stored transaction snapshot, so everything deletion needs must be
// captured at sale time.
type RegisterService struct {
	store *store.Store
}

var _ portssvc.RegisterSvcFacade = (*RegisterService)(nil)

func NewRegisterService(s *store.Store) *RegisterService {
	return &RegisterService{store: s}
}

func (s *RegisterService) Checkout(ctx context.Context, req dto.CheckoutRequest, actor string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: cart is empty", apperrors.ErrValidation)
	}
	if !domain.ValidPaymentMethod(req.PaymentMethod) {
		return nil, fmt.Errorf("%w: unknown payment method %q", apperrors.ErrValidation, req.PaymentMethod)
	}
	if req.PaymentMethod == domain.PartialPayment && req.Split == nil {
		return nil, fmt.Errorf("%w: partial payment requires a payment split", apperrors.ErrValidation)
	}

	var created domain.Transaction
	_, err := s.store.Update(ctx, func(doc *domain.AppData) error {
		now := time.Now().UTC()

		items := make([]domain.CartItem, 0, len(req.Items))
		subtotal := decimal.Zero
		for _, line := range req.Items {
			product := doc.ProductByID(line.ProductID)
			if product == nil {
				return fmt.Errorf("%w: product %s", apperrors.ErrNotFound, line.ProductID)
			}
			sellPrice := product.SellPrice
			if line.SellPrice != nil {
				sellPrice = *line.SellPrice
			}
			item := domain.CartItem{
				ProductID: product.ID,
				Name:      product.Name,
				SKU:       product.SKU,
				CostPrice: product.CostPrice,
				SellPrice: sellPrice,
				Quantity:  line.Quantity,
			}
			items = append(items, item)
			subtotal = subtotal.Add(item.LineTotal())
		}

		taxRate := doc.Settings.TaxRate
		if req.TaxRate != nil {
			taxRate = *req.TaxRate
		}
		tax := subtotal.Mul(taxRate).Div(decimal.NewFromInt(100))
		total := subtotal.Add(tax)

		var split *domain.PaymentSplit
		if req.PaymentMethod == domain.PartialPayment {
			deposit := req.Split.Cash.Add(req.Split.Bank).Add(req.Split.Mobile)
			// The remainder becomes debt, including a negative remainder on
			// overpayment. The split is stored as entered.
			split = &domain.PaymentSplit{
				Cash:   req.Split.Cash,
				Bank:   req.Split.Bank,
				Mobile: req.Split.Mobile,
				Debt:   total.Sub(deposit),
			}
		}
		payment, err := domain.NewPayment(req.PaymentMethod, split)
		if err != nil {
			return fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}

		if payment.RequiresAccount() {
			if req.AccountID == "" {
				return fmt.Errorf("%w: a destination account is required", apperrors.ErrValidation)
			}
			if doc.AccountByID(req.AccountID) == nil {
				return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, req.AccountID)
			}
		}

		var customer *domain.Customer
		if req.CustomerID != "" {
			customer = doc.CustomerByID(req.CustomerID)
			if customer == nil {
				return fmt.Errorf("%w: customer %s", apperrors.ErrNotFound, req.CustomerID)
			}
		}
		if payment.RequiresCustomer() && customer == nil {
			return fmt.Errorf("%w: %s sales require a customer", apperrors.ErrValidation, req.PaymentMethod)
		}

		for _, item := range items {
			doc.ProductByID(item.ProductID).Stock -= item.Quantity
		}

		if err := applyPostings(doc, ledgerEvent{
			kind:      eventSaleDeposit,
			amount:    payment.Received(total),
			accountID: req.AccountID,
		}); err != nil {
			return err
		}

		currency := req.Currency
		if currency == "" {
			currency = doc.Settings.DefaultCurrency
		}

		tx := domain.Transaction{
			ID:           uuid.NewString(),
			Items:        items,
			Subtotal:     subtotal,
			Tax:          tax,
			Total:        total,
			Currency:     currency,
			ExchangeRate: doc.Settings.ExchangeRate,
			Payment:      payment,
			AccountID:    req.AccountID,
			CustomerID:   req.CustomerID,
			Timestamp:    now,
			Type:         domain.TxSale,
		}

		if customer != nil {
			customer.DebtBalance = customer.DebtBalance.Add(payment.DebtPortion(total))
			customer.LoyaltyPoints += total.Floor().IntPart()
			customer.History = append(customer.History, tx.ID)
		}

		doc.Transactions = append(doc.Transactions, tx)
		appendAudit(doc, actor, "Sale",
			fmt.Sprintf("Invoice %s for %s %s via %s", tx.ID, total.StringFixed(2), currency, payment.Method), now)

		created = tx
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Checkout completed",
		slog.String("transaction_id", created.ID),
		slog.String("total", created.Total.String()),
		slog.String("method", string(created.Payment.Method)))
	return &created, nil
}

func (s *RegisterService) DeleteInvoice(ctx context.Context, transactionID string, actor string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	_, err := s.store.Update(ctx, func(doc *domain.AppData) error {
		found := doc.TransactionByID(transactionID)
		if found == nil {
			return fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, transactionID)
		}
		// Copy before removeTransaction compacts the slice the pointer
		// aliases, so the audit entry reads this invoice's figures.
		tx := *found

		now := time.Now().UTC()
		switch tx.Type {
		case domain.TxDebtPayment:
			if err := reverseDebtPayment(doc, tx); err != nil {
				return err
			}
		default:
			if err := reverseSale(doc, tx); err != nil {
				return err
			}
		}

		removeTransaction(doc, transactionID)
		appendAudit(doc, actor, "Invoice Deleted",
			fmt.Sprintf("Reversed %s %s (%s %s)", tx.Type, transactionID, tx.Total.StringFixed(2), tx.Currency), now)
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info("Invoice deleted and reversed", slog.String("transaction_id", transactionID))
	return nil
}

// reverseSale undoes a sale from its snapshot: stock restore, received-amount
// debit floored at zero, customer debt and loyalty revert, history removal.
func reverseSale(doc *domain.AppData, tx domain.Transaction) error {
	for _, item := range tx.Items {
		if product := doc.ProductByID(item.ProductID); product != nil {
			product.Stock += item.Quantity
		}
	}

	if err := applyPostings(doc, ledgerEvent{
		kind:      eventSaleReversal,
		amount:    tx.Payment.Received(tx.Total),
		accountID: tx.AccountID,
	}); err != nil {
		return err
	}

	if customer := doc.CustomerByID(tx.CustomerID); customer != nil {
		customer.DebtBalance = floorZero(customer.DebtBalance.Sub(tx.Payment.DebtPortion(tx.Total)))
		customer.LoyaltyPoints = max(0, customer.LoyaltyPoints-tx.Total.Floor().IntPart())
		customer.History = removeFromHistory(customer.History, tx.ID)
	}
	return nil
}

// reverseDebtPayment is the symmetric undo of a debt collection: the account
// gives the amount back and the customer owes it again.
func reverseDebtPayment(doc *domain.AppData, tx domain.Transaction) error {
	if err := applyPostings(doc, ledgerEvent{
		kind:      eventDebtPaymentReversal,
		amount:    tx.Total,
		accountID: tx.AccountID,
	}); err != nil {
		return err
	}

	if customer := doc.CustomerByID(tx.CustomerID); customer != nil {
		customer.DebtBalance = customer.DebtBalance.Add(tx.Total)
		customer.History = removeFromHistory(customer.History, tx.ID)
	}
	return nil
}

func (s *RegisterService) GetTransaction(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	tx := s.store.Snapshot().TransactionByID(transactionID)
	if tx == nil {
		return nil, fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, transactionID)
	}
	out := *tx
	return &out, nil
}

func (s *RegisterService) ListTransactions(ctx context.Context) []domain.Transaction {
	return s.store.Snapshot().Transactions
}

func removeTransaction(doc *domain.AppData, transactionID string) {
	out := doc.Transactions[:0]
	for _, tx := range doc.Transactions {
		if tx.ID != transactionID {
			out = append(out, tx)
		}
	}
	doc.Transactions = out
}

func removeFromHistory(history []string, transactionID string) []string {
	out := history[:0]
	for _, id := range history {
		if id != transactionID {
			out = append(out, id)
		}
	}
	return out
}

func floorZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
