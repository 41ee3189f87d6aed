package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/xaysimo/xaysimo/internal/ai"
	"github.com/xaysimo/xaysimo/internal/apperrors"
	"github.com/xaysimo/xaysimo/internal/core/domain"
	portssvc "github.com/xaysimo/xaysimo/internal/core/ports/services"
	"github.com/xaysimo/xaysimo/internal/middleware"
	"github.com/xaysimo/xaysimo/internal/store"
)

const insightsSystemInstruction = `You are an expert business intelligence assistant for a retail ERP/POS system.
Analyze sales, debt, inventory, and expenses to provide actionable growth strategies.
Keep responses concise, professional, and data-driven.
Use Markdown formatting for clarity (bold, lists).`

// InsightsService answers free-form business questions by summarizing the
// current document into a prompt for an external model. Only aggregate
// figures leave the process, never individual records.
type InsightsService struct {
	store *store.Store
	model ai.Analyzer
}

var _ portssvc.InsightsSvcFacade = (*InsightsService)(nil)

// NewInsightsService wires the insights endpoint. A nil model disables it.
func NewInsightsService(s *store.Store, model ai.Analyzer) *InsightsService {
	return &InsightsService{store: s, model: model}
}

func (s *InsightsService) Analyze(ctx context.Context, query string) (string, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if strings.TrimSpace(query) == "" {
		return "", fmt.Errorf("%w: query is empty", apperrors.ErrValidation)
	}
	if s.model == nil {
		return "", fmt.Errorf("%w: insights are disabled, no Gemini API key is configured", apperrors.ErrUnavailable)
	}

	prompt := buildInsightsPrompt(s.store.Snapshot(), query)
	answer, err := s.model.Analyze(ctx, insightsSystemInstruction, prompt)
	if err != nil {
		logger.Error("Insight analysis failed", slog.String("error", err.Error()))
		return "", fmt.Errorf("%w: %s", apperrors.ErrUnavailable, err.Error())
	}

	logger.Info("Insight generated", slog.Int("query_length", len(query)))
	return answer, nil
}

func buildInsightsPrompt(doc *domain.AppData, query string) string {
	revenue := decimal.Zero
	for _, tx := range doc.Transactions {
		revenue = revenue.Add(tx.Total)
	}

	inventoryValue := decimal.Zero
	for _, p := range doc.Products {
		if p.Stock > 0 {
			inventoryValue = inventoryValue.Add(p.CostPrice.Mul(decimal.NewFromInt(p.Stock)))
		}
	}

	expensesTotal := decimal.Zero
	for _, e := range doc.Expenses {
		expensesTotal = expensesTotal.Add(e.Amount)
	}

	debtors := 0
	totalDebt := decimal.Zero
	for _, c := range doc.Customers {
		if c.DebtBalance.IsPositive() {
			debtors++
		}
		totalDebt = totalDebt.Add(c.DebtBalance)
	}

	currency := doc.Settings.DefaultCurrency
	netProfit := incomeStatement(doc).NetProfit

	return fmt.Sprintf(`BUSINESS DATA FOR ANALYSIS:
- Total products in catalog: %d
- Total transactions recorded: %d
- Gross revenue: %s %s
- Inventory asset value at cost: %s %s
- Cumulative operating expenses: %s %s
- Net profit: %s %s
- Outstanding receivables: %s %s across %d active debtors

USER REQUEST: %q`,
		len(doc.Products),
		len(doc.Transactions),
		revenue.StringFixed(2), currency,
		inventoryValue.StringFixed(2), currency,
		expensesTotal.StringFixed(2), currency,
		netProfit.StringFixed(2), currency,
		totalDebt.StringFixed(2), currency, debtors,
		query)
}
