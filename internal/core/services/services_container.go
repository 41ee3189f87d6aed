package services

import (
	"github.com/xaysimo/xaysimo/internal/ai"
	portssvc "github.com/xaysimo/xaysimo/internal/core/ports/services"
	"github.com/xaysimo/xaysimo/internal/platform/config"
	"github.com/xaysimo/xaysimo/internal/store"
)

// NewServiceContainer wires every service over the shared document store.
func NewServiceContainer(s *store.Store, cfg *config.Config) *portssvc.ServiceContainer {
	var analyzer ai.Analyzer
	if cfg.GeminiAPIKey != "" {
		analyzer = ai.NewGemini(cfg.GeminiAPIKey)
	}

	return &portssvc.ServiceContainer{
		Auth:       NewAuthService(s, cfg),
		Register:   NewRegisterService(s),
		Debt:       NewDebtService(s),
		Product:    NewProductService(s),
		Purchase:   NewPurchaseService(s, cfg.PurchaseFundsPolicy),
		Adjustment: NewAdjustmentService(s),
		Customer:   NewCustomerService(s),
		Supplier:   NewSupplierService(s),
		Account:    NewAccountService(s),
		Expense:    NewExpenseService(s),
		Reporting:  NewReportingService(s),
		Settings:   NewSettingsService(s),
		Audit:      NewAuditService(s),
		Backup:     NewBackupService(s),
		Insights:   NewInsightsService(s, analyzer),
	}
}
