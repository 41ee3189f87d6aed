package handlers

import (
	"github.com/gin-gonic/gin"

	portssvc "github.com/xaysimo/xaysimo/internal/core/ports/services"
	"github.com/xaysimo/xaysimo/internal/middleware"
	"github.com/xaysimo/xaysimo/internal/mirror"
	"github.com/xaysimo/xaysimo/internal/platform/config"
	"github.com/xaysimo/xaysimo/internal/store"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces.
// syncer is nil when no remote mirror is configured; the sync routes then
// report that state instead of failing.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	documentStore *store.Store,
	syncer *mirror.Syncer,
) {
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	registerAuthRoutes(r, cfg, services.Auth)

	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	registerSalesRoutes(v1, services.Register, services.Debt)
	registerInventoryRoutes(v1, services.Product, services.Purchase, services.Adjustment)
	registerPartyRoutes(v1, services.Customer, services.Supplier, services.Account)
	registerFinanceRoutes(v1, services.Expense, services.Reporting, services.Insights)
	registerSystemRoutes(v1, services.Settings, services.Audit, services.Backup, documentStore, syncer)
}
