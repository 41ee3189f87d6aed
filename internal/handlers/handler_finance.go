package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/xaysimo/xaysimo/internal/core/ports/services"
	"github.com/xaysimo/xaysimo/internal/dto"
	"github.com/xaysimo/xaysimo/internal/middleware"
)

type financeHandler struct {
	expenseService   portssvc.ExpenseSvcFacade
	reportingService portssvc.ReportingSvcFacade
	insightsService  portssvc.InsightsSvcFacade
}

// registerFinanceRoutes registers expense, reporting and insights routes.
func registerFinanceRoutes(
	rg *gin.RouterGroup,
	expenseService portssvc.ExpenseSvcFacade,
	reportingService portssvc.ReportingSvcFacade,
	insightsService portssvc.InsightsSvcFacade,
) {
	h := &financeHandler{
		expenseService:   expenseService,
		reportingService: reportingService,
		insightsService:  insightsService,
	}

	expenses := rg.Group("/expenses")
	{
		expenses.POST("", h.createExpense)
		expenses.GET("", h.listExpenses)
		expenses.DELETE("/:id", h.deleteExpense)
	}

	reports := rg.Group("/reports")
	{
		reports.GET("/income-statement", h.incomeStatement)
		reports.GET("/balance-sheet", h.balanceSheet)
		reports.GET("/z-report", h.zReport)
		reports.GET("/dashboard", h.dashboard)
		reports.GET("/sales/export", h.exportSales)
	}

	rg.POST("/insights", h.analyzeInsights)
}

func (h *financeHandler) createExpense(c *gin.Context) {
	var req dto.CreateExpenseRequest
	if !bindJSON(c, &req) {
		return
	}
	expense, err := h.expenseService.CreateExpense(c.Request.Context(), req, actorFromContext(c))
	if err != nil {
		respondServiceError(c, err, "Expense creation failed")
		return
	}
	c.JSON(http.StatusCreated, expense)
}

func (h *financeHandler) listExpenses(c *gin.Context) {
	c.JSON(http.StatusOK, h.expenseService.ListExpenses(c.Request.Context()))
}

func (h *financeHandler) deleteExpense(c *gin.Context) {
	if err := h.expenseService.DeleteExpense(c.Request.Context(), c.Param("id"), actorFromContext(c)); err != nil {
		respondServiceError(c, err, "Expense deletion failed")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *financeHandler) incomeStatement(c *gin.Context) {
	c.JSON(http.StatusOK, h.reportingService.IncomeStatement(c.Request.Context()))
}

func (h *financeHandler) balanceSheet(c *gin.Context) {
	c.JSON(http.StatusOK, h.reportingService.BalanceSheet(c.Request.Context()))
}

// zReport godoc
// @Summary Daily closing report
// @Description Buckets one day's takings by payment channel; defaults to today
// @Tags reports
// @Produce  json
// @Param   date query string false "Day in YYYY-MM-DD"
// @Success 200 {object} dto.ZReport
// @Failure 400 {object} map[string]string "Bad date"
// @Security BearerAuth
// @Router /reports/z-report [get]
func (h *financeHandler) zReport(c *gin.Context) {
	day := time.Now().UTC()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
			return
		}
		day = parsed
	}
	c.JSON(http.StatusOK, h.reportingService.ZReport(c.Request.Context(), day))
}

func (h *financeHandler) dashboard(c *gin.Context) {
	c.JSON(http.StatusOK, h.reportingService.Dashboard(c.Request.Context()))
}

// analyzeInsights godoc
// @Summary Ask the business intelligence assistant
// @Description Summarizes the current business data and asks the configured model
// @Tags reports
// @Accept  json
// @Produce  json
// @Param   request body dto.InsightsRequest true "Question"
// @Success 200 {object} dto.InsightsResponse
// @Failure 400 {object} map[string]string "Empty query"
// @Failure 503 {object} map[string]string "Model not configured or unreachable"
// @Security BearerAuth
// @Router /insights [post]
func (h *financeHandler) analyzeInsights(c *gin.Context) {
	var req dto.InsightsRequest
	if !bindJSON(c, &req) {
		return
	}
	answer, err := h.insightsService.Analyze(c.Request.Context(), req.Query)
	if err != nil {
		respondServiceError(c, err, "Insight analysis failed")
		return
	}
	c.JSON(http.StatusOK, dto.InsightsResponse{Answer: answer})
}

func (h *financeHandler) exportSales(c *gin.Context) {
	c.Header("Content-Disposition", `attachment; filename="sales.csv"`)
	c.Header("Content-Type", "text/csv; charset=utf-8")
	if err := h.reportingService.ExportSalesCSV(c.Request.Context(), c.Writer); err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Sales export failed", slog.String("error", err.Error()))
	}
}
