package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/xaysimo/xaysimo/internal/core/ports/services"
	"github.com/xaysimo/xaysimo/internal/dto"
	"github.com/xaysimo/xaysimo/internal/middleware"
)

type salesHandler struct {
	registerService portssvc.RegisterSvcFacade
	debtService     portssvc.DebtSvcFacade
}

// registerSalesRoutes registers the sales register and debt collection routes.
func registerSalesRoutes(rg *gin.RouterGroup, registerService portssvc.RegisterSvcFacade, debtService portssvc.DebtSvcFacade) {
	h := &salesHandler{registerService: registerService, debtService: debtService}

	sales := rg.Group("/sales")
	{
		sales.POST("", h.checkout)
		sales.GET("", h.listTransactions)
		sales.GET("/:id", h.getTransaction)
		sales.DELETE("/:id", h.deleteInvoice)
	}

	debtors := rg.Group("/debtors")
	{
		debtors.GET("", h.listDebtors)
		debtors.POST("/payments", h.receiveDebtPayment)
	}
}

// checkout godoc
// @Summary Record a sale
// @Description Commits a cart atomically: stock, accounts, customer debt and loyalty, transaction log
// @Tags sales
// @Accept  json
// @Produce  json
// @Param   sale body dto.CheckoutRequest true "Cart and payment"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Validation error"
// @Security BearerAuth
// @Router /sales [post]
func (h *salesHandler) checkout(c *gin.Context) {
	var req dto.CheckoutRequest
	if !bindJSON(c, &req) {
		return
	}

	tx, err := h.registerService.Checkout(c.Request.Context(), req, actorFromContext(c))
	if err != nil {
		respondServiceError(c, err, "Checkout failed")
		return
	}
	c.JSON(http.StatusCreated, dto.NewTransactionResponse(*tx))
}

func (h *salesHandler) listTransactions(c *gin.Context) {
	txs := h.registerService.ListTransactions(c.Request.Context())
	out := make([]dto.TransactionResponse, 0, len(txs))
	for _, tx := range txs {
		out = append(out, dto.NewTransactionResponse(tx))
	}
	c.JSON(http.StatusOK, out)
}

func (h *salesHandler) getTransaction(c *gin.Context) {
	tx, err := h.registerService.GetTransaction(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to fetch transaction")
		return
	}
	c.JSON(http.StatusOK, dto.NewTransactionResponse(*tx))
}

// deleteInvoice godoc
// @Summary Delete an invoice
// @Description Removes a transaction and reverses its stock, account and customer effects
// @Tags sales
// @Produce  json
// @Param   id path string true "Transaction id"
// @Success 204
// @Failure 404 {object} map[string]string "Unknown transaction"
// @Security BearerAuth
// @Router /sales/{id} [delete]
func (h *salesHandler) deleteInvoice(c *gin.Context) {
	id := c.Param("id")
	if err := h.registerService.DeleteInvoice(c.Request.Context(), id, actorFromContext(c)); err != nil {
		respondServiceError(c, err, "Invoice deletion failed")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Invoice deleted", slog.String("transaction_id", id))
	c.Status(http.StatusNoContent)
}

func (h *salesHandler) listDebtors(c *gin.Context) {
	c.JSON(http.StatusOK, h.debtService.ListDebtors(c.Request.Context()))
}

// receiveDebtPayment godoc
// @Summary Collect a debt payment
// @Description Credits the destination account and reduces the customer's balance
// @Tags debtors
// @Accept  json
// @Produce  json
// @Param   payment body dto.DebtPaymentRequest true "Payment"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Validation error"
// @Security BearerAuth
// @Router /debtors/payments [post]
func (h *salesHandler) receiveDebtPayment(c *gin.Context) {
	var req dto.DebtPaymentRequest
	if !bindJSON(c, &req) {
		return
	}

	tx, err := h.debtService.ReceivePayment(c.Request.Context(), req, actorFromContext(c))
	if err != nil {
		respondServiceError(c, err, "Debt payment failed")
		return
	}
	c.JSON(http.StatusCreated, dto.NewTransactionResponse(*tx))
}
