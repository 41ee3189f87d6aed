package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/xaysimo/xaysimo/internal/core/ports/services"
	"github.com/xaysimo/xaysimo/internal/dto"
)

type partyHandler struct {
	customerService portssvc.CustomerSvcFacade
	supplierService portssvc.SupplierSvcFacade
	accountService  portssvc.AccountSvcFacade
}

// registerPartyRoutes registers customer, supplier and chart-of-accounts routes.
func registerPartyRoutes(
	rg *gin.RouterGroup,
	customerService portssvc.CustomerSvcFacade,
	supplierService portssvc.SupplierSvcFacade,
	accountService portssvc.AccountSvcFacade,
) {
	h := &partyHandler{
		customerService: customerService,
		supplierService: supplierService,
		accountService:  accountService,
	}

	customers := rg.Group("/customers")
	{
		customers.POST("", h.createCustomer)
		customers.GET("", h.listCustomers)
		customers.GET("/:id", h.getCustomer)
		customers.PUT("/:id", h.updateCustomer)
		customers.DELETE("/:id", h.deleteCustomer)
	}

	suppliers := rg.Group("/suppliers")
	{
		suppliers.POST("", h.createSupplier)
		suppliers.GET("", h.listSuppliers)
		suppliers.DELETE("/:id", h.deleteSupplier)
		suppliers.POST("/:id/payments", h.paySupplier)
	}

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.GET("", h.listAccounts)
		accounts.GET("/:id", h.getAccount)
		accounts.PUT("/:id", h.updateAccount)
		accounts.DELETE("/:id", h.deleteAccount)
	}
}

func (h *partyHandler) createCustomer(c *gin.Context) {
	var req dto.CreateCustomerRequest
	if !bindJSON(c, &req) {
		return
	}
	customer, err := h.customerService.CreateCustomer(c.Request.Context(), req, actorFromContext(c))
	if err != nil {
		respondServiceError(c, err, "Customer creation failed")
		return
	}
	c.JSON(http.StatusCreated, customer)
}

func (h *partyHandler) listCustomers(c *gin.Context) {
	c.JSON(http.StatusOK, h.customerService.ListCustomers(c.Request.Context()))
}

func (h *partyHandler) getCustomer(c *gin.Context) {
	customer, err := h.customerService.GetCustomer(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to fetch customer")
		return
	}
	c.JSON(http.StatusOK, customer)
}

func (h *partyHandler) updateCustomer(c *gin.Context) {
	var req dto.UpdateCustomerRequest
	if !bindJSON(c, &req) {
		return
	}
	customer, err := h.customerService.UpdateCustomer(c.Request.Context(), c.Param("id"), req, actorFromContext(c))
	if err != nil {
		respondServiceError(c, err, "Customer update failed")
		return
	}
	c.JSON(http.StatusOK, customer)
}

func (h *partyHandler) deleteCustomer(c *gin.Context) {
	if err := h.customerService.DeleteCustomer(c.Request.Context(), c.Param("id"), actorFromContext(c)); err != nil {
		respondServiceError(c, err, "Customer deletion failed")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *partyHandler) createSupplier(c *gin.Context) {
	var req dto.CreateSupplierRequest
	if !bindJSON(c, &req) {
		return
	}
	supplier, err := h.supplierService.CreateSupplier(c.Request.Context(), req, actorFromContext(c))
	if err != nil {
		respondServiceError(c, err, "Supplier creation failed")
		return
	}
	c.JSON(http.StatusCreated, supplier)
}

func (h *partyHandler) listSuppliers(c *gin.Context) {
	c.JSON(http.StatusOK, h.supplierService.ListSuppliers(c.Request.Context()))
}

func (h *partyHandler) deleteSupplier(c *gin.Context) {
	if err := h.supplierService.DeleteSupplier(c.Request.Context(), c.Param("id"), actorFromContext(c)); err != nil {
		respondServiceError(c, err, "Supplier deletion failed")
		return
	}
	c.Status(http.StatusNoContent)
}

// paySupplier godoc
// @Summary Pay a supplier
// @Description Settles part of the supplier's payable balance from a funding account
// @Tags suppliers
// @Accept  json
// @Produce  json
// @Param   id path string true "Supplier id"
// @Param   payment body dto.SupplierPaymentRequest true "Payment"
// @Success 200 {object} domain.Supplier
// @Failure 422 {object} map[string]string "Insufficient funds"
// @Security BearerAuth
// @Router /suppliers/{id}/payments [post]
func (h *partyHandler) paySupplier(c *gin.Context) {
	var req dto.SupplierPaymentRequest
	if !bindJSON(c, &req) {
		return
	}
	supplier, err := h.supplierService.PaySupplier(c.Request.Context(), c.Param("id"), req, actorFromContext(c))
	if err != nil {
		respondServiceError(c, err, "Supplier payment failed")
		return
	}
	c.JSON(http.StatusOK, supplier)
}

func (h *partyHandler) createAccount(c *gin.Context) {
	var req dto.CreateAccountRequest
	if !bindJSON(c, &req) {
		return
	}
	account, err := h.accountService.CreateAccount(c.Request.Context(), req, actorFromContext(c))
	if err != nil {
		respondServiceError(c, err, "Account creation failed")
		return
	}
	c.JSON(http.StatusCreated, account)
}

func (h *partyHandler) listAccounts(c *gin.Context) {
	c.JSON(http.StatusOK, h.accountService.ListAccounts(c.Request.Context()))
}

func (h *partyHandler) getAccount(c *gin.Context) {
	account, err := h.accountService.GetAccount(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to fetch account")
		return
	}
	c.JSON(http.StatusOK, account)
}

func (h *partyHandler) updateAccount(c *gin.Context) {
	var req dto.UpdateAccountRequest
	if !bindJSON(c, &req) {
		return
	}
	account, err := h.accountService.UpdateAccount(c.Request.Context(), c.Param("id"), req, actorFromContext(c))
	if err != nil {
		respondServiceError(c, err, "Account update failed")
		return
	}
	c.JSON(http.StatusOK, account)
}

func (h *partyHandler) deleteAccount(c *gin.Context) {
	if err := h.accountService.DeleteAccount(c.Request.Context(), c.Param("id"), actorFromContext(c)); err != nil {
		respondServiceError(c, err, "Account deletion failed")
		return
	}
	c.Status(http.StatusNoContent)
}
