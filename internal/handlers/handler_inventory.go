package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/xaysimo/xaysimo/internal/core/ports/services"
	"github.com/xaysimo/xaysimo/internal/dto"
	"github.com/xaysimo/xaysimo/internal/middleware"
)

type inventoryHandler struct {
	productService    portssvc.ProductSvcFacade
	purchaseService   portssvc.PurchaseSvcFacade
	adjustmentService portssvc.AdjustmentSvcFacade
}

// registerInventoryRoutes registers catalog, purchase and stock adjustment routes.
func registerInventoryRoutes(
	rg *gin.RouterGroup,
	productService portssvc.ProductSvcFacade,
	purchaseService portssvc.PurchaseSvcFacade,
	adjustmentService portssvc.AdjustmentSvcFacade,
) {
	h := &inventoryHandler{
		productService:    productService,
		purchaseService:   purchaseService,
		adjustmentService: adjustmentService,
	}

	products := rg.Group("/products")
	{
		products.POST("", h.createProduct)
		products.GET("", h.listProducts)
		products.GET("/:id", h.getProduct)
		products.PUT("/:id", h.updateProduct)
		products.DELETE("/:id", h.deleteProduct)
		products.POST("/import", h.importProducts)
		products.GET("/export", h.exportProducts)
	}

	rg.POST("/purchases", h.recordPurchase)

	adjustments := rg.Group("/adjustments")
	{
		adjustments.POST("", h.recordLoss)
		adjustments.GET("", h.listAdjustments)
		adjustments.DELETE("/:id", h.reverseAdjustment)
	}
}

func (h *inventoryHandler) createProduct(c *gin.Context) {
	var req dto.CreateProductRequest
	if !bindJSON(c, &req) {
		return
	}
	product, err := h.productService.CreateProduct(c.Request.Context(), req, actorFromContext(c))
	if err != nil {
		respondServiceError(c, err, "Product creation failed")
		return
	}
	c.JSON(http.StatusCreated, product)
}

func (h *inventoryHandler) listProducts(c *gin.Context) {
	c.JSON(http.StatusOK, h.productService.ListProducts(c.Request.Context()))
}

func (h *inventoryHandler) getProduct(c *gin.Context) {
	product, err := h.productService.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to fetch product")
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *inventoryHandler) updateProduct(c *gin.Context) {
	var req dto.UpdateProductRequest
	if !bindJSON(c, &req) {
		return
	}
	product, err := h.productService.UpdateProduct(c.Request.Context(), c.Param("id"), req, actorFromContext(c))
	if err != nil {
		respondServiceError(c, err, "Product update failed")
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *inventoryHandler) deleteProduct(c *gin.Context) {
	if err := h.productService.DeleteProduct(c.Request.Context(), c.Param("id"), actorFromContext(c)); err != nil {
		respondServiceError(c, err, "Product deletion failed")
		return
	}
	c.Status(http.StatusNoContent)
}

// importProducts godoc
// @Summary Import products from CSV
// @Description Appends catalog entries parsed from an uploaded CSV file
// @Tags products
// @Accept  multipart/form-data
// @Produce  json
// @Param   file formData file true "CSV file"
// @Success 200 {object} map[string]int "imported count"
// @Failure 400 {object} map[string]string "Parse error"
// @Security BearerAuth
// @Router /products/import [post]
func (h *inventoryHandler) importProducts(c *gin.Context) {
	file, _, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A CSV file upload named 'file' is required"})
		return
	}
	defer file.Close()

	count, err := h.productService.ImportCSV(c.Request.Context(), file, actorFromContext(c))
	if err != nil {
		respondServiceError(c, err, "Product import failed")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Products imported", slog.Int("count", count))
	c.JSON(http.StatusOK, gin.H{"imported": count})
}

func (h *inventoryHandler) exportProducts(c *gin.Context) {
	c.Header("Content-Disposition", `attachment; filename="products.csv"`)
	c.Header("Content-Type", "text/csv; charset=utf-8")
	if err := h.productService.ExportCSV(c.Request.Context(), c.Writer); err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Product export failed", slog.String("error", err.Error()))
	}
}

// recordPurchase godoc
// @Summary Record a purchase
// @Description Stocks in a product, updating cost price and either debiting an account or posting to the supplier's payables
// @Tags purchases
// @Accept  json
// @Produce  json
// @Param   purchase body dto.PurchaseRequest true "Purchase"
// @Success 201 {object} dto.PurchaseResponse
// @Failure 422 {object} map[string]string "Insufficient funds"
// @Security BearerAuth
// @Router /purchases [post]
func (h *inventoryHandler) recordPurchase(c *gin.Context) {
	var req dto.PurchaseRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.purchaseService.RecordPurchase(c.Request.Context(), req, actorFromContext(c))
	if err != nil {
		respondServiceError(c, err, "Purchase failed")
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *inventoryHandler) recordLoss(c *gin.Context) {
	var req dto.AdjustmentRequest
	if !bindJSON(c, &req) {
		return
	}
	adjustment, err := h.adjustmentService.RecordLoss(c.Request.Context(), req, actorFromContext(c))
	if err != nil {
		respondServiceError(c, err, "Stock adjustment failed")
		return
	}
	c.JSON(http.StatusCreated, adjustment)
}

func (h *inventoryHandler) listAdjustments(c *gin.Context) {
	c.JSON(http.StatusOK, h.adjustmentService.ListAdjustments(c.Request.Context()))
}

func (h *inventoryHandler) reverseAdjustment(c *gin.Context) {
	if err := h.adjustmentService.ReverseAdjustment(c.Request.Context(), c.Param("id"), actorFromContext(c)); err != nil {
		respondServiceError(c, err, "Adjustment reversal failed")
		return
	}
	c.Status(http.StatusNoContent)
}
