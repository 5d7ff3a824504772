package handlers

import (
	"errors"
	"net/http"

	"scrapyard_backend/internal/services"
	"scrapyard_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// SellingHandler holds the selling service.
type SellingHandler struct {
	sellingService services.SellingService
}

// NewSellingHandler creates a new SellingHandler.
func NewSellingHandler(ss services.SellingService) *SellingHandler {
	return &SellingHandler{sellingService: ss}
}

// CreateSelling handles the creation of a new sale.
func (h *SellingHandler) CreateSelling(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}

	var req services.CreateSellingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "CreateSelling: Failed to bind JSON")
		utils.RespondValidationFailed(c, err.Error())
		return
	}

	created, err := h.sellingService.CreateSelling(tenantID, req)
	if err != nil {
		respondServiceError(c, err, "CreateSelling: Error from sellingService")
		return
	}
	c.JSON(http.StatusCreated, created)
}

// GetSellings lists all selling transactions for the tenant.
func (h *SellingHandler) GetSellings(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}

	transactions, err := h.sellingService.GetSellings(tenantID)
	if err != nil {
		respondServiceError(c, err, "GetSellings: Error from sellingService")
		return
	}
	c.JSON(http.StatusOK, transactions)
}

// GetSellingByID fetches one sale with its items.
func (h *SellingHandler) GetSellingByID(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	transaction, err := h.sellingService.GetSellingByID(tenantID, id)
	if err != nil {
		if errors.Is(err, services.ErrSellingNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Selling transaction not found.", err.Error()))
			return
		}
		respondServiceError(c, err, "GetSellingByID: Error from sellingService")
		return
	}
	c.JSON(http.StatusOK, transaction)
}
