package handlers

import (
	"errors"
	"net/http"

	"scrapyard_backend/internal/models"
	"scrapyard_backend/internal/services"
	"scrapyard_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// ReceivingHandler holds the receiving service.
type ReceivingHandler struct {
	receivingService services.ReceivingService
}

// NewReceivingHandler creates a new ReceivingHandler.
func NewReceivingHandler(rs services.ReceivingService) *ReceivingHandler {
	return &ReceivingHandler{receivingService: rs}
}

// CreateReceiving handles the creation of a new receiving transaction with its items.
func (h *ReceivingHandler) CreateReceiving(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}

	var req services.CreateReceivingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "CreateReceiving: Failed to bind JSON")
		utils.RespondValidationFailed(c, err.Error())
		return
	}

	created, err := h.receivingService.CreateReceiving(tenantID, req)
	if err != nil {
		respondServiceError(c, err, "CreateReceiving: Error from receivingService")
		return
	}
	c.JSON(http.StatusCreated, created)
}

// GetReceivings handles listing receiving transactions, optionally filtered by status.
func (h *ReceivingHandler) GetReceivings(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}

	var status *string
	if s := c.Query("status"); s != "" {
		status = &s
	}

	transactions, err := h.receivingService.GetReceivings(tenantID, status)
	if err != nil {
		respondServiceError(c, err, "GetReceivings: Error from receivingService")
		return
	}
	c.JSON(http.StatusOK, transactions)
}

// GetPendingReceivings lists transactions still awaiting inspection.
func (h *ReceivingHandler) GetPendingReceivings(c *gin.Context) {
	h.getByStatus(c, models.ReceivingStatusPending)
}

// GetReceivingsAwaitingApproval lists fully inspected transactions.
func (h *ReceivingHandler) GetReceivingsAwaitingApproval(c *gin.Context) {
	h.getByStatus(c, models.ReceivingStatusInspected)
}

func (h *ReceivingHandler) getByStatus(c *gin.Context, status string) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	transactions, err := h.receivingService.GetReceivings(tenantID, &status)
	if err != nil {
		respondServiceError(c, err, "GetReceivings: Error from receivingService")
		return
	}
	c.JSON(http.StatusOK, transactions)
}

// GetReceivingByID handles fetching one transaction with its items.
func (h *ReceivingHandler) GetReceivingByID(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	transaction, err := h.receivingService.GetReceivingByID(tenantID, id)
	if err != nil {
		if errors.Is(err, services.ErrReceivingNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Receiving transaction not found.", err.Error()))
			return
		}
		respondServiceError(c, err, "GetReceivingByID: Error from receivingService")
		return
	}
	c.JSON(http.StatusOK, transaction)
}

// ApproveReceiving commits an inspected transaction into stock.
func (h *ReceivingHandler) ApproveReceiving(c *gin.Context) {
	h.transition(c, h.receivingService.ApproveReceiving, "Receiving transaction approved")
}

// RejectReceiving marks a pending or inspected transaction rejected.
func (h *ReceivingHandler) RejectReceiving(c *gin.Context) {
	h.transition(c, h.receivingService.RejectReceiving, "Receiving transaction rejected")
}

// DeleteReceiving removes a pending transaction and its items.
func (h *ReceivingHandler) DeleteReceiving(c *gin.Context) {
	h.transition(c, h.receivingService.DeleteReceiving, "Receiving transaction deleted")
}

func (h *ReceivingHandler) transition(c *gin.Context, op func(tenantID, id int64) error, successMessage string) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := op(tenantID, id); err != nil {
		if errors.Is(err, services.ErrReceivingNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound,
				"Receiving transaction not found or not in a status that allows this operation.", err.Error()))
			return
		}
		respondServiceError(c, err, "ReceivingHandler: transition error")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": successMessage})
}
