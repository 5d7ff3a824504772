package handlers

import (
	"errors"
	"net/http"

	"scrapyard_backend/internal/services"
	"scrapyard_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// InspectionHandler holds the inspection service.
type InspectionHandler struct {
	inspectionService services.InspectionService
}

// NewInspectionHandler creates a new InspectionHandler.
func NewInspectionHandler(is services.InspectionService) *InspectionHandler {
	return &InspectionHandler{inspectionService: is}
}

// CreateInspection records a loss measurement on a receiving item.
func (h *InspectionHandler) CreateInspection(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}

	var req services.CreateInspectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "CreateInspection: Failed to bind JSON")
		utils.RespondValidationFailed(c, err.Error())
		return
	}

	inspection, err := h.inspectionService.CreateInspection(tenantID, req)
	if err != nil {
		if errors.Is(err, services.ErrReceivingItemNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Receiving item not found.", err.Error()))
			return
		}
		respondServiceError(c, err, "CreateInspection: Error from inspectionService")
		return
	}
	c.JSON(http.StatusCreated, inspection)
}

// GetInspectionsByItem lists inspections recorded for one receiving item.
func (h *InspectionHandler) GetInspectionsByItem(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	itemID, ok := idParam(c, "itemId")
	if !ok {
		return
	}

	inspections, err := h.inspectionService.GetInspectionsByReceivingItemID(tenantID, itemID)
	if err != nil {
		respondServiceError(c, err, "GetInspectionsByItem: Error from inspectionService")
		return
	}
	c.JSON(http.StatusOK, inspections)
}

// GetInspectionHistory returns the denormalized inspection history, newest first.
func (h *InspectionHandler) GetInspectionHistory(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}

	history, err := h.inspectionService.GetInspectionHistory(tenantID)
	if err != nil {
		respondServiceError(c, err, "GetInspectionHistory: Error from inspectionService")
		return
	}
	c.JSON(http.StatusOK, history)
}
