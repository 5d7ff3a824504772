package handlers

import (
	"errors"
	"net/http"

	"scrapyard_backend/internal/services"
	"scrapyard_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// UllageTypeHandler holds the ullage type service.
type UllageTypeHandler struct {
	ullageTypeService services.UllageTypeService
}

// NewUllageTypeHandler creates a new UllageTypeHandler.
func NewUllageTypeHandler(us services.UllageTypeService) *UllageTypeHandler {
	return &UllageTypeHandler{ullageTypeService: us}
}

func (h *UllageTypeHandler) respondUllageTypeError(c *gin.Context, err error, logContext string) {
	switch {
	case errors.Is(err, services.ErrUllageTypeNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Ullage type not found.", err.Error()))
	case errors.Is(err, services.ErrUllageTypeConflict):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Ullage type conflict.", err.Error()))
	default:
		respondServiceError(c, err, logContext)
	}
}

// CreateUllageType adds a loss category to the tenant taxonomy.
func (h *UllageTypeHandler) CreateUllageType(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}

	var req services.CreateUllageTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "CreateUllageType: Failed to bind JSON")
		utils.RespondValidationFailed(c, err.Error())
		return
	}

	ut, err := h.ullageTypeService.CreateUllageType(tenantID, req)
	if err != nil {
		h.respondUllageTypeError(c, err, "CreateUllageType: Error from ullageTypeService")
		return
	}
	c.JSON(http.StatusCreated, ut)
}

// GetUllageTypes lists the tenant's loss categories.
func (h *UllageTypeHandler) GetUllageTypes(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}

	types, err := h.ullageTypeService.GetUllageTypes(tenantID)
	if err != nil {
		respondServiceError(c, err, "GetUllageTypes: Error from ullageTypeService")
		return
	}
	c.JSON(http.StatusOK, types)
}

// UpdateUllageType renames or re-describes a loss category.
func (h *UllageTypeHandler) UpdateUllageType(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req services.CreateUllageTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "UpdateUllageType: Failed to bind JSON")
		utils.RespondValidationFailed(c, err.Error())
		return
	}

	ut, err := h.ullageTypeService.UpdateUllageType(tenantID, id, req)
	if err != nil {
		h.respondUllageTypeError(c, err, "UpdateUllageType: Error from ullageTypeService")
		return
	}
	c.JSON(http.StatusOK, ut)
}

// DeleteUllageType removes a loss category not referenced by inspections.
func (h *UllageTypeHandler) DeleteUllageType(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := h.ullageTypeService.DeleteUllageType(tenantID, id); err != nil {
		h.respondUllageTypeError(c, err, "DeleteUllageType: Error from ullageTypeService")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Ullage type deleted successfully"})
}
