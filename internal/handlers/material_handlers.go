package handlers

import (
	"errors"
	"net/http"

	"scrapyard_backend/internal/services"
	"scrapyard_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// MaterialHandler holds the material service.
type MaterialHandler struct {
	materialService services.MaterialService
}

// NewMaterialHandler creates a new MaterialHandler.
func NewMaterialHandler(ms services.MaterialService) *MaterialHandler {
	return &MaterialHandler{materialService: ms}
}

func (h *MaterialHandler) respondMaterialError(c *gin.Context, err error, logContext string) {
	switch {
	case errors.Is(err, services.ErrMaterialNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Material not found.", err.Error()))
	case errors.Is(err, services.ErrMaterialConflict):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Material name conflict.", err.Error()))
	default:
		respondServiceError(c, err, logContext)
	}
}

// CreateMaterial adds a commodity to the tenant catalogue.
func (h *MaterialHandler) CreateMaterial(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}

	var req services.CreateMaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "CreateMaterial: Failed to bind JSON")
		utils.RespondValidationFailed(c, err.Error())
		return
	}

	material, err := h.materialService.CreateMaterial(tenantID, req)
	if err != nil {
		h.respondMaterialError(c, err, "CreateMaterial: Error from materialService")
		return
	}
	c.JSON(http.StatusCreated, material)
}

// GetMaterials lists the tenant's material catalogue.
func (h *MaterialHandler) GetMaterials(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}

	materials, err := h.materialService.GetMaterials(tenantID)
	if err != nil {
		respondServiceError(c, err, "GetMaterials: Error from materialService")
		return
	}
	c.JSON(http.StatusOK, materials)
}

// GetMaterialByID retrieves a single material.
func (h *MaterialHandler) GetMaterialByID(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	material, err := h.materialService.GetMaterialByID(tenantID, id)
	if err != nil {
		h.respondMaterialError(c, err, "GetMaterialByID: Error from materialService")
		return
	}
	c.JSON(http.StatusOK, material)
}

// UpdateMaterial replaces a material's descriptive fields.
func (h *MaterialHandler) UpdateMaterial(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req services.CreateMaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "UpdateMaterial: Failed to bind JSON")
		utils.RespondValidationFailed(c, err.Error())
		return
	}

	material, err := h.materialService.UpdateMaterial(tenantID, id, req)
	if err != nil {
		h.respondMaterialError(c, err, "UpdateMaterial: Error from materialService")
		return
	}
	c.JSON(http.StatusOK, material)
}

// DeleteMaterial removes an unused material.
func (h *MaterialHandler) DeleteMaterial(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := h.materialService.DeleteMaterial(tenantID, id); err != nil {
		h.respondMaterialError(c, err, "DeleteMaterial: Error from materialService")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Material deleted successfully"})
}
