package handlers

import (
	"errors"
	"net/http"

	"scrapyard_backend/internal/services"
	"scrapyard_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// PartnerHandler holds the partner service.
type PartnerHandler struct {
	partnerService services.PartnerService
}

// NewPartnerHandler creates a new PartnerHandler.
func NewPartnerHandler(ps services.PartnerService) *PartnerHandler {
	return &PartnerHandler{partnerService: ps}
}

// CreatePartner registers a new counterparty.
func (h *PartnerHandler) CreatePartner(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}

	var req services.CreatePartnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "CreatePartner: Failed to bind JSON")
		utils.RespondValidationFailed(c, err.Error())
		return
	}

	partner, err := h.partnerService.CreatePartner(tenantID, req)
	if err != nil {
		respondServiceError(c, err, "CreatePartner: Error from partnerService")
		return
	}
	c.JSON(http.StatusCreated, partner)
}

// GetPartners lists all partners for the tenant.
func (h *PartnerHandler) GetPartners(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}

	partners, err := h.partnerService.GetPartners(tenantID)
	if err != nil {
		respondServiceError(c, err, "GetPartners: Error from partnerService")
		return
	}
	c.JSON(http.StatusOK, partners)
}

// GetPartnersByType lists partners filtered by type (customer, supplier, bank).
func (h *PartnerHandler) GetPartnersByType(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}

	partners, err := h.partnerService.GetPartnersByType(tenantID, c.Param("type"))
	if err != nil {
		respondServiceError(c, err, "GetPartnersByType: Error from partnerService")
		return
	}
	c.JSON(http.StatusOK, partners)
}

// GetPartnerByID retrieves a single partner with its current balance.
func (h *PartnerHandler) GetPartnerByID(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	partner, err := h.partnerService.GetPartnerByID(tenantID, id)
	if err != nil {
		if errors.Is(err, services.ErrPartnerNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Partner not found.", err.Error()))
			return
		}
		respondServiceError(c, err, "GetPartnerByID: Error from partnerService")
		return
	}
	c.JSON(http.StatusOK, partner)
}

// UpdatePartner replaces a partner's descriptive fields.
func (h *PartnerHandler) UpdatePartner(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req services.CreatePartnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "UpdatePartner: Failed to bind JSON")
		utils.RespondValidationFailed(c, err.Error())
		return
	}

	partner, err := h.partnerService.UpdatePartner(tenantID, id, req)
	if err != nil {
		if errors.Is(err, services.ErrPartnerNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Partner not found.", err.Error()))
			return
		}
		respondServiceError(c, err, "UpdatePartner: Error from partnerService")
		return
	}
	c.JSON(http.StatusOK, partner)
}

// DeletePartner removes a partner with no transaction history.
func (h *PartnerHandler) DeletePartner(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := h.partnerService.DeletePartner(tenantID, id); err != nil {
		if errors.Is(err, services.ErrPartnerNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Partner not found.", err.Error()))
			return
		}
		if errors.Is(err, services.ErrPartnerInUse) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Partner is referenced by existing transactions.", err.Error()))
			return
		}
		respondServiceError(c, err, "DeletePartner: Error from partnerService")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Partner deleted successfully"})
}
