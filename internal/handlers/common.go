package handlers

import (
	"errors"
	"net/http"

	"scrapyard_backend/internal/services"
	"scrapyard_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// tenantFromContext reads the tenant ID set by the auth middleware.
// A missing value means the middleware did not run; reject the request.
func tenantFromContext(c *gin.Context) (int64, bool) {
	value, exists := c.Get("tenantID")
	if !exists {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized,
			"Tenant context missing. Ensure the auth middleware runs before this handler.", ""))
		return 0, false
	}
	tenantID, ok := value.(int64)
	if !ok || tenantID == 0 {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized,
			"Invalid tenant context.", ""))
		return 0, false
	}
	return tenantID, true
}

// idParam parses a path parameter as an int64 id.
func idParam(c *gin.Context, name string) (int64, bool) {
	id, err := utils.StrToInt64(c.Param(name))
	if err != nil || id <= 0 {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed,
			"Invalid "+name+" parameter.", "must be a positive integer"))
		return 0, false
	}
	return id, true
}

// respondServiceError maps the shared service sentinels to HTTP responses.
// Handlers check their domain-specific sentinels first and fall back here.
func respondServiceError(c *gin.Context, err error, logContext string) {
	utils.LogError(err, logContext)
	switch {
	case errors.Is(err, services.ErrValidation):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, err.Error(), ""))
	case errors.Is(err, services.ErrInsufficientStock):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeInsufficientStock, err.Error(), ""))
	case errors.Is(err, services.ErrInvalidCalculation):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInvalidCalculation, err.Error(), ""))
	default:
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError,
			"Internal error.", ""))
	}
}
