package handlers

import (
	"net/http"

	"scrapyard_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// StockHandler holds the stock service.
type StockHandler struct {
	stockService services.StockService
}

// NewStockHandler creates a new StockHandler.
func NewStockHandler(ss services.StockService) *StockHandler {
	return &StockHandler{stockService: ss}
}

// GetStockSummary returns the per-material aggregate across all partners.
func (h *StockHandler) GetStockSummary(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}

	summary, err := h.stockService.GetStockSummary(tenantID)
	if err != nil {
		respondServiceError(c, err, "GetStockSummary: Error from stockService")
		return
	}
	c.JSON(http.StatusOK, summary)
}

// GetStockDetail returns the per-partner lot breakdown for one material,
// oldest lots first.
func (h *StockHandler) GetStockDetail(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	materialID, ok := idParam(c, "materialId")
	if !ok {
		return
	}

	lots, err := h.stockService.GetStockDetail(tenantID, materialID)
	if err != nil {
		respondServiceError(c, err, "GetStockDetail: Error from stockService")
		return
	}
	c.JSON(http.StatusOK, lots)
}
