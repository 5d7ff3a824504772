package handlers

import (
	"errors"
	"net/http"

	"scrapyard_backend/internal/services"
	"scrapyard_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// MoneyHandler holds the money service.
type MoneyHandler struct {
	moneyService services.MoneyService
}

// NewMoneyHandler creates a new MoneyHandler.
func NewMoneyHandler(ms services.MoneyService) *MoneyHandler {
	return &MoneyHandler{moneyService: ms}
}

// CreateMoneyTransaction records a manual payment or receipt.
func (h *MoneyHandler) CreateMoneyTransaction(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}

	var req services.CreateMoneyTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "CreateMoneyTransaction: Failed to bind JSON")
		utils.RespondValidationFailed(c, err.Error())
		return
	}

	created, err := h.moneyService.CreateMoneyTransaction(tenantID, req)
	if err != nil {
		if errors.Is(err, services.ErrPartnerNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Partner not found.", err.Error()))
			return
		}
		respondServiceError(c, err, "CreateMoneyTransaction: Error from moneyService")
		return
	}
	c.JSON(http.StatusCreated, created)
}

// GetMoneyTransactions lists all ledger rows for the tenant, newest first.
func (h *MoneyHandler) GetMoneyTransactions(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}

	transactions, err := h.moneyService.GetMoneyTransactions(tenantID)
	if err != nil {
		respondServiceError(c, err, "GetMoneyTransactions: Error from moneyService")
		return
	}
	c.JSON(http.StatusOK, transactions)
}

// GetMoneyTransactionsByPartner lists ledger rows for one partner.
func (h *MoneyHandler) GetMoneyTransactionsByPartner(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	partnerID, ok := idParam(c, "partnerId")
	if !ok {
		return
	}

	transactions, err := h.moneyService.GetMoneyTransactionsByPartner(tenantID, partnerID)
	if err != nil {
		respondServiceError(c, err, "GetMoneyTransactionsByPartner: Error from moneyService")
		return
	}
	c.JSON(http.StatusOK, transactions)
}
