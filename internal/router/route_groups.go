package router

import (
	"scrapyard_backend/internal/handlers"

	"github.com/gin-gonic/gin"
)

// SetupPartnerRoutes sets up the partner routes.
func SetupPartnerRoutes(authenticatedGroup *gin.RouterGroup, partnerHandler *handlers.PartnerHandler) {
	partnerRoutes := authenticatedGroup.Group("/partners")
	{
		partnerRoutes.POST("", partnerHandler.CreatePartner)
		partnerRoutes.GET("", partnerHandler.GetPartners)
		partnerRoutes.GET("/type/:type", partnerHandler.GetPartnersByType)
		partnerRoutes.GET("/:id", partnerHandler.GetPartnerByID)
		partnerRoutes.PUT("/:id", partnerHandler.UpdatePartner)
		partnerRoutes.DELETE("/:id", partnerHandler.DeletePartner)
	}
}

// SetupMaterialRoutes sets up the material catalogue routes.
func SetupMaterialRoutes(authenticatedGroup *gin.RouterGroup, materialHandler *handlers.MaterialHandler) {
	materialRoutes := authenticatedGroup.Group("/materials")
	{
		materialRoutes.POST("", materialHandler.CreateMaterial)
		materialRoutes.GET("", materialHandler.GetMaterials)
		materialRoutes.GET("/:id", materialHandler.GetMaterialByID)
		materialRoutes.PUT("/:id", materialHandler.UpdateMaterial)
		materialRoutes.DELETE("/:id", materialHandler.DeleteMaterial)
	}
}

// SetupUllageTypeRoutes sets up the loss category routes.
func SetupUllageTypeRoutes(authenticatedGroup *gin.RouterGroup, ullageTypeHandler *handlers.UllageTypeHandler) {
	ullageTypeRoutes := authenticatedGroup.Group("/ullage-types")
	{
		ullageTypeRoutes.POST("", ullageTypeHandler.CreateUllageType)
		ullageTypeRoutes.GET("", ullageTypeHandler.GetUllageTypes)
		ullageTypeRoutes.PUT("/:id", ullageTypeHandler.UpdateUllageType)
		ullageTypeRoutes.DELETE("/:id", ullageTypeHandler.DeleteUllageType)
	}
}

// SetupReceivingRoutes sets up the receiving document routes.
func SetupReceivingRoutes(authenticatedGroup *gin.RouterGroup, receivingHandler *handlers.ReceivingHandler) {
	receivingRoutes := authenticatedGroup.Group("/receiving")
	{
		receivingRoutes.POST("", receivingHandler.CreateReceiving)
		receivingRoutes.GET("", receivingHandler.GetReceivings)
		receivingRoutes.GET("/pending", receivingHandler.GetPendingReceivings)
		receivingRoutes.GET("/awaiting-approval", receivingHandler.GetReceivingsAwaitingApproval)
		receivingRoutes.GET("/:id", receivingHandler.GetReceivingByID)
		receivingRoutes.POST("/:id/approve", receivingHandler.ApproveReceiving)
		receivingRoutes.POST("/:id/reject", receivingHandler.RejectReceiving)
		receivingRoutes.DELETE("/:id", receivingHandler.DeleteReceiving)
	}
}

// SetupInspectionRoutes sets up the ullage inspection routes.
func SetupInspectionRoutes(authenticatedGroup *gin.RouterGroup, inspectionHandler *handlers.InspectionHandler) {
	inspectionRoutes := authenticatedGroup.Group("/inspections")
	{
		inspectionRoutes.POST("", inspectionHandler.CreateInspection)
		inspectionRoutes.GET("/item/:itemId", inspectionHandler.GetInspectionsByItem)
		inspectionRoutes.GET("/history", inspectionHandler.GetInspectionHistory)
	}
}

// SetupStockRoutes sets up the stock query routes.
func SetupStockRoutes(authenticatedGroup *gin.RouterGroup, stockHandler *handlers.StockHandler) {
	stockRoutes := authenticatedGroup.Group("/stock")
	{
		stockRoutes.GET("", stockHandler.GetStockSummary)
		stockRoutes.GET("/material/:materialId", stockHandler.GetStockDetail)
	}
}

// SetupSellingRoutes sets up the selling routes.
func SetupSellingRoutes(authenticatedGroup *gin.RouterGroup, sellingHandler *handlers.SellingHandler) {
	sellingRoutes := authenticatedGroup.Group("/selling")
	{
		sellingRoutes.POST("", sellingHandler.CreateSelling)
		sellingRoutes.GET("", sellingHandler.GetSellings)
		sellingRoutes.GET("/:id", sellingHandler.GetSellingByID)
	}
}

// SetupMoneyRoutes sets up the money ledger routes. The ledger is append
// only: there are no update or delete endpoints.
func SetupMoneyRoutes(authenticatedGroup *gin.RouterGroup, moneyHandler *handlers.MoneyHandler) {
	moneyRoutes := authenticatedGroup.Group("/money")
	{
		moneyRoutes.POST("", moneyHandler.CreateMoneyTransaction)
		moneyRoutes.GET("", moneyHandler.GetMoneyTransactions)
		moneyRoutes.GET("/partner/:partnerId", moneyHandler.GetMoneyTransactionsByPartner)
	}
}
