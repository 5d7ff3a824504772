package router

import (
	"database/sql"

	"scrapyard_backend/internal/handlers"
	"scrapyard_backend/internal/middleware"
	"scrapyard_backend/internal/repositories"
	"scrapyard_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// Setup initializes the routing for the application.
func Setup(engine *gin.Engine, db *sql.DB) {
	// Initialize Repositories
	partnerRepo := repositories.NewPartnerRepository(db)
	materialRepo := repositories.NewMaterialRepository(db)
	ullageTypeRepo := repositories.NewUllageTypeRepository(db)
	receivingRepo := repositories.NewReceivingRepository(db)
	inspectionRepo := repositories.NewInspectionRepository(db)
	stockRepo := repositories.NewStockRepository(db)
	sellingRepo := repositories.NewSellingRepository(db)
	moneyRepo := repositories.NewMoneyRepository(db)

	// Initialize Services
	partnerService := services.NewPartnerService(partnerRepo, db)
	materialService := services.NewMaterialService(materialRepo, db)
	ullageTypeService := services.NewUllageTypeService(ullageTypeRepo, db)
	stockService := services.NewStockService(stockRepo, db)
	receivingService := services.NewReceivingService(receivingRepo, stockRepo, partnerRepo, moneyRepo, db)
	inspectionService := services.NewInspectionService(inspectionRepo, receivingRepo, db)
	sellingService := services.NewSellingService(sellingRepo, materialRepo, stockService, partnerRepo, moneyRepo, db)
	moneyService := services.NewMoneyService(moneyRepo, partnerRepo, db)

	// Initialize Handlers
	partnerHandler := handlers.NewPartnerHandler(partnerService)
	materialHandler := handlers.NewMaterialHandler(materialService)
	ullageTypeHandler := handlers.NewUllageTypeHandler(ullageTypeService)
	receivingHandler := handlers.NewReceivingHandler(receivingService)
	inspectionHandler := handlers.NewInspectionHandler(inspectionService)
	stockHandler := handlers.NewStockHandler(stockService)
	sellingHandler := handlers.NewSellingHandler(sellingService)
	moneyHandler := handlers.NewMoneyHandler(moneyService)

	apiV1 := engine.Group("/api/v1")

	authenticated := apiV1.Group("")
	authenticated.Use(middleware.AuthMiddleware())
	{
		SetupPartnerRoutes(authenticated, partnerHandler)
		SetupMaterialRoutes(authenticated, materialHandler)
		SetupUllageTypeRoutes(authenticated, ullageTypeHandler)
		SetupReceivingRoutes(authenticated, receivingHandler)
		SetupInspectionRoutes(authenticated, inspectionHandler)
		SetupStockRoutes(authenticated, stockHandler)
		SetupSellingRoutes(authenticated, sellingHandler)
		SetupMoneyRoutes(authenticated, moneyHandler)
	}
}
