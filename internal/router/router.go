package router

import (
	"pharmacare_backend/internal/handlers"
	"pharmacare_backend/internal/middleware"
	"pharmacare_backend/internal/repositories"
	"pharmacare_backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

// Setup wires repositories, services and handlers and registers all
// routes under /api/v1. It returns the AuthService so main can seed
// the default admin account after migrations.
func Setup(engine *gin.Engine, db *sqlx.DB) services.AuthService {
	// Repositories
	medicineRepo := repositories.NewMedicineRepository(db)
	referenceRepo := repositories.NewReferenceRepository(db)
	billingRepo := repositories.NewBillingRepository(db)
	purchaseRepo := repositories.NewPurchaseRepository(db)
	customerRepo := repositories.NewCustomerRepository(db)
	supplierRepo := repositories.NewSupplierRepository(db)
	prescriptionRepo := repositories.NewPrescriptionRepository(db)
	userRepo := repositories.NewUserRepository(db)

	// Services
	medicineService := services.NewMedicineService(medicineRepo, referenceRepo, db)
	billingService := services.NewBillingService(billingRepo, medicineRepo, db)
	purchaseService := services.NewPurchaseService(purchaseRepo, supplierRepo, medicineRepo, db)
	customerService := services.NewCustomerService(customerRepo, billingRepo, prescriptionRepo, db)
	supplierService := services.NewSupplierService(supplierRepo, db)
	prescriptionService := services.NewPrescriptionService(prescriptionRepo, customerRepo, medicineRepo, db)
	authService := services.NewAuthService(userRepo, db)
	reportService := services.NewReportService(billingRepo, medicineRepo)

	// Handlers
	medicineHandler := handlers.NewMedicineHandler(medicineService)
	referenceHandler := handlers.NewReferenceHandler(medicineService)
	billingHandler := handlers.NewBillingHandler(billingService)
	purchaseHandler := handlers.NewPurchaseHandler(purchaseService)
	customerHandler := handlers.NewCustomerHandler(customerService, billingService)
	supplierHandler := handlers.NewSupplierHandler(supplierService)
	prescriptionHandler := handlers.NewPrescriptionHandler(prescriptionService)
	authHandler := handlers.NewAuthHandler(authService)
	reportHandler := handlers.NewReportHandler(reportService)

	apiV1 := engine.Group("/api/v1")

	// Login is the only unauthenticated route.
	apiV1.POST("/auth/login", authHandler.Login)

	authenticated := apiV1.Group("")
	authenticated.Use(middleware.AuthMiddleware())
	{
		SetupAuthRoutes(authenticated, authHandler)
		SetupMedicineRoutes(authenticated, medicineHandler)
		SetupReferenceRoutes(authenticated, referenceHandler)
		SetupBillingRoutes(authenticated, billingHandler)
		SetupPurchaseRoutes(authenticated, purchaseHandler)
		SetupCustomerRoutes(authenticated, customerHandler)
		SetupSupplierRoutes(authenticated, supplierHandler)
		SetupPrescriptionRoutes(authenticated, prescriptionHandler)
		SetupReportRoutes(authenticated, reportHandler)
	}

	return authService
}
