package router

import (
	"pharmacare_backend/internal/handlers"
	"pharmacare_backend/internal/middleware"
	"pharmacare_backend/internal/models"

	"github.com/gin-gonic/gin"
)

// SetupAuthRoutes sets up the authenticated account routes. Login is
// registered separately as a public route.
func SetupAuthRoutes(authenticatedGroup *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	authRoutes := authenticatedGroup.Group("/auth")
	{
		authRoutes.GET("/me", authHandler.GetProfile)
	}

	userRoutes := authenticatedGroup.Group("/users")
	userRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin))
	{
		userRoutes.POST("", authHandler.Register)
		userRoutes.GET("", authHandler.GetUsers)
		userRoutes.PATCH("/:id/role", authHandler.UpdateUserRole)
		userRoutes.DELETE("/:id", authHandler.DeleteUser)
	}
}

// SetupMedicineRoutes sets up the medicine catalog and stock routes.
func SetupMedicineRoutes(authenticatedGroup *gin.RouterGroup, medicineHandler *handlers.MedicineHandler) {
	medicineRoutes := authenticatedGroup.Group("/medicines")
	{
		medicineRoutes.GET("", medicineHandler.GetMedicines)
		medicineRoutes.GET("/search", medicineHandler.SearchMedicines)
		medicineRoutes.GET("/low-stock", medicineHandler.GetLowStock)
		medicineRoutes.GET("/:id", medicineHandler.GetMedicineByID)
		medicineRoutes.GET("/:id/stock", medicineHandler.GetStock)

		writeRoutes := medicineRoutes.Group("")
		writeRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin, models.RolePharmacist))
		{
			writeRoutes.POST("", medicineHandler.CreateMedicine)
			writeRoutes.PATCH("/:id", medicineHandler.UpdateMedicine)
			writeRoutes.PUT("/:id/stock", medicineHandler.SetStock)
			writeRoutes.DELETE("/:id", medicineHandler.DeleteMedicine)
		}
	}
}

// SetupReferenceRoutes sets up the category and unit reference routes.
func SetupReferenceRoutes(authenticatedGroup *gin.RouterGroup, referenceHandler *handlers.ReferenceHandler) {
	categoryRoutes := authenticatedGroup.Group("/categories")
	{
		categoryRoutes.GET("", referenceHandler.GetCategories)

		writeRoutes := categoryRoutes.Group("")
		writeRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin, models.RolePharmacist))
		{
			writeRoutes.POST("", referenceHandler.CreateCategory)
			writeRoutes.PUT("/:id", referenceHandler.UpdateCategory)
			writeRoutes.DELETE("/:id", referenceHandler.DeleteCategory)
		}
	}

	unitRoutes := authenticatedGroup.Group("/units")
	{
		unitRoutes.GET("", referenceHandler.GetUnits)

		writeRoutes := unitRoutes.Group("")
		writeRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin, models.RolePharmacist))
		{
			writeRoutes.POST("", referenceHandler.CreateUnit)
			writeRoutes.PUT("/:id", referenceHandler.UpdateUnit)
			writeRoutes.DELETE("/:id", referenceHandler.DeleteUnit)
		}
	}
}

// SetupBillingRoutes sets up the bill and payment routes.
func SetupBillingRoutes(authenticatedGroup *gin.RouterGroup, billingHandler *handlers.BillingHandler) {
	billRoutes := authenticatedGroup.Group("/bills")
	{
		billRoutes.POST("", billingHandler.CreateBill)
		billRoutes.GET("", billingHandler.GetBills)
		billRoutes.GET("/:id", billingHandler.GetBillByID)
	}

	paymentRoutes := authenticatedGroup.Group("/payments")
	{
		paymentRoutes.POST("", billingHandler.RecordPayment)
		paymentRoutes.GET("", billingHandler.GetPayments)
	}
}

// SetupPurchaseRoutes sets up the supplier purchase routes.
func SetupPurchaseRoutes(authenticatedGroup *gin.RouterGroup, purchaseHandler *handlers.PurchaseHandler) {
	purchaseRoutes := authenticatedGroup.Group("/purchases")
	purchaseRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin, models.RolePharmacist))
	{
		purchaseRoutes.POST("", purchaseHandler.CreatePurchase)
		purchaseRoutes.GET("", purchaseHandler.GetPurchases)
		purchaseRoutes.GET("/:id", purchaseHandler.GetPurchaseByID)
	}
}

// SetupCustomerRoutes sets up the customer routes.
func SetupCustomerRoutes(authenticatedGroup *gin.RouterGroup, customerHandler *handlers.CustomerHandler) {
	customerRoutes := authenticatedGroup.Group("/customers")
	{
		customerRoutes.POST("", customerHandler.CreateCustomer)
		customerRoutes.GET("", customerHandler.GetCustomers)
		customerRoutes.GET("/:id", customerHandler.GetCustomerByID)
		customerRoutes.PUT("/:id", customerHandler.UpdateCustomer)
		customerRoutes.GET("/:id/bills", customerHandler.GetCustomerBills)
		customerRoutes.GET("/:id/bills/last", customerHandler.GetCustomerLastBill)
		customerRoutes.GET("/:id/prescriptions", customerHandler.GetCustomerPrescriptions)

		customerRoutes.DELETE("/:id", middleware.RoleAuthMiddleware(models.RoleAdmin), customerHandler.DeleteCustomer)
	}
}

// SetupSupplierRoutes sets up the supplier routes.
func SetupSupplierRoutes(authenticatedGroup *gin.RouterGroup, supplierHandler *handlers.SupplierHandler) {
	supplierRoutes := authenticatedGroup.Group("/suppliers")
	supplierRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin, models.RolePharmacist))
	{
		supplierRoutes.POST("", supplierHandler.CreateSupplier)
		supplierRoutes.GET("", supplierHandler.GetSuppliers)
		supplierRoutes.GET("/:id", supplierHandler.GetSupplierByID)
		supplierRoutes.PUT("/:id", supplierHandler.UpdateSupplier)
		supplierRoutes.DELETE("/:id", supplierHandler.DeleteSupplier)
	}
}

// SetupPrescriptionRoutes sets up the prescription and doctor routes.
func SetupPrescriptionRoutes(authenticatedGroup *gin.RouterGroup, prescriptionHandler *handlers.PrescriptionHandler) {
	prescriptionRoutes := authenticatedGroup.Group("/prescriptions")
	{
		prescriptionRoutes.POST("", prescriptionHandler.CreatePrescription)
		prescriptionRoutes.GET("/:id", prescriptionHandler.GetPrescriptionByID)
		prescriptionRoutes.DELETE("/:id", middleware.RoleAuthMiddleware(models.RoleAdmin, models.RolePharmacist), prescriptionHandler.DeletePrescription)
	}

	doctorRoutes := authenticatedGroup.Group("/doctors")
	{
		doctorRoutes.GET("", prescriptionHandler.GetDoctors)
		doctorRoutes.GET("/:id", prescriptionHandler.GetDoctorByID)

		writeRoutes := doctorRoutes.Group("")
		writeRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin, models.RolePharmacist))
		{
			writeRoutes.POST("", prescriptionHandler.CreateDoctor)
			writeRoutes.PUT("/:id", prescriptionHandler.UpdateDoctor)
			writeRoutes.DELETE("/:id", prescriptionHandler.DeleteDoctor)
		}
	}
}

// SetupReportRoutes sets up the reporting routes.
func SetupReportRoutes(authenticatedGroup *gin.RouterGroup, reportHandler *handlers.ReportHandler) {
	reportRoutes := authenticatedGroup.Group("/reports")
	reportRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin, models.RolePharmacist))
	{
		reportRoutes.GET("/sales", reportHandler.GetSalesReport)
		reportRoutes.GET("/stock", reportHandler.GetStockReport)
	}
}
