package handlers

import (
	"errors"
	"net/http"

	"pharmacare_backend/internal/models"
	"pharmacare_backend/internal/services"
	"pharmacare_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// SupplierHandler holds the supplier service.
type SupplierHandler struct {
	supplierService services.SupplierService
}

// NewSupplierHandler creates a new SupplierHandler.
func NewSupplierHandler(ss services.SupplierService) *SupplierHandler {
	return &SupplierHandler{supplierService: ss}
}

func respondSupplierError(c *gin.Context, err error, action string) {
	utils.LogError(err, action)
	switch {
	case errors.Is(err, services.ErrValidation):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid supplier data.", err.Error()))
	case errors.Is(err, services.ErrSupplierNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Supplier not found.", err.Error()))
	default:
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Supplier operation failed.", "Internal error"))
	}
}

// CreateSupplier handles adding a new supplier.
func (h *SupplierHandler) CreateSupplier(c *gin.Context) {
	var supplier models.Supplier
	if err := c.ShouldBindJSON(&supplier); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}
	created, err := h.supplierService.CreateSupplier(&supplier)
	if err != nil {
		respondSupplierError(c, err, "CreateSupplier: Error from supplierService.CreateSupplier")
		return
	}
	c.JSON(http.StatusCreated, created)
}

// GetSuppliers handles listing all suppliers.
func (h *SupplierHandler) GetSuppliers(c *gin.Context) {
	suppliers, err := h.supplierService.GetSuppliers()
	if err != nil {
		respondSupplierError(c, err, "GetSuppliers: Error from supplierService.GetSuppliers")
		return
	}
	if suppliers == nil {
		suppliers = []models.Supplier{}
	}
	c.JSON(http.StatusOK, suppliers)
}

// GetSupplierByID handles fetching a single supplier.
func (h *SupplierHandler) GetSupplierByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	supplier, err := h.supplierService.GetSupplierByID(id)
	if err != nil {
		respondSupplierError(c, err, "GetSupplierByID: Error from supplierService.GetSupplierByID")
		return
	}
	c.JSON(http.StatusOK, supplier)
}

// UpdateSupplier handles updating a supplier record.
func (h *SupplierHandler) UpdateSupplier(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var supplier models.Supplier
	if err := c.ShouldBindJSON(&supplier); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}
	supplier.ID = id
	if err := h.supplierService.UpdateSupplier(&supplier); err != nil {
		respondSupplierError(c, err, "UpdateSupplier: Error from supplierService.UpdateSupplier")
		return
	}
	c.JSON(http.StatusOK, supplier)
}

// DeleteSupplier handles removing a supplier.
func (h *SupplierHandler) DeleteSupplier(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.supplierService.DeleteSupplier(id); err != nil {
		respondSupplierError(c, err, "DeleteSupplier: Error from supplierService.DeleteSupplier")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Supplier deleted successfully"})
}
