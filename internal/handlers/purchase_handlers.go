package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"pharmacare_backend/internal/models"
	"pharmacare_backend/internal/services"
	"pharmacare_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// PurchaseHandler holds the purchase service.
type PurchaseHandler struct {
	purchaseService services.PurchaseService
}

// NewPurchaseHandler creates a new PurchaseHandler.
func NewPurchaseHandler(ps services.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{purchaseService: ps}
}

// CreatePurchase handles recording a supplier delivery.
func (h *PurchaseHandler) CreatePurchase(c *gin.Context) {
	var req services.CreatePurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	createdPurchase, err := h.purchaseService.CreatePurchase(req)
	if err != nil {
		utils.LogError(err, "CreatePurchase: Error from purchaseService.CreatePurchase")
		if errors.Is(err, services.ErrValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid purchase data.", err.Error()))
		} else if errors.Is(err, services.ErrSupplierNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Supplier not found.", err.Error()))
		} else if errors.Is(err, services.ErrMedicineNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "One or more medicines not found.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to create purchase.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, createdPurchase)
}

// GetPurchases handles fetching all purchases with filters.
func (h *PurchaseHandler) GetPurchases(c *gin.Context) {
	var filters models.PurchaseFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid query parameters.", err.Error()))
		return
	}
	if filters.Page < 1 {
		filters.Page = 1
	}
	if filters.PageSize < 1 || filters.PageSize > 100 {
		filters.PageSize = 20
	}

	purchases, totalCount, err := h.purchaseService.GetPurchases(filters)
	if err != nil {
		utils.LogError(err, "GetPurchases: Error from purchaseService.GetPurchases")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch purchases.", "Internal error"))
		return
	}
	if purchases == nil {
		purchases = []models.Purchase{}
	}
	c.JSON(http.StatusOK, gin.H{
		"data":      purchases,
		"total":     totalCount,
		"page":      filters.Page,
		"page_size": filters.PageSize,
	})
}

// GetPurchaseByID handles fetching a single purchase with its items.
func (h *PurchaseHandler) GetPurchaseByID(c *gin.Context) {
	purchaseID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid purchase ID format.", err.Error()))
		return
	}

	purchase, err := h.purchaseService.GetPurchaseByID(purchaseID)
	if err != nil {
		utils.LogError(err, "GetPurchaseByID: Error from purchaseService.GetPurchaseByID")
		if errors.Is(err, services.ErrPurchaseNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Purchase not found.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch purchase.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, purchase)
}
