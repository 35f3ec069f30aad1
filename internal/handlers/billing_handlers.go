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

// BillingHandler holds the billing service.
type BillingHandler struct {
	billingService services.BillingService
}

// NewBillingHandler creates a new BillingHandler.
func NewBillingHandler(bs services.BillingService) *BillingHandler {
	return &BillingHandler{billingService: bs}
}

// CreateBill handles the creation of a new bill with its items.
func (h *BillingHandler) CreateBill(c *gin.Context) {
	var req services.CreateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	createdBill, err := h.billingService.CreateBill(req)
	if err != nil {
		utils.LogError(err, "CreateBill: Error from billingService.CreateBill")
		if errors.Is(err, services.ErrValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid bill data.", err.Error()))
		} else if errors.Is(err, services.ErrMedicineNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "One or more medicines not found.", err.Error()))
		} else if errors.Is(err, services.ErrInsufficientStock) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Insufficient stock for one or more medicines.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to create bill.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, createdBill)
}

// RecordPayment settles part or all of a bill.
func (h *BillingHandler) RecordPayment(c *gin.Context) {
	var req services.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	payment, err := h.billingService.RecordPayment(req)
	if err != nil {
		utils.LogError(err, "RecordPayment: Error from billingService.RecordPayment")
		if errors.Is(err, services.ErrValidation) || errors.Is(err, services.ErrInvalidPaymentMethod) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid payment data.", err.Error()))
		} else if errors.Is(err, services.ErrBillNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Bill not found.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to record payment.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, payment)
}

// GetBills handles fetching all bills with filters.
func (h *BillingHandler) GetBills(c *gin.Context) {
	var filters models.BillFilters
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
	if filters.Date != nil && !utils.IsValidDate(*filters.Date) {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid date format. Use YYYY-MM-DD.", *filters.Date))
		return
	}

	bills, totalCount, err := h.billingService.GetBills(filters)
	if err != nil {
		utils.LogError(err, "GetBills: Error from billingService.GetBills")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch bills.", "Internal error"))
		return
	}
	if bills == nil {
		bills = []models.Bill{}
	}
	c.JSON(http.StatusOK, gin.H{
		"data":      bills,
		"total":     totalCount,
		"page":      filters.Page,
		"page_size": filters.PageSize,
	})
}

// GetBillByID handles fetching a single bill with its items.
func (h *BillingHandler) GetBillByID(c *gin.Context) {
	billID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid bill ID format.", err.Error()))
		return
	}

	bill, err := h.billingService.GetBillByID(billID)
	if err != nil {
		utils.LogError(err, "GetBillByID: Error from billingService.GetBillByID")
		if errors.Is(err, services.ErrBillNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Bill not found.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch bill.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, bill)
}

// GetPayments handles listing payments, optionally scoped to one bill.
func (h *BillingHandler) GetPayments(c *gin.Context) {
	var billID *int64
	if billIDStr := c.Query("bill_id"); billIDStr != "" {
		id, err := strconv.ParseInt(billIDStr, 10, 64)
		if err != nil {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid bill_id format.", err.Error()))
			return
		}
		billID = &id
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	payments, totalCount, err := h.billingService.GetPayments(billID, page, pageSize)
	if err != nil {
		utils.LogError(err, "GetPayments: Error from billingService.GetPayments")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch payments.", "Internal error"))
		return
	}
	if payments == nil {
		payments = []models.Payment{}
	}
	c.JSON(http.StatusOK, gin.H{
		"data":  payments,
		"total": totalCount,
	})
}
