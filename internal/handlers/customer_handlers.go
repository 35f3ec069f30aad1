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

// CustomerHandler holds the customer service.
type CustomerHandler struct {
	customerService services.CustomerService
	billingService  services.BillingService
}

// NewCustomerHandler creates a new CustomerHandler.
func NewCustomerHandler(cs services.CustomerService, bs services.BillingService) *CustomerHandler {
	return &CustomerHandler{customerService: cs, billingService: bs}
}

func respondCustomerError(c *gin.Context, err error, action string) {
	utils.LogError(err, action)
	switch {
	case errors.Is(err, services.ErrValidation):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid customer data.", err.Error()))
	case errors.Is(err, services.ErrCustomerNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Customer not found.", err.Error()))
	default:
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Customer operation failed.", "Internal error"))
	}
}

// CreateCustomer handles adding a new customer.
func (h *CustomerHandler) CreateCustomer(c *gin.Context) {
	var customer models.Customer
	if err := c.ShouldBindJSON(&customer); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}
	created, err := h.customerService.CreateCustomer(&customer)
	if err != nil {
		respondCustomerError(c, err, "CreateCustomer: Error from customerService.CreateCustomer")
		return
	}
	c.JSON(http.StatusCreated, created)
}

// GetCustomers handles listing customers with optional name/phone search.
func (h *CustomerHandler) GetCustomers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	var searchTerm *string
	if q := c.Query("q"); q != "" {
		searchTerm = &q
	}

	customers, totalCount, err := h.customerService.GetCustomers(page, pageSize, searchTerm)
	if err != nil {
		respondCustomerError(c, err, "GetCustomers: Error from customerService.GetCustomers")
		return
	}
	if customers == nil {
		customers = []models.Customer{}
	}
	c.JSON(http.StatusOK, gin.H{
		"data":  customers,
		"total": totalCount,
	})
}

// GetCustomerByID handles fetching a single customer.
func (h *CustomerHandler) GetCustomerByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	customer, err := h.customerService.GetCustomerByID(id)
	if err != nil {
		respondCustomerError(c, err, "GetCustomerByID: Error from customerService.GetCustomerByID")
		return
	}
	c.JSON(http.StatusOK, customer)
}

// UpdateCustomer handles updating a customer record.
func (h *CustomerHandler) UpdateCustomer(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var customer models.Customer
	if err := c.ShouldBindJSON(&customer); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}
	customer.ID = id
	if err := h.customerService.UpdateCustomer(&customer); err != nil {
		respondCustomerError(c, err, "UpdateCustomer: Error from customerService.UpdateCustomer")
		return
	}
	c.JSON(http.StatusOK, customer)
}

// DeleteCustomer handles removing a customer.
func (h *CustomerHandler) DeleteCustomer(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.customerService.DeleteCustomer(id); err != nil {
		respondCustomerError(c, err, "DeleteCustomer: Error from customerService.DeleteCustomer")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Customer deleted successfully"})
}

// GetCustomerBills lists the billing history of one customer.
func (h *CustomerHandler) GetCustomerBills(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	bills, err := h.customerService.GetCustomerBills(id)
	if err != nil {
		respondCustomerError(c, err, "GetCustomerBills: Error from customerService.GetCustomerBills")
		return
	}
	if bills == nil {
		bills = []models.Bill{}
	}
	c.JSON(http.StatusOK, bills)
}

// GetCustomerLastBill returns the most recent bill of one customer.
func (h *CustomerHandler) GetCustomerLastBill(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	bill, err := h.billingService.GetLastBill(id)
	if err != nil {
		if errors.Is(err, services.ErrBillNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Customer has no bills.", err.Error()))
			return
		}
		respondCustomerError(c, err, "GetCustomerLastBill: Error from billingService.GetLastBill")
		return
	}
	c.JSON(http.StatusOK, bill)
}

// GetCustomerPrescriptions lists the prescriptions of one customer.
func (h *CustomerHandler) GetCustomerPrescriptions(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	prescriptions, err := h.customerService.GetCustomerPrescriptions(id)
	if err != nil {
		respondCustomerError(c, err, "GetCustomerPrescriptions: Error from customerService.GetCustomerPrescriptions")
		return
	}
	if prescriptions == nil {
		prescriptions = []models.Prescription{}
	}
	c.JSON(http.StatusOK, prescriptions)
}
