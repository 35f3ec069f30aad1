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

// MedicineHandler holds the medicine service.
type MedicineHandler struct {
	medicineService services.MedicineService
}

// NewMedicineHandler creates a new MedicineHandler.
func NewMedicineHandler(ms services.MedicineService) *MedicineHandler {
	return &MedicineHandler{medicineService: ms}
}

func respondMedicineError(c *gin.Context, err error, action string) {
	utils.LogError(err, action)
	switch {
	case errors.Is(err, services.ErrValidation):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid medicine data.", err.Error()))
	case errors.Is(err, services.ErrMedicineNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Medicine not found.", err.Error()))
	case errors.Is(err, services.ErrMedicineCodeInUse):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Medicine code already in use.", err.Error()))
	default:
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Medicine operation failed.", "Internal error"))
	}
}

// CreateMedicine handles adding a medicine to the catalog.
func (h *MedicineHandler) CreateMedicine(c *gin.Context) {
	var req services.CreateMedicineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}
	medicine, err := h.medicineService.CreateMedicine(req)
	if err != nil {
		respondMedicineError(c, err, "CreateMedicine: Error from medicineService.CreateMedicine")
		return
	}
	c.JSON(http.StatusCreated, medicine)
}

// GetMedicines handles listing medicines with filters and pagination.
func (h *MedicineHandler) GetMedicines(c *gin.Context) {
	var filters models.MedicineFilters
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

	medicines, totalCount, err := h.medicineService.GetMedicines(filters)
	if err != nil {
		respondMedicineError(c, err, "GetMedicines: Error from medicineService.GetMedicines")
		return
	}
	if medicines == nil {
		medicines = []models.Medicine{}
	}
	c.JSON(http.StatusOK, gin.H{
		"data":      medicines,
		"total":     totalCount,
		"page":      filters.Page,
		"page_size": filters.PageSize,
	})
}

// SearchMedicines handles name/code lookups for the billing screen.
func (h *MedicineHandler) SearchMedicines(c *gin.Context) {
	medicines, err := h.medicineService.SearchMedicines(c.Query("q"))
	if err != nil {
		respondMedicineError(c, err, "SearchMedicines: Error from medicineService.SearchMedicines")
		return
	}
	if medicines == nil {
		medicines = []models.Medicine{}
	}
	c.JSON(http.StatusOK, medicines)
}

// GetMedicineByID handles fetching a single medicine.
func (h *MedicineHandler) GetMedicineByID(c *gin.Context) {
	medicine, err := h.medicineService.GetMedicineByID(c.Param("id"))
	if err != nil {
		respondMedicineError(c, err, "GetMedicineByID: Error from medicineService.GetMedicineByID")
		return
	}
	c.JSON(http.StatusOK, medicine)
}

// UpdateMedicine handles partial updates to a medicine record.
func (h *MedicineHandler) UpdateMedicine(c *gin.Context) {
	var req services.UpdateMedicineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}
	medicine, err := h.medicineService.UpdateMedicine(c.Param("id"), req)
	if err != nil {
		respondMedicineError(c, err, "UpdateMedicine: Error from medicineService.UpdateMedicine")
		return
	}
	c.JSON(http.StatusOK, medicine)
}

// DeleteMedicine handles removing a medicine from the catalog.
func (h *MedicineHandler) DeleteMedicine(c *gin.Context) {
	if err := h.medicineService.DeleteMedicine(c.Param("id")); err != nil {
		respondMedicineError(c, err, "DeleteMedicine: Error from medicineService.DeleteMedicine")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Medicine deleted successfully"})
}

// GetStock returns the current on-hand quantity for one medicine.
func (h *MedicineHandler) GetStock(c *gin.Context) {
	stock, err := h.medicineService.GetStock(c.Param("id"))
	if err != nil {
		respondMedicineError(c, err, "GetStock: Error from medicineService.GetStock")
		return
	}
	c.JSON(http.StatusOK, gin.H{"medicine_id": c.Param("id"), "stock": stock})
}

// SetStock overwrites the on-hand quantity for one medicine.
func (h *MedicineHandler) SetStock(c *gin.Context) {
	var req struct {
		Stock int `json:"stock" binding:"gte=0"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}
	medicine, err := h.medicineService.SetStock(c.Param("id"), req.Stock)
	if err != nil {
		respondMedicineError(c, err, "SetStock: Error from medicineService.SetStock")
		return
	}
	c.JSON(http.StatusOK, medicine)
}

// GetLowStock lists medicines at or below the reorder threshold.
func (h *MedicineHandler) GetLowStock(c *gin.Context) {
	threshold, _ := strconv.Atoi(c.DefaultQuery("threshold", "0"))
	medicines, err := h.medicineService.GetLowStock(threshold)
	if err != nil {
		respondMedicineError(c, err, "GetLowStock: Error from medicineService.GetLowStock")
		return
	}
	if medicines == nil {
		medicines = []models.Medicine{}
	}
	c.JSON(http.StatusOK, medicines)
}
