package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"pharmacare_backend/internal/services"
	"pharmacare_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// ReferenceHandler serves the category and unit reference tables.
type ReferenceHandler struct {
	medicineService services.MedicineService
}

// NewReferenceHandler creates a new ReferenceHandler.
func NewReferenceHandler(ms services.MedicineService) *ReferenceHandler {
	return &ReferenceHandler{medicineService: ms}
}

type namedEntityRequest struct {
	Name string `json:"name" binding:"required"`
}

func respondReferenceError(c *gin.Context, err error, action string) {
	utils.LogError(err, action)
	switch {
	case errors.Is(err, services.ErrValidation):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid name.", err.Error()))
	case errors.Is(err, services.ErrCategoryNotFound), errors.Is(err, services.ErrUnitNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Record not found.", err.Error()))
	default:
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Reference data operation failed.", "Internal error"))
	}
}

func parseIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid ID format.", err.Error()))
		return 0, false
	}
	return id, true
}

func (h *ReferenceHandler) CreateCategory(c *gin.Context) {
	var req namedEntityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}
	category, err := h.medicineService.CreateCategory(req.Name)
	if err != nil {
		respondReferenceError(c, err, "CreateCategory: Error from medicineService.CreateCategory")
		return
	}
	c.JSON(http.StatusCreated, category)
}

func (h *ReferenceHandler) GetCategories(c *gin.Context) {
	categories, err := h.medicineService.GetCategories()
	if err != nil {
		respondReferenceError(c, err, "GetCategories: Error from medicineService.GetCategories")
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (h *ReferenceHandler) UpdateCategory(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req namedEntityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}
	if err := h.medicineService.UpdateCategory(id, req.Name); err != nil {
		respondReferenceError(c, err, "UpdateCategory: Error from medicineService.UpdateCategory")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Category updated successfully"})
}

func (h *ReferenceHandler) DeleteCategory(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.medicineService.DeleteCategory(id); err != nil {
		respondReferenceError(c, err, "DeleteCategory: Error from medicineService.DeleteCategory")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully"})
}

func (h *ReferenceHandler) CreateUnit(c *gin.Context) {
	var req namedEntityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}
	unit, err := h.medicineService.CreateUnit(req.Name)
	if err != nil {
		respondReferenceError(c, err, "CreateUnit: Error from medicineService.CreateUnit")
		return
	}
	c.JSON(http.StatusCreated, unit)
}

func (h *ReferenceHandler) GetUnits(c *gin.Context) {
	units, err := h.medicineService.GetUnits()
	if err != nil {
		respondReferenceError(c, err, "GetUnits: Error from medicineService.GetUnits")
		return
	}
	c.JSON(http.StatusOK, units)
}

func (h *ReferenceHandler) UpdateUnit(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req namedEntityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}
	if err := h.medicineService.UpdateUnit(id, req.Name); err != nil {
		respondReferenceError(c, err, "UpdateUnit: Error from medicineService.UpdateUnit")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Unit updated successfully"})
}

func (h *ReferenceHandler) DeleteUnit(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.medicineService.DeleteUnit(id); err != nil {
		respondReferenceError(c, err, "DeleteUnit: Error from medicineService.DeleteUnit")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Unit deleted successfully"})
}
