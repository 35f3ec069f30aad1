package handlers

import (
	"errors"
	"net/http"

	"pharmacare_backend/internal/models"
	"pharmacare_backend/internal/services"
	"pharmacare_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// PrescriptionHandler holds the prescription service.
type PrescriptionHandler struct {
	prescriptionService services.PrescriptionService
}

// NewPrescriptionHandler creates a new PrescriptionHandler.
func NewPrescriptionHandler(ps services.PrescriptionService) *PrescriptionHandler {
	return &PrescriptionHandler{prescriptionService: ps}
}

func respondPrescriptionError(c *gin.Context, err error, action string) {
	utils.LogError(err, action)
	switch {
	case errors.Is(err, services.ErrValidation):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid prescription data.", err.Error()))
	case errors.Is(err, services.ErrPrescriptionNotFound),
		errors.Is(err, services.ErrDoctorNotFound),
		errors.Is(err, services.ErrCustomerNotFound),
		errors.Is(err, services.ErrMedicineNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Record not found.", err.Error()))
	default:
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Prescription operation failed.", "Internal error"))
	}
}

// CreatePrescription handles recording a new prescription.
func (h *PrescriptionHandler) CreatePrescription(c *gin.Context) {
	var req services.CreatePrescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}
	prescription, err := h.prescriptionService.CreatePrescription(req)
	if err != nil {
		respondPrescriptionError(c, err, "CreatePrescription: Error from prescriptionService.CreatePrescription")
		return
	}
	c.JSON(http.StatusCreated, prescription)
}

// GetPrescriptionByID handles fetching a prescription with its items.
func (h *PrescriptionHandler) GetPrescriptionByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	prescription, err := h.prescriptionService.GetPrescriptionByID(id)
	if err != nil {
		respondPrescriptionError(c, err, "GetPrescriptionByID: Error from prescriptionService.GetPrescriptionByID")
		return
	}
	c.JSON(http.StatusOK, prescription)
}

// DeletePrescription handles removing a prescription.
func (h *PrescriptionHandler) DeletePrescription(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.prescriptionService.DeletePrescription(id); err != nil {
		respondPrescriptionError(c, err, "DeletePrescription: Error from prescriptionService.DeletePrescription")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Prescription deleted successfully"})
}

// --- Doctor directory ---

// CreateDoctor handles adding a doctor.
func (h *PrescriptionHandler) CreateDoctor(c *gin.Context) {
	var doctor models.Doctor
	if err := c.ShouldBindJSON(&doctor); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}
	created, err := h.prescriptionService.CreateDoctor(&doctor)
	if err != nil {
		respondPrescriptionError(c, err, "CreateDoctor: Error from prescriptionService.CreateDoctor")
		return
	}
	c.JSON(http.StatusCreated, created)
}

// GetDoctors handles listing all doctors.
func (h *PrescriptionHandler) GetDoctors(c *gin.Context) {
	doctors, err := h.prescriptionService.GetDoctors()
	if err != nil {
		respondPrescriptionError(c, err, "GetDoctors: Error from prescriptionService.GetDoctors")
		return
	}
	if doctors == nil {
		doctors = []models.Doctor{}
	}
	c.JSON(http.StatusOK, doctors)
}

// GetDoctorByID handles fetching a single doctor.
func (h *PrescriptionHandler) GetDoctorByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	doctor, err := h.prescriptionService.GetDoctorByID(id)
	if err != nil {
		respondPrescriptionError(c, err, "GetDoctorByID: Error from prescriptionService.GetDoctorByID")
		return
	}
	c.JSON(http.StatusOK, doctor)
}

// UpdateDoctor handles updating a doctor record.
func (h *PrescriptionHandler) UpdateDoctor(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var doctor models.Doctor
	if err := c.ShouldBindJSON(&doctor); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}
	doctor.ID = id
	if err := h.prescriptionService.UpdateDoctor(&doctor); err != nil {
		respondPrescriptionError(c, err, "UpdateDoctor: Error from prescriptionService.UpdateDoctor")
		return
	}
	c.JSON(http.StatusOK, doctor)
}

// DeleteDoctor handles removing a doctor.
func (h *PrescriptionHandler) DeleteDoctor(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.prescriptionService.DeleteDoctor(id); err != nil {
		respondPrescriptionError(c, err, "DeleteDoctor: Error from prescriptionService.DeleteDoctor")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Doctor deleted successfully"})
}
