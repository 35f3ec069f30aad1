package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"pharmacare_backend/internal/models"
	"pharmacare_backend/internal/repositories"

	"github.com/jmoiron/sqlx"
)

var (
	ErrPrescriptionNotFound = errors.New("prescription not found")
	ErrDoctorNotFound       = errors.New("doctor not found")
)

// --- Prescription DTOs ---

type PrescriptionItemRequest struct {
	MedicineID string  `json:"medicine_id" binding:"required"`
	Dosage     *string `json:"dosage"`
	Duration   *string `json:"duration"`
}

type CreatePrescriptionRequest struct {
	CustomerID int64                     `json:"customer_id" binding:"required"`
	DoctorID   *int64                    `json:"doctor_id"`
	Notes      *string                   `json:"notes"`
	Items      []PrescriptionItemRequest `json:"items" binding:"required"`
}

// --- PrescriptionService Interface ---

type PrescriptionService interface {
	CreatePrescription(req CreatePrescriptionRequest) (*models.Prescription, error)
	GetPrescriptionByID(id int64) (*models.Prescription, error)
	DeletePrescription(id int64) error

	// Doctor directory
	CreateDoctor(doctor *models.Doctor) (*models.Doctor, error)
	GetDoctorByID(id int64) (*models.Doctor, error)
	GetDoctors() ([]models.Doctor, error)
	UpdateDoctor(doctor *models.Doctor) error
	DeleteDoctor(id int64) error
}

type prescriptionService struct {
	prescriptionRepo repositories.PrescriptionRepository
	customerRepo     repositories.CustomerRepository
	medicineRepo     repositories.MedicineRepository
	db               *sqlx.DB
}

// NewPrescriptionService creates a new instance of PrescriptionService.
func NewPrescriptionService(pr repositories.PrescriptionRepository, cr repositories.CustomerRepository, mr repositories.MedicineRepository, db *sqlx.DB) PrescriptionService {
	return &prescriptionService{prescriptionRepo: pr, customerRepo: cr, medicineRepo: mr, db: db}
}

// CreatePrescription writes the prescription header and its items in
// one transaction so a failed item insert never leaves a dangling
// header behind.
func (s *prescriptionService) CreatePrescription(req CreatePrescriptionRequest) (*models.Prescription, error) {
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: prescription must contain at least one item", ErrValidation)
	}
	for i, item := range req.Items {
		if strings.TrimSpace(item.MedicineID) == "" {
			return nil, fmt.Errorf("%w: item %d: medicine_id cannot be empty", ErrValidation, i+1)
		}
	}

	if _, err := s.customerRepo.GetCustomerByID(req.CustomerID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("failed to verify customer: %w", err)
	}
	if req.DoctorID != nil {
		if _, err := s.prescriptionRepo.GetDoctorByID(*req.DoctorID); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, ErrDoctorNotFound
			}
			return nil, fmt.Errorf("failed to verify doctor: %w", err)
		}
	}
	for _, item := range req.Items {
		if _, err := s.medicineRepo.GetMedicineByID(item.MedicineID); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, fmt.Errorf("%w: %s", ErrMedicineNotFound, item.MedicineID)
			}
			return nil, fmt.Errorf("failed to verify medicine: %w", err)
		}
	}

	tx, err := s.db.Beginx()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	prescription := &models.Prescription{
		CustomerID: req.CustomerID,
		DoctorID:   req.DoctorID,
		Date:       time.Now(),
		Notes:      req.Notes,
	}
	prescriptionID, err := s.prescriptionRepo.CreatePrescription(tx, prescription)
	if err != nil {
		return nil, fmt.Errorf("failed to create prescription: %w", err)
	}
	prescription.ID = prescriptionID

	for _, itemReq := range req.Items {
		item := &models.PrescriptionItem{
			PrescriptionID: prescriptionID,
			MedicineID:     itemReq.MedicineID,
			Dosage:         itemReq.Dosage,
			Duration:       itemReq.Duration,
		}
		itemID, err := s.prescriptionRepo.CreatePrescriptionItem(tx, item)
		if err != nil {
			return nil, fmt.Errorf("failed to create prescription item: %w", err)
		}
		item.ID = itemID
		prescription.Items = append(prescription.Items, *item)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return prescription, nil
}

func (s *prescriptionService) GetPrescriptionByID(id int64) (*models.Prescription, error) {
	prescription, err := s.prescriptionRepo.GetPrescriptionByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrPrescriptionNotFound
		}
		return nil, fmt.Errorf("failed to get prescription by ID: %w", err)
	}
	items, err := s.prescriptionRepo.GetPrescriptionItems(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get prescription items: %w", err)
	}
	prescription.Items = items
	return prescription, nil
}

func (s *prescriptionService) DeletePrescription(id int64) error {
	if err := s.prescriptionRepo.DeletePrescription(s.db, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrPrescriptionNotFound
		}
		return fmt.Errorf("failed to delete prescription: %w", err)
	}
	return nil
}

// --- Doctor directory ---

func (s *prescriptionService) CreateDoctor(doctor *models.Doctor) (*models.Doctor, error) {
	if strings.TrimSpace(doctor.Name) == "" {
		return nil, fmt.Errorf("%w: doctor name cannot be empty", ErrValidation)
	}
	id, err := s.prescriptionRepo.CreateDoctor(s.db, doctor)
	if err != nil {
		return nil, fmt.Errorf("failed to create doctor: %w", err)
	}
	doctor.ID = id
	return doctor, nil
}

func (s *prescriptionService) GetDoctorByID(id int64) (*models.Doctor, error) {
	doctor, err := s.prescriptionRepo.GetDoctorByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrDoctorNotFound
		}
		return nil, fmt.Errorf("failed to get doctor by ID: %w", err)
	}
	return doctor, nil
}

func (s *prescriptionService) GetDoctors() ([]models.Doctor, error) {
	doctors, err := s.prescriptionRepo.GetDoctors()
	if err != nil {
		return nil, fmt.Errorf("failed to get doctors: %w", err)
	}
	return doctors, nil
}

func (s *prescriptionService) UpdateDoctor(doctor *models.Doctor) error {
	if strings.TrimSpace(doctor.Name) == "" {
		return fmt.Errorf("%w: doctor name cannot be empty", ErrValidation)
	}
	if err := s.prescriptionRepo.UpdateDoctor(s.db, doctor); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrDoctorNotFound
		}
		return fmt.Errorf("failed to update doctor: %w", err)
	}
	return nil
}

func (s *prescriptionService) DeleteDoctor(id int64) error {
	if err := s.prescriptionRepo.DeleteDoctor(s.db, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrDoctorNotFound
		}
		return fmt.Errorf("failed to delete doctor: %w", err)
	}
	return nil
}
