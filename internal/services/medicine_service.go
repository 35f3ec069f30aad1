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
	ErrValidation        = errors.New("validation error") // Generic validation error
	ErrMedicineNotFound  = errors.New("medicine not found")
	ErrMedicineCodeInUse = errors.New("medicine code already in use")
	ErrCategoryNotFound  = errors.New("category not found")
	ErrUnitNotFound      = errors.New("unit not found")
)

// DefaultLowStockThreshold marks the reorder point when a screen does
// not supply one.
const DefaultLowStockThreshold = 10

// --- Medicine DTOs ---

type CreateMedicineRequest struct {
	ID           string  `json:"id"` // Optional; generated as the next M#### code when empty
	Name         string  `json:"name" binding:"required"`
	Category     string  `json:"category" binding:"required"`
	Manufacturer *string `json:"manufacturer"`
	BatchNumber  *string `json:"batch_number"`
	Price        float64 `json:"price" binding:"required,gt=0"`
	Unit         *string `json:"unit"`
	PackingSize  *string `json:"packing_size"`
	Stock        int     `json:"stock"`
	ExpiryDate   string  `json:"expiry_date" binding:"required"` // YYYY-MM-DD
}

type UpdateMedicineRequest struct {
	Name         *string  `json:"name"`
	Category     *string  `json:"category"`
	Manufacturer *string  `json:"manufacturer"`
	BatchNumber  *string  `json:"batch_number"`
	Price        *float64 `json:"price"`
	Unit         *string  `json:"unit"`
	PackingSize  *string  `json:"packing_size"`
	ExpiryDate   *string  `json:"expiry_date"`
}

// --- MedicineService Interface ---

type MedicineService interface {
	CreateMedicine(req CreateMedicineRequest) (*models.Medicine, error)
	GetMedicineByID(id string) (*models.Medicine, error)
	GetMedicines(filters models.MedicineFilters) ([]models.Medicine, int, error)
	SearchMedicines(term string) ([]models.Medicine, error)
	UpdateMedicine(id string, req UpdateMedicineRequest) (*models.Medicine, error)
	DeleteMedicine(id string) error
	GetStock(id string) (int, error)
	SetStock(id string, stock int) (*models.Medicine, error)
	GetLowStock(threshold int) ([]models.Medicine, error)

	// Reference data
	CreateCategory(name string) (*models.Category, error)
	GetCategories() ([]models.Category, error)
	UpdateCategory(id int64, name string) error
	DeleteCategory(id int64) error
	CreateUnit(name string) (*models.Unit, error)
	GetUnits() ([]models.Unit, error)
	UpdateUnit(id int64, name string) error
	DeleteUnit(id int64) error
}

type medicineService struct {
	medicineRepo  repositories.MedicineRepository
	referenceRepo repositories.ReferenceRepository
	db            *sqlx.DB
}

// NewMedicineService creates a new instance of MedicineService.
func NewMedicineService(mr repositories.MedicineRepository, rr repositories.ReferenceRepository, db *sqlx.DB) MedicineService {
	return &medicineService{medicineRepo: mr, referenceRepo: rr, db: db}
}

func (s *medicineService) CreateMedicine(req CreateMedicineRequest) (*models.Medicine, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: medicine name cannot be empty", ErrValidation)
	}
	if req.Price <= 0 {
		return nil, fmt.Errorf("%w: price must be positive", ErrValidation)
	}
	if req.Stock < 0 {
		return nil, fmt.Errorf("%w: stock cannot be negative", ErrValidation)
	}
	if _, err := time.Parse("2006-01-02", req.ExpiryDate); err != nil {
		return nil, fmt.Errorf("%w: expiry date must be YYYY-MM-DD", ErrValidation)
	}

	id := strings.TrimSpace(req.ID)
	if id == "" {
		var err error
		id, err = s.medicineRepo.NextMedicineID()
		if err != nil {
			return nil, fmt.Errorf("failed to generate medicine code: %w", err)
		}
	}

	medicine := &models.Medicine{
		ID:           id,
		Name:         req.Name,
		Category:     req.Category,
		Manufacturer: req.Manufacturer,
		BatchNumber:  req.BatchNumber,
		Price:        req.Price,
		Unit:         req.Unit,
		PackingSize:  req.PackingSize,
		Stock:        req.Stock,
		ExpiryDate:   req.ExpiryDate,
	}
	if err := s.medicineRepo.CreateMedicine(s.db, medicine); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: %s", ErrMedicineCodeInUse, id)
		}
		return nil, fmt.Errorf("failed to create medicine: %w", err)
	}
	return medicine, nil
}

func (s *medicineService) GetMedicineByID(id string) (*models.Medicine, error) {
	medicine, err := s.medicineRepo.GetMedicineByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrMedicineNotFound
		}
		return nil, fmt.Errorf("failed to get medicine by ID: %w", err)
	}
	return medicine, nil
}

func (s *medicineService) GetMedicines(filters models.MedicineFilters) ([]models.Medicine, int, error) {
	medicines, totalCount, err := s.medicineRepo.GetMedicines(filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get medicines: %w", err)
	}
	return medicines, totalCount, nil
}

func (s *medicineService) SearchMedicines(term string) ([]models.Medicine, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, fmt.Errorf("%w: search term cannot be empty", ErrValidation)
	}
	medicines, err := s.medicineRepo.SearchMedicines(term, 100)
	if err != nil {
		return nil, fmt.Errorf("failed to search medicines: %w", err)
	}
	return medicines, nil
}

func (s *medicineService) UpdateMedicine(id string, req UpdateMedicineRequest) (*models.Medicine, error) {
	medicine, err := s.GetMedicineByID(id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, fmt.Errorf("%w: medicine name cannot be empty if provided", ErrValidation)
		}
		medicine.Name = *req.Name
	}
	if req.Category != nil {
		medicine.Category = *req.Category
	}
	if req.Manufacturer != nil {
		medicine.Manufacturer = req.Manufacturer
	}
	if req.BatchNumber != nil {
		medicine.BatchNumber = req.BatchNumber
	}
	if req.Price != nil {
		if *req.Price <= 0 {
			return nil, fmt.Errorf("%w: price must be positive", ErrValidation)
		}
		medicine.Price = *req.Price
	}
	if req.Unit != nil {
		medicine.Unit = req.Unit
	}
	if req.PackingSize != nil {
		medicine.PackingSize = req.PackingSize
	}
	if req.ExpiryDate != nil {
		if _, err := time.Parse("2006-01-02", *req.ExpiryDate); err != nil {
			return nil, fmt.Errorf("%w: expiry date must be YYYY-MM-DD", ErrValidation)
		}
		medicine.ExpiryDate = *req.ExpiryDate
	}

	if err := s.medicineRepo.UpdateMedicine(s.db, medicine); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrMedicineNotFound
		}
		return nil, fmt.Errorf("failed to update medicine: %w", err)
	}
	return medicine, nil
}

func (s *medicineService) DeleteMedicine(id string) error {
	if err := s.medicineRepo.DeleteMedicine(s.db, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrMedicineNotFound
		}
		return fmt.Errorf("failed to delete medicine: %w", err)
	}
	return nil
}

func (s *medicineService) GetStock(id string) (int, error) {
	stock, err := s.medicineRepo.GetStock(s.db, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return 0, ErrMedicineNotFound
		}
		return 0, fmt.Errorf("failed to get stock: %w", err)
	}
	return stock, nil
}

// SetStock overwrites the on-hand quantity directly. This is the
// manual adjustment path used by the inventory screen, not the ledger
// path; bills and purchases adjust stock through their own operations.
func (s *medicineService) SetStock(id string, stock int) (*models.Medicine, error) {
	if stock < 0 {
		return nil, fmt.Errorf("%w: stock cannot be negative", ErrValidation)
	}
	if err := s.medicineRepo.SetStock(s.db, id, stock); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrMedicineNotFound
		}
		return nil, fmt.Errorf("failed to set stock: %w", err)
	}
	return s.GetMedicineByID(id)
}

func (s *medicineService) GetLowStock(threshold int) ([]models.Medicine, error) {
	if threshold <= 0 {
		threshold = DefaultLowStockThreshold
	}
	medicines, err := s.medicineRepo.GetLowStock(threshold)
	if err != nil {
		return nil, fmt.Errorf("failed to get low stock medicines: %w", err)
	}
	return medicines, nil
}

// --- Reference data ---

func (s *medicineService) CreateCategory(name string) (*models.Category, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: category name cannot be empty", ErrValidation)
	}
	category := &models.Category{Name: name}
	if _, err := s.referenceRepo.CreateCategory(s.db, category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return category, nil
}

func (s *medicineService) GetCategories() ([]models.Category, error) {
	categories, err := s.referenceRepo.GetCategories()
	if err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}
	return categories, nil
}

func (s *medicineService) UpdateCategory(id int64, name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: category name cannot be empty", ErrValidation)
	}
	err := s.referenceRepo.UpdateCategory(s.db, &models.Category{ID: id, Name: name})
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrCategoryNotFound
	}
	return err
}

func (s *medicineService) DeleteCategory(id int64) error {
	err := s.referenceRepo.DeleteCategory(s.db, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrCategoryNotFound
	}
	return err
}

func (s *medicineService) CreateUnit(name string) (*models.Unit, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: unit name cannot be empty", ErrValidation)
	}
	unit := &models.Unit{Name: name}
	if _, err := s.referenceRepo.CreateUnit(s.db, unit); err != nil {
		return nil, fmt.Errorf("failed to create unit: %w", err)
	}
	return unit, nil
}

func (s *medicineService) GetUnits() ([]models.Unit, error) {
	units, err := s.referenceRepo.GetUnits()
	if err != nil {
		return nil, fmt.Errorf("failed to get units: %w", err)
	}
	return units, nil
}

func (s *medicineService) UpdateUnit(id int64, name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: unit name cannot be empty", ErrValidation)
	}
	err := s.referenceRepo.UpdateUnit(s.db, &models.Unit{ID: id, Name: name})
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrUnitNotFound
	}
	return err
}

func (s *medicineService) DeleteUnit(id int64) error {
	err := s.referenceRepo.DeleteUnit(s.db, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrUnitNotFound
	}
	return err
}
