package services

import (
	"errors"
	"fmt"
	"strings"

	"pharmacare_backend/internal/models"
	"pharmacare_backend/internal/repositories"
	"pharmacare_backend/pkg/utils"

	"github.com/jmoiron/sqlx"
)

var ErrSupplierNotFound = errors.New("supplier not found")

type SupplierService interface {
	CreateSupplier(supplier *models.Supplier) (*models.Supplier, error)
	GetSupplierByID(id int64) (*models.Supplier, error)
	GetSuppliers() ([]models.Supplier, error)
	UpdateSupplier(supplier *models.Supplier) error
	DeleteSupplier(id int64) error
}

type supplierService struct {
	supplierRepo repositories.SupplierRepository
	db           *sqlx.DB
}

// NewSupplierService creates a new instance of SupplierService.
func NewSupplierService(sr repositories.SupplierRepository, db *sqlx.DB) SupplierService {
	return &supplierService{supplierRepo: sr, db: db}
}

func validateSupplier(supplier *models.Supplier) error {
	if strings.TrimSpace(supplier.Name) == "" {
		return fmt.Errorf("%w: supplier name cannot be empty", ErrValidation)
	}
	if supplier.Email != nil && *supplier.Email != "" && !utils.IsValidEmail(*supplier.Email) {
		return fmt.Errorf("%w: invalid email format", ErrValidation)
	}
	return nil
}

func (s *supplierService) CreateSupplier(supplier *models.Supplier) (*models.Supplier, error) {
	if err := validateSupplier(supplier); err != nil {
		return nil, err
	}
	id, err := s.supplierRepo.CreateSupplier(s.db, supplier)
	if err != nil {
		return nil, fmt.Errorf("failed to create supplier: %w", err)
	}
	supplier.ID = id
	return supplier, nil
}

func (s *supplierService) GetSupplierByID(id int64) (*models.Supplier, error) {
	supplier, err := s.supplierRepo.GetSupplierByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrSupplierNotFound
		}
		return nil, fmt.Errorf("failed to get supplier by ID: %w", err)
	}
	return supplier, nil
}

func (s *supplierService) GetSuppliers() ([]models.Supplier, error) {
	suppliers, err := s.supplierRepo.GetSuppliers()
	if err != nil {
		return nil, fmt.Errorf("failed to get suppliers: %w", err)
	}
	return suppliers, nil
}

func (s *supplierService) UpdateSupplier(supplier *models.Supplier) error {
	if err := validateSupplier(supplier); err != nil {
		return err
	}
	if err := s.supplierRepo.UpdateSupplier(s.db, supplier); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrSupplierNotFound
		}
		return fmt.Errorf("failed to update supplier: %w", err)
	}
	return nil
}

func (s *supplierService) DeleteSupplier(id int64) error {
	if err := s.supplierRepo.DeleteSupplier(s.db, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrSupplierNotFound
		}
		return fmt.Errorf("failed to delete supplier: %w", err)
	}
	return nil
}
