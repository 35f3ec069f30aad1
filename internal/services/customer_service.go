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

var ErrCustomerNotFound = errors.New("customer not found")

type CustomerService interface {
	CreateCustomer(customer *models.Customer) (*models.Customer, error)
	GetCustomerByID(id int64) (*models.Customer, error)
	GetCustomers(page, pageSize int, searchTerm *string) ([]models.Customer, int, error)
	UpdateCustomer(customer *models.Customer) error
	DeleteCustomer(id int64) error
	GetCustomerBills(customerID int64) ([]models.Bill, error)
	GetCustomerPrescriptions(customerID int64) ([]models.Prescription, error)
}

type customerService struct {
	customerRepo     repositories.CustomerRepository
	billingRepo      repositories.BillingRepository
	prescriptionRepo repositories.PrescriptionRepository
	db               *sqlx.DB
}

// NewCustomerService creates a new instance of CustomerService.
func NewCustomerService(cr repositories.CustomerRepository, br repositories.BillingRepository, pr repositories.PrescriptionRepository, db *sqlx.DB) CustomerService {
	return &customerService{customerRepo: cr, billingRepo: br, prescriptionRepo: pr, db: db}
}

func validateCustomer(customer *models.Customer) error {
	if strings.TrimSpace(customer.Name) == "" {
		return fmt.Errorf("%w: customer name cannot be empty", ErrValidation)
	}
	if customer.Email != nil && *customer.Email != "" && !utils.IsValidEmail(*customer.Email) {
		return fmt.Errorf("%w: invalid email format", ErrValidation)
	}
	if customer.DOB != nil && *customer.DOB != "" && !utils.IsValidDate(*customer.DOB) {
		return fmt.Errorf("%w: date of birth must be YYYY-MM-DD", ErrValidation)
	}
	return nil
}

func (s *customerService) CreateCustomer(customer *models.Customer) (*models.Customer, error) {
	if err := validateCustomer(customer); err != nil {
		return nil, err
	}
	id, err := s.customerRepo.CreateCustomer(s.db, customer)
	if err != nil {
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}
	customer.ID = id
	return customer, nil
}

func (s *customerService) GetCustomerByID(id int64) (*models.Customer, error) {
	customer, err := s.customerRepo.GetCustomerByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("failed to get customer by ID: %w", err)
	}
	return customer, nil
}

func (s *customerService) GetCustomers(page, pageSize int, searchTerm *string) ([]models.Customer, int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	customers, totalCount, err := s.customerRepo.GetCustomers(page, pageSize, searchTerm)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get customers: %w", err)
	}
	return customers, totalCount, nil
}

func (s *customerService) UpdateCustomer(customer *models.Customer) error {
	if err := validateCustomer(customer); err != nil {
		return err
	}
	if err := s.customerRepo.UpdateCustomer(s.db, customer); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrCustomerNotFound
		}
		return fmt.Errorf("failed to update customer: %w", err)
	}
	return nil
}

func (s *customerService) DeleteCustomer(id int64) error {
	if err := s.customerRepo.DeleteCustomer(s.db, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrCustomerNotFound
		}
		return fmt.Errorf("failed to delete customer: %w", err)
	}
	return nil
}

func (s *customerService) GetCustomerBills(customerID int64) ([]models.Bill, error) {
	if _, err := s.GetCustomerByID(customerID); err != nil {
		return nil, err
	}
	bills, err := s.billingRepo.GetCustomerBills(customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get customer bills: %w", err)
	}
	return bills, nil
}

func (s *customerService) GetCustomerPrescriptions(customerID int64) ([]models.Prescription, error) {
	if _, err := s.GetCustomerByID(customerID); err != nil {
		return nil, err
	}
	prescriptions, err := s.prescriptionRepo.GetCustomerPrescriptions(customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get customer prescriptions: %w", err)
	}
	return prescriptions, nil
}
