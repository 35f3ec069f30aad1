package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"pharmacare_backend/internal/models"

	"github.com/jmoiron/sqlx"
)

// SupplierRepository defines the interface for supplier-related database operations.
type SupplierRepository interface {
	CreateSupplier(executor SQLExecutor, supplier *models.Supplier) (int64, error)
	GetSupplierByID(id int64) (*models.Supplier, error)
	GetSuppliers() ([]models.Supplier, error)
	UpdateSupplier(executor SQLExecutor, supplier *models.Supplier) error
	DeleteSupplier(executor SQLExecutor, id int64) error
}

type supplierRepository struct {
	db *sqlx.DB
}

// NewSupplierRepository creates a new instance of SupplierRepository.
func NewSupplierRepository(db *sqlx.DB) SupplierRepository {
	return &supplierRepository{db: db}
}

func (r *supplierRepository) CreateSupplier(executor SQLExecutor, supplier *models.Supplier) (int64, error) {
	query := `INSERT INTO suppliers (name, contact_person, address, email, phone, created_at)
	          VALUES (?, ?, ?, ?, ?, ?)`
	if supplier.CreatedAt.IsZero() {
		supplier.CreatedAt = time.Now()
	}
	result, err := executor.Exec(query,
		supplier.Name, supplier.ContactPerson, supplier.Address, supplier.Email, supplier.Phone, supplier.CreatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("%w: creating supplier: %v", ErrDatabaseError, err)
	}
	supplier.ID, err = result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%w: reading new supplier ID: %v", ErrDatabaseError, err)
	}
	return supplier.ID, nil
}

func (r *supplierRepository) GetSupplierByID(id int64) (*models.Supplier, error) {
	supplier := &models.Supplier{}
	query := `SELECT id, name, contact_person, address, email, phone, created_at FROM suppliers WHERE id = ?`
	err := r.db.Get(supplier, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting supplier by ID %d: %v", ErrDatabaseError, id, err)
	}
	return supplier, nil
}

func (r *supplierRepository) GetSuppliers() ([]models.Supplier, error) {
	suppliers := []models.Supplier{}
	query := `SELECT id, name, contact_person, address, email, phone, created_at
	          FROM suppliers ORDER BY created_at DESC, id DESC`
	if err := r.db.Select(&suppliers, query); err != nil {
		return nil, fmt.Errorf("%w: querying suppliers: %v", ErrDatabaseError, err)
	}
	return suppliers, nil
}

func (r *supplierRepository) UpdateSupplier(executor SQLExecutor, supplier *models.Supplier) error {
	query := `UPDATE suppliers SET name = ?, contact_person = ?, address = ?, email = ?, phone = ? WHERE id = ?`
	result, err := executor.Exec(query,
		supplier.Name, supplier.ContactPerson, supplier.Address, supplier.Email, supplier.Phone, supplier.ID,
	)
	if err != nil {
		return fmt.Errorf("%w: updating supplier ID %d: %v", ErrDatabaseError, supplier.ID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *supplierRepository) DeleteSupplier(executor SQLExecutor, id int64) error {
	result, err := executor.Exec(`DELETE FROM suppliers WHERE id = ?`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: supplier ID %d is referenced by purchases", ErrDatabaseError, id)
		}
		return fmt.Errorf("%w: deleting supplier ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
