package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"pharmacare_backend/internal/models"

	"github.com/jmoiron/sqlx"
)

// CustomerRepository defines the interface for customer-related database operations.
type CustomerRepository interface {
	CreateCustomer(executor SQLExecutor, customer *models.Customer) (int64, error)
	GetCustomerByID(id int64) (*models.Customer, error)
	GetCustomers(page, pageSize int, searchTerm *string) ([]models.Customer, int, error)
	UpdateCustomer(executor SQLExecutor, customer *models.Customer) error
	DeleteCustomer(executor SQLExecutor, id int64) error
}

type customerRepository struct {
	db *sqlx.DB
}

// NewCustomerRepository creates a new instance of CustomerRepository.
func NewCustomerRepository(db *sqlx.DB) CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) CreateCustomer(executor SQLExecutor, customer *models.Customer) (int64, error) {
	query := `INSERT INTO customers (name, gender, dob, address, email, phone, created_at, updated_at)
	          VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	currentTime := time.Now()
	if customer.CreatedAt.IsZero() {
		customer.CreatedAt = currentTime
	}
	customer.UpdatedAt = currentTime

	result, err := executor.Exec(query,
		customer.Name, customer.Gender, customer.DOB, customer.Address, customer.Email, customer.Phone,
		customer.CreatedAt, customer.UpdatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("%w: creating customer: %v", ErrDatabaseError, err)
	}
	customer.ID, err = result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%w: reading new customer ID: %v", ErrDatabaseError, err)
	}
	return customer.ID, nil
}

func (r *customerRepository) GetCustomerByID(id int64) (*models.Customer, error) {
	customer := &models.Customer{}
	query := `SELECT id, name, gender, dob, address, email, phone, created_at, updated_at
	          FROM customers WHERE id = ?`
	err := r.db.Get(customer, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting customer by ID %d: %v", ErrDatabaseError, id, err)
	}
	return customer, nil
}

func (r *customerRepository) GetCustomers(page, pageSize int, searchTerm *string) ([]models.Customer, int, error) {
	customers := []models.Customer{}
	totalCount := 0

	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT id, name, gender, dob, address, email, phone, created_at, updated_at,
	    COUNT(*) OVER() AS total_count
	  FROM customers`)

	var args []interface{}
	if searchTerm != nil && *searchTerm != "" {
		like := "%" + *searchTerm + "%"
		queryBuilder.WriteString(" WHERE name LIKE ? OR phone LIKE ? OR email LIKE ?")
		args = append(args, like, like, like)
	}
	queryBuilder.WriteString(" ORDER BY created_at DESC, id DESC")
	if pageSize > 0 {
		queryBuilder.WriteString(" LIMIT ? OFFSET ?")
		if page < 1 {
			page = 1
		}
		args = append(args, pageSize, (page-1)*pageSize)
	}

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: querying customers: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var c models.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Gender, &c.DOB, &c.Address, &c.Email, &c.Phone,
			&c.CreatedAt, &c.UpdatedAt, &totalCount); err != nil {
			return nil, 0, fmt.Errorf("%w: scanning customer: %v", ErrDatabaseError, err)
		}
		customers = append(customers, c)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating customer rows: %v", ErrDatabaseError, err)
	}
	return customers, totalCount, nil
}

func (r *customerRepository) UpdateCustomer(executor SQLExecutor, customer *models.Customer) error {
	query := `UPDATE customers SET name = ?, gender = ?, dob = ?, address = ?, email = ?, phone = ?, updated_at = ?
	          WHERE id = ?`
	result, err := executor.Exec(query,
		customer.Name, customer.Gender, customer.DOB, customer.Address, customer.Email, customer.Phone,
		time.Now(), customer.ID,
	)
	if err != nil {
		return fmt.Errorf("%w: updating customer ID %d: %v", ErrDatabaseError, customer.ID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *customerRepository) DeleteCustomer(executor SQLExecutor, id int64) error {
	result, err := executor.Exec(`DELETE FROM customers WHERE id = ?`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: customer ID %d is referenced by bills or prescriptions", ErrDatabaseError, id)
		}
		return fmt.Errorf("%w: deleting customer ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
