package repositories

import (
	"fmt"
	"time"

	"pharmacare_backend/internal/models"

	"github.com/jmoiron/sqlx"
)

// ReferenceRepository handles the small lookup tables: categories and units.
type ReferenceRepository interface {
	CreateCategory(executor SQLExecutor, category *models.Category) (int64, error)
	GetCategories() ([]models.Category, error)
	UpdateCategory(executor SQLExecutor, category *models.Category) error
	DeleteCategory(executor SQLExecutor, id int64) error

	CreateUnit(executor SQLExecutor, unit *models.Unit) (int64, error)
	GetUnits() ([]models.Unit, error)
	UpdateUnit(executor SQLExecutor, unit *models.Unit) error
	DeleteUnit(executor SQLExecutor, id int64) error
}

type referenceRepository struct {
	db *sqlx.DB
}

// NewReferenceRepository creates a new instance of ReferenceRepository.
func NewReferenceRepository(db *sqlx.DB) ReferenceRepository {
	return &referenceRepository{db: db}
}

func (r *referenceRepository) CreateCategory(executor SQLExecutor, category *models.Category) (int64, error) {
	return r.createNamed(executor, "categories", &category.ID, category.Name, &category.CreatedAt, &category.UpdatedAt)
}

func (r *referenceRepository) GetCategories() ([]models.Category, error) {
	categories := []models.Category{}
	query := `SELECT id, name, created_at, updated_at FROM categories ORDER BY name ASC`
	if err := r.db.Select(&categories, query); err != nil {
		return nil, fmt.Errorf("%w: querying categories: %v", ErrDatabaseError, err)
	}
	return categories, nil
}

func (r *referenceRepository) UpdateCategory(executor SQLExecutor, category *models.Category) error {
	return r.updateNamed(executor, "categories", category.ID, category.Name)
}

func (r *referenceRepository) DeleteCategory(executor SQLExecutor, id int64) error {
	return r.deleteNamed(executor, "categories", id)
}

func (r *referenceRepository) CreateUnit(executor SQLExecutor, unit *models.Unit) (int64, error) {
	return r.createNamed(executor, "units", &unit.ID, unit.Name, &unit.CreatedAt, &unit.UpdatedAt)
}

func (r *referenceRepository) GetUnits() ([]models.Unit, error) {
	units := []models.Unit{}
	query := `SELECT id, name, created_at, updated_at FROM units ORDER BY name ASC`
	if err := r.db.Select(&units, query); err != nil {
		return nil, fmt.Errorf("%w: querying units: %v", ErrDatabaseError, err)
	}
	return units, nil
}

func (r *referenceRepository) UpdateUnit(executor SQLExecutor, unit *models.Unit) error {
	return r.updateNamed(executor, "units", unit.ID, unit.Name)
}

func (r *referenceRepository) DeleteUnit(executor SQLExecutor, id int64) error {
	return r.deleteNamed(executor, "units", id)
}

// Both lookup tables share the same shape, so the write paths are
// implemented once over the table name.

func (r *referenceRepository) createNamed(executor SQLExecutor, table string, id *int64, name string, createdAt, updatedAt *time.Time) (int64, error) {
	currentTime := time.Now()
	*createdAt = currentTime
	*updatedAt = currentTime

	query := fmt.Sprintf(`INSERT INTO %s (name, created_at, updated_at) VALUES (?, ?, ?)`, table)
	result, err := executor.Exec(query, name, currentTime, currentTime)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("%w: %s name '%s' already exists", ErrDuplicateKey, table, name)
		}
		return 0, fmt.Errorf("%w: creating %s entry: %v", ErrDatabaseError, table, err)
	}
	newID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%w: reading new %s ID: %v", ErrDatabaseError, table, err)
	}
	*id = newID
	return newID, nil
}

func (r *referenceRepository) updateNamed(executor SQLExecutor, table string, id int64, name string) error {
	query := fmt.Sprintf(`UPDATE %s SET name = ?, updated_at = ? WHERE id = ?`, table)
	result, err := executor.Exec(query, name, time.Now(), id)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s name '%s' already exists", ErrDuplicateKey, table, name)
		}
		return fmt.Errorf("%w: updating %s ID %d: %v", ErrDatabaseError, table, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *referenceRepository) deleteNamed(executor SQLExecutor, table string, id int64) error {
	result, err := executor.Exec(fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, table), id)
	if err != nil {
		return fmt.Errorf("%w: deleting %s ID %d: %v", ErrDatabaseError, table, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
