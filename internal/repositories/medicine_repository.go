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

// MedicineRepository defines the interface for medicine-related database operations.
type MedicineRepository interface {
	CreateMedicine(executor SQLExecutor, medicine *models.Medicine) error
	GetMedicineByID(id string) (*models.Medicine, error)
	GetMedicines(filters models.MedicineFilters) ([]models.Medicine, int, error)
	SearchMedicines(term string, limit int) ([]models.Medicine, error)
	UpdateMedicine(executor SQLExecutor, medicine *models.Medicine) error
	DeleteMedicine(executor SQLExecutor, id string) error
	NextMedicineID() (string, error)

	// Stock accessors used by the billing and purchase services. Both
	// accept an executor so they can run inside the same transaction as
	// the header and item inserts.
	GetStock(executor SQLExecutor, id string) (int, error)
	SetStock(executor SQLExecutor, id string, stock int) error
	UpdateStock(executor SQLExecutor, id string, quantityChange int) error

	GetLowStock(threshold int) ([]models.Medicine, error)
	StockSummary(lowStockThreshold int) (*models.StockReport, error)
}

type medicineRepository struct {
	db *sqlx.DB
}

// NewMedicineRepository creates a new instance of MedicineRepository.
func NewMedicineRepository(db *sqlx.DB) MedicineRepository {
	return &medicineRepository{db: db}
}

func (r *medicineRepository) CreateMedicine(executor SQLExecutor, medicine *models.Medicine) error {
	query := `INSERT INTO medicines
	            (id, name, category, manufacturer, batch_number, price, unit, packing_size, stock, expiry_date, created_at, updated_at)
	          VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	currentTime := time.Now()
	if medicine.CreatedAt.IsZero() {
		medicine.CreatedAt = currentTime
	}
	medicine.UpdatedAt = currentTime

	_, err := executor.Exec(query,
		medicine.ID, medicine.Name, medicine.Category, medicine.Manufacturer, medicine.BatchNumber,
		medicine.Price, medicine.Unit, medicine.PackingSize, medicine.Stock, medicine.ExpiryDate,
		medicine.CreatedAt, medicine.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: medicine code '%s' already exists", ErrDuplicateKey, medicine.ID)
		}
		return fmt.Errorf("%w: creating medicine: %v", ErrDatabaseError, err)
	}
	return nil
}

func (r *medicineRepository) GetMedicineByID(id string) (*models.Medicine, error) {
	medicine := &models.Medicine{}
	query := `SELECT id, name, category, manufacturer, batch_number, price, unit, packing_size, stock, expiry_date, created_at, updated_at
	          FROM medicines WHERE id = ?`
	err := r.db.Get(medicine, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting medicine by ID %s: %v", ErrDatabaseError, id, err)
	}
	return medicine, nil
}

func (r *medicineRepository) GetMedicines(filters models.MedicineFilters) ([]models.Medicine, int, error) {
	medicines := []models.Medicine{}
	totalCount := 0

	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT id, name, category, manufacturer, batch_number, price, unit, packing_size,
	    stock, expiry_date, created_at, updated_at, COUNT(*) OVER() AS total_count
	  FROM medicines`)

	var conditions []string
	var args []interface{}

	if filters.Category != nil && *filters.Category != "" {
		conditions = append(conditions, "category = ?")
		args = append(args, *filters.Category)
	}
	if filters.Search != nil && *filters.Search != "" {
		like := "%" + *filters.Search + "%"
		conditions = append(conditions, "(id LIKE ? OR name LIKE ? OR manufacturer LIKE ?)")
		args = append(args, like, like, like)
	}

	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}
	queryBuilder.WriteString(" ORDER BY id ASC")

	if filters.PageSize > 0 {
		queryBuilder.WriteString(" LIMIT ? OFFSET ?")
		page := filters.Page
		if page < 1 {
			page = 1
		}
		args = append(args, filters.PageSize, (page-1)*filters.PageSize)
	}

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: querying medicines: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var m models.Medicine
		if err := rows.Scan(
			&m.ID, &m.Name, &m.Category, &m.Manufacturer, &m.BatchNumber, &m.Price, &m.Unit, &m.PackingSize,
			&m.Stock, &m.ExpiryDate, &m.CreatedAt, &m.UpdatedAt, &totalCount,
		); err != nil {
			return nil, 0, fmt.Errorf("%w: scanning medicine: %v", ErrDatabaseError, err)
		}
		medicines = append(medicines, m)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating medicine rows: %v", ErrDatabaseError, err)
	}
	return medicines, totalCount, nil
}

func (r *medicineRepository) SearchMedicines(term string, limit int) ([]models.Medicine, error) {
	medicines := []models.Medicine{}
	like := "%" + term + "%"
	query := `SELECT id, name, category, manufacturer, batch_number, price, unit, packing_size, stock, expiry_date, created_at, updated_at
	          FROM medicines
	          WHERE id LIKE ? OR name LIKE ? OR manufacturer LIKE ? OR category LIKE ? OR batch_number LIKE ?
	          ORDER BY name ASC
	          LIMIT ?`
	err := r.db.Select(&medicines, query, like, like, like, like, like, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: searching medicines for %q: %v", ErrDatabaseError, term, err)
	}
	return medicines, nil
}

func (r *medicineRepository) UpdateMedicine(executor SQLExecutor, medicine *models.Medicine) error {
	query := `UPDATE medicines SET
	            name = ?, category = ?, manufacturer = ?, batch_number = ?, price = ?,
	            unit = ?, packing_size = ?, expiry_date = ?, updated_at = ?
	          WHERE id = ?`
	result, err := executor.Exec(query,
		medicine.Name, medicine.Category, medicine.Manufacturer, medicine.BatchNumber, medicine.Price,
		medicine.Unit, medicine.PackingSize, medicine.ExpiryDate, time.Now(), medicine.ID,
	)
	if err != nil {
		return fmt.Errorf("%w: updating medicine ID %s: %v", ErrDatabaseError, medicine.ID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *medicineRepository) DeleteMedicine(executor SQLExecutor, id string) error {
	result, err := executor.Exec(`DELETE FROM medicines WHERE id = ?`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: medicine ID %s is referenced by bills, purchases or prescriptions", ErrDatabaseError, id)
		}
		return fmt.Errorf("%w: deleting medicine ID %s: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// NextMedicineID generates the next sequential medicine code in the
// M0001 style used on shelf labels.
func (r *medicineRepository) NextMedicineID() (string, error) {
	var lastID sql.NullString
	query := `SELECT id FROM medicines WHERE id LIKE 'M%' ORDER BY LENGTH(id) DESC, id DESC LIMIT 1`
	err := r.db.Get(&lastID, query)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("%w: getting last medicine code: %v", ErrDatabaseError, err)
	}

	next := 1
	if lastID.Valid && len(lastID.String) > 1 {
		var n int
		if _, scanErr := fmt.Sscanf(lastID.String[1:], "%d", &n); scanErr == nil {
			next = n + 1
		}
	}
	return fmt.Sprintf("M%04d", next), nil
}

func (r *medicineRepository) GetStock(executor SQLExecutor, id string) (int, error) {
	var stock int
	err := executor.Get(&stock, `SELECT stock FROM medicines WHERE id = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, fmt.Errorf("%w: getting stock for medicine ID %s: %v", ErrDatabaseError, id, err)
	}
	return stock, nil
}

func (r *medicineRepository) SetStock(executor SQLExecutor, id string, stock int) error {
	result, err := executor.Exec(`UPDATE medicines SET stock = ?, updated_at = ? WHERE id = ?`, stock, time.Now(), id)
	if err != nil {
		return fmt.Errorf("%w: setting stock for medicine ID %s: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateStock applies a signed delta to a medicine's on-hand stock.
// Sales pass a negative change, purchases a positive one.
func (r *medicineRepository) UpdateStock(executor SQLExecutor, id string, quantityChange int) error {
	result, err := executor.Exec(`UPDATE medicines SET stock = stock + ?, updated_at = ? WHERE id = ?`,
		quantityChange, time.Now(), id)
	if err != nil {
		return fmt.Errorf("%w: updating stock for medicine ID %s: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *medicineRepository) GetLowStock(threshold int) ([]models.Medicine, error) {
	medicines := []models.Medicine{}
	query := `SELECT id, name, category, manufacturer, batch_number, price, unit, packing_size, stock, expiry_date, created_at, updated_at
	          FROM medicines WHERE stock <= ? ORDER BY stock ASC, id ASC`
	if err := r.db.Select(&medicines, query, threshold); err != nil {
		return nil, fmt.Errorf("%w: querying low stock medicines: %v", ErrDatabaseError, err)
	}
	return medicines, nil
}

func (r *medicineRepository) StockSummary(lowStockThreshold int) (*models.StockReport, error) {
	report := &models.StockReport{}
	query := `SELECT
	            COUNT(*) AS medicine_count,
	            COALESCE(SUM(stock), 0) AS total_stock_units,
	            COALESCE(SUM(CASE WHEN stock > 0 AND stock <= ? THEN 1 ELSE 0 END), 0) AS low_stock_count,
	            COALESCE(SUM(CASE WHEN stock <= 0 THEN 1 ELSE 0 END), 0) AS out_of_stock_count
	          FROM medicines`
	err := r.db.QueryRow(query, lowStockThreshold).Scan(
		&report.MedicineCount, &report.TotalStockUnits, &report.LowStockCount, &report.OutOfStockCount,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: building stock summary: %v", ErrDatabaseError, err)
	}
	return report, nil
}
