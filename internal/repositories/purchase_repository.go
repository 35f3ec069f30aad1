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

// PurchaseRepository defines the interface for purchase-related database operations.
type PurchaseRepository interface {
	CreatePurchase(executor SQLExecutor, purchase *models.Purchase) (int64, error)
	GetPurchaseByID(purchaseID int64) (*models.Purchase, error)
	GetPurchases(filters models.PurchaseFilters) ([]models.Purchase, int, error)

	CreatePurchaseItem(executor SQLExecutor, item *models.PurchaseItem) (int64, error)
	GetPurchaseItemsByPurchaseID(purchaseID int64) ([]models.PurchaseItem, error)
}

type purchaseRepository struct {
	db *sqlx.DB
}

// NewPurchaseRepository creates a new instance of PurchaseRepository.
func NewPurchaseRepository(db *sqlx.DB) PurchaseRepository {
	return &purchaseRepository{db: db}
}

func (r *purchaseRepository) CreatePurchase(executor SQLExecutor, purchase *models.Purchase) (int64, error) {
	query := `INSERT INTO purchases (supplier_id, purchase_date, total_amount, notes) VALUES (?, ?, ?, ?)`
	if purchase.PurchaseDate.IsZero() {
		purchase.PurchaseDate = time.Now()
	}
	result, err := executor.Exec(query, purchase.SupplierID, purchase.PurchaseDate, purchase.TotalAmount, purchase.Notes)
	if err != nil {
		if isForeignKeyViolation(err) {
			return 0, fmt.Errorf("%w: creating purchase: unknown supplier %d: %v", ErrDatabaseError, purchase.SupplierID, err)
		}
		return 0, fmt.Errorf("%w: creating purchase: %v", ErrDatabaseError, err)
	}
	purchase.ID, err = result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%w: reading new purchase ID: %v", ErrDatabaseError, err)
	}
	return purchase.ID, nil
}

func (r *purchaseRepository) GetPurchaseByID(purchaseID int64) (*models.Purchase, error) {
	purchase := &models.Purchase{}
	query := `SELECT id, supplier_id, purchase_date, total_amount, notes FROM purchases WHERE id = ?`
	err := r.db.Get(purchase, query, purchaseID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting purchase by ID %d: %v", ErrDatabaseError, purchaseID, err)
	}
	return purchase, nil
}

func (r *purchaseRepository) GetPurchases(filters models.PurchaseFilters) ([]models.Purchase, int, error) {
	purchases := []models.Purchase{}
	totalCount := 0

	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT id, supplier_id, purchase_date, total_amount, notes,
	    COUNT(*) OVER() AS total_count
	  FROM purchases`)

	var args []interface{}
	if filters.SupplierID != nil {
		queryBuilder.WriteString(" WHERE supplier_id = ?")
		args = append(args, *filters.SupplierID)
	}
	queryBuilder.WriteString(" ORDER BY purchase_date DESC, id DESC")
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
		return nil, 0, fmt.Errorf("%w: querying purchases: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var p models.Purchase
		if err := rows.Scan(&p.ID, &p.SupplierID, &p.PurchaseDate, &p.TotalAmount, &p.Notes, &totalCount); err != nil {
			return nil, 0, fmt.Errorf("%w: scanning purchase: %v", ErrDatabaseError, err)
		}
		purchases = append(purchases, p)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating purchase rows: %v", ErrDatabaseError, err)
	}
	return purchases, totalCount, nil
}

func (r *purchaseRepository) CreatePurchaseItem(executor SQLExecutor, item *models.PurchaseItem) (int64, error) {
	query := `INSERT INTO purchase_items (purchase_id, medicine_id, quantity, price) VALUES (?, ?, ?, ?)`
	result, err := executor.Exec(query, item.PurchaseID, item.MedicineID, item.Quantity, item.Price)
	if err != nil {
		if isForeignKeyViolation(err) {
			return 0, fmt.Errorf("%w: creating purchase item: unknown medicine %s: %v", ErrDatabaseError, item.MedicineID, err)
		}
		return 0, fmt.Errorf("%w: creating purchase item: %v", ErrDatabaseError, err)
	}
	item.ID, err = result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%w: reading new purchase item ID: %v", ErrDatabaseError, err)
	}
	return item.ID, nil
}

func (r *purchaseRepository) GetPurchaseItemsByPurchaseID(purchaseID int64) ([]models.PurchaseItem, error) {
	items := []models.PurchaseItem{}
	query := `SELECT pi.id, pi.purchase_id, pi.medicine_id, pi.quantity, pi.price, m.name AS medicine_name
	          FROM purchase_items pi
	          JOIN medicines m ON m.id = pi.medicine_id
	          WHERE pi.purchase_id = ?
	          ORDER BY pi.id`
	if err := r.db.Select(&items, query, purchaseID); err != nil {
		return nil, fmt.Errorf("%w: querying purchase items for purchase ID %d: %v", ErrDatabaseError, purchaseID, err)
	}
	return items, nil
}
