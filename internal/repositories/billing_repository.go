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

// BillingRepository defines the interface for bill, bill item and
// payment database operations.
type BillingRepository interface {
	// Bill methods
	CreateBill(executor SQLExecutor, bill *models.Bill) (int64, error)
	GetBillByID(billID int64) (*models.Bill, error)
	GetBills(filters models.BillFilters) ([]models.Bill, int, error)
	GetCustomerBills(customerID int64) ([]models.Bill, error)
	GetLastBill(customerID int64) (*models.Bill, error)
	UpdatePaymentStatus(executor SQLExecutor, billID int64, status string) error

	// BillItem methods
	CreateBillItem(executor SQLExecutor, item *models.BillItem) (int64, error)
	GetBillItemsByBillID(billID int64) ([]models.BillItem, error)

	// Payment methods
	CreatePayment(executor SQLExecutor, payment *models.Payment) (int64, error)
	SumPayments(executor SQLExecutor, billID int64) (float64, error)
	GetBillTotal(executor SQLExecutor, billID int64) (float64, error)
	GetPayments(billID *int64, page, pageSize int) ([]models.Payment, int, error)

	SalesSummary(from, to string) (*models.SalesReport, error)
}

type billingRepository struct {
	db *sqlx.DB
}

// NewBillingRepository creates a new instance of BillingRepository.
func NewBillingRepository(db *sqlx.DB) BillingRepository {
	return &billingRepository{db: db}
}

// --- Bill Methods ---

func (r *billingRepository) CreateBill(executor SQLExecutor, bill *models.Bill) (int64, error) {
	query := `INSERT INTO bills (customer_id, bill_date, total_amount, payment_status)
	          VALUES (?, ?, ?, ?)`
	if bill.BillDate.IsZero() {
		bill.BillDate = time.Now()
	}
	if bill.PaymentStatus == "" {
		bill.PaymentStatus = models.PaymentStatusUnpaid
	}

	result, err := executor.Exec(query, bill.CustomerID, bill.BillDate, bill.TotalAmount, bill.PaymentStatus)
	if err != nil {
		if isForeignKeyViolation(err) {
			return 0, fmt.Errorf("%w: creating bill: unknown customer reference: %v", ErrDatabaseError, err)
		}
		return 0, fmt.Errorf("%w: creating bill: %v", ErrDatabaseError, err)
	}
	bill.ID, err = result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%w: reading new bill ID: %v", ErrDatabaseError, err)
	}
	return bill.ID, nil
}

func (r *billingRepository) GetBillByID(billID int64) (*models.Bill, error) {
	bill := &models.Bill{}
	query := `SELECT id, customer_id, bill_date, total_amount, payment_status FROM bills WHERE id = ?`
	err := r.db.Get(bill, query, billID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting bill by ID %d: %v", ErrDatabaseError, billID, err)
	}
	return bill, nil
}

func (r *billingRepository) GetBills(filters models.BillFilters) ([]models.Bill, int, error) {
	bills := []models.Bill{}
	totalCount := 0

	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT id, customer_id, bill_date, total_amount, payment_status,
	    COUNT(*) OVER() AS total_count
	  FROM bills`)

	var conditions []string
	var args []interface{}

	if filters.CustomerID != nil {
		conditions = append(conditions, "customer_id = ?")
		args = append(args, *filters.CustomerID)
	}
	if filters.PaymentStatus != nil && *filters.PaymentStatus != "" {
		conditions = append(conditions, "payment_status = ?")
		args = append(args, *filters.PaymentStatus)
	}
	if filters.Date != nil && *filters.Date != "" {
		conditions = append(conditions, "DATE(bill_date) = ?")
		args = append(args, *filters.Date)
	}

	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}
	queryBuilder.WriteString(" ORDER BY bill_date DESC, id DESC")

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
		return nil, 0, fmt.Errorf("%w: querying bills: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var b models.Bill
		if err := rows.Scan(&b.ID, &b.CustomerID, &b.BillDate, &b.TotalAmount, &b.PaymentStatus, &totalCount); err != nil {
			return nil, 0, fmt.Errorf("%w: scanning bill: %v", ErrDatabaseError, err)
		}
		bills = append(bills, b)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating bill rows: %v", ErrDatabaseError, err)
	}
	return bills, totalCount, nil
}

func (r *billingRepository) GetCustomerBills(customerID int64) ([]models.Bill, error) {
	bills := []models.Bill{}
	query := `SELECT id, customer_id, bill_date, total_amount, payment_status
	          FROM bills WHERE customer_id = ?
	          ORDER BY bill_date DESC, id DESC`
	if err := r.db.Select(&bills, query, customerID); err != nil {
		return nil, fmt.Errorf("%w: querying bills for customer %d: %v", ErrDatabaseError, customerID, err)
	}
	return bills, nil
}

func (r *billingRepository) GetLastBill(customerID int64) (*models.Bill, error) {
	bill := &models.Bill{}
	query := `SELECT id, customer_id, bill_date, total_amount, payment_status
	          FROM bills WHERE customer_id = ?
	          ORDER BY bill_date DESC, id DESC
	          LIMIT 1`
	err := r.db.Get(bill, query, customerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting last bill for customer %d: %v", ErrDatabaseError, customerID, err)
	}
	return bill, nil
}

func (r *billingRepository) UpdatePaymentStatus(executor SQLExecutor, billID int64, status string) error {
	result, err := executor.Exec(`UPDATE bills SET payment_status = ? WHERE id = ?`, status, billID)
	if err != nil {
		return fmt.Errorf("%w: updating payment status for bill ID %d: %v", ErrDatabaseError, billID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// --- BillItem Methods ---

func (r *billingRepository) CreateBillItem(executor SQLExecutor, item *models.BillItem) (int64, error) {
	query := `INSERT INTO bill_items (bill_id, medicine_id, quantity, price) VALUES (?, ?, ?, ?)`
	result, err := executor.Exec(query, item.BillID, item.MedicineID, item.Quantity, item.Price)
	if err != nil {
		if isForeignKeyViolation(err) {
			return 0, fmt.Errorf("%w: creating bill item: unknown medicine %s: %v", ErrDatabaseError, item.MedicineID, err)
		}
		return 0, fmt.Errorf("%w: creating bill item: %v", ErrDatabaseError, err)
	}
	item.ID, err = result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%w: reading new bill item ID: %v", ErrDatabaseError, err)
	}
	return item.ID, nil
}

func (r *billingRepository) GetBillItemsByBillID(billID int64) ([]models.BillItem, error) {
	items := []models.BillItem{}
	query := `SELECT bi.id, bi.bill_id, bi.medicine_id, bi.quantity, bi.price, m.name AS medicine_name
	          FROM bill_items bi
	          JOIN medicines m ON m.id = bi.medicine_id
	          WHERE bi.bill_id = ?
	          ORDER BY bi.id`
	if err := r.db.Select(&items, query, billID); err != nil {
		return nil, fmt.Errorf("%w: querying bill items for bill ID %d: %v", ErrDatabaseError, billID, err)
	}
	return items, nil
}

// --- Payment Methods ---

func (r *billingRepository) CreatePayment(executor SQLExecutor, payment *models.Payment) (int64, error) {
	query := `INSERT INTO payments (bill_id, amount, method, payment_date, reference) VALUES (?, ?, ?, ?, ?)`
	if payment.PaymentDate.IsZero() {
		payment.PaymentDate = time.Now()
	}
	result, err := executor.Exec(query, payment.BillID, payment.Amount, payment.Method, payment.PaymentDate, payment.Reference)
	if err != nil {
		if isForeignKeyViolation(err) {
			return 0, fmt.Errorf("%w: creating payment: unknown bill %d: %v", ErrDatabaseError, payment.BillID, err)
		}
		return 0, fmt.Errorf("%w: creating payment: %v", ErrDatabaseError, err)
	}
	payment.ID, err = result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%w: reading new payment ID: %v", ErrDatabaseError, err)
	}
	return payment.ID, nil
}

// SumPayments returns the cumulative amount paid against a bill as a
// fresh aggregate, never an incremental counter.
func (r *billingRepository) SumPayments(executor SQLExecutor, billID int64) (float64, error) {
	var paid float64
	err := executor.Get(&paid, `SELECT COALESCE(SUM(amount), 0) FROM payments WHERE bill_id = ?`, billID)
	if err != nil {
		return 0, fmt.Errorf("%w: summing payments for bill ID %d: %v", ErrDatabaseError, billID, err)
	}
	return paid, nil
}

func (r *billingRepository) GetBillTotal(executor SQLExecutor, billID int64) (float64, error) {
	var total float64
	err := executor.Get(&total, `SELECT total_amount FROM bills WHERE id = ?`, billID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, fmt.Errorf("%w: getting total for bill ID %d: %v", ErrDatabaseError, billID, err)
	}
	return total, nil
}

func (r *billingRepository) GetPayments(billID *int64, page, pageSize int) ([]models.Payment, int, error) {
	payments := []models.Payment{}
	totalCount := 0

	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT id, bill_id, amount, method, payment_date, reference,
	    COUNT(*) OVER() AS total_count
	  FROM payments`)

	var args []interface{}
	if billID != nil {
		queryBuilder.WriteString(" WHERE bill_id = ?")
		args = append(args, *billID)
	}
	queryBuilder.WriteString(" ORDER BY payment_date DESC, id DESC")
	if pageSize > 0 {
		queryBuilder.WriteString(" LIMIT ? OFFSET ?")
		if page < 1 {
			page = 1
		}
		args = append(args, pageSize, (page-1)*pageSize)
	}

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: querying payments: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var p models.Payment
		if err := rows.Scan(&p.ID, &p.BillID, &p.Amount, &p.Method, &p.PaymentDate, &p.Reference, &totalCount); err != nil {
			return nil, 0, fmt.Errorf("%w: scanning payment: %v", ErrDatabaseError, err)
		}
		payments = append(payments, p)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating payment rows: %v", ErrDatabaseError, err)
	}
	return payments, totalCount, nil
}

func (r *billingRepository) SalesSummary(from, to string) (*models.SalesReport, error) {
	report := &models.SalesReport{From: from, To: to}
	query := `SELECT
	            COUNT(*) AS bill_count,
	            COALESCE(SUM(total_amount), 0) AS total_revenue,
	            COALESCE(SUM(CASE WHEN payment_status = 'unpaid' THEN 1 ELSE 0 END), 0) AS unpaid_bill_count
	          FROM bills
	          WHERE DATE(bill_date) BETWEEN ? AND ?`
	err := r.db.QueryRow(query, from, to).Scan(&report.BillCount, &report.TotalRevenue, &report.UnpaidBillCount)
	if err != nil {
		return nil, fmt.Errorf("%w: building sales summary: %v", ErrDatabaseError, err)
	}

	collectedQuery := `SELECT COALESCE(SUM(p.amount), 0)
	                   FROM payments p
	                   JOIN bills b ON b.id = p.bill_id
	                   WHERE DATE(b.bill_date) BETWEEN ? AND ?`
	if err := r.db.QueryRow(collectedQuery, from, to).Scan(&report.TotalCollected); err != nil {
		return nil, fmt.Errorf("%w: summing collected payments: %v", ErrDatabaseError, err)
	}

	report.OutstandingDue = report.TotalRevenue - report.TotalCollected
	if report.OutstandingDue < 0 {
		report.OutstandingDue = 0
	}
	return report, nil
}
