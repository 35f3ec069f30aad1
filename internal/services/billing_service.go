package services

import (
	"errors"
	"fmt"
	"time"

	"pharmacare_backend/internal/models"
	"pharmacare_backend/internal/repositories"

	"github.com/jmoiron/sqlx"
)

var (
	ErrBillNotFound         = errors.New("bill not found")
	ErrInsufficientStock    = errors.New("insufficient stock for medicine")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
)

// --- Data Transfer Objects (DTOs) ---

// BillItemRequest is one medicine line submitted by the billing screen.
// The unit price is trusted as supplied and is not re-read from the
// medicine record, so a cashier override on a single sale is possible.
type BillItemRequest struct {
	MedicineID string  `json:"medicine_id" binding:"required"`
	Quantity   int     `json:"quantity" binding:"required,gt=0"`
	UnitPrice  float64 `json:"unit_price" binding:"gte=0"`
}

// CreateBillRequest is used for creating a new bill with its items.
type CreateBillRequest struct {
	CustomerID *int64            `json:"customer_id"`
	Items      []BillItemRequest `json:"items" binding:"required,dive"`
}

// RecordPaymentRequest is used for settling part or all of a bill.
type RecordPaymentRequest struct {
	BillID    int64   `json:"bill_id" binding:"required"`
	Amount    float64 `json:"amount" binding:"required,gt=0"`
	Method    string  `json:"method" binding:"required"`
	Reference string  `json:"reference"`
}

// --- BillingService Interface ---

type BillingService interface {
	CreateBill(req CreateBillRequest) (*models.Bill, error)
	RecordPayment(req RecordPaymentRequest) (*models.Payment, error)
	GetBillByID(billID int64) (*models.Bill, error)
	GetBills(filters models.BillFilters) ([]models.Bill, int, error)
	GetCustomerBills(customerID int64) ([]models.Bill, error)
	GetLastBill(customerID int64) (*models.Bill, error)
	GetPayments(billID *int64, page, pageSize int) ([]models.Payment, int, error)
}

type billingService struct {
	billingRepo  repositories.BillingRepository
	medicineRepo repositories.MedicineRepository
	db           *sqlx.DB // For managing transactions
}

// NewBillingService creates a new instance of BillingService.
func NewBillingService(br repositories.BillingRepository, mr repositories.MedicineRepository, db *sqlx.DB) BillingService {
	return &billingService{
		billingRepo:  br,
		medicineRepo: mr,
		db:           db,
	}
}

// CreateBill writes the bill header, its items and the matching stock
// decrements as one transaction. The total is the exact sum of
// quantity times unit price over the submitted items.
func (s *billingService) CreateBill(req CreateBillRequest) (*models.Bill, error) {
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: bill must contain at least one item", ErrValidation)
	}

	var total float64
	for _, itemReq := range req.Items {
		if itemReq.Quantity <= 0 {
			return nil, fmt.Errorf("%w: quantity for medicine %s must be positive", ErrValidation, itemReq.MedicineID)
		}
		if itemReq.UnitPrice < 0 {
			return nil, fmt.Errorf("%w: unit price for medicine %s cannot be negative", ErrValidation, itemReq.MedicineID)
		}
		total += float64(itemReq.Quantity) * itemReq.UnitPrice
	}

	tx, err := s.db.Beginx()
	if err != nil {
		return nil, fmt.Errorf("failed to start database transaction: %w", err)
	}
	defer tx.Rollback()

	bill := models.Bill{
		CustomerID:    req.CustomerID,
		BillDate:      time.Now(),
		TotalAmount:   total,
		PaymentStatus: models.PaymentStatusUnpaid,
	}
	billID, repoErr := s.billingRepo.CreateBill(tx, &bill)
	if repoErr != nil {
		return nil, fmt.Errorf("failed to create bill record: %w", repoErr)
	}

	for _, itemReq := range req.Items {
		item := models.BillItem{
			BillID:     billID,
			MedicineID: itemReq.MedicineID,
			Quantity:   itemReq.Quantity,
			Price:      itemReq.UnitPrice,
		}
		if _, repoErr = s.billingRepo.CreateBillItem(tx, &item); repoErr != nil {
			return nil, fmt.Errorf("failed to create bill item (medicine_id: %s): %w", itemReq.MedicineID, repoErr)
		}

		// Stock is read through the transaction so a medicine repeated
		// across items accumulates against the same call.
		stock, repoErr := s.medicineRepo.GetStock(tx, itemReq.MedicineID)
		if repoErr != nil {
			if errors.Is(repoErr, repositories.ErrNotFound) {
				return nil, fmt.Errorf("%w: ID %s", ErrMedicineNotFound, itemReq.MedicineID)
			}
			return nil, fmt.Errorf("failed to fetch stock for medicine %s: %w", itemReq.MedicineID, repoErr)
		}
		if stock < itemReq.Quantity {
			return nil, fmt.Errorf("%w %s. Requested: %d, Available: %d",
				ErrInsufficientStock, itemReq.MedicineID, itemReq.Quantity, stock)
		}
		if repoErr = s.medicineRepo.UpdateStock(tx, itemReq.MedicineID, -itemReq.Quantity); repoErr != nil {
			return nil, fmt.Errorf("failed to update stock for medicine %s: %w", itemReq.MedicineID, repoErr)
		}
		bill.Items = append(bill.Items, item)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit bill transaction: %w", err)
	}
	return &bill, nil
}

// RecordPayment appends a payment row and recomputes the bill's paid
// total as a fresh aggregate. When cumulative payments reach the bill
// total the status flips to paid; it never flips back. Recording is
// deliberately not idempotent: the same request twice yields two rows.
func (s *billingService) RecordPayment(req RecordPaymentRequest) (*models.Payment, error) {
	if req.Amount <= 0 {
		return nil, fmt.Errorf("%w: payment amount must be positive", ErrValidation)
	}
	if !isValidPaymentMethod(req.Method) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPaymentMethod, req.Method)
	}

	tx, err := s.db.Beginx()
	if err != nil {
		return nil, fmt.Errorf("failed to start database transaction: %w", err)
	}
	defer tx.Rollback()

	total, repoErr := s.billingRepo.GetBillTotal(tx, req.BillID)
	if repoErr != nil {
		if errors.Is(repoErr, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: ID %d", ErrBillNotFound, req.BillID)
		}
		return nil, fmt.Errorf("failed to fetch bill %d: %w", req.BillID, repoErr)
	}

	var reference *string
	if req.Reference != "" {
		reference = &req.Reference
	}
	payment := models.Payment{
		BillID:      req.BillID,
		Amount:      req.Amount,
		Method:      req.Method,
		PaymentDate: time.Now(),
		Reference:   reference,
	}
	if _, repoErr = s.billingRepo.CreatePayment(tx, &payment); repoErr != nil {
		return nil, fmt.Errorf("failed to create payment record: %w", repoErr)
	}

	paid, repoErr := s.billingRepo.SumPayments(tx, req.BillID)
	if repoErr != nil {
		return nil, fmt.Errorf("failed to sum payments for bill %d: %w", req.BillID, repoErr)
	}
	if paid >= total {
		if repoErr = s.billingRepo.UpdatePaymentStatus(tx, req.BillID, models.PaymentStatusPaid); repoErr != nil {
			return nil, fmt.Errorf("failed to update payment status for bill %d: %w", req.BillID, repoErr)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit payment transaction: %w", err)
	}
	return &payment, nil
}

func (s *billingService) GetBillByID(billID int64) (*models.Bill, error) {
	bill, err := s.billingRepo.GetBillByID(billID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrBillNotFound
		}
		return nil, fmt.Errorf("failed to get bill by ID: %w", err)
	}

	items, err := s.billingRepo.GetBillItemsByBillID(billID)
	if err != nil {
		return nil, fmt.Errorf("failed to get bill items for bill %d: %w", billID, err)
	}
	bill.Items = items
	return bill, nil
}

func (s *billingService) GetBills(filters models.BillFilters) ([]models.Bill, int, error) {
	bills, totalCount, err := s.billingRepo.GetBills(filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get bills: %w", err)
	}
	return bills, totalCount, nil
}

func (s *billingService) GetCustomerBills(customerID int64) ([]models.Bill, error) {
	bills, err := s.billingRepo.GetCustomerBills(customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get bills for customer %d: %w", customerID, err)
	}
	return bills, nil
}

func (s *billingService) GetLastBill(customerID int64) (*models.Bill, error) {
	bill, err := s.billingRepo.GetLastBill(customerID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrBillNotFound
		}
		return nil, fmt.Errorf("failed to get last bill for customer %d: %w", customerID, err)
	}

	items, err := s.billingRepo.GetBillItemsByBillID(bill.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get bill items for bill %d: %w", bill.ID, err)
	}
	bill.Items = items
	return bill, nil
}

func (s *billingService) GetPayments(billID *int64, page, pageSize int) ([]models.Payment, int, error) {
	payments, totalCount, err := s.billingRepo.GetPayments(billID, page, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get payments: %w", err)
	}
	return payments, totalCount, nil
}

func isValidPaymentMethod(method string) bool {
	switch method {
	case models.PaymentMethodCash, models.PaymentMethodCard, models.PaymentMethodUPI, models.PaymentMethodInsurance:
		return true
	default:
		return false
	}
}
