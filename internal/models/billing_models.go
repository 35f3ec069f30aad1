package models

import "time"

// Bill payment status values. A bill starts unpaid and flips to paid
// exactly once, when cumulative payments reach its total.
const (
	PaymentStatusUnpaid = "unpaid"
	PaymentStatusPaid   = "paid"
)

// Accepted payment methods.
const (
	PaymentMethodCash      = "cash"
	PaymentMethodCard      = "card"
	PaymentMethodUPI       = "upi"
	PaymentMethodInsurance = "insurance"
)

// Bill is a sales transaction header. CustomerID is nullable for
// walk-in sales with no customer record.
type Bill struct {
	ID            int64      `json:"id" db:"id"`
	CustomerID    *int64     `json:"customer_id,omitempty" db:"customer_id"`
	BillDate      time.Time  `json:"bill_date" db:"bill_date"`
	TotalAmount   float64    `json:"total_amount" db:"total_amount"`
	PaymentStatus string     `json:"payment_status" db:"payment_status"`
	Items         []BillItem `json:"items,omitempty"`
	Customer      *Customer  `json:"customer,omitempty"`
}

// BillItem is one medicine line on a bill. Immutable once written.
type BillItem struct {
	ID           int64   `json:"id" db:"id"`
	BillID       int64   `json:"bill_id" db:"bill_id"`
	MedicineID   string  `json:"medicine_id" db:"medicine_id"`
	Quantity     int     `json:"quantity" db:"quantity"`
	Price        float64 `json:"price" db:"price"`
	MedicineName string  `json:"medicine_name,omitempty" db:"medicine_name"`
}

// Payment is a single settlement against a bill. Several payments may
// accumulate against one bill.
type Payment struct {
	ID          int64     `json:"id" db:"id"`
	BillID      int64     `json:"bill_id" db:"bill_id"`
	Amount      float64   `json:"amount" db:"amount"`
	Method      string    `json:"method" db:"method"`
	PaymentDate time.Time `json:"payment_date" db:"payment_date"`
	Reference   *string   `json:"reference,omitempty" db:"reference"`
}

// BillFilters defines the available filters for querying bills.
type BillFilters struct {
	CustomerID    *int64  `form:"customer_id"`
	PaymentStatus *string `form:"payment_status"`
	Date          *string `form:"date"` // Expected format YYYY-MM-DD
	Page          int     `form:"page"`
	PageSize      int     `form:"page_size"`
}
