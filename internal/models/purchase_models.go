package models

import "time"

// Purchase is a stock-in transaction header from a supplier.
type Purchase struct {
	ID           int64          `json:"id" db:"id"`
	SupplierID   int64          `json:"supplier_id" db:"supplier_id"`
	PurchaseDate time.Time      `json:"purchase_date" db:"purchase_date"`
	TotalAmount  float64        `json:"total_amount" db:"total_amount"`
	Notes        *string        `json:"notes,omitempty" db:"notes"`
	Items        []PurchaseItem `json:"items,omitempty"`
	Supplier     *Supplier      `json:"supplier,omitempty"`
}

// PurchaseItem is one medicine line on a purchase.
type PurchaseItem struct {
	ID           int64   `json:"id" db:"id"`
	PurchaseID   int64   `json:"purchase_id" db:"purchase_id"`
	MedicineID   string  `json:"medicine_id" db:"medicine_id"`
	Quantity     int     `json:"quantity" db:"quantity"`
	Price        float64 `json:"price" db:"price"`
	MedicineName string  `json:"medicine_name,omitempty" db:"medicine_name"`
}

// PurchaseFilters defines the available filters for querying purchases.
type PurchaseFilters struct {
	SupplierID *int64 `form:"supplier_id"`
	Page       int    `form:"page"`
	PageSize   int    `form:"page_size"`
}
