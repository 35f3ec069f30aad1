package models

import "time"

// Medicine represents a product on the pharmacy shelf. The ID is a
// human-readable code such as "M0001" rather than an autoincrement,
// matching the labels printed on stock bins.
type Medicine struct {
	ID           string    `json:"id" db:"id"`
	Name         string    `json:"name" db:"name" binding:"required"`
	Category     string    `json:"category" db:"category" binding:"required"`
	Manufacturer *string   `json:"manufacturer,omitempty" db:"manufacturer"`
	BatchNumber  *string   `json:"batch_number,omitempty" db:"batch_number"`
	Price        float64   `json:"price" db:"price" binding:"required,gt=0"`
	Unit         *string   `json:"unit,omitempty" db:"unit"`
	PackingSize  *string   `json:"packing_size,omitempty" db:"packing_size"`
	Stock        int       `json:"stock" db:"stock"`
	ExpiryDate   string    `json:"expiry_date" db:"expiry_date" binding:"required"` // YYYY-MM-DD
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// MedicineFilters defines the available filters for querying medicines.
type MedicineFilters struct {
	Category *string `form:"category"`
	Search   *string `form:"q"`
	Page     int     `form:"page"`
	PageSize int     `form:"page_size"`
}

// Category is a reference table entry for grouping medicines.
type Category struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name" binding:"required"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Unit is a reference table entry for dosage units (tablet, bottle, strip...).
type Unit struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name" binding:"required"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
