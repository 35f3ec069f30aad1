package models

import "time"

// Supplier represents a wholesale source of stock.
type Supplier struct {
	ID            int64     `json:"id" db:"id"`
	Name          string    `json:"name" db:"name" binding:"required"`
	ContactPerson *string   `json:"contact_person,omitempty" db:"contact_person"`
	Address       *string   `json:"address,omitempty" db:"address"`
	Email         *string   `json:"email,omitempty" db:"email"`
	Phone         *string   `json:"phone,omitempty" db:"phone"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}
