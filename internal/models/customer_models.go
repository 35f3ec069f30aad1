package models

import "time"

// Customer represents a patient or walk-in buyer.
type Customer struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name" binding:"required"`
	Gender    *string   `json:"gender,omitempty" db:"gender"`
	DOB       *string   `json:"dob,omitempty" db:"dob"` // YYYY-MM-DD
	Address   *string   `json:"address,omitempty" db:"address"`
	Email     *string   `json:"email,omitempty" db:"email"`
	Phone     *string   `json:"phone,omitempty" db:"phone"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
