package models

import "time"

// Doctor represents a prescribing physician.
type Doctor struct {
	ID             int64   `json:"id" db:"id"`
	Name           string  `json:"name" db:"name" binding:"required"`
	Specialization *string `json:"specialization,omitempty" db:"specialization"`
	Phone          *string `json:"phone,omitempty" db:"phone"`
	Email          *string `json:"email,omitempty" db:"email"`
}

// Prescription links a customer to a set of prescribed medicines.
type Prescription struct {
	ID         int64              `json:"id" db:"id"`
	CustomerID int64              `json:"customer_id" db:"customer_id"`
	DoctorID   *int64             `json:"doctor_id,omitempty" db:"doctor_id"`
	Date       time.Time          `json:"date" db:"date"`
	Notes      *string            `json:"notes,omitempty" db:"notes"`
	Items      []PrescriptionItem `json:"items,omitempty"`
}

// PrescriptionItem is one prescribed medicine with dosage instructions.
type PrescriptionItem struct {
	ID             int64   `json:"id" db:"id"`
	PrescriptionID int64   `json:"prescription_id" db:"prescription_id"`
	MedicineID     string  `json:"medicine_id" db:"medicine_id"`
	Dosage         *string `json:"dosage,omitempty" db:"dosage"`
	Duration       *string `json:"duration,omitempty" db:"duration"`
	MedicineName   string  `json:"medicine_name,omitempty" db:"medicine_name"`
}
