package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"pharmacare_backend/internal/models"

	"github.com/jmoiron/sqlx"
)

// PrescriptionRepository defines the interface for doctor and
// prescription database operations.
type PrescriptionRepository interface {
	// Doctor methods
	CreateDoctor(executor SQLExecutor, doctor *models.Doctor) (int64, error)
	GetDoctorByID(id int64) (*models.Doctor, error)
	GetDoctors() ([]models.Doctor, error)
	UpdateDoctor(executor SQLExecutor, doctor *models.Doctor) error
	DeleteDoctor(executor SQLExecutor, id int64) error

	// Prescription methods
	CreatePrescription(executor SQLExecutor, prescription *models.Prescription) (int64, error)
	CreatePrescriptionItem(executor SQLExecutor, item *models.PrescriptionItem) (int64, error)
	GetPrescriptionByID(id int64) (*models.Prescription, error)
	GetPrescriptionItems(prescriptionID int64) ([]models.PrescriptionItem, error)
	GetCustomerPrescriptions(customerID int64) ([]models.Prescription, error)
	DeletePrescription(executor SQLExecutor, id int64) error
}

type prescriptionRepository struct {
	db *sqlx.DB
}

// NewPrescriptionRepository creates a new instance of PrescriptionRepository.
func NewPrescriptionRepository(db *sqlx.DB) PrescriptionRepository {
	return &prescriptionRepository{db: db}
}

// --- Doctor Methods ---

func (r *prescriptionRepository) CreateDoctor(executor SQLExecutor, doctor *models.Doctor) (int64, error) {
	query := `INSERT INTO doctors (name, specialization, phone, email) VALUES (?, ?, ?, ?)`
	result, err := executor.Exec(query, doctor.Name, doctor.Specialization, doctor.Phone, doctor.Email)
	if err != nil {
		return 0, fmt.Errorf("%w: creating doctor: %v", ErrDatabaseError, err)
	}
	doctor.ID, err = result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%w: reading new doctor ID: %v", ErrDatabaseError, err)
	}
	return doctor.ID, nil
}

func (r *prescriptionRepository) GetDoctorByID(id int64) (*models.Doctor, error) {
	doctor := &models.Doctor{}
	err := r.db.Get(doctor, `SELECT id, name, specialization, phone, email FROM doctors WHERE id = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting doctor by ID %d: %v", ErrDatabaseError, id, err)
	}
	return doctor, nil
}

func (r *prescriptionRepository) GetDoctors() ([]models.Doctor, error) {
	doctors := []models.Doctor{}
	query := `SELECT id, name, specialization, phone, email FROM doctors ORDER BY name ASC`
	if err := r.db.Select(&doctors, query); err != nil {
		return nil, fmt.Errorf("%w: querying doctors: %v", ErrDatabaseError, err)
	}
	return doctors, nil
}

func (r *prescriptionRepository) UpdateDoctor(executor SQLExecutor, doctor *models.Doctor) error {
	query := `UPDATE doctors SET name = ?, specialization = ?, phone = ?, email = ? WHERE id = ?`
	result, err := executor.Exec(query, doctor.Name, doctor.Specialization, doctor.Phone, doctor.Email, doctor.ID)
	if err != nil {
		return fmt.Errorf("%w: updating doctor ID %d: %v", ErrDatabaseError, doctor.ID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *prescriptionRepository) DeleteDoctor(executor SQLExecutor, id int64) error {
	result, err := executor.Exec(`DELETE FROM doctors WHERE id = ?`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: doctor ID %d is referenced by prescriptions", ErrDatabaseError, id)
		}
		return fmt.Errorf("%w: deleting doctor ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// --- Prescription Methods ---

func (r *prescriptionRepository) CreatePrescription(executor SQLExecutor, prescription *models.Prescription) (int64, error) {
	query := `INSERT INTO prescriptions (customer_id, doctor_id, date, notes) VALUES (?, ?, ?, ?)`
	if prescription.Date.IsZero() {
		prescription.Date = time.Now()
	}
	result, err := executor.Exec(query, prescription.CustomerID, prescription.DoctorID, prescription.Date, prescription.Notes)
	if err != nil {
		if isForeignKeyViolation(err) {
			return 0, fmt.Errorf("%w: creating prescription: unknown customer or doctor reference: %v", ErrDatabaseError, err)
		}
		return 0, fmt.Errorf("%w: creating prescription: %v", ErrDatabaseError, err)
	}
	prescription.ID, err = result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%w: reading new prescription ID: %v", ErrDatabaseError, err)
	}
	return prescription.ID, nil
}

func (r *prescriptionRepository) CreatePrescriptionItem(executor SQLExecutor, item *models.PrescriptionItem) (int64, error) {
	query := `INSERT INTO prescription_items (prescription_id, medicine_id, dosage, duration) VALUES (?, ?, ?, ?)`
	result, err := executor.Exec(query, item.PrescriptionID, item.MedicineID, item.Dosage, item.Duration)
	if err != nil {
		if isForeignKeyViolation(err) {
			return 0, fmt.Errorf("%w: creating prescription item: unknown medicine %s: %v", ErrDatabaseError, item.MedicineID, err)
		}
		return 0, fmt.Errorf("%w: creating prescription item: %v", ErrDatabaseError, err)
	}
	item.ID, err = result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%w: reading new prescription item ID: %v", ErrDatabaseError, err)
	}
	return item.ID, nil
}

func (r *prescriptionRepository) GetPrescriptionByID(id int64) (*models.Prescription, error) {
	prescription := &models.Prescription{}
	query := `SELECT id, customer_id, doctor_id, date, notes FROM prescriptions WHERE id = ?`
	err := r.db.Get(prescription, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting prescription by ID %d: %v", ErrDatabaseError, id, err)
	}
	return prescription, nil
}

func (r *prescriptionRepository) GetPrescriptionItems(prescriptionID int64) ([]models.PrescriptionItem, error) {
	items := []models.PrescriptionItem{}
	query := `SELECT pi.id, pi.prescription_id, pi.medicine_id, pi.dosage, pi.duration, m.name AS medicine_name
	          FROM prescription_items pi
	          JOIN medicines m ON m.id = pi.medicine_id
	          WHERE pi.prescription_id = ?
	          ORDER BY pi.id`
	if err := r.db.Select(&items, query, prescriptionID); err != nil {
		return nil, fmt.Errorf("%w: querying prescription items for prescription ID %d: %v", ErrDatabaseError, prescriptionID, err)
	}
	return items, nil
}

func (r *prescriptionRepository) GetCustomerPrescriptions(customerID int64) ([]models.Prescription, error) {
	prescriptions := []models.Prescription{}
	query := `SELECT id, customer_id, doctor_id, date, notes
	          FROM prescriptions WHERE customer_id = ?
	          ORDER BY date DESC, id DESC`
	if err := r.db.Select(&prescriptions, query, customerID); err != nil {
		return nil, fmt.Errorf("%w: querying prescriptions for customer %d: %v", ErrDatabaseError, customerID, err)
	}
	return prescriptions, nil
}

func (r *prescriptionRepository) DeletePrescription(executor SQLExecutor, id int64) error {
	// prescription_items cascade with the header row.
	result, err := executor.Exec(`DELETE FROM prescriptions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("%w: deleting prescription ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
