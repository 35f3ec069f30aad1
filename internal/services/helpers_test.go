package services

import (
	"testing"

	"pharmacare_backend/internal/database"
	"pharmacare_backend/internal/migrations"
	"pharmacare_backend/internal/models"
	"pharmacare_backend/internal/repositories"

	"github.com/jmoiron/sqlx"
)

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := database.Connect(":memory:")
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	if err := migrations.Run(db); err != nil {
		t.Fatalf("running migrations: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func seedMedicine(t *testing.T, db *sqlx.DB, id string, price float64, stock int) {
	t.Helper()
	repo := repositories.NewMedicineRepository(db)
	err := repo.CreateMedicine(db, &models.Medicine{
		ID:         id,
		Name:       "Medicine " + id,
		Category:   "Tablet",
		Price:      price,
		Stock:      stock,
		ExpiryDate: "2030-01-01",
	})
	if err != nil {
		t.Fatalf("seeding medicine %s: %v", id, err)
	}
}

func seedSupplier(t *testing.T, db *sqlx.DB, name string) int64 {
	t.Helper()
	repo := repositories.NewSupplierRepository(db)
	id, err := repo.CreateSupplier(db, &models.Supplier{Name: name})
	if err != nil {
		t.Fatalf("seeding supplier %s: %v", name, err)
	}
	return id
}

func seedCustomer(t *testing.T, db *sqlx.DB, name string) int64 {
	t.Helper()
	repo := repositories.NewCustomerRepository(db)
	id, err := repo.CreateCustomer(db, &models.Customer{Name: name})
	if err != nil {
		t.Fatalf("seeding customer %s: %v", name, err)
	}
	return id
}

func medicineStock(t *testing.T, db *sqlx.DB, id string) int {
	t.Helper()
	repo := repositories.NewMedicineRepository(db)
	stock, err := repo.GetStock(db, id)
	if err != nil {
		t.Fatalf("reading stock for %s: %v", id, err)
	}
	return stock
}

func newBillingServiceForTest(t *testing.T, db *sqlx.DB) BillingService {
	t.Helper()
	return NewBillingService(
		repositories.NewBillingRepository(db),
		repositories.NewMedicineRepository(db),
		db,
	)
}

func newPurchaseServiceForTest(t *testing.T, db *sqlx.DB) PurchaseService {
	t.Helper()
	return NewPurchaseService(
		repositories.NewPurchaseRepository(db),
		repositories.NewSupplierRepository(db),
		repositories.NewMedicineRepository(db),
		db,
	)
}
