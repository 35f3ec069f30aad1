package services

import (
	"errors"
	"testing"

	"pharmacare_backend/internal/repositories"

	"github.com/jmoiron/sqlx"
)

func newMedicineServiceForTest(t *testing.T, db *sqlx.DB) MedicineService {
	t.Helper()
	return NewMedicineService(
		repositories.NewMedicineRepository(db),
		repositories.NewReferenceRepository(db),
		db,
	)
}

func TestCreateMedicineGeneratesSequentialCodes(t *testing.T) {
	db := newTestDB(t)
	svc := newMedicineServiceForTest(t, db)

	first, err := svc.CreateMedicine(CreateMedicineRequest{
		Name: "Paracetamol", Category: "Tablet", Price: 2.50, Stock: 100, ExpiryDate: "2030-06-30",
	})
	if err != nil {
		t.Fatalf("CreateMedicine: %v", err)
	}
	if first.ID != "M0001" {
		t.Errorf("first ID = %q, want M0001", first.ID)
	}

	second, err := svc.CreateMedicine(CreateMedicineRequest{
		Name: "Ibuprofen", Category: "Tablet", Price: 3.00, ExpiryDate: "2029-12-31",
	})
	if err != nil {
		t.Fatalf("CreateMedicine: %v", err)
	}
	if second.ID != "M0002" {
		t.Errorf("second ID = %q, want M0002", second.ID)
	}
}

func TestCreateMedicineRejectsDuplicateCode(t *testing.T) {
	db := newTestDB(t)
	svc := newMedicineServiceForTest(t, db)

	req := CreateMedicineRequest{
		ID: "M0100", Name: "Amoxicillin", Category: "Capsule", Price: 8.00, ExpiryDate: "2028-01-01",
	}
	if _, err := svc.CreateMedicine(req); err != nil {
		t.Fatalf("CreateMedicine: %v", err)
	}
	if _, err := svc.CreateMedicine(req); !errors.Is(err, ErrMedicineCodeInUse) {
		t.Errorf("duplicate code: err = %v, want ErrMedicineCodeInUse", err)
	}
}

func TestCreateMedicineValidation(t *testing.T) {
	db := newTestDB(t)
	svc := newMedicineServiceForTest(t, db)

	cases := []struct {
		name string
		req  CreateMedicineRequest
	}{
		{"empty name", CreateMedicineRequest{Name: " ", Category: "Tablet", Price: 1, ExpiryDate: "2030-01-01"}},
		{"zero price", CreateMedicineRequest{Name: "X", Category: "Tablet", Price: 0, ExpiryDate: "2030-01-01"}},
		{"negative stock", CreateMedicineRequest{Name: "X", Category: "Tablet", Price: 1, Stock: -1, ExpiryDate: "2030-01-01"}},
		{"bad expiry", CreateMedicineRequest{Name: "X", Category: "Tablet", Price: 1, ExpiryDate: "30-01-2030"}},
	}
	for _, tc := range cases {
		if _, err := svc.CreateMedicine(tc.req); !errors.Is(err, ErrValidation) {
			t.Errorf("%s: err = %v, want ErrValidation", tc.name, err)
		}
	}
}

func TestUpdateMedicinePartial(t *testing.T) {
	db := newTestDB(t)
	seedMedicine(t, db, "M0001", 2.00, 50)
	svc := newMedicineServiceForTest(t, db)

	newPrice := 2.75
	updated, err := svc.UpdateMedicine("M0001", UpdateMedicineRequest{Price: &newPrice})
	if err != nil {
		t.Fatalf("UpdateMedicine: %v", err)
	}
	if updated.Price != 2.75 {
		t.Errorf("price = %v, want 2.75", updated.Price)
	}
	if updated.Name != "Medicine M0001" {
		t.Errorf("name changed unexpectedly to %q", updated.Name)
	}
	if updated.Stock != 50 {
		t.Errorf("stock changed unexpectedly to %d", updated.Stock)
	}

	_, err = svc.UpdateMedicine("M9999", UpdateMedicineRequest{Price: &newPrice})
	if !errors.Is(err, ErrMedicineNotFound) {
		t.Errorf("unknown medicine: err = %v, want ErrMedicineNotFound", err)
	}
}

func TestSetStockAndLowStock(t *testing.T) {
	db := newTestDB(t)
	seedMedicine(t, db, "M0001", 2.00, 50)
	seedMedicine(t, db, "M0002", 3.00, 4)
	seedMedicine(t, db, "M0003", 4.00, 0)
	svc := newMedicineServiceForTest(t, db)

	if _, err := svc.SetStock("M0001", -5); !errors.Is(err, ErrValidation) {
		t.Errorf("negative stock: err = %v, want ErrValidation", err)
	}

	medicine, err := svc.SetStock("M0001", 7)
	if err != nil {
		t.Fatalf("SetStock: %v", err)
	}
	if medicine.Stock != 7 {
		t.Errorf("stock = %d, want 7", medicine.Stock)
	}

	low, err := svc.GetLowStock(5)
	if err != nil {
		t.Fatalf("GetLowStock: %v", err)
	}
	if len(low) != 2 {
		t.Fatalf("low stock count at threshold 5 = %d, want 2", len(low))
	}
	for _, m := range low {
		if m.Stock > 5 {
			t.Errorf("medicine %s with stock %d above threshold", m.ID, m.Stock)
		}
	}
}

func TestSearchMedicines(t *testing.T) {
	db := newTestDB(t)
	svc := newMedicineServiceForTest(t, db)

	names := []string{"Paracetamol 500mg", "Paracetamol Syrup", "Ibuprofen"}
	for _, name := range names {
		if _, err := svc.CreateMedicine(CreateMedicineRequest{
			Name: name, Category: "Tablet", Price: 2.00, ExpiryDate: "2030-01-01",
		}); err != nil {
			t.Fatalf("CreateMedicine %s: %v", name, err)
		}
	}

	results, err := svc.SearchMedicines("paracetamol")
	if err != nil {
		t.Fatalf("SearchMedicines: %v", err)
	}
	if len(results) != 2 {
		t.Errorf("result count = %d, want 2", len(results))
	}

	byCode, err := svc.SearchMedicines("M0003")
	if err != nil {
		t.Fatalf("SearchMedicines by code: %v", err)
	}
	if len(byCode) != 1 || byCode[0].Name != "Ibuprofen" {
		t.Errorf("code search = %+v, want single Ibuprofen match", byCode)
	}

	if _, err := svc.SearchMedicines("  "); !errors.Is(err, ErrValidation) {
		t.Errorf("blank term: err = %v, want ErrValidation", err)
	}
}
