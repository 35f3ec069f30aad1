package services

import (
	"errors"
	"math"
	"testing"

	"pharmacare_backend/internal/models"
)

func TestCreatePurchaseIncrementsStock(t *testing.T) {
	db := newTestDB(t)
	seedMedicine(t, db, "M0001", 5.00, 20)
	supplierID := seedSupplier(t, db, "MedSupply Co")
	svc := newPurchaseServiceForTest(t, db)

	purchase, err := svc.CreatePurchase(CreatePurchaseRequest{
		SupplierID: supplierID,
		Items:      []PurchaseItemRequest{{MedicineID: "M0001", Quantity: 10, UnitPrice: 5.00}},
	})
	if err != nil {
		t.Fatalf("CreatePurchase: %v", err)
	}

	if math.Abs(purchase.TotalAmount-50.00) > 1e-9 {
		t.Errorf("total = %v, want 50.00", purchase.TotalAmount)
	}
	if got := medicineStock(t, db, "M0001"); got != 30 {
		t.Errorf("stock after purchase = %d, want 30", got)
	}

	fetched, err := svc.GetPurchaseByID(purchase.ID)
	if err != nil {
		t.Fatalf("GetPurchaseByID: %v", err)
	}
	if len(fetched.Items) != 1 {
		t.Errorf("persisted item count = %d, want 1", len(fetched.Items))
	}
}

func TestCreatePurchaseUnknownSupplier(t *testing.T) {
	db := newTestDB(t)
	seedMedicine(t, db, "M0001", 5.00, 20)
	svc := newPurchaseServiceForTest(t, db)

	_, err := svc.CreatePurchase(CreatePurchaseRequest{
		SupplierID: 999,
		Items:      []PurchaseItemRequest{{MedicineID: "M0001", Quantity: 10, UnitPrice: 5.00}},
	})
	if !errors.Is(err, ErrSupplierNotFound) {
		t.Fatalf("err = %v, want ErrSupplierNotFound", err)
	}
	if got := medicineStock(t, db, "M0001"); got != 20 {
		t.Errorf("stock = %d, want 20", got)
	}
}

func TestCreatePurchaseRejectsEmptyItems(t *testing.T) {
	db := newTestDB(t)
	supplierID := seedSupplier(t, db, "MedSupply Co")
	svc := newPurchaseServiceForTest(t, db)

	_, err := svc.CreatePurchase(CreatePurchaseRequest{SupplierID: supplierID})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
}

func TestCreatePurchaseUnknownMedicineRollsBack(t *testing.T) {
	db := newTestDB(t)
	seedMedicine(t, db, "M0001", 5.00, 20)
	supplierID := seedSupplier(t, db, "MedSupply Co")
	svc := newPurchaseServiceForTest(t, db)

	_, err := svc.CreatePurchase(CreatePurchaseRequest{
		SupplierID: supplierID,
		Items: []PurchaseItemRequest{
			{MedicineID: "M0001", Quantity: 5, UnitPrice: 5.00},
			{MedicineID: "M9999", Quantity: 1, UnitPrice: 1.00},
		},
	})
	if err == nil {
		t.Fatal("expected error for unknown medicine")
	}
	if got := medicineStock(t, db, "M0001"); got != 20 {
		t.Errorf("stock after rollback = %d, want 20", got)
	}

	_, total, err := svc.GetPurchases(models.PurchaseFilters{Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("GetPurchases: %v", err)
	}
	if total != 0 {
		t.Errorf("purchase count = %d, want 0", total)
	}
}

func TestGetPurchasesFiltersBySupplier(t *testing.T) {
	db := newTestDB(t)
	seedMedicine(t, db, "M0001", 2.00, 0)
	firstSupplier := seedSupplier(t, db, "First Pharma")
	secondSupplier := seedSupplier(t, db, "Second Pharma")
	svc := newPurchaseServiceForTest(t, db)

	for _, supplierID := range []int64{firstSupplier, firstSupplier, secondSupplier} {
		_, err := svc.CreatePurchase(CreatePurchaseRequest{
			SupplierID: supplierID,
			Items:      []PurchaseItemRequest{{MedicineID: "M0001", Quantity: 1, UnitPrice: 2.00}},
		})
		if err != nil {
			t.Fatalf("CreatePurchase: %v", err)
		}
	}

	purchases, total, err := svc.GetPurchases(models.PurchaseFilters{SupplierID: &firstSupplier, Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("GetPurchases: %v", err)
	}
	if total != 2 || len(purchases) != 2 {
		t.Errorf("filtered purchases = %d (total %d), want 2", len(purchases), total)
	}
	if got := medicineStock(t, db, "M0001"); got != 3 {
		t.Errorf("stock after three purchases = %d, want 3", got)
	}
}
