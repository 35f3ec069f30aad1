package services

import (
	"errors"
	"math"
	"testing"
	"time"

	"pharmacare_backend/internal/models"
	"pharmacare_backend/internal/repositories"
)

func TestSalesSummary(t *testing.T) {
	db := newTestDB(t)
	seedMedicine(t, db, "M0001", 10.00, 100)
	billingSvc := newBillingServiceForTest(t, db)
	reportSvc := NewReportService(
		repositories.NewBillingRepository(db),
		repositories.NewMedicineRepository(db),
	)

	// Two bills of 30 and 50; the first is settled in full.
	first, err := billingSvc.CreateBill(CreateBillRequest{
		Items: []BillItemRequest{{MedicineID: "M0001", Quantity: 3, UnitPrice: 10.00}},
	})
	if err != nil {
		t.Fatalf("CreateBill: %v", err)
	}
	if _, err := billingSvc.CreateBill(CreateBillRequest{
		Items: []BillItemRequest{{MedicineID: "M0001", Quantity: 5, UnitPrice: 10.00}},
	}); err != nil {
		t.Fatalf("CreateBill: %v", err)
	}
	if _, err := billingSvc.RecordPayment(RecordPaymentRequest{
		BillID: first.ID, Amount: 30, Method: models.PaymentMethodCash,
	}); err != nil {
		t.Fatalf("RecordPayment: %v", err)
	}

	today := time.Now().Format("2006-01-02")
	report, err := reportSvc.SalesSummary(today, today)
	if err != nil {
		t.Fatalf("SalesSummary: %v", err)
	}
	if report.BillCount != 2 {
		t.Errorf("bill count = %d, want 2", report.BillCount)
	}
	if math.Abs(report.TotalRevenue-80.00) > 1e-9 {
		t.Errorf("revenue = %v, want 80.00", report.TotalRevenue)
	}
	if math.Abs(report.TotalCollected-30.00) > 1e-9 {
		t.Errorf("collected = %v, want 30.00", report.TotalCollected)
	}
	if math.Abs(report.OutstandingDue-50.00) > 1e-9 {
		t.Errorf("outstanding = %v, want 50.00", report.OutstandingDue)
	}
	if report.UnpaidBillCount != 1 {
		t.Errorf("unpaid bills = %d, want 1", report.UnpaidBillCount)
	}
}

func TestSalesSummaryValidatesDates(t *testing.T) {
	db := newTestDB(t)
	reportSvc := NewReportService(
		repositories.NewBillingRepository(db),
		repositories.NewMedicineRepository(db),
	)

	if _, err := reportSvc.SalesSummary("2026-13-01", "2026-12-31"); !errors.Is(err, ErrValidation) {
		t.Errorf("bad month: err = %v, want ErrValidation", err)
	}
	if _, err := reportSvc.SalesSummary("2026-02-01", "2026-01-01"); !errors.Is(err, ErrValidation) {
		t.Errorf("reversed range: err = %v, want ErrValidation", err)
	}
}

func TestStockSummary(t *testing.T) {
	db := newTestDB(t)
	seedMedicine(t, db, "M0001", 2.00, 50)
	seedMedicine(t, db, "M0002", 3.00, 4)
	seedMedicine(t, db, "M0003", 4.00, 0)
	reportSvc := NewReportService(
		repositories.NewBillingRepository(db),
		repositories.NewMedicineRepository(db),
	)

	report, err := reportSvc.StockSummary(10)
	if err != nil {
		t.Fatalf("StockSummary: %v", err)
	}
	if report.MedicineCount != 3 {
		t.Errorf("medicine count = %d, want 3", report.MedicineCount)
	}
	if report.TotalStockUnits != 54 {
		t.Errorf("total units = %d, want 54", report.TotalStockUnits)
	}
	if report.LowStockCount != 1 {
		t.Errorf("low stock count = %d, want 1", report.LowStockCount)
	}
	if report.OutOfStockCount != 1 {
		t.Errorf("out of stock count = %d, want 1", report.OutOfStockCount)
	}
}
