package services

import (
	"errors"
	"math"
	"testing"

	"pharmacare_backend/internal/models"
)

func TestCreateBillComputesTotalAndDecrementsStock(t *testing.T) {
	db := newTestDB(t)
	seedMedicine(t, db, "M0001", 12.50, 100)
	seedMedicine(t, db, "M0002", 4.00, 40)
	svc := newBillingServiceForTest(t, db)

	bill, err := svc.CreateBill(CreateBillRequest{
		Items: []BillItemRequest{
			{MedicineID: "M0001", Quantity: 3, UnitPrice: 12.50},
			{MedicineID: "M0002", Quantity: 5, UnitPrice: 4.00},
		},
	})
	if err != nil {
		t.Fatalf("CreateBill: %v", err)
	}

	if want := 3*12.50 + 5*4.00; math.Abs(bill.TotalAmount-want) > 1e-9 {
		t.Errorf("total = %v, want %v", bill.TotalAmount, want)
	}
	if bill.PaymentStatus != models.PaymentStatusUnpaid {
		t.Errorf("payment status = %q, want %q", bill.PaymentStatus, models.PaymentStatusUnpaid)
	}
	if len(bill.Items) != 2 {
		t.Fatalf("item count = %d, want 2", len(bill.Items))
	}
	if got := medicineStock(t, db, "M0001"); got != 97 {
		t.Errorf("M0001 stock = %d, want 97", got)
	}
	if got := medicineStock(t, db, "M0002"); got != 35 {
		t.Errorf("M0002 stock = %d, want 35", got)
	}

	fetched, err := svc.GetBillByID(bill.ID)
	if err != nil {
		t.Fatalf("GetBillByID: %v", err)
	}
	if len(fetched.Items) != 2 {
		t.Errorf("persisted item count = %d, want 2", len(fetched.Items))
	}
}

func TestCreateBillRepeatedMedicineAccumulates(t *testing.T) {
	db := newTestDB(t)
	seedMedicine(t, db, "M0001", 2.00, 10)
	svc := newBillingServiceForTest(t, db)

	// 6 + 5 exceeds the available 10 even though each line alone fits.
	_, err := svc.CreateBill(CreateBillRequest{
		Items: []BillItemRequest{
			{MedicineID: "M0001", Quantity: 6, UnitPrice: 2.00},
			{MedicineID: "M0001", Quantity: 5, UnitPrice: 2.00},
		},
	})
	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("err = %v, want ErrInsufficientStock", err)
	}
	if got := medicineStock(t, db, "M0001"); got != 10 {
		t.Errorf("stock after rollback = %d, want 10", got)
	}

	// 6 + 4 fits exactly and both lines decrement.
	bill, err := svc.CreateBill(CreateBillRequest{
		Items: []BillItemRequest{
			{MedicineID: "M0001", Quantity: 6, UnitPrice: 2.00},
			{MedicineID: "M0001", Quantity: 4, UnitPrice: 2.00},
		},
	})
	if err != nil {
		t.Fatalf("CreateBill: %v", err)
	}
	if len(bill.Items) != 2 {
		t.Errorf("item count = %d, want 2", len(bill.Items))
	}
	if got := medicineStock(t, db, "M0001"); got != 0 {
		t.Errorf("stock = %d, want 0", got)
	}
}

func TestCreateBillRejectsEmptyItems(t *testing.T) {
	db := newTestDB(t)
	svc := newBillingServiceForTest(t, db)

	_, err := svc.CreateBill(CreateBillRequest{})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
}

func TestCreateBillUnknownMedicineRollsBack(t *testing.T) {
	db := newTestDB(t)
	seedMedicine(t, db, "M0001", 5.00, 50)
	svc := newBillingServiceForTest(t, db)

	_, err := svc.CreateBill(CreateBillRequest{
		Items: []BillItemRequest{
			{MedicineID: "M0001", Quantity: 2, UnitPrice: 5.00},
			{MedicineID: "M9999", Quantity: 1, UnitPrice: 1.00},
		},
	})
	if err == nil {
		t.Fatal("expected error for unknown medicine")
	}
	if got := medicineStock(t, db, "M0001"); got != 50 {
		t.Errorf("stock after rollback = %d, want 50", got)
	}

	bills, total, err := svc.GetBills(models.BillFilters{Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("GetBills: %v", err)
	}
	if total != 0 || len(bills) != 0 {
		t.Errorf("bills persisted after rollback: total=%d len=%d", total, len(bills))
	}
}

func TestCreateBillInsufficientStockLeavesNoTrace(t *testing.T) {
	db := newTestDB(t)
	seedMedicine(t, db, "M0001", 3.00, 5)
	svc := newBillingServiceForTest(t, db)

	_, err := svc.CreateBill(CreateBillRequest{
		Items: []BillItemRequest{{MedicineID: "M0001", Quantity: 6, UnitPrice: 3.00}},
	})
	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("err = %v, want ErrInsufficientStock", err)
	}
	if got := medicineStock(t, db, "M0001"); got != 5 {
		t.Errorf("stock = %d, want 5", got)
	}
	_, total, err := svc.GetBills(models.BillFilters{Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("GetBills: %v", err)
	}
	if total != 0 {
		t.Errorf("bill count = %d, want 0", total)
	}
}

func TestRecordPaymentFlipsStatusAtFullSettlement(t *testing.T) {
	db := newTestDB(t)
	seedMedicine(t, db, "M0001", 10.00, 100)
	svc := newBillingServiceForTest(t, db)

	bill, err := svc.CreateBill(CreateBillRequest{
		Items: []BillItemRequest{{MedicineID: "M0001", Quantity: 10, UnitPrice: 10.00}},
	})
	if err != nil {
		t.Fatalf("CreateBill: %v", err)
	}

	// 40 of 100: still unpaid.
	if _, err := svc.RecordPayment(RecordPaymentRequest{BillID: bill.ID, Amount: 40, Method: models.PaymentMethodCash}); err != nil {
		t.Fatalf("RecordPayment: %v", err)
	}
	got, err := svc.GetBillByID(bill.ID)
	if err != nil {
		t.Fatalf("GetBillByID: %v", err)
	}
	if got.PaymentStatus != models.PaymentStatusUnpaid {
		t.Errorf("status after partial payment = %q, want unpaid", got.PaymentStatus)
	}

	// One short of the remainder: still unpaid.
	if _, err := svc.RecordPayment(RecordPaymentRequest{BillID: bill.ID, Amount: 59, Method: models.PaymentMethodCard}); err != nil {
		t.Fatalf("RecordPayment: %v", err)
	}
	got, _ = svc.GetBillByID(bill.ID)
	if got.PaymentStatus != models.PaymentStatusUnpaid {
		t.Errorf("status one short of total = %q, want unpaid", got.PaymentStatus)
	}

	// Exact remainder flips to paid.
	if _, err := svc.RecordPayment(RecordPaymentRequest{BillID: bill.ID, Amount: 1, Method: models.PaymentMethodUPI}); err != nil {
		t.Fatalf("RecordPayment: %v", err)
	}
	got, _ = svc.GetBillByID(bill.ID)
	if got.PaymentStatus != models.PaymentStatusPaid {
		t.Errorf("status at full settlement = %q, want paid", got.PaymentStatus)
	}

	// Paid is terminal: a further payment keeps it paid.
	if _, err := svc.RecordPayment(RecordPaymentRequest{BillID: bill.ID, Amount: 5, Method: models.PaymentMethodCash}); err != nil {
		t.Fatalf("RecordPayment: %v", err)
	}
	got, _ = svc.GetBillByID(bill.ID)
	if got.PaymentStatus != models.PaymentStatusPaid {
		t.Errorf("status after overpayment = %q, want paid", got.PaymentStatus)
	}
}

func TestRecordPaymentIsNotIdempotent(t *testing.T) {
	db := newTestDB(t)
	seedMedicine(t, db, "M0001", 25.00, 10)
	svc := newBillingServiceForTest(t, db)

	bill, err := svc.CreateBill(CreateBillRequest{
		Items: []BillItemRequest{{MedicineID: "M0001", Quantity: 2, UnitPrice: 25.00}},
	})
	if err != nil {
		t.Fatalf("CreateBill: %v", err)
	}

	req := RecordPaymentRequest{BillID: bill.ID, Amount: 25, Method: models.PaymentMethodCash}
	for i := 0; i < 2; i++ {
		if _, err := svc.RecordPayment(req); err != nil {
			t.Fatalf("RecordPayment #%d: %v", i+1, err)
		}
	}

	payments, total, err := svc.GetPayments(&bill.ID, 1, 10)
	if err != nil {
		t.Fatalf("GetPayments: %v", err)
	}
	if total != 2 || len(payments) != 2 {
		t.Errorf("payment rows = %d (total %d), want 2", len(payments), total)
	}

	got, _ := svc.GetBillByID(bill.ID)
	if got.PaymentStatus != models.PaymentStatusPaid {
		t.Errorf("status after two 25s against 50 = %q, want paid", got.PaymentStatus)
	}
}

func TestRecordPaymentValidation(t *testing.T) {
	db := newTestDB(t)
	svc := newBillingServiceForTest(t, db)

	_, err := svc.RecordPayment(RecordPaymentRequest{BillID: 1, Amount: 0, Method: models.PaymentMethodCash})
	if !errors.Is(err, ErrValidation) {
		t.Errorf("zero amount: err = %v, want ErrValidation", err)
	}

	_, err = svc.RecordPayment(RecordPaymentRequest{BillID: 1, Amount: 10, Method: "barter"})
	if !errors.Is(err, ErrInvalidPaymentMethod) {
		t.Errorf("bad method: err = %v, want ErrInvalidPaymentMethod", err)
	}

	_, err = svc.RecordPayment(RecordPaymentRequest{BillID: 424242, Amount: 10, Method: models.PaymentMethodCash})
	if !errors.Is(err, ErrBillNotFound) {
		t.Errorf("unknown bill: err = %v, want ErrBillNotFound", err)
	}
}

func TestGetLastBillForCustomer(t *testing.T) {
	db := newTestDB(t)
	seedMedicine(t, db, "M0001", 1.00, 100)
	customerID := seedCustomer(t, db, "Asel")
	svc := newBillingServiceForTest(t, db)

	for i := 1; i <= 3; i++ {
		_, err := svc.CreateBill(CreateBillRequest{
			CustomerID: &customerID,
			Items:      []BillItemRequest{{MedicineID: "M0001", Quantity: i, UnitPrice: 1.00}},
		})
		if err != nil {
			t.Fatalf("CreateBill #%d: %v", i, err)
		}
	}

	last, err := svc.GetLastBill(customerID)
	if err != nil {
		t.Fatalf("GetLastBill: %v", err)
	}
	if math.Abs(last.TotalAmount-3.00) > 1e-9 {
		t.Errorf("last bill total = %v, want 3.00", last.TotalAmount)
	}

	bills, err := svc.GetCustomerBills(customerID)
	if err != nil {
		t.Fatalf("GetCustomerBills: %v", err)
	}
	if len(bills) != 3 {
		t.Errorf("customer bill count = %d, want 3", len(bills))
	}
}
