package models

// SalesReport summarizes billing activity over a date range.
type SalesReport struct {
	From            string  `json:"from"`
	To              string  `json:"to"`
	BillCount       int     `json:"bill_count"`
	TotalRevenue    float64 `json:"total_revenue"`
	TotalCollected  float64 `json:"total_collected"`
	OutstandingDue  float64 `json:"outstanding_due"`
	UnpaidBillCount int     `json:"unpaid_bill_count"`
}

// StockReport summarizes the current inventory position.
type StockReport struct {
	MedicineCount   int `json:"medicine_count"`
	TotalStockUnits int `json:"total_stock_units"`
	LowStockCount   int `json:"low_stock_count"`
	OutOfStockCount int `json:"out_of_stock_count"`
}
