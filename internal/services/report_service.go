package services

import (
	"fmt"

	"pharmacare_backend/internal/models"
	"pharmacare_backend/internal/repositories"
	"pharmacare_backend/pkg/utils"
)

type ReportService interface {
	SalesSummary(from, to string) (*models.SalesReport, error)
	StockSummary(lowStockThreshold int) (*models.StockReport, error)
}

type reportService struct {
	billingRepo  repositories.BillingRepository
	medicineRepo repositories.MedicineRepository
}

// NewReportService creates a new instance of ReportService.
func NewReportService(br repositories.BillingRepository, mr repositories.MedicineRepository) ReportService {
	return &reportService{billingRepo: br, medicineRepo: mr}
}

// SalesSummary aggregates billing activity over an inclusive date
// range. Both bounds are YYYY-MM-DD.
func (s *reportService) SalesSummary(from, to string) (*models.SalesReport, error) {
	if !utils.IsValidDate(from) || !utils.IsValidDate(to) {
		return nil, fmt.Errorf("%w: report dates must be YYYY-MM-DD", ErrValidation)
	}
	if from > to {
		return nil, fmt.Errorf("%w: 'from' date is after 'to' date", ErrValidation)
	}
	report, err := s.billingRepo.SalesSummary(from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to build sales summary: %w", err)
	}
	return report, nil
}

func (s *reportService) StockSummary(lowStockThreshold int) (*models.StockReport, error) {
	if lowStockThreshold <= 0 {
		lowStockThreshold = DefaultLowStockThreshold
	}
	report, err := s.medicineRepo.StockSummary(lowStockThreshold)
	if err != nil {
		return nil, fmt.Errorf("failed to build stock summary: %w", err)
	}
	return report, nil
}
