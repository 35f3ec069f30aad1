package services

import (
	"errors"
	"fmt"
	"time"

	"pharmacare_backend/internal/models"
	"pharmacare_backend/internal/repositories"

	"github.com/jmoiron/sqlx"
)

var ErrPurchaseNotFound = errors.New("purchase not found")

// --- Data Transfer Objects (DTOs) ---

// PurchaseItemRequest is one medicine line on a stock-in request.
type PurchaseItemRequest struct {
	MedicineID string  `json:"medicine_id" binding:"required"`
	Quantity   int     `json:"quantity" binding:"required,gt=0"`
	UnitPrice  float64 `json:"unit_price" binding:"gte=0"`
}

// CreatePurchaseRequest is used for recording a restock from a supplier.
type CreatePurchaseRequest struct {
	SupplierID int64                 `json:"supplier_id" binding:"required"`
	Items      []PurchaseItemRequest `json:"items" binding:"required,dive"`
	Notes      string                `json:"notes"`
}

// --- PurchaseService Interface ---

type PurchaseService interface {
	CreatePurchase(req CreatePurchaseRequest) (*models.Purchase, error)
	GetPurchaseByID(purchaseID int64) (*models.Purchase, error)
	GetPurchases(filters models.PurchaseFilters) ([]models.Purchase, int, error)
}

type purchaseService struct {
	purchaseRepo repositories.PurchaseRepository
	supplierRepo repositories.SupplierRepository
	medicineRepo repositories.MedicineRepository
	db           *sqlx.DB
}

// NewPurchaseService creates a new instance of PurchaseService.
func NewPurchaseService(
	pr repositories.PurchaseRepository,
	sr repositories.SupplierRepository,
	mr repositories.MedicineRepository,
	db *sqlx.DB,
) PurchaseService {
	return &purchaseService{
		purchaseRepo: pr,
		supplierRepo: sr,
		medicineRepo: mr,
		db:           db,
	}
}

// CreatePurchase mirrors bill creation with the stock mutation
// reversed: the header, items and stock increments commit as one
// transaction. No sufficiency check applies to incoming stock.
func (s *purchaseService) CreatePurchase(req CreatePurchaseRequest) (*models.Purchase, error) {
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: purchase must contain at least one item", ErrValidation)
	}

	var total float64
	for _, itemReq := range req.Items {
		if itemReq.Quantity <= 0 {
			return nil, fmt.Errorf("%w: quantity for medicine %s must be positive", ErrValidation, itemReq.MedicineID)
		}
		if itemReq.UnitPrice < 0 {
			return nil, fmt.Errorf("%w: unit price for medicine %s cannot be negative", ErrValidation, itemReq.MedicineID)
		}
		total += float64(itemReq.Quantity) * itemReq.UnitPrice
	}

	if _, err := s.supplierRepo.GetSupplierByID(req.SupplierID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: ID %d", ErrSupplierNotFound, req.SupplierID)
		}
		return nil, fmt.Errorf("failed to fetch supplier %d: %w", req.SupplierID, err)
	}

	tx, err := s.db.Beginx()
	if err != nil {
		return nil, fmt.Errorf("failed to start database transaction: %w", err)
	}
	defer tx.Rollback()

	var notes *string
	if req.Notes != "" {
		notes = &req.Notes
	}
	purchase := models.Purchase{
		SupplierID:   req.SupplierID,
		PurchaseDate: time.Now(),
		TotalAmount:  total,
		Notes:        notes,
	}
	purchaseID, repoErr := s.purchaseRepo.CreatePurchase(tx, &purchase)
	if repoErr != nil {
		return nil, fmt.Errorf("failed to create purchase record: %w", repoErr)
	}

	for _, itemReq := range req.Items {
		item := models.PurchaseItem{
			PurchaseID: purchaseID,
			MedicineID: itemReq.MedicineID,
			Quantity:   itemReq.Quantity,
			Price:      itemReq.UnitPrice,
		}
		if _, repoErr = s.purchaseRepo.CreatePurchaseItem(tx, &item); repoErr != nil {
			return nil, fmt.Errorf("failed to create purchase item (medicine_id: %s): %w", itemReq.MedicineID, repoErr)
		}
		if repoErr = s.medicineRepo.UpdateStock(tx, itemReq.MedicineID, itemReq.Quantity); repoErr != nil {
			if errors.Is(repoErr, repositories.ErrNotFound) {
				return nil, fmt.Errorf("%w: ID %s", ErrMedicineNotFound, itemReq.MedicineID)
			}
			return nil, fmt.Errorf("failed to update stock for medicine %s: %w", itemReq.MedicineID, repoErr)
		}
		purchase.Items = append(purchase.Items, item)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit purchase transaction: %w", err)
	}
	return &purchase, nil
}

func (s *purchaseService) GetPurchaseByID(purchaseID int64) (*models.Purchase, error) {
	purchase, err := s.purchaseRepo.GetPurchaseByID(purchaseID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrPurchaseNotFound
		}
		return nil, fmt.Errorf("failed to get purchase by ID: %w", err)
	}

	items, err := s.purchaseRepo.GetPurchaseItemsByPurchaseID(purchaseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get purchase items for purchase %d: %w", purchaseID, err)
	}
	purchase.Items = items
	return purchase, nil
}

func (s *purchaseService) GetPurchases(filters models.PurchaseFilters) ([]models.Purchase, int, error) {
	purchases, totalCount, err := s.purchaseRepo.GetPurchases(filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get purchases: %w", err)
	}
	return purchases, totalCount, nil
}
