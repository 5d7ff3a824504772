package services

import (
	"database/sql"
	"fmt"

	"scrapyard_backend/internal/models"
	"scrapyard_backend/internal/repositories"

	"github.com/shopspring/decimal"
)

// StockService is the stock ledger: the deposit/deplete primitives consumed
// by the receiving and selling workflows plus the read views.
type StockService interface {
	// Deplete removes quantity from the oldest lots first. It must run on
	// the caller's *sql.Tx so the locked lot reads and the decrements
	// commit atomically with the rest of the workflow.
	Deplete(executor repositories.SQLExecutor, tenantID, materialID int64, quantity decimal.Decimal) ([]LotAllocation, error)

	GetAvailableQuantity(executor repositories.SQLExecutor, tenantID, materialID int64) (decimal.Decimal, error)
	GetStockSummary(tenantID int64) ([]models.StockSummaryRow, error)
	GetStockDetail(tenantID, materialID int64) ([]models.StockLot, error)
}

type stockService struct {
	stockRepo repositories.StockRepository
	db        *sql.DB
}

// NewStockService creates a new instance of StockService.
func NewStockService(sr repositories.StockRepository, db *sql.DB) StockService {
	return &stockService{stockRepo: sr, db: db}
}

func (s *stockService) Deplete(executor repositories.SQLExecutor, tenantID, materialID int64, quantity decimal.Decimal) ([]LotAllocation, error) {
	// The lots come back locked and oldest-first; the allocator rejects the
	// whole request before any lot is touched when stock is short.
	lots, err := s.stockRepo.GetLotsForUpdate(executor, tenantID, materialID)
	if err != nil {
		return nil, fmt.Errorf("failed to read stock lots for material %d: %w", materialID, err)
	}

	allocations, err := AllocateFIFO(quantity, lots)
	if err != nil {
		return nil, err
	}

	for _, alloc := range allocations {
		if err := s.stockRepo.DecrementLot(executor, alloc.LotID, alloc.Deducted); err != nil {
			return nil, fmt.Errorf("failed to deduct %s from stock lot %d: %w", alloc.Deducted.String(), alloc.LotID, err)
		}
	}
	return allocations, nil
}

func (s *stockService) GetAvailableQuantity(executor repositories.SQLExecutor, tenantID, materialID int64) (decimal.Decimal, error) {
	available, err := s.stockRepo.GetAvailableQuantity(executor, tenantID, materialID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to compute available stock for material %d: %w", materialID, err)
	}
	return available, nil
}

func (s *stockService) GetStockSummary(tenantID int64) ([]models.StockSummaryRow, error) {
	summary, err := s.stockRepo.GetSummary(tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to get stock summary: %w", err)
	}
	return summary, nil
}

func (s *stockService) GetStockDetail(tenantID, materialID int64) ([]models.StockLot, error) {
	lots, err := s.stockRepo.GetDetailByMaterial(tenantID, materialID)
	if err != nil {
		return nil, fmt.Errorf("failed to get stock detail for material %d: %w", materialID, err)
	}
	return lots, nil
}
