package services

import (
	"database/sql"
	"errors"
	"fmt"

	"scrapyard_backend/internal/models"
	"scrapyard_backend/internal/repositories"

	"github.com/shopspring/decimal"
)

var ErrReceivingItemNotFound = errors.New("receiving item not found")

// CreateInspectionItemRequest is one measured loss component.
type CreateInspectionItemRequest struct {
	UllageTypeID int64           `json:"ullage_type_id" binding:"required"`
	Weight       decimal.Decimal `json:"weight"`
}

// CreateInspectionRequest is used for recording an inspection on a receiving item.
type CreateInspectionRequest struct {
	ReceivingItemID int64                         `json:"receiving_item_id" binding:"required"`
	SampleWeight    decimal.Decimal               `json:"sample_weight"`
	Items           []CreateInspectionItemRequest `json:"items" binding:"required"`
}

// InspectionService records loss measurements and prices receiving items.
// Creating an inspection also performs the receiving workflow's
// all-items-inspected check, in the same database transaction.
type InspectionService interface {
	CreateInspection(tenantID int64, req CreateInspectionRequest) (*models.Inspection, error)
	GetInspectionsByReceivingItemID(tenantID, receivingItemID int64) ([]models.Inspection, error)
	GetInspectionHistory(tenantID int64) ([]models.InspectionHistoryRow, error)
}

type inspectionService struct {
	inspectionRepo repositories.InspectionRepository
	receivingRepo  repositories.ReceivingRepository
	db             *sql.DB
}

// NewInspectionService creates a new instance of InspectionService.
func NewInspectionService(
	ir repositories.InspectionRepository,
	rr repositories.ReceivingRepository,
	db *sql.DB,
) InspectionService {
	return &inspectionService{
		inspectionRepo: ir,
		receivingRepo:  rr,
		db:             db,
	}
}

func (s *inspectionService) CreateInspection(tenantID int64, req CreateInspectionRequest) (*models.Inspection, error) {
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: an inspection needs at least one measured loss component", ErrValidation)
	}

	weights := make([]decimal.Decimal, 0, len(req.Items))
	for _, item := range req.Items {
		if item.Weight.IsNegative() {
			return nil, fmt.Errorf("%w: loss weights cannot be negative", ErrValidation)
		}
		weights = append(weights, item.Weight)
	}

	ullage, err := ComputeUllage(req.SampleWeight, weights)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to start database transaction: %w", err)
	}
	defer tx.Rollback()

	itemCtx, err := s.receivingRepo.GetItemContext(tx, tenantID, req.ReceivingItemID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: item ID %d", ErrReceivingItemNotFound, req.ReceivingItemID)
		}
		return nil, fmt.Errorf("failed to load receiving item %d: %w", req.ReceivingItemID, err)
	}

	// Approved and rejected are terminal. Re-pricing an item of an approved
	// transaction would flip it back to inspected and let a second approval
	// deposit the stock and post the balance again.
	if models.IsTerminalReceivingStatus(itemCtx.TxStatus) {
		return nil, fmt.Errorf("%w: transaction ID %d is %s and can no longer be inspected",
			ErrValidation, itemCtx.TransactionID, itemCtx.TxStatus)
	}

	netWeight := ComputeNetWeight(itemCtx.GrossWeight, ullage.UllagePercentage)
	effectivePrice, err := ComputeEffectiveUnitPrice(itemCtx.GrossWeight, itemCtx.UnitPrice, itemCtx.ReceivingItem.LogisticsCost, netWeight)
	if err != nil {
		// A zero net weight means the whole sample was loss; the item cannot
		// be priced and the inspection is rolled back.
		return nil, err
	}

	inspection := &models.Inspection{
		TenantID:          tenantID,
		ReceivingItemID:   req.ReceivingItemID,
		SampleWeight:      req.SampleWeight,
		TotalUllageWeight: ullage.TotalUllageWeight,
		UllagePercentage:  ullage.UllagePercentage,
	}
	inspectionID, err := s.inspectionRepo.CreateInspection(tx, inspection)
	if err != nil {
		return nil, fmt.Errorf("failed to create inspection record: %w", err)
	}

	for _, itemReq := range req.Items {
		item := &models.InspectionItem{
			InspectionID: inspectionID,
			UllageTypeID: itemReq.UllageTypeID,
			Weight:       itemReq.Weight,
		}
		if _, err := s.inspectionRepo.CreateInspectionItem(tx, item); err != nil {
			return nil, fmt.Errorf("failed to create inspection item (ullage_type_id: %d): %w", itemReq.UllageTypeID, err)
		}
		inspection.Items = append(inspection.Items, *item)
	}

	if err := s.receivingRepo.UpdateItemInspection(tx, req.ReceivingItemID, netWeight, effectivePrice); err != nil {
		return nil, fmt.Errorf("failed to record net weight on receiving item %d: %w", req.ReceivingItemID, err)
	}

	// All-items-inspected check: once no sibling is missing a net weight,
	// the transaction total is recomputed from effective figures and the
	// status advances to inspected.
	uninspected, err := s.receivingRepo.CountUninspectedItems(tx, itemCtx.TransactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to check inspection completeness for transaction %d: %w", itemCtx.TransactionID, err)
	}
	if uninspected == 0 {
		effectiveTotal, err := s.receivingRepo.SumEffectiveTotal(tx, itemCtx.TransactionID)
		if err != nil {
			return nil, fmt.Errorf("failed to recompute total for transaction %d: %w", itemCtx.TransactionID, err)
		}
		newTotal := effectiveTotal.Add(itemCtx.TxLogistics)
		err = s.receivingRepo.UpdateStatusAndTotal(tx, itemCtx.TransactionID, models.ReceivingStatusInspected, newTotal,
			models.ReceivingStatusPending, models.ReceivingStatusInspected)
		if err != nil {
			return nil, fmt.Errorf("failed to mark transaction %d inspected: %w", itemCtx.TransactionID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit inspection transaction: %w", err)
	}
	return inspection, nil
}

func (s *inspectionService) GetInspectionsByReceivingItemID(tenantID, receivingItemID int64) ([]models.Inspection, error) {
	inspections, err := s.inspectionRepo.GetInspectionsByReceivingItemID(tenantID, receivingItemID)
	if err != nil {
		return nil, fmt.Errorf("failed to get inspections for receiving item %d: %w", receivingItemID, err)
	}
	return inspections, nil
}

func (s *inspectionService) GetInspectionHistory(tenantID int64) ([]models.InspectionHistoryRow, error) {
	history, err := s.inspectionRepo.GetInspectionHistory(tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to get inspection history: %w", err)
	}
	return history, nil
}
