package services

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"scrapyard_backend/internal/models"
	"scrapyard_backend/internal/repositories"

	"github.com/shopspring/decimal"
)

var (
	ErrReceivingNotFound = errors.New("receiving transaction not found or not in the required status")
)

// Note text recorded on the automatic ledger row raised by an approval.
const approvalPaymentMethod = "Receiving approval"

// CreateReceivingItemRequest is one purchased line in a new receiving transaction.
type CreateReceivingItemRequest struct {
	MaterialID  int64           `json:"material_id" binding:"required"`
	GrossWeight decimal.Decimal `json:"gross_weight"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// CreateReceivingRequest is used for creating a new receiving transaction.
type CreateReceivingRequest struct {
	PartnerID     int64                        `json:"partner_id" binding:"required"`
	DocDate       *string                      `json:"doc_date"`
	PlateNo1      string                       `json:"plate_no_1"`
	PlateNo2      string                       `json:"plate_no_2"`
	IsReported    bool                         `json:"is_reported"`
	LogisticsCost decimal.Decimal              `json:"logistics_cost"`
	Notes         string                       `json:"notes"`
	Items         []CreateReceivingItemRequest `json:"items" binding:"required"`
}

// ReceivingService drives the receiving state machine:
// pending -> inspected -> approved, pending|inspected -> rejected,
// pending -> deleted. The inspected transition is emergent and owned by
// the inspection service.
type ReceivingService interface {
	CreateReceiving(tenantID int64, req CreateReceivingRequest) (*models.ReceivingTransaction, error)
	GetReceivings(tenantID int64, status *string) ([]models.ReceivingTransaction, error)
	GetReceivingByID(tenantID, id int64) (*models.ReceivingTransaction, error)
	ApproveReceiving(tenantID, id int64) error
	RejectReceiving(tenantID, id int64) error
	DeleteReceiving(tenantID, id int64) error
}

type receivingService struct {
	receivingRepo repositories.ReceivingRepository
	stockRepo     repositories.StockRepository
	partnerRepo   repositories.PartnerRepository
	moneyRepo     repositories.MoneyRepository
	db            *sql.DB
}

// NewReceivingService creates a new instance of ReceivingService.
func NewReceivingService(
	rr repositories.ReceivingRepository,
	sr repositories.StockRepository,
	pr repositories.PartnerRepository,
	mr repositories.MoneyRepository,
	db *sql.DB,
) ReceivingService {
	return &receivingService{
		receivingRepo: rr,
		stockRepo:     sr,
		partnerRepo:   pr,
		moneyRepo:     mr,
		db:            db,
	}
}

func (s *receivingService) CreateReceiving(tenantID int64, req CreateReceivingRequest) (*models.ReceivingTransaction, error) {
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: a receiving transaction needs at least one item", ErrValidation)
	}
	for _, item := range req.Items {
		if item.GrossWeight.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: gross weight for material ID %d must be positive", ErrValidation, item.MaterialID)
		}
		if item.UnitPrice.IsNegative() {
			return nil, fmt.Errorf("%w: unit price for material ID %d cannot be negative", ErrValidation, item.MaterialID)
		}
	}
	if req.LogisticsCost.IsNegative() {
		return nil, fmt.Errorf("%w: logistics cost cannot be negative", ErrValidation)
	}

	var docDate *time.Time
	if req.DocDate != nil && *req.DocDate != "" {
		parsed, err := time.Parse("2006-01-02", *req.DocDate)
		if err != nil {
			return nil, fmt.Errorf("%w: doc_date must be in YYYY-MM-DD format", ErrValidation)
		}
		docDate = &parsed
	}

	// Provisional total: raw costs plus logistics. Recomputed from effective
	// prices once the last item is inspected.
	totalAmount := req.LogisticsCost
	for _, item := range req.Items {
		totalAmount = totalAmount.Add(item.GrossWeight.Mul(item.UnitPrice))
	}
	logisticsShare := req.LogisticsCost.DivRound(decimal.NewFromInt(int64(len(req.Items))), priceScale)

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to start database transaction: %w", err)
	}
	defer tx.Rollback()

	transaction := &models.ReceivingTransaction{
		TenantID:      tenantID,
		PartnerID:     req.PartnerID,
		DocDate:       docDate,
		PlateNo1:      models.NewNullString(req.PlateNo1),
		PlateNo2:      models.NewNullString(req.PlateNo2),
		IsReported:    req.IsReported,
		LogisticsCost: req.LogisticsCost,
		TotalAmount:   totalAmount,
		Status:        models.ReceivingStatusPending,
		Notes:         models.NewNullString(req.Notes),
	}
	transactionID, err := s.receivingRepo.CreateTransaction(tx, transaction)
	if err != nil {
		return nil, fmt.Errorf("failed to create receiving transaction record: %w", err)
	}

	for _, itemReq := range req.Items {
		item := &models.ReceivingItem{
			ReceivingTransactionID: transactionID,
			MaterialID:             itemReq.MaterialID,
			GrossWeight:            itemReq.GrossWeight,
			UnitPrice:              itemReq.UnitPrice,
			LogisticsCost:          logisticsShare,
			TotalAmount:            itemReq.GrossWeight.Mul(itemReq.UnitPrice),
		}
		if _, err := s.receivingRepo.CreateItem(tx, item); err != nil {
			return nil, fmt.Errorf("failed to create receiving item (material_id: %d): %w", itemReq.MaterialID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit receiving transaction: %w", err)
	}

	return s.GetReceivingByID(tenantID, transactionID)
}

func (s *receivingService) GetReceivings(tenantID int64, status *string) ([]models.ReceivingTransaction, error) {
	transactions, err := s.receivingRepo.GetTransactions(tenantID, status)
	if err != nil {
		return nil, fmt.Errorf("failed to get receiving transactions: %w", err)
	}
	return transactions, nil
}

func (s *receivingService) GetReceivingByID(tenantID, id int64) (*models.ReceivingTransaction, error) {
	transaction, err := s.receivingRepo.GetTransactionByID(tenantID, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrReceivingNotFound
		}
		return nil, fmt.Errorf("failed to get receiving transaction: %w", err)
	}

	items, err := s.receivingRepo.GetItemsByTransactionID(s.db, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get receiving items for transaction %d: %w", id, err)
	}
	transaction.Items = items
	return transaction, nil
}

// ApproveReceiving commits an inspected transaction into stock: each item is
// deposited at its effective price, the supplier balance rises by the
// transaction total, and the mirrored payment ledger row is written. One
// transaction end to end; any failure rolls back the deposits already made.
func (s *receivingService) ApproveReceiving(tenantID, id int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to start database transaction: %w", err)
	}
	defer tx.Rollback()

	transaction, err := s.receivingRepo.GetTransactionWithStatus(tx, tenantID, id, models.ReceivingStatusInspected)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("%w: transaction ID %d is not awaiting approval", ErrReceivingNotFound, id)
		}
		return fmt.Errorf("failed to load receiving transaction for approval: %w", err)
	}

	items, err := s.receivingRepo.GetItemsByTransactionID(tx, id)
	if err != nil {
		return fmt.Errorf("failed to load receiving items for approval: %w", err)
	}

	for _, item := range items {
		// Uninspected items fall back to raw figures; the transaction can
		// only be inspected once every item is, so this is a safety net for
		// data older than the inspection requirement.
		quantity := item.GrossWeight
		if item.NetWeight.Valid {
			quantity = item.NetWeight.Decimal
		}
		price := item.UnitPrice
		if item.EffectiveUnitPrice.Valid {
			price = item.EffectiveUnitPrice.Decimal
		}
		if err := s.stockRepo.Deposit(tx, tenantID, item.MaterialID, transaction.PartnerID, quantity, price); err != nil {
			return fmt.Errorf("failed to deposit stock for material %d: %w", item.MaterialID, err)
		}
	}

	ledgerRow := &models.MoneyTransaction{
		TenantID:      tenantID,
		PartnerID:     transaction.PartnerID,
		Type:          models.MoneyTypePayment,
		Amount:        transaction.TotalAmount,
		PaymentMethod: models.NewNullString(approvalPaymentMethod),
		Notes:         models.NewNullString(fmt.Sprintf("Receiving #%d approved", id)),
	}
	if err := PostBalanceChange(tx, s.partnerRepo, s.moneyRepo, ledgerRow, transaction.TotalAmount); err != nil {
		return err
	}

	if err := s.receivingRepo.UpdateStatus(tx, tenantID, id, models.ReceivingStatusApproved, models.ReceivingStatusInspected); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("%w: transaction ID %d", ErrReceivingNotFound, id)
		}
		return fmt.Errorf("failed to mark receiving transaction approved: %w", err)
	}

	return tx.Commit()
}

func (s *receivingService) RejectReceiving(tenantID, id int64) error {
	// Rejection is a status flip with no stock or balance effects; any
	// inspections already recorded stay on file.
	err := s.receivingRepo.UpdateStatus(s.db, tenantID, id, models.ReceivingStatusRejected,
		models.ReceivingStatusPending, models.ReceivingStatusInspected)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("%w: transaction ID %d cannot be rejected", ErrReceivingNotFound, id)
		}
		return fmt.Errorf("failed to reject receiving transaction: %w", err)
	}
	return nil
}

func (s *receivingService) DeleteReceiving(tenantID, id int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to start database transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := s.receivingRepo.GetTransactionWithStatus(tx, tenantID, id, models.ReceivingStatusPending); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("%w: transaction ID %d is not pending and cannot be deleted", ErrReceivingNotFound, id)
		}
		return fmt.Errorf("failed to load receiving transaction for deletion: %w", err)
	}

	if _, err := s.receivingRepo.DeleteItemsByTransactionID(tx, id); err != nil {
		return fmt.Errorf("failed to delete receiving items: %w", err)
	}
	if err := s.receivingRepo.DeletePendingTransaction(tx, tenantID, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("%w: transaction ID %d", ErrReceivingNotFound, id)
		}
		return fmt.Errorf("failed to delete receiving transaction: %w", err)
	}

	return tx.Commit()
}
