package services

import (
	"database/sql"
	"errors"
	"fmt"

	"scrapyard_backend/internal/models"
	"scrapyard_backend/internal/repositories"

	"github.com/shopspring/decimal"
)

var ErrSellingNotFound = errors.New("selling transaction not found")

const sellingPaymentMethod = "Sale"

// CreateSellingItemRequest is one material line in a new sale.
type CreateSellingItemRequest struct {
	MaterialID int64           `json:"material_id" binding:"required"`
	Quantity   decimal.Decimal `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
}

// CreateSellingRequest is used for creating a new selling transaction.
type CreateSellingRequest struct {
	PartnerID int64                      `json:"partner_id" binding:"required"`
	Notes     string                     `json:"notes"`
	Items     []CreateSellingItemRequest `json:"items" binding:"required"`
}

// SellingService creates sales: availability pre-flight, FIFO stock
// depletion, balance and ledger posting, all in one database transaction.
type SellingService interface {
	CreateSelling(tenantID int64, req CreateSellingRequest) (*models.SellingTransaction, error)
	GetSellings(tenantID int64) ([]models.SellingTransaction, error)
	GetSellingByID(tenantID, id int64) (*models.SellingTransaction, error)
}

type sellingService struct {
	sellingRepo  repositories.SellingRepository
	materialRepo repositories.MaterialRepository
	stockService StockService
	partnerRepo  repositories.PartnerRepository
	moneyRepo    repositories.MoneyRepository
	db           *sql.DB
}

// NewSellingService creates a new instance of SellingService.
func NewSellingService(
	sr repositories.SellingRepository,
	mr repositories.MaterialRepository,
	ss StockService,
	pr repositories.PartnerRepository,
	moneyRepo repositories.MoneyRepository,
	db *sql.DB,
) SellingService {
	return &sellingService{
		sellingRepo:  sr,
		materialRepo: mr,
		stockService: ss,
		partnerRepo:  pr,
		moneyRepo:    moneyRepo,
		db:           db,
	}
}

func (s *sellingService) CreateSelling(tenantID int64, req CreateSellingRequest) (*models.SellingTransaction, error) {
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: a selling transaction needs at least one item", ErrValidation)
	}
	for _, item := range req.Items {
		if item.Quantity.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: quantity for material ID %d must be positive", ErrValidation, item.MaterialID)
		}
		if item.UnitPrice.IsNegative() {
			return nil, fmt.Errorf("%w: unit price for material ID %d cannot be negative", ErrValidation, item.MaterialID)
		}
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to start database transaction: %w", err)
	}
	defer tx.Rollback()

	// Pre-flight: every line must be coverable before anything is written,
	// so a shortfall on the last line cannot leave earlier depletions behind.
	totalAmount := decimal.Zero
	for _, item := range req.Items {
		available, err := s.stockService.GetAvailableQuantity(tx, tenantID, item.MaterialID)
		if err != nil {
			return nil, err
		}
		if available.LessThan(item.Quantity) {
			materialName := fmt.Sprintf("material ID %d", item.MaterialID)
			if material, merr := s.materialRepo.GetMaterialByID(tenantID, item.MaterialID); merr == nil {
				materialName = material.ItemName
			}
			return nil, fmt.Errorf("%w: %s (requested %s, available %s)",
				ErrInsufficientStock, materialName, item.Quantity.String(), available.String())
		}
		totalAmount = totalAmount.Add(item.Quantity.Mul(item.UnitPrice))
	}

	transaction := &models.SellingTransaction{
		TenantID:    tenantID,
		PartnerID:   req.PartnerID,
		TotalAmount: totalAmount,
		Notes:       models.NewNullString(req.Notes),
	}
	transactionID, err := s.sellingRepo.CreateTransaction(tx, transaction)
	if err != nil {
		return nil, fmt.Errorf("failed to create selling transaction record: %w", err)
	}

	for _, itemReq := range req.Items {
		item := &models.SellingItem{
			SellingTransactionID: transactionID,
			MaterialID:           itemReq.MaterialID,
			Quantity:             itemReq.Quantity,
			UnitPrice:            itemReq.UnitPrice,
			TotalAmount:          itemReq.Quantity.Mul(itemReq.UnitPrice),
		}
		if _, err := s.sellingRepo.CreateItem(tx, item); err != nil {
			return nil, fmt.Errorf("failed to create selling item (material_id: %d): %w", itemReq.MaterialID, err)
		}

		if _, err := s.stockService.Deplete(tx, tenantID, itemReq.MaterialID, itemReq.Quantity); err != nil {
			return nil, fmt.Errorf("failed to deplete stock for material %d: %w", itemReq.MaterialID, err)
		}
	}

	// The sale raises the receivable from the customer; the mirrored
	// receipt row keeps the ledger consistent with the balance.
	ledgerRow := &models.MoneyTransaction{
		TenantID:      tenantID,
		PartnerID:     req.PartnerID,
		Type:          models.MoneyTypeReceipt,
		Amount:        totalAmount,
		PaymentMethod: models.NewNullString(sellingPaymentMethod),
		Notes:         models.NewNullString(fmt.Sprintf("Sale #%d", transactionID)),
	}
	if err := PostBalanceChange(tx, s.partnerRepo, s.moneyRepo, ledgerRow, totalAmount); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit selling transaction: %w", err)
	}

	return s.GetSellingByID(tenantID, transactionID)
}

func (s *sellingService) GetSellings(tenantID int64) ([]models.SellingTransaction, error) {
	transactions, err := s.sellingRepo.GetTransactions(tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to get selling transactions: %w", err)
	}
	return transactions, nil
}

func (s *sellingService) GetSellingByID(tenantID, id int64) (*models.SellingTransaction, error) {
	transaction, err := s.sellingRepo.GetTransactionByID(tenantID, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrSellingNotFound
		}
		return nil, fmt.Errorf("failed to get selling transaction: %w", err)
	}

	items, err := s.sellingRepo.GetItemsByTransactionID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get selling items for transaction %d: %w", id, err)
	}
	transaction.Items = items
	return transaction, nil
}
