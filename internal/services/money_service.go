package services

import (
	"database/sql"
	"errors"
	"fmt"

	"scrapyard_backend/internal/models"
	"scrapyard_backend/internal/repositories"

	"github.com/shopspring/decimal"
)

var ErrPartnerNotFound = errors.New("partner not found")

// CreateMoneyTransactionRequest is the input for a manual ledger entry.
type CreateMoneyTransactionRequest struct {
	PartnerID     int64           `json:"partner_id" binding:"required"`
	Type          string          `json:"type" binding:"required"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod string          `json:"payment_method"`
	Notes         string          `json:"notes"`
}

// MoneyService exposes the money ledger: manual entries plus reads.
// The approval and selling workflows post to the ledger through
// PostBalanceChange rather than through this service.
type MoneyService interface {
	CreateMoneyTransaction(tenantID int64, req CreateMoneyTransactionRequest) (*models.MoneyTransaction, error)
	GetMoneyTransactions(tenantID int64) ([]models.MoneyTransaction, error)
	GetMoneyTransactionsByPartner(tenantID, partnerID int64) ([]models.MoneyTransaction, error)
}

type moneyService struct {
	moneyRepo   repositories.MoneyRepository
	partnerRepo repositories.PartnerRepository
	db          *sql.DB
}

// NewMoneyService creates a new instance of MoneyService.
func NewMoneyService(mr repositories.MoneyRepository, pr repositories.PartnerRepository, db *sql.DB) MoneyService {
	return &moneyService{moneyRepo: mr, partnerRepo: pr, db: db}
}

// PostBalanceChange is the single helper every balance writer goes through:
// it applies the signed delta to the partner's running balance and inserts
// the mirrored ledger row, both on the caller's executor. Callers must pass
// a *sql.Tx so the pair commits or rolls back together.
func PostBalanceChange(
	executor repositories.SQLExecutor,
	partnerRepo repositories.PartnerRepository,
	moneyRepo repositories.MoneyRepository,
	mt *models.MoneyTransaction,
	delta decimal.Decimal,
) error {
	if err := partnerRepo.AdjustBalance(executor, mt.TenantID, mt.PartnerID, delta); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("%w: partner ID %d", ErrPartnerNotFound, mt.PartnerID)
		}
		return fmt.Errorf("failed to adjust balance for partner %d: %w", mt.PartnerID, err)
	}
	if _, err := moneyRepo.CreateMoneyTransaction(executor, mt); err != nil {
		return fmt.Errorf("failed to record ledger entry for partner %d: %w", mt.PartnerID, err)
	}
	return nil
}

func (s *moneyService) CreateMoneyTransaction(tenantID int64, req CreateMoneyTransactionRequest) (*models.MoneyTransaction, error) {
	if !models.IsValidMoneyType(req.Type) {
		return nil, fmt.Errorf("%w: money transaction type must be '%s' or '%s'", ErrValidation, models.MoneyTypePayment, models.MoneyTypeReceipt)
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: amount must be positive", ErrValidation)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to start database transaction: %w", err)
	}
	defer tx.Rollback()

	mt := &models.MoneyTransaction{
		TenantID:      tenantID,
		PartnerID:     req.PartnerID,
		Type:          req.Type,
		Amount:        req.Amount,
		PaymentMethod: models.NewNullString(req.PaymentMethod),
		Notes:         models.NewNullString(req.Notes),
	}

	// A manual entry settles debt regardless of direction: both payment and
	// receipt decrease the partner's balance. Automatic postings from the
	// approval and selling workflows increase it instead.
	if err := PostBalanceChange(tx, s.partnerRepo, s.moneyRepo, mt, req.Amount.Neg()); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit money transaction: %w", err)
	}
	return mt, nil
}

func (s *moneyService) GetMoneyTransactions(tenantID int64) ([]models.MoneyTransaction, error) {
	transactions, err := s.moneyRepo.GetMoneyTransactions(tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to get money transactions: %w", err)
	}
	return transactions, nil
}

func (s *moneyService) GetMoneyTransactionsByPartner(tenantID, partnerID int64) ([]models.MoneyTransaction, error) {
	transactions, err := s.moneyRepo.GetMoneyTransactionsByPartner(tenantID, partnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get money transactions for partner %d: %w", partnerID, err)
	}
	return transactions, nil
}
