package repositories

import (
	"database/sql"
	"fmt"

	"scrapyard_backend/internal/models"
)

// MoneyRepository defines the interface for the append-only money ledger.
// There are no update or delete methods: ledger rows are immutable.
type MoneyRepository interface {
	CreateMoneyTransaction(executor SQLExecutor, mt *models.MoneyTransaction) (int64, error)
	GetMoneyTransactions(tenantID int64) ([]models.MoneyTransaction, error)
	GetMoneyTransactionsByPartner(tenantID, partnerID int64) ([]models.MoneyTransaction, error)
}

type moneyRepository struct {
	db *sql.DB
}

// NewMoneyRepository creates a new instance of MoneyRepository.
func NewMoneyRepository(db *sql.DB) MoneyRepository {
	return &moneyRepository{db: db}
}

func (r *moneyRepository) CreateMoneyTransaction(executor SQLExecutor, mt *models.MoneyTransaction) (int64, error) {
	query := `INSERT INTO money_transactions (tenant_id, partner_id, type, amount, payment_method, notes)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING id, transaction_date`
	err := executor.QueryRow(query,
		mt.TenantID, mt.PartnerID, mt.Type, mt.Amount, mt.PaymentMethod, mt.Notes,
	).Scan(&mt.ID, &mt.TransactionDate)
	if err != nil {
		return 0, fmt.Errorf("%w: creating money transaction: %v", ErrDatabaseError, err)
	}
	return mt.ID, nil
}

func (r *moneyRepository) GetMoneyTransactions(tenantID int64) ([]models.MoneyTransaction, error) {
	query := `SELECT mt.id, mt.tenant_id, mt.partner_id, mt.type, mt.amount, mt.payment_method, mt.notes, mt.transaction_date,
	                 p.name AS partner_name
	          FROM money_transactions mt
	          JOIN partners p ON mt.partner_id = p.id
	          WHERE mt.tenant_id = $1
	          ORDER BY mt.transaction_date DESC`
	return r.queryMoneyTransactions(query, tenantID)
}

func (r *moneyRepository) GetMoneyTransactionsByPartner(tenantID, partnerID int64) ([]models.MoneyTransaction, error) {
	query := `SELECT mt.id, mt.tenant_id, mt.partner_id, mt.type, mt.amount, mt.payment_method, mt.notes, mt.transaction_date,
	                 p.name AS partner_name
	          FROM money_transactions mt
	          JOIN partners p ON mt.partner_id = p.id
	          WHERE mt.tenant_id = $1 AND mt.partner_id = $2
	          ORDER BY mt.transaction_date DESC`
	return r.queryMoneyTransactions(query, tenantID, partnerID)
}

func (r *moneyRepository) queryMoneyTransactions(query string, args ...interface{}) ([]models.MoneyTransaction, error) {
	transactions := []models.MoneyTransaction{}
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: querying money transactions: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var mt models.MoneyTransaction
		if err := rows.Scan(
			&mt.ID, &mt.TenantID, &mt.PartnerID, &mt.Type, &mt.Amount,
			&mt.PaymentMethod, &mt.Notes, &mt.TransactionDate,
			&mt.PartnerName,
		); err != nil {
			return nil, fmt.Errorf("%w: scanning money transaction: %v", ErrDatabaseError, err)
		}
		transactions = append(transactions, mt)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating money transactions: %v", ErrDatabaseError, err)
	}
	return transactions, nil
}
