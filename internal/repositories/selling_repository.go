package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"scrapyard_backend/internal/models"
)

// SellingRepository defines the interface for selling-related database operations.
type SellingRepository interface {
	CreateTransaction(executor SQLExecutor, tx *models.SellingTransaction) (int64, error)
	CreateItem(executor SQLExecutor, item *models.SellingItem) (int64, error)
	GetTransactionByID(tenantID, id int64) (*models.SellingTransaction, error)
	GetTransactions(tenantID int64) ([]models.SellingTransaction, error)
	GetItemsByTransactionID(transactionID int64) ([]models.SellingItem, error)
}

type sellingRepository struct {
	db *sql.DB
}

// NewSellingRepository creates a new instance of SellingRepository.
func NewSellingRepository(db *sql.DB) SellingRepository {
	return &sellingRepository{db: db}
}

func (r *sellingRepository) CreateTransaction(executor SQLExecutor, tx *models.SellingTransaction) (int64, error) {
	query := `INSERT INTO selling_transactions (tenant_id, partner_id, total_amount, notes)
	          VALUES ($1, $2, $3, $4)
	          RETURNING id, transaction_date`
	err := executor.QueryRow(query, tx.TenantID, tx.PartnerID, tx.TotalAmount, tx.Notes).
		Scan(&tx.ID, &tx.TransactionDate)
	if err != nil {
		return 0, fmt.Errorf("%w: creating selling transaction: %v", ErrDatabaseError, err)
	}
	return tx.ID, nil
}

func (r *sellingRepository) CreateItem(executor SQLExecutor, item *models.SellingItem) (int64, error) {
	query := `INSERT INTO selling_items (selling_transaction_id, material_id, quantity, unit_price, total_amount)
	          VALUES ($1, $2, $3, $4, $5)
	          RETURNING id`
	err := executor.QueryRow(query,
		item.SellingTransactionID, item.MaterialID, item.Quantity, item.UnitPrice, item.TotalAmount,
	).Scan(&item.ID)
	if err != nil {
		return 0, fmt.Errorf("%w: creating selling item: %v", ErrDatabaseError, err)
	}
	return item.ID, nil
}

func (r *sellingRepository) GetTransactionByID(tenantID, id int64) (*models.SellingTransaction, error) {
	tx := &models.SellingTransaction{}
	query := `SELECT st.id, st.tenant_id, st.partner_id, st.total_amount, st.transaction_date, st.notes,
	                 p.name AS partner_name
	          FROM selling_transactions st
	          JOIN partners p ON st.partner_id = p.id
	          WHERE st.id = $1 AND st.tenant_id = $2`
	err := r.db.QueryRow(query, id, tenantID).Scan(
		&tx.ID, &tx.TenantID, &tx.PartnerID, &tx.TotalAmount, &tx.TransactionDate, &tx.Notes,
		&tx.PartnerName,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting selling transaction by ID %d: %v", ErrDatabaseError, id, err)
	}
	return tx, nil
}

func (r *sellingRepository) GetTransactions(tenantID int64) ([]models.SellingTransaction, error) {
	transactions := []models.SellingTransaction{}
	query := `SELECT st.id, st.tenant_id, st.partner_id, st.total_amount, st.transaction_date, st.notes,
	                 p.name AS partner_name
	          FROM selling_transactions st
	          JOIN partners p ON st.partner_id = p.id
	          WHERE st.tenant_id = $1
	          ORDER BY st.transaction_date DESC`
	rows, err := r.db.Query(query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("%w: querying selling transactions: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var tx models.SellingTransaction
		if err := rows.Scan(
			&tx.ID, &tx.TenantID, &tx.PartnerID, &tx.TotalAmount, &tx.TransactionDate, &tx.Notes,
			&tx.PartnerName,
		); err != nil {
			return nil, fmt.Errorf("%w: scanning selling transaction: %v", ErrDatabaseError, err)
		}
		transactions = append(transactions, tx)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating selling transactions: %v", ErrDatabaseError, err)
	}
	return transactions, nil
}

func (r *sellingRepository) GetItemsByTransactionID(transactionID int64) ([]models.SellingItem, error) {
	items := []models.SellingItem{}
	query := `SELECT si.id, si.selling_transaction_id, si.material_id, si.quantity, si.unit_price, si.total_amount,
	                 m.item_name AS material_name, m.unit_of_measure
	          FROM selling_items si
	          JOIN materials m ON si.material_id = m.id
	          WHERE si.selling_transaction_id = $1
	          ORDER BY si.id`
	rows, err := r.db.Query(query, transactionID)
	if err != nil {
		return nil, fmt.Errorf("%w: querying selling items: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var item models.SellingItem
		if err := rows.Scan(
			&item.ID, &item.SellingTransactionID, &item.MaterialID, &item.Quantity, &item.UnitPrice, &item.TotalAmount,
			&item.MaterialName, &item.UnitOfMeasure,
		); err != nil {
			return nil, fmt.Errorf("%w: scanning selling item: %v", ErrDatabaseError, err)
		}
		items = append(items, item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating selling items: %v", ErrDatabaseError, err)
	}
	return items, nil
}
