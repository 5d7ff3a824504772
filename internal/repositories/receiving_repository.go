package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"scrapyard_backend/internal/models"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// ReceivingRepository defines the interface for receiving-related database
// operations. Status transitions are guarded at the SQL level: the UPDATE
// only matches rows whose current status allows the transition, so a zero
// rows-affected result means "not found or wrong status".
type ReceivingRepository interface {
	CreateTransaction(executor SQLExecutor, tx *models.ReceivingTransaction) (int64, error)
	CreateItem(executor SQLExecutor, item *models.ReceivingItem) (int64, error)

	GetTransactionByID(tenantID, id int64) (*models.ReceivingTransaction, error)
	GetTransactions(tenantID int64, status *string) ([]models.ReceivingTransaction, error)
	GetItemsByTransactionID(executor SQLExecutor, transactionID int64) ([]models.ReceivingItem, error)

	// GetTransactionWithStatus reads a transaction inside the caller's
	// transaction with a row lock, matching only the given status.
	GetTransactionWithStatus(executor SQLExecutor, tenantID, id int64, status string) (*models.ReceivingTransaction, error)

	// GetItemContext loads a receiving item joined with the parent
	// transaction fields the inspection workflow needs, tenant-checked.
	GetItemContext(executor SQLExecutor, tenantID, itemID int64) (*models.ReceivingItemContext, error)

	UpdateItemInspection(executor SQLExecutor, itemID int64, netWeight, effectiveUnitPrice decimal.Decimal) error
	CountUninspectedItems(executor SQLExecutor, transactionID int64) (int, error)
	SumEffectiveTotal(executor SQLExecutor, transactionID int64) (decimal.Decimal, error)

	UpdateStatus(executor SQLExecutor, tenantID, id int64, newStatus string, allowedFrom ...string) error
	UpdateStatusAndTotal(executor SQLExecutor, transactionID int64, newStatus string, totalAmount decimal.Decimal, allowedFrom ...string) error

	DeleteItemsByTransactionID(executor SQLExecutor, transactionID int64) (int64, error)
	DeletePendingTransaction(executor SQLExecutor, tenantID, id int64) error
}

type receivingRepository struct {
	db *sql.DB
}

// NewReceivingRepository creates a new instance of ReceivingRepository.
func NewReceivingRepository(db *sql.DB) ReceivingRepository {
	return &receivingRepository{db: db}
}

func (r *receivingRepository) CreateTransaction(executor SQLExecutor, tx *models.ReceivingTransaction) (int64, error) {
	query := `INSERT INTO receiving_transactions
	            (tenant_id, partner_id, doc_date, plate_no_1, plate_no_2, is_reported,
	             logistics_cost, total_amount, status, notes)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	          RETURNING id, transaction_date`
	err := executor.QueryRow(query,
		tx.TenantID, tx.PartnerID, tx.DocDate, tx.PlateNo1, tx.PlateNo2, tx.IsReported,
		tx.LogisticsCost, tx.TotalAmount, tx.Status, tx.Notes,
	).Scan(&tx.ID, &tx.TransactionDate)
	if err != nil {
		return 0, fmt.Errorf("%w: creating receiving transaction: %v", ErrDatabaseError, err)
	}
	return tx.ID, nil
}

func (r *receivingRepository) CreateItem(executor SQLExecutor, item *models.ReceivingItem) (int64, error) {
	query := `INSERT INTO receiving_items
	            (receiving_transaction_id, material_id, gross_weight, unit_price, logistics_cost, total_amount)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING id`
	err := executor.QueryRow(query,
		item.ReceivingTransactionID, item.MaterialID, item.GrossWeight,
		item.UnitPrice, item.LogisticsCost, item.TotalAmount,
	).Scan(&item.ID)
	if err != nil {
		return 0, fmt.Errorf("%w: creating receiving item: %v", ErrDatabaseError, err)
	}
	return item.ID, nil
}

func (r *receivingRepository) GetTransactionByID(tenantID, id int64) (*models.ReceivingTransaction, error) {
	tx := &models.ReceivingTransaction{}
	query := `SELECT rt.id, rt.tenant_id, rt.partner_id, rt.doc_date, rt.plate_no_1, rt.plate_no_2,
	                 rt.is_reported, rt.logistics_cost, rt.total_amount, rt.status, rt.transaction_date, rt.notes,
	                 p.name AS partner_name
	          FROM receiving_transactions rt
	          JOIN partners p ON rt.partner_id = p.id
	          WHERE rt.id = $1 AND rt.tenant_id = $2`
	err := r.db.QueryRow(query, id, tenantID).Scan(
		&tx.ID, &tx.TenantID, &tx.PartnerID, &tx.DocDate, &tx.PlateNo1, &tx.PlateNo2,
		&tx.IsReported, &tx.LogisticsCost, &tx.TotalAmount, &tx.Status, &tx.TransactionDate, &tx.Notes,
		&tx.PartnerName,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting receiving transaction by ID %d: %v", ErrDatabaseError, id, err)
	}
	return tx, nil
}

func (r *receivingRepository) GetTransactions(tenantID int64, status *string) ([]models.ReceivingTransaction, error) {
	transactions := []models.ReceivingTransaction{}
	query := `SELECT rt.id, rt.tenant_id, rt.partner_id, rt.doc_date, rt.plate_no_1, rt.plate_no_2,
	                 rt.is_reported, rt.logistics_cost, rt.total_amount, rt.status, rt.transaction_date, rt.notes,
	                 p.name AS partner_name
	          FROM receiving_transactions rt
	          JOIN partners p ON rt.partner_id = p.id
	          WHERE rt.tenant_id = $1`
	args := []interface{}{tenantID}
	if status != nil && *status != "" {
		query += ` AND rt.status = $2`
		args = append(args, *status)
	}
	query += ` ORDER BY rt.transaction_date DESC`

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: querying receiving transactions: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var tx models.ReceivingTransaction
		if err := rows.Scan(
			&tx.ID, &tx.TenantID, &tx.PartnerID, &tx.DocDate, &tx.PlateNo1, &tx.PlateNo2,
			&tx.IsReported, &tx.LogisticsCost, &tx.TotalAmount, &tx.Status, &tx.TransactionDate, &tx.Notes,
			&tx.PartnerName,
		); err != nil {
			return nil, fmt.Errorf("%w: scanning receiving transaction: %v", ErrDatabaseError, err)
		}
		transactions = append(transactions, tx)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating receiving transactions: %v", ErrDatabaseError, err)
	}
	return transactions, nil
}

func (r *receivingRepository) GetItemsByTransactionID(executor SQLExecutor, transactionID int64) ([]models.ReceivingItem, error) {
	items := []models.ReceivingItem{}
	query := `SELECT ri.id, ri.receiving_transaction_id, ri.material_id, ri.gross_weight, ri.net_weight,
	                 ri.unit_price, ri.logistics_cost, ri.effective_unit_price, ri.total_amount,
	                 m.item_name AS material_name, m.unit_of_measure
	          FROM receiving_items ri
	          JOIN materials m ON ri.material_id = m.id
	          WHERE ri.receiving_transaction_id = $1
	          ORDER BY ri.id`
	rows, err := executor.Query(query, transactionID)
	if err != nil {
		return nil, fmt.Errorf("%w: querying receiving items: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var item models.ReceivingItem
		if err := rows.Scan(
			&item.ID, &item.ReceivingTransactionID, &item.MaterialID, &item.GrossWeight, &item.NetWeight,
			&item.UnitPrice, &item.LogisticsCost, &item.EffectiveUnitPrice, &item.TotalAmount,
			&item.MaterialName, &item.UnitOfMeasure,
		); err != nil {
			return nil, fmt.Errorf("%w: scanning receiving item: %v", ErrDatabaseError, err)
		}
		items = append(items, item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating receiving items: %v", ErrDatabaseError, err)
	}
	return items, nil
}

func (r *receivingRepository) GetTransactionWithStatus(executor SQLExecutor, tenantID, id int64, status string) (*models.ReceivingTransaction, error) {
	tx := &models.ReceivingTransaction{}
	query := `SELECT id, tenant_id, partner_id, doc_date, plate_no_1, plate_no_2,
	                 is_reported, logistics_cost, total_amount, status, transaction_date, notes
	          FROM receiving_transactions
	          WHERE id = $1 AND tenant_id = $2 AND status = $3
	          FOR UPDATE`
	err := executor.QueryRow(query, id, tenantID, status).Scan(
		&tx.ID, &tx.TenantID, &tx.PartnerID, &tx.DocDate, &tx.PlateNo1, &tx.PlateNo2,
		&tx.IsReported, &tx.LogisticsCost, &tx.TotalAmount, &tx.Status, &tx.TransactionDate, &tx.Notes,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: locking receiving transaction ID %d: %v", ErrDatabaseError, id, err)
	}
	return tx, nil
}

func (r *receivingRepository) GetItemContext(executor SQLExecutor, tenantID, itemID int64) (*models.ReceivingItemContext, error) {
	ctx := &models.ReceivingItemContext{}
	query := `SELECT ri.id, ri.receiving_transaction_id, ri.material_id, ri.gross_weight, ri.net_weight,
	                 ri.unit_price, ri.logistics_cost, ri.effective_unit_price, ri.total_amount,
	                 rt.tenant_id, rt.partner_id, rt.id AS transaction_id, rt.status AS tx_status,
	                 rt.logistics_cost AS tx_logistics_cost
	          FROM receiving_items ri
	          JOIN receiving_transactions rt ON ri.receiving_transaction_id = rt.id
	          WHERE ri.id = $1 AND rt.tenant_id = $2`
	err := executor.QueryRow(query, itemID, tenantID).Scan(
		&ctx.ReceivingItem.ID, &ctx.ReceivingTransactionID, &ctx.MaterialID, &ctx.GrossWeight, &ctx.NetWeight,
		&ctx.UnitPrice, &ctx.ReceivingItem.LogisticsCost, &ctx.EffectiveUnitPrice, &ctx.ReceivingItem.TotalAmount,
		&ctx.TenantID, &ctx.PartnerID, &ctx.TransactionID, &ctx.TxStatus, &ctx.TxLogistics,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting receiving item context for ID %d: %v", ErrDatabaseError, itemID, err)
	}
	return ctx, nil
}

func (r *receivingRepository) UpdateItemInspection(executor SQLExecutor, itemID int64, netWeight, effectiveUnitPrice decimal.Decimal) error {
	query := `UPDATE receiving_items SET net_weight = $1, effective_unit_price = $2 WHERE id = $3`
	result, err := executor.Exec(query, netWeight, effectiveUnitPrice, itemID)
	if err != nil {
		return fmt.Errorf("%w: updating inspection results for item ID %d: %v", ErrDatabaseError, itemID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *receivingRepository) CountUninspectedItems(executor SQLExecutor, transactionID int64) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM receiving_items
	          WHERE receiving_transaction_id = $1 AND net_weight IS NULL`
	if err := executor.QueryRow(query, transactionID).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: counting uninspected items for transaction ID %d: %v", ErrDatabaseError, transactionID, err)
	}
	return count, nil
}

func (r *receivingRepository) SumEffectiveTotal(executor SQLExecutor, transactionID int64) (decimal.Decimal, error) {
	var total decimal.Decimal
	query := `SELECT COALESCE(SUM(net_weight * effective_unit_price), 0)
	          FROM receiving_items WHERE receiving_transaction_id = $1`
	if err := executor.QueryRow(query, transactionID).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("%w: summing effective totals for transaction ID %d: %v", ErrDatabaseError, transactionID, err)
	}
	return total, nil
}

func (r *receivingRepository) UpdateStatus(executor SQLExecutor, tenantID, id int64, newStatus string, allowedFrom ...string) error {
	query := `UPDATE receiving_transactions SET status = $1
	          WHERE id = $2 AND tenant_id = $3 AND status = ANY($4)`
	result, err := executor.Exec(query, newStatus, id, tenantID, pq.Array(allowedFrom))
	if err != nil {
		return fmt.Errorf("%w: updating status of receiving transaction ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *receivingRepository) UpdateStatusAndTotal(executor SQLExecutor, transactionID int64, newStatus string, totalAmount decimal.Decimal, allowedFrom ...string) error {
	query := `UPDATE receiving_transactions SET status = $1, total_amount = $2
	          WHERE id = $3 AND status = ANY($4)`
	result, err := executor.Exec(query, newStatus, totalAmount, transactionID, pq.Array(allowedFrom))
	if err != nil {
		return fmt.Errorf("%w: updating status and total of receiving transaction ID %d: %v", ErrDatabaseError, transactionID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *receivingRepository) DeleteItemsByTransactionID(executor SQLExecutor, transactionID int64) (int64, error) {
	result, err := executor.Exec(`DELETE FROM receiving_items WHERE receiving_transaction_id = $1`, transactionID)
	if err != nil {
		return 0, fmt.Errorf("%w: deleting receiving items for transaction ID %d: %v", ErrDatabaseError, transactionID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	return rowsAffected, nil
}

func (r *receivingRepository) DeletePendingTransaction(executor SQLExecutor, tenantID, id int64) error {
	query := `DELETE FROM receiving_transactions
	          WHERE id = $1 AND tenant_id = $2 AND status = $3`
	result, err := executor.Exec(query, id, tenantID, models.ReceivingStatusPending)
	if err != nil {
		return fmt.Errorf("%w: deleting receiving transaction ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
