package repositories

import (
	"database/sql"
	"fmt"

	"scrapyard_backend/internal/models"

	"github.com/shopspring/decimal"
)

// StockRepository defines the interface for the stock ledger: one lot per
// (tenant, material, partner) with upsert deposits and locked FIFO reads.
type StockRepository interface {
	// Deposit is a single atomic upsert: quantity accumulates, the
	// effective unit price is overwritten by the newest deposit.
	Deposit(executor SQLExecutor, tenantID, materialID, partnerID int64, quantity, effectiveUnitPrice decimal.Decimal) error

	// GetLotsForUpdate reads all positive lots for a material oldest-first,
	// locking the rows for the duration of the caller's transaction.
	GetLotsForUpdate(executor SQLExecutor, tenantID, materialID int64) ([]models.StockLot, error)

	// DecrementLot deducts from a single lot and refreshes last_updated.
	DecrementLot(executor SQLExecutor, lotID int64, quantity decimal.Decimal) error

	GetAvailableQuantity(executor SQLExecutor, tenantID, materialID int64) (decimal.Decimal, error)
	GetSummary(tenantID int64) ([]models.StockSummaryRow, error)
	GetDetailByMaterial(tenantID, materialID int64) ([]models.StockLot, error)
}

type stockRepository struct {
	db *sql.DB
}

// NewStockRepository creates a new instance of StockRepository.
func NewStockRepository(db *sql.DB) StockRepository {
	return &stockRepository{db: db}
}

func (r *stockRepository) Deposit(executor SQLExecutor, tenantID, materialID, partnerID int64, quantity, effectiveUnitPrice decimal.Decimal) error {
	query := `INSERT INTO stock (tenant_id, material_id, partner_id, quantity, effective_unit_price)
	          VALUES ($1, $2, $3, $4, $5)
	          ON CONFLICT (tenant_id, material_id, partner_id)
	          DO UPDATE SET quantity = stock.quantity + EXCLUDED.quantity,
	                        effective_unit_price = EXCLUDED.effective_unit_price,
	                        last_updated = NOW()`
	_, err := executor.Exec(query, tenantID, materialID, partnerID, quantity, effectiveUnitPrice)
	if err != nil {
		return fmt.Errorf("%w: depositing stock for material ID %d, partner ID %d: %v", ErrDatabaseError, materialID, partnerID, err)
	}
	return nil
}

func (r *stockRepository) GetLotsForUpdate(executor SQLExecutor, tenantID, materialID int64) ([]models.StockLot, error) {
	lots := []models.StockLot{}
	query := `SELECT id, tenant_id, material_id, partner_id, quantity, effective_unit_price, last_updated
	          FROM stock
	          WHERE tenant_id = $1 AND material_id = $2 AND quantity > 0
	          ORDER BY last_updated ASC
	          FOR UPDATE`
	rows, err := executor.Query(query, tenantID, materialID)
	if err != nil {
		return nil, fmt.Errorf("%w: locking stock lots for material ID %d: %v", ErrDatabaseError, materialID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var lot models.StockLot
		if err := rows.Scan(
			&lot.ID, &lot.TenantID, &lot.MaterialID, &lot.PartnerID,
			&lot.Quantity, &lot.EffectiveUnitPrice, &lot.LastUpdated,
		); err != nil {
			return nil, fmt.Errorf("%w: scanning stock lot: %v", ErrDatabaseError, err)
		}
		lots = append(lots, lot)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating stock lots: %v", ErrDatabaseError, err)
	}
	return lots, nil
}

func (r *stockRepository) DecrementLot(executor SQLExecutor, lotID int64, quantity decimal.Decimal) error {
	query := `UPDATE stock SET quantity = quantity - $1, last_updated = NOW() WHERE id = $2`
	result, err := executor.Exec(query, quantity, lotID)
	if err != nil {
		return fmt.Errorf("%w: decrementing stock lot ID %d: %v", ErrDatabaseError, lotID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *stockRepository) GetAvailableQuantity(executor SQLExecutor, tenantID, materialID int64) (decimal.Decimal, error) {
	var total decimal.Decimal
	query := `SELECT COALESCE(SUM(quantity), 0) FROM stock WHERE tenant_id = $1 AND material_id = $2`
	if err := executor.QueryRow(query, tenantID, materialID).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("%w: summing available stock for material ID %d: %v", ErrDatabaseError, materialID, err)
	}
	return total, nil
}

func (r *stockRepository) GetSummary(tenantID int64) ([]models.StockSummaryRow, error) {
	summary := []models.StockSummaryRow{}
	query := `SELECT m.id AS material_id, m.item_name AS material_name, m.item_code, m.unit_of_measure,
	                 COALESCE(SUM(s.quantity), 0) AS total_quantity
	          FROM materials m
	          LEFT JOIN stock s ON m.id = s.material_id AND s.tenant_id = $1
	          WHERE m.tenant_id = $1
	          GROUP BY m.id, m.item_name, m.item_code, m.unit_of_measure
	          ORDER BY m.item_name`
	rows, err := r.db.Query(query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("%w: querying stock summary: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var row models.StockSummaryRow
		if err := rows.Scan(&row.MaterialID, &row.MaterialName, &row.ItemCode, &row.UnitOfMeasure, &row.TotalQuantity); err != nil {
			return nil, fmt.Errorf("%w: scanning stock summary row: %v", ErrDatabaseError, err)
		}
		summary = append(summary, row)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating stock summary: %v", ErrDatabaseError, err)
	}
	return summary, nil
}

func (r *stockRepository) GetDetailByMaterial(tenantID, materialID int64) ([]models.StockLot, error) {
	lots := []models.StockLot{}
	query := `SELECT s.id, s.tenant_id, s.material_id, s.partner_id, s.quantity, s.effective_unit_price, s.last_updated,
	                 p.name AS partner_name, m.item_name AS material_name, m.item_code, m.unit_of_measure
	          FROM stock s
	          JOIN partners p ON s.partner_id = p.id
	          JOIN materials m ON s.material_id = m.id
	          WHERE s.tenant_id = $1 AND s.material_id = $2 AND s.quantity > 0
	          ORDER BY s.last_updated ASC`
	rows, err := r.db.Query(query, tenantID, materialID)
	if err != nil {
		return nil, fmt.Errorf("%w: querying stock detail for material ID %d: %v", ErrDatabaseError, materialID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var lot models.StockLot
		if err := rows.Scan(
			&lot.ID, &lot.TenantID, &lot.MaterialID, &lot.PartnerID,
			&lot.Quantity, &lot.EffectiveUnitPrice, &lot.LastUpdated,
			&lot.PartnerName, &lot.MaterialName, &lot.ItemCode, &lot.UnitOfMeasure,
		); err != nil {
			return nil, fmt.Errorf("%w: scanning stock detail row: %v", ErrDatabaseError, err)
		}
		lots = append(lots, lot)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating stock detail: %v", ErrDatabaseError, err)
	}
	return lots, nil
}
