package repositories

import (
	"database/sql"
	"fmt"

	"scrapyard_backend/internal/models"
)

// InspectionRepository defines the interface for inspection-related database
// operations.
type InspectionRepository interface {
	CreateInspection(executor SQLExecutor, inspection *models.Inspection) (int64, error)
	CreateInspectionItem(executor SQLExecutor, item *models.InspectionItem) (int64, error)
	GetInspectionsByReceivingItemID(tenantID, receivingItemID int64) ([]models.Inspection, error)
	GetInspectionHistory(tenantID int64) ([]models.InspectionHistoryRow, error)
}

type inspectionRepository struct {
	db *sql.DB
}

// NewInspectionRepository creates a new instance of InspectionRepository.
func NewInspectionRepository(db *sql.DB) InspectionRepository {
	return &inspectionRepository{db: db}
}

func (r *inspectionRepository) CreateInspection(executor SQLExecutor, inspection *models.Inspection) (int64, error) {
	query := `INSERT INTO inspections
	            (tenant_id, receiving_item_id, sample_weight, total_ullage_weight, ullage_percentage)
	          VALUES ($1, $2, $3, $4, $5)
	          RETURNING id, inspection_date`
	err := executor.QueryRow(query,
		inspection.TenantID, inspection.ReceivingItemID, inspection.SampleWeight,
		inspection.TotalUllageWeight, inspection.UllagePercentage,
	).Scan(&inspection.ID, &inspection.InspectionDate)
	if err != nil {
		return 0, fmt.Errorf("%w: creating inspection: %v", ErrDatabaseError, err)
	}
	return inspection.ID, nil
}

func (r *inspectionRepository) CreateInspectionItem(executor SQLExecutor, item *models.InspectionItem) (int64, error) {
	query := `INSERT INTO inspection_items (inspection_id, ullage_type_id, weight)
	          VALUES ($1, $2, $3)
	          RETURNING id`
	err := executor.QueryRow(query, item.InspectionID, item.UllageTypeID, item.Weight).Scan(&item.ID)
	if err != nil {
		return 0, fmt.Errorf("%w: creating inspection item: %v", ErrDatabaseError, err)
	}
	return item.ID, nil
}

func (r *inspectionRepository) GetInspectionsByReceivingItemID(tenantID, receivingItemID int64) ([]models.Inspection, error) {
	inspections := []models.Inspection{}
	query := `SELECT id, tenant_id, receiving_item_id, sample_weight, total_ullage_weight, ullage_percentage, inspection_date
	          FROM inspections
	          WHERE receiving_item_id = $1 AND tenant_id = $2
	          ORDER BY inspection_date DESC`
	rows, err := r.db.Query(query, receivingItemID, tenantID)
	if err != nil {
		return nil, fmt.Errorf("%w: querying inspections: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var insp models.Inspection
		if err := rows.Scan(
			&insp.ID, &insp.TenantID, &insp.ReceivingItemID, &insp.SampleWeight,
			&insp.TotalUllageWeight, &insp.UllagePercentage, &insp.InspectionDate,
		); err != nil {
			return nil, fmt.Errorf("%w: scanning inspection: %v", ErrDatabaseError, err)
		}
		inspections = append(inspections, insp)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating inspections: %v", ErrDatabaseError, err)
	}

	for i := range inspections {
		items, err := r.getInspectionItems(inspections[i].ID)
		if err != nil {
			return nil, err
		}
		inspections[i].Items = items
	}
	return inspections, nil
}

func (r *inspectionRepository) getInspectionItems(inspectionID int64) ([]models.InspectionItem, error) {
	items := []models.InspectionItem{}
	query := `SELECT ii.id, ii.inspection_id, ii.ullage_type_id, ut.name AS type_name, ii.weight
	          FROM inspection_items ii
	          LEFT JOIN ullage_types ut ON ii.ullage_type_id = ut.id
	          WHERE ii.inspection_id = $1
	          ORDER BY ii.id`
	rows, err := r.db.Query(query, inspectionID)
	if err != nil {
		return nil, fmt.Errorf("%w: querying inspection items: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var item models.InspectionItem
		if err := rows.Scan(&item.ID, &item.InspectionID, &item.UllageTypeID, &item.TypeName, &item.Weight); err != nil {
			return nil, fmt.Errorf("%w: scanning inspection item: %v", ErrDatabaseError, err)
		}
		items = append(items, item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating inspection items: %v", ErrDatabaseError, err)
	}
	return items, nil
}

func (r *inspectionRepository) GetInspectionHistory(tenantID int64) ([]models.InspectionHistoryRow, error) {
	history := []models.InspectionHistoryRow{}
	query := `SELECT i.id, i.sample_weight, i.total_ullage_weight, i.ullage_percentage, i.inspection_date,
	                 m.item_name AS material_name,
	                 p.name AS partner_name,
	                 ri.gross_weight, ri.net_weight, ri.unit_price, ri.effective_unit_price
	          FROM inspections i
	          JOIN receiving_items ri ON i.receiving_item_id = ri.id
	          JOIN materials m ON ri.material_id = m.id
	          JOIN receiving_transactions rt ON ri.receiving_transaction_id = rt.id
	          JOIN partners p ON rt.partner_id = p.id
	          WHERE i.tenant_id = $1
	          ORDER BY i.inspection_date DESC`
	rows, err := r.db.Query(query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("%w: querying inspection history: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var row models.InspectionHistoryRow
		if err := rows.Scan(
			&row.ID, &row.SampleWeight, &row.TotalUllageWeight, &row.UllagePercentage, &row.InspectionDate,
			&row.MaterialName, &row.PartnerName,
			&row.GrossWeight, &row.NetWeight, &row.UnitPrice, &row.EffectiveUnitPrice,
		); err != nil {
			return nil, fmt.Errorf("%w: scanning inspection history row: %v", ErrDatabaseError, err)
		}
		history = append(history, row)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating inspection history: %v", ErrDatabaseError, err)
	}

	for i := range history {
		items, err := r.getInspectionItems(history[i].ID)
		if err != nil {
			return nil, err
		}
		history[i].UllageItems = items
	}
	return history, nil
}
