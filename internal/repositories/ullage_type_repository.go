package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"scrapyard_backend/internal/models"

	"github.com/lib/pq"
)

// UllageTypeRepository defines the interface for loss-category reference data.
type UllageTypeRepository interface {
	CreateUllageType(executor SQLExecutor, ut *models.UllageType) (int64, error)
	GetUllageTypeByID(tenantID, id int64) (*models.UllageType, error)
	GetUllageTypes(tenantID int64) ([]models.UllageType, error)
	UpdateUllageType(executor SQLExecutor, ut *models.UllageType) error
	DeleteUllageType(executor SQLExecutor, tenantID, id int64) error
}

type ullageTypeRepository struct {
	db *sql.DB
}

// NewUllageTypeRepository creates a new instance of UllageTypeRepository.
func NewUllageTypeRepository(db *sql.DB) UllageTypeRepository {
	return &ullageTypeRepository{db: db}
}

func (r *ullageTypeRepository) CreateUllageType(executor SQLExecutor, ut *models.UllageType) (int64, error) {
	query := `INSERT INTO ullage_types (tenant_id, name, description)
	          VALUES ($1, $2, $3)
	          RETURNING id, created_at`
	err := executor.QueryRow(query, ut.TenantID, ut.Name, ut.Description).Scan(&ut.ID, &ut.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return 0, fmt.Errorf("%w: ullage type '%s' already exists (constraint: %s)", ErrDuplicateKey, ut.Name, pqErr.Constraint)
		}
		return 0, fmt.Errorf("%w: creating ullage type: %v", ErrDatabaseError, err)
	}
	return ut.ID, nil
}

func (r *ullageTypeRepository) GetUllageTypeByID(tenantID, id int64) (*models.UllageType, error) {
	ut := &models.UllageType{}
	query := `SELECT id, tenant_id, name, description, created_at
	          FROM ullage_types WHERE id = $1 AND tenant_id = $2`
	err := r.db.QueryRow(query, id, tenantID).Scan(&ut.ID, &ut.TenantID, &ut.Name, &ut.Description, &ut.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting ullage type by ID %d: %v", ErrDatabaseError, id, err)
	}
	return ut, nil
}

func (r *ullageTypeRepository) GetUllageTypes(tenantID int64) ([]models.UllageType, error) {
	types := []models.UllageType{}
	query := `SELECT id, tenant_id, name, description, created_at
	          FROM ullage_types WHERE tenant_id = $1 ORDER BY name`
	rows, err := r.db.Query(query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("%w: querying ullage types: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var ut models.UllageType
		if err := rows.Scan(&ut.ID, &ut.TenantID, &ut.Name, &ut.Description, &ut.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: scanning ullage type: %v", ErrDatabaseError, err)
		}
		types = append(types, ut)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating ullage types: %v", ErrDatabaseError, err)
	}
	return types, nil
}

func (r *ullageTypeRepository) UpdateUllageType(executor SQLExecutor, ut *models.UllageType) error {
	query := `UPDATE ullage_types SET name = $1, description = $2 WHERE id = $3 AND tenant_id = $4`
	result, err := executor.Exec(query, ut.Name, ut.Description, ut.ID, ut.TenantID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return fmt.Errorf("%w: ullage type '%s' already exists (constraint: %s)", ErrDuplicateKey, ut.Name, pqErr.Constraint)
		}
		return fmt.Errorf("%w: updating ullage type ID %d: %v", ErrDatabaseError, ut.ID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ullageTypeRepository) DeleteUllageType(executor SQLExecutor, tenantID, id int64) error {
	result, err := executor.Exec(`DELETE FROM ullage_types WHERE id = $1 AND tenant_id = $2`, id, tenantID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "foreign_key_violation" {
			return fmt.Errorf("%w: ullage type ID %d is referenced by inspections", ErrDuplicateKey, id)
		}
		return fmt.Errorf("%w: deleting ullage type ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
