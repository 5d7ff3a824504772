package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"scrapyard_backend/internal/models"

	"github.com/lib/pq"
)

// MaterialRepository defines the interface for material-related database operations.
type MaterialRepository interface {
	CreateMaterial(executor SQLExecutor, material *models.Material) (int64, error)
	GetMaterialByID(tenantID, id int64) (*models.Material, error)
	GetMaterials(tenantID int64) ([]models.Material, error)
	UpdateMaterial(executor SQLExecutor, material *models.Material) error
	DeleteMaterial(executor SQLExecutor, tenantID, id int64) error
}

type materialRepository struct {
	db *sql.DB
}

// NewMaterialRepository creates a new instance of MaterialRepository.
func NewMaterialRepository(db *sql.DB) MaterialRepository {
	return &materialRepository{db: db}
}

func (r *materialRepository) CreateMaterial(executor SQLExecutor, material *models.Material) (int64, error) {
	query := `INSERT INTO materials (tenant_id, item_name, item_code, item_type, unit_of_measure, description)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING id, created_at`
	err := executor.QueryRow(query,
		material.TenantID, material.ItemName, material.ItemCode, material.ItemType,
		material.UnitOfMeasure, material.Description,
	).Scan(&material.ID, &material.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return 0, fmt.Errorf("%w: material name '%s' already exists (constraint: %s)", ErrDuplicateKey, material.ItemName, pqErr.Constraint)
		}
		return 0, fmt.Errorf("%w: creating material: %v", ErrDatabaseError, err)
	}
	return material.ID, nil
}

func (r *materialRepository) GetMaterialByID(tenantID, id int64) (*models.Material, error) {
	material := &models.Material{}
	query := `SELECT id, tenant_id, item_name, item_code, item_type, unit_of_measure, description, created_at
	          FROM materials WHERE id = $1 AND tenant_id = $2`
	err := r.db.QueryRow(query, id, tenantID).Scan(
		&material.ID, &material.TenantID, &material.ItemName, &material.ItemCode,
		&material.ItemType, &material.UnitOfMeasure, &material.Description, &material.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting material by ID %d: %v", ErrDatabaseError, id, err)
	}
	return material, nil
}

func (r *materialRepository) GetMaterials(tenantID int64) ([]models.Material, error) {
	materials := []models.Material{}
	query := `SELECT id, tenant_id, item_name, item_code, item_type, unit_of_measure, description, created_at
	          FROM materials WHERE tenant_id = $1 ORDER BY item_name`
	rows, err := r.db.Query(query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("%w: querying materials: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var m models.Material
		if err := rows.Scan(
			&m.ID, &m.TenantID, &m.ItemName, &m.ItemCode,
			&m.ItemType, &m.UnitOfMeasure, &m.Description, &m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: scanning material: %v", ErrDatabaseError, err)
		}
		materials = append(materials, m)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating materials: %v", ErrDatabaseError, err)
	}
	return materials, nil
}

func (r *materialRepository) UpdateMaterial(executor SQLExecutor, material *models.Material) error {
	query := `UPDATE materials SET item_name = $1, item_code = $2, item_type = $3, unit_of_measure = $4, description = $5
	          WHERE id = $6 AND tenant_id = $7`
	result, err := executor.Exec(query,
		material.ItemName, material.ItemCode, material.ItemType, material.UnitOfMeasure, material.Description,
		material.ID, material.TenantID,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return fmt.Errorf("%w: material name '%s' already exists (constraint: %s)", ErrDuplicateKey, material.ItemName, pqErr.Constraint)
		}
		return fmt.Errorf("%w: updating material ID %d: %v", ErrDatabaseError, material.ID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *materialRepository) DeleteMaterial(executor SQLExecutor, tenantID, id int64) error {
	result, err := executor.Exec(`DELETE FROM materials WHERE id = $1 AND tenant_id = $2`, id, tenantID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "foreign_key_violation" {
			return fmt.Errorf("%w: material ID %d is referenced by existing records", ErrDuplicateKey, id)
		}
		return fmt.Errorf("%w: deleting material ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
