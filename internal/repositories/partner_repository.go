package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"scrapyard_backend/internal/models"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// PartnerRepository defines the interface for partner-related database operations.
type PartnerRepository interface {
	CreatePartner(executor SQLExecutor, partner *models.Partner) (int64, error)
	GetPartnerByID(tenantID, id int64) (*models.Partner, error)
	GetPartners(tenantID int64) ([]models.Partner, error)
	GetPartnersByType(tenantID int64, partnerType string) ([]models.Partner, error)
	UpdatePartner(executor SQLExecutor, partner *models.Partner) error
	DeletePartner(executor SQLExecutor, tenantID, id int64) error

	// AdjustBalance applies a signed delta to the partner's stored running
	// balance. Must run inside the same transaction as the event that
	// caused the change.
	AdjustBalance(executor SQLExecutor, tenantID, partnerID int64, delta decimal.Decimal) error
}

type partnerRepository struct {
	db *sql.DB
}

// NewPartnerRepository creates a new instance of PartnerRepository.
func NewPartnerRepository(db *sql.DB) PartnerRepository {
	return &partnerRepository{db: db}
}

func (r *partnerRepository) CreatePartner(executor SQLExecutor, partner *models.Partner) (int64, error) {
	query := `INSERT INTO partners (tenant_id, name, type, phone, email, address, balance)
	          VALUES ($1, $2, $3, $4, $5, $6, 0)
	          RETURNING id, balance, created_at`
	err := executor.QueryRow(query,
		partner.TenantID, partner.Name, partner.Type, partner.Phone, partner.Email, partner.Address,
	).Scan(&partner.ID, &partner.Balance, &partner.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return 0, fmt.Errorf("%w: partner '%s' already exists (constraint: %s)", ErrDuplicateKey, partner.Name, pqErr.Constraint)
		}
		return 0, fmt.Errorf("%w: creating partner: %v", ErrDatabaseError, err)
	}
	return partner.ID, nil
}

func (r *partnerRepository) GetPartnerByID(tenantID, id int64) (*models.Partner, error) {
	partner := &models.Partner{}
	query := `SELECT id, tenant_id, name, type, phone, email, address, balance, created_at
	          FROM partners WHERE id = $1 AND tenant_id = $2`
	err := r.db.QueryRow(query, id, tenantID).Scan(
		&partner.ID, &partner.TenantID, &partner.Name, &partner.Type,
		&partner.Phone, &partner.Email, &partner.Address, &partner.Balance, &partner.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting partner by ID %d: %v", ErrDatabaseError, id, err)
	}
	return partner, nil
}

func (r *partnerRepository) GetPartners(tenantID int64) ([]models.Partner, error) {
	query := `SELECT id, tenant_id, name, type, phone, email, address, balance, created_at
	          FROM partners WHERE tenant_id = $1 ORDER BY name`
	return r.queryPartners(query, tenantID)
}

func (r *partnerRepository) GetPartnersByType(tenantID int64, partnerType string) ([]models.Partner, error) {
	query := `SELECT id, tenant_id, name, type, phone, email, address, balance, created_at
	          FROM partners WHERE tenant_id = $1 AND type = $2 ORDER BY name`
	return r.queryPartners(query, tenantID, partnerType)
}

func (r *partnerRepository) queryPartners(query string, args ...interface{}) ([]models.Partner, error) {
	partners := []models.Partner{}
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: querying partners: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var p models.Partner
		if err := rows.Scan(
			&p.ID, &p.TenantID, &p.Name, &p.Type,
			&p.Phone, &p.Email, &p.Address, &p.Balance, &p.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: scanning partner: %v", ErrDatabaseError, err)
		}
		partners = append(partners, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating partners: %v", ErrDatabaseError, err)
	}
	return partners, nil
}

func (r *partnerRepository) UpdatePartner(executor SQLExecutor, partner *models.Partner) error {
	// Balance is deliberately absent here: it is only ever adjusted through
	// AdjustBalance alongside its paired ledger row.
	query := `UPDATE partners SET name = $1, type = $2, phone = $3, email = $4, address = $5
	          WHERE id = $6 AND tenant_id = $7`
	result, err := executor.Exec(query,
		partner.Name, partner.Type, partner.Phone, partner.Email, partner.Address,
		partner.ID, partner.TenantID,
	)
	if err != nil {
		return fmt.Errorf("%w: updating partner ID %d: %v", ErrDatabaseError, partner.ID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *partnerRepository) DeletePartner(executor SQLExecutor, tenantID, id int64) error {
	result, err := executor.Exec(`DELETE FROM partners WHERE id = $1 AND tenant_id = $2`, id, tenantID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "foreign_key_violation" {
			return fmt.Errorf("%w: partner ID %d is referenced by existing transactions", ErrDuplicateKey, id)
		}
		return fmt.Errorf("%w: deleting partner ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *partnerRepository) AdjustBalance(executor SQLExecutor, tenantID, partnerID int64, delta decimal.Decimal) error {
	query := `UPDATE partners SET balance = balance + $1 WHERE id = $2 AND tenant_id = $3`
	result, err := executor.Exec(query, delta, partnerID, tenantID)
	if err != nil {
		return fmt.Errorf("%w: adjusting balance for partner ID %d: %v", ErrDatabaseError, partnerID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
