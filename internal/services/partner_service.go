package services

import (
	"database/sql"
	"errors"
	"fmt"

	"scrapyard_backend/internal/models"
	"scrapyard_backend/internal/repositories"

	"scrapyard_backend/pkg/utils"
)

var ErrPartnerInUse = errors.New("partner is referenced by existing transactions")

// CreatePartnerRequest is used for creating or updating a partner.
// Balance is intentionally absent: it only moves through PostBalanceChange.
type CreatePartnerRequest struct {
	Name    string `json:"name" binding:"required"`
	Type    string `json:"type" binding:"required"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

// PartnerService manages counterparty reference data.
type PartnerService interface {
	CreatePartner(tenantID int64, req CreatePartnerRequest) (*models.Partner, error)
	GetPartners(tenantID int64) ([]models.Partner, error)
	GetPartnersByType(tenantID int64, partnerType string) ([]models.Partner, error)
	GetPartnerByID(tenantID, id int64) (*models.Partner, error)
	UpdatePartner(tenantID, id int64, req CreatePartnerRequest) (*models.Partner, error)
	DeletePartner(tenantID, id int64) error
}

type partnerService struct {
	partnerRepo repositories.PartnerRepository
	db          *sql.DB
}

// NewPartnerService creates a new instance of PartnerService.
func NewPartnerService(pr repositories.PartnerRepository, db *sql.DB) PartnerService {
	return &partnerService{partnerRepo: pr, db: db}
}

func (s *partnerService) CreatePartner(tenantID int64, req CreatePartnerRequest) (*models.Partner, error) {
	if utils.IsEmpty(req.Name) {
		return nil, fmt.Errorf("%w: partner name cannot be empty", ErrValidation)
	}
	if !models.IsValidPartnerType(req.Type) {
		return nil, fmt.Errorf("%w: partner type must be customer, supplier or bank", ErrValidation)
	}

	partner := &models.Partner{
		TenantID: tenantID,
		Name:     req.Name,
		Type:     req.Type,
		Phone:    models.NewNullString(req.Phone),
		Email:    models.NewNullString(req.Email),
		Address:  models.NewNullString(req.Address),
	}
	if _, err := s.partnerRepo.CreatePartner(s.db, partner); err != nil {
		return nil, fmt.Errorf("failed to create partner: %w", err)
	}
	return partner, nil
}

func (s *partnerService) GetPartners(tenantID int64) ([]models.Partner, error) {
	partners, err := s.partnerRepo.GetPartners(tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to get partners: %w", err)
	}
	return partners, nil
}

func (s *partnerService) GetPartnersByType(tenantID int64, partnerType string) ([]models.Partner, error) {
	if !models.IsValidPartnerType(partnerType) {
		return nil, fmt.Errorf("%w: unknown partner type '%s'", ErrValidation, partnerType)
	}
	partners, err := s.partnerRepo.GetPartnersByType(tenantID, partnerType)
	if err != nil {
		return nil, fmt.Errorf("failed to get partners by type: %w", err)
	}
	return partners, nil
}

func (s *partnerService) GetPartnerByID(tenantID, id int64) (*models.Partner, error) {
	partner, err := s.partnerRepo.GetPartnerByID(tenantID, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: partner ID %d", ErrPartnerNotFound, id)
		}
		return nil, fmt.Errorf("failed to get partner: %w", err)
	}
	return partner, nil
}

func (s *partnerService) UpdatePartner(tenantID, id int64, req CreatePartnerRequest) (*models.Partner, error) {
	if utils.IsEmpty(req.Name) {
		return nil, fmt.Errorf("%w: partner name cannot be empty", ErrValidation)
	}
	if !models.IsValidPartnerType(req.Type) {
		return nil, fmt.Errorf("%w: partner type must be customer, supplier or bank", ErrValidation)
	}

	partner := &models.Partner{
		ID:       id,
		TenantID: tenantID,
		Name:     req.Name,
		Type:     req.Type,
		Phone:    models.NewNullString(req.Phone),
		Email:    models.NewNullString(req.Email),
		Address:  models.NewNullString(req.Address),
	}
	if err := s.partnerRepo.UpdatePartner(s.db, partner); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: partner ID %d", ErrPartnerNotFound, id)
		}
		return nil, fmt.Errorf("failed to update partner: %w", err)
	}
	return s.GetPartnerByID(tenantID, id)
}

func (s *partnerService) DeletePartner(tenantID, id int64) error {
	if err := s.partnerRepo.DeletePartner(s.db, tenantID, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("%w: partner ID %d", ErrPartnerNotFound, id)
		}
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return fmt.Errorf("%w: partner ID %d", ErrPartnerInUse, id)
		}
		return fmt.Errorf("failed to delete partner: %w", err)
	}
	return nil
}
