package services

import (
	"database/sql"
	"errors"
	"fmt"

	"scrapyard_backend/internal/models"
	"scrapyard_backend/internal/repositories"

	"scrapyard_backend/pkg/utils"
)

var (
	ErrUllageTypeNotFound = errors.New("ullage type not found")
	ErrUllageTypeConflict = errors.New("ullage type name already in use")
)

// CreateUllageTypeRequest is used for creating or updating a loss category.
type CreateUllageTypeRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// UllageTypeService manages the tenant-defined loss taxonomy.
type UllageTypeService interface {
	CreateUllageType(tenantID int64, req CreateUllageTypeRequest) (*models.UllageType, error)
	GetUllageTypes(tenantID int64) ([]models.UllageType, error)
	UpdateUllageType(tenantID, id int64, req CreateUllageTypeRequest) (*models.UllageType, error)
	DeleteUllageType(tenantID, id int64) error
}

type ullageTypeService struct {
	ullageTypeRepo repositories.UllageTypeRepository
	db             *sql.DB
}

// NewUllageTypeService creates a new instance of UllageTypeService.
func NewUllageTypeService(ur repositories.UllageTypeRepository, db *sql.DB) UllageTypeService {
	return &ullageTypeService{ullageTypeRepo: ur, db: db}
}

func (s *ullageTypeService) CreateUllageType(tenantID int64, req CreateUllageTypeRequest) (*models.UllageType, error) {
	if utils.IsEmpty(req.Name) {
		return nil, fmt.Errorf("%w: ullage type name cannot be empty", ErrValidation)
	}

	ut := &models.UllageType{
		TenantID:    tenantID,
		Name:        req.Name,
		Description: models.NewNullString(req.Description),
	}
	if _, err := s.ullageTypeRepo.CreateUllageType(s.db, ut); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: '%s'", ErrUllageTypeConflict, req.Name)
		}
		return nil, fmt.Errorf("failed to create ullage type: %w", err)
	}
	return ut, nil
}

func (s *ullageTypeService) GetUllageTypes(tenantID int64) ([]models.UllageType, error) {
	types, err := s.ullageTypeRepo.GetUllageTypes(tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to get ullage types: %w", err)
	}
	return types, nil
}

func (s *ullageTypeService) UpdateUllageType(tenantID, id int64, req CreateUllageTypeRequest) (*models.UllageType, error) {
	if utils.IsEmpty(req.Name) {
		return nil, fmt.Errorf("%w: ullage type name cannot be empty", ErrValidation)
	}

	ut := &models.UllageType{
		ID:          id,
		TenantID:    tenantID,
		Name:        req.Name,
		Description: models.NewNullString(req.Description),
	}
	if err := s.ullageTypeRepo.UpdateUllageType(s.db, ut); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: ullage type ID %d", ErrUllageTypeNotFound, id)
		}
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: '%s'", ErrUllageTypeConflict, req.Name)
		}
		return nil, fmt.Errorf("failed to update ullage type: %w", err)
	}
	return s.ullageTypeRepo.GetUllageTypeByID(tenantID, id)
}

func (s *ullageTypeService) DeleteUllageType(tenantID, id int64) error {
	if err := s.ullageTypeRepo.DeleteUllageType(s.db, tenantID, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("%w: ullage type ID %d", ErrUllageTypeNotFound, id)
		}
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return fmt.Errorf("%w: ullage type ID %d is referenced by inspections", ErrUllageTypeConflict, id)
		}
		return fmt.Errorf("failed to delete ullage type: %w", err)
	}
	return nil
}
