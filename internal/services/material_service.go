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
	ErrMaterialNotFound = errors.New("material not found")
	ErrMaterialConflict = errors.New("material name already in use")
)

const defaultUnitOfMeasure = "kg"

// CreateMaterialRequest is used for creating or updating a material.
type CreateMaterialRequest struct {
	ItemName      string `json:"item_name" binding:"required"`
	ItemCode      string `json:"item_code"`
	ItemType      string `json:"item_type"`
	UnitOfMeasure string `json:"unit_of_measure"`
	Description   string `json:"description"`
}

// MaterialService manages the tracked commodity catalogue.
type MaterialService interface {
	CreateMaterial(tenantID int64, req CreateMaterialRequest) (*models.Material, error)
	GetMaterials(tenantID int64) ([]models.Material, error)
	GetMaterialByID(tenantID, id int64) (*models.Material, error)
	UpdateMaterial(tenantID, id int64, req CreateMaterialRequest) (*models.Material, error)
	DeleteMaterial(tenantID, id int64) error
}

type materialService struct {
	materialRepo repositories.MaterialRepository
	db           *sql.DB
}

// NewMaterialService creates a new instance of MaterialService.
func NewMaterialService(mr repositories.MaterialRepository, db *sql.DB) MaterialService {
	return &materialService{materialRepo: mr, db: db}
}

func (s *materialService) CreateMaterial(tenantID int64, req CreateMaterialRequest) (*models.Material, error) {
	if utils.IsEmpty(req.ItemName) {
		return nil, fmt.Errorf("%w: material name cannot be empty", ErrValidation)
	}
	unit := req.UnitOfMeasure
	if utils.IsEmpty(unit) {
		unit = defaultUnitOfMeasure
	}

	material := &models.Material{
		TenantID:      tenantID,
		ItemName:      req.ItemName,
		ItemCode:      models.NewNullString(req.ItemCode),
		ItemType:      models.NewNullString(req.ItemType),
		UnitOfMeasure: unit,
		Description:   models.NewNullString(req.Description),
	}
	if _, err := s.materialRepo.CreateMaterial(s.db, material); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: '%s'", ErrMaterialConflict, req.ItemName)
		}
		return nil, fmt.Errorf("failed to create material: %w", err)
	}
	return material, nil
}

func (s *materialService) GetMaterials(tenantID int64) ([]models.Material, error) {
	materials, err := s.materialRepo.GetMaterials(tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to get materials: %w", err)
	}
	return materials, nil
}

func (s *materialService) GetMaterialByID(tenantID, id int64) (*models.Material, error) {
	material, err := s.materialRepo.GetMaterialByID(tenantID, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: material ID %d", ErrMaterialNotFound, id)
		}
		return nil, fmt.Errorf("failed to get material: %w", err)
	}
	return material, nil
}

func (s *materialService) UpdateMaterial(tenantID, id int64, req CreateMaterialRequest) (*models.Material, error) {
	if utils.IsEmpty(req.ItemName) {
		return nil, fmt.Errorf("%w: material name cannot be empty", ErrValidation)
	}
	unit := req.UnitOfMeasure
	if utils.IsEmpty(unit) {
		unit = defaultUnitOfMeasure
	}

	material := &models.Material{
		ID:            id,
		TenantID:      tenantID,
		ItemName:      req.ItemName,
		ItemCode:      models.NewNullString(req.ItemCode),
		ItemType:      models.NewNullString(req.ItemType),
		UnitOfMeasure: unit,
		Description:   models.NewNullString(req.Description),
	}
	if err := s.materialRepo.UpdateMaterial(s.db, material); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: material ID %d", ErrMaterialNotFound, id)
		}
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: '%s'", ErrMaterialConflict, req.ItemName)
		}
		return nil, fmt.Errorf("failed to update material: %w", err)
	}
	return s.GetMaterialByID(tenantID, id)
}

func (s *materialService) DeleteMaterial(tenantID, id int64) error {
	if err := s.materialRepo.DeleteMaterial(s.db, tenantID, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("%w: material ID %d", ErrMaterialNotFound, id)
		}
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return fmt.Errorf("%w: material ID %d is referenced by existing records", ErrMaterialConflict, id)
		}
		return fmt.Errorf("failed to delete material: %w", err)
	}
	return nil
}
