package models

import "time"

// Material is a tracked commodity. It is the join key across receiving,
// inspection, stock and selling.
type Material struct {
	ID            int64     `json:"id" db:"id"`
	TenantID      int64     `json:"tenant_id" db:"tenant_id"`
	ItemName      string    `json:"item_name" db:"item_name" binding:"required"`
	ItemCode      *string   `json:"item_code,omitempty" db:"item_code"`
	ItemType      *string   `json:"item_type,omitempty" db:"item_type"`
	UnitOfMeasure string    `json:"unit_of_measure" db:"unit_of_measure"`
	Description   *string   `json:"description,omitempty" db:"description"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

// UllageType is a tenant-defined loss category (moisture, foreign matter, ...).
type UllageType struct {
	ID          int64     `json:"id" db:"id"`
	TenantID    int64     `json:"tenant_id" db:"tenant_id"`
	Name        string    `json:"name" db:"name" binding:"required"`
	Description *string   `json:"description,omitempty" db:"description"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
