package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Inspection records a sample-based loss measurement for one receiving item.
// Logically 1:1 with the item.
type Inspection struct {
	ID                int64            `json:"id" db:"id"`
	TenantID          int64            `json:"tenant_id" db:"tenant_id"`
	ReceivingItemID   int64            `json:"receiving_item_id" db:"receiving_item_id"`
	SampleWeight      decimal.Decimal  `json:"sample_weight" db:"sample_weight"`
	TotalUllageWeight decimal.Decimal  `json:"total_ullage_weight" db:"total_ullage_weight"`
	UllagePercentage  decimal.Decimal  `json:"ullage_percentage" db:"ullage_percentage"`
	InspectionDate    time.Time        `json:"inspection_date" db:"inspection_date"`
	Items             []InspectionItem `json:"items,omitempty"`
}

// InspectionItem is one measured loss component within an inspection.
type InspectionItem struct {
	ID           int64           `json:"id" db:"id"`
	InspectionID int64           `json:"inspection_id" db:"inspection_id"`
	UllageTypeID int64           `json:"ullage_type_id" db:"ullage_type_id"`
	TypeName     *string         `json:"type_name,omitempty"`
	Weight       decimal.Decimal `json:"weight" db:"weight"`
}

// InspectionHistoryRow is the denormalized history view: inspection joined
// with its receiving item, material and partner.
type InspectionHistoryRow struct {
	ID                 int64               `json:"id"`
	SampleWeight       decimal.Decimal     `json:"sample_weight"`
	TotalUllageWeight  decimal.Decimal     `json:"total_ullage_weight"`
	UllagePercentage   decimal.Decimal     `json:"ullage_percentage"`
	InspectionDate     time.Time           `json:"inspection_date"`
	MaterialName       string              `json:"material_name"`
	PartnerName        string              `json:"partner_name"`
	GrossWeight        decimal.Decimal     `json:"gross_weight"`
	NetWeight          decimal.NullDecimal `json:"net_weight"`
	UnitPrice          decimal.Decimal     `json:"unit_price"`
	EffectiveUnitPrice decimal.NullDecimal `json:"effective_unit_price"`
	UllageItems        []InspectionItem    `json:"ullage_items,omitempty"`
}
