package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockLot is one row per (tenant, material, partner). Deposits accumulate
// quantity and overwrite the effective unit price; depletions decrement
// quantity and may never drive it below zero.
type StockLot struct {
	ID                 int64           `json:"id" db:"id"`
	TenantID           int64           `json:"tenant_id" db:"tenant_id"`
	MaterialID         int64           `json:"material_id" db:"material_id"`
	PartnerID          int64           `json:"partner_id" db:"partner_id"`
	PartnerName        *string         `json:"partner_name,omitempty"`
	MaterialName       *string         `json:"material_name,omitempty"`
	ItemCode           *string         `json:"item_code,omitempty"`
	UnitOfMeasure      *string         `json:"unit_of_measure,omitempty"`
	Quantity           decimal.Decimal `json:"quantity" db:"quantity"`
	EffectiveUnitPrice decimal.Decimal `json:"effective_unit_price" db:"effective_unit_price"`
	LastUpdated        time.Time       `json:"last_updated" db:"last_updated"`
}

// StockSummaryRow aggregates quantity per material across all partners.
// Materials with no stock appear with a zero total.
type StockSummaryRow struct {
	MaterialID    int64           `json:"material_id"`
	MaterialName  string          `json:"material_name"`
	ItemCode      *string         `json:"item_code,omitempty"`
	UnitOfMeasure string          `json:"unit_of_measure"`
	TotalQuantity decimal.Decimal `json:"total_quantity"`
}
