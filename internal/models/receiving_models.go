package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReceivingTransaction status values. Approved and rejected are terminal.
const (
	ReceivingStatusPending   = "pending"
	ReceivingStatusInspected = "inspected"
	ReceivingStatusApproved  = "approved"
	ReceivingStatusRejected  = "rejected"
)

// ReceivingTransaction is a purchase event from a supplier. TotalAmount is
// provisional until all items are inspected, after which it is recomputed
// from effective prices.
type ReceivingTransaction struct {
	ID              int64           `json:"id" db:"id"`
	TenantID        int64           `json:"tenant_id" db:"tenant_id"`
	PartnerID       int64           `json:"partner_id" db:"partner_id"`
	PartnerName     *string         `json:"partner_name,omitempty"`
	DocDate         *time.Time      `json:"doc_date,omitempty" db:"doc_date"`
	PlateNo1        *string         `json:"plate_no_1,omitempty" db:"plate_no_1"`
	PlateNo2        *string         `json:"plate_no_2,omitempty" db:"plate_no_2"`
	IsReported      bool            `json:"is_reported" db:"is_reported"`
	LogisticsCost   decimal.Decimal `json:"logistics_cost" db:"logistics_cost"`
	TotalAmount     decimal.Decimal `json:"total_amount" db:"total_amount"`
	Status          string          `json:"status" db:"status"`
	TransactionDate time.Time       `json:"transaction_date" db:"transaction_date"`
	Notes           *string         `json:"notes,omitempty" db:"notes"`
	Items           []ReceivingItem `json:"items,omitempty"`
}

// ReceivingItem is one material line within a receiving transaction.
// NetWeight and EffectiveUnitPrice stay null until the line is inspected.
type ReceivingItem struct {
	ID                     int64               `json:"id" db:"id"`
	ReceivingTransactionID int64               `json:"receiving_transaction_id" db:"receiving_transaction_id"`
	MaterialID             int64               `json:"material_id" db:"material_id"`
	MaterialName           *string             `json:"material_name,omitempty"`
	UnitOfMeasure          *string             `json:"unit_of_measure,omitempty"`
	GrossWeight            decimal.Decimal     `json:"gross_weight" db:"gross_weight"`
	NetWeight              decimal.NullDecimal `json:"net_weight,omitempty" db:"net_weight"`
	UnitPrice              decimal.Decimal     `json:"unit_price" db:"unit_price"`
	LogisticsCost          decimal.Decimal     `json:"logistics_cost" db:"logistics_cost"`
	EffectiveUnitPrice     decimal.NullDecimal `json:"effective_unit_price,omitempty" db:"effective_unit_price"`
	TotalAmount            decimal.Decimal     `json:"total_amount" db:"total_amount"`
}

// ReceivingItemContext is a receiving item joined with the fields of its
// parent transaction that the inspection workflow needs in one read.
type ReceivingItemContext struct {
	ReceivingItem
	TenantID      int64           `json:"tenant_id"`
	PartnerID     int64           `json:"partner_id"`
	TransactionID int64           `json:"transaction_id"`
	TxStatus      string          `json:"tx_status"`
	TxLogistics   decimal.Decimal `json:"tx_logistics_cost"`
}

// IsTerminalReceivingStatus reports whether no further transition is legal.
func IsTerminalReceivingStatus(status string) bool {
	return status == ReceivingStatusApproved || status == ReceivingStatusRejected
}
