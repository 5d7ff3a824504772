package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SellingTransaction is a sale event to a customer. TotalAmount is computed
// eagerly at creation from requested quantities and unit prices.
type SellingTransaction struct {
	ID              int64           `json:"id" db:"id"`
	TenantID        int64           `json:"tenant_id" db:"tenant_id"`
	PartnerID       int64           `json:"partner_id" db:"partner_id"`
	PartnerName     *string         `json:"partner_name,omitempty"`
	TotalAmount     decimal.Decimal `json:"total_amount" db:"total_amount"`
	TransactionDate time.Time       `json:"transaction_date" db:"transaction_date"`
	Notes           *string         `json:"notes,omitempty" db:"notes"`
	Items           []SellingItem   `json:"items,omitempty"`
}

// SellingItem is one material line within a selling transaction.
type SellingItem struct {
	ID                   int64           `json:"id" db:"id"`
	SellingTransactionID int64           `json:"selling_transaction_id" db:"selling_transaction_id"`
	MaterialID           int64           `json:"material_id" db:"material_id"`
	MaterialName         *string         `json:"material_name,omitempty"`
	UnitOfMeasure        *string         `json:"unit_of_measure,omitempty"`
	Quantity             decimal.Decimal `json:"quantity" db:"quantity"`
	UnitPrice            decimal.Decimal `json:"unit_price" db:"unit_price"`
	TotalAmount          decimal.Decimal `json:"total_amount" db:"total_amount"`
}
