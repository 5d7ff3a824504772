package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MoneyTransaction types.
const (
	MoneyTypePayment = "payment"
	MoneyTypeReceipt = "receipt"
)

// MoneyTransaction is an append-only ledger row. Rows are created both by
// explicit user action and automatically by the approval and selling
// workflows; they are never updated or deleted.
type MoneyTransaction struct {
	ID              int64           `json:"id" db:"id"`
	TenantID        int64           `json:"tenant_id" db:"tenant_id"`
	PartnerID       int64           `json:"partner_id" db:"partner_id"`
	PartnerName     *string         `json:"partner_name,omitempty"`
	Type            string          `json:"type" db:"type"`
	Amount          decimal.Decimal `json:"amount" db:"amount"`
	PaymentMethod   *string         `json:"payment_method,omitempty" db:"payment_method"`
	Notes           *string         `json:"notes,omitempty" db:"notes"`
	TransactionDate time.Time       `json:"transaction_date" db:"transaction_date"`
}

// IsValidMoneyType reports whether t is a known ledger entry type.
func IsValidMoneyType(t string) bool {
	return t == MoneyTypePayment || t == MoneyTypeReceipt
}
