package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Partner types. A partner is any counterparty that carries a balance.
const (
	PartnerTypeCustomer = "customer"
	PartnerTypeSupplier = "supplier"
	PartnerTypeBank     = "bank"
)

// Partner represents a counterparty (customer, supplier or bank).
// Balance is a stored running total, adjusted atomically by every approval,
// sale and money transaction that touches this partner. It is never
// recomputed from history.
type Partner struct {
	ID        int64           `json:"id" db:"id"`
	TenantID  int64           `json:"tenant_id" db:"tenant_id"`
	Name      string          `json:"name" db:"name" binding:"required"`
	Type      string          `json:"type" db:"type" binding:"required"`
	Phone     *string         `json:"phone,omitempty" db:"phone"`
	Email     *string         `json:"email,omitempty" db:"email"`
	Address   *string         `json:"address,omitempty" db:"address"`
	Balance   decimal.Decimal `json:"balance" db:"balance"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
}

// IsValidPartnerType reports whether t is one of the closed set of partner types.
func IsValidPartnerType(t string) bool {
	switch t {
	case PartnerTypeCustomer, PartnerTypeSupplier, PartnerTypeBank:
		return true
	default:
		return false
	}
}
