package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Voucher represents a ledger entry row. Seq is DB-assigned (BIGSERIAL) and
// breaks chronological ties within the same created_at.
type Voucher struct {
	VoucherID   string          `db:"voucher_id"`
	VoucherType string          `db:"voucher_type"`
	Currency    string          `db:"currency"`
	Amount      decimal.Decimal `db:"amount"`
	Status      string          `db:"status"`

	FromBoxID         string `db:"from_box_id"`         // Nullable
	ToBoxID           string `db:"to_box_id"`           // Nullable
	OfficeID          string `db:"office_id"`           // Nullable
	CompanyID         string `db:"company_id"`          // Nullable
	IntermediateBoxID string `db:"intermediate_box_id"` // Nullable
	BoxID             string `db:"box_id"`              // Nullable
	PartyID           string `db:"party_id"`            // Nullable
	CounterAccountID  string `db:"counter_account_id"`  // Nullable
	Category          string `db:"category"`            // Nullable

	Converted bool   `db:"converted"`
	Notes     string `db:"notes"`

	OriginalVoucherID  string `db:"original_voucher_id"`  // Nullable
	ReversingVoucherID string `db:"reversing_voucher_id"` // Nullable

	IdempotencyKey string `db:"idempotency_key"` // Nullable, unique when present

	Seq       int64     `db:"seq"`
	CreatedAt time.Time `db:"created_at"`
	CreatedBy string    `db:"created_by"`
}

// VoucherLine represents a manual-journal leg row.
type VoucherLine struct {
	LineID    string          `db:"line_id"`
	VoucherID string          `db:"voucher_id"`
	AccountID string          `db:"account_id"`
	Side      string          `db:"side"`
	Amount    decimal.Decimal `db:"amount"`
	Notes     string          `db:"notes"`
}
