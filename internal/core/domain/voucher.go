package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// VoucherType discriminates the financial transaction kinds the engine accepts.
type VoucherType string

const (
	Transfer      VoucherType = "TRANSFER"
	Remittance    VoucherType = "REMITTANCE"
	Receipt       VoucherType = "RECEIPT"
	Payment       VoucherType = "PAYMENT"
	ExpenseEntry  VoucherType = "EXPENSE"
	ManualJournal VoucherType = "MANUAL_JOURNAL"
)

// IsValid reports whether the voucher type is one of the known types.
func (t VoucherType) IsValid() bool {
	switch t {
	case Transfer, Remittance, Receipt, Payment, ExpenseEntry, ManualJournal:
		return true
	}
	return false
}

// VoucherStatus indicates the state of a voucher entry.
type VoucherStatus string

const (
	Posted   VoucherStatus = "POSTED"
	Reversed VoucherStatus = "REVERSED"
)

// LineSide indicates whether a journal line debits or credits its account.
type LineSide string

const (
	Debit  LineSide = "DEBIT"
	Credit LineSide = "CREDIT"
)

// Voucher is an immutable ledger entry. Once created it is never mutated except
// for the remittance Converted flag and the reversal status link; corrections
// are new offsetting vouchers.
type Voucher struct {
	VoucherID   string          `json:"voucherID"` // Primary Key (UUID)
	VoucherType VoucherType     `json:"voucherType"`
	Currency    Currency        `json:"currency"`
	Amount      decimal.Decimal `json:"amount"` // Positive; zero for manual journals (lines carry amounts)
	Status      VoucherStatus   `json:"status"`

	// Type-specific account references. Boxes, offices, companies and parties
	// are all accounts in the chart; which fields are set depends on VoucherType.
	FromBoxID         string `json:"fromBoxID,omitempty"`         // transfer source
	ToBoxID           string `json:"toBoxID,omitempty"`           // transfer destination
	OfficeID          string `json:"officeID,omitempty"`          // remittance originating office
	CompanyID         string `json:"companyID,omitempty"`         // remittance company
	IntermediateBoxID string `json:"intermediateBoxID,omitempty"` // remittance in-transit box
	BoxID             string `json:"boxID,omitempty"`             // receipt/payment/expense cash or bank box
	PartyID           string `json:"partyID,omitempty"`           // receipt/payment client or supplier account
	CounterAccountID  string `json:"counterAccountID,omitempty"`  // resolved revenue/expense account
	Category          string `json:"category,omitempty"`          // business category used for resolution

	Lines []VoucherLine `json:"lines,omitempty"` // manual journal legs only

	Converted bool   `json:"converted"` // remittance settlement flag
	Notes     string `json:"notes"`

	// Reversal linkage; a reversal is a new voucher, never an edit.
	OriginalVoucherID  string `json:"originalVoucherID,omitempty"`
	ReversingVoucherID string `json:"reversingVoucherID,omitempty"`

	IdempotencyKey string `json:"idempotencyKey,omitempty"`

	// Seq is the engine-assigned insertion order, the tiebreak for entries
	// sharing the same CreatedAt.
	Seq       int64     `json:"seq"`
	CreatedAt time.Time `json:"createdAt"` // Engine-assigned at commit, never caller-supplied
	CreatedBy string    `json:"createdBy"`
}

// VoucherLine is a single manual-journal leg affecting one account.
type VoucherLine struct {
	LineID    string          `json:"lineID"`
	VoucherID string          `json:"voucherID"`
	AccountID string          `json:"accountID"`
	Side      LineSide        `json:"side"`
	Amount    decimal.Decimal `json:"amount"` // Positive
	Notes     string          `json:"notes,omitempty"`
}
