package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// StatementEntry is one row of an account statement: the effect of a single
// voucher on the account, with the running balance after it was applied.
type StatementEntry struct {
	VoucherID      string          `json:"voucherID"`
	VoucherType    VoucherType     `json:"voucherType"`
	Currency       Currency        `json:"currency"`
	Side           LineSide        `json:"side"`   // Which side of the voucher this account is on
	Amount         decimal.Decimal `json:"amount"` // Positive magnitude
	RunningBalance decimal.Decimal `json:"runningBalance"`
	Notes          string          `json:"notes,omitempty"`
	Seq            int64           `json:"seq"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// StatementPage is one page of an account statement. NextCursor is empty when
// the stream is exhausted.
type StatementPage struct {
	AccountID  string           `json:"accountID"`
	Entries    []StatementEntry `json:"entries"`
	NextCursor string           `json:"nextCursor,omitempty"`
}

// DebtsRow is one client or supplier account's outstanding amounts, grouped by
// currency. USD is never netted against IQD.
type DebtsRow struct {
	AccountID   string                       `json:"accountID"`
	AccountCode string                       `json:"accountCode"`
	AccountName string                       `json:"accountName"`
	Outstanding map[Currency]decimal.Decimal `json:"outstanding"`
}

// DebtsReport aggregates outstanding receivables and payables. Accounts that
// could not be read are listed in FailedAccounts rather than aborting the
// whole report.
type DebtsReport struct {
	Receivables    []DebtsRow        `json:"receivables"`
	Payables       []DebtsRow        `json:"payables"`
	FailedAccounts map[string]string `json:"failedAccounts,omitempty"` // accountID -> reason
}

// AccountBalance is an account's balance per currency, rolled up over
// descendant leaves for non-leaf accounts.
type AccountBalance struct {
	AccountID string                       `json:"accountID"`
	Code      string                       `json:"code"`
	IsLeaf    bool                         `json:"isLeaf"`
	Balances  map[Currency]decimal.Decimal `json:"balances"`
}
