package dto

import (
	"time"

	"github.com/rihlat/travel_finance_app/internal/core/domain"
	"github.com/rihlat/travel_finance_app/internal/utils"
	"github.com/shopspring/decimal"
)

// StatementQuery defines query parameters for an account statement.
// Dates are inclusive YYYY-MM-DD bounds; both are optional.
type StatementQuery struct {
	From   string `form:"from"`
	To     string `form:"to"`
	Cursor string `form:"cursor"`
	Limit  int    `form:"limit,default=50"`
}

// StatementEntryResponse is one statement row with its running balance.
type StatementEntryResponse struct {
	VoucherID      string          `json:"voucherID"`
	VoucherType    string          `json:"voucherType"`
	Currency       string          `json:"currency"`
	Side           string          `json:"side"`
	Amount         decimal.Decimal `json:"amount"`
	AmountDisplay  string          `json:"amountDisplay"`
	RunningBalance decimal.Decimal `json:"runningBalance"`
	Notes          string          `json:"notes,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// StatementResponse is one page of an account statement.
type StatementResponse struct {
	AccountID  string                   `json:"accountID"`
	Entries    []StatementEntryResponse `json:"entries"`
	NextCursor string                   `json:"nextCursor,omitempty"`
}

// ToStatementResponse converts a domain statement page to its response DTO.
func ToStatementResponse(page *domain.StatementPage) StatementResponse {
	resp := StatementResponse{
		AccountID:  page.AccountID,
		Entries:    make([]StatementEntryResponse, len(page.Entries)),
		NextCursor: page.NextCursor,
	}
	for i, e := range page.Entries {
		resp.Entries[i] = StatementEntryResponse{
			VoucherID:      e.VoucherID,
			VoucherType:    string(e.VoucherType),
			Currency:       string(e.Currency),
			Side:           string(e.Side),
			Amount:         e.Amount,
			AmountDisplay:  utils.FormatWithCurrencyPrecision(e.Amount, e.Currency),
			RunningBalance: e.RunningBalance,
			Notes:          e.Notes,
			CreatedAt:      e.CreatedAt,
		}
	}
	return resp
}

// DebtsRowResponse is one account's outstanding amounts per currency.
type DebtsRowResponse struct {
	AccountID   string            `json:"accountID"`
	AccountCode string            `json:"accountCode"`
	AccountName string            `json:"accountName"`
	Outstanding map[string]string `json:"outstanding"` // currency -> formatted amount
}

// DebtsReportResponse is the full debts report with per-account failures, if any.
type DebtsReportResponse struct {
	Receivables    []DebtsRowResponse `json:"receivables"`
	Payables       []DebtsRowResponse `json:"payables"`
	FailedAccounts map[string]string  `json:"failedAccounts,omitempty"`
}

// ToDebtsReportResponse converts a domain debts report to its response DTO.
func ToDebtsReportResponse(report *domain.DebtsReport) DebtsReportResponse {
	return DebtsReportResponse{
		Receivables:    toDebtsRows(report.Receivables),
		Payables:       toDebtsRows(report.Payables),
		FailedAccounts: report.FailedAccounts,
	}
}

func toDebtsRows(rows []domain.DebtsRow) []DebtsRowResponse {
	res := make([]DebtsRowResponse, len(rows))
	for i, row := range rows {
		outstanding := make(map[string]string, len(row.Outstanding))
		for currency, amount := range row.Outstanding {
			outstanding[string(currency)] = utils.FormatWithCurrencyPrecision(amount, currency)
		}
		res[i] = DebtsRowResponse{
			AccountID:   row.AccountID,
			AccountCode: row.AccountCode,
			AccountName: row.AccountName,
			Outstanding: outstanding,
		}
	}
	return res
}

// AccountBalanceResponse is an account's per-currency balance, rolled up over
// descendant leaves for non-leaf accounts.
type AccountBalanceResponse struct {
	AccountID string            `json:"accountID"`
	Code      string            `json:"code"`
	IsLeaf    bool              `json:"isLeaf"`
	Balances  map[string]string `json:"balances"` // currency -> formatted amount
}

// ToAccountBalanceResponse converts a domain balance to its response DTO.
func ToAccountBalanceResponse(b *domain.AccountBalance) AccountBalanceResponse {
	balances := make(map[string]string, len(b.Balances))
	for currency, amount := range b.Balances {
		balances[string(currency)] = utils.FormatWithCurrencyPrecision(amount, currency)
	}
	return AccountBalanceResponse{
		AccountID: b.AccountID,
		Code:      b.Code,
		IsLeaf:    b.IsLeaf,
		Balances:  balances,
	}
}

// CounterResponse is the summed total of a sharded counter.
type CounterResponse struct {
	CounterID string `json:"counterID"`
	Total     int64  `json:"total"`
}
