package services

import (
	"context"

	"github.com/rihlat/travel_finance_app/internal/core/domain"
	"github.com/rihlat/travel_finance_app/internal/dto"
)

// ReportingSvcFacade defines read-only aggregate computations over the ledger.
// Both reports are pure functions of the voucher history: the same entries
// always produce the same output.
type ReportingSvcFacade interface {
	// ComputeAccountStatement produces one page of the account's statement
	// with a running balance column, continued via an opaque cursor.
	ComputeAccountStatement(ctx context.Context, accountID string, query dto.StatementQuery) (*domain.StatementPage, error)

	// ComputeDebtsReport sums outstanding receivables and payables per
	// client/supplier account, grouped by currency. Individual account read
	// failures degrade to PartialFailure instead of aborting the report.
	ComputeDebtsReport(ctx context.Context) (*domain.DebtsReport, error)

	// AccountBalance computes an account's balance per currency; for non-leaf
	// accounts this is the roll-up over descendant leaves.
	AccountBalance(ctx context.Context, code string) (*domain.AccountBalance, error)
}
