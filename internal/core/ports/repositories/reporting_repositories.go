package repositories

import (
	"context"

	"github.com/rihlat/travel_finance_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReportingRepository defines aggregate reads over the voucher history.
type ReportingRepository interface {
	// SumAccountPostings sums the signed postings touching the account,
	// grouped by currency. Debits are positive, credits negative.
	SumAccountPostings(ctx context.Context, accountID string) (map[domain.Currency]decimal.Decimal, error)
}
