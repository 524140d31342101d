package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rihlat/travel_finance_app/internal/core/domain"
	portsrepo "github.com/rihlat/travel_finance_app/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

// reportingRepository implements the ReportingRepository interface
type reportingRepository struct {
	BaseRepository
}

// newReportingRepository creates a new reporting repository
func newReportingRepository(db *pgxpool.Pool) portsrepo.ReportingRepository {
	return &reportingRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

var _ portsrepo.ReportingRepository = (*reportingRepository)(nil)

// SumAccountPostings sums the signed posting amounts for the account per
// currency. Each non-journal voucher posts to exactly two reference columns,
// which column is the debit side depends on the voucher type; journal
// vouchers carry their postings in voucher_lines. Reversed vouchers stay in
// the sum because their reversing entries cancel them out.
func (r *reportingRepository) SumAccountPostings(ctx context.Context, accountID string) (map[domain.Currency]decimal.Decimal, error) {
	query := `
		SELECT currency, SUM(delta) AS total
		FROM (
			SELECT v.currency,
				CASE v.voucher_type
					WHEN 'TRANSFER'   THEN CASE WHEN v.to_box_id = $1 THEN v.amount ELSE -v.amount END
					WHEN 'REMITTANCE' THEN CASE WHEN v.company_id = $1 THEN v.amount ELSE -v.amount END
					WHEN 'RECEIPT'    THEN CASE WHEN v.box_id = $1 THEN v.amount ELSE -v.amount END
					ELSE CASE WHEN v.counter_account_id = $1 THEN v.amount ELSE -v.amount END
				END AS delta
			FROM vouchers v
			WHERE v.voucher_type <> 'MANUAL_JOURNAL'
				AND (v.from_box_id = $1 OR v.to_box_id = $1 OR v.company_id = $1
					OR v.intermediate_box_id = $1 OR v.box_id = $1 OR v.counter_account_id = $1)
			UNION ALL
			SELECT v.currency,
				CASE WHEN l.side = 'DEBIT' THEN l.amount ELSE -l.amount END AS delta
			FROM voucher_lines l
			JOIN vouchers v ON v.voucher_id = l.voucher_id
			WHERE l.account_id = $1
		) postings
		GROUP BY currency;
	`

	rows, err := r.Pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("error querying posting sums for account %s: %w", accountID, err)
	}
	defer rows.Close()

	sums := make(map[domain.Currency]decimal.Decimal)
	for rows.Next() {
		var currency string
		var total decimal.Decimal
		if err := rows.Scan(&currency, &total); err != nil {
			return nil, fmt.Errorf("error scanning posting sum row: %w", err)
		}
		sums[domain.Currency(currency)] = total
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating posting sum rows: %w", err)
	}

	return sums, nil
}
