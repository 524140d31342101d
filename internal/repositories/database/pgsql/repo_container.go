package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/rihlat/travel_finance_app/internal/core/ports/repositories"
)

// NewRepositoryProvider wires the pgsql-backed repositories. The counter
// store lives in Redis and is injected separately by the caller.
func NewRepositoryProvider(dbPool *pgxpool.Pool, counters portsrepo.CounterStore) portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(dbPool)
	voucherRepo := newPgxVoucherRepository(dbPool)
	mappingRepo := newPgxMappingRepository(dbPool)
	profitRepo := newPgxProfitRepository(dbPool)
	reportingRepo := newReportingRepository(dbPool)

	return portsrepo.RepositoryProvider{
		AccountRepo:   accountRepo,
		VoucherRepo:   voucherRepo,
		MappingRepo:   mappingRepo,
		ProfitRepo:    profitRepo,
		ReportingRepo: reportingRepo,
		Counters:      counters,
	}
}
