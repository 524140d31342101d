package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	AccountRepo   AccountRepositoryFacade
	VoucherRepo   VoucherRepositoryFacade
	MappingRepo   MappingRepository
	ProfitRepo    ProfitRepository
	ReportingRepo ReportingRepository
	Counters      CounterStore
}
