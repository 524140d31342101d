package services

import (
	portsrepo "github.com/rihlat/travel_finance_app/internal/core/ports/repositories"
	portssvc "github.com/rihlat/travel_finance_app/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Mapping comes first, the voucher engine and reporting resolve through it
	container.Mapping = NewMappingService(repos.MappingRepo)

	container.Chart = NewChartService(repos.AccountRepo)
	container.Voucher = NewVoucherService(repos.VoucherRepo, repos.AccountRepo, container.Mapping, repos.Counters)
	container.Reporting = NewReportingService(repos.VoucherRepo, repos.AccountRepo, repos.ReportingRepo, container.Mapping)
	container.Profit = NewProfitService(repos.ProfitRepo)
	container.Counter = NewCounterService(repos.Counters)

	return container
}
