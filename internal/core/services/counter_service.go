package services

import (
	"context"

	portsrepo "github.com/rihlat/travel_finance_app/internal/core/ports/repositories"
	portssvc "github.com/rihlat/travel_finance_app/internal/core/ports/services"
)

// counterServiceImpl implements the CounterSvcFacade interface
type counterServiceImpl struct {
	BaseService
	counters portsrepo.CounterStore
}

// NewCounterService creates a new counter read service
func NewCounterService(counters portsrepo.CounterStore) portssvc.CounterSvcFacade {
	return &counterServiceImpl{counters: counters}
}

// Ensure counterServiceImpl implements the CounterSvcFacade interface
var _ portssvc.CounterSvcFacade = (*counterServiceImpl)(nil)

// ReadCounter sums the counter's shards. Unknown counters read as zero.
func (s *counterServiceImpl) ReadCounter(ctx context.Context, counterID string) (int64, error) {
	total, err := s.counters.Read(ctx, counterID)
	if err != nil {
		s.LogError(ctx, err, "Failed to read counter")
		return 0, err
	}
	return total, nil
}
