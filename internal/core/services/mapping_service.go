package services

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/rihlat/travel_finance_app/internal/core/domain"
	portsrepo "github.com/rihlat/travel_finance_app/internal/core/ports/repositories"
	portssvc "github.com/rihlat/travel_finance_app/internal/core/ports/services"
	"github.com/rihlat/travel_finance_app/internal/dto"
)

// mappingServiceImpl implements the MappingSvcFacade interface. Reads come
// from an in-process snapshot of the singleton row; any upsert replaces the
// snapshot with the merged result it got back from the store.
//
// Account ids in the mapping are taken as-is: they may name accounts that do
// not exist yet, so the mapping can be configured before the chart is seeded.
// Stale or unknown references surface when a voucher tries to post through
// them, not here.
type mappingServiceImpl struct {
	BaseService
	mappingRepo portsrepo.MappingRepository
	snapshot    atomic.Pointer[domain.FinanceAccountMapping]
}

// NewMappingService creates a new finance-account-mapping service
func NewMappingService(mappingRepo portsrepo.MappingRepository) portssvc.MappingSvcFacade {
	return &mappingServiceImpl{
		mappingRepo: mappingRepo,
	}
}

// Ensure mappingServiceImpl implements the MappingSvcFacade interface
var _ portssvc.MappingSvcFacade = (*mappingServiceImpl)(nil)

func (s *mappingServiceImpl) GetMapping(ctx context.Context) (domain.FinanceAccountMapping, error) {
	if cached := s.snapshot.Load(); cached != nil {
		return *cached, nil
	}

	m, err := s.mappingRepo.GetMapping(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to load finance account mapping")
		return domain.FinanceAccountMapping{}, err
	}
	s.snapshot.Store(&m)
	return m, nil
}

func (s *mappingServiceImpl) UpsertMapping(ctx context.Context, req dto.UpsertMappingRequest, userID string) (domain.FinanceAccountMapping, error) {
	patch := req.ToMappingPatch()

	merged, err := s.mappingRepo.UpsertMapping(ctx, patch, userID, time.Now())
	if err != nil {
		s.LogError(ctx, err, "Failed to upsert finance account mapping")
		return domain.FinanceAccountMapping{}, err
	}

	s.snapshot.Store(&merged)
	s.LogInfo(ctx, "Finance account mapping updated", slog.String("updated_by", userID))
	return merged, nil
}
