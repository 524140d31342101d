package services

import (
	"context"

	"github.com/rihlat/travel_finance_app/internal/core/domain"
	"github.com/rihlat/travel_finance_app/internal/dto"
)

// ProfitSvcFacade records and lists manual profit distributions.
type ProfitSvcFacade interface {
	// SaveManualDistribution persists a new immutable distribution after
	// validating that percentages and partner amounts add up.
	SaveManualDistribution(ctx context.Context, req dto.SaveDistributionRequest, userID string) (*domain.ManualProfitDistribution, error)

	// ListDistributions retrieves distributions, optionally filtered by month.
	ListDistributions(ctx context.Context, params dto.ListDistributionsParams) ([]domain.ManualProfitDistribution, error)
}
