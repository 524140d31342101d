package repositories

import (
	"context"

	"github.com/rihlat/travel_finance_app/internal/core/domain"
)

// ProfitRepository persists manual profit distributions.
type ProfitRepository interface {
	// SaveDistribution appends a new immutable distribution with its partner rows.
	SaveDistribution(ctx context.Context, dist domain.ManualProfitDistribution) error

	// FindDistributionByID retrieves a distribution with its partners.
	FindDistributionByID(ctx context.Context, distributionID string) (*domain.ManualProfitDistribution, error)

	// ListDistributions retrieves distributions, newest first, optionally
	// filtered by monthID (YYYY-MM).
	ListDistributions(ctx context.Context, monthID string, limit int) ([]domain.ManualProfitDistribution, error)
}
