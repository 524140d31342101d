package services

import (
	"context"

	"github.com/rihlat/travel_finance_app/internal/core/domain"
	"github.com/rihlat/travel_finance_app/internal/dto"
)

// MappingSvcFacade manages the finance account mapping singleton. Reads are
// served from an in-process snapshot that upserts invalidate.
type MappingSvcFacade interface {
	// GetMapping returns the current mapping, or a structurally complete
	// empty record when never configured.
	GetMapping(ctx context.Context) (domain.FinanceAccountMapping, error)

	// UpsertMapping merges a partial update and returns the result.
	UpsertMapping(ctx context.Context, req dto.UpsertMappingRequest, userID string) (domain.FinanceAccountMapping, error)
}
