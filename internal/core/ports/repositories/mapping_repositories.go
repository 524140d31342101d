package repositories

import (
	"context"
	"time"

	"github.com/rihlat/travel_finance_app/internal/core/domain"
)

// MappingRepository persists the singleton finance account mapping.
type MappingRepository interface {
	// GetMapping retrieves the mapping, or a structurally complete empty
	// record when nothing has been configured yet. Never returns ErrNotFound.
	GetMapping(ctx context.Context) (domain.FinanceAccountMapping, error)

	// UpsertMapping merges the patch into the stored record at leaf-key
	// granularity: absent fields are untouched, category maps merge key by
	// key. Concurrent upserts to disjoint keys must not clobber each other.
	UpsertMapping(ctx context.Context, patch domain.FinanceAccountMappingPatch, userID string, now time.Time) (domain.FinanceAccountMapping, error)
}
