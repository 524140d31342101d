package pgsql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rihlat/travel_finance_app/internal/apperrors"
	"github.com/rihlat/travel_finance_app/internal/core/domain"
	portsrepo "github.com/rihlat/travel_finance_app/internal/core/ports/repositories"
	"github.com/rihlat/travel_finance_app/internal/models"
	"github.com/rihlat/travel_finance_app/internal/utils/mapping"
)

// PgxMappingRepository persists the singleton finance account mapping row.
type PgxMappingRepository struct {
	BaseRepository
}

func newPgxMappingRepository(pool *pgxpool.Pool) portsrepo.MappingRepository {
	return &PgxMappingRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.MappingRepository = (*PgxMappingRepository)(nil)

const mappingColumns = `receivable_account_id, payable_account_id, default_cash_id,
	default_bank_id, prevent_direct_cash_revenue, revenue_map, expense_map,
	created_at, created_by, last_updated_at, last_updated_by`

// GetMapping retrieves the mapping record, or a structurally complete empty
// one when the row has never been written.
func (r *PgxMappingRepository) GetMapping(ctx context.Context) (domain.FinanceAccountMapping, error) {
	query := `SELECT ` + mappingColumns + ` FROM finance_account_mapping WHERE id = 1;`

	m, err := scanMappingRow(r.Pool.QueryRow(ctx, query))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.EmptyFinanceAccountMapping(), nil
		}
		return domain.FinanceAccountMapping{}, fmt.Errorf("failed to get finance account mapping: %w", err)
	}
	return mapping.ToDomainFinanceAccountMapping(*m), nil
}

// UpsertMapping merges the patch into the stored row in a single statement.
// Scalars coalesce against the stored value, the category maps use jsonb
// concatenation so concurrent patches to disjoint keys both land.
func (r *PgxMappingRepository) UpsertMapping(ctx context.Context, patch domain.FinanceAccountMappingPatch, userID string, now time.Time) (domain.FinanceAccountMapping, error) {
	revenueOverlay, err := overlayJSON(patch.RevenueMap)
	if err != nil {
		return domain.FinanceAccountMapping{}, err
	}
	expenseOverlay, err := overlayJSON(patch.ExpenseMap)
	if err != nil {
		return domain.FinanceAccountMapping{}, err
	}

	query := `
		INSERT INTO finance_account_mapping (
			id, receivable_account_id, payable_account_id, default_cash_id,
			default_bank_id, prevent_direct_cash_revenue, revenue_map, expense_map,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES (
			1, COALESCE($1, ''), COALESCE($2, ''), COALESCE($3, ''),
			COALESCE($4, ''), COALESCE($5, FALSE), $6::jsonb, $7::jsonb,
			$8, $9, $8, $9
		)
		ON CONFLICT (id) DO UPDATE SET
			receivable_account_id = COALESCE($1, finance_account_mapping.receivable_account_id),
			payable_account_id = COALESCE($2, finance_account_mapping.payable_account_id),
			default_cash_id = COALESCE($3, finance_account_mapping.default_cash_id),
			default_bank_id = COALESCE($4, finance_account_mapping.default_bank_id),
			prevent_direct_cash_revenue = COALESCE($5, finance_account_mapping.prevent_direct_cash_revenue),
			revenue_map = finance_account_mapping.revenue_map || $6::jsonb,
			expense_map = finance_account_mapping.expense_map || $7::jsonb,
			last_updated_at = $8,
			last_updated_by = $9
		RETURNING ` + mappingColumns + `;`

	m, err := scanMappingRow(r.Pool.QueryRow(ctx, query,
		patch.ReceivableAccountID,
		patch.PayableAccountID,
		patch.DefaultCashID,
		patch.DefaultBankID,
		patch.PreventDirectCashRevenue,
		revenueOverlay,
		expenseOverlay,
		now,
		userID,
	))
	if err != nil {
		return domain.FinanceAccountMapping{}, apperrors.NewAppError(500, "failed to upsert finance account mapping", err)
	}
	return mapping.ToDomainFinanceAccountMapping(*m), nil
}

func scanMappingRow(row pgx.Row) (*models.FinanceAccountMapping, error) {
	var m models.FinanceAccountMapping
	err := row.Scan(
		&m.ReceivableAccountID,
		&m.PayableAccountID,
		&m.DefaultCashID,
		&m.DefaultBankID,
		&m.PreventDirectCashRevenue,
		&m.RevenueMap,
		&m.ExpenseMap,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func overlayJSON(overlay map[string]string) ([]byte, error) {
	if overlay == nil {
		overlay = map[string]string{}
	}
	b, err := json.Marshal(overlay)
	if err != nil {
		return nil, fmt.Errorf("failed to encode category map overlay: %w", err)
	}
	return b, nil
}
