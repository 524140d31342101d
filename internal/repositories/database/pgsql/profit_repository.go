package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rihlat/travel_finance_app/internal/apperrors"
	"github.com/rihlat/travel_finance_app/internal/core/domain"
	portsrepo "github.com/rihlat/travel_finance_app/internal/core/ports/repositories"
	"github.com/rihlat/travel_finance_app/internal/models"
	"github.com/rihlat/travel_finance_app/internal/utils/mapping"
)

// PgxProfitRepository persists manual profit distributions.
type PgxProfitRepository struct {
	BaseRepository
}

func newPgxProfitRepository(pool *pgxpool.Pool) portsrepo.ProfitRepository {
	return &PgxProfitRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ProfitRepository = (*PgxProfitRepository)(nil)

// SaveDistribution inserts a distribution and its partner rows atomically.
func (r *PgxProfitRepository) SaveDistribution(ctx context.Context, dist domain.ManualProfitDistribution) error {
	row, partners := mapping.ToModelProfitDistribution(dist)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	// Will be ignored if transaction is committed successfully
	defer r.Rollback(ctx, tx)

	distQuery := `
		INSERT INTO manual_monthly_profits (
			distribution_id, from_date, to_date, month_id, profit, currency, created_at, created_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err = tx.Exec(ctx, distQuery,
		row.DistributionID,
		row.FromDate,
		row.ToDate,
		row.MonthID,
		row.Profit,
		row.Currency,
		row.CreatedAt,
		row.CreatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: distribution %s already exists", apperrors.ErrDuplicate, row.DistributionID)
		}
		return apperrors.NewAppError(500, "failed to insert distribution "+row.DistributionID, err)
	}

	batch := &pgx.Batch{}
	partnerQuery := `
		INSERT INTO profit_partners (distribution_id, partner_id, name, percentage, amount)
		VALUES ($1, $2, $3, $4, $5);
	`
	for _, p := range partners {
		batch.Queue(partnerQuery, p.DistributionID, p.PartnerID, p.Name, p.Percentage, p.Amount)
	}
	br := tx.SendBatch(ctx, batch)
	for range partners {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return apperrors.NewAppError(500, "failed to insert partner rows for "+row.DistributionID, err)
		}
	}
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to close partner batch for "+row.DistributionID, err)
	}

	return r.Commit(ctx, tx)
}

// FindDistributionByID retrieves a distribution with its partner rows.
func (r *PgxProfitRepository) FindDistributionByID(ctx context.Context, distributionID string) (*domain.ManualProfitDistribution, error) {
	query := `
		SELECT distribution_id, from_date, to_date, month_id, profit, currency, created_at, created_by
		FROM manual_monthly_profits
		WHERE distribution_id = $1;
	`

	var row models.ManualProfitDistribution
	err := r.Pool.QueryRow(ctx, query, distributionID).Scan(
		&row.DistributionID,
		&row.FromDate,
		&row.ToDate,
		&row.MonthID,
		&row.Profit,
		&row.Currency,
		&row.CreatedAt,
		&row.CreatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find distribution by ID %s: %w", distributionID, err)
	}

	partners, err := r.findPartners(ctx, distributionID)
	if err != nil {
		return nil, err
	}

	d := mapping.ToDomainProfitDistribution(row, partners)
	return &d, nil
}

// ListDistributions retrieves distributions newest first, optionally filtered
// by month.
func (r *PgxProfitRepository) ListDistributions(ctx context.Context, monthID string, limit int) ([]domain.ManualProfitDistribution, error) {
	query := `
		SELECT distribution_id, from_date, to_date, month_id, profit, currency, created_at, created_by
		FROM manual_monthly_profits
		WHERE ($1 = '' OR month_id = $1)
		ORDER BY created_at DESC
		LIMIT $2;
	`

	rows, err := r.Pool.Query(ctx, query, monthID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list distributions: %w", err)
	}
	defer rows.Close()

	var dists []models.ManualProfitDistribution
	for rows.Next() {
		var row models.ManualProfitDistribution
		if err := rows.Scan(
			&row.DistributionID,
			&row.FromDate,
			&row.ToDate,
			&row.MonthID,
			&row.Profit,
			&row.Currency,
			&row.CreatedAt,
			&row.CreatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan distribution row: %w", err)
		}
		dists = append(dists, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating distribution rows: %w", err)
	}
	rows.Close()

	result := make([]domain.ManualProfitDistribution, 0, len(dists))
	for _, row := range dists {
		partners, err := r.findPartners(ctx, row.DistributionID)
		if err != nil {
			return nil, err
		}
		result = append(result, mapping.ToDomainProfitDistribution(row, partners))
	}
	return result, nil
}

func (r *PgxProfitRepository) findPartners(ctx context.Context, distributionID string) ([]models.ProfitPartner, error) {
	query := `
		SELECT distribution_id, partner_id, name, percentage, amount
		FROM profit_partners
		WHERE distribution_id = $1
		ORDER BY partner_id ASC;
	`
	rows, err := r.Pool.Query(ctx, query, distributionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query partners for distribution %s: %w", distributionID, err)
	}
	defer rows.Close()

	var partners []models.ProfitPartner
	for rows.Next() {
		var p models.ProfitPartner
		if err := rows.Scan(&p.DistributionID, &p.PartnerID, &p.Name, &p.Percentage, &p.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan partner row for distribution %s: %w", distributionID, err)
		}
		partners = append(partners, p)
	}
	return partners, rows.Err()
}
