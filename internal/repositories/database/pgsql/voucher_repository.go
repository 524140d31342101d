package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rihlat/travel_finance_app/internal/apperrors"
	"github.com/rihlat/travel_finance_app/internal/core/domain"
	portsrepo "github.com/rihlat/travel_finance_app/internal/core/ports/repositories"
	"github.com/rihlat/travel_finance_app/internal/models"
	"github.com/rihlat/travel_finance_app/internal/utils/mapping"
)

const voucherColumns = `voucher_id, voucher_type, currency, amount, status,
	from_box_id, to_box_id, office_id, company_id, intermediate_box_id,
	box_id, party_id, counter_account_id, category, converted, notes,
	original_voucher_id, reversing_voucher_id, idempotency_key,
	seq, created_at, created_by`

type PgxVoucherRepository struct {
	BaseRepository
}

// newPgxVoucherRepository creates a new repository for ledger entry data.
func newPgxVoucherRepository(pool *pgxpool.Pool) portsrepo.VoucherRepositoryWithTx {
	return &PgxVoucherRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxVoucherRepository implements portsrepo.VoucherRepositoryWithTx
var _ portsrepo.VoucherRepositoryWithTx = (*PgxVoucherRepository)(nil)

func nullable(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// SaveVoucher appends a voucher and its lines within a DB transaction and
// returns the voucher carrying the store-assigned seq. Insertion is
// all-or-nothing: a failed post leaves no partial entry behind.
func (r *PgxVoucherRepository) SaveVoucher(ctx context.Context, voucher domain.Voucher) (*domain.Voucher, error) {
	modelVoucher := mapping.ToModelVoucher(voucher)

	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	// Will be ignored if transaction is committed successfully
	defer r.Rollback(ctx, tx)

	voucherQuery := `
		INSERT INTO vouchers (
			voucher_id, voucher_type, currency, amount, status,
			from_box_id, to_box_id, office_id, company_id, intermediate_box_id,
			box_id, party_id, counter_account_id, category, converted, notes,
			original_voucher_id, reversing_voucher_id, idempotency_key,
			created_at, created_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)
		RETURNING seq;
	`
	err = tx.QueryRow(ctx, voucherQuery,
		modelVoucher.VoucherID,
		modelVoucher.VoucherType,
		modelVoucher.Currency,
		modelVoucher.Amount,
		modelVoucher.Status,
		nullable(modelVoucher.FromBoxID),
		nullable(modelVoucher.ToBoxID),
		nullable(modelVoucher.OfficeID),
		nullable(modelVoucher.CompanyID),
		nullable(modelVoucher.IntermediateBoxID),
		nullable(modelVoucher.BoxID),
		nullable(modelVoucher.PartyID),
		nullable(modelVoucher.CounterAccountID),
		nullable(modelVoucher.Category),
		modelVoucher.Converted,
		modelVoucher.Notes,
		nullable(modelVoucher.OriginalVoucherID),
		nullable(modelVoucher.ReversingVoucherID),
		nullable(modelVoucher.IdempotencyKey),
		modelVoucher.CreatedAt,
		modelVoucher.CreatedBy,
	).Scan(&modelVoucher.Seq)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return nil, fmt.Errorf("%w: idempotency key %s already used", apperrors.ErrDuplicate, modelVoucher.IdempotencyKey)
		}
		return nil, apperrors.NewAppError(500, "failed to insert voucher "+modelVoucher.VoucherID, err)
	}

	if len(voucher.Lines) > 0 {
		batch := &pgx.Batch{}
		lineQuery := `
			INSERT INTO voucher_lines (line_id, voucher_id, account_id, side, amount, notes)
			VALUES ($1, $2, $3, $4, $5, $6);
		`
		for _, line := range voucher.Lines {
			modelLine := mapping.ToModelVoucherLine(line)
			batch.Queue(lineQuery,
				modelLine.LineID,
				modelLine.VoucherID,
				modelLine.AccountID,
				modelLine.Side,
				modelLine.Amount,
				modelLine.Notes,
			)
		}
		br := tx.SendBatch(ctx, batch)
		for range voucher.Lines {
			if _, err := br.Exec(); err != nil {
				br.Close()
				return nil, apperrors.NewAppError(500, "failed to insert voucher lines for "+modelVoucher.VoucherID, err)
			}
		}
		if err := br.Close(); err != nil {
			return nil, apperrors.NewAppError(500, "failed to close line batch for "+modelVoucher.VoucherID, err)
		}
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	saved := voucher
	saved.Seq = modelVoucher.Seq
	return &saved, nil
}

func scanVoucherRow(row pgx.Row) (*models.Voucher, error) {
	var m models.Voucher
	var fromBox, toBox, office, company, intermediate, box, party, counter, category sql.NullString
	var original, reversing, idemKey sql.NullString

	err := row.Scan(
		&m.VoucherID,
		&m.VoucherType,
		&m.Currency,
		&m.Amount,
		&m.Status,
		&fromBox,
		&toBox,
		&office,
		&company,
		&intermediate,
		&box,
		&party,
		&counter,
		&category,
		&m.Converted,
		&m.Notes,
		&original,
		&reversing,
		&idemKey,
		&m.Seq,
		&m.CreatedAt,
		&m.CreatedBy,
	)
	if err != nil {
		return nil, err
	}

	m.FromBoxID = fromBox.String
	m.ToBoxID = toBox.String
	m.OfficeID = office.String
	m.CompanyID = company.String
	m.IntermediateBoxID = intermediate.String
	m.BoxID = box.String
	m.PartyID = party.String
	m.CounterAccountID = counter.String
	m.Category = category.String
	m.OriginalVoucherID = original.String
	m.ReversingVoucherID = reversing.String
	m.IdempotencyKey = idemKey.String
	return &m, nil
}

func (r *PgxVoucherRepository) findLines(ctx context.Context, voucherID string) ([]models.VoucherLine, error) {
	query := `
		SELECT line_id, voucher_id, account_id, side, amount, notes
		FROM voucher_lines
		WHERE voucher_id = $1
		ORDER BY line_id ASC;
	`
	rows, err := r.Pool.Query(ctx, query, voucherID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lines for voucher %s: %w", voucherID, err)
	}
	defer rows.Close()

	var lines []models.VoucherLine
	for rows.Next() {
		var line models.VoucherLine
		if err := rows.Scan(&line.LineID, &line.VoucherID, &line.AccountID, &line.Side, &line.Amount, &line.Notes); err != nil {
			return nil, fmt.Errorf("failed to scan line row for voucher %s: %w", voucherID, err)
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

// FindVoucherByID retrieves a voucher and its lines by ID.
func (r *PgxVoucherRepository) FindVoucherByID(ctx context.Context, voucherID string) (*domain.Voucher, error) {
	query := `SELECT ` + voucherColumns + ` FROM vouchers WHERE voucher_id = $1;`

	m, err := scanVoucherRow(r.Pool.QueryRow(ctx, query, voucherID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find voucher by ID %s: %w", voucherID, err)
	}

	return r.attachLines(ctx, m)
}

// FindVoucherByIdempotencyKey retrieves the voucher created under a key.
func (r *PgxVoucherRepository) FindVoucherByIdempotencyKey(ctx context.Context, key string) (*domain.Voucher, error) {
	query := `SELECT ` + voucherColumns + ` FROM vouchers WHERE idempotency_key = $1;`

	m, err := scanVoucherRow(r.Pool.QueryRow(ctx, query, key))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find voucher by idempotency key: %w", err)
	}

	return r.attachLines(ctx, m)
}

func (r *PgxVoucherRepository) attachLines(ctx context.Context, m *models.Voucher) (*domain.Voucher, error) {
	var lines []models.VoucherLine
	if m.VoucherType == string(domain.ManualJournal) {
		var err error
		lines, err = r.findLines(ctx, m.VoucherID)
		if err != nil {
			return nil, err
		}
	}
	d := mapping.ToDomainVoucher(*m, lines)
	return &d, nil
}

// ListVouchers retrieves vouchers ordered by (created_at, seq) ascending,
// strictly after the given keyset position.
func (r *PgxVoucherRepository) ListVouchers(ctx context.Context, afterCreatedAt time.Time, afterSeq int64, limit int) ([]domain.Voucher, error) {
	query := `
		SELECT ` + voucherColumns + `
		FROM vouchers
		WHERE (created_at, seq) > ($1, $2)
		ORDER BY created_at ASC, seq ASC
		LIMIT $3;
	`

	rows, err := r.Pool.Query(ctx, query, afterCreatedAt, afterSeq, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list vouchers: %w", err)
	}
	defer rows.Close()

	return r.collectVouchers(ctx, rows)
}

// ListVouchersForAccount retrieves vouchers touching the account via any
// reference field or a manual-journal line, within the optional date window.
func (r *PgxVoucherRepository) ListVouchersForAccount(ctx context.Context, accountID string, from, to *time.Time, afterCreatedAt time.Time, afterSeq int64, limit int) ([]domain.Voucher, error) {
	query := `
		SELECT ` + voucherColumns + `
		FROM vouchers
		WHERE (from_box_id = $1 OR to_box_id = $1 OR office_id = $1 OR company_id = $1
			OR intermediate_box_id = $1 OR box_id = $1 OR party_id = $1 OR counter_account_id = $1
			OR voucher_id IN (SELECT voucher_id FROM voucher_lines WHERE account_id = $1))
			AND (created_at, seq) > ($2, $3)
			AND ($4::timestamptz IS NULL OR created_at >= $4)
			AND ($5::timestamptz IS NULL OR created_at <= $5)
		ORDER BY created_at ASC, seq ASC
		LIMIT $6;
	`

	rows, err := r.Pool.Query(ctx, query, accountID, afterCreatedAt, afterSeq, from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list vouchers for account %s: %w", accountID, err)
	}
	defer rows.Close()

	return r.collectVouchers(ctx, rows)
}

func (r *PgxVoucherRepository) collectVouchers(ctx context.Context, rows pgx.Rows) ([]domain.Voucher, error) {
	var ms []*models.Voucher
	for rows.Next() {
		m, err := scanVoucherRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan voucher row: %w", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating voucher rows: %w", err)
	}
	rows.Close()

	vouchers := make([]domain.Voucher, 0, len(ms))
	for _, m := range ms {
		d, err := r.attachLines(ctx, m)
		if err != nil {
			return nil, err
		}
		vouchers = append(vouchers, *d)
	}
	return vouchers, nil
}

// SettleRemittance flips converted from false to true with a single
// conditional update, the only read-modify-write in the ledger. The WHERE
// clause is the compare half of the compare-and-set: a concurrent settler
// finds zero rows and gets ErrConflict.
func (r *PgxVoucherRepository) SettleRemittance(ctx context.Context, voucherID string, userID string, now time.Time) error {
	query := `
		UPDATE vouchers
		SET converted = TRUE, settled_at = $3, settled_by = $4
		WHERE voucher_id = $1 AND voucher_type = $2 AND converted = FALSE;
	`

	tag, err := r.Pool.Exec(ctx, query, voucherID, string(domain.Remittance), now, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to settle remittance "+voucherID, err)
	}
	if tag.RowsAffected() == 1 {
		return nil
	}

	// No row updated: distinguish unknown, wrong type, and already settled.
	var voucherType string
	var converted bool
	err = r.Pool.QueryRow(ctx, `SELECT voucher_type, converted FROM vouchers WHERE voucher_id = $1;`, voucherID).
		Scan(&voucherType, &converted)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to inspect remittance %s after settle miss: %w", voucherID, err)
	}
	if voucherType != string(domain.Remittance) {
		return fmt.Errorf("%w: voucher %s is not a remittance", apperrors.ErrValidation, voucherID)
	}
	if converted {
		return fmt.Errorf("%w: remittance %s already settled", apperrors.ErrConflict, voucherID)
	}
	return fmt.Errorf("settle of remittance %s updated no rows", voucherID)
}

// MarkReversed links the original voucher to its reversing entry.
func (r *PgxVoucherRepository) MarkReversed(ctx context.Context, originalID, reversingID string) error {
	query := `
		UPDATE vouchers
		SET status = $3, reversing_voucher_id = $2
		WHERE voucher_id = $1 AND status = $4;
	`

	tag, err := r.Pool.Exec(ctx, query, originalID, reversingID, string(domain.Reversed), string(domain.Posted))
	if err != nil {
		return apperrors.NewAppError(500, "failed to mark voucher "+originalID+" reversed", err)
	}
	if tag.RowsAffected() == 0 {
		var status string
		err = r.Pool.QueryRow(ctx, `SELECT status FROM vouchers WHERE voucher_id = $1;`, originalID).Scan(&status)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.ErrNotFound
			}
			return fmt.Errorf("failed to inspect voucher %s after reversal miss: %w", originalID, err)
		}
		return fmt.Errorf("%w: voucher %s already reversed", apperrors.ErrConflict, originalID)
	}
	return nil
}
