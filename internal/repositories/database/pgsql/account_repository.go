package pgsql

import (
	"context"
	"database/sql"
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

const accountColumns = `account_id, code, name, account_type, parent_account_id, parent_code, is_leaf, description, created_at, created_by, last_updated_at, last_updated_by`

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for chart-of-accounts data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepositoryFacade
var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

// SaveAccount inserts a new account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	modelAcc := mapping.ToModelAccount(account)

	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	// Use sql.NullString for the nullable self reference
	var parentID, parentCode sql.NullString
	if modelAcc.ParentAccountID != "" {
		parentID = sql.NullString{String: modelAcc.ParentAccountID, Valid: true}
	}
	if modelAcc.ParentCode != "" {
		parentCode = sql.NullString{String: modelAcc.ParentCode, Valid: true}
	}

	_, err := r.Pool.Exec(ctx, query,
		modelAcc.AccountID,
		modelAcc.Code,
		modelAcc.Name,
		modelAcc.AccountType,
		parentID,
		parentCode,
		modelAcc.IsLeaf,
		modelAcc.Description,
		modelAcc.CreatedAt,
		modelAcc.CreatedBy,
		modelAcc.LastUpdatedAt,
		modelAcc.LastUpdatedBy,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // Unique violation
				return fmt.Errorf("%w: account with code %s already exists", apperrors.ErrDuplicate, modelAcc.Code)
			}
		}
		return fmt.Errorf("failed to save account %s: %w", modelAcc.AccountID, err)
	}
	return nil
}

func scanAccountRow(row pgx.Row) (*domain.Account, error) {
	var modelAcc models.Account
	var parentID, parentCode sql.NullString

	err := row.Scan(
		&modelAcc.AccountID,
		&modelAcc.Code,
		&modelAcc.Name,
		&modelAcc.AccountType,
		&parentID,
		&parentCode,
		&modelAcc.IsLeaf,
		&modelAcc.Description,
		&modelAcc.CreatedAt,
		&modelAcc.CreatedBy,
		&modelAcc.LastUpdatedAt,
		&modelAcc.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}

	modelAcc.ParentAccountID = parentID.String
	modelAcc.ParentCode = parentCode.String
	domainAcc := mapping.ToDomainAccount(modelAcc)
	return &domainAcc, nil
}

// FindAccountByID retrieves an account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1;`

	acc, err := scanAccountRow(r.Pool.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account by ID %s: %w", accountID, err)
	}
	return acc, nil
}

// FindAccountByCode retrieves an account by its human-assigned code.
func (r *PgxAccountRepository) FindAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE code = $1;`

	acc, err := scanAccountRow(r.Pool.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account by code %s: %w", code, err)
	}
	return acc, nil
}

// FindAccountsByIDs retrieves multiple accounts by their IDs.
func (r *PgxAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = ANY($1);`

	rows, err := r.Pool.Query(ctx, query, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts by IDs: %w", err)
	}
	defer rows.Close()

	accountsMap := make(map[string]domain.Account)
	for rows.Next() {
		acc, err := scanAccountRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row during batch fetch: %w", err)
		}
		accountsMap[acc.AccountID] = *acc
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows during batch fetch: %w", err)
	}

	return accountsMap, nil
}

// ListAccountsAfterCode retrieves accounts ordered by code, strictly after the
// given code. An empty afterCode starts from the beginning.
func (r *PgxAccountRepository) ListAccountsAfterCode(ctx context.Context, afterCode string, limit int) ([]domain.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE code > $1
		ORDER BY code ASC
		LIMIT $2;
	`

	rows, err := r.Pool.Query(ctx, query, afterCode, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts after code %q: %w", afterCode, err)
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		acc, err := scanAccountRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row during tree listing: %w", err)
		}
		accounts = append(accounts, *acc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows during tree listing: %w", err)
	}

	return accounts, nil
}

// FindLeafAccountsUnder retrieves all leaf accounts in the subtree rooted at
// the given account using a recursive walk over parent references.
func (r *PgxAccountRepository) FindLeafAccountsUnder(ctx context.Context, rootAccountID string) ([]domain.Account, error) {
	query := `
		WITH RECURSIVE subtree AS (
			SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1
			UNION ALL
			SELECT a.account_id, a.code, a.name, a.account_type, a.parent_account_id, a.parent_code, a.is_leaf, a.description, a.created_at, a.created_by, a.last_updated_at, a.last_updated_by
			FROM accounts a
			JOIN subtree s ON a.parent_account_id = s.account_id
		)
		SELECT * FROM subtree WHERE is_leaf ORDER BY code ASC;
	`

	rows, err := r.Pool.Query(ctx, query, rootAccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to query leaf accounts under %s: %w", rootAccountID, err)
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		acc, err := scanAccountRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row during subtree fetch: %w", err)
		}
		accounts = append(accounts, *acc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows during subtree fetch: %w", err)
	}

	return accounts, nil
}

// HasPostings reports whether any voucher (or manual-journal line) references the account.
func (r *PgxAccountRepository) HasPostings(ctx context.Context, accountID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM vouchers
			WHERE from_box_id = $1 OR to_box_id = $1 OR office_id = $1 OR company_id = $1
				OR intermediate_box_id = $1 OR box_id = $1 OR party_id = $1 OR counter_account_id = $1
		) OR EXISTS (
			SELECT 1 FROM voucher_lines WHERE account_id = $1
		);
	`

	var referenced bool
	if err := r.Pool.QueryRow(ctx, query, accountID).Scan(&referenced); err != nil {
		return false, fmt.Errorf("failed to check postings for account %s: %w", accountID, err)
	}
	return referenced, nil
}

// HasChildren reports whether any account points at this one as parent.
func (r *PgxAccountRepository) HasChildren(ctx context.Context, accountID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM accounts WHERE parent_account_id = $1);`

	var hasChildren bool
	if err := r.Pool.QueryRow(ctx, query, accountID).Scan(&hasChildren); err != nil {
		return false, fmt.Errorf("failed to check children for account %s: %w", accountID, err)
	}
	return hasChildren, nil
}

// MarkNonLeaf demotes an account from leaf to aggregation node.
func (r *PgxAccountRepository) MarkNonLeaf(ctx context.Context, accountID string, userID string) error {
	query := `
		UPDATE accounts
		SET is_leaf = FALSE, last_updated_at = NOW(), last_updated_by = $2
		WHERE account_id = $1;
	`

	tag, err := r.Pool.Exec(ctx, query, accountID, userID)
	if err != nil {
		return fmt.Errorf("failed to mark account %s as non-leaf: %w", accountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteAccount removes an account row.
func (r *PgxAccountRepository) DeleteAccount(ctx context.Context, accountID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM accounts WHERE account_id = $1;`, accountID)
	if err != nil {
		return fmt.Errorf("failed to delete account %s: %w", accountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
