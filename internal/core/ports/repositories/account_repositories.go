package repositories

import (
	"context"

	"github.com/rihlat/travel_finance_app/internal/core/domain"
)

// AccountReader defines read operations for chart-of-accounts data
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountByCode retrieves an account by its human-assigned code.
	FindAccountByCode(ctx context.Context, code string) (*domain.Account, error)

	// FindAccountsByIDs retrieves multiple accounts by their IDs.
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// ListAccountsAfterCode retrieves accounts ordered by code, strictly after
	// the given code. Used for restartable tree iteration.
	ListAccountsAfterCode(ctx context.Context, afterCode string, limit int) ([]domain.Account, error)

	// FindLeafAccountsUnder retrieves all leaf accounts in the subtree rooted
	// at the given account, the root included when it is itself a leaf.
	FindLeafAccountsUnder(ctx context.Context, rootAccountID string) ([]domain.Account, error)

	// HasPostings reports whether any voucher references the account.
	HasPostings(ctx context.Context, accountID string) (bool, error)

	// HasChildren reports whether any account points at this one as parent.
	HasChildren(ctx context.Context, accountID string) (bool, error)
}

// AccountWriter defines write operations for chart-of-accounts data
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// MarkNonLeaf demotes an account from leaf to aggregation node.
	MarkNonLeaf(ctx context.Context, accountID string, userID string) error

	// DeleteAccount removes an account row. Callers must ensure it is
	// unreferenced first.
	DeleteAccount(ctx context.Context, accountID string) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
