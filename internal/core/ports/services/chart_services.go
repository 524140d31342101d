package services

import (
	"context"
	"iter"

	"github.com/rihlat/travel_finance_app/internal/core/domain"
	"github.com/rihlat/travel_finance_app/internal/dto"
)

// ChartReaderSvc defines read operations for the chart of accounts
type ChartReaderSvc interface {
	// ResolveAccount retrieves an account by its human-assigned code.
	ResolveAccount(ctx context.Context, code string) (*domain.Account, error)

	// GetAccountByID retrieves an account by its unique identifier.
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// ListTree yields every account ordered by code. The sequence is lazy and
	// restartable: it pages the registry on demand and can be ranged over
	// multiple times.
	ListTree(ctx context.Context) iter.Seq2[domain.Account, error]
}

// ChartWriterSvc defines write operations for the chart of accounts
type ChartWriterSvc interface {
	// CreateAccount registers a new account under an optional parent.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.Account, error)

	// DeleteAccount removes an account that has no postings and no children.
	DeleteAccount(ctx context.Context, code string, userID string) error

	// SeedDefaultChart installs the standard travel-agency chart. Codes that
	// already exist are left untouched, so seeding is idempotent.
	SeedDefaultChart(ctx context.Context, userID string) error
}

// ChartSvcFacade combines all chart-of-accounts service interfaces
type ChartSvcFacade interface {
	ChartReaderSvc
	ChartWriterSvc
}
