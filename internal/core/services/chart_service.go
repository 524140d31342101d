package services

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/rihlat/travel_finance_app/internal/apperrors"
	"github.com/rihlat/travel_finance_app/internal/core/domain"
	portsrepo "github.com/rihlat/travel_finance_app/internal/core/ports/repositories"
	portssvc "github.com/rihlat/travel_finance_app/internal/core/ports/services"
	"github.com/rihlat/travel_finance_app/internal/dto"
)

const treePageSize = 100

// chartServiceImpl implements the ChartSvcFacade interface
type chartServiceImpl struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewChartService creates a new chart-of-accounts service
func NewChartService(repo portsrepo.AccountRepositoryFacade) portssvc.ChartSvcFacade {
	return &chartServiceImpl{accountRepo: repo}
}

// Ensure chartServiceImpl implements the ChartSvcFacade interface
var _ portssvc.ChartSvcFacade = (*chartServiceImpl)(nil)

func (s *chartServiceImpl) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	if !req.AccountType.IsValid() {
		return nil, fmt.Errorf("%w: unknown account type %s", apperrors.ErrValidation, req.AccountType)
	}

	now := time.Now()

	parentID := ""
	parentCode := ""
	if req.ParentCode != nil && *req.ParentCode != "" {
		parent, err := s.accountRepo.FindAccountByCode(ctx, *req.ParentCode)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: code %s", ErrInvalidParent, *req.ParentCode)
			}
			s.LogError(ctx, err, "Failed to find parent account",
				slog.String("parent_code", *req.ParentCode))
			return nil, err
		}
		if parent.AccountType != req.AccountType {
			return nil, fmt.Errorf("%w: child type %s does not match parent type %s",
				apperrors.ErrValidation, req.AccountType, parent.AccountType)
		}
		if parent.IsLeaf {
			// Attaching a child demotes the parent to an aggregation node.
			// A parent that already carries postings cannot be demoted,
			// postings live on leaves only.
			hasPostings, err := s.accountRepo.HasPostings(ctx, parent.AccountID)
			if err != nil {
				s.LogError(ctx, err, "Failed to check parent postings",
					slog.String("parent_id", parent.AccountID))
				return nil, err
			}
			if hasPostings {
				return nil, fmt.Errorf("%w: parent %s has postings and cannot become an aggregation node",
					ErrInvalidOperation, parent.Code)
			}
			if err := s.accountRepo.MarkNonLeaf(ctx, parent.AccountID, userID); err != nil {
				s.LogError(ctx, err, "Failed to demote parent account",
					slog.String("parent_id", parent.AccountID))
				return nil, err
			}
		}
		parentID = parent.AccountID
		parentCode = parent.Code
	}

	account := domain.Account{
		AccountID:       uuid.NewString(),
		Code:            req.Code,
		Name:            req.Name,
		AccountType:     req.AccountType,
		ParentAccountID: parentID,
		ParentCode:      parentCode,
		IsLeaf:          true,
		Description:     req.Description,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateCode, req.Code)
		}
		s.LogError(ctx, err, "Failed to save account", slog.String("code", req.Code))
		return nil, err
	}

	s.LogInfo(ctx, "Account created",
		slog.String("account_id", account.AccountID),
		slog.String("code", account.Code))
	return &account, nil
}

func (s *chartServiceImpl) ResolveAccount(ctx context.Context, code string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByCode(ctx, code)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		s.LogError(ctx, err, "Failed to resolve account", slog.String("code", code))
		return nil, err
	}
	return account, nil
}

func (s *chartServiceImpl) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		s.LogError(ctx, err, "Failed to get account", slog.String("account_id", accountID))
		return nil, err
	}
	return account, nil
}

// ListTree yields every account ordered by code. Each range restarts from the
// top; pages are fetched on demand so large charts never load at once.
func (s *chartServiceImpl) ListTree(ctx context.Context) iter.Seq2[domain.Account, error] {
	return func(yield func(domain.Account, error) bool) {
		afterCode := ""
		for {
			page, err := s.accountRepo.ListAccountsAfterCode(ctx, afterCode, treePageSize)
			if err != nil {
				yield(domain.Account{}, err)
				return
			}
			for _, account := range page {
				if !yield(account, nil) {
					return
				}
			}
			if len(page) < treePageSize {
				return
			}
			afterCode = page[len(page)-1].Code
		}
	}
}

func (s *chartServiceImpl) DeleteAccount(ctx context.Context, code string, userID string) error {
	account, err := s.accountRepo.FindAccountByCode(ctx, code)
	if err != nil {
		return err
	}

	hasPostings, err := s.accountRepo.HasPostings(ctx, account.AccountID)
	if err != nil {
		s.LogError(ctx, err, "Failed to check postings before delete",
			slog.String("account_id", account.AccountID))
		return err
	}
	if hasPostings {
		return fmt.Errorf("%w: account %s has postings", ErrAccountInUse, code)
	}

	hasChildren, err := s.accountRepo.HasChildren(ctx, account.AccountID)
	if err != nil {
		s.LogError(ctx, err, "Failed to check children before delete",
			slog.String("account_id", account.AccountID))
		return err
	}
	if hasChildren {
		return fmt.Errorf("%w: account %s has children", ErrAccountInUse, code)
	}

	if err := s.accountRepo.DeleteAccount(ctx, account.AccountID); err != nil {
		s.LogError(ctx, err, "Failed to delete account", slog.String("code", code))
		return err
	}

	s.LogInfo(ctx, "Account deleted", slog.String("code", code))
	return nil
}

// chartEntry is one row of the default chart.
type chartEntry struct {
	Code        string
	Name        string
	AccountType domain.AccountType
	ParentCode  string
	Description string
}

// defaultChart is the standard travel-agency chart. Parents precede children
// so seeding can run top-down in a single pass.
var defaultChart = []chartEntry{
	{Code: "1000", Name: "Assets", AccountType: domain.Asset},
	{Code: "1100", Name: "Cash Boxes", AccountType: domain.Asset, ParentCode: "1000"},
	{Code: "1110", Name: "Main Cash Box USD", AccountType: domain.Asset, ParentCode: "1100"},
	{Code: "1120", Name: "Main Cash Box IQD", AccountType: domain.Asset, ParentCode: "1100"},
	{Code: "1200", Name: "Bank Accounts", AccountType: domain.Asset, ParentCode: "1000"},
	{Code: "1210", Name: "Main Bank Account", AccountType: domain.Asset, ParentCode: "1200"},
	{Code: "1300", Name: "Receivables", AccountType: domain.Asset, ParentCode: "1000", Description: "Amounts owed to the agency"},
	{Code: "1310", Name: "Office Receivables", AccountType: domain.Asset, ParentCode: "1300"},
	{Code: "1320", Name: "Customer Receivables", AccountType: domain.Asset, ParentCode: "1300"},
	{Code: "2000", Name: "Liabilities", AccountType: domain.Liability},
	{Code: "2100", Name: "Payables", AccountType: domain.Liability, ParentCode: "2000", Description: "Amounts the agency owes"},
	{Code: "2110", Name: "Airline Payables", AccountType: domain.Liability, ParentCode: "2100"},
	{Code: "2120", Name: "Supplier Payables", AccountType: domain.Liability, ParentCode: "2100"},
	{Code: "4000", Name: "Revenue", AccountType: domain.Income},
	{Code: "4100", Name: "Ticket Sales", AccountType: domain.Income, ParentCode: "4000"},
	{Code: "4200", Name: "Visa Services", AccountType: domain.Income, ParentCode: "4000"},
	{Code: "4300", Name: "Hotel Commissions", AccountType: domain.Income, ParentCode: "4000"},
	{Code: "5000", Name: "Expenses", AccountType: domain.Expense},
	{Code: "5100", Name: "Salaries", AccountType: domain.Expense, ParentCode: "5000"},
	{Code: "5200", Name: "Rent", AccountType: domain.Expense, ParentCode: "5000"},
	{Code: "5300", Name: "Office Expenses", AccountType: domain.Expense, ParentCode: "5000"},
}

// SeedDefaultChart installs the standard chart. Codes already present are
// skipped, so rerunning is harmless.
func (s *chartServiceImpl) SeedDefaultChart(ctx context.Context, userID string) error {
	for _, entry := range defaultChart {
		_, err := s.accountRepo.FindAccountByCode(ctx, entry.Code)
		if err == nil {
			continue
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("failed to check seed code %s: %w", entry.Code, err)
		}

		req := dto.CreateAccountRequest{
			Code:        entry.Code,
			Name:        entry.Name,
			AccountType: entry.AccountType,
			Description: entry.Description,
		}
		if entry.ParentCode != "" {
			parentCode := entry.ParentCode
			req.ParentCode = &parentCode
		}
		if _, err := s.CreateAccount(ctx, req, userID); err != nil {
			// Another seeder may have won the race for this code.
			if errors.Is(err, apperrors.ErrDuplicate) {
				continue
			}
			return fmt.Errorf("failed to seed account %s: %w", entry.Code, err)
		}
	}
	return nil
}
