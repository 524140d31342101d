package services

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rihlat/travel_finance_app/internal/apperrors"
	"github.com/rihlat/travel_finance_app/internal/core/domain"
	portsrepo "github.com/rihlat/travel_finance_app/internal/core/ports/repositories"
	portssvc "github.com/rihlat/travel_finance_app/internal/core/ports/services"
	"github.com/rihlat/travel_finance_app/internal/dto"
	"github.com/rihlat/travel_finance_app/internal/utils/accounting"
	"github.com/rihlat/travel_finance_app/internal/utils/pagination"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const dateLayout = "2006-01-02"

// debtsFanout caps concurrent per-account balance reads in the debts report.
const debtsFanout = 8

// reportingServiceImpl implements the ReportingSvcFacade interface
type reportingServiceImpl struct {
	BaseService
	voucherRepo   portsrepo.VoucherReader
	accountRepo   portsrepo.AccountReader
	reportingRepo portsrepo.ReportingRepository
	mappingSvc    portssvc.MappingSvcFacade
}

// NewReportingService creates a new reporting service
func NewReportingService(
	voucherRepo portsrepo.VoucherReader,
	accountRepo portsrepo.AccountReader,
	reportingRepo portsrepo.ReportingRepository,
	mappingSvc portssvc.MappingSvcFacade,
) portssvc.ReportingSvcFacade {
	return &reportingServiceImpl{
		voucherRepo:   voucherRepo,
		accountRepo:   accountRepo,
		reportingRepo: reportingRepo,
		mappingSvc:    mappingSvc,
	}
}

// Ensure reportingServiceImpl implements the ReportingSvcFacade interface
var _ portssvc.ReportingSvcFacade = (*reportingServiceImpl)(nil)

// ComputeAccountStatement walks the account's vouchers in posting order and
// accumulates a running balance. The cursor carries the balance at the page
// boundary, so continuation never rescans earlier entries.
func (s *reportingServiceImpl) ComputeAccountStatement(ctx context.Context, accountID string, query dto.StatementQuery) (*domain.StatementPage, error) {
	if _, err := s.accountRepo.FindAccountByID(ctx, accountID); err != nil {
		return nil, err
	}

	balance := decimal.NewFromInt(0)
	var after pagination.StatementCursor
	if query.Cursor != "" {
		c, err := pagination.DecodeStatementCursor(query.Cursor)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		after = c
		balance = c.Balance
	}

	from, to, err := parseDateWindow(query.From, query.To)
	if err != nil {
		return nil, err
	}

	limit := query.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	vouchers, err := s.voucherRepo.ListVouchersForAccount(ctx, accountID, from, to, after.CreatedAt, after.Seq, limit)
	if err != nil {
		s.LogError(ctx, err, "Failed to list vouchers for statement")
		return nil, err
	}

	page := &domain.StatementPage{AccountID: accountID, Entries: []domain.StatementEntry{}}
	for _, v := range vouchers {
		posting, err := accounting.PostingFor(v, accountID)
		if err != nil {
			return nil, err
		}
		if posting == nil {
			// Attribution-only reference, no balance effect.
			continue
		}
		balance = balance.Add(accounting.SignedAmount(*posting))
		page.Entries = append(page.Entries, domain.StatementEntry{
			VoucherID:      v.VoucherID,
			VoucherType:    v.VoucherType,
			Currency:       posting.Currency,
			Side:           posting.Side,
			Amount:         posting.Amount,
			RunningBalance: balance,
			Notes:          v.Notes,
			Seq:            v.Seq,
			CreatedAt:      v.CreatedAt,
		})
	}

	if len(vouchers) == limit {
		last := vouchers[len(vouchers)-1]
		page.NextCursor = pagination.EncodeStatementCursor(pagination.StatementCursor{
			CreatedAt: last.CreatedAt,
			Seq:       last.Seq,
			Balance:   balance,
		})
	}
	return page, nil
}

func parseDateWindow(fromStr, toStr string) (*time.Time, *time.Time, error) {
	var from, to *time.Time
	if fromStr != "" {
		t, err := time.Parse(dateLayout, fromStr)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid from date %q", apperrors.ErrValidation, fromStr)
		}
		from = &t
	}
	if toStr != "" {
		t, err := time.Parse(dateLayout, toStr)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid to date %q", apperrors.ErrValidation, toStr)
		}
		// Inclusive upper bound covers the whole day.
		end := t.Add(24*time.Hour - time.Nanosecond)
		to = &end
	}
	if from != nil && to != nil && to.Before(*from) {
		return nil, nil, fmt.Errorf("%w: to date precedes from date", apperrors.ErrValidation)
	}
	return from, to, nil
}

// ComputeDebtsReport sums outstanding amounts for every leaf under the mapped
// receivable and payable roots. Account reads fan out concurrently; a failed
// read lands in FailedAccounts and the report still returns, alongside a
// PartialFailure error listing what was skipped.
func (s *reportingServiceImpl) ComputeDebtsReport(ctx context.Context) (*domain.DebtsReport, error) {
	m, err := s.mappingSvc.GetMapping(ctx)
	if err != nil {
		return nil, err
	}

	report := &domain.DebtsReport{
		Receivables: []domain.DebtsRow{},
		Payables:    []domain.DebtsRow{},
	}
	failures := map[string]error{}

	if m.ReceivableAccountID != "" {
		rows, errs := s.sumSubtreeLeaves(ctx, m.ReceivableAccountID)
		report.Receivables = rows
		for id, e := range errs {
			failures[id] = e
		}
	}
	if m.PayableAccountID != "" {
		rows, errs := s.sumSubtreeLeaves(ctx, m.PayableAccountID)
		report.Payables = rows
		for id, e := range errs {
			failures[id] = e
		}
	}

	if len(failures) > 0 {
		report.FailedAccounts = make(map[string]string, len(failures))
		for id, e := range failures {
			report.FailedAccounts[id] = e.Error()
		}
		return report, apperrors.NewPartialFailure(failures)
	}
	return report, nil
}

// sumSubtreeLeaves computes per-currency sums for every leaf under root.
// Leaves with all-zero sums are omitted, they owe and are owed nothing.
func (s *reportingServiceImpl) sumSubtreeLeaves(ctx context.Context, rootAccountID string) ([]domain.DebtsRow, map[string]error) {
	leaves, err := s.accountRepo.FindLeafAccountsUnder(ctx, rootAccountID)
	if err != nil {
		return []domain.DebtsRow{}, map[string]error{rootAccountID: err}
	}

	var mu sync.Mutex
	rows := make([]domain.DebtsRow, 0, len(leaves))
	failures := map[string]error{}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(debtsFanout)
	for _, leaf := range leaves {
		g.Go(func() error {
			sums, err := s.reportingRepo.SumAccountPostings(gctx, leaf.AccountID)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failures[leaf.AccountID] = err
				return nil
			}
			outstanding := make(map[domain.Currency]decimal.Decimal)
			for currency, amount := range sums {
				if !amount.IsZero() {
					outstanding[currency] = amount
				}
			}
			if len(outstanding) > 0 {
				rows = append(rows, domain.DebtsRow{
					AccountID:   leaf.AccountID,
					AccountCode: leaf.Code,
					AccountName: leaf.Name,
					Outstanding: outstanding,
				})
			}
			return nil
		})
	}
	_ = g.Wait()

	sort.Slice(rows, func(i, j int) bool { return rows[i].AccountCode < rows[j].AccountCode })
	return rows, failures
}

// AccountBalance computes the account's per-currency balance. A non-leaf
// account's balance is the sum over its descendant leaves.
func (s *reportingServiceImpl) AccountBalance(ctx context.Context, code string) (*domain.AccountBalance, error) {
	account, err := s.accountRepo.FindAccountByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	balance := &domain.AccountBalance{
		AccountID: account.AccountID,
		Code:      account.Code,
		IsLeaf:    account.IsLeaf,
		Balances:  make(map[domain.Currency]decimal.Decimal),
	}

	if account.IsLeaf {
		sums, err := s.reportingRepo.SumAccountPostings(ctx, account.AccountID)
		if err != nil {
			return nil, err
		}
		balance.Balances = sums
		return balance, nil
	}

	leaves, err := s.accountRepo.FindLeafAccountsUnder(ctx, account.AccountID)
	if err != nil {
		return nil, err
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(debtsFanout)
	for _, leaf := range leaves {
		g.Go(func() error {
			sums, err := s.reportingRepo.SumAccountPostings(gctx, leaf.AccountID)
			if err != nil {
				return fmt.Errorf("account %s: %w", leaf.AccountID, err)
			}
			mu.Lock()
			defer mu.Unlock()
			for currency, amount := range sums {
				balance.Balances[currency] = balance.Balances[currency].Add(amount)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.LogError(ctx, err, "Failed to roll up account balance")
		return nil, err
	}
	return balance, nil
}
