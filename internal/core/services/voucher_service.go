package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/rihlat/travel_finance_app/internal/apperrors"
	"github.com/rihlat/travel_finance_app/internal/core/domain"
	portsrepo "github.com/rihlat/travel_finance_app/internal/core/ports/repositories"
	portssvc "github.com/rihlat/travel_finance_app/internal/core/ports/services"
	"github.com/rihlat/travel_finance_app/internal/dto"
	"github.com/rihlat/travel_finance_app/internal/utils/accounting"
	"github.com/rihlat/travel_finance_app/internal/utils/pagination"
	"github.com/shopspring/decimal"
)

// Counter IDs maintained by the posting path. The monthly counter gets the
// posting month appended as a YYYY-MM suffix.
const (
	voucherCounterID      = "vouchers"
	voucherCounterMonthly = "vouchers:"
)

// voucherServiceImpl implements the VoucherSvcFacade interface. It is the only
// writer of ledger entries; everything else reads what it appended.
type voucherServiceImpl struct {
	BaseService
	voucherRepo portsrepo.VoucherRepositoryFacade
	accountRepo portsrepo.AccountReader
	mappingSvc  portssvc.MappingSvcFacade
	counters    portsrepo.CounterStore
}

// NewVoucherService creates a new voucher posting service
func NewVoucherService(
	voucherRepo portsrepo.VoucherRepositoryFacade,
	accountRepo portsrepo.AccountReader,
	mappingSvc portssvc.MappingSvcFacade,
	counters portsrepo.CounterStore,
) portssvc.VoucherSvcFacade {
	return &voucherServiceImpl{
		voucherRepo: voucherRepo,
		accountRepo: accountRepo,
		mappingSvc:  mappingSvc,
		counters:    counters,
	}
}

// Ensure voucherServiceImpl implements the VoucherSvcFacade interface
var _ portssvc.VoucherSvcFacade = (*voucherServiceImpl)(nil)

func (s *voucherServiceImpl) PostVoucher(ctx context.Context, req dto.PostVoucherRequest, userID string) (*domain.Voucher, error) {
	if !req.VoucherType.IsValid() {
		return nil, fmt.Errorf("%w: unknown voucher type %s", apperrors.ErrValidation, req.VoucherType)
	}
	if !req.Currency.IsValid() {
		return nil, fmt.Errorf("%w: unknown currency %s", apperrors.ErrValidation, req.Currency)
	}

	// Replay check before any validation work. The key either maps to the
	// voucher it created or is free.
	if req.IdempotencyKey != "" {
		existing, err := s.voucherRepo.FindVoucherByIdempotencyKey(ctx, req.IdempotencyKey)
		if err == nil {
			s.LogDebug(ctx, "Idempotent replay, returning original voucher",
				slog.String("voucher_id", existing.VoucherID))
			return existing, nil
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
	}

	voucher := domain.Voucher{
		VoucherID:         uuid.NewString(),
		VoucherType:       req.VoucherType,
		Currency:          req.Currency,
		Amount:            req.Amount,
		Status:            domain.Posted,
		FromBoxID:         req.FromBoxID,
		ToBoxID:           req.ToBoxID,
		OfficeID:          req.OfficeID,
		CompanyID:         req.CompanyID,
		IntermediateBoxID: req.IntermediateBoxID,
		BoxID:             req.BoxID,
		PartyID:           req.PartyID,
		Category:          req.Category,
		Notes:             req.Notes,
		IdempotencyKey:    req.IdempotencyKey,
		CreatedAt:         time.Now(),
		CreatedBy:         userID,
	}

	if err := s.prepareByType(ctx, &voucher, req); err != nil {
		return nil, err
	}

	if err := s.validatePostingAccounts(ctx, voucher); err != nil {
		return nil, err
	}

	saved, err := s.voucherRepo.SaveVoucher(ctx, voucher)
	if err != nil {
		// A concurrent request with the same key may have won the insert.
		if errors.Is(err, apperrors.ErrDuplicate) && req.IdempotencyKey != "" {
			return s.voucherRepo.FindVoucherByIdempotencyKey(ctx, req.IdempotencyKey)
		}
		s.LogError(ctx, err, "Failed to save voucher", slog.String("voucher_id", voucher.VoucherID))
		return nil, err
	}

	s.bumpCounters(ctx, saved.CreatedAt)

	s.LogInfo(ctx, "Voucher posted",
		slog.String("voucher_id", saved.VoucherID),
		slog.String("voucher_type", string(saved.VoucherType)),
		slog.Int64("seq", saved.Seq))
	return saved, nil
}

// prepareByType enforces the per-type field contract and resolves the counter
// account where the type needs one.
func (s *voucherServiceImpl) prepareByType(ctx context.Context, v *domain.Voucher, req dto.PostVoucherRequest) error {
	zero := decimal.NewFromInt(0)
	if v.VoucherType != domain.ManualJournal && v.Amount.LessThanOrEqual(zero) {
		if v.VoucherType == domain.Transfer {
			return fmt.Errorf("%w: amount must be positive", ErrInvalidTransfer)
		}
		return fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}

	switch v.VoucherType {
	case domain.Transfer:
		if v.FromBoxID == "" || v.ToBoxID == "" {
			return fmt.Errorf("%w: fromBoxID and toBoxID are required", ErrInvalidTransfer)
		}
		if v.FromBoxID == v.ToBoxID {
			return fmt.Errorf("%w: source and destination are the same box", ErrInvalidTransfer)
		}

	case domain.Remittance:
		if v.OfficeID == "" || v.CompanyID == "" || v.IntermediateBoxID == "" {
			return fmt.Errorf("%w: officeID, companyID and intermediateBoxID are required", apperrors.ErrValidation)
		}

	case domain.Receipt:
		if v.BoxID == "" {
			return fmt.Errorf("%w: boxID is required", apperrors.ErrValidation)
		}
		counter, err := s.resolveReceiptCounter(ctx, v)
		if err != nil {
			return err
		}
		v.CounterAccountID = counter

	case domain.Payment, domain.ExpenseEntry:
		if v.BoxID == "" {
			return fmt.Errorf("%w: boxID is required", apperrors.ErrValidation)
		}
		counter, err := s.resolveOutflowCounter(ctx, v)
		if err != nil {
			return err
		}
		v.CounterAccountID = counter

	case domain.ManualJournal:
		lines := make([]domain.VoucherLine, len(req.Lines))
		for i, l := range req.Lines {
			lines[i] = domain.VoucherLine{
				LineID:    uuid.NewString(),
				VoucherID: v.VoucherID,
				AccountID: l.AccountID,
				Side:      l.Side,
				Amount:    l.Amount,
				Notes:     l.Notes,
			}
		}
		if err := accounting.ValidateJournalLines(lines); err != nil {
			return fmt.Errorf("%w: %v", ErrUnbalanced, err)
		}
		v.Lines = lines
		v.Amount = zero
	}
	return nil
}

// resolveReceiptCounter picks the account credited by a receipt. A named party
// settles their own account; otherwise the business category resolves through
// the revenue map, with the default cash slot as fallback when direct cash
// revenue is allowed.
func (s *voucherServiceImpl) resolveReceiptCounter(ctx context.Context, v *domain.Voucher) (string, error) {
	if v.PartyID != "" {
		return v.PartyID, nil
	}

	m, err := s.mappingSvc.GetMapping(ctx)
	if err != nil {
		return "", err
	}
	if v.Category != "" {
		if accountID, ok := m.RevenueMap[v.Category]; ok && accountID != "" {
			return accountID, nil
		}
	}
	if m.PreventDirectCashRevenue {
		return "", fmt.Errorf("%w: %q has no revenue account", ErrUnmappedCategory, v.Category)
	}
	if m.DefaultCashID == "" {
		return "", fmt.Errorf("%w: no default cash account configured", ErrInvalidAccountReference)
	}
	return m.DefaultCashID, nil
}

// resolveOutflowCounter picks the account debited by a payment or expense.
func (s *voucherServiceImpl) resolveOutflowCounter(ctx context.Context, v *domain.Voucher) (string, error) {
	if v.PartyID != "" {
		return v.PartyID, nil
	}

	m, err := s.mappingSvc.GetMapping(ctx)
	if err != nil {
		return "", err
	}
	if v.Category != "" {
		if accountID, ok := m.ExpenseMap[v.Category]; ok && accountID != "" {
			return accountID, nil
		}
	}
	return "", fmt.Errorf("%w: %q has no expense account", ErrUnmappedCategory, v.Category)
}

// validatePostingAccounts checks that every posting account exists and is a
// leaf, and that attribution references exist.
func (s *voucherServiceImpl) validatePostingAccounts(ctx context.Context, v domain.Voucher) error {
	postings, err := accounting.PostingsFor(v)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	ids := make([]string, 0, len(postings)+2)
	for _, p := range postings {
		ids = append(ids, p.AccountID)
	}
	// Attribution fields carry no posting but must still name real accounts.
	if v.OfficeID != "" {
		ids = append(ids, v.OfficeID)
	}
	if v.PartyID != "" && v.PartyID != v.CounterAccountID {
		ids = append(ids, v.PartyID)
	}

	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, ids)
	if err != nil {
		s.LogError(ctx, err, "Failed to load accounts for posting validation")
		return err
	}

	for _, p := range postings {
		account, ok := accounts[p.AccountID]
		if !ok {
			return fmt.Errorf("%w: account %s", ErrInvalidAccountReference, p.AccountID)
		}
		if !account.IsLeaf {
			return fmt.Errorf("%w: account %s is not a leaf", ErrInvalidAccountReference, p.AccountID)
		}
	}
	for _, id := range []string{v.OfficeID, v.PartyID} {
		if id == "" {
			continue
		}
		if _, ok := accounts[id]; !ok {
			return fmt.Errorf("%w: account %s", ErrInvalidAccountReference, id)
		}
	}
	return nil
}

// bumpCounters is best effort. A posted voucher is committed; a counter miss
// is logged and left for reconciliation rather than failing the post.
func (s *voucherServiceImpl) bumpCounters(ctx context.Context, postedAt time.Time) {
	if err := s.counters.Increment(ctx, voucherCounterID, 1); err != nil {
		s.LogError(ctx, err, "Failed to increment voucher counter")
	}
	monthly := voucherCounterMonthly + postedAt.Format("2006-01")
	if err := s.counters.Increment(ctx, monthly, 1); err != nil {
		s.LogError(ctx, err, "Failed to increment monthly voucher counter",
			slog.String("counter_id", monthly))
	}
}

func (s *voucherServiceImpl) SettleRemittance(ctx context.Context, voucherID string, userID string) (*domain.Voucher, error) {
	err := s.voucherRepo.SettleRemittance(ctx, voucherID, userID, time.Now())
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, fmt.Errorf("%w: %s", ErrAlreadySettled, voucherID)
		}
		return nil, err
	}

	s.LogInfo(ctx, "Remittance settled",
		slog.String("voucher_id", voucherID),
		slog.String("settled_by", userID))
	return s.voucherRepo.FindVoucherByID(ctx, voucherID)
}

func (s *voucherServiceImpl) ReverseVoucher(ctx context.Context, voucherID string, userID string) (*domain.Voucher, error) {
	original, err := s.voucherRepo.FindVoucherByID(ctx, voucherID)
	if err != nil {
		return nil, err
	}
	if original.Status == domain.Reversed || original.ReversingVoucherID != "" {
		return nil, fmt.Errorf("%w: %s", ErrAlreadyReversed, voucherID)
	}

	postings, err := accounting.PostingsFor(*original)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	// The reversal is a manual journal holding the original postings with
	// flipped sides. It balances by construction.
	reversing := domain.Voucher{
		VoucherID:         uuid.NewString(),
		VoucherType:       domain.ManualJournal,
		Currency:          original.Currency,
		Amount:            decimal.NewFromInt(0),
		Status:            domain.Posted,
		Notes:             fmt.Sprintf("Reversal of voucher %s", original.VoucherID),
		OriginalVoucherID: original.VoucherID,
		CreatedAt:         time.Now(),
		CreatedBy:         userID,
	}
	reversing.Lines = make([]domain.VoucherLine, len(postings))
	for i, p := range postings {
		side := domain.Debit
		if p.Side == domain.Debit {
			side = domain.Credit
		}
		reversing.Lines[i] = domain.VoucherLine{
			LineID:    uuid.NewString(),
			VoucherID: reversing.VoucherID,
			AccountID: p.AccountID,
			Side:      side,
			Amount:    p.Amount,
		}
	}

	saved, err := s.voucherRepo.SaveVoucher(ctx, reversing)
	if err != nil {
		s.LogError(ctx, err, "Failed to save reversing voucher",
			slog.String("original_id", original.VoucherID))
		return nil, err
	}

	if err := s.voucherRepo.MarkReversed(ctx, original.VoucherID, saved.VoucherID); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, fmt.Errorf("%w: %s", ErrAlreadyReversed, voucherID)
		}
		return nil, err
	}

	s.bumpCounters(ctx, saved.CreatedAt)

	s.LogInfo(ctx, "Voucher reversed",
		slog.String("original_id", original.VoucherID),
		slog.String("reversing_id", saved.VoucherID))
	return saved, nil
}

func (s *voucherServiceImpl) GetVoucher(ctx context.Context, voucherID string) (*domain.Voucher, error) {
	return s.voucherRepo.FindVoucherByID(ctx, voucherID)
}

func (s *voucherServiceImpl) ListVouchers(ctx context.Context, params dto.ListVouchersParams) ([]domain.Voucher, string, error) {
	var after pagination.KeysetCursor
	if params.Cursor != "" {
		c, err := pagination.DecodeKeysetCursor(params.Cursor)
		if err != nil {
			return nil, "", fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		after = c
	}

	limit := params.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	vouchers, err := s.voucherRepo.ListVouchers(ctx, after.CreatedAt, after.Seq, limit)
	if err != nil {
		s.LogError(ctx, err, "Failed to list vouchers")
		return nil, "", err
	}

	nextCursor := ""
	if len(vouchers) == limit {
		last := vouchers[len(vouchers)-1]
		nextCursor = pagination.EncodeKeysetCursor(pagination.KeysetCursor{
			CreatedAt: last.CreatedAt,
			Seq:       last.Seq,
		})
	}
	return vouchers, nextCursor, nil
}
