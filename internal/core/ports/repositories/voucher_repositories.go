package repositories

import (
	"context"
	"time"

	"github.com/rihlat/travel_finance_app/internal/core/domain"
)

// VoucherReader defines read operations for ledger entries
type VoucherReader interface {
	// FindVoucherByID retrieves a voucher and its lines by ID.
	FindVoucherByID(ctx context.Context, voucherID string) (*domain.Voucher, error)

	// FindVoucherByIdempotencyKey retrieves the voucher previously created
	// under the given key, or ErrNotFound.
	FindVoucherByIdempotencyKey(ctx context.Context, key string) (*domain.Voucher, error)

	// ListVouchers retrieves vouchers ordered by (created_at, seq) ascending,
	// strictly after the given keyset position. A zero time means from the start.
	ListVouchers(ctx context.Context, afterCreatedAt time.Time, afterSeq int64, limit int) ([]domain.Voucher, error)

	// ListVouchersForAccount retrieves vouchers touching the account (via any
	// reference field or a manual-journal line), ordered by (created_at, seq)
	// ascending, within the optional [from, to] date window and strictly after
	// the keyset position.
	ListVouchersForAccount(ctx context.Context, accountID string, from, to *time.Time, afterCreatedAt time.Time, afterSeq int64, limit int) ([]domain.Voucher, error)
}

// VoucherWriter defines write operations for ledger entries
type VoucherWriter interface {
	// SaveVoucher appends a voucher (and its lines, for manual journals) and
	// returns it with the store-assigned seq. Insertion is all-or-nothing.
	SaveVoucher(ctx context.Context, voucher domain.Voucher) (*domain.Voucher, error)

	// SettleRemittance flips converted from false to true with an atomic
	// conditional update. Returns ErrConflict when already settled and
	// ErrNotFound for an unknown voucher.
	SettleRemittance(ctx context.Context, voucherID string, userID string, now time.Time) error

	// MarkReversed links the original voucher to its reversing entry and sets
	// its status to REVERSED. The original's financial fields stay untouched.
	MarkReversed(ctx context.Context, originalID, reversingID string) error
}

// VoucherRepositoryFacade combines all voucher-related repository interfaces
type VoucherRepositoryFacade interface {
	VoucherReader
	VoucherWriter
}

// VoucherRepositoryWithTx extends VoucherRepositoryFacade with transaction capabilities
type VoucherRepositoryWithTx interface {
	VoucherRepositoryFacade
	TransactionManager
}
