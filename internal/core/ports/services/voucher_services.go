package services

import (
	"context"

	"github.com/rihlat/travel_finance_app/internal/core/domain"
	"github.com/rihlat/travel_finance_app/internal/dto"
)

// VoucherReaderSvc defines read operations for vouchers
type VoucherReaderSvc interface {
	// GetVoucher retrieves a voucher and its lines by ID.
	GetVoucher(ctx context.Context, voucherID string) (*domain.Voucher, error)

	// ListVouchers retrieves one page of vouchers ordered by posting time.
	ListVouchers(ctx context.Context, params dto.ListVouchersParams) ([]domain.Voucher, string, error)
}

// VoucherWriterSvc defines the posting operations. This service is the only
// writer of ledger entries.
type VoucherWriterSvc interface {
	// PostVoucher validates and appends a new ledger entry. A request
	// replaying a previously seen idempotency key returns the original
	// voucher instead of posting twice.
	PostVoucher(ctx context.Context, req dto.PostVoucherRequest, userID string) (*domain.Voucher, error)

	// SettleRemittance transitions a remittance's converted flag to true
	// exactly once; a second call returns ErrAlreadySettled.
	SettleRemittance(ctx context.Context, voucherID string, userID string) (*domain.Voucher, error)

	// ReverseVoucher appends an offsetting entry for the given voucher and
	// links the two. The original entry is never edited or deleted.
	ReverseVoucher(ctx context.Context, voucherID string, userID string) (*domain.Voucher, error)
}

// VoucherSvcFacade combines all voucher service interfaces
type VoucherSvcFacade interface {
	VoucherReaderSvc
	VoucherWriterSvc
}
