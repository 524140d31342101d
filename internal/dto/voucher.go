package dto

import (
	"time"

	"github.com/rihlat/travel_finance_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// JournalLineRequest is one manual-journal leg in a post request.
type JournalLineRequest struct {
	AccountID string          `json:"accountID" binding:"required"`
	Side      domain.LineSide `json:"side" binding:"required,oneof=DEBIT CREDIT"`
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	Notes     string          `json:"notes"`
}

// PostVoucherRequest defines the data needed to post any voucher type.
// Which reference fields are required depends on voucherType; the engine
// validates per type.
type PostVoucherRequest struct {
	VoucherType domain.VoucherType `json:"voucherType" binding:"required,oneof=TRANSFER REMITTANCE RECEIPT PAYMENT EXPENSE MANUAL_JOURNAL"`
	Currency    domain.Currency    `json:"currency" binding:"required,oneof=USD IQD"`
	Amount      decimal.Decimal    `json:"amount"`

	FromBoxID         string `json:"fromBoxID"`
	ToBoxID           string `json:"toBoxID"`
	OfficeID          string `json:"officeID"`
	CompanyID         string `json:"companyID"`
	IntermediateBoxID string `json:"intermediateBoxID"`
	BoxID             string `json:"boxID"`
	PartyID           string `json:"partyID"`
	Category          string `json:"category"`

	Lines []JournalLineRequest `json:"lines"` // manual journal only

	Notes          string `json:"notes"`
	IdempotencyKey string `json:"idempotencyKey"`
}

// VoucherLineResponse mirrors domain.VoucherLine.
type VoucherLineResponse struct {
	LineID    string          `json:"lineID"`
	AccountID string          `json:"accountID"`
	Side      domain.LineSide `json:"side"`
	Amount    decimal.Decimal `json:"amount"`
	Notes     string          `json:"notes,omitempty"`
}

// VoucherResponse defines the data returned for a voucher.
type VoucherResponse struct {
	VoucherID   string               `json:"voucherID"`
	VoucherType domain.VoucherType   `json:"voucherType"`
	Currency    domain.Currency      `json:"currency"`
	Amount      decimal.Decimal      `json:"amount"`
	Status      domain.VoucherStatus `json:"status"`

	FromBoxID         string `json:"fromBoxID,omitempty"`
	ToBoxID           string `json:"toBoxID,omitempty"`
	OfficeID          string `json:"officeID,omitempty"`
	CompanyID         string `json:"companyID,omitempty"`
	IntermediateBoxID string `json:"intermediateBoxID,omitempty"`
	BoxID             string `json:"boxID,omitempty"`
	PartyID           string `json:"partyID,omitempty"`
	CounterAccountID  string `json:"counterAccountID,omitempty"`
	Category          string `json:"category,omitempty"`

	Lines []VoucherLineResponse `json:"lines,omitempty"`

	Converted          bool   `json:"converted"`
	Notes              string `json:"notes,omitempty"`
	OriginalVoucherID  string `json:"originalVoucherID,omitempty"`
	ReversingVoucherID string `json:"reversingVoucherID,omitempty"`

	Seq       int64     `json:"seq"`
	CreatedAt time.Time `json:"createdAt"`
	CreatedBy string    `json:"createdBy"`
}

// ToVoucherResponse converts a domain.Voucher to VoucherResponse DTO
func ToVoucherResponse(v *domain.Voucher) VoucherResponse {
	resp := VoucherResponse{
		VoucherID:          v.VoucherID,
		VoucherType:        v.VoucherType,
		Currency:           v.Currency,
		Amount:             v.Amount,
		Status:             v.Status,
		FromBoxID:          v.FromBoxID,
		ToBoxID:            v.ToBoxID,
		OfficeID:           v.OfficeID,
		CompanyID:          v.CompanyID,
		IntermediateBoxID:  v.IntermediateBoxID,
		BoxID:              v.BoxID,
		PartyID:            v.PartyID,
		CounterAccountID:   v.CounterAccountID,
		Category:           v.Category,
		Converted:          v.Converted,
		Notes:              v.Notes,
		OriginalVoucherID:  v.OriginalVoucherID,
		ReversingVoucherID: v.ReversingVoucherID,
		Seq:                v.Seq,
		CreatedAt:          v.CreatedAt,
		CreatedBy:          v.CreatedBy,
	}
	if len(v.Lines) > 0 {
		resp.Lines = make([]VoucherLineResponse, len(v.Lines))
		for i, line := range v.Lines {
			resp.Lines[i] = VoucherLineResponse{
				LineID:    line.LineID,
				AccountID: line.AccountID,
				Side:      line.Side,
				Amount:    line.Amount,
				Notes:     line.Notes,
			}
		}
	}
	return resp
}

// ToListVoucherResponse converts a slice of domain.Voucher to response DTOs
func ToListVoucherResponse(vouchers []domain.Voucher) []VoucherResponse {
	res := make([]VoucherResponse, len(vouchers))
	for i := range vouchers {
		res[i] = ToVoucherResponse(&vouchers[i])
	}
	return res
}

// ListVouchersParams defines query parameters for listing vouchers.
type ListVouchersParams struct {
	Cursor string `form:"cursor"`
	Limit  int    `form:"limit,default=50"`
}

// ListVouchersResponse is one page of vouchers with the continuation cursor.
type ListVouchersResponse struct {
	Vouchers   []VoucherResponse `json:"vouchers"`
	NextCursor string            `json:"nextCursor,omitempty"`
}
