package mapping

import (
	"github.com/rihlat/travel_finance_app/internal/core/domain"
	"github.com/rihlat/travel_finance_app/internal/models"
)

// ToModelVoucher converts a domain Voucher to a model Voucher
func ToModelVoucher(d domain.Voucher) models.Voucher {
	return models.Voucher{
		VoucherID:          d.VoucherID,
		VoucherType:        string(d.VoucherType),
		Currency:           string(d.Currency),
		Amount:             d.Amount,
		Status:             string(d.Status),
		FromBoxID:          d.FromBoxID,
		ToBoxID:            d.ToBoxID,
		OfficeID:           d.OfficeID,
		CompanyID:          d.CompanyID,
		IntermediateBoxID:  d.IntermediateBoxID,
		BoxID:              d.BoxID,
		PartyID:            d.PartyID,
		CounterAccountID:   d.CounterAccountID,
		Category:           d.Category,
		Converted:          d.Converted,
		Notes:              d.Notes,
		OriginalVoucherID:  d.OriginalVoucherID,
		ReversingVoucherID: d.ReversingVoucherID,
		IdempotencyKey:     d.IdempotencyKey,
		Seq:                d.Seq,
		CreatedAt:          d.CreatedAt,
		CreatedBy:          d.CreatedBy,
	}
}

// ToDomainVoucher converts a model Voucher (and its lines, if any) to a domain Voucher
func ToDomainVoucher(m models.Voucher, lines []models.VoucherLine) domain.Voucher {
	d := domain.Voucher{
		VoucherID:          m.VoucherID,
		VoucherType:        domain.VoucherType(m.VoucherType),
		Currency:           domain.Currency(m.Currency),
		Amount:             m.Amount,
		Status:             domain.VoucherStatus(m.Status),
		FromBoxID:          m.FromBoxID,
		ToBoxID:            m.ToBoxID,
		OfficeID:           m.OfficeID,
		CompanyID:          m.CompanyID,
		IntermediateBoxID:  m.IntermediateBoxID,
		BoxID:              m.BoxID,
		PartyID:            m.PartyID,
		CounterAccountID:   m.CounterAccountID,
		Category:           m.Category,
		Converted:          m.Converted,
		Notes:              m.Notes,
		OriginalVoucherID:  m.OriginalVoucherID,
		ReversingVoucherID: m.ReversingVoucherID,
		IdempotencyKey:     m.IdempotencyKey,
		Seq:                m.Seq,
		CreatedAt:          m.CreatedAt,
		CreatedBy:          m.CreatedBy,
	}
	if len(lines) > 0 {
		d.Lines = make([]domain.VoucherLine, len(lines))
		for i, line := range lines {
			d.Lines[i] = ToDomainVoucherLine(line)
		}
	}
	return d
}

// ToModelVoucherLine converts a domain VoucherLine to a model VoucherLine
func ToModelVoucherLine(d domain.VoucherLine) models.VoucherLine {
	return models.VoucherLine{
		LineID:    d.LineID,
		VoucherID: d.VoucherID,
		AccountID: d.AccountID,
		Side:      string(d.Side),
		Amount:    d.Amount,
		Notes:     d.Notes,
	}
}

// ToDomainVoucherLine converts a model VoucherLine to a domain VoucherLine
func ToDomainVoucherLine(m models.VoucherLine) domain.VoucherLine {
	return domain.VoucherLine{
		LineID:    m.LineID,
		VoucherID: m.VoucherID,
		AccountID: m.AccountID,
		Side:      domain.LineSide(m.Side),
		Amount:    m.Amount,
		Notes:     m.Notes,
	}
}
