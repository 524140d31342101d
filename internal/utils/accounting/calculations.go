package accounting

import (
	"fmt"

	"github.com/rihlat/travel_finance_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Posting is the effect of a voucher on a single account: one side, one
// positive amount. All voucher types reduce to postings for statement and
// balance computation.
type Posting struct {
	AccountID string
	Side      domain.LineSide
	Amount    decimal.Decimal
	Currency  domain.Currency
}

// PostingsFor expands a voucher into its account postings. The non-journal
// voucher types are single-sided by construction: the engine synthesizes the
// counter side from the fixed account references, the caller never supplies it.
func PostingsFor(v domain.Voucher) ([]Posting, error) {
	switch v.VoucherType {
	case domain.Transfer:
		return []Posting{
			{AccountID: v.ToBoxID, Side: domain.Debit, Amount: v.Amount, Currency: v.Currency},
			{AccountID: v.FromBoxID, Side: domain.Credit, Amount: v.Amount, Currency: v.Currency},
		}, nil
	case domain.Remittance:
		// Cash leaves the intermediate box; the remittance company owes the
		// amount until the office confirms conversion.
		return []Posting{
			{AccountID: v.CompanyID, Side: domain.Debit, Amount: v.Amount, Currency: v.Currency},
			{AccountID: v.IntermediateBoxID, Side: domain.Credit, Amount: v.Amount, Currency: v.Currency},
		}, nil
	case domain.Receipt:
		return []Posting{
			{AccountID: v.BoxID, Side: domain.Debit, Amount: v.Amount, Currency: v.Currency},
			{AccountID: v.CounterAccountID, Side: domain.Credit, Amount: v.Amount, Currency: v.Currency},
		}, nil
	case domain.Payment, domain.ExpenseEntry:
		return []Posting{
			{AccountID: v.CounterAccountID, Side: domain.Debit, Amount: v.Amount, Currency: v.Currency},
			{AccountID: v.BoxID, Side: domain.Credit, Amount: v.Amount, Currency: v.Currency},
		}, nil
	case domain.ManualJournal:
		postings := make([]Posting, 0, len(v.Lines))
		for _, line := range v.Lines {
			postings = append(postings, Posting{
				AccountID: line.AccountID,
				Side:      line.Side,
				Amount:    line.Amount,
				Currency:  v.Currency,
			})
		}
		return postings, nil
	default:
		return nil, fmt.Errorf("unknown voucher type '%s' for voucher %s", v.VoucherType, v.VoucherID)
	}
}

// PostingFor returns the voucher's posting against a specific account, or nil
// when the voucher does not touch the account.
func PostingFor(v domain.Voucher, accountID string) (*Posting, error) {
	postings, err := PostingsFor(v)
	if err != nil {
		return nil, err
	}
	for i := range postings {
		if postings[i].AccountID == accountID {
			return &postings[i], nil
		}
	}
	return nil, nil
}

// SignedAmount is the posting's contribution to its account's balance:
// positive for debits, negative for credits. Statements and debts sums use
// this single convention so running balances stay consistent across reports.
func SignedAmount(p Posting) decimal.Decimal {
	if p.Side == domain.Debit {
		return p.Amount
	}
	return p.Amount.Neg()
}

// ValidateJournalLines checks that manual-journal legs are positive and that
// debits equal credits.
func ValidateJournalLines(lines []domain.VoucherLine) error {
	if len(lines) < 2 {
		return fmt.Errorf("manual journal must have at least two lines")
	}

	zero := decimal.NewFromInt(0)
	debits := zero
	credits := zero

	for _, line := range lines {
		if line.Amount.LessThanOrEqual(zero) {
			return fmt.Errorf("line amount must be positive for account %s", line.AccountID)
		}
		switch line.Side {
		case domain.Debit:
			debits = debits.Add(line.Amount)
		case domain.Credit:
			credits = credits.Add(line.Amount)
		default:
			return fmt.Errorf("unknown line side '%s' for account %s", line.Side, line.AccountID)
		}
	}

	if !debits.Equal(credits) {
		return fmt.Errorf("debits sum is %s and credits sum is %s", debits.String(), credits.String())
	}

	return nil
}
