package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProfitPartner is one partner's share of a manual profit distribution.
type ProfitPartner struct {
	PartnerID  string          `json:"partnerID"`
	Name       string          `json:"name"`
	Percentage decimal.Decimal `json:"percentage"` // Share of 100
	Amount     decimal.Decimal `json:"amount"`     // Caller-computed share of the profit
}

// ManualProfitDistribution records how a period's profit was split between
// partners. Immutable once created; corrections are new records.
type ManualProfitDistribution struct {
	DistributionID string          `json:"distributionID"`
	FromDate       string          `json:"fromDate"` // YYYY-MM-DD
	ToDate         string          `json:"toDate"`   // YYYY-MM-DD
	MonthID        string          `json:"monthID"`  // YYYY-MM, derived from FromDate
	Profit         decimal.Decimal `json:"profit"`
	Currency       Currency        `json:"currency"`
	Partners       []ProfitPartner `json:"partners"`
	CreatedAt      time.Time       `json:"createdAt"`
	CreatedBy      string          `json:"createdBy"`
}
