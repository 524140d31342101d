package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ManualProfitDistribution is a manual_monthly_profits row.
type ManualProfitDistribution struct {
	DistributionID string          `db:"distribution_id"`
	FromDate       string          `db:"from_date"`
	ToDate         string          `db:"to_date"`
	MonthID        string          `db:"month_id"` // Indexed
	Profit         decimal.Decimal `db:"profit"`
	Currency       string          `db:"currency"`
	CreatedAt      time.Time       `db:"created_at"`
	CreatedBy      string          `db:"created_by"`
}

// ProfitPartner is a profit_partners row, one partner share per distribution.
type ProfitPartner struct {
	DistributionID string          `db:"distribution_id"`
	PartnerID      string          `db:"partner_id"`
	Name           string          `db:"name"`
	Percentage     decimal.Decimal `db:"percentage"`
	Amount         decimal.Decimal `db:"amount"`
}
