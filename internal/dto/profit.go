package dto

import (
	"time"

	"github.com/rihlat/travel_finance_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ProfitPartnerRequest is one partner share in a distribution request.
// Amounts are caller-computed; the engine validates the sums, it never corrects them.
type ProfitPartnerRequest struct {
	PartnerID  string          `json:"partnerID"`
	Name       string          `json:"name" binding:"required"`
	Percentage decimal.Decimal `json:"percentage" binding:"required"`
	Amount     decimal.Decimal `json:"amount" binding:"required"`
}

// SaveDistributionRequest defines the data needed to record a manual profit distribution.
type SaveDistributionRequest struct {
	FromDate string                 `json:"fromDate" binding:"required,datetime=2006-01-02"`
	ToDate   string                 `json:"toDate" binding:"required,datetime=2006-01-02"`
	Profit   decimal.Decimal        `json:"profit" binding:"required"`
	Currency domain.Currency        `json:"currency" binding:"required,oneof=USD IQD"`
	Partners []ProfitPartnerRequest `json:"partners" binding:"required,min=1,dive"`
}

// ProfitPartnerResponse mirrors domain.ProfitPartner.
type ProfitPartnerResponse struct {
	PartnerID  string          `json:"partnerID"`
	Name       string          `json:"name"`
	Percentage decimal.Decimal `json:"percentage"`
	Amount     decimal.Decimal `json:"amount"`
}

// DistributionResponse defines the data returned for a profit distribution.
type DistributionResponse struct {
	DistributionID string                  `json:"distributionID"`
	FromDate       string                  `json:"fromDate"`
	ToDate         string                  `json:"toDate"`
	MonthID        string                  `json:"monthID"`
	Profit         decimal.Decimal         `json:"profit"`
	Currency       domain.Currency         `json:"currency"`
	Partners       []ProfitPartnerResponse `json:"partners"`
	CreatedAt      time.Time               `json:"createdAt"`
	CreatedBy      string                  `json:"createdBy"`
}

// ToDistributionResponse converts a domain distribution to its response DTO.
func ToDistributionResponse(d *domain.ManualProfitDistribution) DistributionResponse {
	resp := DistributionResponse{
		DistributionID: d.DistributionID,
		FromDate:       d.FromDate,
		ToDate:         d.ToDate,
		MonthID:        d.MonthID,
		Profit:         d.Profit,
		Currency:       d.Currency,
		Partners:       make([]ProfitPartnerResponse, len(d.Partners)),
		CreatedAt:      d.CreatedAt,
		CreatedBy:      d.CreatedBy,
	}
	for i, p := range d.Partners {
		resp.Partners[i] = ProfitPartnerResponse{
			PartnerID:  p.PartnerID,
			Name:       p.Name,
			Percentage: p.Percentage,
			Amount:     p.Amount,
		}
	}
	return resp
}

// ToListDistributionResponse converts a slice of distributions to response DTOs.
func ToListDistributionResponse(ds []domain.ManualProfitDistribution) []DistributionResponse {
	res := make([]DistributionResponse, len(ds))
	for i := range ds {
		res[i] = ToDistributionResponse(&ds[i])
	}
	return res
}

// ListDistributionsParams defines query parameters for listing distributions.
type ListDistributionsParams struct {
	MonthID string `form:"monthID"`
	Limit   int    `form:"limit,default=24"`
}
