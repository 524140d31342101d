package mapping

import (
	"github.com/rihlat/travel_finance_app/internal/core/domain"
	"github.com/rihlat/travel_finance_app/internal/models"
)

// ToModelProfitDistribution converts a domain distribution to its row plus partner rows.
func ToModelProfitDistribution(d domain.ManualProfitDistribution) (models.ManualProfitDistribution, []models.ProfitPartner) {
	row := models.ManualProfitDistribution{
		DistributionID: d.DistributionID,
		FromDate:       d.FromDate,
		ToDate:         d.ToDate,
		MonthID:        d.MonthID,
		Profit:         d.Profit,
		Currency:       string(d.Currency),
		CreatedAt:      d.CreatedAt,
		CreatedBy:      d.CreatedBy,
	}
	partners := make([]models.ProfitPartner, len(d.Partners))
	for i, p := range d.Partners {
		partners[i] = models.ProfitPartner{
			DistributionID: d.DistributionID,
			PartnerID:      p.PartnerID,
			Name:           p.Name,
			Percentage:     p.Percentage,
			Amount:         p.Amount,
		}
	}
	return row, partners
}

// ToDomainProfitDistribution converts a distribution row and its partner rows to domain form.
func ToDomainProfitDistribution(m models.ManualProfitDistribution, partners []models.ProfitPartner) domain.ManualProfitDistribution {
	d := domain.ManualProfitDistribution{
		DistributionID: m.DistributionID,
		FromDate:       m.FromDate,
		ToDate:         m.ToDate,
		MonthID:        m.MonthID,
		Profit:         m.Profit,
		Currency:       domain.Currency(m.Currency),
		CreatedAt:      m.CreatedAt,
		CreatedBy:      m.CreatedBy,
		Partners:       make([]domain.ProfitPartner, len(partners)),
	}
	for i, p := range partners {
		d.Partners[i] = domain.ProfitPartner{
			PartnerID:  p.PartnerID,
			Name:       p.Name,
			Percentage: p.Percentage,
			Amount:     p.Amount,
		}
	}
	return d
}
