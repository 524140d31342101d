package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/rihlat/travel_finance_app/internal/apperrors"
	"github.com/rihlat/travel_finance_app/internal/core/domain"
	portsrepo "github.com/rihlat/travel_finance_app/internal/core/ports/repositories"
	portssvc "github.com/rihlat/travel_finance_app/internal/core/ports/services"
	"github.com/rihlat/travel_finance_app/internal/dto"
	"github.com/shopspring/decimal"
)

// distributionTolerance absorbs rounding drift in caller-computed partner
// amounts, one cent either way.
var distributionTolerance = decimal.NewFromFloat(0.01)

var hundred = decimal.NewFromInt(100)

// profitServiceImpl implements the ProfitSvcFacade interface
type profitServiceImpl struct {
	BaseService
	profitRepo portsrepo.ProfitRepository
}

// NewProfitService creates a new profit distribution service
func NewProfitService(repo portsrepo.ProfitRepository) portssvc.ProfitSvcFacade {
	return &profitServiceImpl{profitRepo: repo}
}

// Ensure profitServiceImpl implements the ProfitSvcFacade interface
var _ portssvc.ProfitSvcFacade = (*profitServiceImpl)(nil)

func (s *profitServiceImpl) SaveManualDistribution(ctx context.Context, req dto.SaveDistributionRequest, userID string) (*domain.ManualProfitDistribution, error) {
	if !req.Currency.IsValid() {
		return nil, fmt.Errorf("%w: unknown currency %s", apperrors.ErrValidation, req.Currency)
	}
	// Re-parse here rather than trusting the binding tag; the service is also
	// reachable without going through gin.
	fromDate, err := time.Parse(dateLayout, req.FromDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid fromDate %q", apperrors.ErrValidation, req.FromDate)
	}
	toDate, err := time.Parse(dateLayout, req.ToDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid toDate %q", apperrors.ErrValidation, req.ToDate)
	}
	if toDate.Before(fromDate) {
		return nil, fmt.Errorf("%w: toDate precedes fromDate", apperrors.ErrValidation)
	}

	zero := decimal.NewFromInt(0)
	if req.Profit.LessThanOrEqual(zero) {
		return nil, fmt.Errorf("%w: profit must be positive", apperrors.ErrValidation)
	}

	percentages := zero
	amounts := zero
	for _, p := range req.Partners {
		if p.Percentage.LessThanOrEqual(zero) || p.Amount.LessThanOrEqual(zero) {
			return nil, fmt.Errorf("%w: partner %s has a non-positive share", apperrors.ErrValidation, p.Name)
		}
		percentages = percentages.Add(p.Percentage)
		amounts = amounts.Add(p.Amount)
	}
	if !percentages.Equal(hundred) {
		return nil, fmt.Errorf("%w: percentages sum to %s, expected 100", ErrDistributionMismatch, percentages.String())
	}
	if amounts.Sub(req.Profit).Abs().GreaterThan(distributionTolerance) {
		return nil, fmt.Errorf("%w: partner amounts sum to %s, profit is %s", ErrDistributionMismatch, amounts.String(), req.Profit.String())
	}

	dist := domain.ManualProfitDistribution{
		DistributionID: uuid.NewString(),
		FromDate:       req.FromDate,
		ToDate:         req.ToDate,
		MonthID:        fromDate.Format("2006-01"),
		Profit:         req.Profit,
		Currency:       req.Currency,
		Partners:       make([]domain.ProfitPartner, len(req.Partners)),
		CreatedAt:      time.Now(),
		CreatedBy:      userID,
	}
	for i, p := range req.Partners {
		partnerID := p.PartnerID
		if partnerID == "" {
			partnerID = uuid.NewString()
		}
		dist.Partners[i] = domain.ProfitPartner{
			PartnerID:  partnerID,
			Name:       p.Name,
			Percentage: p.Percentage,
			Amount:     p.Amount,
		}
	}

	if err := s.profitRepo.SaveDistribution(ctx, dist); err != nil {
		s.LogError(ctx, err, "Failed to save profit distribution",
			slog.String("distribution_id", dist.DistributionID))
		return nil, err
	}

	s.LogInfo(ctx, "Profit distribution recorded",
		slog.String("distribution_id", dist.DistributionID),
		slog.String("month_id", dist.MonthID))
	return &dist, nil
}

func (s *profitServiceImpl) ListDistributions(ctx context.Context, params dto.ListDistributionsParams) ([]domain.ManualProfitDistribution, error) {
	limit := params.Limit
	if limit <= 0 || limit > 200 {
		limit = 24
	}
	return s.profitRepo.ListDistributions(ctx, params.MonthID, limit)
}
