package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rihlat/travel_finance_app/internal/apperrors"
	"github.com/rihlat/travel_finance_app/internal/core/domain"
	portsrepo "github.com/rihlat/travel_finance_app/internal/core/ports/repositories"
	portssvc "github.com/rihlat/travel_finance_app/internal/core/ports/services"
	"github.com/rihlat/travel_finance_app/internal/core/services"
	"github.com/rihlat/travel_finance_app/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockProfitRepository is a mock type for the ProfitRepository interface
type MockProfitRepository struct {
	mock.Mock
}

func (m *MockProfitRepository) SaveDistribution(ctx context.Context, dist domain.ManualProfitDistribution) error {
	args := m.Called(ctx, dist)
	return args.Error(0)
}

func (m *MockProfitRepository) FindDistributionByID(ctx context.Context, distributionID string) (*domain.ManualProfitDistribution, error) {
	args := m.Called(ctx, distributionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ManualProfitDistribution), args.Error(1)
}

func (m *MockProfitRepository) ListDistributions(ctx context.Context, monthID string, limit int) ([]domain.ManualProfitDistribution, error) {
	args := m.Called(ctx, monthID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ManualProfitDistribution), args.Error(1)
}

// Ensure mock implements the interface
var _ portsrepo.ProfitRepository = (*MockProfitRepository)(nil)

// --- Test Suite Setup ---

type ProfitServiceTestSuite struct {
	suite.Suite
	mockRepo *MockProfitRepository
	service  portssvc.ProfitSvcFacade
}

func (suite *ProfitServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockProfitRepository)
	suite.service = services.NewProfitService(suite.mockRepo)
}

func validDistributionRequest() dto.SaveDistributionRequest {
	return dto.SaveDistributionRequest{
		FromDate: "2026-07-01",
		ToDate:   "2026-07-31",
		Profit:   decimal.NewFromInt(1000),
		Currency: domain.USD,
		Partners: []dto.ProfitPartnerRequest{
			{Name: "Partner A", Percentage: decimal.NewFromInt(60), Amount: decimal.NewFromInt(600)},
			{Name: "Partner B", Percentage: decimal.NewFromInt(40), Amount: decimal.NewFromInt(400)},
		},
	}
}

// --- Test Cases ---

func (suite *ProfitServiceTestSuite) TestSaveManualDistribution_Success() {
	ctx := context.Background()
	userID := uuid.NewString()
	req := validDistributionRequest()

	suite.mockRepo.On("SaveDistribution", ctx, mock.AnythingOfType("domain.ManualProfitDistribution")).
		Return(nil).Once()

	dist, err := suite.service.SaveManualDistribution(ctx, req, userID)

	suite.Require().NoError(err)
	suite.NotEmpty(dist.DistributionID)
	suite.Equal("2026-07", dist.MonthID)
	suite.Len(dist.Partners, 2)
	suite.NotEmpty(dist.Partners[0].PartnerID, "missing partner IDs are assigned")
	suite.Equal(userID, dist.CreatedBy)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ProfitServiceTestSuite) TestSaveManualDistribution_PercentagesMustSumToHundred() {
	ctx := context.Background()
	req := validDistributionRequest()
	req.Partners[1].Percentage = decimal.NewFromInt(39)

	_, err := suite.service.SaveManualDistribution(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrDistributionMismatch)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveDistribution", mock.Anything, mock.Anything)
}

func (suite *ProfitServiceTestSuite) TestSaveManualDistribution_AmountsWithinTolerance() {
	ctx := context.Background()
	req := validDistributionRequest()
	// One cent of rounding drift is accepted.
	req.Partners[0].Amount = decimal.RequireFromString("600.01")

	suite.mockRepo.On("SaveDistribution", ctx, mock.AnythingOfType("domain.ManualProfitDistribution")).
		Return(nil).Once()

	_, err := suite.service.SaveManualDistribution(ctx, req, uuid.NewString())

	suite.Require().NoError(err)
}

func (suite *ProfitServiceTestSuite) TestSaveManualDistribution_AmountsDriftBeyondTolerance() {
	ctx := context.Background()
	req := validDistributionRequest()
	req.Partners[0].Amount = decimal.RequireFromString("600.02")

	_, err := suite.service.SaveManualDistribution(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrDistributionMismatch)
}

func (suite *ProfitServiceTestSuite) TestSaveManualDistribution_DateOrderChecked() {
	ctx := context.Background()
	req := validDistributionRequest()
	req.FromDate = "2026-08-01"
	req.ToDate = "2026-07-01"

	_, err := suite.service.SaveManualDistribution(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ProfitServiceTestSuite) TestSaveManualDistribution_MalformedDateRejected() {
	ctx := context.Background()

	for _, bad := range []string{"", "2026-7", "07/01/2026", "2026-07-32"} {
		req := validDistributionRequest()
		req.FromDate = bad

		_, err := suite.service.SaveManualDistribution(ctx, req, uuid.NewString())

		suite.Require().Error(err, "fromDate %q must be rejected", bad)
		suite.ErrorIs(err, apperrors.ErrValidation)
	}
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveDistribution", mock.Anything, mock.Anything)
}

func (suite *ProfitServiceTestSuite) TestSaveManualDistribution_NonPositiveShareRejected() {
	ctx := context.Background()
	req := validDistributionRequest()
	req.Partners[0].Amount = decimal.NewFromInt(-600)

	_, err := suite.service.SaveManualDistribution(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ProfitServiceTestSuite) TestListDistributions_DefaultsLimit() {
	ctx := context.Background()

	suite.mockRepo.On("ListDistributions", ctx, "", 24).
		Return([]domain.ManualProfitDistribution{}, nil).Once()

	_, err := suite.service.ListDistributions(ctx, dto.ListDistributionsParams{})

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ProfitServiceTestSuite) TestListDistributions_MonthFilterPassedThrough() {
	ctx := context.Background()

	suite.mockRepo.On("ListDistributions", ctx, "2026-07", 24).
		Return([]domain.ManualProfitDistribution{{MonthID: "2026-07"}}, nil).Once()

	dists, err := suite.service.ListDistributions(ctx, dto.ListDistributionsParams{MonthID: "2026-07"})

	suite.Require().NoError(err)
	suite.Len(dists, 1)
}

func TestProfitServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ProfitServiceTestSuite))
}
