package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rihlat/travel_finance_app/internal/core/domain"
	portsrepo "github.com/rihlat/travel_finance_app/internal/core/ports/repositories"
	portssvc "github.com/rihlat/travel_finance_app/internal/core/ports/services"
	"github.com/rihlat/travel_finance_app/internal/core/services"
	"github.com/rihlat/travel_finance_app/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockMappingRepository is a mock type for the MappingRepository interface
type MockMappingRepository struct {
	mock.Mock
}

func (m *MockMappingRepository) GetMapping(ctx context.Context) (domain.FinanceAccountMapping, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.FinanceAccountMapping), args.Error(1)
}

func (m *MockMappingRepository) UpsertMapping(ctx context.Context, patch domain.FinanceAccountMappingPatch, userID string, now time.Time) (domain.FinanceAccountMapping, error) {
	args := m.Called(ctx, patch, userID, now)
	return args.Get(0).(domain.FinanceAccountMapping), args.Error(1)
}

// Ensure mock implements the interface
var _ portsrepo.MappingRepository = (*MockMappingRepository)(nil)

// --- Test Suite Setup ---

type MappingServiceTestSuite struct {
	suite.Suite
	mockRepo *MockMappingRepository
	service  portssvc.MappingSvcFacade
}

func (suite *MappingServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockMappingRepository)
	suite.service = services.NewMappingService(suite.mockRepo)
}

// --- Test Cases ---

func (suite *MappingServiceTestSuite) TestGetMapping_UnconfiguredIsEmptyNotMissing() {
	ctx := context.Background()

	suite.mockRepo.On("GetMapping", ctx).Return(domain.EmptyFinanceAccountMapping(), nil).Once()

	m, err := suite.service.GetMapping(ctx)

	suite.Require().NoError(err)
	suite.Empty(m.ReceivableAccountID)
	suite.NotNil(m.RevenueMap)
	suite.NotNil(m.ExpenseMap)
}

func (suite *MappingServiceTestSuite) TestGetMapping_SecondReadServedFromSnapshot() {
	ctx := context.Background()
	stored := domain.EmptyFinanceAccountMapping()
	stored.DefaultCashID = uuid.NewString()

	suite.mockRepo.On("GetMapping", ctx).Return(stored, nil).Once()

	first, err := suite.service.GetMapping(ctx)
	suite.Require().NoError(err)
	second, err := suite.service.GetMapping(ctx)
	suite.Require().NoError(err)

	suite.Equal(first.DefaultCashID, second.DefaultCashID)
	suite.mockRepo.AssertNumberOfCalls(suite.T(), "GetMapping", 1)
}

// Mapping entries may point at accounts that have not been created yet, so
// bootstrap can configure the mapping before seeding the chart. The reference
// is only checked when a voucher posts through it.
func (suite *MappingServiceTestSuite) TestUpsertMapping_AcceptsNotYetCreatedAccounts() {
	ctx := context.Background()
	userID := uuid.NewString()
	futureAccount := uuid.NewString()
	req := dto.UpsertMappingRequest{RevenueMap: map[string]string{"tickets": futureAccount}}

	merged := domain.EmptyFinanceAccountMapping()
	merged.RevenueMap["tickets"] = futureAccount
	suite.mockRepo.On("UpsertMapping", ctx, mock.AnythingOfType("domain.FinanceAccountMappingPatch"), userID, mock.AnythingOfType("time.Time")).
		Return(merged, nil).Once()

	result, err := suite.service.UpsertMapping(ctx, req, userID)

	suite.Require().NoError(err)
	suite.Equal(futureAccount, result.RevenueMap["tickets"])
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *MappingServiceTestSuite) TestUpsertMapping_MergesAndRefreshesSnapshot() {
	ctx := context.Background()
	userID := uuid.NewString()
	cash := uuid.NewString()
	req := dto.UpsertMappingRequest{DefaultCashID: &cash}

	merged := domain.EmptyFinanceAccountMapping()
	merged.DefaultCashID = cash
	merged.RevenueMap["ticket"] = uuid.NewString()

	suite.mockRepo.On("UpsertMapping", ctx, mock.AnythingOfType("domain.FinanceAccountMappingPatch"), userID, mock.AnythingOfType("time.Time")).
		Return(merged, nil).Once()

	result, err := suite.service.UpsertMapping(ctx, req, userID)

	suite.Require().NoError(err)
	suite.Equal(cash, result.DefaultCashID)

	// Subsequent reads come from the refreshed snapshot, not the store.
	cached, err := suite.service.GetMapping(ctx)
	suite.Require().NoError(err)
	suite.Equal(cash, cached.DefaultCashID)
	suite.mockRepo.AssertNotCalled(suite.T(), "GetMapping", mock.Anything)
}

func (suite *MappingServiceTestSuite) TestUpsertMapping_EmptyStringClearsSlot() {
	ctx := context.Background()
	empty := ""
	req := dto.UpsertMappingRequest{DefaultBankID: &empty}

	merged := domain.EmptyFinanceAccountMapping()
	suite.mockRepo.On("UpsertMapping", ctx, mock.MatchedBy(func(p domain.FinanceAccountMappingPatch) bool {
		return p.DefaultBankID != nil && *p.DefaultBankID == ""
	}), mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).
		Return(merged, nil).Once()

	result, err := suite.service.UpsertMapping(ctx, req, uuid.NewString())

	suite.Require().NoError(err)
	suite.Empty(result.DefaultBankID)
}

func TestMergeMappingContract(t *testing.T) {
	base := domain.EmptyFinanceAccountMapping()
	base.ReceivableAccountID = "recv-1"
	base.RevenueMap["ticket"] = "rev-ticket"
	base.RevenueMap["visa"] = "rev-visa"

	newVisa := "rev-visa-2"
	prevent := true
	patch := domain.FinanceAccountMappingPatch{
		PreventDirectCashRevenue: &prevent,
		RevenueMap:               map[string]string{"visa": newVisa, "hotel": "rev-hotel"},
	}

	merged := domain.MergeMapping(base, patch)

	assert.Equal(t, "recv-1", merged.ReceivableAccountID, "untouched scalar must survive")
	assert.True(t, merged.PreventDirectCashRevenue)
	assert.Equal(t, "rev-ticket", merged.RevenueMap["ticket"], "unpatched map key must survive")
	assert.Equal(t, newVisa, merged.RevenueMap["visa"])
	assert.Equal(t, "rev-hotel", merged.RevenueMap["hotel"])
}

func TestMappingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(MappingServiceTestSuite))
}
