package services_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/rihlat/travel_finance_app/internal/apperrors"
	"github.com/rihlat/travel_finance_app/internal/core/domain"
	portsrepo "github.com/rihlat/travel_finance_app/internal/core/ports/repositories"
	portssvc "github.com/rihlat/travel_finance_app/internal/core/ports/services"
	"github.com/rihlat/travel_finance_app/internal/core/services"
	"github.com/rihlat/travel_finance_app/internal/dto"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockAccountRepository is a mock type for the AccountRepositoryFacade interface
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccountsAfterCode(ctx context.Context, afterCode string, limit int) ([]domain.Account, error) {
	args := m.Called(ctx, afterCode, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindLeafAccountsUnder(ctx context.Context, rootAccountID string) ([]domain.Account, error) {
	args := m.Called(ctx, rootAccountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) HasPostings(ctx context.Context, accountID string) (bool, error) {
	args := m.Called(ctx, accountID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccountRepository) HasChildren(ctx context.Context, accountID string) (bool, error) {
	args := m.Called(ctx, accountID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) MarkNonLeaf(ctx context.Context, accountID string, userID string) error {
	args := m.Called(ctx, accountID, userID)
	return args.Error(0)
}

func (m *MockAccountRepository) DeleteAccount(ctx context.Context, accountID string) error {
	args := m.Called(ctx, accountID)
	return args.Error(0)
}

// Ensure mock implements the interface
var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

// --- Test Suite Setup ---

type ChartServiceTestSuite struct {
	suite.Suite
	mockRepo *MockAccountRepository
	service  portssvc.ChartSvcFacade
}

func (suite *ChartServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockAccountRepository)
	suite.service = services.NewChartService(suite.mockRepo)
}

// --- Test Cases ---

func (suite *ChartServiceTestSuite) TestCreateAccount_RootSuccess() {
	ctx := context.Background()
	userID := uuid.NewString()
	req := dto.CreateAccountRequest{
		Code:        "1500",
		Name:        "Prepaid Expenses",
		AccountType: domain.Asset,
	}

	suite.mockRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()

	account, err := suite.service.CreateAccount(ctx, req, userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(account)
	suite.NotEmpty(account.AccountID)
	suite.Equal("1500", account.Code)
	suite.Equal(domain.Asset, account.AccountType)
	suite.True(account.IsLeaf)
	suite.Empty(account.ParentAccountID)
	suite.Equal(userID, account.CreatedBy)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ChartServiceTestSuite) TestCreateAccount_UnderLeafParentDemotesIt() {
	ctx := context.Background()
	userID := uuid.NewString()
	parentCode := "1100"
	parent := &domain.Account{
		AccountID:   uuid.NewString(),
		Code:        parentCode,
		AccountType: domain.Asset,
		IsLeaf:      true,
	}
	req := dto.CreateAccountRequest{
		Code:        "1130",
		Name:        "Branch Cash Box",
		AccountType: domain.Asset,
		ParentCode:  &parentCode,
	}

	suite.mockRepo.On("FindAccountByCode", ctx, parentCode).Return(parent, nil).Once()
	suite.mockRepo.On("HasPostings", ctx, parent.AccountID).Return(false, nil).Once()
	suite.mockRepo.On("MarkNonLeaf", ctx, parent.AccountID, userID).Return(nil).Once()
	suite.mockRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()

	account, err := suite.service.CreateAccount(ctx, req, userID)

	suite.Require().NoError(err)
	suite.Equal(parent.AccountID, account.ParentAccountID)
	suite.Equal(parentCode, account.ParentCode)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ChartServiceTestSuite) TestCreateAccount_LeafParentWithPostingsRejected() {
	ctx := context.Background()
	parentCode := "1110"
	parent := &domain.Account{
		AccountID:   uuid.NewString(),
		Code:        parentCode,
		AccountType: domain.Asset,
		IsLeaf:      true,
	}
	req := dto.CreateAccountRequest{
		Code:        "1111",
		Name:        "Sub Box",
		AccountType: domain.Asset,
		ParentCode:  &parentCode,
	}

	suite.mockRepo.On("FindAccountByCode", ctx, parentCode).Return(parent, nil).Once()
	suite.mockRepo.On("HasPostings", ctx, parent.AccountID).Return(true, nil).Once()

	_, err := suite.service.CreateAccount(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrInvalidOperation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ChartServiceTestSuite) TestCreateAccount_TypeMismatchWithParent() {
	ctx := context.Background()
	parentCode := "1100"
	parent := &domain.Account{
		AccountID:   uuid.NewString(),
		Code:        parentCode,
		AccountType: domain.Asset,
		IsLeaf:      false,
	}
	req := dto.CreateAccountRequest{
		Code:        "1140",
		Name:        "Misfiled Revenue",
		AccountType: domain.Income,
		ParentCode:  &parentCode,
	}

	suite.mockRepo.On("FindAccountByCode", ctx, parentCode).Return(parent, nil).Once()

	_, err := suite.service.CreateAccount(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ChartServiceTestSuite) TestCreateAccount_UnknownParentRejected() {
	ctx := context.Background()
	parentCode := "9999"
	req := dto.CreateAccountRequest{
		Code:        "9991",
		Name:        "Orphan",
		AccountType: domain.Asset,
		ParentCode:  &parentCode,
	}

	suite.mockRepo.On("FindAccountByCode", ctx, parentCode).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.CreateAccount(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrInvalidParent)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ChartServiceTestSuite) TestCreateAccount_DuplicateCode() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		Code:        "1110",
		Name:        "Duplicate",
		AccountType: domain.Asset,
	}

	suite.mockRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(apperrors.ErrDuplicate).Once()

	_, err := suite.service.CreateAccount(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrDuplicateCode)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ChartServiceTestSuite) TestDeleteAccount_RejectedWhenPosted() {
	ctx := context.Background()
	account := &domain.Account{AccountID: uuid.NewString(), Code: "1110", IsLeaf: true}

	suite.mockRepo.On("FindAccountByCode", ctx, "1110").Return(account, nil).Once()
	suite.mockRepo.On("HasPostings", ctx, account.AccountID).Return(true, nil).Once()

	err := suite.service.DeleteAccount(ctx, "1110", uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrAccountInUse)
	suite.mockRepo.AssertNotCalled(suite.T(), "DeleteAccount", mock.Anything, mock.Anything)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ChartServiceTestSuite) TestDeleteAccount_RejectedWhenParent() {
	ctx := context.Background()
	account := &domain.Account{AccountID: uuid.NewString(), Code: "1100", IsLeaf: false}

	suite.mockRepo.On("FindAccountByCode", ctx, "1100").Return(account, nil).Once()
	suite.mockRepo.On("HasPostings", ctx, account.AccountID).Return(false, nil).Once()
	suite.mockRepo.On("HasChildren", ctx, account.AccountID).Return(true, nil).Once()

	err := suite.service.DeleteAccount(ctx, "1100", uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrAccountInUse)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ChartServiceTestSuite) TestDeleteAccount_Success() {
	ctx := context.Background()
	account := &domain.Account{AccountID: uuid.NewString(), Code: "1120", IsLeaf: true}

	suite.mockRepo.On("FindAccountByCode", ctx, "1120").Return(account, nil).Once()
	suite.mockRepo.On("HasPostings", ctx, account.AccountID).Return(false, nil).Once()
	suite.mockRepo.On("HasChildren", ctx, account.AccountID).Return(false, nil).Once()
	suite.mockRepo.On("DeleteAccount", ctx, account.AccountID).Return(nil).Once()

	err := suite.service.DeleteAccount(ctx, "1120", uuid.NewString())

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ChartServiceTestSuite) TestSeedDefaultChart_SkipsExistingCodes() {
	ctx := context.Background()
	userID := uuid.NewString()

	// Every code already exists, so seeding is a no-op.
	suite.mockRepo.On("FindAccountByCode", ctx, mock.AnythingOfType("string")).
		Return(&domain.Account{AccountID: uuid.NewString()}, nil)

	err := suite.service.SeedDefaultChart(ctx, userID)

	suite.Require().NoError(err)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *ChartServiceTestSuite) TestSeedDefaultChart_FreshChart() {
	ctx := context.Background()
	userID := uuid.NewString()

	// Every seed code misses its existence check once, then resolves to a
	// fabricated account for later parent lookups.
	seedCodes := []string{
		"1000", "1100", "1110", "1120", "1200", "1210", "1300", "1310", "1320",
		"2000", "2100", "2110", "2120",
		"4000", "4100", "4200", "4300",
		"5000", "5100", "5200", "5300",
	}
	fabricated := map[string]*domain.Account{}
	for _, code := range seedCodes {
		accountType := domain.Asset
		switch code[0] {
		case '2':
			accountType = domain.Liability
		case '4':
			accountType = domain.Income
		case '5':
			accountType = domain.Expense
		}
		fabricated[code] = &domain.Account{
			AccountID:   uuid.NewString(),
			Code:        code,
			AccountType: accountType,
			IsLeaf:      true,
		}
	}
	for _, code := range seedCodes {
		suite.mockRepo.On("FindAccountByCode", ctx, code).Return(nil, apperrors.ErrNotFound).Once()
		suite.mockRepo.On("FindAccountByCode", ctx, code).Return(fabricated[code], nil)
	}
	suite.mockRepo.On("HasPostings", ctx, mock.AnythingOfType("string")).Return(false, nil)
	suite.mockRepo.On("MarkNonLeaf", ctx, mock.AnythingOfType("string"), userID).Return(nil)

	saved := map[string]domain.Account{}
	suite.mockRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).
		Run(func(args mock.Arguments) {
			account := args.Get(1).(domain.Account)
			saved[account.Code] = account
		}).
		Return(nil)

	err := suite.service.SeedDefaultChart(ctx, userID)

	suite.Require().NoError(err)
	for _, code := range seedCodes {
		suite.Contains(saved, code, fmt.Sprintf("seed should have created %s", code))
	}
	suite.Equal(fabricated["1000"].AccountID, saved["1100"].ParentAccountID)
	suite.Equal(fabricated["1300"].AccountID, saved["1320"].ParentAccountID)
	suite.Equal(domain.Income, saved["4100"].AccountType)
}

func TestChartServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ChartServiceTestSuite))
}
