package handlers_test

import (
	"context"
	"encoding/json"
	"fmt"
	"iter"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rihlat/travel_finance_app/internal/apperrors"
	"github.com/rihlat/travel_finance_app/internal/core/domain"
	portssvc "github.com/rihlat/travel_finance_app/internal/core/ports/services"
	"github.com/rihlat/travel_finance_app/internal/dto"
	"github.com/rihlat/travel_finance_app/internal/handlers"
	"github.com/rihlat/travel_finance_app/internal/middleware"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock ChartService ---
type MockChartService struct {
	mock.Mock
}

func (m *MockChartService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockChartService) DeleteAccount(ctx context.Context, code string, userID string) error {
	args := m.Called(ctx, code, userID)
	return args.Error(0)
}

func (m *MockChartService) SeedDefaultChart(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockChartService) ResolveAccount(ctx context.Context, code string) (*domain.Account, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockChartService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockChartService) ListTree(ctx context.Context) iter.Seq2[domain.Account, error] {
	args := m.Called(ctx)
	return args.Get(0).(iter.Seq2[domain.Account, error])
}

// Ensure mock implements the interface
var _ portssvc.ChartSvcFacade = (*MockChartService)(nil)

// --- Mock ReportingService ---
type MockReportingService struct {
	mock.Mock
}

func (m *MockReportingService) ComputeAccountStatement(ctx context.Context, accountID string, query dto.StatementQuery) (*domain.StatementPage, error) {
	args := m.Called(ctx, accountID, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StatementPage), args.Error(1)
}

func (m *MockReportingService) ComputeDebtsReport(ctx context.Context) (*domain.DebtsReport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DebtsReport), args.Error(1)
}

func (m *MockReportingService) AccountBalance(ctx context.Context, code string) (*domain.AccountBalance, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountBalance), args.Error(1)
}

var _ portssvc.ReportingSvcFacade = (*MockReportingService)(nil)

// --- Test Suite ---
type AccountHandlerTestSuite struct {
	suite.Suite
	router               *gin.Engine
	mockChartService     *MockChartService
	mockReportingService *MockReportingService
	jwtSecret            string
}

// generateTestToken creates a dummy JWT for testing.
func (suite *AccountHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "tfa-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *AccountHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockChartService = new(MockChartService)
	suite.mockReportingService = new(MockReportingService)

	v1 := suite.router.Group("/api/v1")
	handlers.RegisterAccountRoutes(v1, suite.mockChartService, suite.mockReportingService)
}

func (suite *AccountHandlerTestSuite) doRequest(method, path, token string, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}
	req, err := http.NewRequest(method, path, reader)
	suite.Require().NoError(err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	suite.router.ServeHTTP(rec, req)
	return rec
}

// --- Test Cases ---

func (suite *AccountHandlerTestSuite) TestCreateAccount_Success() {
	userID := uuid.NewString()
	token := suite.generateTestToken(userID)

	created := &domain.Account{
		AccountID:   uuid.NewString(),
		Code:        "1130",
		Name:        "Branch Cash Box",
		AccountType: domain.Asset,
		IsLeaf:      true,
	}

	suite.mockChartService.On("CreateAccount", mock.Anything, mock.AnythingOfType("dto.CreateAccountRequest"), userID).
		Return(created, nil).Once()

	body := `{"code":"1130","name":"Branch Cash Box","accountType":"ASSET"}`
	rec := suite.doRequest(http.MethodPost, "/api/v1/accounts", token, body)

	suite.Equal(http.StatusCreated, rec.Code)
	var resp dto.AccountResponse
	suite.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	suite.Equal("1130", resp.Code)
	suite.mockChartService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_MissingToken() {
	rec := suite.doRequest(http.MethodPost, "/api/v1/accounts", "", `{"code":"1130","name":"X","accountType":"ASSET"}`)
	suite.Equal(http.StatusUnauthorized, rec.Code)
	suite.mockChartService.AssertNotCalled(suite.T(), "CreateAccount", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_DuplicateCode() {
	userID := uuid.NewString()
	token := suite.generateTestToken(userID)

	suite.mockChartService.On("CreateAccount", mock.Anything, mock.AnythingOfType("dto.CreateAccountRequest"), userID).
		Return(nil, fmt.Errorf("%w: 1130", apperrors.ErrDuplicate)).Once()

	body := `{"code":"1130","name":"Branch Cash Box","accountType":"ASSET"}`
	rec := suite.doRequest(http.MethodPost, "/api/v1/accounts", token, body)

	suite.Equal(http.StatusConflict, rec.Code)
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_InvalidBody() {
	token := suite.generateTestToken(uuid.NewString())

	// accountType outside the accepted enum fails binding validation.
	body := `{"code":"1130","name":"X","accountType":"SOMETHING"}`
	rec := suite.doRequest(http.MethodPost, "/api/v1/accounts", token, body)

	suite.Equal(http.StatusBadRequest, rec.Code)
	suite.mockChartService.AssertNotCalled(suite.T(), "CreateAccount", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountHandlerTestSuite) TestGetAccount_NotFound() {
	token := suite.generateTestToken(uuid.NewString())

	suite.mockChartService.On("ResolveAccount", mock.Anything, "9999").
		Return(nil, apperrors.ErrNotFound).Once()

	rec := suite.doRequest(http.MethodGet, "/api/v1/accounts/9999", token, "")

	suite.Equal(http.StatusNotFound, rec.Code)
}

func (suite *AccountHandlerTestSuite) TestListAccounts_Success() {
	token := suite.generateTestToken(uuid.NewString())

	accounts := []domain.Account{
		{AccountID: uuid.NewString(), Code: "1000", Name: "Assets", AccountType: domain.Asset},
		{AccountID: uuid.NewString(), Code: "1100", Name: "Cash Boxes", AccountType: domain.Asset},
	}
	seq := iter.Seq2[domain.Account, error](func(yield func(domain.Account, error) bool) {
		for _, a := range accounts {
			if !yield(a, nil) {
				return
			}
		}
	})
	suite.mockChartService.On("ListTree", mock.Anything).Return(seq).Once()

	rec := suite.doRequest(http.MethodGet, "/api/v1/accounts", token, "")

	suite.Equal(http.StatusOK, rec.Code)
	var resp dto.ListAccountsResponse
	suite.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	suite.Require().Len(resp.Accounts, 2)
	suite.Equal("1000", resp.Accounts[0].Code)
}

func (suite *AccountHandlerTestSuite) TestGetAccountBalance_Success() {
	token := suite.generateTestToken(uuid.NewString())

	balance := &domain.AccountBalance{
		AccountID: uuid.NewString(),
		Code:      "1100",
		IsLeaf:    false,
		Balances: map[domain.Currency]decimal.Decimal{
			domain.USD: decimal.RequireFromString("120.50"),
			domain.IQD: decimal.NewFromInt(75000),
		},
	}
	suite.mockReportingService.On("AccountBalance", mock.Anything, "1100").Return(balance, nil).Once()

	rec := suite.doRequest(http.MethodGet, "/api/v1/accounts/1100/balance", token, "")

	suite.Equal(http.StatusOK, rec.Code)
	var resp dto.AccountBalanceResponse
	suite.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	suite.Equal("1100", resp.Code)
	suite.Equal("120.5", resp.Balances["USD"])
	suite.Equal("75000", resp.Balances["IQD"])
}

func (suite *AccountHandlerTestSuite) TestDeleteAccount_Conflict() {
	userID := uuid.NewString()
	token := suite.generateTestToken(userID)

	suite.mockChartService.On("DeleteAccount", mock.Anything, "1110", userID).
		Return(fmt.Errorf("%w: account 1110 has postings", apperrors.ErrConflict)).Once()

	rec := suite.doRequest(http.MethodDelete, "/api/v1/accounts/1110", token, "")

	suite.Equal(http.StatusConflict, rec.Code)
}

func TestAccountHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(AccountHandlerTestSuite))
}
