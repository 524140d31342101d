package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rihlat/travel_finance_app/internal/apperrors"
	"github.com/rihlat/travel_finance_app/internal/core/domain"
	portsrepo "github.com/rihlat/travel_finance_app/internal/core/ports/repositories"
	portssvc "github.com/rihlat/travel_finance_app/internal/core/ports/services"
	"github.com/rihlat/travel_finance_app/internal/core/services"
	"github.com/rihlat/travel_finance_app/internal/dto"
	"github.com/rihlat/travel_finance_app/internal/utils/pagination"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockReportingRepository is a mock type for the ReportingRepository interface
type MockReportingRepository struct {
	mock.Mock
}

func (m *MockReportingRepository) SumAccountPostings(ctx context.Context, accountID string) (map[domain.Currency]decimal.Decimal, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[domain.Currency]decimal.Decimal), args.Error(1)
}

// Ensure mock implements the interface
var _ portsrepo.ReportingRepository = (*MockReportingRepository)(nil)

// --- Test Suite Setup ---

type ReportingServiceTestSuite struct {
	suite.Suite
	mockVoucherRepo   *MockVoucherRepository
	mockAccountRepo   *MockAccountRepository
	mockReportingRepo *MockReportingRepository
	mockMappingSvc    *MockMappingService
	service           portssvc.ReportingSvcFacade
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockVoucherRepo = new(MockVoucherRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockReportingRepo = new(MockReportingRepository)
	suite.mockMappingSvc = new(MockMappingService)
	suite.service = services.NewReportingService(
		suite.mockVoucherRepo,
		suite.mockAccountRepo,
		suite.mockReportingRepo,
		suite.mockMappingSvc,
	)
}

// --- Test Cases ---

func (suite *ReportingServiceTestSuite) TestComputeAccountStatement_RunningBalance() {
	ctx := context.Background()
	box := uuid.NewString()
	now := time.Now()

	vouchers := []domain.Voucher{
		{
			VoucherID:        uuid.NewString(),
			VoucherType:      domain.Receipt,
			Currency:         domain.USD,
			Amount:           decimal.NewFromInt(100),
			BoxID:            box,
			CounterAccountID: uuid.NewString(),
			Seq:              1,
			CreatedAt:        now,
		},
		{
			VoucherID:   uuid.NewString(),
			VoucherType: domain.Transfer,
			Currency:    domain.USD,
			Amount:      decimal.NewFromInt(30),
			FromBoxID:   box,
			ToBoxID:     uuid.NewString(),
			Seq:         2,
			CreatedAt:   now,
		},
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, box).
		Return(&domain.Account{AccountID: box, IsLeaf: true}, nil).Once()
	suite.mockVoucherRepo.On("ListVouchersForAccount", ctx, box, (*time.Time)(nil), (*time.Time)(nil), time.Time{}, int64(0), 50).
		Return(vouchers, nil).Once()

	page, err := suite.service.ComputeAccountStatement(ctx, box, dto.StatementQuery{})

	suite.Require().NoError(err)
	suite.Require().Len(page.Entries, 2)
	suite.Equal(domain.Debit, page.Entries[0].Side)
	suite.True(page.Entries[0].RunningBalance.Equal(decimal.NewFromInt(100)))
	suite.Equal(domain.Credit, page.Entries[1].Side)
	suite.True(page.Entries[1].RunningBalance.Equal(decimal.NewFromInt(70)))
	suite.Empty(page.NextCursor, "short page must not emit a cursor")
}

func (suite *ReportingServiceTestSuite) TestComputeAccountStatement_AttributionOnlyRowsSkipped() {
	ctx := context.Background()
	office := uuid.NewString()
	now := time.Now()

	// The office is referenced by the remittance but carries no posting.
	vouchers := []domain.Voucher{
		{
			VoucherID:         uuid.NewString(),
			VoucherType:       domain.Remittance,
			Currency:          domain.USD,
			Amount:            decimal.NewFromInt(400),
			OfficeID:          office,
			CompanyID:         uuid.NewString(),
			IntermediateBoxID: uuid.NewString(),
			Seq:               7,
			CreatedAt:         now,
		},
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, office).
		Return(&domain.Account{AccountID: office, IsLeaf: true}, nil).Once()
	suite.mockVoucherRepo.On("ListVouchersForAccount", ctx, office, (*time.Time)(nil), (*time.Time)(nil), time.Time{}, int64(0), 50).
		Return(vouchers, nil).Once()

	page, err := suite.service.ComputeAccountStatement(ctx, office, dto.StatementQuery{})

	suite.Require().NoError(err)
	suite.Empty(page.Entries)
}

func (suite *ReportingServiceTestSuite) TestComputeAccountStatement_CursorCarriesBalance() {
	ctx := context.Background()
	box := uuid.NewString()
	now := time.Now()

	cursor := pagination.EncodeStatementCursor(pagination.StatementCursor{
		CreatedAt: now.Add(-time.Hour),
		Seq:       10,
		Balance:   decimal.NewFromInt(500),
	})

	vouchers := []domain.Voucher{
		{
			VoucherID:   uuid.NewString(),
			VoucherType: domain.Transfer,
			Currency:    domain.USD,
			Amount:      decimal.NewFromInt(50),
			FromBoxID:   box,
			ToBoxID:     uuid.NewString(),
			Seq:         11,
			CreatedAt:   now,
		},
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, box).
		Return(&domain.Account{AccountID: box, IsLeaf: true}, nil).Once()
	suite.mockVoucherRepo.On("ListVouchersForAccount", ctx, box, (*time.Time)(nil), (*time.Time)(nil), mock.AnythingOfType("time.Time"), int64(10), 1).
		Return(vouchers, nil).Once()

	page, err := suite.service.ComputeAccountStatement(ctx, box, dto.StatementQuery{Cursor: cursor, Limit: 1})

	suite.Require().NoError(err)
	suite.Require().Len(page.Entries, 1)
	// 500 carried in, minus the 50 credit.
	suite.True(page.Entries[0].RunningBalance.Equal(decimal.NewFromInt(450)))
	suite.NotEmpty(page.NextCursor, "full page must continue")

	decoded, err := pagination.DecodeStatementCursor(page.NextCursor)
	suite.Require().NoError(err)
	suite.Equal(int64(11), decoded.Seq)
	suite.True(decoded.Balance.Equal(decimal.NewFromInt(450)))
}

func (suite *ReportingServiceTestSuite) TestComputeAccountStatement_BadDateWindow() {
	ctx := context.Background()
	box := uuid.NewString()

	suite.mockAccountRepo.On("FindAccountByID", ctx, box).
		Return(&domain.Account{AccountID: box, IsLeaf: true}, nil)

	_, err := suite.service.ComputeAccountStatement(ctx, box, dto.StatementQuery{From: "2026-02-01", To: "2026-01-01"})
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.service.ComputeAccountStatement(ctx, box, dto.StatementQuery{From: "not-a-date"})
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ReportingServiceTestSuite) TestComputeDebtsReport_GroupsByCurrency() {
	ctx := context.Background()
	recvRoot := uuid.NewString()
	payRoot := uuid.NewString()

	m := domain.EmptyFinanceAccountMapping()
	m.ReceivableAccountID = recvRoot
	m.PayableAccountID = payRoot
	suite.mockMappingSvc.On("GetMapping", ctx).Return(m, nil).Once()

	client := domain.Account{AccountID: uuid.NewString(), Code: "1321", Name: "Client A", IsLeaf: true}
	supplier := domain.Account{AccountID: uuid.NewString(), Code: "2121", Name: "Supplier B", IsLeaf: true}
	zeroed := domain.Account{AccountID: uuid.NewString(), Code: "1322", Name: "Client B", IsLeaf: true}

	suite.mockAccountRepo.On("FindLeafAccountsUnder", ctx, recvRoot).
		Return([]domain.Account{client, zeroed}, nil).Once()
	suite.mockAccountRepo.On("FindLeafAccountsUnder", ctx, payRoot).
		Return([]domain.Account{supplier}, nil).Once()

	suite.mockReportingRepo.On("SumAccountPostings", mock.Anything, client.AccountID).
		Return(map[domain.Currency]decimal.Decimal{
			domain.USD: decimal.NewFromInt(150),
			domain.IQD: decimal.NewFromInt(200000),
		}, nil).Once()
	suite.mockReportingRepo.On("SumAccountPostings", mock.Anything, zeroed.AccountID).
		Return(map[domain.Currency]decimal.Decimal{domain.USD: decimal.NewFromInt(0)}, nil).Once()
	suite.mockReportingRepo.On("SumAccountPostings", mock.Anything, supplier.AccountID).
		Return(map[domain.Currency]decimal.Decimal{domain.USD: decimal.NewFromInt(-75)}, nil).Once()

	report, err := suite.service.ComputeDebtsReport(ctx)

	suite.Require().NoError(err)
	suite.Require().Len(report.Receivables, 1, "all-zero accounts are omitted")
	suite.Equal(client.AccountID, report.Receivables[0].AccountID)
	suite.True(report.Receivables[0].Outstanding[domain.USD].Equal(decimal.NewFromInt(150)))
	suite.True(report.Receivables[0].Outstanding[domain.IQD].Equal(decimal.NewFromInt(200000)))
	suite.Require().Len(report.Payables, 1)
	suite.True(report.Payables[0].Outstanding[domain.USD].Equal(decimal.NewFromInt(-75)))
	suite.Empty(report.FailedAccounts)
}

func (suite *ReportingServiceTestSuite) TestComputeDebtsReport_PartialFailureStillReturnsReport() {
	ctx := context.Background()
	recvRoot := uuid.NewString()

	m := domain.EmptyFinanceAccountMapping()
	m.ReceivableAccountID = recvRoot
	suite.mockMappingSvc.On("GetMapping", ctx).Return(m, nil).Once()

	good := domain.Account{AccountID: uuid.NewString(), Code: "1321", Name: "Client A", IsLeaf: true}
	broken := domain.Account{AccountID: uuid.NewString(), Code: "1322", Name: "Client B", IsLeaf: true}

	suite.mockAccountRepo.On("FindLeafAccountsUnder", ctx, recvRoot).
		Return([]domain.Account{good, broken}, nil).Once()
	suite.mockReportingRepo.On("SumAccountPostings", mock.Anything, good.AccountID).
		Return(map[domain.Currency]decimal.Decimal{domain.USD: decimal.NewFromInt(90)}, nil).Once()
	suite.mockReportingRepo.On("SumAccountPostings", mock.Anything, broken.AccountID).
		Return(nil, apperrors.ErrStorageUnavailable).Once()

	report, err := suite.service.ComputeDebtsReport(ctx)

	suite.Require().Error(err)
	var partial *apperrors.PartialFailure
	suite.Require().True(errors.As(err, &partial))
	suite.Contains(partial.Items, broken.AccountID)

	suite.Require().NotNil(report, "report must still be usable")
	suite.Len(report.Receivables, 1)
	suite.Contains(report.FailedAccounts, broken.AccountID)
}

func (suite *ReportingServiceTestSuite) TestComputeDebtsReport_UnconfiguredMappingIsEmptyReport() {
	ctx := context.Background()

	suite.mockMappingSvc.On("GetMapping", ctx).Return(domain.EmptyFinanceAccountMapping(), nil).Once()

	report, err := suite.service.ComputeDebtsReport(ctx)

	suite.Require().NoError(err)
	suite.Empty(report.Receivables)
	suite.Empty(report.Payables)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "FindLeafAccountsUnder", mock.Anything, mock.Anything)
}

func (suite *ReportingServiceTestSuite) TestAccountBalance_LeafReadsDirectly() {
	ctx := context.Background()
	account := &domain.Account{AccountID: uuid.NewString(), Code: "1110", IsLeaf: true}

	suite.mockAccountRepo.On("FindAccountByCode", ctx, "1110").Return(account, nil).Once()
	suite.mockReportingRepo.On("SumAccountPostings", ctx, account.AccountID).
		Return(map[domain.Currency]decimal.Decimal{domain.USD: decimal.NewFromInt(42)}, nil).Once()

	balance, err := suite.service.AccountBalance(ctx, "1110")

	suite.Require().NoError(err)
	suite.True(balance.IsLeaf)
	suite.True(balance.Balances[domain.USD].Equal(decimal.NewFromInt(42)))
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "FindLeafAccountsUnder", mock.Anything, mock.Anything)
}

func (suite *ReportingServiceTestSuite) TestAccountBalance_NonLeafRollsUpLeaves() {
	ctx := context.Background()
	root := &domain.Account{AccountID: uuid.NewString(), Code: "1100", IsLeaf: false}
	leafA := domain.Account{AccountID: uuid.NewString(), Code: "1110", IsLeaf: true}
	leafB := domain.Account{AccountID: uuid.NewString(), Code: "1120", IsLeaf: true}

	suite.mockAccountRepo.On("FindAccountByCode", ctx, "1100").Return(root, nil).Once()
	suite.mockAccountRepo.On("FindLeafAccountsUnder", ctx, root.AccountID).
		Return([]domain.Account{leafA, leafB}, nil).Once()
	suite.mockReportingRepo.On("SumAccountPostings", mock.Anything, leafA.AccountID).
		Return(map[domain.Currency]decimal.Decimal{domain.USD: decimal.NewFromInt(100)}, nil).Once()
	suite.mockReportingRepo.On("SumAccountPostings", mock.Anything, leafB.AccountID).
		Return(map[domain.Currency]decimal.Decimal{
			domain.USD: decimal.NewFromInt(-40),
			domain.IQD: decimal.NewFromInt(5000),
		}, nil).Once()

	balance, err := suite.service.AccountBalance(ctx, "1100")

	suite.Require().NoError(err)
	suite.False(balance.IsLeaf)
	suite.True(balance.Balances[domain.USD].Equal(decimal.NewFromInt(60)))
	suite.True(balance.Balances[domain.IQD].Equal(decimal.NewFromInt(5000)))
}

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
