package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/bizbookshq/biz_books_app/internal/apperrors"
	"github.com/bizbookshq/biz_books_app/internal/core/domain"
	portsrepo "github.com/bizbookshq/biz_books_app/internal/core/ports/repositories"
	portssvc "github.com/bizbookshq/biz_books_app/internal/core/ports/services"
	"github.com/bizbookshq/biz_books_app/internal/core/services"
	"github.com/bizbookshq/biz_books_app/internal/dto"
)

// --- Mock BnplLimitRepository ---

type MockBnplLimitRepository struct {
	mock.Mock
}

func (m *MockBnplLimitRepository) FindLimit(ctx context.Context, partyID string, limitType domain.BnplLimitType) (*domain.BnplLimit, error) {
	args := m.Called(ctx, partyID, limitType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BnplLimit), args.Error(1)
}

func (m *MockBnplLimitRepository) FindLimitsByPartyID(ctx context.Context, partyID string) ([]domain.BnplLimit, error) {
	args := m.Called(ctx, partyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BnplLimit), args.Error(1)
}

func (m *MockBnplLimitRepository) SaveLimit(ctx context.Context, limit domain.BnplLimit) error {
	args := m.Called(ctx, limit)
	return args.Error(0)
}

func (m *MockBnplLimitRepository) UpdateLimit(ctx context.Context, limit domain.BnplLimit) error {
	args := m.Called(ctx, limit)
	return args.Error(0)
}

var _ portsrepo.BnplLimitRepository = (*MockBnplLimitRepository)(nil)

// --- Test Suite Setup ---

type BnplServiceTestSuite struct {
	suite.Suite
	mockRepo      *MockBnplLimitRepository
	mockPartyRepo *MockPartyReader
	service       portssvc.BnplSvcFacade

	userID  string
	partyID string
	party   *domain.Party
}

func (suite *BnplServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockBnplLimitRepository)
	suite.mockPartyRepo = new(MockPartyReader)
	suite.service = services.NewBnplService(suite.mockRepo, suite.mockPartyRepo)

	suite.userID = uuid.NewString()
	suite.partyID = uuid.NewString()
	suite.party = &domain.Party{
		PartyID: suite.partyID,
		UserID:  suite.userID,
		Name:    "Acme Traders",
		Type:    domain.PartyVendor,
	}
}

// --- Test Cases ---

func (suite *BnplServiceTestSuite) TestUpsertLimit_CreatesNewLimit() {
	ctx := context.Background()
	req := dto.UpsertBnplLimitRequest{
		PartyID:    suite.partyID,
		LimitType:  domain.BnplPurchase,
		TotalLimit: "50000",
	}

	suite.mockPartyRepo.On("FindPartyByID", ctx, suite.partyID).Return(suite.party, nil).Once()
	suite.mockRepo.On("FindLimit", ctx, suite.partyID, domain.BnplPurchase).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SaveLimit", ctx, mock.MatchedBy(func(l domain.BnplLimit) bool {
		return l.TotalLimit.Equal(decimal.NewFromInt(50000)) && l.UsedLimit.IsZero()
	})).Return(nil).Once()

	limit, err := suite.service.UpsertLimit(ctx, suite.userID, req)

	suite.Require().NoError(err)
	suite.NotEmpty(limit.BnplLimitID)
	suite.True(decimal.NewFromInt(50000).Equal(limit.Available()))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *BnplServiceTestSuite) TestUpsertLimit_RejectsBelowUsed() {
	ctx := context.Background()
	req := dto.UpsertBnplLimitRequest{
		PartyID:    suite.partyID,
		LimitType:  domain.BnplSales,
		TotalLimit: "100",
	}
	existing := &domain.BnplLimit{
		BnplLimitID: uuid.NewString(),
		PartyID:     suite.partyID,
		LimitType:   domain.BnplSales,
		TotalLimit:  decimal.NewFromInt(1000),
		UsedLimit:   decimal.NewFromInt(400),
	}

	suite.mockPartyRepo.On("FindPartyByID", ctx, suite.partyID).Return(suite.party, nil).Once()
	suite.mockRepo.On("FindLimit", ctx, suite.partyID, domain.BnplSales).Return(existing, nil).Once()

	_, err := suite.service.UpsertLimit(ctx, suite.userID, req)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateLimit")
}

func (suite *BnplServiceTestSuite) TestUpsertLimit_OtherUsersParty() {
	ctx := context.Background()
	foreign := *suite.party
	foreign.UserID = uuid.NewString()

	suite.mockPartyRepo.On("FindPartyByID", ctx, suite.partyID).Return(&foreign, nil).Once()

	_, err := suite.service.UpsertLimit(ctx, suite.userID, dto.UpsertBnplLimitRequest{
		PartyID:    suite.partyID,
		LimitType:  domain.BnplSales,
		TotalLimit: "1000",
	})

	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRepo.AssertNotCalled(suite.T(), "FindLimit")
}

func (suite *BnplServiceTestSuite) TestRecordUsage_WithinLimit() {
	ctx := context.Background()
	limit := &domain.BnplLimit{
		BnplLimitID: uuid.NewString(),
		PartyID:     suite.partyID,
		LimitType:   domain.BnplPurchase,
		TotalLimit:  decimal.NewFromInt(1000),
		UsedLimit:   decimal.NewFromInt(200),
	}

	suite.mockRepo.On("FindLimit", ctx, suite.partyID, domain.BnplPurchase).Return(limit, nil).Once()
	suite.mockRepo.On("UpdateLimit", ctx, mock.MatchedBy(func(l domain.BnplLimit) bool {
		return l.UsedLimit.Equal(decimal.NewFromInt(500))
	})).Return(nil).Once()

	updated, err := suite.service.RecordUsage(ctx, suite.userID, suite.partyID, domain.BnplPurchase, decimal.NewFromInt(300))

	suite.Require().NoError(err)
	suite.True(decimal.NewFromInt(500).Equal(updated.UsedLimit))
}

func (suite *BnplServiceTestSuite) TestRecordUsage_ExactlyAtLimit() {
	ctx := context.Background()
	limit := &domain.BnplLimit{
		TotalLimit: decimal.NewFromInt(1000),
		UsedLimit:  decimal.NewFromInt(400),
	}

	suite.mockRepo.On("FindLimit", ctx, suite.partyID, domain.BnplSales).Return(limit, nil).Once()
	suite.mockRepo.On("UpdateLimit", ctx, mock.AnythingOfType("domain.BnplLimit")).Return(nil).Once()

	updated, err := suite.service.RecordUsage(ctx, suite.userID, suite.partyID, domain.BnplSales, decimal.NewFromInt(600))

	suite.Require().NoError(err)
	suite.True(updated.UsedLimit.Equal(updated.TotalLimit))
}

func (suite *BnplServiceTestSuite) TestRecordUsage_ExceedsLimit() {
	ctx := context.Background()
	limit := &domain.BnplLimit{
		TotalLimit: decimal.NewFromInt(1000),
		UsedLimit:  decimal.NewFromInt(900),
	}

	suite.mockRepo.On("FindLimit", ctx, suite.partyID, domain.BnplSales).Return(limit, nil).Once()

	_, err := suite.service.RecordUsage(ctx, suite.userID, suite.partyID, domain.BnplSales, decimal.NewFromInt(101))

	suite.ErrorIs(err, services.ErrBnplLimitExceeded)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateLimit")
}

func (suite *BnplServiceTestSuite) TestRecordUsage_NoLimitConfigured() {
	ctx := context.Background()

	suite.mockRepo.On("FindLimit", ctx, suite.partyID, domain.BnplSales).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.RecordUsage(ctx, suite.userID, suite.partyID, domain.BnplSales, decimal.NewFromInt(10))

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *BnplServiceTestSuite) TestReleaseUsage_FloorsAtZero() {
	ctx := context.Background()
	limit := &domain.BnplLimit{
		TotalLimit: decimal.NewFromInt(1000),
		UsedLimit:  decimal.NewFromInt(100),
	}

	suite.mockRepo.On("FindLimit", ctx, suite.partyID, domain.BnplPurchase).Return(limit, nil).Once()
	suite.mockRepo.On("UpdateLimit", ctx, mock.MatchedBy(func(l domain.BnplLimit) bool {
		return l.UsedLimit.IsZero()
	})).Return(nil).Once()

	updated, err := suite.service.ReleaseUsage(ctx, suite.userID, suite.partyID, domain.BnplPurchase, decimal.NewFromInt(500))

	suite.Require().NoError(err)
	suite.True(updated.UsedLimit.IsZero())
}

// --- Run Test Suite ---
func TestBnplService(t *testing.T) {
	suite.Run(t, new(BnplServiceTestSuite))
}
