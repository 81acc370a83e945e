package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

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

// --- Mock TransactionRepository ---

type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) FindTransactionItemsByTransactionID(ctx context.Context, transactionID string) ([]domain.TransactionItem, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TransactionItem), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactionsByUser(ctx context.Context, userID string, filter portsrepo.ListTransactionsFilter) ([]domain.Transaction, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) FindTransactionsByPartyID(ctx context.Context, partyID string) ([]domain.Transaction, error) {
	args := m.Called(ctx, partyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) FindOpenTransactions(ctx context.Context, userID string, txnType domain.TransactionType) ([]domain.Transaction, error) {
	args := m.Called(ctx, userID, txnType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) SaveTransactionItem(ctx context.Context, item domain.TransactionItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) DeleteTransaction(ctx context.Context, transactionID string) error {
	args := m.Called(ctx, transactionID)
	return args.Error(0)
}

var _ portsrepo.TransactionRepositoryFacade = (*MockTransactionRepository)(nil)

// --- Mock PartyReader ---

type MockPartyReader struct {
	mock.Mock
}

func (m *MockPartyReader) FindPartyByID(ctx context.Context, partyID string) (*domain.Party, error) {
	args := m.Called(ctx, partyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Party), args.Error(1)
}

func (m *MockPartyReader) ListPartiesByUser(ctx context.Context, userID string, partyType *domain.PartyType) ([]domain.Party, error) {
	args := m.Called(ctx, userID, partyType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Party), args.Error(1)
}

var _ portsrepo.PartyReader = (*MockPartyReader)(nil)

// --- Mock BnplService ---

type MockBnplService struct {
	mock.Mock
}

func (m *MockBnplService) UpsertLimit(ctx context.Context, userID string, req dto.UpsertBnplLimitRequest) (*domain.BnplLimit, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BnplLimit), args.Error(1)
}

func (m *MockBnplService) GetLimits(ctx context.Context, userID string, partyID string) ([]domain.BnplLimit, error) {
	args := m.Called(ctx, userID, partyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BnplLimit), args.Error(1)
}

func (m *MockBnplService) RecordUsage(ctx context.Context, userID string, partyID string, limitType domain.BnplLimitType, amount decimal.Decimal) (*domain.BnplLimit, error) {
	args := m.Called(ctx, userID, partyID, limitType, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BnplLimit), args.Error(1)
}

func (m *MockBnplService) ReleaseUsage(ctx context.Context, userID string, partyID string, limitType domain.BnplLimitType, amount decimal.Decimal) (*domain.BnplLimit, error) {
	args := m.Called(ctx, userID, partyID, limitType, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BnplLimit), args.Error(1)
}

var _ portssvc.BnplSvcFacade = (*MockBnplService)(nil)

// --- Test Suite Setup ---

type TransactionServiceTestSuite struct {
	suite.Suite
	mockTxnRepo   *MockTransactionRepository
	mockPartyRepo *MockPartyReader
	mockBnplSvc   *MockBnplService
	service       portssvc.TransactionSvcFacade

	userID  string
	partyID string
	party   *domain.Party
}

func (suite *TransactionServiceTestSuite) SetupTest() {
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.mockPartyRepo = new(MockPartyReader)
	suite.mockBnplSvc = new(MockBnplService)
	suite.service = services.NewTransactionService(suite.mockTxnRepo, suite.mockPartyRepo, suite.mockBnplSvc)

	suite.userID = uuid.NewString()
	suite.partyID = uuid.NewString()
	suite.party = &domain.Party{
		PartyID: suite.partyID,
		UserID:  suite.userID,
		Name:    "Acme Traders",
		State:   "Karnataka",
		Type:    domain.PartyCustomer,
	}
}

func (suite *TransactionServiceTestSuite) createRequest() dto.CreateTransactionRequest {
	return dto.CreateTransactionRequest{
		Transaction: dto.TransactionHeaderRequest{
			TransactionNumber: "INV-0042",
			TransactionType:   domain.SalesInvoice,
			PartyID:           suite.partyID,
			TransactionDate:   time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
			// Deliberately wrong; the service must overwrite it.
			Amount:     "1",
			BalanceDue: "1",
		},
		Items: []dto.TransactionItemRequest{
			{ItemID: uuid.NewString(), Quantity: "10", Rate: "4500", TaxRate: "5"},
		},
	}
}

// --- Test Cases ---

func (suite *TransactionServiceTestSuite) TestCreateTransaction_OverridesAmountWithGrandTotal() {
	ctx := context.Background()
	req := suite.createRequest()

	suite.mockPartyRepo.On("FindPartyByID", ctx, suite.partyID).Return(suite.party, nil).Once()
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction")).Return(nil).Once()
	suite.mockTxnRepo.On("SaveTransactionItem", ctx, mock.AnythingOfType("domain.TransactionItem")).Return(nil).Once()

	grandTotal := decimal.RequireFromString("47250")
	suite.mockTxnRepo.On("UpdateTransaction", ctx, mock.MatchedBy(func(txn domain.Transaction) bool {
		return txn.Amount.Equal(grandTotal) && txn.BalanceDue.Equal(grandTotal)
	})).Return(nil).Once()

	resp, err := suite.service.CreateTransaction(ctx, suite.userID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(resp)
	suite.True(grandTotal.Equal(resp.Amount), "amount: %s", resp.Amount)
	suite.True(grandTotal.Equal(resp.BalanceDue), "balance due: %s", resp.BalanceDue)
	suite.Equal(domain.StatusPending, resp.Status)
	suite.Require().NotNil(resp.Totals)
	suite.True(decimal.RequireFromString("45000").Equal(resp.Totals.Subtotal))
	suite.True(decimal.RequireFromString("2250").Equal(resp.Totals.TotalTax))
	suite.Require().Len(resp.Items, 1)
	suite.True(decimal.RequireFromString("47250").Equal(resp.Items[0].TotalAmount))

	suite.mockTxnRepo.AssertExpectations(suite.T())
	suite.mockBnplSvc.AssertNotCalled(suite.T(), "RecordUsage")
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_UnknownPartyRejected() {
	ctx := context.Background()
	req := suite.createRequest()

	suite.mockPartyRepo.On("FindPartyByID", ctx, suite.partyID).Return(nil, apperrors.ErrNotFound).Once()

	resp, err := suite.service.CreateTransaction(ctx, suite.userID, req)

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction")
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_OtherUsersPartyRejected() {
	ctx := context.Background()
	req := suite.createRequest()

	foreign := *suite.party
	foreign.UserID = uuid.NewString()
	suite.mockPartyRepo.On("FindPartyByID", ctx, suite.partyID).Return(&foreign, nil).Once()

	_, err := suite.service.CreateTransaction(ctx, suite.userID, req)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction")
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_MissingItemIDRejected() {
	ctx := context.Background()
	req := suite.createRequest()
	req.Items = append(req.Items, dto.TransactionItemRequest{Quantity: "1", Rate: "10"})

	suite.mockPartyRepo.On("FindPartyByID", ctx, suite.partyID).Return(suite.party, nil).Once()

	_, err := suite.service.CreateTransaction(ctx, suite.userID, req)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction")
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_ItemFailureIsPartialWrite() {
	ctx := context.Background()
	req := suite.createRequest()
	req.Items = append(req.Items, dto.TransactionItemRequest{ItemID: uuid.NewString(), Quantity: "2", Rate: "100"})

	suite.mockPartyRepo.On("FindPartyByID", ctx, suite.partyID).Return(suite.party, nil).Once()
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction")).Return(nil).Once()
	// First item lands, second fails. The header and first item stay behind.
	suite.mockTxnRepo.On("SaveTransactionItem", ctx, mock.AnythingOfType("domain.TransactionItem")).Return(nil).Once()
	suite.mockTxnRepo.On("SaveTransactionItem", ctx, mock.AnythingOfType("domain.TransactionItem")).Return(errors.New("connection reset")).Once()

	resp, err := suite.service.CreateTransaction(ctx, suite.userID, req)

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.ErrorIs(err, apperrors.ErrPartialWrite)
	suite.Contains(err.Error(), "persisted 1 of 2")
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "UpdateTransaction")
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "DeleteTransaction")
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_FinalizeFailureIsPartialWrite() {
	ctx := context.Background()
	req := suite.createRequest()

	suite.mockPartyRepo.On("FindPartyByID", ctx, suite.partyID).Return(suite.party, nil).Once()
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction")).Return(nil).Once()
	suite.mockTxnRepo.On("SaveTransactionItem", ctx, mock.AnythingOfType("domain.TransactionItem")).Return(nil).Once()
	suite.mockTxnRepo.On("UpdateTransaction", ctx, mock.AnythingOfType("domain.Transaction")).Return(errors.New("connection reset")).Once()

	_, err := suite.service.CreateTransaction(ctx, suite.userID, req)

	suite.ErrorIs(err, apperrors.ErrPartialWrite)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_BnplRecordsUsage() {
	ctx := context.Background()
	req := suite.createRequest()
	req.Transaction.IsBNPL = true
	req.Transaction.TransactionType = domain.PurchaseBill

	suite.mockPartyRepo.On("FindPartyByID", ctx, suite.partyID).Return(suite.party, nil).Once()
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.MatchedBy(func(txn domain.Transaction) bool {
		return txn.Status == domain.StatusUsingBNPL
	})).Return(nil).Once()
	suite.mockTxnRepo.On("SaveTransactionItem", ctx, mock.AnythingOfType("domain.TransactionItem")).Return(nil).Once()
	suite.mockTxnRepo.On("UpdateTransaction", ctx, mock.AnythingOfType("domain.Transaction")).Return(nil).Once()

	grandTotal := decimal.RequireFromString("47250")
	limit := &domain.BnplLimit{PartyID: suite.partyID, LimitType: domain.BnplPurchase}
	suite.mockBnplSvc.On("RecordUsage", ctx, suite.userID, suite.partyID, domain.BnplPurchase, mock.MatchedBy(func(amount decimal.Decimal) bool {
		return amount.Equal(grandTotal)
	})).Return(limit, nil).Once()

	resp, err := suite.service.CreateTransaction(ctx, suite.userID, req)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusUsingBNPL, resp.Status)
	suite.mockBnplSvc.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestGetTransactionByID_IncludesItemsAndTotals() {
	ctx := context.Background()
	transactionID := uuid.NewString()
	due := time.Now().UTC().AddDate(0, 0, 15)
	txn := &domain.Transaction{
		TransactionID:   transactionID,
		TransactionType: domain.SalesInvoice,
		UserID:          suite.userID,
		PartyID:         suite.partyID,
		Amount:          decimal.RequireFromString("118"),
		BalanceDue:      decimal.RequireFromString("118"),
		DueDate:         &due,
		Status:          domain.StatusPending,
	}
	items := []domain.TransactionItem{{
		TransactionItemID: uuid.NewString(),
		TransactionID:     transactionID,
		Amount:            decimal.RequireFromString("100"),
		TaxRate:           decimal.RequireFromString("18"),
		TaxAmount:         decimal.RequireFromString("18"),
		TotalAmount:       decimal.RequireFromString("118"),
	}}

	suite.mockTxnRepo.On("FindTransactionByID", ctx, transactionID).Return(txn, nil).Once()
	suite.mockTxnRepo.On("FindTransactionItemsByTransactionID", ctx, transactionID).Return(items, nil).Once()
	suite.mockPartyRepo.On("FindPartyByID", ctx, suite.partyID).Return(suite.party, nil).Once()

	resp, err := suite.service.GetTransactionByID(ctx, suite.userID, transactionID)

	suite.Require().NoError(err)
	suite.Len(resp.Items, 1)
	suite.Require().NotNil(resp.Totals)
	suite.True(decimal.RequireFromString("118").Equal(resp.Totals.GrandTotal))
	suite.Equal(domain.StatusPending, resp.DisplayStatus)
}

func (suite *TransactionServiceTestSuite) TestGetTransactionByID_OtherUsersTransactionIsNotFound() {
	ctx := context.Background()
	transactionID := uuid.NewString()
	txn := &domain.Transaction{
		TransactionID: transactionID,
		UserID:        uuid.NewString(),
	}

	suite.mockTxnRepo.On("FindTransactionByID", ctx, transactionID).Return(txn, nil).Once()

	resp, err := suite.service.GetTransactionByID(ctx, suite.userID, transactionID)

	suite.Nil(resp)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *TransactionServiceTestSuite) TestListTransactions_HeadersOnly() {
	ctx := context.Background()
	txnType := domain.SalesInvoice
	filter := portsrepo.ListTransactionsFilter{Type: &txnType}
	headers := []domain.Transaction{
		{TransactionID: uuid.NewString(), UserID: suite.userID, BalanceDue: decimal.Zero, Status: domain.StatusPending},
		{TransactionID: uuid.NewString(), UserID: suite.userID, BalanceDue: decimal.NewFromInt(50), Status: domain.StatusPartiallyPaid},
	}

	suite.mockTxnRepo.On("ListTransactionsByUser", ctx, suite.userID, filter).Return(headers, nil).Once()

	resp, err := suite.service.ListTransactions(ctx, suite.userID, filter)

	suite.Require().NoError(err)
	suite.Require().Len(resp, 2)
	suite.Nil(resp[0].Items)
	suite.Nil(resp[0].Totals)
	// Zero balance projects to paid in the listing.
	suite.Equal(domain.StatusPaid, resp[0].DisplayStatus)
	suite.Equal(domain.StatusPartiallyPaid, resp[1].DisplayStatus)
}

func (suite *TransactionServiceTestSuite) TestDeleteTransaction_NotFoundForOtherUser() {
	ctx := context.Background()
	transactionID := uuid.NewString()
	txn := &domain.Transaction{TransactionID: transactionID, UserID: uuid.NewString()}

	suite.mockTxnRepo.On("FindTransactionByID", ctx, transactionID).Return(txn, nil).Once()

	err := suite.service.DeleteTransaction(ctx, suite.userID, transactionID)

	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "DeleteTransaction")
}

// --- Run Test Suite ---
func TestTransactionService(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}
