package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/bizbookshq/biz_books_app/internal/apperrors"
	"github.com/bizbookshq/biz_books_app/internal/core/domain"
	portsrepo "github.com/bizbookshq/biz_books_app/internal/core/ports/repositories"
	portssvc "github.com/bizbookshq/biz_books_app/internal/core/ports/services"
	"github.com/bizbookshq/biz_books_app/internal/dto"
	"github.com/bizbookshq/biz_books_app/internal/middleware"
)

// --- Mock TransactionService ---

type MockTransactionService struct {
	mock.Mock
}

func (m *MockTransactionService) CreateTransaction(ctx context.Context, userID string, req dto.CreateTransactionRequest) (*dto.TransactionResponse, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TransactionResponse), args.Error(1)
}

func (m *MockTransactionService) GetTransactionByID(ctx context.Context, userID string, transactionID string) (*dto.TransactionResponse, error) {
	args := m.Called(ctx, userID, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TransactionResponse), args.Error(1)
}

func (m *MockTransactionService) ListTransactions(ctx context.Context, userID string, filter portsrepo.ListTransactionsFilter) ([]dto.TransactionResponse, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.TransactionResponse), args.Error(1)
}

func (m *MockTransactionService) UpdateTransaction(ctx context.Context, userID string, transactionID string, req dto.UpdateTransactionRequest) (*dto.TransactionResponse, error) {
	args := m.Called(ctx, userID, transactionID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TransactionResponse), args.Error(1)
}

func (m *MockTransactionService) DeleteTransaction(ctx context.Context, userID string, transactionID string) error {
	args := m.Called(ctx, userID, transactionID)
	return args.Error(0)
}

var _ portssvc.TransactionSvcFacade = (*MockTransactionService)(nil)

// --- Test Suite ---

type TransactionHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockService *MockTransactionService
	jwtSecret   string
}

func (suite *TransactionHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "bizbooks-test",
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

func (suite *TransactionHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockService = new(MockTransactionService)

	v1 := suite.router.Group("/api/v1")
	registerTransactionRoutes(v1, suite.mockService)
}

func (suite *TransactionHandlerTestSuite) doRequest(method, url, userID string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, _ := http.NewRequest(method, url, reader)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *TransactionHandlerTestSuite) TestCreateTransaction_Success() {
	userID := uuid.NewString()
	req := dto.CreateTransactionRequest{
		Transaction: dto.TransactionHeaderRequest{
			TransactionNumber: "INV-0042",
			TransactionType:   domain.SalesInvoice,
			PartyID:           uuid.NewString(),
			TransactionDate:   time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		},
		Items: []dto.TransactionItemRequest{
			{ItemID: uuid.NewString(), Quantity: "10", Rate: "4500", TaxRate: "5"},
		},
	}
	expected := &dto.TransactionResponse{
		TransactionID:     uuid.NewString(),
		TransactionNumber: "INV-0042",
		TransactionType:   domain.SalesInvoice,
		Amount:            decimal.RequireFromString("47250"),
		BalanceDue:        decimal.RequireFromString("47250"),
		Status:            domain.StatusPending,
		DisplayStatus:     domain.StatusPending,
	}

	suite.mockService.On("CreateTransaction",
		mock.Anything,
		userID,
		mock.MatchedBy(func(r dto.CreateTransactionRequest) bool {
			return r.Transaction.TransactionNumber == "INV-0042" && len(r.Items) == 1
		}),
	).Return(expected, nil).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/transactions", userID, req)

	suite.Equal(http.StatusCreated, w.Code, w.Body.String())

	var body dto.TransactionResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal(expected.TransactionID, body.TransactionID)
	suite.True(expected.Amount.Equal(body.Amount))
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestCreateTransaction_ValidationErrorIs400() {
	userID := uuid.NewString()
	req := dto.CreateTransactionRequest{
		Transaction: dto.TransactionHeaderRequest{
			TransactionNumber: "INV-0001",
			TransactionType:   domain.SalesInvoice,
			PartyID:           uuid.NewString(),
			TransactionDate:   time.Now(),
		},
	}

	suite.mockService.On("CreateTransaction", mock.Anything, userID, mock.Anything).
		Return(nil, fmt.Errorf("%w: party does not exist", apperrors.ErrValidation)).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/transactions", userID, req)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *TransactionHandlerTestSuite) TestCreateTransaction_PartialWriteIs500() {
	userID := uuid.NewString()
	req := dto.CreateTransactionRequest{
		Transaction: dto.TransactionHeaderRequest{
			TransactionNumber: "INV-0001",
			TransactionType:   domain.SalesInvoice,
			PartyID:           uuid.NewString(),
			TransactionDate:   time.Now(),
		},
	}

	suite.mockService.On("CreateTransaction", mock.Anything, userID, mock.Anything).
		Return(nil, fmt.Errorf("%w: persisted 1 of 2 line items", apperrors.ErrPartialWrite)).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/transactions", userID, req)

	suite.Equal(http.StatusInternalServerError, w.Code)
	suite.Contains(w.Body.String(), "persisted 1 of 2")
}

func (suite *TransactionHandlerTestSuite) TestGetTransaction_NotFound() {
	userID := uuid.NewString()
	transactionID := uuid.NewString()

	suite.mockService.On("GetTransactionByID", mock.Anything, userID, transactionID).
		Return(nil, apperrors.ErrNotFound).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/transactions/"+transactionID, userID, nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *TransactionHandlerTestSuite) TestListTransactions_ParsesFilter() {
	userID := uuid.NewString()

	suite.mockService.On("ListTransactions", mock.Anything, userID, mock.MatchedBy(func(f portsrepo.ListTransactionsFilter) bool {
		return f.Type != nil && *f.Type == domain.SalesInvoice &&
			f.Status != nil && *f.Status == domain.StatusPending &&
			f.StartDate != nil && f.StartDate.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)) &&
			f.EndDate == nil
	})).Return([]dto.TransactionResponse{}, nil).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/transactions?type=sales_invoice&status=pending&startDate=2024-01-01", userID, nil)

	suite.Equal(http.StatusOK, w.Code, w.Body.String())
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestListTransactions_BadDateIs400() {
	userID := uuid.NewString()

	w := suite.doRequest(http.MethodGet, "/api/v1/transactions?startDate=notadate", userID, nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockService.AssertNotCalled(suite.T(), "ListTransactions")
}

func (suite *TransactionHandlerTestSuite) TestDeleteTransaction_NoContent() {
	userID := uuid.NewString()
	transactionID := uuid.NewString()

	suite.mockService.On("DeleteTransaction", mock.Anything, userID, transactionID).Return(nil).Once()

	w := suite.doRequest(http.MethodDelete, "/api/v1/transactions/"+transactionID, userID, nil)

	suite.Equal(http.StatusNoContent, w.Code)
}

func (suite *TransactionHandlerTestSuite) TestMissingTokenIs401() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/transactions", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
}

// --- Run Test Suite ---
func TestTransactionHandler(t *testing.T) {
	suite.Run(t, new(TransactionHandlerTestSuite))
}
