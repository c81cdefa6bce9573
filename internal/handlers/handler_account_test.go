package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/finance_tracker/internal/apperrors"
	"github.com/SscSPs/finance_tracker/internal/core/domain"
	portssvc "github.com/SscSPs/finance_tracker/internal/core/ports/services"
	"github.com/SscSPs/finance_tracker/internal/dto"
	"github.com/SscSPs/finance_tracker/internal/handlers"
	"github.com/SscSPs/finance_tracker/internal/middleware"
	"github.com/SscSPs/finance_tracker/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mocks ---

type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) GetAccountByID(ctx context.Context, userID, accountID string) (*domain.BankAccount, error) {
	args := m.Called(ctx, userID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankAccount), args.Error(1)
}

func (m *MockAccountService) ListAccounts(ctx context.Context, userID string) ([]domain.BankAccount, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BankAccount), args.Error(1)
}

func (m *MockAccountService) CreateAccount(ctx context.Context, userID string, req dto.CreateAccountRequest) (*domain.BankAccount, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankAccount), args.Error(1)
}

var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

type MockRateProvider struct {
	mock.Mock
}

func (m *MockRateProvider) GetRates(ctx context.Context, force bool) (*domain.RateTable, error) {
	args := m.Called(ctx, force)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RateTable), args.Error(1)
}

type MockConverter struct {
	mock.Mock
}

func (m *MockConverter) ConvertAmount(ctx context.Context, amount decimal.Decimal, from, to string) (*domain.ConversionResult, error) {
	args := m.Called(ctx, amount, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ConversionResult), args.Error(1)
}

func (m *MockConverter) GetExchangeRate(ctx context.Context, from, to string) (decimal.Decimal, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockConverter) ConvertMultipleAmounts(ctx context.Context, items []domain.Money, target string) ([]*domain.ConversionResult, error) {
	args := m.Called(ctx, items, target)
	return args.Get(0).([]*domain.ConversionResult), args.Error(1)
}

var _ portssvc.CurrencyConverterSvc = (*MockConverter)(nil)

// --- Test Suite ---

type HandlerTestSuite struct {
	suite.Suite
	router         *gin.Engine
	accountService *MockAccountService
	rateProvider   *MockRateProvider
	converter      *MockConverter
	jwtSecret      string
	userID         string
}

func (suite *HandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.userID = uuid.NewString()

	suite.accountService = new(MockAccountService)
	suite.rateProvider = new(MockRateProvider)
	suite.converter = new(MockConverter)

	handlers.RegisterValidators()
	suite.router = gin.New()
	v1 := suite.router.Group("/api/v1", middleware.AuthMiddleware(suite.jwtSecret, ""))
	handlers.RegisterAPIRoutes(v1, &portssvc.ServiceContainer{
		Account:      suite.accountService,
		RateProvider: suite.rateProvider,
		Converter:    suite.converter,
	})
}

func (suite *HandlerTestSuite) do(method, path string, body any, authed bool) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if authed {
		token, err := utils.GenerateJWT(suite.userID, suite.jwtSecret, time.Hour, "")
		suite.Require().NoError(err)
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *HandlerTestSuite) errorBody(w *httptest.ResponseRecorder) string {
	var body dto.ErrorResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	return body.Error
}

// --- Test Cases ---

func (suite *HandlerTestSuite) TestMissingTokenIsUnauthorized() {
	w := suite.do(http.MethodGet, "/api/v1/accounts", nil, false)
	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.accountService.AssertNotCalled(suite.T(), "ListAccounts", mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestCreateAccount_Success() {
	req := dto.CreateAccountRequest{
		Name:           "Travel card",
		AccountType:    domain.CreditCard,
		CurrencyCode:   "EUR",
		OpeningBalance: decimal.NewFromInt(120),
	}
	created := &domain.BankAccount{
		AccountID:    uuid.NewString(),
		UserID:       suite.userID,
		Name:         req.Name,
		AccountType:  domain.CreditCard,
		CurrencyCode: "EUR",
		Balance:      decimal.NewFromInt(-120),
	}
	suite.accountService.On("CreateAccount", mock.Anything, suite.userID, mock.MatchedBy(func(r dto.CreateAccountRequest) bool {
		return r.Name == req.Name && r.OpeningBalance.Equal(req.OpeningBalance)
	})).Return(created, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/accounts", req, true)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.AccountResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(created.AccountID, resp.AccountID)
	suite.Equal("120", resp.Outstanding.String())
	suite.accountService.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestCreateAccount_RejectsBadCurrencyCode() {
	w := suite.do(http.MethodPost, "/api/v1/accounts", map[string]any{
		"name": "x", "accountType": "Savings", "currencyCode": "EURO",
	}, true)
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.accountService.AssertNotCalled(suite.T(), "CreateAccount", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestGetAccount_NotFound() {
	accountID := uuid.NewString()
	suite.accountService.On("GetAccountByID", mock.Anything, suite.userID, accountID).
		Return(nil, apperrors.NewNotFoundError("account "+accountID)).Once()

	w := suite.do(http.MethodGet, "/api/v1/accounts/"+accountID, nil, true)
	suite.Equal(http.StatusNotFound, w.Code)
	suite.Contains(suite.errorBody(w), accountID)
}

func (suite *HandlerTestSuite) TestGetRates_Unavailable() {
	suite.rateProvider.On("GetRates", mock.Anything, true).Return(nil, apperrors.ErrRateUnavailable).Once()

	w := suite.do(http.MethodGet, "/api/v1/rates?force=true", nil, true)
	suite.Equal(http.StatusServiceUnavailable, w.Code)
	suite.rateProvider.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestGetExchangeRate_UppercasesCodes() {
	suite.converter.On("GetExchangeRate", mock.Anything, "EUR", "INR").Return(decimal.RequireFromString("98.0826"), nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/exchange-rate/eur/inr", nil, true)
	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ExchangeRateResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("98.0826", resp.Rate.String())
}

func (suite *HandlerTestSuite) TestConvert_UnsupportedCurrency() {
	suite.converter.On("ConvertAmount", mock.Anything, mock.Anything, "USD", "XYZ").
		Return(nil, fmt.Errorf("%w: XYZ", apperrors.ErrUnsupportedCurrency)).Once()

	w := suite.do(http.MethodPost, "/api/v1/convert", dto.ConvertRequest{Amount: decimal.NewFromInt(10), From: "USD", To: "XYZ"}, true)
	suite.Equal(http.StatusUnprocessableEntity, w.Code)
	suite.True(strings.Contains(suite.errorBody(w), "unsupported currency"))
}

func (suite *HandlerTestSuite) TestConvertBatch_KeepsNullEntries() {
	at := time.Now()
	same := domain.IdentityConversion(decimal.NewFromInt(5), "USD", at)
	suite.converter.On("ConvertMultipleAmounts", mock.Anything, mock.Anything, "USD").
		Return([]*domain.ConversionResult{&same, nil}, apperrors.ErrRateUnavailable).Once()

	w := suite.do(http.MethodPost, "/api/v1/convert/batch", dto.ConvertBatchRequest{
		Items:          []dto.ConvertItem{{Amount: decimal.NewFromInt(5), Currency: "USD"}, {Amount: decimal.NewFromInt(7), Currency: "EUR"}},
		TargetCurrency: "USD",
	}, true)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ConvertBatchResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp.Results, 2)
	suite.NotNil(resp.Results[0])
	suite.Nil(resp.Results[1])
}

// --- Run Test Suite ---
func TestHandlers(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}
