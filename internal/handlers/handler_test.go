package handlers_test

import (
	"context"
	"encoding/json"
	"html/template"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/fintrackhq/fintrack/internal/apperrors"
	"github.com/fintrackhq/fintrack/internal/core/domain"
	portsrepo "github.com/fintrackhq/fintrack/internal/core/ports/repositories"
	portssvc "github.com/fintrackhq/fintrack/internal/core/ports/services"
	"github.com/fintrackhq/fintrack/internal/dto"
	"github.com/fintrackhq/fintrack/internal/handlers"
	"github.com/fintrackhq/fintrack/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock LedgerService ---

type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) CreateAccount(ctx context.Context, name string, accountType domain.AccountType, initialBalance decimal.Decimal) (*domain.Account, error) {
	args := m.Called(ctx, name, accountType, initialBalance)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockLedgerService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockLedgerService) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockLedgerService) CreateTransaction(ctx context.Context, accountID string, amount decimal.Decimal, txnType domain.TransactionType, category domain.Category, description string) (*domain.Transaction, error) {
	args := m.Called(ctx, accountID, amount, txnType, category, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockLedgerService) ListTransactions(ctx context.Context, filter portsrepo.TransactionFilter) ([]domain.Transaction, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockLedgerService) TotalBalance(ctx context.Context) (decimal.Decimal, error) {
	args := m.Called(ctx)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockLedgerService) CategoryTotals(ctx context.Context) (map[domain.Category]decimal.Decimal, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[domain.Category]decimal.Decimal), args.Error(1)
}

func (m *MockLedgerService) AccountName(ctx context.Context, accountID string) string {
	args := m.Called(ctx, accountID)
	return args.String(0)
}

var _ portssvc.LedgerSvcFacade = (*MockLedgerService)(nil)

// --- Test Suite Setup ---

type HandlerTestSuite struct {
	suite.Suite
	mockSvc *MockLedgerService
	router  *gin.Engine
}

func (suite *HandlerTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	suite.Require().NoError(dto.RegisterValidations())
}

func (suite *HandlerTestSuite) SetupTest() {
	suite.mockSvc = new(MockLedgerService)
	suite.router = gin.New()
	suite.router.SetFuncMap(template.FuncMap{
		"money": func(d decimal.Decimal) string { return d.StringFixed(2) },
	})
	suite.router.LoadHTMLGlob("../../web/templates/*.html")
	cfg := &config.Config{MutationRateLimit: "1000-M"}
	handlers.RegisterRoutes(suite.router, cfg, suite.mockSvc)
}

func (suite *HandlerTestSuite) postForm(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *HandlerTestSuite) get(path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func flashCookieValue(w *httptest.ResponseRecorder) string {
	for _, c := range w.Result().Cookies() {
		if c.Name == "fintrack_flash" {
			return c.Value
		}
	}
	return ""
}

// --- Test Cases ---

func (suite *HandlerTestSuite) TestHealth() {
	w := suite.get("/health")
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("OK", w.Body.String())
}

func (suite *HandlerTestSuite) TestCreateAccount_Success() {
	account := &domain.Account{AccountID: uuid.NewString(), Name: "Holiday Fund", AccountType: domain.Savings}
	suite.mockSvc.On("CreateAccount", mock.Anything, "Holiday Fund", domain.Savings,
		mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(decimal.RequireFromString("150.50")) }),
	).Return(account, nil).Once()

	w := suite.postForm("/add_account", url.Values{
		"name":            {"Holiday Fund"},
		"account_type":    {"savings"},
		"initial_balance": {"150.50"},
	})

	suite.Equal(http.StatusSeeOther, w.Code)
	suite.Equal("/accounts", w.Header().Get("Location"))
	suite.NotEmpty(flashCookieValue(w))
	suite.mockSvc.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestCreateAccount_DefaultsBalanceToZero() {
	account := &domain.Account{AccountID: uuid.NewString(), Name: "Wallet", AccountType: domain.Wallet}
	suite.mockSvc.On("CreateAccount", mock.Anything, "Wallet", domain.Wallet,
		mock.MatchedBy(func(d decimal.Decimal) bool { return d.IsZero() }),
	).Return(account, nil).Once()

	w := suite.postForm("/add_account", url.Values{
		"name":         {"Wallet"},
		"account_type": {"wallet"},
	})

	suite.Equal(http.StatusSeeOther, w.Code)
	suite.mockSvc.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestCreateAccount_InvalidType() {
	w := suite.postForm("/add_account", url.Values{
		"name":         {"Bad"},
		"account_type": {"checking"},
	})

	suite.Equal(http.StatusSeeOther, w.Code)
	suite.Equal("/accounts", w.Header().Get("Location"))
	suite.mockSvc.AssertNotCalled(suite.T(), "CreateAccount", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestCreateAccount_InvalidBalance() {
	w := suite.postForm("/add_account", url.Values{
		"name":            {"Bad"},
		"account_type":    {"savings"},
		"initial_balance": {"not-a-number"},
	})

	suite.Equal(http.StatusSeeOther, w.Code)
	suite.mockSvc.AssertNotCalled(suite.T(), "CreateAccount", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestCreateTransaction_Success() {
	accountID := uuid.NewString()
	account := &domain.Account{AccountID: accountID, Name: "Wallet", AccountType: domain.Wallet}
	txn := &domain.Transaction{TransactionID: uuid.NewString(), AccountID: accountID}
	suite.mockSvc.On("GetAccountByID", mock.Anything, accountID).Return(account, nil).Once()
	suite.mockSvc.On("CreateTransaction", mock.Anything, accountID,
		mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(decimal.RequireFromString("50")) }),
		domain.Expense, domain.Food, "groceries",
	).Return(txn, nil).Once()

	w := suite.postForm("/add_transaction", url.Values{
		"account_id":       {accountID},
		"amount":           {"50"},
		"transaction_type": {"expense"},
		"category":         {"Food"},
		"description":      {"groceries"},
	})

	suite.Equal(http.StatusSeeOther, w.Code)
	suite.Equal("/", w.Header().Get("Location"))
	suite.mockSvc.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestCreateTransaction_NonPositiveAmount() {
	accountID := uuid.NewString()
	account := &domain.Account{AccountID: accountID, Name: "Wallet", AccountType: domain.Wallet}
	suite.mockSvc.On("GetAccountByID", mock.Anything, accountID).Return(account, nil).Once()

	w := suite.postForm("/add_transaction", url.Values{
		"account_id":       {accountID},
		"amount":           {"-5"},
		"transaction_type": {"expense"},
		"category":         {"Food"},
	})

	suite.Equal(http.StatusSeeOther, w.Code)
	suite.Equal("/add_transaction", w.Header().Get("Location"))
	suite.mockSvc.AssertNotCalled(suite.T(), "CreateTransaction",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestCreateTransaction_InvalidCategory() {
	w := suite.postForm("/add_transaction", url.Values{
		"account_id":       {uuid.NewString()},
		"amount":           {"5"},
		"transaction_type": {"expense"},
		"category":         {"Gambling"},
	})

	suite.Equal(http.StatusSeeOther, w.Code)
	suite.mockSvc.AssertNotCalled(suite.T(), "CreateTransaction",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestCreateTransaction_UnknownAccount() {
	accountID := uuid.NewString()
	suite.mockSvc.On("GetAccountByID", mock.Anything, accountID).Return(nil, apperrors.ErrNotFound).Once()

	w := suite.postForm("/add_transaction", url.Values{
		"account_id":       {accountID},
		"amount":           {"5"},
		"transaction_type": {"expense"},
		"category":         {"Food"},
	})

	suite.Equal(http.StatusSeeOther, w.Code)
	suite.Equal("/add_transaction", w.Header().Get("Location"))
	suite.NotEmpty(flashCookieValue(w))
	suite.mockSvc.AssertNotCalled(suite.T(), "CreateTransaction",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestTransactionsPage_EndDateCoversWholeDay() {
	suite.mockSvc.On("ListTransactions", mock.Anything, mock.MatchedBy(func(f portsrepo.TransactionFilter) bool {
		if f.EndDate == nil || f.StartDate != nil {
			return false
		}
		return f.EndDate.Hour() == 23 && f.EndDate.Minute() == 59 && f.EndDate.Second() == 59
	})).Return([]domain.Transaction{}, nil).Once()
	suite.mockSvc.On("ListAccounts", mock.Anything).Return([]domain.Account{}, nil).Once()

	w := suite.get("/transactions?end_date=2026-03-02")

	suite.Equal(http.StatusOK, w.Code)
	suite.mockSvc.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestTransactionsPage_BadDateIgnoresFilter() {
	suite.mockSvc.On("ListTransactions", mock.Anything, mock.MatchedBy(func(f portsrepo.TransactionFilter) bool {
		return f.StartDate == nil && f.EndDate == nil
	})).Return([]domain.Transaction{}, nil).Once()
	suite.mockSvc.On("ListAccounts", mock.Anything).Return([]domain.Account{}, nil).Once()

	w := suite.get("/transactions?start_date=03-02-2026")

	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), "Invalid start date format")
}

func (suite *HandlerTestSuite) TestCategoryData() {
	totals := map[domain.Category]decimal.Decimal{
		domain.Food:  decimal.RequireFromString("75.50"),
		domain.Bills: decimal.RequireFromString("120"),
	}
	suite.mockSvc.On("CategoryTotals", mock.Anything).Return(totals, nil).Once()

	w := suite.get("/api/category_data")

	suite.Equal(http.StatusOK, w.Code)
	var body map[string]float64
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal(map[string]float64{"Food": 75.50, "Bills": 120}, body)
}

func (suite *HandlerTestSuite) TestAccountData() {
	accounts := []domain.Account{
		{AccountID: uuid.NewString(), Name: "Main Savings", Balance: decimal.RequireFromString("950")},
		{AccountID: uuid.NewString(), Name: "Wallet", Balance: decimal.RequireFromString("-12.50")},
	}
	suite.mockSvc.On("ListAccounts", mock.Anything).Return(accounts, nil).Once()

	w := suite.get("/api/account_data")

	suite.Equal(http.StatusOK, w.Code)
	var body map[string]float64
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal(map[string]float64{"Main Savings": 950, "Wallet": -12.50}, body)
}

func (suite *HandlerTestSuite) TestDashboard() {
	accounts := []domain.Account{{AccountID: uuid.NewString(), Name: "Main Savings", AccountType: domain.Savings, Balance: decimal.RequireFromString("950"), CreatedAt: time.Now()}}
	txns := []domain.Transaction{{
		TransactionID:   uuid.NewString(),
		AccountID:       accounts[0].AccountID,
		Amount:          decimal.RequireFromString("50"),
		TransactionType: domain.Expense,
		Category:        domain.Food,
		Date:            time.Now(),
	}}
	suite.mockSvc.On("ListAccounts", mock.Anything).Return(accounts, nil).Once()
	suite.mockSvc.On("ListTransactions", mock.Anything, portsrepo.TransactionFilter{}).Return(txns, nil).Once()
	suite.mockSvc.On("TotalBalance", mock.Anything).Return(decimal.RequireFromString("950"), nil).Once()
	suite.mockSvc.On("CategoryTotals", mock.Anything).Return(map[domain.Category]decimal.Decimal{domain.Food: decimal.RequireFromString("50")}, nil).Once()
	suite.mockSvc.On("AccountName", mock.Anything, accounts[0].AccountID).Return("Main Savings").Once()

	w := suite.get("/")

	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), "Main Savings")
	suite.Contains(w.Body.String(), "950.00")
}

func (suite *HandlerTestSuite) TestNoRouteRedirectsToDashboard() {
	w := suite.get("/nope")
	suite.Equal(http.StatusSeeOther, w.Code)
	suite.Equal("/", w.Header().Get("Location"))
	suite.NotEmpty(flashCookieValue(w))
}

func TestHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}
