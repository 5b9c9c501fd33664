package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/mpopesco/investfolio/internal/apperrors"
	"github.com/mpopesco/investfolio/internal/core/domain"
	portssvc "github.com/mpopesco/investfolio/internal/core/ports/services"
	"github.com/mpopesco/investfolio/internal/dto"
	"github.com/mpopesco/investfolio/internal/handlers"
	"github.com/mpopesco/investfolio/internal/platform/config"
)

// --- Mock InvestmentService ---
type MockInvestmentService struct {
	mock.Mock
}

func (m *MockInvestmentService) CreateInvestment(ctx context.Context, req dto.CreateInvestmentRequest) (*domain.Investment, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Investment), args.Error(1)
}

func (m *MockInvestmentService) DeleteInvestment(ctx context.Context, investmentID string) error {
	args := m.Called(ctx, investmentID)
	return args.Error(0)
}

func (m *MockInvestmentService) ReplaceAllInvestments(ctx context.Context, candidates []dto.CreateInvestmentRequest) (int, error) {
	args := m.Called(ctx, candidates)
	return args.Int(0), args.Error(1)
}

func (m *MockInvestmentService) ListInvestments(ctx context.Context) ([]domain.Investment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Investment), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.InvestmentSvcFacade = (*MockInvestmentService)(nil)

// --- Test Suite ---
type InvestmentHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockService *MockInvestmentService
	jwtSecret   string
}

// generateTestToken creates a dummy JWT for testing.
func (suite *InvestmentHandlerTestSuite) generateTestToken() string {
	claims := jwt.RegisteredClaims{
		Issuer:    "investfolio-test",
		Subject:   "admin",
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

func (suite *InvestmentHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.mockService = new(MockInvestmentService)

	cfg := &config.Config{
		JWTSecret:    suite.jwtSecret,
		IsProduction: true, // skips swagger routes
	}
	services := &portssvc.ServiceContainer{Investment: suite.mockService}
	handlers.RegisterRoutes(suite.router, cfg, services)
}

func (suite *InvestmentHandlerTestSuite) doRequest(method, path string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken())
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *InvestmentHandlerTestSuite) TestListInvestments_Success() {
	price := decimal.RequireFromString("12.5")
	units := decimal.RequireFromString("4")
	records := []domain.Investment{
		{
			InvestmentID: "1714000000000",
			Timestamp:    1714000000000,
			Amount:       decimal.RequireFromString("50"),
			Currency:     "EUR",
			Fund:         "Tech Fund",
			Platform:     "BrokerX",
			Date:         "2024-04-25",
			UnitPrice:    &price,
			Units:        &units,
		},
	}
	suite.mockService.On("ListInvestments", mock.Anything).Return(records, nil).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/investments", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp []dto.InvestmentResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp, 1)
	suite.Equal("1714000000000", resp[0].InvestmentID)
	suite.Equal("Tech Fund", resp[0].Fund)
}

func (suite *InvestmentHandlerTestSuite) TestListInvestments_Unauthorized() {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/investments", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockService.AssertNotCalled(suite.T(), "ListInvestments", mock.Anything)
}

func (suite *InvestmentHandlerTestSuite) TestCreateInvestment_Success() {
	created := &domain.Investment{
		InvestmentID: "1714000000001",
		Timestamp:    1714000000001,
		Amount:       decimal.RequireFromString("1500"),
		Currency:     "RON",
		Fund:         "Global Index",
		Platform:     "BrokerX",
		Date:         "2024-04-25",
	}
	suite.mockService.On("CreateInvestment", mock.Anything, mock.AnythingOfType("dto.CreateInvestmentRequest")).
		Return(created, nil).Once()

	body := []byte(`{"amount":"1500","currency":"RON","fund":"Global Index","platform":"BrokerX","date":"2024-04-25"}`)
	w := suite.doRequest(http.MethodPost, "/api/v1/investments", body)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.InvestmentResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("1714000000001", resp.InvestmentID)
}

func (suite *InvestmentHandlerTestSuite) TestCreateInvestment_RejectsBadCurrency() {
	body := []byte(`{"amount":"1500","currency":"ron","fund":"Global Index","platform":"BrokerX","date":"2024-04-25"}`)
	w := suite.doRequest(http.MethodPost, "/api/v1/investments", body)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockService.AssertNotCalled(suite.T(), "CreateInvestment", mock.Anything, mock.Anything)
}

func (suite *InvestmentHandlerTestSuite) TestDeleteInvestment_NotFound() {
	suite.mockService.On("DeleteInvestment", mock.Anything, "99999").
		Return(apperrors.NewNotFoundError("investment not found")).Once()

	w := suite.doRequest(http.MethodDelete, "/api/v1/investments/99999", nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *InvestmentHandlerTestSuite) TestImportInvestments_ReportsCounts() {
	suite.mockService.On("ReplaceAllInvestments", mock.Anything, mock.AnythingOfType("[]dto.CreateInvestmentRequest")).
		Return(1, nil).Once()

	body := []byte(`{"investments":[` +
		`{"amount":"100","currency":"RON","fund":"A","platform":"P","date":"2024-01-05"},` +
		`{"amount":"200","currency":"EURO","fund":"B","platform":"P","date":"2024-01-06"}]}`)
	w := suite.doRequest(http.MethodPost, "/api/v1/investments/import", body)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ImportInvestmentsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(1, resp.Imported)
	suite.Equal(2, resp.Provided)
}

func TestInvestmentHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(InvestmentHandlerTestSuite))
}
