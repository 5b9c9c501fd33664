package services_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/mpopesco/investfolio/internal/apperrors"
	"github.com/mpopesco/investfolio/internal/core/domain"
	portssvc "github.com/mpopesco/investfolio/internal/core/ports/services"
	"github.com/mpopesco/investfolio/internal/core/services"
	"github.com/mpopesco/investfolio/internal/dto"
)

type InvestmentServiceTestSuite struct {
	suite.Suite
	mockRepo *MockInvestmentRepository
	service  portssvc.InvestmentSvcFacade
}

func (suite *InvestmentServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockInvestmentRepository)
	suite.service = services.NewInvestmentService(suite.mockRepo)
}

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func (suite *InvestmentServiceTestSuite) TestCreateInvestment_Success() {
	ctx := context.Background()
	req := dto.CreateInvestmentRequest{
		Amount:   decPtr("1500"),
		Currency: "RON",
		Fund:     "Global Index",
		Platform: "BrokerX",
		Date:     "2024-03-15",
	}

	suite.mockRepo.On("SaveInvestment", ctx, mock.AnythingOfType("domain.Investment")).Return(nil).Once()

	created, err := suite.service.CreateInvestment(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(created)
	suite.NotEmpty(created.InvestmentID)
	suite.True(created.Amount.Equal(decimal.RequireFromString("1500")))
	suite.False(created.IsSale)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *InvestmentServiceTestSuite) TestCreateInvestment_DerivesAmountFromPair() {
	ctx := context.Background()
	req := dto.CreateInvestmentRequest{
		// Explicit amount is ignored when the unitPrice/units pair is present.
		Amount:    decPtr("999"),
		Currency:  "EUR",
		Fund:      "Tech Fund",
		Platform:  "BrokerX",
		Date:      "2024-03-15",
		UnitPrice: decPtr("12.5"),
		Units:     decPtr("4"),
	}

	suite.mockRepo.On("SaveInvestment", ctx, mock.AnythingOfType("domain.Investment")).Return(nil).Once()

	created, err := suite.service.CreateInvestment(ctx, req)

	suite.Require().NoError(err)
	suite.True(created.Amount.Equal(decimal.RequireFromString("50")), "expected 12.5*4=50, got %s", created.Amount)
	suite.False(created.IsSale)
}

func (suite *InvestmentServiceTestSuite) TestCreateInvestment_NegativeUnitsIsSale() {
	ctx := context.Background()
	req := dto.CreateInvestmentRequest{
		Currency:  "EUR",
		Fund:      "Tech Fund",
		Platform:  "BrokerX",
		Date:      "2024-04-01",
		UnitPrice: decPtr("10"),
		Units:     decPtr("-3"),
	}

	suite.mockRepo.On("SaveInvestment", ctx, mock.AnythingOfType("domain.Investment")).Return(nil).Once()

	created, err := suite.service.CreateInvestment(ctx, req)

	suite.Require().NoError(err)
	suite.True(created.IsSale)
	suite.True(created.Amount.Equal(decimal.RequireFromString("-30")))
}

func (suite *InvestmentServiceTestSuite) TestCreateInvestment_MissingAmountAndPair() {
	ctx := context.Background()
	req := dto.CreateInvestmentRequest{
		Currency: "EUR",
		Fund:     "Tech Fund",
		Platform: "BrokerX",
		Date:     "2024-04-01",
		// Units alone is not enough to derive an amount.
		Units: decPtr("3"),
	}

	created, err := suite.service.CreateInvestment(ctx, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(created)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveInvestment", mock.Anything, mock.Anything)
}

func (suite *InvestmentServiceTestSuite) TestCreateInvestment_UniqueIDsWithinSameMillisecond() {
	ctx := context.Background()
	req := dto.CreateInvestmentRequest{
		Amount:   decPtr("100"),
		Currency: "RON",
		Fund:     "Global Index",
		Platform: "BrokerX",
		Date:     "2024-03-15",
	}

	suite.mockRepo.On("SaveInvestment", ctx, mock.AnythingOfType("domain.Investment")).Return(nil)

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		created, err := suite.service.CreateInvestment(ctx, req)
		suite.Require().NoError(err)
		suite.False(seen[created.InvestmentID], "duplicate investment ID %s", created.InvestmentID)
		seen[created.InvestmentID] = true
	}
}

func (suite *InvestmentServiceTestSuite) TestDeleteInvestment_NotFound() {
	ctx := context.Background()
	suite.mockRepo.On("DeleteInvestment", ctx, "12345").Return(apperrors.NewNotFoundError("investment not found")).Once()

	err := suite.service.DeleteInvestment(ctx, "12345")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *InvestmentServiceTestSuite) TestReplaceAllInvestments_SkipsInvalidEntries() {
	ctx := context.Background()
	candidates := []dto.CreateInvestmentRequest{
		{Amount: decPtr("100"), Currency: "RON", Fund: "A", Platform: "P", Date: "2024-01-05"},
		{Amount: decPtr("200"), Currency: "EURO", Fund: "B", Platform: "P", Date: "2024-01-06"}, // bad currency
		{Currency: "EUR", Fund: "C", Platform: "P", Date: "2024-01-07"},                        // no amount
		{UnitPrice: decPtr("5"), Units: decPtr("2"), Currency: "EUR", Fund: "D", Platform: "P", Date: "2024-01-08"},
	}

	suite.mockRepo.On("ReplaceInvestments", ctx, mock.MatchedBy(func(invs []domain.Investment) bool {
		return len(invs) == 2
	})).Return(nil).Once()

	imported, err := suite.service.ReplaceAllInvestments(ctx, candidates)

	suite.Require().NoError(err)
	suite.Equal(2, imported)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *InvestmentServiceTestSuite) TestListInvestments_NilBecomesEmptySlice() {
	ctx := context.Background()
	suite.mockRepo.On("ListInvestments", ctx).Return([]domain.Investment(nil), nil).Once()

	investments, err := suite.service.ListInvestments(ctx)

	suite.Require().NoError(err)
	suite.NotNil(investments)
	suite.Empty(investments)
}

func TestInvestmentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(InvestmentServiceTestSuite))
}
