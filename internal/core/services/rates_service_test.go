package services_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/mpopesco/investfolio/internal/apperrors"
	"github.com/mpopesco/investfolio/internal/core/domain"
	"github.com/mpopesco/investfolio/internal/core/services"
)

type RatesServiceTestSuite struct {
	suite.Suite
	mockSource *MockRateSource
	mockRepo   *MockRateRepository
	logger     *slog.Logger
}

func (suite *RatesServiceTestSuite) SetupTest() {
	suite.mockSource = new(MockRateSource)
	suite.mockRepo = new(MockRateRepository)
	suite.logger = slog.Default()
}

func (suite *RatesServiceTestSuite) TestNew_SeedsFromPersistedSnapshot() {
	ctx := context.Background()
	stored := domain.NewRateTable("2024-05-10", map[string]decimal.Decimal{
		"EUR": decimal.RequireFromString("4.97"),
	})
	suite.mockRepo.On("FindLatestRateTable", mock.Anything).Return(&stored, nil).Once()

	svc := services.NewRatesService(ctx, suite.mockSource, suite.mockRepo, suite.logger)

	table := svc.Current()
	suite.Equal("2024-05-10", table.AsOf)
	suite.True(table.Knows("EUR"))
	suite.True(table.Knows("RON"), "base currency must always be present")
}

func (suite *RatesServiceTestSuite) TestNew_StartsEmptyWithoutSnapshot() {
	ctx := context.Background()
	suite.mockRepo.On("FindLatestRateTable", mock.Anything).Return(nil, apperrors.NewNotFoundError("no snapshot")).Once()

	svc := services.NewRatesService(ctx, suite.mockSource, suite.mockRepo, suite.logger)

	table := svc.Current()
	suite.True(table.Knows("RON"))
	suite.False(table.Knows("EUR"))
}

func (suite *RatesServiceTestSuite) TestRefresh_SwapsTableWholesale() {
	ctx := context.Background()
	suite.mockRepo.On("FindLatestRateTable", mock.Anything).Return(nil, apperrors.NewNotFoundError("no snapshot")).Once()
	svc := services.NewRatesService(ctx, suite.mockSource, suite.mockRepo, suite.logger)

	fetched := domain.NewRateTable("2024-05-11", map[string]decimal.Decimal{
		"EUR": decimal.RequireFromString("5.00"),
		"USD": decimal.RequireFromString("4.60"),
	})
	suite.mockSource.On("FetchRateTable", ctx).Return(&fetched, nil).Once()
	suite.mockRepo.On("SaveRateTable", ctx, mock.AnythingOfType("domain.RateTable")).Return(nil).Once()

	err := svc.Refresh(ctx)

	suite.Require().NoError(err)
	converted, err := svc.Convert(decimal.RequireFromString("10"), "EUR", "USD")
	suite.Require().NoError(err)
	// 10 EUR = 50 RON = 50/4.60 USD
	expected := decimal.RequireFromString("50").Div(decimal.RequireFromString("4.60"))
	suite.True(converted.Equal(expected), "expected %s, got %s", expected, converted)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *RatesServiceTestSuite) TestRefresh_FailureKeepsPreviousTable() {
	ctx := context.Background()
	stored := domain.NewRateTable("2024-05-10", map[string]decimal.Decimal{
		"EUR": decimal.RequireFromString("4.97"),
	})
	suite.mockRepo.On("FindLatestRateTable", mock.Anything).Return(&stored, nil).Once()
	svc := services.NewRatesService(ctx, suite.mockSource, suite.mockRepo, suite.logger)

	suite.mockSource.On("FetchRateTable", ctx).Return(nil, errors.New("feed unreachable")).Once()

	err := svc.Refresh(ctx)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUpstream)
	suite.Equal("2024-05-10", svc.Current().AsOf, "stale table must stay in force")
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveRateTable", mock.Anything, mock.Anything)
}

func (suite *RatesServiceTestSuite) TestConvert_UnknownCurrency() {
	ctx := context.Background()
	suite.mockRepo.On("FindLatestRateTable", mock.Anything).Return(nil, apperrors.NewNotFoundError("no snapshot")).Once()
	svc := services.NewRatesService(ctx, suite.mockSource, suite.mockRepo, suite.logger)

	_, err := svc.Convert(decimal.RequireFromString("10"), "GBP", "RON")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConversionUnavailable)
}

func TestRatesServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RatesServiceTestSuite))
}
