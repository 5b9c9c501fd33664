package services_test

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/mpopesco/investfolio/internal/core/domain"
)

// MockInvestmentRepository is a mock type for the InvestmentRepository interface
type MockInvestmentRepository struct {
	mock.Mock
}

func (m *MockInvestmentRepository) SaveInvestment(ctx context.Context, investment domain.Investment) error {
	args := m.Called(ctx, investment)
	return args.Error(0)
}

func (m *MockInvestmentRepository) DeleteInvestment(ctx context.Context, investmentID string) error {
	args := m.Called(ctx, investmentID)
	return args.Error(0)
}

func (m *MockInvestmentRepository) ReplaceInvestments(ctx context.Context, investments []domain.Investment) error {
	args := m.Called(ctx, investments)
	return args.Error(0)
}

func (m *MockInvestmentRepository) ListInvestments(ctx context.Context) ([]domain.Investment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Investment), args.Error(1)
}

// MockObjectiveRepository is a mock type for the ObjectiveRepository interface
type MockObjectiveRepository struct {
	mock.Mock
}

func (m *MockObjectiveRepository) SaveObjective(ctx context.Context, objective domain.Objective) error {
	args := m.Called(ctx, objective)
	return args.Error(0)
}

func (m *MockObjectiveRepository) FindObjective(ctx context.Context) (*domain.Objective, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Objective), args.Error(1)
}

// MockRateRepository is a mock type for the RateRepository interface
type MockRateRepository struct {
	mock.Mock
}

func (m *MockRateRepository) SaveRateTable(ctx context.Context, table domain.RateTable) error {
	args := m.Called(ctx, table)
	return args.Error(0)
}

func (m *MockRateRepository) FindLatestRateTable(ctx context.Context) (*domain.RateTable, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RateTable), args.Error(1)
}

// MockRateSource is a mock type for the RateSource interface
type MockRateSource struct {
	mock.Mock
}

func (m *MockRateSource) FetchRateTable(ctx context.Context) (*domain.RateTable, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RateTable), args.Error(1)
}

// MockForecaster is a mock type for the Forecaster interface
type MockForecaster struct {
	mock.Mock
}

func (m *MockForecaster) Complete(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

// MockValuationService is a mock type for the ValuationSvcFacade interface
type MockValuationService struct {
	mock.Mock
}

func (m *MockValuationService) CurrentValue(ctx context.Context, targetCurrency string) (decimal.Decimal, error) {
	args := m.Called(ctx, targetCurrency)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}
