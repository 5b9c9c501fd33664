package services_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/mpopesco/investfolio/internal/apperrors"
	portssvc "github.com/mpopesco/investfolio/internal/core/ports/services"
	"github.com/mpopesco/investfolio/internal/core/services"
	"github.com/mpopesco/investfolio/internal/dto"
)

type ObjectiveServiceTestSuite struct {
	suite.Suite
	mockRepo      *MockObjectiveRepository
	mockValuation *MockValuationService
	service       portssvc.ObjectiveSvcFacade
}

func (suite *ObjectiveServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockObjectiveRepository)
	suite.mockValuation = new(MockValuationService)
	suite.service = services.NewObjectiveService(suite.mockRepo, suite.mockValuation)
}

func (suite *ObjectiveServiceTestSuite) TestSetObjective_Success() {
	ctx := context.Background()
	req := dto.SetObjectiveRequest{
		TargetAmount: decimal.RequireFromString("250000"),
		Currency:     "EUR",
	}
	suite.mockRepo.On("SaveObjective", ctx, mock.AnythingOfType("domain.Objective")).Return(nil).Once()

	saved, err := suite.service.SetObjective(ctx, req)

	suite.Require().NoError(err)
	suite.True(saved.TargetAmount.Equal(req.TargetAmount))
	suite.Equal("EUR", saved.Currency)
}

func (suite *ObjectiveServiceTestSuite) TestSetObjective_RejectsNonPositiveTarget() {
	ctx := context.Background()
	req := dto.SetObjectiveRequest{
		TargetAmount: decimal.Zero,
		Currency:     "EUR",
	}

	saved, err := suite.service.SetObjective(ctx, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(saved)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveObjective", mock.Anything, mock.Anything)
}

func (suite *ObjectiveServiceTestSuite) TestGetObjective_NotFound() {
	ctx := context.Background()
	suite.mockRepo.On("FindObjective", ctx).Return(nil, apperrors.NewNotFoundError("no objective set")).Once()

	obj, err := suite.service.GetObjective(ctx)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(obj)
}

func (suite *ObjectiveServiceTestSuite) TestGetProgress_ValuesInObjectiveCurrency() {
	ctx := context.Background()
	suite.mockRepo.On("FindObjective", ctx).Return(objective("100000", "EUR"), nil).Once()
	suite.mockValuation.On("CurrentValue", ctx, "EUR").
		Return(decimal.RequireFromString("42000"), nil).Once()

	progress, err := suite.service.GetProgress(ctx)

	suite.Require().NoError(err)
	suite.Equal("EUR", progress.Currency)
	suite.True(progress.TargetAmount.Equal(decimal.RequireFromString("100000")))
	suite.True(progress.CurrentAmount.Equal(decimal.RequireFromString("42000")))
}

func TestObjectiveServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ObjectiveServiceTestSuite))
}
