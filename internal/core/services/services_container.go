package services

import (
	"context"
	"log/slog"

	portsrepo "github.com/mpopesco/investfolio/internal/core/ports/repositories"
	portssvc "github.com/mpopesco/investfolio/internal/core/ports/services"
	"github.com/mpopesco/investfolio/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly
// initialized dependencies. The rates service is seeded from the persisted
// snapshot before anything depending on it is constructed.
func NewServiceContainer(
	ctx context.Context,
	cfg *config.Config,
	repos portsrepo.RepositoryProvider,
	rateSource RateSource,
	forecaster Forecaster,
	logger *slog.Logger,
) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Rates = NewRatesService(ctx, rateSource, repos.RateRepo, logger)
	container.Investment = NewInvestmentService(repos.InvestmentRepo)
	container.Valuation = NewValuationService(repos.InvestmentRepo, container.Rates)
	container.Objective = NewObjectiveService(repos.ObjectiveRepo, container.Valuation)
	container.Summary = NewSummaryService(repos.InvestmentRepo, repos.ObjectiveRepo)
	container.Prediction = NewPredictionService(container.Summary, repos.InvestmentRepo, repos.ObjectiveRepo, forecaster, logger)
	container.Auth = NewAuthService(cfg)

	return container
}

// Compile-time interface checks.
var (
	_ portssvc.InvestmentSvcFacade = (*investmentService)(nil)
	_ portssvc.RatesSvcFacade      = (*ratesService)(nil)
	_ portssvc.ValuationSvcFacade  = (*valuationService)(nil)
	_ portssvc.ObjectiveSvcFacade  = (*objectiveService)(nil)
	_ portssvc.SummarySvcFacade    = (*summaryService)(nil)
	_ portssvc.PredictionSvcFacade = (*predictionService)(nil)
	_ portssvc.AuthSvcFacade       = (*authService)(nil)
)
