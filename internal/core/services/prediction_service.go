package services

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/mpopesco/investfolio/internal/core/domain"
	portsrepo "github.com/mpopesco/investfolio/internal/core/ports/repositories"
	portssvc "github.com/mpopesco/investfolio/internal/core/ports/services"
)

// Forecaster dispatches a prompt to the external forecasting service and
// returns its textual answer. The ollama client implements it.
type Forecaster interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// predictionService owns the single-flight generation guard and the
// latest-result cache. Concurrent triggers while a generation is outstanding
// collapse into a no-op for all but the first.
type predictionService struct {
	summary        portssvc.SummarySvcFacade
	investmentRepo portsrepo.InvestmentRepository
	objectiveRepo  portsrepo.ObjectiveRepository
	forecaster     Forecaster
	logger         *slog.Logger

	mu   sync.Mutex
	pred domain.Prediction
}

// NewPredictionService creates a new prediction orchestrator.
func NewPredictionService(
	summary portssvc.SummarySvcFacade,
	investmentRepo portsrepo.InvestmentRepository,
	objectiveRepo portsrepo.ObjectiveRepository,
	forecaster Forecaster,
	logger *slog.Logger,
) portssvc.PredictionSvcFacade {
	return &predictionService{
		summary:        summary,
		investmentRepo: investmentRepo,
		objectiveRepo:  objectiveRepo,
		forecaster:     forecaster,
		logger:         logger,
	}
}

// Get returns the current prediction state.
func (s *predictionService) Get() domain.Prediction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pred
}

// Trigger starts a generation in the background. It is a silent no-op when no
// objective is set, the ledger is empty, or a generation is already in
// flight. The caller has already been told "accepted"; failures here degrade
// to a cleared cache, never to a request error.
func (s *predictionService) Trigger(ctx context.Context) {
	if _, err := s.objectiveRepo.FindObjective(ctx); err != nil {
		s.logger.Info("Prediction trigger skipped: no objective set")
		return
	}
	investments, err := s.investmentRepo.ListInvestments(ctx)
	if err != nil || len(investments) == 0 {
		s.logger.Info("Prediction trigger skipped: empty ledger")
		return
	}

	s.mu.Lock()
	if s.pred.IsGenerating {
		s.mu.Unlock()
		s.logger.Info("Prediction trigger skipped: generation already in flight")
		return
	}
	generationID := uuid.NewString()
	s.pred.IsGenerating = true
	s.pred.GenerationID = &generationID
	s.mu.Unlock()

	// Fire and forget: the trigger request must not carry cancellation into
	// the generation, the result is polled separately.
	go s.generate(context.WithoutCancel(ctx), generationID)
}

func (s *predictionService) generate(ctx context.Context, generationID string) {
	logger := s.logger.With(slog.String("generation_id", generationID))

	prompt, err := s.summary.BuildPrompt(ctx)
	if err == nil {
		var text string
		text, err = s.forecaster.Complete(ctx, prompt)
		if err == nil {
			s.mu.Lock()
			s.pred.Text = &text
			s.pred.IsGenerating = false
			s.mu.Unlock()
			logger.Info("Prediction generated", slog.Int("answer_len", len(text)))
			return
		}
	}

	// Transport or parse failure: clear the cache and go back to idle. The
	// failure is swallowed, the caller already got an acknowledgment.
	s.mu.Lock()
	s.pred = domain.Prediction{}
	s.mu.Unlock()
	logger.Warn("Prediction generation failed", slog.String("error", err.Error()))
}
