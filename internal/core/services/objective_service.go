package services

import (
	"context"
	"fmt"

	"github.com/mpopesco/investfolio/internal/apperrors"
	"github.com/mpopesco/investfolio/internal/core/domain"
	portsrepo "github.com/mpopesco/investfolio/internal/core/ports/repositories"
	portssvc "github.com/mpopesco/investfolio/internal/core/ports/services"
	"github.com/mpopesco/investfolio/internal/dto"
)

// objectiveService manages the singleton savings objective and its progress.
type objectiveService struct {
	objectiveRepo portsrepo.ObjectiveRepository
	valuation     portssvc.ValuationSvcFacade
}

// NewObjectiveService creates a new objective service.
func NewObjectiveService(objectiveRepo portsrepo.ObjectiveRepository, valuation portssvc.ValuationSvcFacade) portssvc.ObjectiveSvcFacade {
	return &objectiveService{
		objectiveRepo: objectiveRepo,
		valuation:     valuation,
	}
}

// GetObjective returns the current objective.
func (s *objectiveService) GetObjective(ctx context.Context) (*domain.Objective, error) {
	objective, err := s.objectiveRepo.FindObjective(ctx)
	if err != nil {
		// Repository maps "not set" to apperrors.ErrNotFound.
		return nil, err
	}
	return objective, nil
}

// SetObjective replaces the objective wholesale.
func (s *objectiveService) SetObjective(ctx context.Context, req dto.SetObjectiveRequest) (*domain.Objective, error) {
	if !req.TargetAmount.IsPositive() {
		return nil, fmt.Errorf("%w: target amount must be positive", apperrors.ErrValidation)
	}

	objective := domain.Objective{
		TargetAmount: req.TargetAmount,
		Currency:     req.Currency,
	}

	if err := s.objectiveRepo.SaveObjective(ctx, objective); err != nil {
		return nil, fmt.Errorf("failed to save objective in service: %w", err)
	}
	return &objective, nil
}

// GetProgress returns the objective and the portfolio's current value in the
// objective's currency.
func (s *objectiveService) GetProgress(ctx context.Context) (*domain.ObjectiveProgress, error) {
	objective, err := s.objectiveRepo.FindObjective(ctx)
	if err != nil {
		return nil, err
	}

	current, err := s.valuation.CurrentValue(ctx, objective.Currency)
	if err != nil {
		return nil, fmt.Errorf("failed to compute objective progress: %w", err)
	}

	return &domain.ObjectiveProgress{
		TargetAmount:  objective.TargetAmount,
		Currency:      objective.Currency,
		CurrentAmount: current,
	}, nil
}
