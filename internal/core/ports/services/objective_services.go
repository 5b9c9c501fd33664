package services

import (
	"context"

	"github.com/mpopesco/investfolio/internal/core/domain"
	"github.com/mpopesco/investfolio/internal/dto"
)

// ObjectiveSvcFacade manages the singleton savings objective.
type ObjectiveSvcFacade interface {
	// GetObjective returns the current objective; apperrors.ErrNotFound when unset.
	GetObjective(ctx context.Context) (*domain.Objective, error)

	// SetObjective replaces the objective wholesale.
	SetObjective(ctx context.Context, req dto.SetObjectiveRequest) (*domain.Objective, error)

	// GetProgress returns the objective together with the portfolio's current
	// value in the objective currency; apperrors.ErrNotFound when unset.
	GetProgress(ctx context.Context) (*domain.ObjectiveProgress, error)
}
