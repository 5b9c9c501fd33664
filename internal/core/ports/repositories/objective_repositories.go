package repositories

import (
	"context"

	"github.com/mpopesco/investfolio/internal/core/domain"
)

// ObjectiveRepository persists the singleton savings objective.
type ObjectiveRepository interface {
	// SaveObjective replaces the stored objective wholesale.
	SaveObjective(ctx context.Context, objective domain.Objective) error

	// FindObjective returns the stored objective, or apperrors.ErrNotFound
	// when none has been set yet.
	FindObjective(ctx context.Context) (*domain.Objective, error)
}
