package repositories

import (
	"context"

	"github.com/mpopesco/investfolio/internal/core/domain"
)

// RateRepository persists exchange-rate snapshots so a restart can reuse the
// last successfully refreshed table until the feed answers again.
type RateRepository interface {
	// SaveRateTable replaces the stored snapshot with the given one.
	SaveRateTable(ctx context.Context, table domain.RateTable) error

	// FindLatestRateTable returns the most recent snapshot, or
	// apperrors.ErrNotFound when none has been stored yet.
	FindLatestRateTable(ctx context.Context) (*domain.RateTable, error)
}
