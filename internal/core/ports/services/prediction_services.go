package services

import (
	"context"

	"github.com/mpopesco/investfolio/internal/core/domain"
)

// PredictionSvcFacade owns the single-flight forecast generation and the
// latest-result cache.
type PredictionSvcFacade interface {
	// Get returns the current prediction state.
	Get() domain.Prediction

	// Trigger starts a generation unless one is already in flight, the
	// objective is unset, or the ledger is empty; in those cases it is a
	// silent no-op. It returns immediately, the result is polled via Get.
	Trigger(ctx context.Context)
}
