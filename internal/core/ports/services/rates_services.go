package services

import (
	"context"

	"github.com/mpopesco/investfolio/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RatesSvcFacade owns the current conversion-table snapshot.
type RatesSvcFacade interface {
	// Current returns the conversion table in force. Readers always see a
	// consistent snapshot; refreshes swap the table wholesale.
	Current() domain.RateTable

	// Convert converts amount between two currencies using the current table.
	// Returns apperrors.ErrConversionUnavailable for unknown codes.
	Convert(amount decimal.Decimal, from, to string) (decimal.Decimal, error)

	// Refresh fetches a fresh table from the rate source. On failure the
	// previous table stays in force and the error is reported to the caller
	// for logging only.
	Refresh(ctx context.Context) error
}
