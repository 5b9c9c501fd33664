package services

import (
	"context"

	"github.com/shopspring/decimal"
)

// ValuationSvcFacade computes the current portfolio value from the ledger and
// the conversion table in force.
type ValuationSvcFacade interface {
	// CurrentValue returns the aggregate portfolio value expressed in
	// targetCurrency. Funds whose currency cannot be converted contribute
	// zero; conversion misses are never surfaced as errors.
	CurrentValue(ctx context.Context, targetCurrency string) (decimal.Decimal, error)
}
