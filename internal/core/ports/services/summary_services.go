package services

import "context"

// SummarySvcFacade compresses the investment history into a bounded
// natural-language prompt for the forecasting service.
type SummarySvcFacade interface {
	// BuildPrompt assembles the prompt from the ledger and the objective.
	// The result is deterministic for identical inputs and bounded in length.
	BuildPrompt(ctx context.Context) (string, error)
}
