package scheduler

import (
	"context"
	"time"

	portssvc "github.com/mpopesco/investfolio/internal/core/ports/services"
)

// RateRefreshJob refreshes the conversion table from the rate feed.
type RateRefreshJob struct {
	rates portssvc.RatesSvcFacade
}

// NewRateRefreshJob creates the refresh job.
func NewRateRefreshJob(rates portssvc.RatesSvcFacade) *RateRefreshJob {
	return &RateRefreshJob{rates: rates}
}

// Name implements Job.
func (j *RateRefreshJob) Name() string { return "rate-refresh" }

// Run implements Job. A failed refresh leaves the previous table in force.
func (j *RateRefreshJob) Run() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return j.rates.Refresh(ctx)
}
