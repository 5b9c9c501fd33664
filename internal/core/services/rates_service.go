package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/mpopesco/investfolio/internal/apperrors"
	"github.com/mpopesco/investfolio/internal/core/domain"
	portsrepo "github.com/mpopesco/investfolio/internal/core/ports/repositories"
	portssvc "github.com/mpopesco/investfolio/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// RateSource supplies fresh conversion tables. The BNR client implements it;
// tests substitute their own.
type RateSource interface {
	FetchRateTable(ctx context.Context) (*domain.RateTable, error)
}

// ratesService holds the conversion-table snapshot currently in force.
// Refreshes swap the whole table; a failed refresh keeps the stale one.
type ratesService struct {
	source RateSource
	repo   portsrepo.RateRepository
	logger *slog.Logger

	mu    sync.RWMutex
	table domain.RateTable
}

// NewRatesService creates the rates service, seeding the snapshot from the
// last persisted table when one exists. With no persisted table the service
// starts with the bare RON identity entry until the first refresh succeeds.
func NewRatesService(ctx context.Context, source RateSource, repo portsrepo.RateRepository, logger *slog.Logger) portssvc.RatesSvcFacade {
	s := &ratesService{
		source: source,
		repo:   repo,
		logger: logger,
		table:  domain.NewRateTable("", nil),
	}

	stored, err := repo.FindLatestRateTable(ctx)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Failed to load persisted rate table, starting empty", slog.String("error", err.Error()))
		}
		return s
	}
	s.table = domain.NewRateTable(stored.AsOf, stored.Rates)
	return s
}

// Current returns the snapshot in force.
func (s *ratesService) Current() domain.RateTable {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.table
}

// Convert converts amount between two currencies using the current snapshot.
func (s *ratesService) Convert(amount decimal.Decimal, from, to string) (decimal.Decimal, error) {
	return s.Current().Convert(amount, from, to)
}

// Refresh fetches a fresh table from the source and swaps it in wholesale.
// On fetch failure the previous table stays in force. Persisting the new
// snapshot is best effort; a storage hiccup must not lose the refresh.
func (s *ratesService) Refresh(ctx context.Context) error {
	fetched, err := s.source.FetchRateTable(ctx)
	if err != nil {
		return fmt.Errorf("%w: rate refresh failed: %v", apperrors.ErrUpstream, err)
	}

	table := domain.NewRateTable(fetched.AsOf, fetched.Rates)

	s.mu.Lock()
	s.table = table
	s.mu.Unlock()

	if err := s.repo.SaveRateTable(ctx, table); err != nil {
		s.logger.Warn("Failed to persist refreshed rate table", slog.String("error", err.Error()))
	}

	s.logger.Info("Rate table refreshed",
		slog.String("as_of", table.AsOf),
		slog.Int("currencies", len(table.Rates)),
	)
	return nil
}
