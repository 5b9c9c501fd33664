package services

import (
	"context"
	"fmt"

	"github.com/mpopesco/investfolio/internal/core/domain"
	portsrepo "github.com/mpopesco/investfolio/internal/core/ports/repositories"
	portssvc "github.com/mpopesco/investfolio/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// valuationService computes the portfolio's current value per fund and in
// aggregate. A fund may be tracked purely by cumulative cash amounts early on
// and later gain unit-price granularity; the engine never requires a uniform
// record shape within a fund.
type valuationService struct {
	investmentRepo portsrepo.InvestmentRepository
	rates          portssvc.RatesSvcFacade
}

// NewValuationService creates a new valuation service.
func NewValuationService(investmentRepo portsrepo.InvestmentRepository, rates portssvc.RatesSvcFacade) portssvc.ValuationSvcFacade {
	return &valuationService{
		investmentRepo: investmentRepo,
		rates:          rates,
	}
}

// CurrentValue returns the aggregate portfolio value in targetCurrency.
// The whole computation runs against a single rate-table snapshot.
func (s *valuationService) CurrentValue(ctx context.Context, targetCurrency string) (decimal.Decimal, error) {
	investments, err := s.investmentRepo.ListInvestments(ctx)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to list investments for valuation: %w", err)
	}

	return portfolioValue(investments, s.rates.Current(), targetCurrency), nil
}

// portfolioValue sums the per-fund values. Aggregation is commutative, the
// result does not depend on record order. Funds whose currency is missing
// from the table contribute zero and are skipped silently.
func portfolioValue(investments []domain.Investment, table domain.RateTable, targetCurrency string) decimal.Decimal {
	byFund := make(map[string][]domain.Investment)
	for _, inv := range investments {
		byFund[inv.Fund] = append(byFund[inv.Fund], inv)
	}

	total := decimal.Zero
	for _, records := range byFund {
		total = total.Add(fundValue(records, table, targetCurrency))
	}
	return total
}

// fundValue values a single fund's records.
//
// The latest record (calendar date first, creation timestamp as tie-break)
// supplies the reference price and currency. With no derivable price the fund
// degrades to a plain currency-converted sum of its historical contributions.
func fundValue(records []domain.Investment, table domain.RateTable, targetCurrency string) decimal.Decimal {
	if len(records) == 0 {
		return decimal.Zero
	}

	latest := records[0]
	for _, r := range records[1:] {
		if r.Newer(latest) {
			latest = r
		}
	}

	latestPrice, latestCurrency, ok := referencePrice(latest)
	if !ok {
		sum := decimal.Zero
		for _, r := range records {
			converted, err := table.Convert(r.Amount, r.Currency, targetCurrency)
			if err != nil {
				continue
			}
			sum = sum.Add(converted)
		}
		return sum
	}

	// Sales carry negative units (explicit or derived), so they subtract.
	totalUnits := decimal.Zero
	for _, r := range records {
		switch {
		case r.HasUnits():
			totalUnits = totalUnits.Add(*r.Units)
		case r.HasUnitPrice() && !r.UnitPrice.IsZero():
			totalUnits = totalUnits.Add(r.Amount.Div(*r.UnitPrice))
		case !latestPrice.IsZero():
			// Impute units from the cash amount at the reference price.
			converted, err := table.Convert(r.Amount, r.Currency, latestCurrency)
			if err != nil {
				continue
			}
			totalUnits = totalUnits.Add(converted.Div(latestPrice))
		}
	}

	value, err := table.Convert(latestPrice.Mul(totalUnits), latestCurrency, targetCurrency)
	if err != nil {
		return decimal.Zero
	}
	return value
}

// referencePrice derives the latest price and its currency from the fund's
// most recent record: the explicit unit price when present, otherwise
// amount/units for a positive unit count.
func referencePrice(latest domain.Investment) (decimal.Decimal, string, bool) {
	if latest.HasUnitPrice() {
		return *latest.UnitPrice, latest.Currency, true
	}
	if latest.HasUnits() && latest.Units.IsPositive() {
		return latest.Amount.Div(*latest.Units), latest.Currency, true
	}
	return decimal.Zero, "", false
}
