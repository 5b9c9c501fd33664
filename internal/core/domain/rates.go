package domain

import (
	"github.com/mpopesco/investfolio/internal/apperrors"
	"github.com/shopspring/decimal"
)

// BaseCurrency is the anchor currency of every rate table. The rate feed is
// RON-denominated, so conversions always pivot through RON.
const BaseCurrency = "RON"

// RateTable is an immutable snapshot of currency->RON multipliers.
// Rates[code] is how many RON one unit of code is worth; Rates[RON] is 1.
// A table is replaced wholesale on refresh, never merged.
type RateTable struct {
	AsOf  string                     `json:"asOf"` // date or label from the feed
	Rates map[string]decimal.Decimal `json:"rates"`
}

// NewRateTable builds a table from the given rates, forcing the RON identity
// entry so that conversions through the base currency always resolve. The
// rates map is copied; the snapshot never aliases the caller's map.
func NewRateTable(asOf string, rates map[string]decimal.Decimal) RateTable {
	copied := make(map[string]decimal.Decimal, len(rates)+1)
	for code, rate := range rates {
		copied[code] = rate
	}
	copied[BaseCurrency] = decimal.NewFromInt(1)
	return RateTable{AsOf: asOf, Rates: copied}
}

// Convert converts amount from one currency to another through RON.
// It returns apperrors.ErrConversionUnavailable when either code is absent
// from the table; this is a lookup miss, not a failure of the table.
func (t RateTable) Convert(amount decimal.Decimal, from, to string) (decimal.Decimal, error) {
	fromRate, ok := t.Rates[from]
	if !ok {
		return decimal.Zero, apperrors.ErrConversionUnavailable
	}
	toRate, ok := t.Rates[to]
	if !ok || toRate.IsZero() {
		return decimal.Zero, apperrors.ErrConversionUnavailable
	}
	return amount.Mul(fromRate).Div(toRate), nil
}

// Knows reports whether the table has a rate for the given currency code.
func (t RateTable) Knows(code string) bool {
	_, ok := t.Rates[code]
	return ok
}
