package dto

import (
	"github.com/mpopesco/investfolio/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RateTableResponse is the API representation of the current conversion table.
type RateTableResponse struct {
	AsOf  string                     `json:"asOf"`
	Rates map[string]decimal.Decimal `json:"rates"`
}

// ToRateTableResponse converts a domain.RateTable to its API representation.
func ToRateTableResponse(table domain.RateTable) RateTableResponse {
	return RateTableResponse{
		AsOf:  table.AsOf,
		Rates: table.Rates,
	}
}
