package dto

import (
	"github.com/mpopesco/investfolio/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateInvestmentRequest defines the payload for recording a purchase or sale.
// Amount may be omitted when both UnitPrice and Units are supplied, in which
// case the service derives amount = unitPrice * units. The sign of Units flows
// through to the amount, so a single payload shape covers sales too.
type CreateInvestmentRequest struct {
	Amount    *decimal.Decimal `json:"amount,omitempty"`
	Currency  string           `json:"currency" binding:"required,currency"`
	Fund      string           `json:"fund" binding:"required"`
	Platform  string           `json:"platform" binding:"required"`
	Date      string           `json:"date" binding:"required,datetime=2006-01-02"`
	UnitPrice *decimal.Decimal `json:"unitPrice,omitempty"`
	Units     *decimal.Decimal `json:"units,omitempty"`
}

// ImportInvestmentsRequest is the bulk-replace payload. The import discards
// all prior records; invalid entries are skipped, not rejected.
type ImportInvestmentsRequest struct {
	Investments []CreateInvestmentRequest `json:"investments" binding:"required"`
}

// ImportInvestmentsResponse reports how much of the submitted payload survived
// per-record validation.
type ImportInvestmentsResponse struct {
	Imported int `json:"imported"`
	Provided int `json:"provided"`
}

// InvestmentResponse is the API representation of a ledger record.
type InvestmentResponse struct {
	InvestmentID string           `json:"investmentID"`
	Timestamp    int64            `json:"timestamp"`
	Amount       decimal.Decimal  `json:"amount"`
	Currency     string           `json:"currency"`
	Fund         string           `json:"fund"`
	Platform     string           `json:"platform"`
	Date         string           `json:"date"`
	UnitPrice    *decimal.Decimal `json:"unitPrice,omitempty"`
	Units        *decimal.Decimal `json:"units,omitempty"`
	IsSale       bool             `json:"isSale"`
}

// ToInvestmentResponse converts a domain.Investment to its API representation.
func ToInvestmentResponse(inv *domain.Investment) InvestmentResponse {
	return InvestmentResponse{
		InvestmentID: inv.InvestmentID,
		Timestamp:    inv.Timestamp,
		Amount:       inv.Amount,
		Currency:     inv.Currency,
		Fund:         inv.Fund,
		Platform:     inv.Platform,
		Date:         inv.Date,
		UnitPrice:    inv.UnitPrice,
		Units:        inv.Units,
		IsSale:       inv.IsSale,
	}
}

// ToListInvestmentResponse converts a slice of domain records to DTOs.
func ToListInvestmentResponse(investments []domain.Investment) []InvestmentResponse {
	responses := make([]InvestmentResponse, len(investments))
	for i := range investments {
		responses[i] = ToInvestmentResponse(&investments[i])
	}
	return responses
}
