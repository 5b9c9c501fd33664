package dto

import (
	"github.com/mpopesco/investfolio/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SetObjectiveRequest replaces the savings objective wholesale.
type SetObjectiveRequest struct {
	TargetAmount decimal.Decimal `json:"targetAmount" binding:"required"`
	Currency     string          `json:"currency" binding:"required,currency"`
}

// ObjectiveResponse is the API representation of the savings objective.
type ObjectiveResponse struct {
	TargetAmount decimal.Decimal `json:"targetAmount"`
	Currency     string          `json:"currency"`
}

// ObjectiveProgressResponse pairs the objective with the current portfolio
// value computed in the objective's currency.
type ObjectiveProgressResponse struct {
	TargetAmount  decimal.Decimal `json:"targetAmount"`
	Currency      string          `json:"currency"`
	CurrentAmount decimal.Decimal `json:"currentAmount"`
}

// ToObjectiveResponse converts a domain.Objective to its API representation.
func ToObjectiveResponse(obj *domain.Objective) ObjectiveResponse {
	return ObjectiveResponse{
		TargetAmount: obj.TargetAmount,
		Currency:     obj.Currency,
	}
}

// ToObjectiveProgressResponse converts a domain.ObjectiveProgress to a DTO.
func ToObjectiveProgressResponse(p *domain.ObjectiveProgress) ObjectiveProgressResponse {
	return ObjectiveProgressResponse{
		TargetAmount:  p.TargetAmount,
		Currency:      p.Currency,
		CurrentAmount: p.CurrentAmount,
	}
}
