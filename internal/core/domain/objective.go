package domain

import "github.com/shopspring/decimal"

// Objective is the user's savings goal. It is a process-wide singleton,
// nullable (no objective set), and replaced wholesale on update.
type Objective struct {
	TargetAmount decimal.Decimal `json:"targetAmount"`
	Currency     string          `json:"currency"` // 3-letter code
}

// ObjectiveProgress pairs the objective with the computed current portfolio
// value in the objective's currency.
type ObjectiveProgress struct {
	TargetAmount  decimal.Decimal `json:"targetAmount"`
	Currency      string          `json:"currency"`
	CurrentAmount decimal.Decimal `json:"currentAmount"`
}
