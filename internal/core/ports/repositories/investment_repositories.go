package repositories

import (
	"context"

	"github.com/mpopesco/investfolio/internal/core/domain"
)

// InvestmentRepository defines persistence operations for the investment ledger.
type InvestmentRepository interface {
	// SaveInvestment inserts a new record.
	SaveInvestment(ctx context.Context, investment domain.Investment) error

	// DeleteInvestment removes a record by its identifier.
	// Returns apperrors.ErrNotFound when no such record exists.
	DeleteInvestment(ctx context.Context, investmentID string) error

	// ReplaceInvestments atomically discards all stored records and inserts
	// the given ones. Used by import; this is a destructive replacement.
	ReplaceInvestments(ctx context.Context, investments []domain.Investment) error

	// ListInvestments returns all records ordered newest-first by timestamp.
	ListInvestments(ctx context.Context) ([]domain.Investment, error)
}
