package services

import (
	"context"

	"github.com/mpopesco/investfolio/internal/core/domain"
	"github.com/mpopesco/investfolio/internal/dto"
)

// InvestmentSvcFacade exposes ledger operations over the investment records.
type InvestmentSvcFacade interface {
	// CreateInvestment validates and appends a new record, assigning its
	// monotonic timestamp identifier.
	CreateInvestment(ctx context.Context, req dto.CreateInvestmentRequest) (*domain.Investment, error)

	// DeleteInvestment removes a record by id; apperrors.ErrNotFound when absent.
	DeleteInvestment(ctx context.Context, investmentID string) error

	// ReplaceAllInvestments destructively replaces the whole ledger with the
	// valid subset of the given candidates and returns how many were imported.
	ReplaceAllInvestments(ctx context.Context, candidates []dto.CreateInvestmentRequest) (int, error)

	// ListInvestments returns all records, newest first.
	ListInvestments(ctx context.Context) ([]domain.Investment, error)
}
