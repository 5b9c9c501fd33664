package services

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/mpopesco/investfolio/internal/apperrors"
	"github.com/mpopesco/investfolio/internal/core/domain"
	portsrepo "github.com/mpopesco/investfolio/internal/core/ports/repositories"
	portssvc "github.com/mpopesco/investfolio/internal/core/ports/services"
	"github.com/mpopesco/investfolio/internal/dto"
)

// investmentService implements ledger operations over the investment records.
type investmentService struct {
	investmentRepo portsrepo.InvestmentRepository

	// lastTimestamp guarantees the assigned creation timestamps stay strictly
	// increasing within the process lifetime, even when two appends land in
	// the same millisecond.
	tsMu          sync.Mutex
	lastTimestamp int64
}

// NewInvestmentService creates a new investment ledger service.
func NewInvestmentService(investmentRepo portsrepo.InvestmentRepository) portssvc.InvestmentSvcFacade {
	return &investmentService{investmentRepo: investmentRepo}
}

// nextTimestamp allocates a fresh monotonic creation timestamp. It doubles as
// the record identifier, so collisions would corrupt delete-by-id.
func (s *investmentService) nextTimestamp() int64 {
	s.tsMu.Lock()
	defer s.tsMu.Unlock()

	ts := time.Now().UnixMilli()
	if ts <= s.lastTimestamp {
		ts = s.lastTimestamp + 1
	}
	s.lastTimestamp = ts
	return ts
}

// buildInvestment validates a candidate and resolves its amount and sale flag.
// When both unitPrice and units are supplied the amount is derived as
// unitPrice * units, letting the sign of units flow through so one payload
// shape covers purchases and sales alike.
func buildInvestment(req dto.CreateInvestmentRequest, timestamp int64) (*domain.Investment, error) {
	if len(req.Currency) != 3 {
		return nil, fmt.Errorf("%w: currency must be a 3-letter code", apperrors.ErrValidation)
	}
	if req.Fund == "" {
		return nil, fmt.Errorf("%w: fund is required", apperrors.ErrValidation)
	}
	if req.Platform == "" {
		return nil, fmt.Errorf("%w: platform is required", apperrors.ErrValidation)
	}
	if req.Date == "" {
		return nil, fmt.Errorf("%w: date is required", apperrors.ErrValidation)
	}
	if req.UnitPrice != nil && req.UnitPrice.IsNegative() {
		return nil, fmt.Errorf("%w: unit price cannot be negative", apperrors.ErrValidation)
	}

	inv := domain.Investment{
		InvestmentID: strconv.FormatInt(timestamp, 10),
		Timestamp:    timestamp,
		Currency:     req.Currency,
		Fund:         req.Fund,
		Platform:     req.Platform,
		Date:         req.Date,
		UnitPrice:    req.UnitPrice,
		Units:        req.Units,
	}

	switch {
	case req.UnitPrice != nil && req.Units != nil:
		inv.Amount = req.UnitPrice.Mul(*req.Units)
	case req.Amount != nil:
		inv.Amount = *req.Amount
	default:
		return nil, fmt.Errorf("%w: either amount or a unitPrice/units pair is required", apperrors.ErrValidation)
	}

	inv.IsSale = req.Units != nil && req.Units.IsNegative()

	return &inv, nil
}

// CreateInvestment validates and appends a new ledger record.
func (s *investmentService) CreateInvestment(ctx context.Context, req dto.CreateInvestmentRequest) (*domain.Investment, error) {
	inv, err := buildInvestment(req, s.nextTimestamp())
	if err != nil {
		return nil, err
	}

	if err := s.investmentRepo.SaveInvestment(ctx, *inv); err != nil {
		return nil, fmt.Errorf("failed to create investment in service: %w", err)
	}

	return inv, nil
}

// DeleteInvestment removes a record by its identifier.
func (s *investmentService) DeleteInvestment(ctx context.Context, investmentID string) error {
	if investmentID == "" {
		return fmt.Errorf("%w: investment ID is required", apperrors.ErrValidation)
	}

	if err := s.investmentRepo.DeleteInvestment(ctx, investmentID); err != nil {
		// Repository maps missing rows to apperrors.ErrNotFound.
		return err
	}
	return nil
}

// ReplaceAllInvestments destructively replaces the ledger with the valid
// subset of the given candidates. Invalid entries are skipped silently; the
// returned count tells the caller how many were actually imported.
func (s *investmentService) ReplaceAllInvestments(ctx context.Context, candidates []dto.CreateInvestmentRequest) (int, error) {
	imported := make([]domain.Investment, 0, len(candidates))
	for _, candidate := range candidates {
		inv, err := buildInvestment(candidate, s.nextTimestamp())
		if err != nil {
			continue
		}
		imported = append(imported, *inv)
	}

	if err := s.investmentRepo.ReplaceInvestments(ctx, imported); err != nil {
		return 0, fmt.Errorf("failed to replace investments in service: %w", err)
	}

	return len(imported), nil
}

// ListInvestments returns all ledger records, newest first.
func (s *investmentService) ListInvestments(ctx context.Context) ([]domain.Investment, error) {
	investments, err := s.investmentRepo.ListInvestments(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list investments in service: %w", err)
	}
	if investments == nil {
		return []domain.Investment{}, nil
	}
	return investments, nil
}
