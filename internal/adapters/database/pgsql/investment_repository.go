package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mpopesco/investfolio/internal/apperrors"
	"github.com/mpopesco/investfolio/internal/core/domain"
)

// PgxInvestmentRepository implements the ports.InvestmentRepository interface using pgxpool.
type PgxInvestmentRepository struct {
	db *pgxpool.Pool
}

// NewInvestmentRepository creates a new PgxInvestmentRepository.
func NewInvestmentRepository(db *pgxpool.Pool) *PgxInvestmentRepository {
	return &PgxInvestmentRepository{db: db}
}

// SaveInvestment inserts a new ledger record.
func (r *PgxInvestmentRepository) SaveInvestment(ctx context.Context, inv domain.Investment) error {
	query := `
		INSERT INTO investments (
			investment_id, ts, amount, currency, fund, platform, entry_date,
			unit_price, units, is_sale
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.db.Exec(ctx, query,
		inv.InvestmentID, inv.Timestamp, inv.Amount, inv.Currency, inv.Fund, inv.Platform, inv.Date,
		inv.UnitPrice, inv.Units, inv.IsSale,
	)
	if err != nil {
		return fmt.Errorf("error inserting investment: %w", err)
	}
	return nil
}

// DeleteInvestment removes a record by its identifier.
func (r *PgxInvestmentRepository) DeleteInvestment(ctx context.Context, investmentID string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM investments WHERE investment_id = $1`, investmentID)
	if err != nil {
		return fmt.Errorf("error deleting investment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("investment '%s' not found", investmentID))
	}
	return nil
}

// ReplaceInvestments atomically replaces the whole ledger.
func (r *PgxInvestmentRepository) ReplaceInvestments(ctx context.Context, investments []domain.Investment) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("error starting replace transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM investments`); err != nil {
		return fmt.Errorf("error clearing investments: %w", err)
	}

	query := `
		INSERT INTO investments (
			investment_id, ts, amount, currency, fund, platform, entry_date,
			unit_price, units, is_sale
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	for _, inv := range investments {
		if _, err := tx.Exec(ctx, query,
			inv.InvestmentID, inv.Timestamp, inv.Amount, inv.Currency, inv.Fund, inv.Platform, inv.Date,
			inv.UnitPrice, inv.Units, inv.IsSale,
		); err != nil {
			return fmt.Errorf("error inserting imported investment: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("error committing replace transaction: %w", err)
	}
	return nil
}

// ListInvestments returns all records ordered newest-first by timestamp.
func (r *PgxInvestmentRepository) ListInvestments(ctx context.Context) ([]domain.Investment, error) {
	query := `
		SELECT investment_id, ts, amount, currency, fund, platform, entry_date,
			unit_price, units, is_sale
		FROM investments
		ORDER BY ts DESC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing investments: %w", err)
	}
	defer rows.Close()

	var investments []domain.Investment
	for rows.Next() {
		var inv domain.Investment
		if err := rows.Scan(
			&inv.InvestmentID, &inv.Timestamp, &inv.Amount, &inv.Currency, &inv.Fund, &inv.Platform, &inv.Date,
			&inv.UnitPrice, &inv.Units, &inv.IsSale,
		); err != nil {
			return nil, fmt.Errorf("error scanning investment row: %w", err)
		}
		investments = append(investments, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating investment rows: %w", err)
	}
	return investments, nil
}
