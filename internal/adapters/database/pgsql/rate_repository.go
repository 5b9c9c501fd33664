package pgsql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mpopesco/investfolio/internal/apperrors"
	"github.com/mpopesco/investfolio/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PgxRateRepository implements the ports.RateRepository interface using pgxpool.
// Only the latest snapshot matters at runtime; it is kept as a singleton row
// with the rate map stored as JSONB.
type PgxRateRepository struct {
	db *pgxpool.Pool
}

// NewRateRepository creates a new PgxRateRepository.
func NewRateRepository(db *pgxpool.Pool) *PgxRateRepository {
	return &PgxRateRepository{db: db}
}

// SaveRateTable replaces the stored snapshot.
func (r *PgxRateRepository) SaveRateTable(ctx context.Context, table domain.RateTable) error {
	rates, err := json.Marshal(table.Rates)
	if err != nil {
		return fmt.Errorf("error encoding rate table: %w", err)
	}

	query := `
		INSERT INTO rate_snapshots (id, as_of, rates, updated_at)
		VALUES (1, $1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET as_of = EXCLUDED.as_of, rates = EXCLUDED.rates, updated_at = EXCLUDED.updated_at
	`
	if _, err := r.db.Exec(ctx, query, table.AsOf, rates, time.Now()); err != nil {
		return fmt.Errorf("error saving rate snapshot: %w", err)
	}
	return nil
}

// FindLatestRateTable returns the stored snapshot.
func (r *PgxRateRepository) FindLatestRateTable(ctx context.Context) (*domain.RateTable, error) {
	var asOf string
	var raw []byte
	err := r.db.QueryRow(ctx, `SELECT as_of, rates FROM rate_snapshots WHERE id = 1`).Scan(&asOf, &raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("no rate snapshot stored")
		}
		return nil, fmt.Errorf("error finding rate snapshot: %w", err)
	}

	rates := make(map[string]decimal.Decimal)
	if err := json.Unmarshal(raw, &rates); err != nil {
		return nil, fmt.Errorf("error decoding rate snapshot: %w", err)
	}

	table := domain.NewRateTable(asOf, rates)
	return &table, nil
}
