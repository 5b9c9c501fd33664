package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mpopesco/investfolio/internal/apperrors"
	"github.com/mpopesco/investfolio/internal/core/domain"
)

// PgxObjectiveRepository implements the ports.ObjectiveRepository interface using pgxpool.
// The objective is a singleton row, replaced wholesale on update.
type PgxObjectiveRepository struct {
	db *pgxpool.Pool
}

// NewObjectiveRepository creates a new PgxObjectiveRepository.
func NewObjectiveRepository(db *pgxpool.Pool) *PgxObjectiveRepository {
	return &PgxObjectiveRepository{db: db}
}

// SaveObjective upserts the singleton objective row.
func (r *PgxObjectiveRepository) SaveObjective(ctx context.Context, objective domain.Objective) error {
	query := `
		INSERT INTO objective (id, target_amount, currency)
		VALUES (1, $1, $2)
		ON CONFLICT (id) DO UPDATE SET target_amount = EXCLUDED.target_amount, currency = EXCLUDED.currency
	`
	if _, err := r.db.Exec(ctx, query, objective.TargetAmount, objective.Currency); err != nil {
		return fmt.Errorf("error saving objective: %w", err)
	}
	return nil
}

// FindObjective returns the stored objective.
func (r *PgxObjectiveRepository) FindObjective(ctx context.Context) (*domain.Objective, error) {
	objective := &domain.Objective{}
	err := r.db.QueryRow(ctx, `SELECT target_amount, currency FROM objective WHERE id = 1`).
		Scan(&objective.TargetAmount, &objective.Currency)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("no objective set")
		}
		return nil, fmt.Errorf("error finding objective: %w", err)
	}
	return objective, nil
}
