package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

const matchRunsTable = "match_runs"

// MatchRunRepo is the processed-request log of the matching worker.
type MatchRunRepo struct{ db *pgxpool.Pool }

// NewMatchRunRepo creates a new MatchRunRepo.
func NewMatchRunRepo(db *pgxpool.Pool) *MatchRunRepo { return &MatchRunRepo{db: db} }

// Claim records requestID and returns true only for the first caller.
func (r *MatchRunRepo) Claim(ctx context.Context, requestID string) (bool, error) {
	query, args, err := psql().
		Insert(matchRunsTable).
		Columns("request_id").
		Values(requestID).
		Suffix("ON CONFLICT (request_id) DO NOTHING").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build claim query: %w", err)
	}

	ct, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("claim request %s: %w", requestID, err)
	}
	return ct.RowsAffected() == 1, nil
}
