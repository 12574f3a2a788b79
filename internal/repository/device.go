package repository

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"

	"oasis-blood-platform/internal/domain"
)

const devicesTable = "user_devices"

// DeviceRepo stores push-delivery registrations.
type DeviceRepo struct{ db *pgxpool.Pool }

// NewDeviceRepo creates a new DeviceRepo.
func NewDeviceRepo(db *pgxpool.Pool) *DeviceRepo { return &DeviceRepo{db: db} }

// Upsert registers a token for a user. A token already known is moved to the
// user and reactivated.
func (r *DeviceRepo) Upsert(ctx context.Context, d *domain.Device) error {
	query, args, err := psql().
		Insert(devicesTable).
		Columns("token", "user_id", "platform", "is_active").
		Values(d.Token, d.UserID, d.Platform, true).
		Suffix(`ON CONFLICT (token) DO UPDATE SET
			user_id = EXCLUDED.user_id,
			platform = EXCLUDED.platform,
			is_active = true,
			updated_at = now()
		RETURNING created_at`).
		ToSql()
	if err != nil {
		return fmt.Errorf("build upsert device query: %w", err)
	}

	if err := r.db.QueryRow(ctx, query, args...).Scan(&d.CreatedAt); err != nil {
		return fmt.Errorf("upsert device: %w", err)
	}
	d.IsActive = true
	return nil
}

// Delete removes a user's token and reports whether it existed.
func (r *DeviceRepo) Delete(ctx context.Context, userID, token string) (bool, error) {
	query, args, err := psql().
		Delete(devicesTable).
		Where(sq.Eq{"user_id": userID, "token": token}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build delete device query: %w", err)
	}

	ct, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("delete device: %w", err)
	}
	return ct.RowsAffected() > 0, nil
}

// TokensByUser returns the user's active tokens, oldest first.
func (r *DeviceRepo) TokensByUser(ctx context.Context, userID string) ([]string, error) {
	query, args, err := psql().
		Select("token").
		From(devicesTable).
		Where(sq.Eq{"user_id": userID, "is_active": true}).
		OrderBy("created_at ASC", "token ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build tokens query: %w", err)
	}

	var tokens []string
	if err := pgxscan.Select(ctx, r.db, &tokens, query, args...); err != nil {
		return nil, fmt.Errorf("select tokens for user %s: %w", userID, err)
	}
	return tokens, nil
}
