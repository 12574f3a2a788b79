package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

func TestColumnsOf(t *testing.T) {
	t.Parallel()

	type row struct {
		ID      string `db:"id"`
		Skip    string `db:"-"`
		NoTag   string
		private string `db:"private"`
		Name    string `db:"name"`
	}
	_ = row{}.private

	require.Equal(t, []string{"id", "name"}, columnsOf(row{}))
	require.Equal(t, []string{"id", "name"}, columnsOf(&row{}))
	require.Panics(t, func() { columnsOf(42) })
}

func TestRowColumns(t *testing.T) {
	t.Parallel()

	require.Equal(t, []string{
		"user_id", "name", "blood_type", "latitude", "longitude", "city", "availability",
		"last_donation_at", "verified", "donation_count", "created_at", "updated_at",
	}, donorColumns)
	require.Contains(t, requestColumns, "hospital_name")
	require.Len(t, requestColumns, 11)
}

func TestErrorHelpers(t *testing.T) {
	t.Parallel()

	dup := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})
	require.True(t, IsDuplicate(dup))
	require.False(t, IsDuplicate(&pgconn.PgError{Code: "23503"}))
	require.False(t, IsDuplicate(errors.New("boom")))

	require.True(t, IsNotFound(fmt.Errorf("get: %w", pgx.ErrNoRows)))
	require.False(t, IsNotFound(errors.New("boom")))
}

func TestCandidateQueryShape(t *testing.T) {
	t.Parallel()

	query, args, err := psql().
		Select("user_id").
		From(donorsTable).
		Where("latitude >= ?", 1.0).
		ToSql()
	require.NoError(t, err)
	require.Equal(t, "SELECT user_id FROM donors WHERE latitude >= $1", query)
	require.Equal(t, []any{1.0}, args)
}
