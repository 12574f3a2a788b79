//go:build integration

package app_test

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"oasis-blood-platform/internal/app"
	"oasis-blood-platform/internal/config"
)

func TestMustBuildContainer_Integration(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cfg := config.Default()
	cfg.Kafka.Brokers = nil
	c := app.NewContainerBuilder().WithConfig(&cfg).MustBuild(ctx)
	require.NotNil(t, c)

	err := c.Invoke(func(got *config.Config, pool *pgxpool.Pool) {
		require.NotNil(t, got)
		require.NotNil(t, pool)
		require.NoError(t, pool.Ping(ctx))
	})
	require.NoError(t, err)
}
