package db

import (
	"context"
	"os"
	"testing"

	"cardRevealServer/game"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsStore(t *testing.T) {
	_ = godotenv.Load("../.env")

	addr := os.Getenv("REDIS_URL")
	if addr == "" {
		t.Skip("REDIS_URL not set")
	}

	ctx := context.Background()
	client, err := InitRedis(ctx, addr, os.Getenv("REDIS_PASSWORD"), 0)
	require.NoError(t, err)
	defer client.Close()

	store := NewSettingsStore(client, "test-settings-store")
	require.NoError(t, store.Delete(ctx))
	defer store.Delete(ctx)

	t.Run("MissingProfile", func(t *testing.T) {
		_, found, err := store.Load(ctx)
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("RoundTrip", func(t *testing.T) {
		want := game.Settings{BetIndex: 3, Speed: game.SpeedInstant}
		require.NoError(t, store.Save(ctx, want))

		got, found, err := store.Load(ctx)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, want, got)
	})

	t.Run("Health", func(t *testing.T) {
		assert.NoError(t, store.HealthCheck(ctx))
	})
}
