package repository_test

import (
	"context"
	"testing"

	errorvalues "github.com/limbo/fitlog/internal/error_values"
	"github.com/limbo/fitlog/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryKV(t *testing.T) {
	kv := repository.NewMemoryKV()
	ctx := context.Background()
	t.Run("missing key", func(t *testing.T) {
		_, err := kv.Get(ctx, "workout-logs")
		assert.ErrorIs(t, err, errorvalues.ErrKeyNotFound)
	})
	t.Run("overwrite", func(t *testing.T) {
		require.NoError(t, kv.Set(ctx, "workout-logs", "[]"))
		require.NoError(t, kv.Set(ctx, "workout-logs", `[{"id":1}]`))
		value, err := kv.Get(ctx, "workout-logs")
		assert.NoError(t, err)
		assert.Equal(t, `[{"id":1}]`, value)
	})
	t.Run("keys are independent", func(t *testing.T) {
		_, err := kv.Get(ctx, settingsKey)
		assert.ErrorIs(t, err, errorvalues.ErrKeyNotFound)
	})
}

func TestNewStore(t *testing.T) {
	t.Run("memory by default", func(t *testing.T) {
		kv, err := repository.NewStore(&repository.StoreOptions{})
		assert.NoError(t, err)
		assert.IsType(t, &repository.MemoryKV{}, kv)
	})
	t.Run("unknown driver", func(t *testing.T) {
		_, err := repository.NewStore(&repository.StoreOptions{Driver: "etcd"})
		assert.ErrorIs(t, err, errorvalues.ErrUnknownStorageDriver)
	})
	t.Run("postgres without config", func(t *testing.T) {
		_, err := repository.NewStore(&repository.StoreOptions{Driver: repository.DriverPostgres})
		assert.Error(t, err)
	})
	t.Run("redis without config", func(t *testing.T) {
		_, err := repository.NewStore(&repository.StoreOptions{Driver: repository.DriverRedis})
		assert.Error(t, err)
	})
}
