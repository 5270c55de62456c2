package redis

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"vet-clinic-scheduling/internal/ports/locks"
)

// Requiere un redis real: REDIS_TEST_ADDR=localhost:6379 go test ./...
func TestLocker_Redis(t *testing.T) {
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR not set")
	}

	ctx := context.Background()
	rdb, err := NewClient(ctx, addr, os.Getenv("REDIS_TEST_PASSWORD"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdb.Close() })

	l := NewLocker(rdb, nil)
	key := "test:lock:" + uuid.NewString()

	token, ok, err := l.TryLock(ctx, key, 10*time.Second)
	require.NoError(t, err)
	require.True(t, ok)
	require.NotEmpty(t, token)

	_, ok, err = l.TryLock(ctx, key, 10*time.Second)
	require.NoError(t, err)
	require.False(t, ok)

	err = l.Unlock(ctx, key, "not-mine")
	require.True(t, errors.Is(err, locks.ErrNotOwner))

	require.NoError(t, l.Unlock(ctx, key, token))
	// liberar dos veces no es error
	require.NoError(t, l.Unlock(ctx, key, token))
}
