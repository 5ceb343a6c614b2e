package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"virtual-card-wallet/pkg/apperror"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *goredis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func TestSessionStore_PutAndGet(t *testing.T) {
	_, client := newTestRedis(t)
	store := NewSessionStore(client)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "sid-1", "a@b.com", time.Hour))

	email, err := store.GetEmail(ctx, "sid-1")
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", email)
}

func TestSessionStore_MissingSessionIsRevoked(t *testing.T) {
	_, client := newTestRedis(t)
	store := NewSessionStore(client)

	_, err := store.GetEmail(context.Background(), "never-issued")
	require.Error(t, err)

	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "AUTH_004", appErr.Code)
}

func TestSessionStore_ExpiryRevokes(t *testing.T) {
	mr, client := newTestRedis(t)
	store := NewSessionStore(client)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "sid-1", "a@b.com", time.Minute))
	mr.FastForward(2 * time.Minute)

	_, err := store.GetEmail(ctx, "sid-1")
	assert.Error(t, err)
}

func TestSessionStore_DeleteRevokes(t *testing.T) {
	_, client := newTestRedis(t)
	store := NewSessionStore(client)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "sid-1", "a@b.com", time.Hour))
	require.NoError(t, store.Delete(ctx, "sid-1"))

	_, err := store.GetEmail(ctx, "sid-1")
	assert.Error(t, err)

	// Deleting again is a no-op.
	assert.NoError(t, store.Delete(ctx, "sid-1"))
}
