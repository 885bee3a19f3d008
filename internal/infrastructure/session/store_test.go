package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bloggerum-backend/pkg/jwt"
)

func setupStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store := NewStore(client, jwt.NewManager("test-secret"), Options{
		TTL:           time.Hour,
		RememberTTL:   365 * 24 * time.Hour,
		ResetTokenTTL: 72 * time.Hour,
	})
	return store, mr
}

func TestStore_CreateResolveDestroy(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	issued, err := store.Create(ctx, "user-1", false)
	require.NoError(t, err)
	assert.Equal(t, time.Hour, issued.TTL)
	assert.False(t, issued.Remember)

	userID, err := store.Resolve(ctx, issued.Token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)

	require.NoError(t, store.Destroy(ctx, issued.Token))
	_, err = store.Resolve(ctx, issued.Token)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestStore_RememberExtendsTTL(t *testing.T) {
	store, mr := setupStore(t)
	ctx := context.Background()

	short, err := store.Create(ctx, "user-1", false)
	require.NoError(t, err)
	long, err := store.Create(ctx, "user-1", true)
	require.NoError(t, err)
	assert.Equal(t, 365*24*time.Hour, long.TTL)

	mr.FastForward(2 * time.Hour)

	_, err = store.Resolve(ctx, short.Token)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	userID, err := store.Resolve(ctx, long.Token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
}

func TestStore_ResolveRejectsTamperedToken(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	issued, err := store.Create(ctx, "user-1", false)
	require.NoError(t, err)

	_, err = store.Resolve(ctx, issued.Token+"x")
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = store.Resolve(ctx, "")
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.NoError(t, store.Destroy(ctx, "not-a-token"))
}

func TestStore_ResetTokenIsSingleUse(t *testing.T) {
	store, mr := setupStore(t)
	ctx := context.Background()

	token, err := store.IssueResetToken(ctx, "user-9")
	require.NoError(t, err)
	assert.Len(t, token, 64)
	assert.True(t, mr.Exists("forgot-password:"+token))

	userID, err := store.ConsumeResetToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "user-9", userID)

	_, err = store.ConsumeResetToken(ctx, token)
	assert.ErrorIs(t, err, ErrResetTokenNotFound)
	_, err = store.ConsumeResetToken(ctx, "")
	assert.ErrorIs(t, err, ErrResetTokenNotFound)
}

func TestStore_ResetTokenExpires(t *testing.T) {
	store, mr := setupStore(t)
	ctx := context.Background()

	token, err := store.IssueResetToken(ctx, "user-9")
	require.NoError(t, err)

	mr.FastForward(73 * time.Hour)
	_, err = store.ConsumeResetToken(ctx, token)
	assert.ErrorIs(t, err, ErrResetTokenNotFound)
}
