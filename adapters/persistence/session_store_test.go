package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theafricanengineer/mozillians/internal/domain/session"
)

func newTestStore(t *testing.T) session.Store {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return NewRedisSessionStore(rdb)
}

func TestSessionStore_CreateGetDelete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	userID := uuid.New()

	sess, err := store.Create(ctx, userID, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, userID, sess.UserID)

	got, err := store.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, sess.ID, got.ID)
	assert.Equal(t, userID, got.UserID)

	require.NoError(t, store.Delete(ctx, sess.ID))

	_, err = store.Get(ctx, sess.ID)
	assert.ErrorIs(t, err, session.ErrNotFound)
}

func TestSessionStore_DeleteIsIdempotent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	id := uuid.New()
	assert.NoError(t, store.Delete(ctx, id))
	assert.NoError(t, store.Delete(ctx, id))
}

func TestSessionStore_Flashes(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	sess, err := store.Create(ctx, uuid.New(), time.Hour)
	require.NoError(t, err)

	require.NoError(t, store.AddFlash(ctx, sess.ID, "first"))
	require.NoError(t, store.AddFlash(ctx, sess.ID, "second"))

	msgs, err := store.PopFlashes(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, msgs)

	// A second pop comes back empty.
	msgs, err = store.PopFlashes(ctx, sess.ID)
	require.NoError(t, err)
	assert.Empty(t, msgs)
}
