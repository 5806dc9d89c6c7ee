package sessions

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_SetGetClear(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	session := &Session{UserID: 7, Flashes: []Flash{{Level: FlashInfo, Message: "hi"}}}
	require.NoError(t, store.Set(ctx, "tok-1", session, time.Minute))

	got, err := store.Get(ctx, "tok-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, int64(7), got.UserID)
	assert.Equal(t, []Flash{{Level: FlashInfo, Message: "hi"}}, got.Flashes)

	require.NoError(t, store.Clear(ctx, "tok-1"))

	got, err = store.Get(ctx, "tok-1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemoryStore_GetMiss(t *testing.T) {
	store := NewMemoryStore()

	got, err := store.Get(context.Background(), "unknown")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemoryStore_Expiry(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "tok", &Session{UserID: 1}, time.Millisecond))
	time.Sleep(5 * time.Millisecond)

	got, err := store.Get(ctx, "tok")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemoryStore_NonPositiveTTLClears(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "tok", &Session{UserID: 1}, time.Minute))
	require.NoError(t, store.Set(ctx, "tok", &Session{UserID: 1}, 0))

	got, err := store.Get(ctx, "tok")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemoryStore_CopiesState(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	session := &Session{UserID: 1}
	session.AddFlash(FlashSuccess, "created")
	require.NoError(t, store.Set(ctx, "tok", session, time.Minute))

	// Draining the caller's flashes must not drain the stored copy.
	session.PopFlashes()

	got, err := store.Get(ctx, "tok")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Len(t, got.Flashes, 1)
}

func TestMemoryStore_ClearAbsent(t *testing.T) {
	store := NewMemoryStore()
	assert.NoError(t, store.Clear(context.Background(), "never-set"))
}
