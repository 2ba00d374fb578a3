package wizard

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewStore(client, time.Hour), mr
}

func TestStoreRoundTrip(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	d := NewDraft(42)
	require.NoError(t, d.SetPhone("origin", "9876543210", nil))
	require.NoError(t, store.Set(ctx, d))

	got, err := store.Get(ctx, d.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, d.ID, got.ID)
	assert.Equal(t, int64(42), got.UserID)
	assert.Equal(t, SubAddressNotFound, got.Origin.SubState)
}

func TestStoreUnknownDraftIsNil(t *testing.T) {
	store, _ := newTestStore(t)
	got, err := store.Get(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStoreExpiry(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	d := NewDraft(1)
	require.NoError(t, store.Set(ctx, d))

	mr.FastForward(2 * time.Hour)

	got, err := store.Get(ctx, d.ID)
	require.NoError(t, err)
	assert.Nil(t, got, "expired draft reads as missing")
}

func TestStoreClear(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	d := NewDraft(1)
	require.NoError(t, store.Set(ctx, d))
	require.NoError(t, store.Clear(ctx, d.ID))

	got, err := store.Get(ctx, d.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}
