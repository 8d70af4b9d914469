package cache

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewStore(client), mr
}

func TestStore_SetGet(t *testing.T) {
	store, _ := setupTestStore(t)
	ctx := context.Background()

	store.Set(ctx, "host:properties:page:1:status:all", map[string]interface{}{"total": 3}, time.Minute)

	raw, ok := store.Get(ctx, "host:properties:page:1:status:all")
	require.True(t, ok)

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &payload))
	assert.Equal(t, float64(3), payload["total"])
}

func TestStore_GetMiss(t *testing.T) {
	store, _ := setupTestStore(t)

	_, ok := store.Get(context.Background(), "missing")
	assert.False(t, ok)
}

func TestStore_Expiry(t *testing.T) {
	store, mr := setupTestStore(t)
	ctx := context.Background()

	store.Set(ctx, "host:booking:b1", "cached", time.Minute)

	_, ok := store.Get(ctx, "host:booking:b1")
	require.True(t, ok)

	mr.FastForward(2 * time.Minute)

	_, ok = store.Get(ctx, "host:booking:b1")
	assert.False(t, ok)
}

func TestStore_DefaultTTLApplied(t *testing.T) {
	store, mr := setupTestStore(t)
	ctx := context.Background()

	store.Set(ctx, "k", "v", 0)

	ttl := mr.TTL("k")
	assert.Equal(t, DefaultTTL, ttl)
}

func TestStore_Delete(t *testing.T) {
	store, _ := setupTestStore(t)
	ctx := context.Background()

	store.Set(ctx, "a", 1, time.Minute)
	store.Set(ctx, "b", 2, time.Minute)
	store.Delete(ctx, "a", "b")

	_, ok := store.Get(ctx, "a")
	assert.False(t, ok)
	_, ok = store.Get(ctx, "b")
	assert.False(t, ok)
}

func TestStore_DeleteMatching(t *testing.T) {
	store, _ := setupTestStore(t)
	ctx := context.Background()

	store.Set(ctx, "host:properties:page:1:status:all", 1, time.Minute)
	store.Set(ctx, "host:properties:page:2:status:active", 2, time.Minute)
	store.Set(ctx, "host:booking:b1", 3, time.Minute)

	store.DeleteMatching(ctx, "host:properties:*")

	_, ok := store.Get(ctx, "host:properties:page:1:status:all")
	assert.False(t, ok)
	_, ok = store.Get(ctx, "host:properties:page:2:status:active")
	assert.False(t, ok)

	// unrelated keys survive
	_, ok = store.Get(ctx, "host:booking:b1")
	assert.True(t, ok)
}

func TestStore_NilStoreIsNoop(t *testing.T) {
	var store *Store
	ctx := context.Background()

	store.Set(ctx, "k", "v", time.Minute)
	_, ok := store.Get(ctx, "k")
	assert.False(t, ok)
	store.Delete(ctx, "k")
	store.DeleteMatching(ctx, "*")
}

func TestStore_BackendDownDegradesToMiss(t *testing.T) {
	store, mr := setupTestStore(t)
	ctx := context.Background()

	store.Set(ctx, "k", "v", time.Minute)
	mr.Close()

	_, ok := store.Get(ctx, "k")
	assert.False(t, ok)
	// writes after failure must not panic
	store.Set(ctx, "k2", "v", time.Minute)
}
