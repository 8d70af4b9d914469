package platform

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krib-platform/super-admin-backend/internal/cache"
)

func setupTestCache(t *testing.T) *cache.Store {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return cache.NewStore(client)
}

func TestClient_SendsBearerAuth(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer secret-key" {
			t.Errorf("unexpected auth header: %s", r.Header.Get("Authorization"))
		}
		w.Write([]byte(`{"ok": true}`))
	}))
	defer server.Close()

	client := NewClient("host_dashboard", server.URL, "secret-key", setupTestCache(t))

	_, err := client.Get(context.Background(), "/api/admin/properties", nil, "", 0)
	require.NoError(t, err)
}

func TestClient_CachedGetSkipsNetwork(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Write([]byte(`{"data": [], "total": 0}`))
	}))
	defer server.Close()

	client := NewClient("host_dashboard", server.URL, "k", setupTestCache(t))
	ctx := context.Background()

	_, err := client.Get(ctx, "/api/admin/properties", nil, "host:properties:page:1:status:all", time.Minute)
	require.NoError(t, err)
	_, err = client.Get(ctx, "/api/admin/properties", nil, "host:properties:page:1:status:all", time.Minute)
	require.NoError(t, err)

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestClient_MutationsNeverCached(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Write([]byte(`{"ok": true}`))
	}))
	defer server.Close()

	client := NewClient("host_dashboard", server.URL, "k", setupTestCache(t))
	ctx := context.Background()

	_, err := client.Post(ctx, "/api/admin/bookings/b1/cancel", map[string]string{"reason": "fraud"})
	require.NoError(t, err)
	_, err = client.Post(ctx, "/api/admin/bookings/b1/cancel", map[string]string{"reason": "fraud"})
	require.NoError(t, err)

	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestClient_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"detail": "nope"}`))
	}))
	defer server.Close()

	client := NewClient("agent_dashboard", server.URL, "k", setupTestCache(t))

	_, err := client.Get(context.Background(), "/api/admin/verification/pending", nil, "", 0)
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusForbidden, apiErr.Status)
	assert.Equal(t, "agent_dashboard", apiErr.Platform)
	assert.Contains(t, apiErr.Body, "nope")
}

func TestClient_ErrorsNotCached(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"data": [], "total": 0}`))
	}))
	defer server.Close()

	client := NewClient("host_dashboard", server.URL, "k", setupTestCache(t))
	ctx := context.Background()

	_, err := client.Get(ctx, "/x", nil, "key", time.Minute)
	require.Error(t, err)

	// the failed response must not have been cached
	_, err = client.Get(ctx, "/x", nil, "key", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestClient_TransportError(t *testing.T) {
	client := NewClient("customer_platform", "http://127.0.0.1:1", "k", setupTestCache(t))

	_, err := client.Get(context.Background(), "/api/admin/users", nil, "", 0)
	require.Error(t, err)

	var transportErr *TransportError
	require.True(t, errors.As(err, &transportErr))
	assert.Equal(t, "customer_platform", transportErr.Platform)
}

func TestClient_HealthCheck(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/health", r.URL.Path)
		w.Write([]byte(`{"status": "ok"}`))
	}))
	defer server.Close()

	up := NewClient("host_dashboard", server.URL, "k", setupTestCache(t))
	assert.True(t, up.HealthCheck(context.Background()))

	down := NewClient("host_dashboard", "http://127.0.0.1:1", "k", setupTestCache(t))
	assert.False(t, down.HealthCheck(context.Background()))
}

func TestHostClient_CancelInvalidatesCache(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": [{"id": "b1"}], "total": 1}`))
	}))
	defer server.Close()

	store := setupTestCache(t)
	host := NewHostClient(server.URL, "k", store)
	ctx := context.Background()

	_, err := host.Bookings(ctx, 1, 20, "")
	require.NoError(t, err)
	_, ok := store.Get(ctx, "host:bookings:page:1:status:")
	require.True(t, ok)

	_, err = host.CancelBooking(ctx, "b1", "fraud")
	require.NoError(t, err)

	_, ok = store.Get(ctx, "host:bookings:page:1:status:")
	assert.False(t, ok)
}

func TestGetCollection_Decodes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": [{"id": "p1"}, {"id": "p2"}], "total": 2}`))
	}))
	defer server.Close()

	client := NewClient("host_dashboard", server.URL, "k", setupTestCache(t))

	col, err := client.GetCollection(context.Background(), "/api/admin/properties", nil, "", 0)
	require.NoError(t, err)
	assert.Equal(t, 2, col.Total)
	require.Len(t, col.Data, 2)
	assert.Equal(t, "p1", col.Data[0]["id"])
}
