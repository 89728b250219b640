package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newIdempotentHandler(t *testing.T, status int) (http.Handler, *int) {
	t.Helper()

	cache := NewIdempotencyCache(time.Minute)
	t.Cleanup(cache.Stop)

	calls := 0
	handler := Idempotency(cache)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(status)
		_, _ = w.Write([]byte(`{"data":{"id":1}}`))
	}))
	return handler, &calls
}

func TestIdempotency_ReplaysCachedResponse(t *testing.T) {
	handler, calls := newIdempotentHandler(t, http.StatusCreated)

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", nil)
		req.Header.Set(IdempotencyHeader, "key-1")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, `{"data":{"id":1}}`, rec.Body.String())
	}

	assert.Equal(t, 1, *calls, "the second request must be served from the cache")
}

func TestIdempotency_FailuresAreNotCached(t *testing.T) {
	handler, calls := newIdempotentHandler(t, http.StatusConflict)

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", nil)
		req.Header.Set(IdempotencyHeader, "key-1")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusConflict, rec.Code)
	}

	assert.Equal(t, 2, *calls, "a failed request must be retryable with the same key")
}

func TestIdempotency_DistinctKeysAreIndependent(t *testing.T) {
	handler, calls := newIdempotentHandler(t, http.StatusCreated)

	for _, key := range []string{"key-1", "key-2"} {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", nil)
		req.Header.Set(IdempotencyHeader, key)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
	}

	assert.Equal(t, 2, *calls)
}

func TestIdempotency_NoHeaderPassesThrough(t *testing.T) {
	handler, calls := newIdempotentHandler(t, http.StatusCreated)

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
	}

	assert.Equal(t, 2, *calls)
}

func TestIdempotencyCache_ExpiredEntriesMiss(t *testing.T) {
	cache := NewIdempotencyCache(10 * time.Millisecond)
	t.Cleanup(cache.Stop)

	cache.Set("key-1", &CachedResponse{StatusCode: http.StatusCreated})
	time.Sleep(20 * time.Millisecond)

	_, ok := cache.Get("key-1")
	assert.False(t, ok)
}
