package middleware

import (
	"bytes"
	"net/http"
	"sync"
	"time"
)

const IdempotencyHeader = "Idempotency-Key"

// CachedResponse is a successful response replayed for a repeated
// Idempotency-Key.
type CachedResponse struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
	StoredAt   time.Time
}

// IdempotencyCache holds successful responses keyed by the client's
// Idempotency-Key header. Entries expire after the configured TTL; an
// hourly sweep removes the ones no Get has touched.
type IdempotencyCache struct {
	mu      sync.RWMutex
	entries map[string]*CachedResponse
	ttl     time.Duration
	stopCh  chan struct{}
}

func NewIdempotencyCache(ttl time.Duration) *IdempotencyCache {
	c := &IdempotencyCache{
		entries: make(map[string]*CachedResponse),
		ttl:     ttl,
		stopCh:  make(chan struct{}),
	}
	go c.evictLoop()
	return c
}

func (c *IdempotencyCache) Get(key string) (*CachedResponse, bool) {
	c.mu.RLock()
	cached, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return nil, false
	}
	if time.Since(cached.StoredAt) > c.ttl {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return nil, false
	}
	return cached, true
}

func (c *IdempotencyCache) Set(key string, cached *CachedResponse) {
	c.mu.Lock()
	defer c.mu.Unlock()

	cached.StoredAt = time.Now()
	c.entries[key] = cached
}

func (c *IdempotencyCache) evictLoop() {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.mu.Lock()
			for key, cached := range c.entries {
				if time.Since(cached.StoredAt) > c.ttl {
					delete(c.entries, key)
				}
			}
			c.mu.Unlock()
		case <-c.stopCh:
			return
		}
	}
}

// Stop ends the eviction goroutine.
func (c *IdempotencyCache) Stop() {
	close(c.stopCh)
}

type idempotencyWriter struct {
	http.ResponseWriter
	statusCode int
	body       bytes.Buffer
}

func (iw *idempotencyWriter) WriteHeader(statusCode int) {
	iw.statusCode = statusCode
	iw.ResponseWriter.WriteHeader(statusCode)
}

func (iw *idempotencyWriter) Write(b []byte) (int, error) {
	iw.body.Write(b)
	return iw.ResponseWriter.Write(b)
}

// Idempotency replays the cached response for a repeated Idempotency-Key
// instead of re-executing the request. Only 2xx responses are cached, so a
// failed request can be retried with the same key. Requests without the
// header pass through untouched.
func Idempotency(cache *IdempotencyCache) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get(IdempotencyHeader)
			if key == "" {
				next.ServeHTTP(w, r)
				return
			}

			if cached, ok := cache.Get(key); ok {
				replayResponse(w, cached)
				return
			}

			iw := &idempotencyWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(iw, r)

			if iw.statusCode >= 200 && iw.statusCode < 300 {
				cache.Set(key, &CachedResponse{
					StatusCode: iw.statusCode,
					Headers:    w.Header().Clone(),
					Body:       iw.body.Bytes(),
				})
			}
		})
	}
}

func replayResponse(w http.ResponseWriter, cached *CachedResponse) {
	for key, values := range cached.Headers {
		for _, value := range values {
			w.Header().Add(key, value)
		}
	}
	w.WriteHeader(cached.StatusCode)
	_, _ = w.Write(cached.Body)
}
