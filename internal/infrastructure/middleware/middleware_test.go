package middleware

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

type stubLimiter struct {
	allowed bool
	err     error
	clients []string
}

func (s *stubLimiter) Allow(_ context.Context, clientID string) (bool, error) {
	s.clients = append(s.clients, clientID)
	return s.allowed, s.err
}

func TestRequestID(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromContext(r.Context())
	}))

	t.Run("generated", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.NotEmpty(t, seen)
		assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))
	})

	t.Run("propagated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, "abc-123")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, "abc-123", seen)
		assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
	})
}

func TestRateLimit(t *testing.T) {
	t.Run("rejected", func(t *testing.T) {
		limiter := &stubLimiter{allowed: false}
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/hotel/list", nil)
		req.Header.Set("X-Forwarded-For", "10.0.0.1, 10.0.0.2")

		RateLimit(limiter, testLogger())(okHandler).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
		assert.JSONEq(t, `{"success":false,"error":"Rate limit exceeded"}`, rec.Body.String())
		assert.Equal(t, []string{"10.0.0.1"}, limiter.clients)
	})

	t.Run("allowed", func(t *testing.T) {
		rec := httptest.NewRecorder()
		RateLimit(&stubLimiter{allowed: true}, testLogger())(okHandler).
			ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("limiter failure lets request through", func(t *testing.T) {
		rec := httptest.NewRecorder()
		RateLimit(&stubLimiter{err: errors.New("redis down")}, testLogger())(okHandler).
			ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestCORS(t *testing.T) {
	rec := httptest.NewRecorder()
	CORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("preflight must not reach the handler")
	})).ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/hotel/list", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_AnswersPreflightForRouterWithMethodRestrictedRoutes(t *testing.T) {
	router := mux.NewRouter()
	router.Handle("/hotel/list", okHandler).Methods(http.MethodPost)
	handler := CORS(router)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/hotel/list", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), http.MethodPost)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/hotel/list", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestLogging_RecordsStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	Logging(testLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.168.1.5:54321"
	assert.Equal(t, "192.168.1.5", ClientIP(req))

	req.Header.Set("X-Forwarded-For", " 203.0.113.7 ")
	assert.Equal(t, "203.0.113.7", ClientIP(req))
}

func TestLocalRateLimiter(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	limiter := NewLocalRateLimiter(2, time.Minute)
	limiter.now = func() time.Time { return now }

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		ok, err := limiter.Allow(ctx, "a")
		require.NoError(t, err)
		assert.True(t, ok)
	}

	ok, _ := limiter.Allow(ctx, "a")
	assert.False(t, ok, "burst exhausted")

	ok, _ = limiter.Allow(ctx, "b")
	assert.True(t, ok, "clients are limited independently")

	now = now.Add(30 * time.Second)
	ok, _ = limiter.Allow(ctx, "a")
	assert.True(t, ok, "one token refilled after half a window")

	now = now.Add(5 * time.Minute)
	assert.Equal(t, 2, limiter.Sweep())
}
