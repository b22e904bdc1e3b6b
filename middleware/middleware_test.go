package middleware

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/mseongj/weather-outfit/logger"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	_, _ = w.Write([]byte("ok"))
})

func do(h http.Handler, method, remote string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, "/api/weather?gu=x", nil)
	if remote != "" {
		req.RemoteAddr = remote
	}
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestCORS(t *testing.T) {
	t.Run("wildcard", func(t *testing.T) {
		rec := do(CORS("")(okHandler), http.MethodGet, "", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Empty(t, rec.Header().Get("Vary"))
	})

	t.Run("fixed origin", func(t *testing.T) {
		rec := do(CORS("https://weather.example")(okHandler), http.MethodGet, "", nil)
		assert.Equal(t, "https://weather.example", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "Origin", rec.Header().Get("Vary"))
	})

	t.Run("preflight", func(t *testing.T) {
		called := false
		next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true })
		rec := do(CORS("*")(next), http.MethodOptions, "", nil)
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, corsMethods, rec.Header().Get("Access-Control-Allow-Methods"))
		assert.False(t, called)
	})
}

func TestRateLimiter_RejectsOverLimit(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	h := NewRateLimiter(ctx, rate.Limit(1), 1).Middleware(okHandler)

	assert.Equal(t, http.StatusOK, do(h, http.MethodGet, "10.0.0.1:1234", nil).Code)

	rec := do(h, http.MethodGet, "10.0.0.1:5678", nil)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))
	assert.Contains(t, rec.Body.String(), "요청이 너무 많습니다")
}

func TestRateLimiter_SeparateIPs(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	h := NewRateLimiter(ctx, rate.Limit(1), 1).Middleware(okHandler)

	assert.Equal(t, http.StatusOK, do(h, http.MethodGet, "10.0.0.1:1", nil).Code)
	assert.Equal(t, http.StatusOK, do(h, http.MethodGet, "10.0.0.2:1", nil).Code)
	assert.Equal(t, http.StatusOK,
		do(h, http.MethodGet, "10.0.0.1:1", map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.1"}).Code)
}

func TestRateLimiter_Sweep(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	rl := NewRateLimiter(ctx, rate.Limit(1), 1)
	now := time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	rl.getLimiter("10.0.0.1")
	now = now.Add(staleAfter + time.Second)
	rl.getLimiter("10.0.0.2")
	rl.sweep()

	rl.mu.Lock()
	defer rl.mu.Unlock()
	assert.NotContains(t, rl.limiters, "10.0.0.1")
	assert.Contains(t, rl.limiters, "10.0.0.2")
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.1:4321"
	assert.Equal(t, "192.0.2.1", ClientIP(req))

	req.Header.Set("X-Forwarded-For", " 198.51.100.9 , 192.0.2.1")
	assert.Equal(t, "198.51.100.9", ClientIP(req))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "unix-socket"
	assert.Equal(t, "unix-socket", ClientIP(req))
}

func TestAccessLog(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewLogger(slog.LevelDebug, &buf)

	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestID(r.Context())
		w.WriteHeader(http.StatusTeapot)
	})

	t.Run("generates id", func(t *testing.T) {
		buf.Reset()
		rec := do(AccessLog(log)(next), http.MethodGet, "", nil)
		assert.Equal(t, http.StatusTeapot, rec.Code)
		id := rec.Header().Get(HeaderRequestID)
		_, err := uuid.Parse(id)
		require.NoError(t, err)
		assert.Equal(t, id, seen)
		assert.Contains(t, buf.String(), "request_id="+id)
		assert.Contains(t, buf.String(), "status=418")
		assert.Contains(t, buf.String(), "path=/api/weather")
	})

	t.Run("keeps incoming id", func(t *testing.T) {
		buf.Reset()
		rec := do(AccessLog(log)(next), http.MethodGet, "", map[string]string{HeaderRequestID: "abc-123"})
		assert.Equal(t, "abc-123", rec.Header().Get(HeaderRequestID))
		assert.Equal(t, "abc-123", seen)
	})

	t.Run("implicit 200", func(t *testing.T) {
		buf.Reset()
		rec := do(AccessLog(log)(okHandler), http.MethodGet, "", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, buf.String(), "status=200")
		assert.Contains(t, buf.String(), "bytes=2")
	})
}
