package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestMemoryLimiterFixedWindow(t *testing.T) {
	limiter := NewMemoryLimiter()
	for i := 0; i < 3; i++ {
		if !limiter.Allow("key", 3, time.Minute) {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if limiter.Allow("key", 3, time.Minute) {
		t.Fatal("fourth request should be denied")
	}
	// Other keys are counted independently.
	if !limiter.Allow("other", 3, time.Minute) {
		t.Fatal("unrelated key should be allowed")
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	limiter := NewMemoryLimiter()
	limited := RateLimit(limiter, func(r *http.Request) string {
		return "ip:" + ClientIP(r)
	}, 2, time.Minute)

	handler := limited(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
		if rec.Result().StatusCode != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i+1, rec.Result().StatusCode)
		}
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	if rec.Result().StatusCode != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Result().StatusCode)
	}
}

func TestRateLimitMiddlewarePassthrough(t *testing.T) {
	// A nil limiter or an empty key disables the check instead of blocking.
	limited := RateLimit(nil, ClientIP, 1, time.Minute)
	handler := limited(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
		if rec.Result().StatusCode != http.StatusOK {
			t.Fatalf("expected 200 with nil limiter, got %d", rec.Result().StatusCode)
		}
	}
}

func TestLimiterKeyNamespaced(t *testing.T) {
	if got := limiterKey("login:1.2.3.4"); got != "campushire:rl:login:1.2.3.4" {
		t.Fatalf("limiterKey = %q, want namespaced key", got)
	}
}

func TestRedisLimiterFailsOpenWithoutClient(t *testing.T) {
	var l *RedisLimiter
	if !l.Allow("login:1.2.3.4", 1, time.Minute) {
		t.Fatal("nil limiter must not block requests")
	}
	if !NewRedisLimiter(nil).Allow("login:1.2.3.4", 1, time.Minute) {
		t.Fatal("limiter without a client must not block requests")
	}
}
