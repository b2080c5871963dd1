package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"quickcal/config"
	"quickcal/pkg/scope"
)

type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Debugf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Info(ctx context.Context, arg ...any)                     {}
func (m *mockLogger) Infof(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) Warn(ctx context.Context, arg ...any)                     {}
func (m *mockLogger) Warnf(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) Error(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Errorf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Fatal(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Fatalf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) DPanic(ctx context.Context, arg ...any)                   {}
func (m *mockLogger) DPanicf(ctx context.Context, template string, arg ...any) {}
func (m *mockLogger) Panic(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Panicf(ctx context.Context, template string, arg ...any)  {}

func newTestMiddleware(secret string) Middleware {
	return New(&mockLogger{}, scope.NewJWTManager(secret), config.RateLimitConfig{
		DailyLimit:  5,
		BurstPerMin: 600,
	})
}

func TestAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mw := newTestMiddleware("test-secret")

	router := gin.New()
	router.GET("/protected", mw.Auth(), func(c *gin.Context) {
		sc := ScopeFromContext(c)
		c.String(http.StatusOK, sc.UserID)
	})

	t.Run("missing header", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		router.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", w.Code)
		}
	})

	t.Run("garbage token", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer nope")
		router.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", w.Code)
		}
	})

	t.Run("wrong secret", func(t *testing.T) {
		token, err := scope.NewJWTManager("other-secret").Generate("user-1", time.Hour)
		if err != nil {
			t.Fatal(err)
		}
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		router.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", w.Code)
		}
	})

	t.Run("valid token", func(t *testing.T) {
		token, err := scope.NewJWTManager("test-secret").Generate("user-1", time.Hour)
		if err != nil {
			t.Fatal(err)
		}
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		router.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		if w.Body.String() != "user-1" {
			t.Errorf("scope should carry the token subject, got %q", w.Body.String())
		}
	})
}

func TestRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mw := newTestMiddleware("test-secret")

	token, err := scope.NewJWTManager("test-secret").Generate("user-1", time.Hour)
	if err != nil {
		t.Fatal(err)
	}

	router := gin.New()
	router.POST("/parse", mw.Auth(), mw.RateLimit(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	do := func() int {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/parse", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		router.ServeHTTP(w, req)
		return w.Code
	}

	for i := 0; i < 5; i++ {
		if code := do(); code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i+1, code)
		}
	}
	if code := do(); code != http.StatusTooManyRequests {
		t.Fatalf("sixth request should hit the daily quota, got %d", code)
	}
}

func TestDailyQuota_Rollover(t *testing.T) {
	q := newDailyQuota(2)
	day1 := time.Date(2026, 3, 10, 23, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 3, 11, 0, 5, 0, 0, time.UTC)

	if !q.Allow("u", day1) || !q.Allow("u", day1) {
		t.Fatal("allowance should cover two requests")
	}
	if q.Allow("u", day1) {
		t.Fatal("third request on the same day should be rejected")
	}
	if !q.Allow("u", day2) {
		t.Fatal("allowance should reset after midnight")
	}
}

func TestDailyQuota_Concurrent(t *testing.T) {
	const limit = 5
	q := newDailyQuota(limit)
	now := time.Now()

	var allowed atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if q.Allow("u", now) {
				allowed.Add(1)
			}
		}()
	}
	wg.Wait()

	if allowed.Load() != limit {
		t.Fatalf("expected exactly %d allowed, got %d", limit, allowed.Load())
	}
}

func TestBurstLimiter_Concurrent(t *testing.T) {
	bl := newBurstLimiter(10) // burst of 1

	var allowed atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if bl.Allow("u") {
				allowed.Add(1)
			}
		}()
	}
	wg.Wait()

	// First requests must share one limiter, so only the burst gets through.
	if allowed.Load() != 1 {
		t.Fatalf("expected exactly 1 allowed, got %d", allowed.Load())
	}
}

func TestDailyQuota_PerIdentity(t *testing.T) {
	q := newDailyQuota(1)
	now := time.Now()

	if !q.Allow("a", now) {
		t.Fatal("first identity should be allowed")
	}
	if !q.Allow("b", now) {
		t.Fatal("identities must not share a counter")
	}
	if q.Allow("a", now) {
		t.Fatal("first identity should be exhausted")
	}
}
