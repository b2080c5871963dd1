package middleware

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"

	"quickcal/pkg/response"
)

const quotaMessage = "Daily limit reached. Try again tomorrow."

// RateLimit enforces the per-identity daily quota plus a short-term burst
// limiter. It must run after Auth.
func (m Middleware) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		sc := ScopeFromContext(c)
		identity := sc.UserID
		if identity == "" {
			identity = c.ClientIP()
		}

		if !m.burst.Allow(identity) {
			response.TooManyRequests(c, "Too many requests. Slow down.")
			c.Abort()
			return
		}

		if !m.quota.Allow(identity, time.Now()) {
			m.l.Infof(c.Request.Context(), "middleware.RateLimit: daily quota exhausted for %s", identity)
			response.TooManyRequests(c, quotaMessage)
			c.Abort()
			return
		}

		c.Next()
	}
}

type quotaEntry struct {
	day  string
	used int
}

// dailyQuota counts requests per (identity, calendar day). The day rolls over
// lazily on first use after midnight; stale identities age out of the LRU.
type dailyQuota struct {
	mu      sync.Mutex
	limit   int
	entries *expirable.LRU[string, *quotaEntry]
}

func newDailyQuota(limit int) *dailyQuota {
	return &dailyQuota{
		limit:   limit,
		entries: expirable.NewLRU[string, *quotaEntry](10000, nil, 48*time.Hour),
	}
}

// Allow performs a check-and-increment under one lock so concurrent requests
// can never push an identity past its allowance.
func (q *dailyQuota) Allow(identity string, now time.Time) bool {
	day := now.Format("2006-01-02")

	q.mu.Lock()
	defer q.mu.Unlock()

	entry, ok := q.entries.Get(identity)
	if !ok || entry.day != day {
		entry = &quotaEntry{day: day}
		q.entries.Add(identity, entry)
	}
	if entry.used >= q.limit {
		return false
	}
	entry.used++
	return true
}

// burstLimiter smooths spikes within the daily allowance.
type burstLimiter struct {
	mu       sync.Mutex
	limiters *expirable.LRU[string, *rate.Limiter]
	rate     rate.Limit
	burst    int
}

func newBurstLimiter(requestsPerMin int) *burstLimiter {
	burst := requestsPerMin / 10
	if burst < 1 {
		burst = 1
	}
	return &burstLimiter{
		limiters: expirable.NewLRU[string, *rate.Limiter](1000, nil, 5*time.Minute),
		rate:     rate.Limit(float64(requestsPerMin) / 60.0),
		burst:    burst,
	}
}

func (bl *burstLimiter) Allow(key string) bool {
	// Get-or-create under the lock so concurrent first requests share one
	// limiter. Allow itself is already safe for concurrent use.
	bl.mu.Lock()
	limiter, ok := bl.limiters.Get(key)
	if !ok {
		limiter = rate.NewLimiter(bl.rate, bl.burst)
		bl.limiters.Add(key, limiter)
	}
	bl.mu.Unlock()

	return limiter.Allow()
}
