package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// Limiter decides whether a request from the given key may proceed.
type Limiter interface {
	Allow(key string) bool
}

// FixedWindowLimiter allows up to maxRequests per key within each fixed
// window. Cheap, but bursts at a window boundary can briefly see up to
// 2×maxRequests.
type FixedWindowLimiter struct {
	maxRequests int
	window      time.Duration

	mu      sync.Mutex
	windows map[string]*windowData
	now     func() time.Time
}

type windowData struct {
	windowID int64
	count    int
}

func NewFixedWindowLimiter(maxRequests int, window time.Duration) *FixedWindowLimiter {
	return &FixedWindowLimiter{
		maxRequests: maxRequests,
		window:      window,
		windows:     make(map[string]*windowData),
		now:         time.Now,
	}
}

func (l *FixedWindowLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	currentWindow := l.now().UnixNano() / int64(l.window)
	data, ok := l.windows[key]
	if !ok || data.windowID != currentWindow {
		l.windows[key] = &windowData{windowID: currentWindow, count: 1}
		return true
	}
	if data.count < l.maxRequests {
		data.count++
		return true
	}
	return false
}

// SlidingWindowLimiter keeps a timestamp log per key and allows a request
// only when fewer than maxRequests fall inside the trailing window. Exact,
// at the cost of storing one timestamp per allowed request.
type SlidingWindowLimiter struct {
	maxRequests int
	window      time.Duration

	mu   sync.Mutex
	logs map[string][]time.Time
	now  func() time.Time
}

func NewSlidingWindowLimiter(maxRequests int, window time.Duration) *SlidingWindowLimiter {
	return &SlidingWindowLimiter{
		maxRequests: maxRequests,
		window:      window,
		logs:        make(map[string][]time.Time),
		now:         time.Now,
	}
}

func (l *SlidingWindowLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	windowStart := now.Add(-l.window)

	log := l.logs[key]
	kept := log[:0]
	for _, ts := range log {
		if ts.After(windowStart) {
			kept = append(kept, ts)
		}
	}

	if len(kept) >= l.maxRequests {
		l.logs[key] = kept
		return false
	}
	l.logs[key] = append(kept, now)
	return true
}

// RateLimitMiddleware rejects requests over the limit with 429, keyed by
// client IP.
func RateLimitMiddleware(limiter Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow(c.ClientIP()) {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"message": "Rate limit exceeded",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
