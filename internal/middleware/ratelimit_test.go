package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestFixedWindowLimiter(t *testing.T) {
	now := time.Unix(1000, 0)
	limiter := NewFixedWindowLimiter(3, time.Second)
	limiter.now = func() time.Time { return now }

	for i := 1; i <= 3; i++ {
		if !limiter.Allow("user-1") {
			t.Fatalf("request %d should be allowed", i)
		}
	}
	if limiter.Allow("user-1") {
		t.Fatal("request 4 should be blocked")
	}

	// A different key has its own window.
	if !limiter.Allow("user-2") {
		t.Fatal("other key should not share the limit")
	}

	// Next window resets the count.
	now = now.Add(1100 * time.Millisecond)
	if !limiter.Allow("user-1") {
		t.Fatal("request in new window should be allowed")
	}
}

func TestSlidingWindowLimiter(t *testing.T) {
	now := time.Unix(1000, 0)
	limiter := NewSlidingWindowLimiter(3, time.Second)
	limiter.now = func() time.Time { return now }

	// Three requests spaced 200ms apart fill the window.
	for i := 1; i <= 3; i++ {
		if !limiter.Allow("user-1") {
			t.Fatalf("request %d should be allowed", i)
		}
		now = now.Add(200 * time.Millisecond)
	}
	if limiter.Allow("user-1") {
		t.Fatal("request 4 should be blocked")
	}

	// 700ms later the first timestamp has left the trailing window.
	now = now.Add(700 * time.Millisecond)
	if !limiter.Allow("user-1") {
		t.Fatal("request should be allowed after the oldest entry expires")
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	limiter := NewFixedWindowLimiter(2, time.Minute)
	r := gin.New()
	r.Use(RateLimitMiddleware(limiter))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	statuses := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/ping", nil)
		r.ServeHTTP(w, req)
		statuses = append(statuses, w.Code)
	}

	if statuses[0] != http.StatusOK || statuses[1] != http.StatusOK {
		t.Errorf("first two requests should pass, got %v", statuses)
	}
	if statuses[2] != http.StatusTooManyRequests {
		t.Errorf("third request should be rate limited, got %d", statuses[2])
	}
}
