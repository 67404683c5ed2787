package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestRateLimitMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(RequestID())
	router.Use(RateLimit(5, time.Minute))
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})

	for i := 0; i < 5; i++ {
		req := httptest.NewRequest("GET", "/test", nil)
		req.RemoteAddr = "192.168.1.1:12345"
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Request %d: Expected status 200, got %d", i+1, w.Code)
		}
	}

	req := httptest.NewRequest("GET", "/test", nil)
	req.RemoteAddr = "192.168.1.1:12345"
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusTooManyRequests {
		t.Errorf("Expected status 429, got %d", w.Code)
	}
}

func TestRateLimitDifferentIPs(t *testing.T) {
	router := gin.New()
	router.Use(RateLimit(2, time.Minute))
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest("GET", "/test", nil)
		req.RemoteAddr = "10.0.0.1:1000"
		router.ServeHTTP(httptest.NewRecorder(), req)
	}

	req := httptest.NewRequest("GET", "/test", nil)
	req.RemoteAddr = "10.0.0.2:1000"
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Different IP should not be rate limited, got %d", w.Code)
	}
}

func TestRateLimiterRefills(t *testing.T) {
	limiter := NewRateLimiter(2, 100*time.Millisecond)

	if !limiter.Allow("a") || !limiter.Allow("a") {
		t.Fatal("Expected the burst to be allowed")
	}
	if limiter.Allow("a") {
		t.Error("Expected the third request to be refused")
	}

	time.Sleep(120 * time.Millisecond)
	if !limiter.Allow("a") {
		t.Error("Expected a token after the window passed")
	}
}

func TestRateLimiterDropsIdleClients(t *testing.T) {
	limiter := NewRateLimiter(1, 20*time.Millisecond)
	limiter.Allow("idle")

	time.Sleep(50 * time.Millisecond)
	limiter.Allow("active")

	limiter.mu.Lock()
	defer limiter.mu.Unlock()
	if _, ok := limiter.clients["idle"]; ok {
		t.Error("Expected the idle client to be dropped")
	}
	if _, ok := limiter.clients["active"]; !ok {
		t.Error("Expected the active client to be tracked")
	}
}

func TestNewRateLimiter(t *testing.T) {
	limiter := NewRateLimiter(100, time.Minute)

	if limiter.burst != 100 {
		t.Errorf("Expected burst 100, got %d", limiter.burst)
	}
	if limiter.window != time.Minute {
		t.Errorf("Expected window 1 minute, got %v", limiter.window)
	}

	if NewRateLimiter(0, time.Minute).burst != 1 {
		t.Error("Expected a non-positive allowance to be raised to 1")
	}
}
