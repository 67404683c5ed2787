package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestRecoveryMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(RequestID())
	router.Use(Recovery())
	router.GET("/panic", func(c *gin.Context) {
		panic("test panic")
	})
	router.GET("/normal", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})

	t.Run("panic recovery", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/panic", nil)
		req.Header.Set("X-Request-ID", "req-42")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if w.Code != http.StatusInternalServerError {
			t.Errorf("Expected status 500, got %d", w.Code)
		}

		var body map[string]string
		json.Unmarshal(w.Body.Bytes(), &body)
		if body["error"] != "Internal server error" {
			t.Errorf("Expected error message, got %q", body["error"])
		}
		if body["request_id"] != "req-42" {
			t.Errorf("Expected request id req-42, got %q", body["request_id"])
		}
	})

	t.Run("normal request", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/normal", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Expected status 200, got %d", w.Code)
		}
	})
}

func TestRecoveryAfterStreamStarted(t *testing.T) {
	router := gin.New()
	router.Use(Recovery())
	router.GET("/stream", func(c *gin.Context) {
		c.Header("Content-Type", "text/event-stream")
		c.Writer.WriteString("data: {}\n\n")
		panic("mid-stream")
	})

	req := httptest.NewRequest("GET", "/stream", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected the already-sent status 200, got %d", w.Code)
	}
	if w.Body.String() != "data: {}\n\n" {
		t.Errorf("Expected no JSON appended to the stream, got %q", w.Body.String())
	}
}
