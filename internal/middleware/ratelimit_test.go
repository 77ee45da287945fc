package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/junelabs/june/internal/ratelimit"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRateLimitAI_DeniesOverLimit(t *testing.T) {
	cfg := RateLimitConfig{
		Logger:  testLogger(),
		Enabled: true,
		General: ratelimit.New(100, 15*time.Minute),
		AI:      ratelimit.New(20, time.Minute),
	}
	handler := RateLimitAI(cfg)(okHandler())

	for i := 0; i < 20; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/ai/chat", nil)
		req.RemoteAddr = "1.2.3.4:1234"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d should pass, got %d", i+1, rec.Code)
		}
	}

	// The 21st call within the window is rejected with the AI message.
	req := httptest.NewRequest(http.MethodPost, "/api/ai/chat", nil)
	req.RemoteAddr = "1.2.3.4:1234"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected status 429, got %d", rec.Code)
	}

	var response map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if response["error"] != "Too many AI requests, please slow down." {
		t.Errorf("unexpected error message: %s", response["error"])
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Error("expected Retry-After header on 429")
	}
}

func TestRateLimitGeneral_DeniesOverLimit(t *testing.T) {
	cfg := RateLimitConfig{
		Logger:  testLogger(),
		Enabled: true,
		General: ratelimit.New(100, 15*time.Minute),
		AI:      ratelimit.New(20, time.Minute),
	}
	handler := RateLimitGeneral(cfg)(okHandler())

	for i := 0; i < 100; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
		req.RemoteAddr = "1.2.3.4:1234"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d should pass, got %d", i+1, rec.Code)
		}
	}

	// The 101st call within the window is rejected with the general message.
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.RemoteAddr = "1.2.3.4:1234"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected status 429, got %d", rec.Code)
	}

	var response map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if response["error"] != "Too many requests from this IP, please try again later." {
		t.Errorf("unexpected error message: %s", response["error"])
	}
}

func TestRateLimit_PerClientAddress(t *testing.T) {
	cfg := RateLimitConfig{
		Logger:  testLogger(),
		Enabled: true,
		AI:      ratelimit.New(1, time.Minute),
	}
	handler := RateLimitAI(cfg)(okHandler())

	req := httptest.NewRequest(http.MethodPost, "/api/ai/chat", nil)
	req.RemoteAddr = "1.2.3.4:1234"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("first client should pass, got %d", rec.Code)
	}

	// A different client address has its own window.
	req = httptest.NewRequest(http.MethodPost, "/api/ai/chat", nil)
	req.RemoteAddr = "5.6.7.8:1234"
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("second client should pass, got %d", rec.Code)
	}
}

func TestRateLimit_ForwardedForTakesPrecedence(t *testing.T) {
	cfg := RateLimitConfig{
		Logger:  testLogger(),
		Enabled: true,
		AI:      ratelimit.New(1, time.Minute),
	}
	handler := RateLimitAI(cfg)(okHandler())

	req := httptest.NewRequest(http.MethodPost, "/api/ai/chat", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	req = httptest.NewRequest(http.MethodPost, "/api/ai/chat", nil)
	req.RemoteAddr = "10.0.0.2:5678"
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.2")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("same forwarded client should share a window, got %d", rec.Code)
	}
}

func TestRateLimit_Disabled(t *testing.T) {
	cfg := RateLimitConfig{
		Logger:  testLogger(),
		Enabled: false,
		AI:      ratelimit.New(1, time.Minute),
	}
	handler := RateLimitAI(cfg)(okHandler())

	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/ai/chat", nil)
		req.RemoteAddr = "1.2.3.4:1234"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Errorf("disabled limiter should pass all requests, got %d", rec.Code)
		}
	}
}
