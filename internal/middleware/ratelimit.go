package middleware

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/junelabs/june/internal/ratelimit"
)

// Rejection messages distinguish the general API limiter from the tighter
// AI limiter; clients should know which budget they exhausted.
const (
	generalLimitMessage = "Too many requests from this IP, please try again later."
	aiLimitMessage      = "Too many AI requests, please slow down."
)

// RateLimitConfig holds configuration for rate limiting middleware.
type RateLimitConfig struct {
	Logger  *slog.Logger
	Enabled bool
	// General caps all API traffic; AI caps chat requests specifically.
	General *ratelimit.Limiter
	AI      *ratelimit.Limiter
}

// RateLimitGeneral returns middleware enforcing the general API window
// per client IP.
func RateLimitGeneral(cfg RateLimitConfig) func(http.Handler) http.Handler {
	return rateLimit(cfg, cfg.General, "api", generalLimitMessage)
}

// RateLimitAI returns middleware enforcing the tighter AI window per
// client IP. Applied only to the chat endpoint, after the general limiter.
func RateLimitAI(cfg RateLimitConfig) func(http.Handler) http.Handler {
	return rateLimit(cfg, cfg.AI, "ai", aiLimitMessage)
}

func rateLimit(cfg RateLimitConfig, limiter *ratelimit.Limiter, kind, message string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !cfg.Enabled {
				next.ServeHTTP(w, r)
				return
			}

			ip := getClientIP(r)
			result := limiter.Allow(ip)

			setRateLimitHeaders(w, limiter.Limit(), result)

			if !result.Allowed {
				cfg.Logger.Warn("rate limit exceeded",
					slog.String("type", kind),
					slog.String("ip", ip),
					slog.String("endpoint", r.Method+" "+r.URL.Path),
					slog.Int64("retry_after_seconds", int64(result.RetryAfter.Seconds())),
					slog.String("request_id", GetRequestID(r.Context())),
				)

				w.Header().Set("Retry-After", strconv.Itoa(int(result.RetryAfter.Seconds())))
				writeError(w, http.StatusTooManyRequests, message)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// setRateLimitHeaders sets standard rate limit response headers.
func setRateLimitHeaders(w http.ResponseWriter, limit int, result ratelimit.Result) {
	w.Header().Set("X-RateLimit-Limit", strconv.Itoa(limit))
	w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(result.Remaining, 10))
	w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))
}

// getClientIP extracts the client IP from the request.
// Checks X-Forwarded-For and X-Real-IP headers for proxied requests.
func getClientIP(r *http.Request) string {
	// Check X-Forwarded-For first (may contain multiple IPs)
	xff := r.Header.Get("X-Forwarded-For")
	if xff != "" {
		// Take the first IP (client IP)
		for i := range xff {
			if xff[i] == ',' {
				return xff[:i]
			}
		}
		return xff
	}

	// Check X-Real-IP
	xri := r.Header.Get("X-Real-IP")
	if xri != "" {
		return xri
	}

	// Fall back to RemoteAddr
	return r.RemoteAddr
}
