// Package ratelimit implements in-process fixed-window rate limiting.
//
// Counters live in memory and are lost on restart. This is advisory abuse
// protection, not accounting: approximate accuracy under concurrency is
// acceptable, so a single mutex around the counter map is enough.
package ratelimit

import (
	"sync"
	"time"
)

// Result contains the outcome of a rate limit check.
type Result struct {
	Allowed    bool
	Remaining  int64
	ResetAt    time.Time
	RetryAfter time.Duration
}

type window struct {
	count   int
	resetAt time.Time
}

// Limiter caps requests per key to a fixed count within a recurring window.
// The window resets on expiry; it does not slide.
type Limiter struct {
	mu      sync.Mutex
	limit   int
	period  time.Duration
	windows map[string]*window
	now     func() time.Time
}

// New creates a Limiter allowing limit requests per period for each key.
func New(limit int, period time.Duration) *Limiter {
	return &Limiter{
		limit:   limit,
		period:  period,
		windows: make(map[string]*window),
		now:     time.Now,
	}
}

// Allow records a request for key and reports whether it is within the
// current window's budget.
func (l *Limiter) Allow(key string) Result {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()

	w, ok := l.windows[key]
	if !ok || !now.Before(w.resetAt) {
		// Stale entries for other keys are reaped opportunistically to keep
		// the map bounded by the set of recently active clients.
		if len(l.windows) > 1024 {
			l.reapLocked(now)
		}
		w = &window{resetAt: now.Add(l.period)}
		l.windows[key] = w
	}

	w.count++

	remaining := int64(l.limit - w.count)
	if remaining < 0 {
		remaining = 0
	}

	res := Result{
		Allowed:   w.count <= l.limit,
		Remaining: remaining,
		ResetAt:   w.resetAt,
	}
	if !res.Allowed {
		res.RetryAfter = w.resetAt.Sub(now)
	}
	return res
}

// Limit returns the configured per-window request budget.
func (l *Limiter) Limit() int {
	return l.limit
}

// reapLocked removes expired windows. Caller must hold l.mu.
func (l *Limiter) reapLocked(now time.Time) {
	for key, w := range l.windows {
		if !now.Before(w.resetAt) {
			delete(l.windows, key)
		}
	}
}
