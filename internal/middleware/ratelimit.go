package middleware

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/BigFrankV/proyecto-cuentas-claras-sub008/internal/model"
	"github.com/BigFrankV/proyecto-cuentas-claras-sub008/internal/stats"
)

// PaymentAttemptLimiter is a fixed-window limiter over payment attempts.
// Each key keeps the timestamps of its accepted attempts inside the window;
// rejected attempts are not recorded.
//
// Keys that go idle are dropped by a sweep that runs with probability
// sweepChance on every Allow call, and by Sweep for callers that prefer a
// periodic job.
type PaymentAttemptLimiter struct {
	mu          sync.Mutex
	attempts    map[string][]time.Time
	window      time.Duration
	maxAttempts int
	sweepChance float64
	now         func() time.Time
	rand        func() float64
}

// PaymentLimiterConfig holds payment attempt limiter configuration
type PaymentLimiterConfig struct {
	Window      time.Duration // default 15 minutes
	MaxAttempts int           // default 5
	SweepChance float64       // default 0.01
	Now         func() time.Time
	Rand        func() float64 // uniform in [0, 1)
}

// Decision is the outcome of a single Allow call.
type Decision struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration
}

// NewPaymentAttemptLimiter creates a new limiter
func NewPaymentAttemptLimiter(cfg PaymentLimiterConfig) *PaymentAttemptLimiter {
	if cfg.Window <= 0 {
		cfg.Window = 15 * time.Minute
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 5
	}
	if cfg.SweepChance == 0 {
		cfg.SweepChance = 0.01
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Rand == nil {
		cfg.Rand = rand.Float64
	}

	return &PaymentAttemptLimiter{
		attempts:    make(map[string][]time.Time),
		window:      cfg.Window,
		maxAttempts: cfg.MaxAttempts,
		sweepChance: cfg.SweepChance,
		now:         cfg.Now,
		rand:        cfg.Rand,
	}
}

// Allow records an attempt for key unless the key already used up its
// window.
func (l *PaymentAttemptLimiter) Allow(key string) Decision {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	recent := l.recent(l.attempts[key], now)

	var d Decision
	if len(recent) >= l.maxAttempts {
		l.attempts[key] = recent
		d = Decision{RetryAfter: l.window}
	} else {
		l.attempts[key] = append(recent, now)
		d = Decision{Allowed: true, Remaining: l.maxAttempts - len(recent) - 1}
	}

	if l.rand() < l.sweepChance {
		l.sweepLocked(now)
	}
	return d
}

// Sweep drops expired timestamps from every key and deletes keys left
// empty. It returns the number of deleted keys.
func (l *PaymentAttemptLimiter) Sweep() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.sweepLocked(l.now())
}

// Len returns the number of tracked keys.
func (l *PaymentAttemptLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.attempts)
}

// MaxAttempts returns the per-window limit.
func (l *PaymentAttemptLimiter) MaxAttempts() int {
	return l.maxAttempts
}

func (l *PaymentAttemptLimiter) sweepLocked(now time.Time) int {
	removed := 0
	for key, ts := range l.attempts {
		recent := l.recent(ts, now)
		if len(recent) == 0 {
			delete(l.attempts, key)
			removed++
			continue
		}
		l.attempts[key] = recent
	}
	return removed
}

// recent filters ts in place, keeping timestamps younger than the window.
func (l *PaymentAttemptLimiter) recent(ts []time.Time, now time.Time) []time.Time {
	kept := ts[:0]
	for _, t := range ts {
		if now.Sub(t) < l.window {
			kept = append(kept, t)
		}
	}
	return kept
}

// AttemptKey identifies the caller of r as "clientIP:userID", with
// "anonymous" standing in for requests without a user.
func AttemptKey(r *http.Request) string {
	userID := GetUserID(r.Context())
	if userID == "" {
		userID = "anonymous"
	}
	return GetClientIP(r) + ":" + userID
}

// PaymentRateLimit returns a middleware that applies the payment attempt
// limiter. Decisions are also sent to recorder when it is not nil.
func PaymentRateLimit(limiter *PaymentAttemptLimiter, recorder stats.Recorder) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := AttemptKey(r)
			d := limiter.Allow(key)

			if recorder != nil {
				recordAttempt(r.Context(), recorder, stats.Event{
					Key:     key,
					Allowed: d.Allowed,
					Gateway: r.PathValue("gateway"),
					At:      limiter.now(),
				})
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(limiter.maxAttempts))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(d.Remaining))

			if !d.Allowed {
				retrySeconds := int64((d.RetryAfter + time.Second - 1) / time.Second)
				w.Header().Set("Retry-After", strconv.FormatInt(retrySeconds, 10))

				slog.Warn("payment attempt rate limited",
					slog.String("key", key),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				model.NewRateLimitError(d.RetryAfter.Milliseconds()).WriteJSON(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func recordAttempt(ctx context.Context, recorder stats.Recorder, ev stats.Event) {
	if err := recorder.Record(ctx, ev); err != nil {
		slog.Warn("failed to record payment attempt",
			slog.String("error", err.Error()),
			slog.String("request_id", GetRequestID(ctx)),
		)
	}
}
