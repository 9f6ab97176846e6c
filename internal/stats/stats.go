package stats

import (
	"context"
	"time"
)

// Event is a single rate limiter decision.
type Event struct {
	Key     string
	Allowed bool
	Gateway string
	At      time.Time
}

// Recorder persists rate limiter decisions.
type Recorder interface {
	Record(ctx context.Context, ev Event) error
}

// Reader exposes cumulative counters.
type Reader interface {
	Total(ctx context.Context) (Counters, error)
}

// Counters holds allowed and denied totals.
type Counters struct {
	Allowed int64 `json:"allowed"`
	Denied  int64 `json:"denied"`
}

func (c *Counters) add(allowed bool) {
	if allowed {
		c.Allowed++
		return
	}
	c.Denied++
}

func outcome(allowed bool) string {
	if allowed {
		return "allowed"
	}
	return "denied"
}
