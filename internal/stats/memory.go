package stats

import (
	"context"
	"maps"
	"sync"
)

// MemoryRecorder keeps counters in process memory. Nothing expires.
type MemoryRecorder struct {
	mu        sync.Mutex
	total     Counters
	byGateway map[string]Counters
	byKey     map[string]Counters
	trackKeys bool
}

// MemoryOption configures a MemoryRecorder.
type MemoryOption func(*MemoryRecorder)

// WithMemoryTrackKeys enables per-key counters.
func WithMemoryTrackKeys(track bool) MemoryOption {
	return func(m *MemoryRecorder) { m.trackKeys = track }
}

func NewMemoryRecorder(opts ...MemoryOption) *MemoryRecorder {
	m := &MemoryRecorder{
		byGateway: make(map[string]Counters),
		byKey:     make(map[string]Counters),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *MemoryRecorder) Record(_ context.Context, ev Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.total.add(ev.Allowed)

	if ev.Gateway != "" {
		c := m.byGateway[ev.Gateway]
		c.add(ev.Allowed)
		m.byGateway[ev.Gateway] = c
	}

	if m.trackKeys && ev.Key != "" {
		c := m.byKey[ev.Key]
		c.add(ev.Allowed)
		m.byKey[ev.Key] = c
	}
	return nil
}

// Total returns the cumulative counters. It never fails.
func (m *MemoryRecorder) Total(context.Context) (Counters, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.total, nil
}

func (m *MemoryRecorder) ByGateway() map[string]Counters {
	m.mu.Lock()
	defer m.mu.Unlock()
	return maps.Clone(m.byGateway)
}

func (m *MemoryRecorder) ByKey() map[string]Counters {
	m.mu.Lock()
	defer m.mu.Unlock()
	return maps.Clone(m.byKey)
}
