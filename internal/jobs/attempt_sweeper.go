package jobs

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Sweeper drops expired entries and reports how many keys it removed.
type Sweeper interface {
	Sweep() int
}

// AttemptSweeper periodically purges stale payment attempt windows
// - Complements the probabilistic sweep done on each request
// - Keeps memory bounded when traffic is low and the random sweep rarely fires
type AttemptSweeper struct {
	limiter  Sweeper
	interval time.Duration
	logger   *slog.Logger
	stopCh   chan struct{}
	wg       sync.WaitGroup
	running  bool
	mu       sync.Mutex
}

// NewAttemptSweeper creates a new sweeper job
func NewAttemptSweeper(limiter Sweeper, interval time.Duration, logger *slog.Logger) *AttemptSweeper {
	if interval == 0 {
		interval = 5 * time.Minute
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &AttemptSweeper{
		limiter:  limiter,
		interval: interval,
		logger:   logger,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the sweeper job
func (s *AttemptSweeper) Start() {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.mu.Unlock()

	s.wg.Add(1)
	go s.run()
	s.logger.Info("payment attempt sweeper started", "interval", s.interval)
}

// Stop gracefully stops the sweeper job
func (s *AttemptSweeper) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	s.mu.Unlock()

	close(s.stopCh)
	s.wg.Wait()
	s.logger.Info("payment attempt sweeper stopped")
}

func (s *AttemptSweeper) run() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweep()
		case <-s.stopCh:
			return
		}
	}
}

func (s *AttemptSweeper) sweep() {
	if removed := s.limiter.Sweep(); removed > 0 {
		s.logger.Debug("swept payment attempt windows", "removed", removed)
	}
}

// RunOnce sweeps immediately (for testing or manual trigger)
func (s *AttemptSweeper) RunOnce(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return s.limiter.Sweep(), nil
}

// IsRunning returns whether the sweeper is running
func (s *AttemptSweeper) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}
