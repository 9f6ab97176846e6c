// Package workers runs fire-and-forget tasks on a fixed set of goroutines.
package workers

import (
	"log/slog"
	"sync"
)

// Task is a unit of work executed by the pool.
type Task = func()

// Pool is a bounded worker pool. Tasks submitted while the queue is full
// are dropped.
type Pool struct {
	tasks  chan Task
	wg     sync.WaitGroup
	mu     sync.RWMutex
	closed bool
	logger *slog.Logger
}

// NewPool starts numWorkers goroutines reading from a queue of queueSize.
func NewPool(numWorkers, queueSize int, logger *slog.Logger) *Pool {
	if numWorkers < 1 {
		numWorkers = 1
	}
	if queueSize < 0 {
		queueSize = 0
	}
	if logger == nil {
		logger = slog.Default()
	}

	p := &Pool{
		tasks:  make(chan Task, queueSize),
		logger: logger,
	}
	p.wg.Add(numWorkers)
	for range numWorkers {
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for task := range p.tasks {
		p.run(task)
	}
}

func (p *Pool) run(task Task) {
	defer func() {
		if rec := recover(); rec != nil {
			p.logger.Error("worker task panicked", "panic", rec)
		}
	}()
	task()
}

// Submit queues a task. It reports false when the pool is full or stopped.
func (p *Pool) Submit(task Task) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		p.logger.Warn("worker pool stopped, task dropped")
		return false
	}

	select {
	case p.tasks <- task:
		return true
	default:
		p.logger.Warn("worker pool full, task dropped", "queue_size", cap(p.tasks))
		return false
	}
}

// Wait stops accepting tasks and blocks until queued tasks have run.
func (p *Pool) Wait() {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.tasks)
	}
	p.mu.Unlock()

	p.wg.Wait()
}
