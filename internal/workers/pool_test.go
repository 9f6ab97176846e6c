package workers

import (
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestPool_RunsSubmittedTasks(t *testing.T) {
	p := NewPool(4, 100, discardLogger())

	var count int32
	for range 50 {
		assert.True(t, p.Submit(func() { atomic.AddInt32(&count, 1) }))
	}
	p.Wait()

	assert.Equal(t, int32(50), atomic.LoadInt32(&count))
}

func TestPool_DropsWhenFull(t *testing.T) {
	p := NewPool(1, 1, discardLogger())

	started := make(chan struct{})
	release := make(chan struct{})
	assert.True(t, p.Submit(func() {
		close(started)
		<-release
	}))
	<-started

	assert.True(t, p.Submit(func() {}), "queue has room for one task")
	assert.False(t, p.Submit(func() {}), "queue is full")

	close(release)
	p.Wait()
}

func TestPool_SubmitAfterWait(t *testing.T) {
	p := NewPool(1, 1, discardLogger())
	p.Wait()

	assert.False(t, p.Submit(func() {}))
	assert.NotPanics(t, p.Wait)
}

func TestPool_RecoversFromPanickingTask(t *testing.T) {
	p := NewPool(1, 10, discardLogger())

	var wg sync.WaitGroup
	wg.Add(1)
	p.Submit(func() { panic("boom") })
	p.Submit(wg.Done)

	wg.Wait()
	p.Wait()
}

func TestNewPool_NormalizesArguments(t *testing.T) {
	p := NewPool(0, -1, nil)
	assert.Equal(t, 0, cap(p.tasks))
	p.Wait()
}
