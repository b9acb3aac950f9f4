package executor

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPoolRunsScheduledWork(t *testing.T) {
	pool := NewPool(PoolConfig{WorkerCount: 3, InboxSize: 10})
	pool.Start(context.Background())

	var counter atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		pool.Schedule(func() {
			defer wg.Done()
			counter.Add(1)
		})
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("pool did not drain in time")
	}
	assert.Equal(t, int64(20), counter.Load())
	pool.Shutdown()
}

func TestPoolBoundsConcurrency(t *testing.T) {
	pool := NewPool(PoolConfig{WorkerCount: 2, InboxSize: 10})
	pool.Start(context.Background())
	defer pool.Shutdown()

	var active, peak atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		pool.Schedule(func() {
			defer wg.Done()
			n := active.Add(1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			time.Sleep(10 * time.Millisecond)
			active.Add(-1)
		})
	}
	wg.Wait()
	assert.LessOrEqual(t, peak.Load(), int64(2))
}

func TestPoolRecoversWorkerPanic(t *testing.T) {
	pool := NewPool(PoolConfig{WorkerCount: 1, InboxSize: 2})
	pool.Start(context.Background())
	defer pool.Shutdown()

	ran := make(chan struct{})
	pool.Schedule(func() { panic("boom") })
	pool.Schedule(func() { close(ran) })

	select {
	case <-ran:
	case <-time.After(5 * time.Second):
		t.Fatal("worker did not survive panic")
	}
}

func TestPoolShutdownIdempotent(t *testing.T) {
	pool := NewPool(DefaultPoolConfig())
	pool.Start(context.Background())
	pool.Shutdown()
	pool.Shutdown()
}

func TestInlineRunsSynchronously(t *testing.T) {
	var ran bool
	Inline{}.Schedule(func() { ran = true })
	assert.True(t, ran)
}
