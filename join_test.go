package funnel_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/viant/funnel"
)

func TestJoinIdleReturnsImmediately(t *testing.T) {
	svc := funnel.New(4)
	done := make(chan struct{})
	go func() {
		svc.Join()
		close(done)
	}()
	waitClosed(t, done, "join on idle dispatcher")
	assert.True(t, svc.JoinWithTimeout(0))
}

func TestJoinWithTimeoutExpires(t *testing.T) {
	release := make(chan struct{})
	svc := funnel.New(1)
	svc.Submit(func() error { <-release; return nil }, nil)

	start := time.Now()
	assert.False(t, svc.JoinWithTimeout(30*time.Millisecond))
	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
	assert.Equal(t, 1, svc.CountRunning())

	close(release)
	assert.True(t, svc.JoinWithTimeout(5*time.Second))
	assert.Equal(t, 0, svc.CountRunning())
}

func TestJoinReleasesMultipleWaiters(t *testing.T) {
	release := make(chan struct{})
	svc := funnel.New(2)
	for i := 0; i < 3; i++ {
		svc.Submit(func() error { <-release; return nil }, i)
	}

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			svc.Join()
			assert.Equal(t, 0, svc.CountRunning())
		}()
	}

	close(release)
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	waitClosed(t, done, "all joiners")
}

func TestJoinWaitsForBacklog(t *testing.T) {
	release := make(chan struct{})
	var items int32
	var mu sync.Mutex

	svc := funnel.New(1)
	svc.OnItemComplete(func(interface{}, funnel.Outcome) {
		mu.Lock()
		items++
		mu.Unlock()
	})
	for i := 0; i < 4; i++ {
		svc.Submit(func() error { <-release; return nil }, i)
	}
	assert.Equal(t, 3, svc.CountPending())

	close(release)
	// Join must not return while queued tasks remain to be drained.
	svc.Join()
	assert.Equal(t, 0, svc.CountPending())
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, int32(4), items)
}

func TestJoinAcrossEpisodes(t *testing.T) {
	svc := funnel.New(2)

	first := make(chan struct{})
	svc.Submit(func() error { <-first; return nil }, nil)
	close(first)
	svc.Join()
	assert.Equal(t, 0, svc.CountRunning())

	second := make(chan struct{})
	svc.Submit(func() error { <-second; return nil }, nil)
	assert.Equal(t, 1, svc.CountRunning())
	close(second)
	svc.Join()
	assert.Equal(t, 0, svc.CountRunning())
}
