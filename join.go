package funnel

import (
	"time"

	"github.com/viant/funnel/internal/clock"
)

// CountRunning returns the number of currently executing tasks. It excludes
// queued and finished tasks.
func (s *Service) CountRunning() int {
	return int(s.running.Load())
}

// CountPending returns the number of queued, not yet started tasks.
func (s *Service) CountPending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.backlog.Len()
}

// Join blocks the calling goroutine until no task is running. It returns
// immediately when the dispatcher is already idle. The predicate is
// re-checked on every wake to tolerate spurious wakes and multiple waiters.
func (s *Service) Join() {
	s.idleMu.Lock()
	defer s.idleMu.Unlock()
	for s.running.Load() != 0 {
		s.idleCond.Wait()
	}
}

// JoinWithTimeout blocks at most timeout and reports whether the running
// count was zero by the time it returned. The timeout bounds only the wait;
// tasks keep running regardless.
func (s *Service) JoinWithTimeout(timeout time.Duration) bool {
	deadline := clock.Now().Add(timeout)
	s.idleMu.Lock()
	defer s.idleMu.Unlock()
	for s.running.Load() != 0 {
		remaining := deadline.Sub(clock.Now())
		if remaining <= 0 {
			break
		}
		timer := time.AfterFunc(remaining, s.signalIdle)
		s.idleCond.Wait()
		timer.Stop()
	}
	return s.running.Load() == 0
}

func (s *Service) signalIdle() {
	s.idleMu.Lock()
	s.idleCond.Broadcast()
	s.idleMu.Unlock()
}
