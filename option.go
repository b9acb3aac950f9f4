package funnel

import (
	"github.com/viant/funnel/internal/fifo"
	"github.com/viant/funnel/progress"
	"github.com/viant/funnel/service/executor"
)

// Option customises a Service during construction.
type Option func(s *Service)

// WithExecutor sets the scheduling capability used to run tasks. The
// default schedules every task on its own goroutine.
func WithExecutor(service executor.Service) Option {
	return func(s *Service) {
		if service != nil {
			s.executor = service
		}
	}
}

// WithQueueCapacity pre-sizes the pending backlog.
func WithQueueCapacity(capacity int) Option {
	return func(s *Service) {
		if capacity > 0 {
			s.backlog = fifo.New[entry](capacity)
		}
	}
}

// WithProgressListener registers a callback invoked after every counter
// update with a snapshot of the aggregated dispatch counters.
func WithProgressListener(listener func(progress.Tracker)) Option {
	return func(s *Service) {
		s.stats.OnChange(listener)
	}
}
