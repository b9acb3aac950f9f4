package funnel

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/semaphore"

	"github.com/viant/funnel/internal/clock"
	"github.com/viant/funnel/internal/fifo"
	"github.com/viant/funnel/internal/idgen"
	"github.com/viant/funnel/progress"
	"github.com/viant/funnel/service/event"
	"github.com/viant/funnel/service/executor"
	"github.com/viant/funnel/tracing"
)

// entry couples a task with its own correlation state so that a queued task
// started later still reports under the state it was submitted with.
type entry struct {
	id    string
	task  Task
	state interface{}
}

// Service dispatches submitted tasks subject to a concurrency cap. Tasks
// admitted over the cap wait in a FIFO backlog and start as running slots
// free up. The zero Service is not usable; construct via New or
// NewFromConfig.
type Service struct {
	config   *Config
	executor executor.Service

	// slots enforces the concurrency cap atomically; nil means unbounded.
	slots   *semaphore.Weighted
	running atomic.Int64

	// mu guards the backlog and the admit-or-queue / drain-or-release
	// hand-off between the submission and completion paths.
	mu      sync.Mutex
	backlog *fifo.Queue[entry]

	items event.Registry[ItemHandler]
	done  event.Registry[DoneHandler]

	// idleMu/idleCond signal the running count reaching zero; kept apart
	// from mu so joiners never hold resources the completion path needs.
	idleMu   sync.Mutex
	idleCond *sync.Cond

	stats *progress.Tracker
}

// New creates a dispatcher capped at maxConcurrent simultaneously running
// tasks. A maxConcurrent <= 0 means unbounded.
func New(maxConcurrent int, options ...Option) *Service {
	config := DefaultConfig()
	config.MaxConcurrent = maxConcurrent
	return NewFromConfig(config, options...)
}

// NewFromConfig creates a dispatcher from the supplied configuration.
func NewFromConfig(config *Config, options ...Option) *Service {
	if config == nil {
		config = DefaultConfig()
	}
	s := &Service{
		config:   config,
		executor: executor.GoExecutor{},
		backlog:  fifo.New[entry](config.QueueCapacity),
		stats:    progress.NewTracker(),
	}
	if config.MaxConcurrent > 0 {
		s.slots = semaphore.NewWeighted(int64(config.MaxConcurrent))
	}
	s.idleCond = sync.NewCond(&s.idleMu)
	for _, option := range options {
		option(s)
	}
	return s
}

// Submit hands a task to the dispatcher together with an optional opaque
// correlation state that is passed back to item handlers. The task starts
// immediately when a running slot is free, otherwise it joins the backlog.
// Submit never blocks on task execution and returns the service to allow
// chained submissions. A nil task panics with ErrNilTask.
func (s *Service) Submit(task Task, state interface{}) *Service {
	if task == nil {
		panic(ErrNilTask)
	}
	item := entry{id: idgen.New(), task: task, state: state}
	s.mu.Lock()
	if s.slots != nil && !s.slots.TryAcquire(1) {
		s.backlog.Push(item)
		s.mu.Unlock()
		s.stats.Update(progress.Delta{Submitted: 1, Pending: 1})
		return s
	}
	s.mu.Unlock()
	s.stats.Update(progress.Delta{Submitted: 1})
	s.begin(item)
	return s
}

// OnItemComplete registers a handler invoked once per completed task, in
// registration order. A nil handler panics with ErrNilHandler.
func (s *Service) OnItemComplete(handler ItemHandler) *Service {
	if handler == nil {
		panic(ErrNilHandler)
	}
	s.items.Subscribe(handler)
	return s
}

// OnAllComplete registers a handler invoked when the running count returns
// to zero with an empty backlog. A nil handler panics with ErrNilHandler.
func (s *Service) OnAllComplete(handler DoneHandler) *Service {
	if handler == nil {
		panic(ErrNilHandler)
	}
	s.done.Subscribe(handler)
	return s
}

// Stats returns a snapshot of the aggregated dispatch counters.
func (s *Service) Stats() progress.Tracker {
	return s.stats.Snapshot()
}

// begin claims a running slot for the entry and schedules it. The counter
// is incremented before scheduling so that a Join issued right after Submit
// returns already observes the task.
func (s *Service) begin(item entry) {
	s.running.Add(1)
	s.stats.Update(progress.Delta{Running: 1})
	s.schedule(item)
}

func (s *Service) schedule(item entry) {
	s.executor.Schedule(func() { s.run(item) })
}

// run executes the task, capturing its failure, and always proceeds to the
// completion path.
func (s *Service) run(item entry) {
	_, span := tracing.StartSpan(context.Background(), "funnel.task", "INTERNAL")
	span.WithAttributes(map[string]string{"task.id": item.id})

	outcome := Outcome{TaskID: item.id, StartedAt: clock.Now()}
	outcome.Err = protect(item.task)
	outcome.EndedAt = clock.Now()

	tracing.EndSpan(span, outcome.Err)
	s.complete(item, outcome)
}

// protect invokes the task converting a panic into an error outcome.
func protect(task Task) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if rErr, ok := r.(error); ok {
				err = fmt.Errorf("task panicked: %w", rErr)
				return
			}
			err = fmt.Errorf("task panicked: %v", r)
		}
	}()
	return task()
}

// complete notifies item handlers, then either hands the freed slot to the
// next queued entry or releases it. The goroutine that brings the running
// count to zero fires the all-complete handlers and releases joiners.
func (s *Service) complete(item entry, outcome Outcome) {
	for _, handler := range s.items.Snapshot() {
		handler(item.state, outcome)
	}

	delta := progress.Delta{Completed: 1}
	if outcome.Err != nil {
		delta = progress.Delta{Failed: 1}
	}

	s.mu.Lock()
	if next, ok := s.backlog.Pop(); ok {
		s.mu.Unlock()
		// The slot and running count transfer to the dequeued entry,
		// keeping the count pinned at the cap while backlog exists.
		delta.Pending = -1
		s.stats.Update(delta)
		s.schedule(next)
		return
	}
	if s.slots != nil {
		s.slots.Release(1)
	}
	remaining := s.running.Add(-1)
	s.mu.Unlock()

	delta.Running = -1
	s.stats.Update(delta)

	if remaining == 0 {
		for _, handler := range s.done.Snapshot() {
			handler()
		}
		s.signalIdle()
	}
}
