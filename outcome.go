package funnel

import "time"

// Task is an opaque unit of work submitted for possible parallel execution.
// The returned error, or any panic the task raises, is captured as the
// task's outcome and never propagated to the submitter.
type Task func() error

// ItemHandler is invoked once per completed task with the caller-supplied
// correlation state and the task's outcome. Handlers run synchronously on
// the completing task's goroutine; a panic inside a handler is not caught.
type ItemHandler func(state interface{}, outcome Outcome)

// DoneHandler is invoked when the running count returns to zero with an
// empty backlog - exactly once per work episode.
type DoneHandler func()

// Outcome is the result of running a task: either success or a captured
// failure, never both.
type Outcome struct {
	// TaskID identifies the submission the outcome belongs to.
	TaskID string

	// Err holds the captured failure; nil on success.
	Err error

	StartedAt time.Time
	EndedAt   time.Time
}

// Success returns true when the task completed without failure.
func (o Outcome) Success() bool { return o.Err == nil }

// Duration returns how long the task executed.
func (o Outcome) Duration() time.Duration { return o.EndedAt.Sub(o.StartedAt) }
