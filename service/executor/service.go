// Package executor abstracts how the dispatcher schedules work for
// asynchronous execution. The dispatcher treats the executor as an injected
// capability so its admission and completion logic can be exercised with a
// deterministic synchronous executor in tests.
package executor

// Service schedules a unit of work for execution. Implementations decide
// where and when the function runs; they must eventually invoke it exactly
// once.
type Service interface {
	Schedule(fn func())
}

// GoExecutor schedules every unit of work on its own goroutine. The Go
// runtime multiplexes goroutines onto a shared pool of OS threads, so no
// thread is dedicated to a single task.
type GoExecutor struct{}

// Schedule runs fn on a new goroutine.
func (GoExecutor) Schedule(fn func()) { go fn() }

// Inline runs scheduled work synchronously on the calling goroutine. It is
// intended for tests that need deterministic execution order.
type Inline struct{}

// Schedule invokes fn before returning.
func (Inline) Schedule(fn func()) { fn() }
