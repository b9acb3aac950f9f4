// Package progress provides a lightweight tracker that keeps aggregated
// dispatch counters (submitted, running, pending, completed, failed) for a
// single dispatcher instance. Counters are updated atomically via the Delta
// helper; observers can subscribe to every change without blocking the
// dispatcher internals.
package progress

import (
	"sync"
	"time"
)

// Delta represents an incremental counter change emitted by the admission
// and completion paths. Fields are signed and can be either positive
// (increment) or negative (decrement).
type Delta struct {
	Submitted int
	Running   int
	Pending   int
	Completed int
	Failed    int
}

// Tracker keeps aggregated task counters for one dispatcher. It is safe for
// concurrent use.
type Tracker struct {
	// StartedAt is informative only, filled when the tracker is created.
	StartedAt time.Time

	// Counters – modified via Update().
	Submitted int
	Running   int
	Pending   int
	Completed int
	Failed    int

	sync.Mutex
	onChange func(Tracker)
}

// NewTracker returns a tracker stamped with the current time.
func NewTracker() *Tracker {
	return &Tracker{StartedAt: time.Now()}
}

// Update applies the supplied delta. If an onChange callback has been
// registered it is invoked with a value-copy of the updated tracker outside
// the critical section, so slow observers never block counter updates.
func (t *Tracker) Update(d Delta) {
	if t == nil {
		return
	}
	t.Lock()
	t.Submitted += d.Submitted
	t.Running += d.Running
	t.Pending += d.Pending
	t.Completed += d.Completed
	t.Failed += d.Failed

	snapshot := *t
	cb := t.onChange
	t.Unlock()

	if cb != nil {
		cb(snapshot)
	}
}

// Snapshot returns a copy suitable for read-only inspection.
func (t *Tracker) Snapshot() Tracker {
	if t == nil {
		return Tracker{}
	}
	t.Lock()
	defer t.Unlock()
	return *t
}

// OnChange registers a callback invoked after every Update. Passing nil
// disables the callback. Only one callback can be active; subsequent calls
// overwrite the previous value.
func (t *Tracker) OnChange(cb func(Tracker)) {
	if t == nil {
		return
	}
	t.Lock()
	t.onChange = cb
	t.Unlock()
}
