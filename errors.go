package funnel

import "errors"

var (
	// ErrNilTask is the panic value raised by Submit when task is nil.
	ErrNilTask = errors.New("funnel: task is nil")

	// ErrNilHandler is the panic value raised by OnItemComplete and
	// OnAllComplete when handler is nil.
	ErrNilHandler = errors.New("funnel: handler is nil")
)
