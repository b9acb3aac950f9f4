// Package event provides a small, mutex-guarded registry of handlers used
// for completion fan-out. The registry synchronises registration and
// removal only; invocation happens over a snapshot so a handler may itself
// register or unregister handlers without deadlocking.
package event

import "sync"

type subscriber[T any] struct {
	id      int64
	handler T
}

// Registry holds an ordered list of handlers of type T. The zero value is
// ready to use and safe for concurrent access.
type Registry[T any] struct {
	mu     sync.RWMutex
	subs   []subscriber[T]
	nextID int64
}

// Subscribe appends a handler and returns a token that can later be passed
// to Unsubscribe. Handlers are retained in registration order.
func (r *Registry[T]) Subscribe(handler T) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	r.subs = append(r.subs, subscriber[T]{id: r.nextID, handler: handler})
	return r.nextID
}

// Unsubscribe removes the handler registered under the supplied token.
// Unknown tokens are ignored.
func (r *Registry[T]) Unsubscribe(token int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, sub := range r.subs {
		if sub.id == token {
			r.subs = append(r.subs[:i], r.subs[i+1:]...)
			return
		}
	}
}

// Snapshot returns a copy of the registered handlers in registration
// order. Callers invoke handlers from the copy, outside the registry lock.
func (r *Registry[T]) Snapshot() []T {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if len(r.subs) == 0 {
		return nil
	}
	handlers := make([]T, len(r.subs))
	for i, sub := range r.subs {
		handlers[i] = sub.handler
	}
	return handlers
}

// Len returns the number of registered handlers.
func (r *Registry[T]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.subs)
}
