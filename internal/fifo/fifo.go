// Package fifo implements a growable ring-buffer queue. It lives under
// `internal` because it carries no synchronisation of its own – owners are
// expected to guard access with whatever lock already protects their state.
package fifo

// Queue is a first-in-first-out queue backed by a circular buffer. The
// zero value is ready to use.
type Queue[T any] struct {
	items []T
	head  int
	count int
}

// New returns a queue pre-sized to hold capacity items before growing.
func New[T any](capacity int) *Queue[T] {
	if capacity <= 0 {
		capacity = 16
	}
	return &Queue[T]{items: make([]T, capacity)}
}

// Push appends an item at the tail of the queue.
func (q *Queue[T]) Push(item T) {
	if q.count == len(q.items) {
		q.grow()
	}
	q.items[(q.head+q.count)%len(q.items)] = item
	q.count++
}

// Pop removes and returns the item at the head of the queue. The second
// return value is false when the queue is empty.
func (q *Queue[T]) Pop() (T, bool) {
	var zero T
	if q.count == 0 {
		return zero, false
	}
	item := q.items[q.head]
	q.items[q.head] = zero
	q.head = (q.head + 1) % len(q.items)
	q.count--
	return item, true
}

// Peek returns the head item without removing it.
func (q *Queue[T]) Peek() (T, bool) {
	var zero T
	if q.count == 0 {
		return zero, false
	}
	return q.items[q.head], true
}

// Len returns the number of queued items.
func (q *Queue[T]) Len() int {
	return q.count
}

func (q *Queue[T]) grow() {
	capacity := len(q.items) * 2
	if capacity == 0 {
		capacity = 16
	}
	items := make([]T, capacity)
	for i := 0; i < q.count; i++ {
		items[i] = q.items[(q.head+i)%len(q.items)]
	}
	q.items = items
	q.head = 0
}
