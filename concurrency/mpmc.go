// File: concurrency/mpmc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Multi-producer/multi-consumer bounded queue using Dmitry Vyukov's
// sequence-number technique. Every cell carries its own generation
// counter, initialized to the cell index: a producer may write when
// sequence == tail, a consumer may read when sequence == head+1, and a
// consumed cell is republished at sequence = head + slots, one full lap
// ahead. Readiness is judged by the cell's own generation rather than
// head/tail equality, which is what removes the ABA hazard of bare
// counters.

package concurrency

import "sync/atomic"

// MPMCQueue is a bounded multi-producer/multi-consumer queue. As with
// SPSCQueue, one slot stays unused so both ring variants share the same
// usable-capacity contract.
type MPMCQueue[T any] struct {
	head atomic.Uint64
	_    [cacheLinePad - 8]byte
	tail atomic.Uint64
	_    [cacheLinePad - 8]byte

	mask  uint64
	cells []mpmcCell[T]
}

type mpmcCell[T any] struct {
	sequence atomic.Uint64
	data     T
}

// NewMPMCQueue creates a queue whose slot count is capacity rounded up
// to a power of two (minimum 2). Panics when capacity is not positive.
func NewMPMCQueue[T any](capacity int) *MPMCQueue[T] {
	size := roundPow2(capacity)
	q := &MPMCQueue[T]{
		mask:  uint64(size - 1),
		cells: make([]mpmcCell[T], size),
	}
	for i := range q.cells {
		q.cells[i].sequence.Store(uint64(i))
	}
	return q
}

// Push appends an item; it fails fast with false when the queue is full.
// Safe for any number of concurrent producers.
func (q *MPMCQueue[T]) Push(item T) bool {
	for {
		tail := q.tail.Load()
		if tail-q.head.Load() >= q.mask {
			return false
		}
		c := &q.cells[tail&q.mask]
		seq := c.sequence.Load()
		diff := int64(seq) - int64(tail)
		if diff == 0 {
			if q.tail.CompareAndSwap(tail, tail+1) {
				c.data = item
				c.sequence.Store(tail + 1)
				return true
			}
		} else if diff < 0 {
			// Cell still owned by a consumer a lap behind: full.
			return false
		}
		// Another producer claimed the cell; retry with a fresh tail.
	}
}

// Pop removes the oldest item; ok is false when the queue is empty.
// Safe for any number of concurrent consumers.
func (q *MPMCQueue[T]) Pop() (item T, ok bool) {
	for {
		head := q.head.Load()
		c := &q.cells[head&q.mask]
		seq := c.sequence.Load()
		diff := int64(seq) - int64(head+1)
		if diff == 0 {
			if q.head.CompareAndSwap(head, head+1) {
				item = c.data
				var zero T
				c.data = zero
				c.sequence.Store(head + uint64(len(q.cells)))
				return item, true
			}
		} else if diff < 0 {
			return item, false
		}
		// Another consumer claimed the cell; retry with a fresh head.
	}
}

// Len is an advisory snapshot of the item count; it may be stale under
// concurrent mutation. Diagnostics only.
func (q *MPMCQueue[T]) Len() int {
	return int(q.tail.Load() - q.head.Load())
}

// IsEmpty is an advisory snapshot.
func (q *MPMCQueue[T]) IsEmpty() bool { return q.Len() == 0 }

// IsFull is an advisory snapshot.
func (q *MPMCQueue[T]) IsFull() bool { return q.Len() >= int(q.mask) }

// Capacity returns the usable capacity (slot count minus one).
func (q *MPMCQueue[T]) Capacity() int { return int(q.mask) }
