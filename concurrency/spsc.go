// File: concurrency/spsc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Single-producer/single-consumer bounded ring buffer. Head and tail are
// monotonic counters masked into the slot array; the producer publishes
// tail with a release store, the consumer publishes head the same way, so
// an observed item carries every write the producer made before pushing.
//
// Each side keeps a local cache of the opposite index and only re-reads
// the shared counter when the cache says the ring looks full or empty,
// keeping the common case free of cross-core traffic. Head/tail live on
// separate cache lines to avoid false sharing.
//
// Exactly one producer thread may call Push and one consumer thread may
// call Pop. That discipline is a caller contract, not enforced at runtime.

package concurrency

import "sync/atomic"

const cacheLinePad = 64

// SPSCQueue is a bounded single-producer/single-consumer queue.
// One slot stays empty to distinguish full from empty, so the usable
// capacity is one less than the slot count.
type SPSCQueue[T any] struct {
	head       atomic.Uint64 // consumer writes, producer reads
	cachedTail uint64        // consumer-local
	_          [cacheLinePad - 16]byte

	tail       atomic.Uint64 // producer writes, consumer reads
	cachedHead uint64        // producer-local
	_          [cacheLinePad - 16]byte

	data []T
	mask uint64
}

// NewSPSCQueue creates a queue whose slot count is capacity rounded up
// to a power of two (minimum 2). Panics when capacity is not positive.
func NewSPSCQueue[T any](capacity int) *SPSCQueue[T] {
	size := roundPow2(capacity)
	return &SPSCQueue[T]{
		data: make([]T, size),
		mask: uint64(size - 1),
	}
}

// Push appends an item; it fails fast with false when the queue is full.
// Producer thread only.
func (q *SPSCQueue[T]) Push(item T) bool {
	tail := q.tail.Load()
	if tail-q.cachedHead >= q.mask {
		q.cachedHead = q.head.Load()
		if tail-q.cachedHead >= q.mask {
			return false
		}
	}
	q.data[tail&q.mask] = item
	q.tail.Store(tail + 1)
	return true
}

// Pop removes the oldest item; ok is false when the queue is empty.
// Consumer thread only.
func (q *SPSCQueue[T]) Pop() (item T, ok bool) {
	head := q.head.Load()
	if head == q.cachedTail {
		q.cachedTail = q.tail.Load()
		if head == q.cachedTail {
			return item, false
		}
	}
	item = q.data[head&q.mask]
	var zero T
	q.data[head&q.mask] = zero
	q.head.Store(head + 1)
	return item, true
}

// Len is an advisory snapshot of the item count; it may be stale under
// concurrent mutation. Diagnostics only.
func (q *SPSCQueue[T]) Len() int {
	return int(q.tail.Load() - q.head.Load())
}

// IsEmpty is an advisory snapshot.
func (q *SPSCQueue[T]) IsEmpty() bool { return q.Len() == 0 }

// IsFull is an advisory snapshot.
func (q *SPSCQueue[T]) IsFull() bool { return q.Len() >= int(q.mask) }

// Capacity returns the usable capacity (slot count minus one).
func (q *SPSCQueue[T]) Capacity() int { return int(q.mask) }

// roundPow2 rounds capacity up to a power of two, minimum 2.
func roundPow2(capacity int) int {
	if capacity <= 0 {
		panic("concurrency: queue capacity must be positive")
	}
	size := 2
	for size < capacity {
		size <<= 1
	}
	return size
}
