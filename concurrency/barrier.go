// File: concurrency/barrier.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Reusable rendezvous point for a fixed number of threads. Each rendezvous
// epoch owns a gate channel; the release thread closes the gate and installs
// a fresh one under the same lock hold, so the barrier is ready for reuse
// before any waiter wakes and no waiter can confuse epochs. The generation
// counter names the current epoch.

package concurrency

import (
	"sync"
	"time"
)

// Barrier blocks threads until a fixed count of them have arrived.
// Use NewBarrier to construct one.
type Barrier struct {
	mu         sync.Mutex
	count      int
	arrived    int
	waiting    int
	generation uint64
	gate       chan struct{}
}

// NewBarrier creates a barrier for threadCount threads. Counts below 1
// are clamped to 1; a one-thread barrier is a permanent no-op fast path.
func NewBarrier(threadCount int) *Barrier {
	if threadCount < 1 {
		threadCount = 1
	}
	return &Barrier{
		count: threadCount,
		gate:  make(chan struct{}),
	}
}

// Wait blocks until all threads have arrived. The thread whose arrival
// completes the rendezvous is the release thread; it wakes the others,
// resets the barrier for the next epoch and gets true back. All other
// threads get false.
func (b *Barrier) Wait() bool {
	if b.count == 1 {
		return true
	}
	b.mu.Lock()
	b.arrived++
	if b.arrived == b.count {
		b.release()
		b.mu.Unlock()
		return true
	}
	gate := b.gate
	b.waiting++
	b.mu.Unlock()

	<-gate
	b.mu.Lock()
	b.waiting--
	b.mu.Unlock()
	return false
}

// TryWait is Wait with a bounded timeout. It returns true when the
// rendezvous completed (as release thread or woken waiter) and false on
// timeout, in which case the arrival is retracted so a later full
// arrival still succeeds.
func (b *Barrier) TryWait(timeout time.Duration) bool {
	if b.count == 1 {
		return true
	}
	b.mu.Lock()
	b.arrived++
	if b.arrived == b.count {
		b.release()
		b.mu.Unlock()
		return true
	}
	gate := b.gate
	b.waiting++
	b.mu.Unlock()

	if waitChan(gate, timeout) {
		b.mu.Lock()
		b.waiting--
		b.mu.Unlock()
		return true
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.waiting--
	select {
	case <-gate:
		// Released between the timeout firing and reacquiring the
		// lock; the rendezvous completed, nothing to retract.
		return true
	default:
	}
	b.arrived--
	return false
}

// Reset re-arms the barrier. It fails when any thread is currently
// waiting, protecting an in-flight rendezvous from corruption.
func (b *Barrier) Reset() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.waiting > 0 {
		return false
	}
	b.arrived = 0
	b.generation++
	return true
}

// Generation returns the current rendezvous epoch.
func (b *Barrier) Generation() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.generation
}

// ThreadCount returns the fixed participant count.
func (b *Barrier) ThreadCount() int {
	return b.count
}

// release completes the current epoch. Caller holds b.mu.
func (b *Barrier) release() {
	close(b.gate)
	b.gate = make(chan struct{})
	b.arrived = 0
	b.generation++
}
