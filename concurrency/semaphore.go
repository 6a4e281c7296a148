// File: concurrency/semaphore.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Counting semaphore over [0, max]. Permits live in a buffered channel so
// Acquire composes with timers and Count stays a cheap advisory read.

package concurrency

import "time"

// Semaphore is a counting semaphore. Use NewSemaphore to construct one.
type Semaphore struct {
	permits chan struct{}
}

// NewSemaphore creates a semaphore with the given initial count and
// maximum. max is clamped to at least 1 and initial to [0, max].
func NewSemaphore(initial, max int) *Semaphore {
	if max < 1 {
		max = 1
	}
	if initial < 0 {
		initial = 0
	}
	if initial > max {
		initial = max
	}
	s := &Semaphore{permits: make(chan struct{}, max)}
	for i := 0; i < initial; i++ {
		s.permits <- struct{}{}
	}
	return s
}

// Acquire takes one permit, blocking until one is available or the
// timeout expires. Infinite blocks without bound; 0 is a non-blocking
// attempt. Returns true when a permit was taken.
func (s *Semaphore) Acquire(timeout time.Duration) bool {
	return waitChan(s.permits, timeout)
}

// TryAcquire takes one permit without blocking.
func (s *Semaphore) TryAcquire() bool {
	return s.Acquire(0)
}

// Release adds up to n permits, waking up to n waiters, and returns how
// many were actually added. Permits beyond the maximum are discarded.
func (s *Semaphore) Release(n int) int {
	added := 0
	for i := 0; i < n; i++ {
		select {
		case s.permits <- struct{}{}:
			added++
		default:
			return added
		}
	}
	return added
}

// Count is an advisory snapshot of the available permits. It may be
// stale immediately after reading and must not gate correctness.
func (s *Semaphore) Count() int {
	return len(s.permits)
}

// Max returns the permit ceiling.
func (s *Semaphore) Max() int {
	return cap(s.permits)
}
