// File: concurrency/spinlock.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Test-and-set lock for critical sections short enough that blocking
// overhead would dominate (registry lookups, counter updates). After the
// spin budget is exhausted the lock yields to the scheduler and resets the
// counter, so heavy contention degrades to cooperative spinning instead of
// starving the OS.

package concurrency

import (
	"runtime"
	"sync/atomic"
)

// spinBudget is the number of failed acquisition attempts before a yield.
const spinBudget = 1000

// SpinLock is a test-and-set mutual exclusion lock. The zero value is
// an unlocked lock. Not reentrant.
type SpinLock struct {
	flag atomic.Bool
}

// Lock acquires the lock, busy-spinning with a bounded budget and
// yielding the processor each time the budget runs out.
func (l *SpinLock) Lock() {
	spins := 0
	for !l.flag.CompareAndSwap(false, true) {
		spins++
		if spins >= spinBudget {
			runtime.Gosched()
			spins = 0
		}
	}
}

// TryLock makes a single non-blocking acquisition attempt.
func (l *SpinLock) TryLock() bool {
	return l.flag.CompareAndSwap(false, true)
}

// Unlock releases the lock. The caller must hold it.
func (l *SpinLock) Unlock() {
	l.flag.Store(false)
}
