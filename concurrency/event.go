// File: concurrency/event.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Binary event flag in two flavors. Manual-reset stays set until Reset and
// Set wakes every waiter; auto-reset hands exactly one waiter a wake token
// per Set and the released waiter observes the flag cleared.
//
// Built on channels rather than a condition variable: a closed channel is
// the broadcast, a one-slot token channel is the single hand-off, and both
// compose with timers for bounded waits.

package concurrency

import (
	"sync"
	"time"
)

// Event is a binary coordination flag. Use NewEvent to construct one.
type Event struct {
	manual bool

	// manual-reset state: gate is closed while the event is set and
	// replaced by Reset. Guarded by mu.
	mu   sync.Mutex
	set  bool
	gate chan struct{}

	// auto-reset state: token holds at most one wake permit.
	token chan struct{}
}

// NewEvent creates an event. A manual-reset event stays signaled until
// Reset; an auto-reset event releases exactly one waiter per Set.
func NewEvent(manualReset, initiallySet bool) *Event {
	e := &Event{manual: manualReset}
	if manualReset {
		e.gate = make(chan struct{})
		if initiallySet {
			e.set = true
			close(e.gate)
		}
	} else {
		e.token = make(chan struct{}, 1)
		if initiallySet {
			e.token <- struct{}{}
		}
	}
	return e
}

// Set signals the event. Setting an already-set event is a no-op.
func (e *Event) Set() {
	if e.manual {
		e.mu.Lock()
		if !e.set {
			e.set = true
			close(e.gate)
		}
		e.mu.Unlock()
		return
	}
	select {
	case e.token <- struct{}{}:
	default:
	}
}

// Reset clears the event. For auto-reset events this drains a pending
// token if one exists.
func (e *Event) Reset() {
	if e.manual {
		e.mu.Lock()
		if e.set {
			e.set = false
			e.gate = make(chan struct{})
		}
		e.mu.Unlock()
		return
	}
	select {
	case <-e.token:
	default:
	}
}

// Wait blocks until the event is signaled or the timeout expires.
// Infinite blocks without bound; 0 is a non-blocking check. Returns true
// when the event was observed signaled.
func (e *Event) Wait(timeout time.Duration) bool {
	if e.manual {
		e.mu.Lock()
		if e.set {
			e.mu.Unlock()
			return true
		}
		gate := e.gate
		e.mu.Unlock()
		return waitChan(gate, timeout)
	}
	return waitChan(e.token, timeout)
}

// IsSet is a non-blocking snapshot of the flag; it may be stale
// immediately after return.
func (e *Event) IsSet() bool {
	if e.manual {
		e.mu.Lock()
		set := e.set
		e.mu.Unlock()
		return set
	}
	return len(e.token) > 0
}

// waitChan receives from ch (or observes it closed) within the timeout.
func waitChan[T any](ch <-chan T, timeout time.Duration) bool {
	switch {
	case timeout < 0:
		<-ch
		return true
	case timeout == 0:
		select {
		case <-ch:
			return true
		default:
			return false
		}
	default:
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		select {
		case <-ch:
			return true
		case <-timer.C:
			return false
		}
	}
}
