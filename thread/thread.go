// File: thread/thread.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Thread owns exactly one OS thread. The worker body runs on a locked
// goroutine, so the kernel thread identity is stable for the lifetime of
// the user function and priority/affinity/name apply to a real thread,
// not to whichever thread the scheduler picked this instant.

package thread

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Func is the worker body; arguments are captured by the closure.
type Func func()

// Thread wraps one OS thread. Construct through Manager.CreateThread.
type Thread struct {
	desc Desc
	id   uuid.UUID
	mgr  *Manager
	log  zerolog.Logger

	mu       sync.Mutex
	active   bool          // Start called, worker not yet finished
	detached bool          // ownership released, shutdown skips join
	done     chan struct{} // closed when the worker body returns
	fault    error         // recovered worker fault, set before done closes

	running atomic.Bool
	osTID   atomic.Uint64
}

// Start launches the worker. It fails when fn is nil or the thread is
// already running. A joined (finished) thread may be started again.
func (t *Thread) Start(fn Func) bool {
	if fn == nil {
		return false
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.active {
		return false
	}
	t.active = true
	t.detached = false
	t.fault = nil
	done := make(chan struct{})
	t.done = done
	go t.body(fn, done)
	return true
}

// body is the worker wrapper: lock to an OS thread, apply the
// description, register, run the user function with fault containment,
// deregister.
func (t *Thread) body(fn Func, done chan struct{}) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	applyThreadName(t.desc.Name)
	if err := applyPriority(t.desc.Priority); err != nil {
		t.log.Warn().Err(err).Stringer("priority", t.desc.Priority).Msg("priority not applied")
	}
	if err := applyAffinityMask(t.desc.AffinityMask); err != nil {
		t.log.Warn().Err(err).Uint64("mask", t.desc.AffinityMask).Msg("affinity not applied")
	}

	tid := currentThreadID()
	t.osTID.Store(tid)
	if t.mgr != nil {
		t.mgr.register(tid, t)
	}
	t.running.Store(true)

	defer func() {
		if r := recover(); r != nil {
			fault := fmt.Errorf("worker fault: %v", r)
			t.log.Error().Err(fault).Str("thread", t.desc.Name).Msg("contained worker fault")
			t.mu.Lock()
			t.fault = fault
			t.mu.Unlock()
		}
		t.running.Store(false)
		if t.mgr != nil {
			t.mgr.deregister(tid)
		}
		t.mu.Lock()
		t.active = false
		t.mu.Unlock()
		close(done)
	}()

	fn()
}

// Join waits for the worker to finish. Infinite blocks without bound;
// a bounded timeout returns false when it expires first. Joining a
// never-started or detached thread returns false.
func (t *Thread) Join(timeout time.Duration) bool {
	t.mu.Lock()
	done := t.done
	detached := t.detached
	t.mu.Unlock()
	if done == nil || detached {
		return false
	}
	switch {
	case timeout < 0:
		<-done
		return true
	case timeout == 0:
		select {
		case <-done:
			return true
		default:
			return false
		}
	default:
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		select {
		case <-done:
			return true
		case <-timer.C:
			return false
		}
	}
}

// Detach releases ownership of the running worker without waiting.
// The manager will no longer join it at shutdown.
func (t *Thread) Detach() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.done == nil || !t.active || t.detached {
		return false
	}
	t.detached = true
	return true
}

// IsRunning reports whether the worker body is currently executing.
func (t *Thread) IsRunning() bool { return t.running.Load() }

// Err returns the contained fault of the most recent run, nil when the
// worker returned normally. Meaningful after Join.
func (t *Thread) Err() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.fault
}

// Name returns the descriptor name.
func (t *Thread) Name() string { return t.desc.Name }

// Desc returns a copy of the descriptor.
func (t *Thread) Desc() Desc { return t.desc }

// ID returns the stable instance identifier.
func (t *Thread) ID() uuid.UUID { return t.id }

// OSThreadID returns the kernel thread id of the most recent run, 0
// before the first Start.
func (t *Thread) OSThreadID() uint64 { return t.osTID.Load() }

func (t *Thread) isDetached() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.detached
}
