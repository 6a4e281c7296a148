// File: concurrency/rwlock.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Thin wrapper over the native shared mutex. Exists so registry code uses
// the same lock vocabulary as SpinLock and so try-variants are part of the
// primitive set rather than scattered call sites.

package concurrency

import "sync"

// RWLock is a reader/writer mutual exclusion lock. Multiple readers may
// hold the lock concurrently; a writer excludes all readers and writers.
// The zero value is an unlocked lock.
type RWLock struct {
	mu sync.RWMutex
}

// Lock acquires the lock for writing.
func (l *RWLock) Lock() { l.mu.Lock() }

// TryLock makes a single non-blocking attempt to acquire for writing.
func (l *RWLock) TryLock() bool { return l.mu.TryLock() }

// Unlock releases a write hold.
func (l *RWLock) Unlock() { l.mu.Unlock() }

// RLock acquires the lock for reading.
func (l *RWLock) RLock() { l.mu.RLock() }

// TryRLock makes a single non-blocking attempt to acquire for reading.
func (l *RWLock) TryRLock() bool { return l.mu.TryRLock() }

// RUnlock releases a read hold.
func (l *RWLock) RUnlock() { l.mu.RUnlock() }
