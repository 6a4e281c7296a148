// File: concurrency/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

// Package concurrency provides the synchronization primitives the rest of
// the module is built from: a bounded-spin lock, a shared lock, manual and
// auto-reset events, a counting semaphore, a reusable generation-counted
// barrier, and two fixed-capacity lock-free queues (SPSC and MPMC).
//
// None of the lock-free operations suspend at the OS level: queue Push/Pop
// fail fast on full/empty, and SpinLock busy-waits with a bounded yield
// fallback. Event, Semaphore and Barrier are the blocking primitives.
//
// All timed waits take a time.Duration; Infinite (-1) blocks without bound
// and 0 performs a single non-blocking check.
package concurrency

import "time"

// Infinite is the timeout sentinel that blocks without bound.
const Infinite time.Duration = -1
