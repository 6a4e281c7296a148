// File: thread/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

// Package thread wraps OS threads and owns the process-wide registry.
//
// A Thread maps 1:1 to a native thread: its worker body locks the
// goroutine to an OS thread, applies the requested name, priority and
// affinity, registers itself in the manager's identity table, and
// contains any escaping fault so it cannot take the process down.
//
// The Manager carries the lifecycle: Initialize computes the hardware
// snapshot, resolves the worker count and constructs the two scratch
// arenas; Shutdown joins every managed thread and tears the registry
// down. A package-level default manager mirrors the explicit instances
// used in tests.
package thread

import (
	"time"

	"github.com/momentics/hioload-threads/concurrency"
)

// Infinite is the timeout sentinel that blocks without bound.
const Infinite = concurrency.Infinite

// Sleep suspends the calling thread for the given duration.
func Sleep(d time.Duration) {
	if d > 0 {
		time.Sleep(d)
	}
}
