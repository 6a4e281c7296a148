//go:build !linux && !windows
// +build !linux,!windows

// File: thread/thread_stub.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Fallback for platforms without thread naming/priority/affinity calls.
// Identity falls back to the goroutine id, which is a stable proxy here
// because the worker wrapper locks its goroutine to one OS thread.

package thread

import (
	"bytes"
	"runtime"
	"strconv"
)

func currentThreadID() uint64 {
	buf := make([]byte, 64)
	buf = buf[:runtime.Stack(buf, false)]
	// First line reads "goroutine N [running]:".
	buf = bytes.TrimPrefix(buf, []byte("goroutine "))
	if i := bytes.IndexByte(buf, ' '); i > 0 {
		if id, err := strconv.ParseUint(string(buf[:i]), 10, 64); err == nil {
			return id
		}
	}
	return 0
}

func applyThreadName(string) {}

func applyPriority(Priority) error { return nil }

func applyAffinityMask(uint64) error { return nil }
