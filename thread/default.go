// File: thread/default.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Process-wide default manager so all components share one registry
// instead of fragmenting thread ownership.

package thread

import "sync"

var (
	defaultOnce sync.Once
	defaultMgr  *Manager
)

// Default returns the process-wide manager.
func Default() *Manager {
	defaultOnce.Do(func() {
		defaultMgr = NewManager()
	})
	return defaultMgr
}

// Initialize sets up the default manager. Only the first call takes
// effect.
func Initialize(cfg Config) bool { return Default().Initialize(cfg) }

// Shutdown tears the default manager down. Idempotent.
func Shutdown() { Default().Shutdown() }

// IsInitialized reports the default manager's lifecycle state.
func IsInitialized() bool { return Default().IsInitialized() }

// CreateThread is a shortcut on the default manager.
func CreateThread(desc Desc) *Thread { return Default().CreateThread(desc) }

// DestroyThread is a shortcut on the default manager.
func DestroyThread(t *Thread) bool { return Default().DestroyThread(t) }

// Current resolves the calling thread against the default manager.
func Current() *Thread { return Default().Current() }
