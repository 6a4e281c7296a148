// File: internal/logging/logging.go
// Package logging constructs the shared structured logger.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package logging

import (
	"os"
	"sync"

	"github.com/rs/zerolog"
)

var (
	mu   sync.RWMutex
	base = zerolog.New(os.Stderr).With().Timestamp().Logger()
)

// Component derives a logger tagged with the originating component.
func Component(name string) zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return base.With().Str("component", name).Logger()
}

// SetBase replaces the base logger. Tests use this to capture output.
func SetBase(l zerolog.Logger) {
	mu.Lock()
	base = l
	mu.Unlock()
}
