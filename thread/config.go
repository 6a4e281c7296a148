// File: thread/config.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package thread

import (
	"fmt"
	"os"

	"github.com/sugawarayuuta/sonnet"

	"github.com/momentics/hioload-threads/hw"
)

const (
	defaultThreadArenaSize = 1 << 20 // 1 MiB
	defaultJobArenaSize    = 4 << 20 // 4 MiB
	defaultTaskPoolSize    = 1024
	minArenaSize           = 4 << 10
)

// Config sizes the manager. Supplied once at Initialize; immutable
// thereafter.
type Config struct {
	// WorkerThreadCount of 0 auto-detects: physical cores minus one,
	// minimum 1.
	WorkerThreadCount int `json:"workerThreadCount"`

	// ThreadAllocatorSize is the per-thread scratch arena, in bytes.
	ThreadAllocatorSize int `json:"threadAllocatorSize"`

	// JobAllocatorSize is the per-job scratch arena, in bytes.
	JobAllocatorSize int `json:"jobAllocatorSize"`

	// TaskPoolSize bounds queues sized for pending work handoff.
	TaskPoolSize int `json:"taskPoolSize"`
}

// DefaultConfig returns the auto-detect configuration.
func DefaultConfig() Config {
	return Config{
		ThreadAllocatorSize: defaultThreadArenaSize,
		JobAllocatorSize:    defaultJobArenaSize,
		TaskPoolSize:        defaultTaskPoolSize,
	}
}

// LoadConfig reads a JSON config file. Missing fields keep their
// zero values and resolve at Initialize like DefaultConfig does.
func LoadConfig(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("thread: read config: %w", err)
	}
	var cfg Config
	if err := sonnet.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("thread: parse config: %w", err)
	}
	return cfg, nil
}

// withDefaults resolves auto-detection and clamps sizes.
func (c Config) withDefaults(info hw.Info) Config {
	if c.WorkerThreadCount <= 0 {
		c.WorkerThreadCount = info.PhysicalCores - 1
		if c.WorkerThreadCount < 1 {
			c.WorkerThreadCount = 1
		}
	}
	if c.ThreadAllocatorSize <= 0 {
		c.ThreadAllocatorSize = defaultThreadArenaSize
	} else if c.ThreadAllocatorSize < minArenaSize {
		c.ThreadAllocatorSize = minArenaSize
	}
	if c.JobAllocatorSize <= 0 {
		c.JobAllocatorSize = defaultJobArenaSize
	} else if c.JobAllocatorSize < minArenaSize {
		c.JobAllocatorSize = minArenaSize
	}
	if c.TaskPoolSize <= 0 {
		c.TaskPoolSize = defaultTaskPoolSize
	}
	return c
}
