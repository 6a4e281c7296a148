// File: thread/config_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package thread

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentics/hioload-threads/hw"
)

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "threading.json")
	data := `{
		"workerThreadCount": 6,
		"threadAllocatorSize": 65536,
		"jobAllocatorSize": 131072,
		"taskPoolSize": 256
	}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 6, cfg.WorkerThreadCount)
	assert.Equal(t, 65536, cfg.ThreadAllocatorSize)
	assert.Equal(t, 131072, cfg.JobAllocatorSize)
	assert.Equal(t, 256, cfg.TaskPoolSize)
}

func TestLoadConfigPartialKeepsZeros(t *testing.T) {
	path := filepath.Join(t.TempDir(), "threading.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"workerThreadCount": 2}`), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.WorkerThreadCount)
	assert.Zero(t, cfg.JobAllocatorSize, "resolved later at Initialize")
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))
	_, err = LoadConfig(path)
	assert.Error(t, err)
}

func TestConfigWithDefaults(t *testing.T) {
	info := hw.Info{LogicalCores: 10, PhysicalCores: 5, NUMANodes: 1}

	resolved := Config{}.withDefaults(info)
	assert.Equal(t, 4, resolved.WorkerThreadCount, "5 physical cores yield 4 workers")
	assert.Equal(t, defaultThreadArenaSize, resolved.ThreadAllocatorSize)
	assert.Equal(t, defaultJobArenaSize, resolved.JobAllocatorSize)
	assert.Equal(t, defaultTaskPoolSize, resolved.TaskPoolSize)

	single := Config{}.withDefaults(hw.Info{PhysicalCores: 1})
	assert.Equal(t, 1, single.WorkerThreadCount, "minimum one worker")

	tiny := Config{ThreadAllocatorSize: 16, JobAllocatorSize: 16}.withDefaults(info)
	assert.Equal(t, minArenaSize, tiny.ThreadAllocatorSize)
	assert.Equal(t, minArenaSize, tiny.JobAllocatorSize)

	explicit := Config{WorkerThreadCount: 7}.withDefaults(info)
	assert.Equal(t, 7, explicit.WorkerThreadCount, "explicit count wins over auto-detect")
}
