// File: hw/hw_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package hw

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectFlatModelInvariants(t *testing.T) {
	info := Detect()

	require.GreaterOrEqual(t, info.LogicalCores, 1)
	require.GreaterOrEqual(t, info.PhysicalCores, 1)
	require.GreaterOrEqual(t, info.NUMANodes, 1)
	assert.LessOrEqual(t, info.PhysicalCores, info.LogicalCores)
	assert.Equal(t, info.LogicalCores > info.PhysicalCores, info.Hyperthreading)
	assert.NotZero(t, info.TotalMemory)
}

func TestDetectIsSideEffectFree(t *testing.T) {
	a := Detect()
	b := Detect()
	assert.Equal(t, a.LogicalCores, b.LogicalCores)
	assert.Equal(t, a.PhysicalCores, b.PhysicalCores)
	assert.Equal(t, a.NUMANodes, b.NUMANodes)
}

func TestAffinityMasks(t *testing.T) {
	info := Detect()
	require.NotEmpty(t, info.AffinityMasks)

	for i, mask := range info.AffinityMasks {
		assert.Equal(t, uint64(1)<<uint(i), mask, "mask %d must be single-bit", i)
		assert.Equal(t, mask, info.AffinityMask(i))
	}

	assert.Zero(t, info.AffinityMask(-1))
	assert.Zero(t, info.AffinityMask(len(info.AffinityMasks)))
}

func TestRecommendedWorkerThreadCount(t *testing.T) {
	n := RecommendedWorkerThreadCount()
	require.GreaterOrEqual(t, n, 1)
	assert.LessOrEqual(t, n, runtime.NumCPU())
}

func TestSingleCoreMasksCap(t *testing.T) {
	masks := singleCoreMasks(200)
	assert.Len(t, masks, maxMaskCores)
}
