// File: hw/hw.go
// Package hw detects host hardware topology for thread placement decisions.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Platform-specific probes live in hw_linux.go, hw_windows.go and hw_stub.go,
// guarded by build tags. Detect has no side effects and is safe to call from
// any thread at any time; callers that want a stable view cache the snapshot
// themselves (thread.Manager does this at Initialize).

package hw

import (
	"runtime"

	"github.com/pbnjay/memory"
)

// maxMaskCores bounds single-core affinity masks to one 64-bit word.
const maxMaskCores = 64

// Info is an immutable snapshot of the host topology.
type Info struct {
	LogicalCores   int
	PhysicalCores  int
	NUMANodes      int
	Hyperthreading bool
	TotalMemory    uint64

	// AffinityMasks holds one single-core mask per logical core,
	// indexed by logical core ID. Cores beyond bit 63 carry no mask.
	AffinityMasks []uint64
}

// Detect queries the host topology. Platforms without native topology
// queries fall back to a flat model: logical == physical, one NUMA node,
// no hyperthreading.
func Detect() Info {
	info := detectPlatform()
	if info.LogicalCores <= 0 {
		info.LogicalCores = runtime.NumCPU()
	}
	if info.LogicalCores <= 0 {
		info.LogicalCores = 1
	}
	if info.PhysicalCores <= 0 {
		info.PhysicalCores = info.LogicalCores
	}
	if info.NUMANodes <= 0 {
		info.NUMANodes = 1
	}
	info.Hyperthreading = info.LogicalCores > info.PhysicalCores
	if len(info.AffinityMasks) == 0 {
		info.AffinityMasks = singleCoreMasks(info.LogicalCores)
	}
	info.TotalMemory = memory.TotalMemory()
	return info
}

// RecommendedWorkerThreadCount returns max(1, physicalCores-1),
// reserving one core for the calling thread.
func RecommendedWorkerThreadCount() int {
	n := Detect().PhysicalCores - 1
	if n < 1 {
		n = 1
	}
	return n
}

// AffinityMask returns the precomputed mask for a logical core.
// Out-of-range indexes return 0, the "no affinity constraint" sentinel.
func (i Info) AffinityMask(core int) uint64 {
	if core < 0 || core >= len(i.AffinityMasks) {
		return 0
	}
	return i.AffinityMasks[core]
}

func singleCoreMasks(cores int) []uint64 {
	if cores > maxMaskCores {
		cores = maxMaskCores
	}
	masks := make([]uint64, cores)
	for i := range masks {
		masks[i] = 1 << uint(i)
	}
	return masks
}
