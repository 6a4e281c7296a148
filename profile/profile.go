// File: profile/profile.go
// Package profile provides best-effort per-thread execution counters.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Each thread writes only its own Data block, so recording is free of
// cross-thread contention; the registry of all blocks is read under a
// spin lock for aggregation and reset. The whole layer is diagnostic:
// disable it and every Scope becomes a no-op.

package profile

import (
	"sync/atomic"
	"time"

	"github.com/eapache/queue"

	"github.com/momentics/hioload-threads/concurrency"
)

// journalCapacity bounds the recent-sample journal; the oldest sample
// is dropped when a new one would exceed it.
const journalCapacity = 256

var enabled atomic.Bool

func init() { enabled.Store(true) }

// SetEnabled toggles the whole profiling layer at runtime.
func SetEnabled(on bool) { enabled.Store(on) }

// Enabled reports whether profiling is active.
func Enabled() bool { return enabled.Load() }

// Data is a per-thread profile block. Exactly one thread writes it;
// aggregation reads are racy-but-monotonic snapshots.
type Data struct {
	name string
	jobs atomic.Uint64
	busy atomic.Int64 // nanoseconds
}

// Name returns the owning thread's label.
func (d *Data) Name() string { return d.name }

// Jobs returns the recorded job count.
func (d *Data) Jobs() uint64 { return d.jobs.Load() }

// BusyTime returns the cumulative recorded execution time.
func (d *Data) BusyTime() time.Duration { return time.Duration(d.busy.Load()) }

// Record adds one finished job with its elapsed time.
func (d *Data) Record(elapsed time.Duration) {
	d.jobs.Add(1)
	d.busy.Add(int64(elapsed))
}

func (d *Data) reset() {
	d.jobs.Store(0)
	d.busy.Store(0)
}

// Sample is one closed scope, kept in the bounded journal.
type Sample struct {
	Thread  string
	Scope   string
	Elapsed time.Duration
}

var registry struct {
	lock    concurrency.SpinLock
	blocks  []*Data
	journal *queue.Queue
}

// Register allocates a profile block for a thread. The block stays in
// the registry until ResetAll drops counters or the process exits.
func Register(threadName string) *Data {
	d := &Data{name: threadName}
	registry.lock.Lock()
	registry.blocks = append(registry.blocks, d)
	registry.lock.Unlock()
	return d
}

// Blocks returns a snapshot of all registered profile blocks.
func Blocks() []*Data {
	registry.lock.Lock()
	defer registry.lock.Unlock()
	out := make([]*Data, len(registry.blocks))
	copy(out, registry.blocks)
	return out
}

// Aggregate sums jobs and busy time across every registered block.
func Aggregate() (jobs uint64, busy time.Duration) {
	for _, d := range Blocks() {
		jobs += d.Jobs()
		busy += d.BusyTime()
	}
	return jobs, busy
}

// ResetAll zeroes every block and clears the journal.
func ResetAll() {
	registry.lock.Lock()
	blocks := make([]*Data, len(registry.blocks))
	copy(blocks, registry.blocks)
	registry.journal = nil
	registry.lock.Unlock()
	for _, d := range blocks {
		d.reset()
	}
}

// RecentSamples returns the journal contents, oldest first.
func RecentSamples() []Sample {
	registry.lock.Lock()
	defer registry.lock.Unlock()
	if registry.journal == nil {
		return nil
	}
	out := make([]Sample, 0, registry.journal.Length())
	for i := 0; i < registry.journal.Length(); i++ {
		out = append(out, registry.journal.Get(i).(Sample))
	}
	return out
}

func record(s Sample) {
	registry.lock.Lock()
	if registry.journal == nil {
		registry.journal = queue.New()
	}
	if registry.journal.Length() >= journalCapacity {
		registry.journal.Remove()
	}
	registry.journal.Add(s)
	registry.lock.Unlock()
}
