// File: thread/manager.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Manager is the process-wide thread registry. Ownership and identity are
// split across two locks: the owned collection sits behind a read-write
// lock (writers: create/destroy/shutdown; readers: enumeration), and the
// OS-thread-id lookup table behind a dedicated spin lock held only for
// map operations. The lookup table never owns the threads it references.

package thread

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/momentics/hioload-threads/concurrency"
	"github.com/momentics/hioload-threads/hw"
	"github.com/momentics/hioload-threads/internal/logging"
	"github.com/momentics/hioload-threads/pool"
)

// shutdownJoinTimeout bounds the per-thread join during Shutdown and
// DestroyThread so one stuck worker cannot hang teardown.
const shutdownJoinTimeout = 2 * time.Second

// Manager owns all Thread instances and the identity lookup table.
// Either fully initialized or fully torn down; accessors on an
// uninitialized manager return empty/nil/default results.
type Manager struct {
	initGuard   sync.Mutex
	initialized bool

	config      Config
	hwInfo      hw.Info
	threadAlloc *pool.Bump
	jobAlloc    *pool.Bump

	threadsLock concurrency.RWLock
	threads     []*Thread

	lookupLock concurrency.SpinLock
	lookup     map[uint64]*Thread

	log zerolog.Logger
}

// NewManager constructs an uninitialized manager. Tests run several
// independent instances; production code usually goes through Default.
func NewManager() *Manager {
	return &Manager{log: logging.Component("thread")}
}

// Initialize sets the manager up exactly once: hardware snapshot, worker
// count resolution, both scratch arenas. Repeated or concurrent calls
// beyond the first are no-ops reporting the current state. An arena
// construction failure rolls back to a fully uninitialized manager.
func (m *Manager) Initialize(cfg Config) bool {
	m.initGuard.Lock()
	defer m.initGuard.Unlock()
	if m.initialized {
		return true
	}

	info := hw.Detect()
	cfg = cfg.withDefaults(info)

	threadAlloc, err := pool.NewBump(cfg.ThreadAllocatorSize)
	if err != nil {
		m.log.Error().Err(err).Msg("thread arena construction failed")
		return false
	}
	jobAlloc, err := pool.NewBump(cfg.JobAllocatorSize)
	if err != nil {
		m.log.Error().Err(err).Msg("job arena construction failed")
		return false
	}

	m.config = cfg
	m.hwInfo = info
	m.threadAlloc = threadAlloc
	m.jobAlloc = jobAlloc

	m.lookupLock.Lock()
	m.lookup = make(map[uint64]*Thread)
	m.lookupLock.Unlock()

	m.initialized = true
	m.log.Info().
		Int("workers", cfg.WorkerThreadCount).
		Int("physicalCores", info.PhysicalCores).
		Int("logicalCores", info.LogicalCores).
		Int("numaNodes", info.NUMANodes).
		Msg("thread manager initialized")
	return true
}

// Shutdown tears the manager down: new registrations stop first, every
// owned non-detached thread is joined with a bounded timeout, then the
// lookup table and arenas are released. Idempotent.
func (m *Manager) Shutdown() {
	m.initGuard.Lock()
	if !m.initialized {
		m.initGuard.Unlock()
		return
	}
	m.initialized = false
	m.initGuard.Unlock()

	m.threadsLock.Lock()
	threads := m.threads
	m.threads = nil
	m.threadsLock.Unlock()

	for _, t := range threads {
		if t.isDetached() {
			continue
		}
		if !t.Join(shutdownJoinTimeout) && t.IsRunning() {
			m.log.Warn().Str("thread", t.Name()).Msg("thread did not stop within shutdown timeout")
		}
	}

	m.lookupLock.Lock()
	m.lookup = nil
	m.lookupLock.Unlock()

	m.initGuard.Lock()
	m.threadAlloc = nil
	m.jobAlloc = nil
	m.config = Config{}
	m.hwInfo = hw.Info{}
	m.initGuard.Unlock()

	m.log.Info().Int("joined", len(threads)).Msg("thread manager shut down")
}

// IsInitialized reports the lifecycle state.
func (m *Manager) IsInitialized() bool {
	m.initGuard.Lock()
	defer m.initGuard.Unlock()
	return m.initialized
}

// CreateThread registers a new thread under the manager. Returns nil on
// an uninitialized manager. The thread is not started.
func (m *Manager) CreateThread(desc Desc) *Thread {
	if !m.IsInitialized() {
		return nil
	}
	t := &Thread{
		desc: desc,
		id:   uuid.New(),
		mgr:  m,
		log:  m.log.With().Str("thread", desc.Name).Logger(),
	}
	m.threadsLock.Lock()
	m.threads = append(m.threads, t)
	m.threadsLock.Unlock()
	return t
}

// DestroyThread joins the target (bounded) and removes it from the
// owned collection. Reports whether the thread was managed here.
// Threads owned elsewhere are rejected without joining.
func (m *Manager) DestroyThread(t *Thread) bool {
	if t == nil || !m.owns(t) {
		return false
	}
	t.Join(shutdownJoinTimeout)

	m.threadsLock.Lock()
	defer m.threadsLock.Unlock()
	for i, owned := range m.threads {
		if owned == t {
			m.threads = append(m.threads[:i], m.threads[i+1:]...)
			return true
		}
	}
	return false
}

func (m *Manager) owns(t *Thread) bool {
	m.threadsLock.RLock()
	defer m.threadsLock.RUnlock()
	for _, owned := range m.threads {
		if owned == t {
			return true
		}
	}
	return false
}

// Threads returns a snapshot of the owned collection.
func (m *Manager) Threads() []*Thread {
	m.threadsLock.RLock()
	defer m.threadsLock.RUnlock()
	out := make([]*Thread, len(m.threads))
	copy(out, m.threads)
	return out
}

// ThreadByName returns the first owned thread with the given name, nil
// when absent.
func (m *Manager) ThreadByName(name string) *Thread {
	m.threadsLock.RLock()
	defer m.threadsLock.RUnlock()
	for _, t := range m.threads {
		if t.Name() == name {
			return t
		}
	}
	return nil
}

// Current resolves the calling thread through the identity table. Nil
// for unmanaged threads, including the process's initial thread.
func (m *Manager) Current() *Thread {
	tid := currentThreadID()
	m.lookupLock.Lock()
	t := m.lookup[tid]
	m.lookupLock.Unlock()
	return t
}

// Config returns the resolved configuration, zero when uninitialized.
func (m *Manager) Config() Config {
	m.initGuard.Lock()
	defer m.initGuard.Unlock()
	return m.config
}

// HardwareInfo returns the snapshot taken at Initialize, zero when
// uninitialized.
func (m *Manager) HardwareInfo() hw.Info {
	m.initGuard.Lock()
	defer m.initGuard.Unlock()
	return m.hwInfo
}

// ThreadAllocator returns the per-thread scratch arena, nil when
// uninitialized. Borrowed, never freed by callers.
func (m *Manager) ThreadAllocator() *pool.Bump {
	m.initGuard.Lock()
	defer m.initGuard.Unlock()
	return m.threadAlloc
}

// JobAllocator returns the per-job scratch arena, nil when
// uninitialized. Borrowed, never freed by callers.
func (m *Manager) JobAllocator() *pool.Bump {
	m.initGuard.Lock()
	defer m.initGuard.Unlock()
	return m.jobAlloc
}

// Stats returns registry counters.
func (m *Manager) Stats() map[string]int64 {
	m.threadsLock.RLock()
	total := len(m.threads)
	running := 0
	for _, t := range m.threads {
		if t.IsRunning() {
			running++
		}
	}
	m.threadsLock.RUnlock()
	return map[string]int64{
		"threads":         int64(total),
		"running_threads": int64(running),
	}
}

// register binds an OS thread id to its Thread for the duration of the
// worker body. Non-owning back-reference.
func (m *Manager) register(tid uint64, t *Thread) {
	m.lookupLock.Lock()
	if m.lookup != nil {
		m.lookup[tid] = t
	}
	m.lookupLock.Unlock()
}

func (m *Manager) deregister(tid uint64) {
	m.lookupLock.Lock()
	if m.lookup != nil {
		delete(m.lookup, tid)
	}
	m.lookupLock.Unlock()
}
