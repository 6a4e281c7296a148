// File: thread/desc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package thread

// Priority is the requested scheduling priority of a thread. The
// platform mapping is best effort: raising priority may require
// privileges and failures are logged, not fatal.
type Priority int

const (
	PriorityIdle Priority = iota
	PriorityLow
	PriorityNormal
	PriorityHigh
	PriorityCritical
)

func (p Priority) String() string {
	switch p {
	case PriorityIdle:
		return "idle"
	case PriorityLow:
		return "low"
	case PriorityNormal:
		return "normal"
	case PriorityHigh:
		return "high"
	case PriorityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// Desc describes a thread to be created. The zero value requests an
// unnamed normal-priority thread with no affinity constraint.
type Desc struct {
	Name     string
	Priority Priority

	// AffinityMask pins the thread to the set cores; 0 means no
	// constraint.
	AffinityMask uint64

	// Tag is a free-form logical thread-type label (worker, io, ...).
	Tag string
}
