//go:build linux
// +build linux

// File: thread/thread_linux.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Linux thread identity, naming, priority and affinity. Pure Go over
// golang.org/x/sys; every call targets the calling thread, which the
// worker wrapper has already locked.

package thread

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"
)

// taskCommLen is the kernel limit for thread names, including the NUL.
const taskCommLen = 16

func currentThreadID() uint64 {
	return uint64(unix.Gettid())
}

func applyThreadName(name string) {
	if name == "" {
		return
	}
	if len(name) >= taskCommLen {
		name = name[:taskCommLen-1]
	}
	buf := make([]byte, len(name)+1)
	copy(buf, name)
	_ = unix.Prctl(unix.PR_SET_NAME, uintptr(unsafe.Pointer(&buf[0])), 0, 0, 0)
}

// niceLevels maps requested priorities onto nice values. Negative nice
// requires CAP_SYS_NICE; Setpriority reports that and the caller logs it.
var niceLevels = map[Priority]int{
	PriorityIdle:     19,
	PriorityLow:      10,
	PriorityNormal:   0,
	PriorityHigh:     -10,
	PriorityCritical: -20,
}

func applyPriority(p Priority) error {
	nice, ok := niceLevels[p]
	if !ok {
		return fmt.Errorf("thread: unknown priority %d", int(p))
	}
	if nice == 0 {
		return nil
	}
	if err := unix.Setpriority(unix.PRIO_PROCESS, unix.Gettid(), nice); err != nil {
		return fmt.Errorf("thread: setpriority(%d): %w", nice, err)
	}
	return nil
}

func applyAffinityMask(mask uint64) error {
	if mask == 0 {
		return nil
	}
	var set unix.CPUSet
	for cpu := 0; cpu < 64; cpu++ {
		if mask&(1<<uint(cpu)) != 0 {
			set.Set(cpu)
		}
	}
	if err := unix.SchedSetaffinity(0, &set); err != nil {
		return fmt.Errorf("thread: sched_setaffinity(%#x): %w", mask, err)
	}
	return nil
}
