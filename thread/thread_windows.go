//go:build windows
// +build windows

// File: thread/thread_windows.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Windows thread identity, naming, priority and affinity through lazy
// kernel32 procs, mirroring the NUMA helpers elsewhere in the family.

package thread

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	modkernel32               = windows.NewLazySystemDLL("kernel32.dll")
	procGetCurrentThread      = modkernel32.NewProc("GetCurrentThread")
	procGetCurrentThreadId    = modkernel32.NewProc("GetCurrentThreadId")
	procSetThreadPriority     = modkernel32.NewProc("SetThreadPriority")
	procSetThreadAffinityMask = modkernel32.NewProc("SetThreadAffinityMask")
	procSetThreadDescription  = modkernel32.NewProc("SetThreadDescription")
)

// Win32 THREAD_PRIORITY_* levels.
var priorityLevels = map[Priority]int32{
	PriorityIdle:     -15,
	PriorityLow:      -1,
	PriorityNormal:   0,
	PriorityHigh:     2,
	PriorityCritical: 15,
}

func currentThreadID() uint64 {
	tid, _, _ := procGetCurrentThreadId.Call()
	return uint64(tid)
}

func applyThreadName(name string) {
	if name == "" {
		return
	}
	desc, err := windows.UTF16PtrFromString(name)
	if err != nil {
		return
	}
	handle, _, _ := procGetCurrentThread.Call()
	_, _, _ = procSetThreadDescription.Call(handle, uintptr(unsafe.Pointer(desc)))
}

func applyPriority(p Priority) error {
	level, ok := priorityLevels[p]
	if !ok {
		return fmt.Errorf("thread: unknown priority %d", int(p))
	}
	if level == 0 {
		return nil
	}
	handle, _, _ := procGetCurrentThread.Call()
	ret, _, err := procSetThreadPriority.Call(handle, uintptr(level))
	if ret == 0 {
		return fmt.Errorf("thread: SetThreadPriority(%d): %w", level, err)
	}
	return nil
}

func applyAffinityMask(mask uint64) error {
	if mask == 0 {
		return nil
	}
	handle, _, _ := procGetCurrentThread.Call()
	old, _, err := procSetThreadAffinityMask.Call(handle, uintptr(mask))
	if old == 0 {
		return fmt.Errorf("thread: SetThreadAffinityMask(%#x): %w", mask, err)
	}
	return nil
}
