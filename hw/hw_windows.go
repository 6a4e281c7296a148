//go:build windows
// +build windows

// File: hw/hw_windows.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Windows topology probe over kernel32. Physical cores are counted by
// walking the variable-length RelationProcessorCore records returned by
// GetLogicalProcessorInformationEx; SMT then falls out of the logical
// versus physical comparison in Detect.

package hw

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	modkernel32                          = windows.NewLazySystemDLL("kernel32.dll")
	procGetActiveProcessorCount          = modkernel32.NewProc("GetActiveProcessorCount")
	procGetNumaHighestNodeNumber         = modkernel32.NewProc("GetNumaHighestNodeNumber")
	procGetLogicalProcessorInformationEx = modkernel32.NewProc("GetLogicalProcessorInformationEx")
)

// allProcessorGroups is the ALL_PROCESSOR_GROUPS sentinel.
const allProcessorGroups = 0xffff

func detectPlatform() Info {
	var info Info

	count, _, _ := procGetActiveProcessorCount.Call(uintptr(allProcessorGroups))
	info.LogicalCores = int(count)
	info.PhysicalCores = countPhysicalCores()

	var highest uint32
	ret, _, _ := procGetNumaHighestNodeNumber.Call(uintptr(unsafe.Pointer(&highest)))
	if ret != 0 {
		info.NUMANodes = int(highest) + 1
	}
	return info
}

// countPhysicalCores returns the number of RelationProcessorCore records,
// or 0 when the query fails (Detect then falls back to the flat model).
func countPhysicalCores() int {
	var length uint32
	ret, _, _ := procGetLogicalProcessorInformationEx.Call(
		uintptr(relationProcessorCore), 0, uintptr(unsafe.Pointer(&length)))
	if ret != 0 || length == 0 {
		return 0
	}
	buf := make([]byte, length)
	ret, _, _ = procGetLogicalProcessorInformationEx.Call(
		uintptr(relationProcessorCore),
		uintptr(unsafe.Pointer(&buf[0])),
		uintptr(unsafe.Pointer(&length)))
	if ret == 0 {
		return 0
	}
	if int(length) < len(buf) {
		buf = buf[:length]
	}
	return countRelationRecords(buf, relationProcessorCore)
}
