//go:build linux
// +build linux

// File: hw/hw_linux.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Linux topology probe over sysfs and sched_getaffinity. Pure Go, no cgo;
// hosts with sysfs hidden (some containers) fall back to the flat model
// in Detect.

package hw

import (
	"os"
	"strconv"
	"strings"

	"golang.org/x/sys/unix"
)

const (
	sysCPUDir  = "/sys/devices/system/cpu"
	sysNodeDir = "/sys/devices/system/node"
)

func detectPlatform() Info {
	var info Info
	info.LogicalCores = countSysEntries(sysCPUDir, "cpu")

	// A cgroup cpuset or taskset may restrict the process to a subset
	// of the host; the scheduler mask wins over raw sysfs counts.
	var set unix.CPUSet
	if err := unix.SchedGetaffinity(0, &set); err == nil {
		if n := set.Count(); n > 0 && (info.LogicalCores == 0 || n < info.LogicalCores) {
			info.LogicalCores = n
		}
	}

	info.PhysicalCores = countPhysicalCores(info.LogicalCores)
	info.NUMANodes = countSysEntries(sysNodeDir, "node")
	return info
}

// countSysEntries counts directories named <prefix><digits> under dir.
func countSysEntries(dir, prefix string) int {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0
	}
	n := 0
	for _, e := range entries {
		name := e.Name()
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		if _, err := strconv.Atoi(name[len(prefix):]); err == nil {
			n++
		}
	}
	return n
}

// countPhysicalCores counts unique (package, core) pairs across logical CPUs.
func countPhysicalCores(logical int) int {
	seen := make(map[[2]int]struct{}, logical)
	for cpu := 0; cpu < logical; cpu++ {
		base := sysCPUDir + "/cpu" + strconv.Itoa(cpu) + "/topology/"
		pkg, err1 := readSysInt(base + "physical_package_id")
		core, err2 := readSysInt(base + "core_id")
		if err1 != nil || err2 != nil {
			return 0
		}
		seen[[2]int{pkg, core}] = struct{}{}
	}
	return len(seen)
}

func readSysInt(path string) (int, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(strings.TrimSpace(string(raw)))
}
