//go:build !linux && !windows
// +build !linux,!windows

// File: hw/hw_stub.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Stub probe for platforms without a native topology query. Detect fills
// in the flat model.

package hw

func detectPlatform() Info {
	return Info{}
}
