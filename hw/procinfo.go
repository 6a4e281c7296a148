// File: hw/procinfo.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Record walk for SYSTEM_LOGICAL_PROCESSOR_INFORMATION_EX buffers as
// returned by GetLogicalProcessorInformationEx. Kept free of build tags
// so the parsing stays testable on every platform.

package hw

import "encoding/binary"

const (
	// relationProcessorCore selects per-core records.
	relationProcessorCore = 0

	// relationRecordHeaderLen covers the Relationship and Size fields
	// that prefix every record.
	relationRecordHeaderLen = 8
)

// countRelationRecords walks the variable-length records in buf and
// counts those matching relationship. Truncated or zero-sized records
// end the walk.
func countRelationRecords(buf []byte, relationship uint32) int {
	count := 0
	for off := 0; off+relationRecordHeaderLen <= len(buf); {
		rel := binary.LittleEndian.Uint32(buf[off:])
		size := int(binary.LittleEndian.Uint32(buf[off+4:]))
		if size < relationRecordHeaderLen || off+size > len(buf) {
			break
		}
		if rel == relationship {
			count++
		}
		off += size
	}
	return count
}
