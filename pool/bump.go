// File: pool/bump.go
// Package pool implements the scratch arenas owned by the thread manager.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Bump is a fixed-capacity linear allocator: Alloc advances an offset
// with a CAS loop and never frees individual blocks; Reset reclaims the
// whole arena at once. Callers borrow slices and must not hold them
// across Reset or manager shutdown.

package pool

import (
	"errors"
	"sync/atomic"
)

// ErrInvalidArenaSize reports a non-positive arena size.
var ErrInvalidArenaSize = errors.New("pool: arena size must be positive")

// allocAlign keeps every block 8-byte aligned.
const allocAlign = 8

// Bump is a concurrent bump allocator over a fixed byte arena.
type Bump struct {
	buf []byte
	off atomic.Uint64

	allocs atomic.Uint64
	fails  atomic.Uint64
	resets atomic.Uint64
}

// NewBump allocates an arena of the given size in bytes.
func NewBump(size int) (*Bump, error) {
	if size <= 0 {
		return nil, ErrInvalidArenaSize
	}
	return &Bump{buf: make([]byte, size)}, nil
}

// Alloc carves n bytes out of the arena, or nil when the arena is
// exhausted or n is not positive. Safe for concurrent callers.
func (b *Bump) Alloc(n int) []byte {
	if n <= 0 {
		return nil
	}
	need := uint64((n + allocAlign - 1) &^ (allocAlign - 1))
	for {
		off := b.off.Load()
		end := off + need
		if end > uint64(len(b.buf)) {
			b.fails.Add(1)
			return nil
		}
		if b.off.CompareAndSwap(off, end) {
			b.allocs.Add(1)
			return b.buf[off : off+uint64(n) : end]
		}
	}
}

// Reset reclaims the whole arena. The caller must guarantee no borrowed
// block is still in use.
func (b *Bump) Reset() {
	b.off.Store(0)
	b.resets.Add(1)
}

// Size returns the arena capacity in bytes.
func (b *Bump) Size() int { return len(b.buf) }

// Used returns the bytes currently carved out; advisory under
// concurrent allocation.
func (b *Bump) Used() int { return int(b.off.Load()) }

// Stats returns allocator counters.
func (b *Bump) Stats() map[string]uint64 {
	return map[string]uint64{
		"size":   uint64(len(b.buf)),
		"used":   b.off.Load(),
		"allocs": b.allocs.Load(),
		"fails":  b.fails.Load(),
		"resets": b.resets.Load(),
	}
}
