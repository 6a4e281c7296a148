// File: concurrency/semaphore_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package concurrency

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSemaphoreAcquireRelease(t *testing.T) {
	s := NewSemaphore(2, 4)
	require.Equal(t, 2, s.Count())
	require.Equal(t, 4, s.Max())

	require.True(t, s.TryAcquire())
	require.True(t, s.TryAcquire())
	assert.False(t, s.TryAcquire(), "count exhausted")

	assert.Equal(t, 2, s.Release(2))
	assert.True(t, s.TryAcquire())
}

func TestSemaphoreReleaseCapsAtMax(t *testing.T) {
	s := NewSemaphore(0, 2)
	assert.Equal(t, 2, s.Release(5), "permits beyond max are discarded")
	assert.Equal(t, 2, s.Count())
}

func TestSemaphoreBlockedAcquireWokenByRelease(t *testing.T) {
	s := NewSemaphore(0, 1)

	got := make(chan bool, 1)
	go func() {
		got <- s.Acquire(5 * time.Second)
	}()

	time.Sleep(50 * time.Millisecond)
	s.Release(1)

	select {
	case ok := <-got:
		assert.True(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("acquire never woke")
	}
}

func TestSemaphoreAcquireTimeout(t *testing.T) {
	s := NewSemaphore(0, 1)
	start := time.Now()
	require.False(t, s.Acquire(50*time.Millisecond))
	assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
}

func TestSemaphorePermitConservation(t *testing.T) {
	const permits = 3
	const goroutines = 10
	s := NewSemaphore(permits, permits)

	var inside atomic.Int32
	var peak atomic.Int32
	var wg sync.WaitGroup

	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				if !s.Acquire(5 * time.Second) {
					t.Error("acquire timed out")
					return
				}
				n := inside.Add(1)
				for {
					p := peak.Load()
					if n <= p || peak.CompareAndSwap(p, n) {
						break
					}
				}
				inside.Add(-1)
				s.Release(1)
			}
		}()
	}
	wg.Wait()

	assert.LessOrEqual(t, peak.Load(), int32(permits))
	assert.Equal(t, permits, s.Count())
}
