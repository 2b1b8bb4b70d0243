// ABOUTME: Tests for the self-write suppression cache
// ABOUTME: Validates TTL expiration, size limits, refresh-on-mark and concurrency safety

package dedupe

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCache_NotSeen(t *testing.T) {
	cache := New(5*time.Minute, 100)
	defer cache.Close()

	assert.False(t, cache.Seen("never-marked"))
}

func TestCache_Seen(t *testing.T) {
	cache := New(5*time.Minute, 100)
	defer cache.Close()

	cache.Mark("hash-1")
	assert.True(t, cache.Seen("hash-1"))
}

func TestCache_Expires(t *testing.T) {
	cache := New(10*time.Millisecond, 100)
	defer cache.Close()

	cache.Mark("short-lived")
	assert.True(t, cache.Seen("short-lived"))

	time.Sleep(20 * time.Millisecond)
	assert.False(t, cache.Seen("short-lived"))
}

func TestCache_MarkRefreshesWindow(t *testing.T) {
	cache := New(40*time.Millisecond, 100)
	defer cache.Close()

	cache.Mark("refreshed")
	time.Sleep(25 * time.Millisecond)
	cache.Mark("refreshed")
	time.Sleep(25 * time.Millisecond)

	// 50ms after first mark but only 25ms after the refresh
	assert.True(t, cache.Seen("refreshed"))
}

func TestCache_EvictsOldestAtCapacity(t *testing.T) {
	cache := New(5*time.Minute, 3)
	defer cache.Close()

	cache.Mark("a")
	cache.Mark("b")
	cache.Mark("c")
	cache.Mark("d")

	assert.False(t, cache.Seen("a"))
	assert.True(t, cache.Seen("b"))
	assert.True(t, cache.Seen("d"))
	assert.Equal(t, 3, cache.Len())
}

func TestCache_Concurrency(t *testing.T) {
	cache := New(time.Minute, 1000)
	defer cache.Close()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				key := fmt.Sprintf("worker-%d-%d", n, j)
				cache.Mark(key)
				cache.Seen(key)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1000, cache.Len())
}

func TestCache_CloseTwice(t *testing.T) {
	cache := New(time.Minute, 10)
	cache.Close()
	cache.Close()
}
