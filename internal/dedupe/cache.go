// ABOUTME: Thread-safe TTL cache of content hashes the engine wrote to the clipboard itself
// ABOUTME: Used by the watcher so a paste or copy is not re-captured as a new history entry

// Package dedupe tracks recently self-written clipboard fingerprints so the
// capture loop can tell the engine's own clipboard writes apart from real
// user copies within a short suppression window.
package dedupe

import (
	"container/list"
	"sync"
	"time"
)

type cacheEntry struct {
	timestamp time.Time
	element   *list.Element
}

// Cache is a thread-safe, TTL-based, size-limited set of content hashes.
// Uses a doubly-linked list to maintain insertion order for O(1) eviction.
type Cache struct {
	mu      sync.RWMutex
	seen    map[string]*cacheEntry
	order   *list.List // hashes in insertion order, oldest at front
	ttl     time.Duration
	maxSize int
	done    chan struct{}
	closed  bool
}

// New creates a suppression cache with the given TTL and maximum size.
// A background goroutine periodically cleans up expired entries.
func New(ttl time.Duration, maxSize int) *Cache {
	c := &Cache{
		seen:    make(map[string]*cacheEntry),
		order:   list.New(),
		ttl:     ttl,
		maxSize: maxSize,
		done:    make(chan struct{}),
	}
	go c.cleanup()
	return c
}

// Seen reports whether the hash was marked within the TTL window
func (c *Cache) Seen(hash string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.seen[hash]
	if !ok {
		return false
	}
	return time.Since(entry.timestamp) < c.ttl
}

// Mark records that the engine just wrote content with this hash. Marking
// an existing hash refreshes its window. At capacity the oldest entry is
// evicted to make room.
func (c *Cache) Mark(hash string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	if entry, exists := c.seen[hash]; exists {
		entry.timestamp = now
		c.order.MoveToBack(entry.element)
		return
	}

	if len(c.seen) >= c.maxSize {
		c.evictOldest()
	}

	elem := c.order.PushBack(hash)
	c.seen[hash] = &cacheEntry{timestamp: now, element: elem}
}

// evictOldest removes the oldest entry. Must be called with mu held.
func (c *Cache) evictOldest() {
	front := c.order.Front()
	if front == nil {
		return
	}
	hash := front.Value.(string)
	c.order.Remove(front)
	delete(c.seen, hash)
}

// Len returns the number of tracked hashes, expired ones included
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.seen)
}

// cleanup periodically drops expired entries so the cache doesn't pin
// memory between captures.
func (c *Cache) cleanup() {
	interval := c.ttl
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			c.removeExpired()
		}
	}
}

func (c *Cache) removeExpired() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for elem := c.order.Front(); elem != nil; {
		next := elem.Next()
		hash := elem.Value.(string)
		entry := c.seen[hash]
		if now.Sub(entry.timestamp) >= c.ttl {
			c.order.Remove(elem)
			delete(c.seen, hash)
		}
		elem = next
	}
}

// Close stops the cleanup goroutine. Safe to call more than once.
func (c *Cache) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.done)
}
