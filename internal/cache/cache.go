package cache

import (
	"container/list"
	"strings"
	"sync"
)

// DefaultMaxEntries bounds a result cache unless the caller injects a
// different limit.
const DefaultMaxEntries = 20

// FIFOCache is a bounded, mutex-guarded key-value cache with
// oldest-inserted-first eviction. Unlike an LRU, Get does not refresh an
// entry's position: once the bound is exceeded the entry that was
// inserted first is evicted regardless of how often it was read.
type FIFOCache[T any] struct {
	mu       sync.Mutex
	maxSize  int
	items    map[string]*list.Element
	inserted *list.List
}

type cacheEntry[T any] struct {
	key  string
	data T
}

// NewFIFOCache creates a cache bounded to maxSize entries. A non-positive
// maxSize falls back to DefaultMaxEntries.
func NewFIFOCache[T any](maxSize int) *FIFOCache[T] {
	if maxSize <= 0 {
		maxSize = DefaultMaxEntries
	}
	return &FIFOCache[T]{
		maxSize:  maxSize,
		items:    make(map[string]*list.Element),
		inserted: list.New(),
	}
}

// Get retrieves a value from the cache.
func (c *FIFOCache[T]) Get(key string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	elem, exists := c.items[key]
	if !exists {
		return zero, false
	}
	return elem.Value.(*cacheEntry[T]).data, true
}

// Set stores a value. Overwriting an existing key keeps its original
// insertion position; a new key goes to the back of the eviction queue
// and may push the oldest entry out.
func (c *FIFOCache[T]) Set(key string, data T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, exists := c.items[key]; exists {
		elem.Value.(*cacheEntry[T]).data = data
		return
	}

	elem := c.inserted.PushBack(&cacheEntry[T]{key: key, data: data})
	c.items[key] = elem

	if c.inserted.Len() > c.maxSize {
		oldest := c.inserted.Front()
		if oldest != nil {
			c.removeElement(oldest)
		}
	}
}

// Delete removes a key from the cache.
func (c *FIFOCache[T]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, exists := c.items[key]; exists {
		c.removeElement(elem)
	}
}

// ClearScope removes every entry whose key starts with the given prefix
// and returns how many were removed. Used to invalidate one financial
// year without touching the rest of the cache.
func (c *FIFOCache[T]) ClearScope(scopePrefix string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	var toRemove []*list.Element
	for elem := c.inserted.Front(); elem != nil; elem = elem.Next() {
		if strings.HasPrefix(elem.Value.(*cacheEntry[T]).key, scopePrefix) {
			toRemove = append(toRemove, elem)
		}
	}
	for _, elem := range toRemove {
		c.removeElement(elem)
	}
	return len(toRemove)
}

// ClearAll empties the cache.
func (c *FIFOCache[T]) ClearAll() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[string]*list.Element)
	c.inserted.Init()
}

// Size returns the current number of items in the cache.
func (c *FIFOCache[T]) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

func (c *FIFOCache[T]) removeElement(elem *list.Element) {
	entry := elem.Value.(*cacheEntry[T])
	delete(c.items, entry.key)
	c.inserted.Remove(elem)
}
