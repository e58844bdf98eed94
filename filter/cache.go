package filter

import "sync"

// recencyCache keeps the most recently used values up to a fixed capacity.
// Entries form a ring around a sentinel: root.next is the newest, root.prev
// the next to be evicted.
type recencyCache[K comparable, V any] struct {
	mu       sync.Mutex
	capacity int
	byKey    map[K]*slot[K, V]
	root     slot[K, V]
}

type slot[K comparable, V any] struct {
	key        K
	val        V
	prev, next *slot[K, V]
}

func newRecencyCache[K comparable, V any](capacity int) *recencyCache[K, V] {
	c := &recencyCache[K, V]{capacity: capacity}
	c.reset()
	return c
}

func (c *recencyCache[K, V]) reset() {
	c.byKey = make(map[K]*slot[K, V], c.capacity)
	c.root.next = &c.root
	c.root.prev = &c.root
}

func (c *recencyCache[K, V]) unlink(s *slot[K, V]) {
	s.prev.next = s.next
	s.next.prev = s.prev
}

func (c *recencyCache[K, V]) pushNewest(s *slot[K, V]) {
	s.prev = &c.root
	s.next = c.root.next
	c.root.next.prev = s
	c.root.next = s
}

// Get returns the value for key and marks it newest
func (c *recencyCache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, ok := c.byKey[key]
	if !ok {
		var zero V
		return zero, false
	}
	c.unlink(s)
	c.pushNewest(s)
	return s.val, true
}

// Put stores val under key, evicting the oldest entry once over capacity
func (c *recencyCache[K, V]) Put(key K, val V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if s, ok := c.byKey[key]; ok {
		s.val = val
		c.unlink(s)
		c.pushNewest(s)
		return
	}

	s := &slot[K, V]{key: key, val: val}
	c.byKey[key] = s
	c.pushNewest(s)

	if len(c.byKey) > c.capacity {
		oldest := c.root.prev
		c.unlink(oldest)
		delete(c.byKey, oldest.key)
	}
}

// Keys lists the cached keys, newest first
func (c *recencyCache[K, V]) Keys() []K {
	c.mu.Lock()
	defer c.mu.Unlock()

	keys := make([]K, 0, len(c.byKey))
	for s := c.root.next; s != &c.root; s = s.next {
		keys = append(keys, s.key)
	}
	return keys
}

func (c *recencyCache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reset()
}

func (c *recencyCache[K, V]) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.byKey)
}
