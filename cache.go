package arith

import (
	"container/list"
	"sync"

	"github.com/cespare/xxhash/v2"
)

// DefaultCacheSize is the capacity of a Cache created with a non-positive
// capacity.
const DefaultCacheSize = 256

// Cache evaluates expressions, keeping the most recently used parse trees so
// that repeated sources are not parsed again. Parse errors are cached as well.
// It is safe to use a Cache concurrently.
type Cache struct {
	mu    sync.Mutex
	cap   int
	ll    *list.List
	items map[uint64]*list.Element
	opts  []ParseOption
}

// entry is a cached parse. mu serializes evaluations of expr, since evaluation
// writes results into the tree.
type entry struct {
	key  uint64
	src  string
	mu   sync.Mutex
	expr *Expr
	err  error
}

// NewCache creates a cache holding up to capacity parsed expressions. The
// parse options apply to every expression parsed by the cache.
func NewCache(capacity int, opts ...ParseOption) *Cache {
	if capacity <= 0 {
		capacity = DefaultCacheSize
	}
	return &Cache{
		cap:   capacity,
		ll:    list.New(),
		items: make(map[uint64]*list.Element, capacity),
		opts:  append([]ParseOption(nil), opts...),
	}
}

// Eval parses src if it is not cached and evaluates it.
func (c *Cache) Eval(src string) (float64, error) {
	ent := c.get(src)
	ent.mu.Lock()
	defer ent.mu.Unlock()
	if ent.err != nil {
		return 0, ent.err
	}
	return ent.expr.Eval()
}

// Render parses src if it is not cached and returns the expression as String
// formats it.
func (c *Cache) Render(src string) (string, error) {
	ent := c.get(src)
	ent.mu.Lock()
	defer ent.mu.Unlock()
	if ent.err != nil {
		return "", ent.err
	}
	return ent.expr.String(), nil
}

// get returns the entry for src, parsing and inserting it if needed.
func (c *Cache) get(src string) *entry {
	key := xxhash.Sum64String(src)
	c.mu.Lock()
	if el, ok := c.items[key]; ok {
		ent := el.Value.(*entry)
		if ent.src == src {
			c.ll.MoveToFront(el)
			c.mu.Unlock()
			return ent
		}
		// Hash collision. The newer source replaces the older.
		c.ll.Remove(el)
		delete(c.items, key)
	}
	c.mu.Unlock()

	// Parse outside the lock. If another goroutine races us for the same
	// source, the last insert wins and both results are equivalent.
	ent := &entry{key: key, src: src}
	ent.expr, ent.err = Parse(src, c.opts...)

	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.items[key]; ok {
		c.ll.Remove(el)
	}
	c.items[key] = c.ll.PushFront(ent)
	for c.ll.Len() > c.cap {
		c.evictLocked()
	}
	return ent
}

// evictLocked removes the least recently used entry. c.mu must be held.
func (c *Cache) evictLocked() {
	el := c.ll.Back()
	if el == nil {
		return
	}
	c.ll.Remove(el)
	delete(c.items, el.Value.(*entry).key)
}

// Len returns the number of cached expressions.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ll.Len()
}

// Clear removes all cached expressions.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ll.Init()
	c.items = make(map[uint64]*list.Element, c.cap)
}
