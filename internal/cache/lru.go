package cache

import (
	"container/list"
	"sync"
	"sync/atomic"

	"github.com/cespare/xxhash/v2"
)

// LRU is a thread-safe least-recently-used cache with a maximum size
type LRU[V any] struct {
	maxSize int
	mu      sync.Mutex
	items   map[string]*list.Element
	order   *list.List

	hits      atomic.Int64
	misses    atomic.Int64
	evictions atomic.Int64
}

// entry represents an entry in the cache
type entry[V any] struct {
	key   string
	value V
}

// NewLRU creates a new LRU cache with the specified maximum size
func NewLRU[V any](maxSize int) *LRU[V] {
	if maxSize <= 0 {
		maxSize = 100 // Default size
	}
	return &LRU[V]{
		maxSize: maxSize,
		items:   make(map[string]*list.Element),
		order:   list.New(),
	}
}

// Get retrieves a value from the cache and marks it as recently used
func (c *LRU[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		c.order.MoveToFront(elem)
		c.hits.Add(1)
		return elem.Value.(*entry[V]).value, true
	}
	c.misses.Add(1)
	var zero V
	return zero, false
}

// GetOrCreate returns the cached value for key, computing and storing it with
// create on a miss. The first stored value wins: a concurrent caller that
// computed a value for the same key receives the stored one.
func (c *LRU[V]) GetOrCreate(key string, create func() V) V {
	if v, ok := c.Get(key); ok {
		return v
	}

	// Computed outside the lock; create may be expensive
	value := create()

	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		c.order.MoveToFront(elem)
		return elem.Value.(*entry[V]).value
	}
	c.insert(key, value)
	return value
}

// insert adds a new entry and evicts the oldest one if over capacity.
// Caller must hold the lock.
func (c *LRU[V]) insert(key string, value V) {
	elem := c.order.PushFront(&entry[V]{key: key, value: value})
	c.items[key] = elem

	if c.order.Len() > c.maxSize {
		oldest := c.order.Back()
		if oldest != nil {
			c.order.Remove(oldest)
			delete(c.items, oldest.Value.(*entry[V]).key)
			c.evictions.Add(1)
		}
	}
}

// Size returns the current number of items in the cache
func (c *LRU[V]) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Sharded spreads keys over several LRU caches to reduce lock contention
// between concurrent lookups. Shards are chosen by xxhash of the key.
type Sharded[V any] struct {
	shards []*LRU[V]
}

// NewSharded creates a sharded cache holding roughly maxSize entries in total
func NewSharded[V any](shards, maxSize int) *Sharded[V] {
	if shards <= 0 {
		shards = 16
	}
	perShard := maxSize / shards
	if perShard <= 0 {
		perShard = 1
	}

	s := &Sharded[V]{shards: make([]*LRU[V], shards)}
	for i := range s.shards {
		s.shards[i] = NewLRU[V](perShard)
	}
	return s
}

func (s *Sharded[V]) shard(key string) *LRU[V] {
	return s.shards[xxhash.Sum64String(key)%uint64(len(s.shards))]
}

// GetOrCreate returns the cached value or stores the result of create
func (s *Sharded[V]) GetOrCreate(key string, create func() V) V {
	return s.shard(key).GetOrCreate(key, create)
}

// Size returns the number of entries across all shards
func (s *Sharded[V]) Size() int {
	total := 0
	for _, shard := range s.shards {
		total += shard.Size()
	}
	return total
}

// Stats returns counters summed over every shard
func (s *Sharded[V]) Stats() Stats {
	var total Stats
	for _, shard := range s.shards {
		total = total.merge(shard.Stats())
	}
	return total
}
