package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLRUStats(t *testing.T) {
	c := NewLRU[int](2)

	set(c, "a", 1) // miss
	c.Get("a")
	c.Get("a")
	c.Get("missing")
	set(c, "b", 2) // miss
	set(c, "c", 3) // miss, evicts a

	stats := c.Stats()
	assert.Equal(t, int64(2), stats.Hits)
	assert.Equal(t, int64(4), stats.Misses)
	assert.Equal(t, int64(1), stats.Evictions)
	assert.Equal(t, 2, stats.Entries)
	assert.Equal(t, int64(6), stats.TotalRequests())
	assert.InDelta(t, 2.0/6.0, stats.HitRate(), 1e-9)
}

func TestStatsEmptyHitRate(t *testing.T) {
	assert.Equal(t, 0.0, Stats{}.HitRate())
}

func TestShardedStats(t *testing.T) {
	s := NewSharded[int](4, 64)

	calls := 0
	for i := 0; i < 3; i++ {
		s.GetOrCreate("needle", func() int {
			calls++
			return 1
		})
	}

	stats := s.Stats()
	assert.Equal(t, 1, calls)
	assert.Equal(t, int64(2), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
	assert.Equal(t, 1, stats.Entries)
	assert.Equal(t, "entries=1 hits=2 misses=1 evictions=0 hit_rate=0.67", stats.String())
}
