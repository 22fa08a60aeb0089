package cache

import "fmt"

// Stats holds cache statistics
type Stats struct {
	Hits      int64
	Misses    int64
	Evictions int64
	Entries   int
}

// Stats returns the cache counters
func (c *LRU[V]) Stats() Stats {
	return Stats{
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
		Entries:   c.Size(),
	}
}

// TotalRequests is the number of Get calls, counting those made by GetOrCreate
func (s Stats) TotalRequests() int64 {
	return s.Hits + s.Misses
}

// HitRate returns the share of requests served from the cache
func (s Stats) HitRate() float64 {
	total := s.TotalRequests()
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

func (s Stats) merge(other Stats) Stats {
	return Stats{
		Hits:      s.Hits + other.Hits,
		Misses:    s.Misses + other.Misses,
		Evictions: s.Evictions + other.Evictions,
		Entries:   s.Entries + other.Entries,
	}
}

// String returns a human-readable representation of the statistics
func (s Stats) String() string {
	return fmt.Sprintf("entries=%d hits=%d misses=%d evictions=%d hit_rate=%.2f",
		s.Entries, s.Hits, s.Misses, s.Evictions, s.HitRate())
}
