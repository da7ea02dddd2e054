// Package cache provides a generic, thread-safe LRU (Least Recently Used)
// cache.
//
// The cache evicts the least recently used item once it grows past its
// capacity, which keeps memoization tables bounded. Within this module it
// backs the struct field index lookups of the locator package and the
// in-memory report store.
//
// # Usage
//
//	c := cache.New[string, *report.Report](256)
//
//	c.Put(run.ID, run)
//	r, found := c.Get(run.ID)
//
//	// Memoize an expensive computation
//	idx := c.Load(key, func() []int { return lookup(key) })
//
// Eviction callbacks are useful when evicted values need cleanup:
//
//	c := cache.New[string, *os.File](16, cache.WithEvictCallback(func(_ string, f *os.File) {
//		f.Close()
//	}))
//
// # Thread Safety
//
// All operations lock an internal mutex and can be called from multiple
// goroutines. Get, Put and Remove are O(1).
package cache
