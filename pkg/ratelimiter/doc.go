// Package ratelimiter meters validation requests with a token bucket.
//
// A Bucket holds Capacity tokens per key and adds RefillRate tokens every
// RefillInterval. Each request takes one token; a request that finds too few
// tokens is denied without consuming any. State lives in a Store: MemoryStore
// for a single replica, RedisStore when several replicas share one budget.
//
//	store := ratelimiter.NewMemoryStore()
//	defer store.Close()
//	bucket, err := ratelimiter.NewBucket(store, cfg)
//	res, err := bucket.Allow(ctx, clientip.FromContext(ctx))
//	if !res.Allowed() {
//		// answer 429 with res.RetryAfter()
//	}
package ratelimiter
