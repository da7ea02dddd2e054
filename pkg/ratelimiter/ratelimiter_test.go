package ratelimiter_test

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/pvframework/pkg/ratelimiter"
	"github.com/dmitrymomot/pvframework/pkg/redis"
)

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

var testConfig = ratelimiter.Config{Capacity: 3, RefillRate: 1, RefillInterval: time.Second}

func newBucket(t *testing.T) (*ratelimiter.Bucket, *ratelimiter.MemoryStore, *clock) {
	t.Helper()
	clk := &clock{now: time.Now()}
	store := ratelimiter.NewMemoryStore(ratelimiter.WithClock(clk.Now), ratelimiter.WithSweepInterval(0))
	t.Cleanup(store.Close)
	b, err := ratelimiter.NewBucket(store, testConfig)
	require.NoError(t, err)
	return b, store, clk
}

func TestBucket_TakeAndRefill(t *testing.T) {
	t.Parallel()
	b, _, clk := newBucket(t)
	ctx := context.Background()

	for want := 2; want >= 0; want-- {
		res, err := b.Allow(ctx, "10.0.0.1")
		require.NoError(t, err)
		assert.True(t, res.Allowed())
		assert.Equal(t, want, res.Remaining)
		assert.Equal(t, 3, res.Limit)
	}

	denied, err := b.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, denied.Allowed())
	assert.Equal(t, -1, denied.Remaining)
	assert.Positive(t, denied.RetryAfter())
	assert.LessOrEqual(t, denied.RetryAfter(), time.Second)

	other, err := b.Allow(ctx, "10.0.0.2")
	require.NoError(t, err)
	assert.Equal(t, 2, other.Remaining, "keys have separate buckets")

	clk.Advance(time.Second)
	res, err := b.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, res.Allowed(), "a denied take consumes nothing")
	assert.Equal(t, 0, res.Remaining)

	clk.Advance(time.Hour)
	status, err := b.Status(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, 3, status.Remaining)
	assert.Zero(t, status.RetryAfter())
}

func TestBucket_AllowN(t *testing.T) {
	t.Parallel()
	b, _, _ := newBucket(t)
	ctx := context.Background()

	res, err := b.AllowN(ctx, "k", 2)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Remaining)

	res, err = b.AllowN(ctx, "k", 2)
	require.NoError(t, err)
	assert.False(t, res.Allowed())

	_, err = b.AllowN(ctx, "k", 0)
	require.ErrorIs(t, err, ratelimiter.ErrInvalidTokenCount)
	_, err = b.AllowN(ctx, "k", 4)
	require.ErrorIs(t, err, ratelimiter.ErrInvalidTokenCount)
}

func TestBucket_Reset(t *testing.T) {
	t.Parallel()
	b, store, _ := newBucket(t)
	ctx := context.Background()

	_, err := b.AllowN(ctx, "k", 3)
	require.NoError(t, err)
	require.NoError(t, b.Reset(ctx, "k"))
	assert.Zero(t, store.Len())

	res, err := b.Status(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, 3, res.Remaining)
}

func TestMemoryStore_Sweep(t *testing.T) {
	t.Parallel()
	b, store, clk := newBucket(t)
	ctx := context.Background()

	_, err := b.Allow(ctx, "old")
	require.NoError(t, err)
	clk.Advance(2 * time.Hour)
	_, err = b.Allow(ctx, "new")
	require.NoError(t, err)

	store.Sweep(time.Hour)
	assert.Equal(t, 1, store.Len())
	store.Close()
	store.Close()
}

func TestNewBucket_InvalidConfig(t *testing.T) {
	t.Parallel()

	for name, cfg := range map[string]ratelimiter.Config{
		"capacity": {Capacity: 0, RefillRate: 1, RefillInterval: time.Second},
		"rate":     {Capacity: 1, RefillRate: 0, RefillInterval: time.Second},
		"interval": {Capacity: 1, RefillRate: 1},
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := ratelimiter.NewBucket(ratelimiter.NewMemoryStore(ratelimiter.WithSweepInterval(0)), cfg)
			require.ErrorIs(t, err, ratelimiter.ErrInvalidConfig)
		})
	}
}

func TestRedisStore_Unavailable(t *testing.T) {
	t.Parallel()

	client := goredis.NewClient(&goredis.Options{Addr: "127.0.0.1:1", MaxRetries: -1, DialTimeout: 100 * time.Millisecond})
	t.Cleanup(func() { _ = client.Close() })

	b, err := ratelimiter.NewBucket(ratelimiter.NewRedisStore(client, ""), testConfig)
	require.NoError(t, err)
	_, err = b.Allow(context.Background(), "k")
	require.ErrorIs(t, err, ratelimiter.ErrStoreUnavailable)
}

// TestRedisStore_Integration runs against PV_TEST_REDIS_URL when set.
func TestRedisStore_Integration(t *testing.T) {
	url := os.Getenv("PV_TEST_REDIS_URL")
	if url == "" {
		t.Skip("PV_TEST_REDIS_URL not set")
	}
	ctx := context.Background()

	client, err := redis.Connect(ctx, redis.Config{ConnectionURL: url, RetryAttempts: 1, ConnectTimeout: 5 * time.Second})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	b, err := ratelimiter.NewBucket(ratelimiter.NewRedisStore(client, "pv:test:"+uuid.NewString()+":"), testConfig)
	require.NoError(t, err)

	for want := 2; want >= 0; want-- {
		res, err := b.Allow(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, want, res.Remaining)
	}
	res, err := b.Allow(ctx, "k")
	require.NoError(t, err)
	assert.False(t, res.Allowed())

	require.NoError(t, b.Reset(ctx, "k"))
	res, err = b.Status(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, 3, res.Remaining)
}
