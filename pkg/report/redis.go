package report

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps reports as JSON strings with an optional TTL and indexes
// them in sorted sets scored by creation time.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

var _ Store = (*RedisStore)(nil)

// RedisOption configures a RedisStore.
type RedisOption func(*RedisStore)

// WithRedisPrefix sets the key prefix, "pv:report:" by default.
func WithRedisPrefix(prefix string) RedisOption {
	return func(s *RedisStore) {
		if prefix != "" {
			s.prefix = prefix
		}
	}
}

// WithRedisTTL expires reports after ttl. Zero keeps them forever.
func WithRedisTTL(ttl time.Duration) RedisOption {
	return func(s *RedisStore) { s.ttl = max(ttl, 0) }
}

// NewRedisStore creates a store on client.
func NewRedisStore(client redis.UniversalClient, opts ...RedisOption) *RedisStore {
	s := &RedisStore{client: client, prefix: "pv:report:"}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RedisStore) key(id string) string { return s.prefix + id }

func (s *RedisStore) index(instanceKey string) string {
	if instanceKey == "" {
		return s.prefix + "idx:all"
	}
	return s.prefix + "idx:instance:" + instanceKey
}

func (s *RedisStore) Save(ctx context.Context, r Report) error {
	if r.ID == "" {
		return fmt.Errorf("%w: empty id", ErrInvalidReport)
	}
	payload, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encode report %s: %w", r.ID, err)
	}

	ok, err := s.client.SetNX(ctx, s.key(r.ID), payload, s.ttl).Result()
	if err != nil {
		return fmt.Errorf("save report %s: %w", r.ID, err)
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrDuplicate, r.ID)
	}

	score := float64(r.CreatedAt.UnixNano())
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.ZAdd(ctx, s.index(""), redis.Z{Score: score, Member: r.ID})
		pipe.ZAdd(ctx, s.index(r.InstanceKey), redis.Z{Score: score, Member: r.ID})
		return nil
	})
	if err != nil {
		return fmt.Errorf("index report %s: %w", r.ID, err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (Report, error) {
	payload, err := s.client.Get(ctx, s.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Report{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return Report{}, fmt.Errorf("get report %s: %w", id, err)
	}
	return decode(id, payload)
}

// List reads the newest IDs from the index. IDs whose report expired are
// pruned from the index and skipped, so fewer than Limit reports may return.
func (s *RedisStore) List(ctx context.Context, f Filter) ([]Report, error) {
	idx := s.index(f.InstanceKey)
	ids, err := s.client.ZRevRange(ctx, idx, 0, int64(f.limit()-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = s.key(id)
	}
	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}

	out := make([]Report, 0, len(ids))
	var stale []any
	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			stale = append(stale, ids[i])
			continue
		}
		r, err := decode(ids[i], []byte(raw))
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	if len(stale) > 0 {
		_ = s.client.ZRem(ctx, idx, stale...).Err()
	}
	return out, nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	r, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, s.key(id))
		pipe.ZRem(ctx, s.index(""), id)
		pipe.ZRem(ctx, s.index(r.InstanceKey), id)
		return nil
	})
	if err != nil {
		return fmt.Errorf("delete report %s: %w", id, err)
	}
	return nil
}

func decode(id string, payload []byte) (Report, error) {
	var r Report
	if err := json.Unmarshal(payload, &r); err != nil {
		return Report{}, fmt.Errorf("decode report %s: %w", id, err)
	}
	return r, nil
}
