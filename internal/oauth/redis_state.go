package oauth

import (
	"context"
	"time"
)

// StateKV defines the Redis operations needed for state storage. The
// interface abstracts the Redis client so tests can substitute a mock.
type StateKV interface {
	// SetNX stores a key only if absent, returning whether the write happened
	SetNX(ctx context.Context, key, value string, expiration time.Duration) (bool, error)
	// Delete removes a key, returning how many keys were removed
	Delete(ctx context.Context, key string) (int64, error)
}

// RedisStateStore keeps issued states in Redis with a TTL, shared across
// gateway instances. Consume deletes the key atomically, so each state is
// redeemable exactly once cluster-wide.
type RedisStateStore struct {
	kv     StateKV
	prefix string
	ttl    time.Duration
}

// NewRedisStateStore creates a Redis-backed state store with the default
// key prefix "oauth:state:" and TTL
func NewRedisStateStore(kv StateKV) *RedisStateStore {
	return &RedisStateStore{
		kv:     kv,
		prefix: "oauth:state:",
		ttl:    DefaultStateTTL,
	}
}

func (s *RedisStateStore) Issue(ctx context.Context) (string, error) {
	for {
		state, err := randomState()
		if err != nil {
			return "", err
		}

		ok, err := s.kv.SetNX(ctx, s.prefix+state, "1", s.ttl)
		if err != nil {
			return "", err
		}
		if ok {
			return state, nil
		}
		// 256-bit collision; retry
	}
}

func (s *RedisStateStore) Consume(ctx context.Context, state string) (bool, error) {
	// DEL's removed-count doubles as the freshness check: expired keys are
	// already gone, and a second redeem finds nothing to delete
	n, err := s.kv.Delete(ctx, s.prefix+state)
	if err != nil {
		return false, err
	}
	return n == 1, nil
}
