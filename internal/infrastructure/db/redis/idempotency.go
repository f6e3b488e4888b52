package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultIdempotencyTTL = 24 * time.Hour
	// pendingTTL bounds how long a crashed owner can block its key.
	pendingTTL   = 30 * time.Second
	pendingValue = "pending"
)

// IdempotencyStore remembers which service event an Idempotency-Key created.
// Key format: idem:atendimento:<key>. The value is "pending" while the owner
// is inserting and the event id afterwards.
type IdempotencyStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewIdempotencyStore wraps client; ttl <= 0 falls back to 24h.
func NewIdempotencyStore(client *redis.Client, ttl time.Duration) *IdempotencyStore {
	if ttl <= 0 {
		ttl = defaultIdempotencyTTL
	}
	return &IdempotencyStore{client: client, ttl: ttl}
}

// Claim atomically takes key with SETNX. claimed is true for the single
// caller that must insert the event. Otherwise eventID is the stored id, or
// 0 while the owner is still inserting.
func (s *IdempotencyStore) Claim(ctx context.Context, key string) (int64, bool, error) {
	ok, err := s.client.SetNX(ctx, s.key(key), pendingValue, pendingTTL).Result()
	if err != nil {
		return 0, false, fmt.Errorf("idempotency claim: %w", err)
	}
	if ok {
		return 0, true, nil
	}

	val, err := s.client.Get(ctx, s.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		// Expired or released between SETNX and GET; the caller retries.
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("idempotency claim: %w", err)
	}
	return parseEventID(val)
}

// Complete records that key produced eventID (expires after ttl).
func (s *IdempotencyStore) Complete(ctx context.Context, key string, eventID int64) error {
	return s.client.Set(ctx, s.key(key), strconv.FormatInt(eventID, 10), s.ttl).Err()
}

// Release drops key so a later retry can claim it again.
func (s *IdempotencyStore) Release(ctx context.Context, key string) error {
	return s.client.Del(ctx, s.key(key)).Err()
}

func (s *IdempotencyStore) key(k string) string {
	return "idem:atendimento:" + k
}

func parseEventID(val string) (int64, bool, error) {
	if val == pendingValue {
		return 0, false, nil
	}
	id, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("idempotency claim: corrupt value %q: %w", val, err)
	}
	return id, false, nil
}
