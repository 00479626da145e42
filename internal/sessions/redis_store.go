package sessions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jonboulle/clockwork"
	"github.com/redis/go-redis/v9"

	"pgmaint/internal/models"
)

const redisKeyPrefix = "pgmaint:session:"

// RedisStore shares sessions across processes. Records are JSON values whose
// Redis TTL equals the remaining session lifetime.
type RedisStore struct {
	client redis.UniversalClient
	clock  clockwork.Clock
}

func NewRedisStore(client redis.UniversalClient, clock clockwork.Clock) *RedisStore {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &RedisStore{client: client, clock: clock}
}

func redisKey(token string) string {
	return redisKeyPrefix + Digest(token)
}

func (r *RedisStore) Save(ctx context.Context, s *models.Session) error {
	if err := checkSaveable(s); err != nil {
		return err
	}
	ttl := s.ExpiresAt.Sub(r.clock.Now())
	if ttl <= 0 {
		return fmt.Errorf("session already expired at %s", s.ExpiresAt)
	}

	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := r.client.Set(ctx, redisKey(s.Token), data, ttl).Err(); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	return nil
}

func (r *RedisStore) Get(ctx context.Context, token string) (*models.Session, error) {
	data, err := r.client.Get(ctx, redisKey(token)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	var s models.Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	// Redis expiry has coarser resolution than the session clock.
	if s.ExpiredAt(r.clock.Now()) {
		return nil, ErrSessionNotFound
	}
	s.Token = token
	return &s, nil
}

func (r *RedisStore) Delete(ctx context.Context, token string) error {
	if err := r.client.Del(ctx, redisKey(token)).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (r *RedisStore) Len(ctx context.Context) (int, error) {
	n := 0
	iter := r.client.Scan(ctx, 0, redisKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		n++
	}
	if err := iter.Err(); err != nil {
		return 0, fmt.Errorf("count sessions: %w", err)
	}
	return n, nil
}

func (r *RedisStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
