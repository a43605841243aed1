package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	redisKeyPrefix = "console_session:"
	// maxUpdateRetries bounds how often Update retries after losing a race.
	maxUpdateRetries = 8
)

type RedisStore struct {
	rdb        *redis.Client
	defaultTTL time.Duration
}

func NewRedisStore(rdb *redis.Client, defaultTTL time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, defaultTTL: defaultTTL}
}

func (r *RedisStore) key(id string) string {
	return redisKeyPrefix + id
}

func (r *RedisStore) Get(ctx context.Context, id string) (*Session, error) {
	raw, err := r.rdb.Get(ctx, r.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load session from redis: %w", err)
	}

	var s Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	return &s, nil
}

// ttl is how long s may live in redis; zero or less means it already expired.
func (r *RedisStore) ttl(s *Session) time.Duration {
	if s.ExpiresAt.IsZero() {
		return r.defaultTTL
	}
	return time.Until(s.ExpiresAt)
}

func (r *RedisStore) Save(ctx context.Context, s *Session) error {
	ttl := r.ttl(s)
	if ttl <= 0 {
		return r.Delete(ctx, s.ID)
	}

	payload, err := json.Marshal(s)
	if err != nil {
		return err
	}
	if err := r.rdb.Set(ctx, r.key(s.ID), payload, ttl).Err(); err != nil {
		return fmt.Errorf("failed to save session to redis: %w", err)
	}
	return nil
}

// Update watches the session key, so a write by another request between the
// read and the MULTI/EXEC aborts the transaction and fn runs again on the new copy.
func (r *RedisStore) Update(ctx context.Context, id string, fn UpdateFunc) (*Session, error) {
	key := r.key(id)
	var updated *Session

	txf := func(tx *redis.Tx) error {
		raw, err := tx.Get(ctx, key).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to load session from redis: %w", err)
		}

		var s Session
		if err := json.Unmarshal(raw, &s); err != nil {
			return fmt.Errorf("failed to decode session: %w", err)
		}
		if err := fn(&s); err != nil {
			return err
		}

		ttl := r.ttl(&s)
		if ttl <= 0 {
			return ErrNotFound
		}
		payload, err := json.Marshal(&s)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, payload, ttl)
			return nil
		})
		if err == nil {
			updated = &s
		}
		return err
	}

	for i := 0; i < maxUpdateRetries; i++ {
		err := r.rdb.Watch(ctx, txf, key)
		if err == nil {
			return updated, nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return nil, err
	}
	return nil, ErrConflict
}

func (r *RedisStore) Delete(ctx context.Context, id string) error {
	return r.rdb.Del(ctx, r.key(id)).Err()
}
