// Package cache holds the Redis-backed session store, JSON cache and lock.
package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/careerboost/internal/domain/entity"
	"github.com/oksasatya/careerboost/pkg/helpers"
)

func SessionKey(userID string) string {
	return "user:session:" + userID
}

// SessionStore keeps one session hash per user.
type SessionStore struct {
	rdb *redis.Client
}

func NewSessionStore(rdb *redis.Client) *SessionStore {
	return &SessionStore{rdb: rdb}
}

func (s *SessionStore) Save(ctx context.Context, sess entity.Session, ttl time.Duration) error {
	key := SessionKey(sess.UserID)
	pipe := s.rdb.TxPipeline()
	pipe.HSet(ctx, key, map[string]any{
		"user_id":    sess.UserID,
		"sid":        sess.SessionID,
		"email":      sess.Email,
		"role":       string(sess.Role),
		"logged_in":  true,
		"created_at": sess.CreatedAt.UTC().Format(time.RFC3339Nano),
		"updated_at": time.Now().UTC().Format(time.RFC3339Nano),
	})
	pipe.Expire(ctx, key, ttl)
	_, err := pipe.Exec(ctx)
	return err
}

// Get returns nil without error when no session exists.
func (s *SessionStore) Get(ctx context.Context, userID string) (*entity.Session, error) {
	data, err := s.rdb.HGetAll(ctx, SessionKey(userID)).Result()
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil
	}
	created, _ := time.Parse(time.RFC3339Nano, data["created_at"])
	return &entity.Session{
		UserID:    data["user_id"],
		SessionID: data["sid"],
		Email:     data["email"],
		Role:      entity.Role(data["role"]),
		CreatedAt: created,
	}, nil
}

func (s *SessionStore) Delete(ctx context.Context, userID string) error {
	return helpers.RedisDel(ctx, s.rdb, SessionKey(userID))
}

// JSONCache stores JSON encoded values.
type JSONCache struct {
	rdb *redis.Client
}

func NewJSONCache(rdb *redis.Client) *JSONCache {
	return &JSONCache{rdb: rdb}
}

func (c *JSONCache) GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	return helpers.RedisGetJSON(ctx, c.rdb, key, dest)
}

func (c *JSONCache) SetJSON(ctx context.Context, key string, v any, ttl time.Duration) error {
	return helpers.RedisSetJSON(ctx, c.rdb, key, v, ttl)
}

func (c *JSONCache) Delete(ctx context.Context, keys ...string) error {
	return helpers.RedisDel(ctx, c.rdb, keys...)
}

func (c *JSONCache) DeletePattern(ctx context.Context, pattern string) error {
	return helpers.RedisDelPattern(ctx, c.rdb, pattern)
}

// Locker hands out SET NX locks.
type Locker struct {
	rdb *redis.Client
}

func NewLocker(rdb *redis.Client) *Locker {
	return &Locker{rdb: rdb}
}

func (l *Locker) TryLock(ctx context.Context, key string, ttl time.Duration) (func(context.Context) error, bool, error) {
	lock, ok, err := helpers.AcquireLock(ctx, l.rdb, key, ttl)
	if err != nil || !ok {
		return nil, ok, err
	}
	return lock.Release, true, nil
}
