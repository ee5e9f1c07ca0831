package repositories

import (
	"context"
	"time"

	"golang-storefront-backend/pkg/cache"
)

const (
	submitLockPrefix = "storefront:submit:"
	submitLockTTL    = 30 * time.Second
)

// RedisSubmissionLock serializes order submissions per session. The TTL
// bounds how long a crashed submission can block its session.
type RedisSubmissionLock struct {
	cache *cache.RedisCache
}

func NewRedisSubmissionLock(cache *cache.RedisCache) *RedisSubmissionLock {
	return &RedisSubmissionLock{cache: cache}
}

func (l *RedisSubmissionLock) TryLock(ctx context.Context, sessionID string) (bool, error) {
	return l.cache.SetNX(ctx, submitLockPrefix+sessionID, "1", submitLockTTL)
}

func (l *RedisSubmissionLock) Unlock(ctx context.Context, sessionID string) error {
	return l.cache.Delete(ctx, submitLockPrefix+sessionID)
}
