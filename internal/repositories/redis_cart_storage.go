package repositories

import (
	"context"
	"encoding/json"
	"time"

	"golang-storefront-backend/internal/models"
	"golang-storefront-backend/pkg/cache"
)

// cartKeyPrefix is the fixed namespace for persisted carts. The stored value
// is the full CartState subset, never computed totals.
const cartKeyPrefix = "storefront:cart:"

// Carts idle for this long are dropped by Redis on its own.
const cartTTL = 14 * 24 * time.Hour

type redisCartStorage struct {
	cache *cache.RedisCache
}

func NewRedisCartStorage(cache *cache.RedisCache) CartStorage {
	return &redisCartStorage{cache: cache}
}

func (s *redisCartStorage) Load(ctx context.Context, sessionID string) (models.CartState, error) {
	raw, err := s.cache.GetRaw(ctx, cartKeyPrefix+sessionID)
	if err != nil {
		return models.EmptyCart(), err
	}
	if raw == nil {
		return models.EmptyCart(), nil
	}

	var state models.CartState
	if err := json.Unmarshal(raw, &state); err != nil {
		return models.EmptyCart(), ErrCorruptCart
	}
	if state.Items == nil {
		state.Items = []models.CartLineItem{}
	}
	return state, nil
}

func (s *redisCartStorage) Save(ctx context.Context, sessionID string, state models.CartState) error {
	return s.cache.Set(ctx, cartKeyPrefix+sessionID, state, cartTTL)
}

func (s *redisCartStorage) Clear(ctx context.Context, sessionID string) error {
	return s.cache.Delete(ctx, cartKeyPrefix+sessionID)
}
