package repositories

import (
	"context"
	"encoding/json"
	"sync"

	"golang-storefront-backend/internal/models"
)

// MemoryCartStorage is an in-process CartStorage used in tests and as a
// stand-in when Redis is unavailable. It round-trips through JSON so it
// exercises the same serialization path as the Redis implementation.
type MemoryCartStorage struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemoryCartStorage() *MemoryCartStorage {
	return &MemoryCartStorage{data: make(map[string][]byte)}
}

func (s *MemoryCartStorage) Load(ctx context.Context, sessionID string) (models.CartState, error) {
	s.mu.RLock()
	raw, ok := s.data[sessionID]
	s.mu.RUnlock()

	if !ok {
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

func (s *MemoryCartStorage) Save(ctx context.Context, sessionID string, state models.CartState) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.data[sessionID] = raw
	s.mu.Unlock()
	return nil
}

func (s *MemoryCartStorage) Clear(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	delete(s.data, sessionID)
	s.mu.Unlock()
	return nil
}

// Corrupt overwrites a stored cart with an unparseable payload. Test hook.
func (s *MemoryCartStorage) Corrupt(sessionID string) {
	s.mu.Lock()
	s.data[sessionID] = []byte(`{"items": [truncated`)
	s.mu.Unlock()
}
