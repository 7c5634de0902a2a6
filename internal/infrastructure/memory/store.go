package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/Zhima-Mochi/streetsmart/internal/domain/storage"
)

// Store keeps records in process memory. Values are copied on the way in and
// out so callers never share a backing array with the store.
type Store struct {
	mu      sync.RWMutex
	records map[string][]byte
}

func NewStore() *Store {
	return &Store{
		records: make(map[string][]byte),
	}
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	_ = ctx
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, false, storage.ErrKeyRequired
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.records[key]
	if !ok {
		return nil, false, nil
	}
	return cloneBytes(value), true, nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	_ = ctx
	key = strings.TrimSpace(key)
	if key == "" {
		return storage.ErrKeyRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[key] = cloneBytes(value)
	return nil
}

func (s *Store) Close() error { return nil }

func cloneBytes(b []byte) []byte {
	if b == nil {
		return []byte{}
	}
	clone := make([]byte, len(b))
	copy(clone, b)
	return clone
}
