// Package kvrepo implements the domain repositories as JSON documents in a
// storage.KeyValueStore, one document per record key.
package kvrepo

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Zhima-Mochi/streetsmart/internal/domain/storage"
)

func load[T any](ctx context.Context, store storage.KeyValueStore, key string) ([]T, error) {
	raw, ok, err := store.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if !ok || len(raw) == 0 {
		return []T{}, nil
	}
	var out []T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

func save[T any](ctx context.Context, store storage.KeyValueStore, key string, records []T) error {
	if records == nil {
		records = []T{}
	}
	raw, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return store.Set(ctx, key, raw)
}
