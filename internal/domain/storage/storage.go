// Package storage is the persistence port: a flat key-value store holding one
// JSON document per record.
package storage

import (
	"context"
	"errors"
)

// Record keys.
const (
	KeyInventory    = "inventory"
	KeyTransactions = "transactions"
	KeyTheme        = "theme"
)

var ErrKeyRequired = errors.New("storage: key is required")

// KeyValueStore reads and writes whole records. Get reports false for a key
// that was never written.
type KeyValueStore interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
}
