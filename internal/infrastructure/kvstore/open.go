// Package kvstore selects a record store backend by driver name.
package kvstore

import (
	"context"
	"fmt"
	"strings"

	"github.com/Zhima-Mochi/streetsmart/internal/domain/storage"
	"github.com/Zhima-Mochi/streetsmart/internal/infrastructure/memory"
	"github.com/Zhima-Mochi/streetsmart/internal/infrastructure/mysql"
	"github.com/Zhima-Mochi/streetsmart/internal/infrastructure/redis"
	"github.com/Zhima-Mochi/streetsmart/internal/infrastructure/sqlite"
)

const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
	DriverRedis  = "redis"
	DriverMySQL  = "mysql"
)

// Store is a record store that owns a connection.
type Store interface {
	storage.KeyValueStore
	Close() error
}

type Options struct {
	Driver         string
	SQLitePath     string
	RedisAddr      string
	RedisKeyPrefix string
	MySQLDSN       string
}

func Open(ctx context.Context, opts Options) (Store, error) {
	var (
		store Store
		err   error
	)
	switch strings.ToLower(strings.TrimSpace(opts.Driver)) {
	case "", DriverMemory:
		store = memory.NewStore()
	case DriverSQLite:
		store, err = openStore(sqlite.Open(opts.SQLitePath))
	case DriverRedis:
		store, err = openStore(redis.Open(ctx, opts.RedisAddr, opts.RedisKeyPrefix))
	case DriverMySQL:
		store, err = openStore(mysql.Open(ctx, opts.MySQLDSN))
	default:
		err = fmt.Errorf("kvstore: unknown driver %q", opts.Driver)
	}
	if err != nil {
		return nil, err
	}
	return store, nil
}

// openStore keeps a failed open from leaking a typed nil into the interface.
func openStore[S Store](s S, err error) (Store, error) {
	if err != nil {
		return nil, err
	}
	return s, nil
}
