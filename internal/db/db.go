// Package db defines the storage facade the engine persists learned
// state through. Consumers depend on the narrow sub-interfaces, not on
// the full Store.
package db

import (
	"context"
	"time"
)

// Store is the main database facade combining all sub-interfaces.
type Store interface {
	Pinger
	KVStore
	HashStore
	Scripter
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// KVStore provides key-value operations for session-claim keys.
type KVStore interface {
	// SetNX stores a value only if the key is absent. Returns true when
	// the value was stored, false when the key already existed.
	SetNX(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error)
}

// HashStore provides hash-based operations for segment records.
type HashStore interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	Del(ctx context.Context, key string) error
}

// Scripter runs server-side Lua scripts, used for compare-and-set writes.
type Scripter interface {
	Eval(ctx context.Context, script string, keys, args []string) (int64, error)
}
