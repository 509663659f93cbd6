package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is returned when nothing is stored under a key.
	ErrNotFound = errors.New("no record for key")
)

// Medium is the durable byte store behind Records. Implementations must be
// safe for concurrent use and must replace a key's value atomically.
type Medium interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Close() error
}

// Backend names accepted by Open.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendSQLite = "sqlite"
)

// Options select and configure a backend.
type Options struct {
	Backend    string
	Dir        string // file backend
	RedisURL   string // redis backend
	SQLitePath string // sqlite backend
}

// Open creates the medium described by opts.
func Open(ctx context.Context, opts Options) (Medium, error) {
	switch strings.ToLower(opts.Backend) {
	case "", BackendMemory:
		return NewMemoryMedium(), nil
	case BackendFile:
		return NewFileMedium(opts.Dir)
	case BackendRedis:
		return NewRedisMedium(ctx, opts.RedisURL)
	case BackendSQLite:
		return OpenSQLiteMedium(ctx, opts.SQLitePath)
	default:
		return nil, fmt.Errorf("unknown store backend %q", opts.Backend)
	}
}
