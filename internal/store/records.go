package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/i474232898/archipelago-data-aggregation/internal/logger"
)

// CachedPayload wraps a value with the instant it was written. Both travel in
// one encoded blob so they are always replaced together.
type CachedPayload[T any] struct {
	Value     T     `json:"value"`
	WrittenAt int64 `json:"writtenAt"` // unix milliseconds
}

// Written returns WrittenAt as a time.
func (p CachedPayload[T]) Written() time.Time {
	return time.UnixMilli(p.WrittenAt).UTC()
}

// Lookup is the detailed result of reading a key.
type Lookup[T any] struct {
	Payload CachedPayload[T]
	Present bool // bytes were found under the key
	Decoded bool // and decoded into a valid payload
}

// Records is a typed view over a Medium. It never returns errors: reads that
// fail are reported as absent, writes that fail are logged and dropped.
type Records[T any] struct {
	medium Medium
}

// NewRecords creates a typed view over m.
func NewRecords[T any](m Medium) *Records[T] {
	return &Records[T]{medium: m}
}

// Lookup reads key and reports whether it was present and decodable.
func (r *Records[T]) Lookup(ctx context.Context, key string) Lookup[T] {
	var res Lookup[T]

	data, err := r.medium.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			logger.WithComponent("store").Warnf("read %s failed: %v", key, err)
		}
		return res
	}
	res.Present = true

	var payload CachedPayload[T]
	if err := json.Unmarshal(data, &payload); err != nil {
		logger.WithComponent("store").Warnf("decode %s failed: %v", key, err)
		return res
	}
	if payload.WrittenAt <= 0 {
		logger.WithComponent("store").Warnf("payload %s has no write instant", key)
		return res
	}

	res.Payload = payload
	res.Decoded = true
	return res
}

// Load returns the payload under key, or false if it is absent or unreadable.
func (r *Records[T]) Load(ctx context.Context, key string) (CachedPayload[T], bool) {
	res := r.Lookup(ctx, key)
	return res.Payload, res.Decoded
}

// Save writes value stamped with now, replacing any previous payload. The
// returned bool is false when the medium rejected the write.
func (r *Records[T]) Save(ctx context.Context, key string, value T, now time.Time) (CachedPayload[T], bool) {
	payload := CachedPayload[T]{Value: value, WrittenAt: now.UnixMilli()}

	data, err := json.Marshal(payload)
	if err != nil {
		logger.WithComponent("store").Errorf("encode %s failed: %v", key, err)
		return payload, false
	}
	if err := r.medium.Put(ctx, key, data); err != nil {
		logger.WithComponent("store").Warnf("persist %s failed: %v", key, err)
		return payload, false
	}
	return payload, true
}
