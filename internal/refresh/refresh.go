// Package refresh decides, per category, whether to fetch, and reconciles the
// result into the durable store and the live state read by the dashboard.
package refresh

import (
	"context"
	"time"

	"github.com/i474232898/archipelago-data-aggregation/internal/freshness"
)

// Fetcher retrieves the current value of one category. subKey scopes the
// fetch to one commune when non-empty.
type Fetcher[T any] interface {
	Fetch(ctx context.Context, subKey string) (T, error)
}

// FetchFunc adapts a function to Fetcher.
type FetchFunc[T any] func(ctx context.Context, subKey string) (T, error)

func (f FetchFunc[T]) Fetch(ctx context.Context, subKey string) (T, error) {
	return f(ctx, subKey)
}

// Spec configures a Coordinator for one category.
type Spec[T any] struct {
	Category freshness.Category
	Fetcher  Fetcher[T]

	// Empty reports a semantically empty value. Empty payloads in the store
	// make the category fetch-eligible.
	Empty func(T) bool
	// Placeholder reports a value the source flags as not real data.
	Placeholder func(T) bool
}

func (s Spec[T]) cacheable(v T) bool {
	return !s.isEmpty(v) && !s.isPlaceholder(v)
}

func (s Spec[T]) isEmpty(v T) bool {
	return s.Empty != nil && s.Empty(v)
}

func (s Spec[T]) isPlaceholder(v T) bool {
	return s.Placeholder != nil && s.Placeholder(v)
}

// Live is what consumers see for one category and sub-key.
type Live[T any] struct {
	Value   T    `json:"value"`
	Present bool `json:"present"`
	Loading bool `json:"loading"`
	// UpdatedAt is the write instant of the value. It stays the zero time
	// for placeholders and before the first value.
	UpdatedAt time.Time `json:"updated_at"`
	// Stale is set when the value was restored after a failed fetch.
	Stale       bool `json:"stale"`
	Placeholder bool `json:"placeholder"`
}

// Action names what a refresh did.
type Action string

const (
	// ActionSkipped: not eligible and live state already held a value.
	ActionSkipped Action = "skipped"
	// ActionHydrated: not eligible, live state loaded from the store.
	ActionHydrated Action = "hydrated"
	// ActionFetched: cacheable value fetched, saved and published.
	ActionFetched Action = "fetched"
	// ActionPlaceholder: non-cacheable value published because nothing was live.
	ActionPlaceholder Action = "placeholder"
	// ActionPlaceholderIgnored: non-cacheable value dropped in favour of the live one.
	ActionPlaceholderIgnored Action = "placeholder-ignored"
	// ActionKept: fetch failed, live value left untouched.
	ActionKept Action = "kept"
	// ActionFallback: fetch failed, live state restored from the store.
	ActionFallback Action = "fallback"
	// ActionFailed: fetch failed with nothing to fall back to.
	ActionFailed Action = "failed"
)

// Outcome reports one category refresh.
type Outcome struct {
	RunID     string             `json:"run_id,omitempty"`
	Category  freshness.Category `json:"category"`
	SubKey    string             `json:"sub_key,omitempty"`
	Action    Action             `json:"action"`
	Reason    freshness.Reason   `json:"reason"`
	Persisted bool               `json:"persisted"`
	Error     string             `json:"error,omitempty"`
}

// Refresher is the category-agnostic face of a Coordinator.
type Refresher interface {
	Category() freshness.Category
	Refresh(ctx context.Context, subKey string, force bool) Outcome
}
