package refresh

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/i474232898/archipelago-data-aggregation/internal/freshness"
	"github.com/i474232898/archipelago-data-aggregation/internal/logger"
	"github.com/i474232898/archipelago-data-aggregation/internal/store"
)

// Coordinator owns the live state of one category.
type Coordinator[T any] struct {
	spec    Spec[T]
	policy  *freshness.Policy
	records *store.Records[T]
	now     func() time.Time
	log     *logrus.Entry

	mu   sync.RWMutex
	live map[string]Live[T]

	inflight singleflight.Group
}

// Option configures a Coordinator.
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock sets the clock used for freshness checks and write instants.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// NewCoordinator builds a coordinator persisting through records.
func NewCoordinator[T any](spec Spec[T], policy *freshness.Policy, records *store.Records[T], opts ...Option) *Coordinator[T] {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return &Coordinator[T]{
		spec:    spec,
		policy:  policy,
		records: records,
		now:     o.now,
		log:     logger.WithComponent("refresh").WithField("category", spec.Category),
		live:    make(map[string]Live[T]),
	}
}

func (c *Coordinator[T]) Category() freshness.Category { return c.spec.Category }

// Snapshot returns the live state for subKey.
func (c *Coordinator[T]) Snapshot(subKey string) Live[T] {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.live[c.scope(subKey)]
}

// scope drops sub-keys the category does not cache separately.
func (c *Coordinator[T]) scope(subKey string) string {
	if !c.spec.Category.SupportsSubKey() {
		return ""
	}
	return subKey
}

// Refresh brings the live state of subKey up to date. It never returns an
// error: failures resolve to the best value available.
func (c *Coordinator[T]) Refresh(ctx context.Context, subKey string, force bool) Outcome {
	subKey = c.scope(subKey)
	key := c.policy.Key(c.spec.Category, subKey)

	durable := c.records.Lookup(ctx, key)
	snap := freshness.Snapshot{
		Present:   durable.Present,
		Decoded:   durable.Decoded,
		Empty:     durable.Decoded && c.spec.isEmpty(durable.Payload.Value),
		WrittenAt: durable.Payload.Written(),
	}
	decision := c.policy.Evaluate(c.spec.Category, snap, force, c.now())

	out := Outcome{Category: c.spec.Category, SubKey: subKey, Reason: decision.Reason}

	if !decision.Eligible {
		out.Action = c.hydrate(subKey, durable.Payload)
		return out
	}

	res, _, _ := c.inflight.Do(subKey, func() (interface{}, error) {
		return c.fetchAndApply(ctx, key, subKey, durable), nil
	})
	applied := res.(Outcome)
	out.Action = applied.Action
	out.Persisted = applied.Persisted
	out.Error = applied.Error
	return out
}

// hydrate fills empty live state from a valid durable payload.
func (c *Coordinator[T]) hydrate(subKey string, payload store.CachedPayload[T]) Action {
	c.mu.Lock()
	defer c.mu.Unlock()

	cur := c.live[subKey]
	if cur.Present && !cur.Placeholder {
		return ActionSkipped
	}
	c.live[subKey] = Live[T]{
		Value:     payload.Value,
		Present:   true,
		Loading:   cur.Loading,
		UpdatedAt: payload.Written(),
	}
	return ActionHydrated
}

func (c *Coordinator[T]) fetchAndApply(ctx context.Context, key, subKey string, durable store.Lookup[T]) Outcome {
	c.setLoading(subKey, true)
	defer func() {
		if p := recover(); p != nil {
			c.setLoading(subKey, false)
			panic(p)
		}
	}()

	value, err := c.spec.Fetcher.Fetch(ctx, subKey)
	if err != nil {
		c.log.WithField("sub_key", subKey).Warnf("fetch failed: %v", err)
		return Outcome{Action: c.applyFailure(subKey, durable), Error: err.Error()}
	}

	if !c.spec.cacheable(value) {
		return Outcome{Action: c.applyPlaceholder(subKey, value)}
	}

	// Save before publishing so live state is the last thing written.
	payload, persisted := c.records.Save(ctx, key, value, c.now())

	c.mu.Lock()
	c.live[subKey] = Live[T]{
		Value:     value,
		Present:   true,
		UpdatedAt: payload.Written(),
	}
	c.mu.Unlock()

	return Outcome{Action: ActionFetched, Persisted: persisted}
}

func (c *Coordinator[T]) applyPlaceholder(subKey string, value T) Action {
	c.mu.Lock()
	defer c.mu.Unlock()

	cur := c.live[subKey]
	if cur.Present {
		cur.Loading = false
		c.live[subKey] = cur
		return ActionPlaceholderIgnored
	}
	c.live[subKey] = Live[T]{Value: value, Present: true, Placeholder: true}
	return ActionPlaceholder
}

func (c *Coordinator[T]) applyFailure(subKey string, durable store.Lookup[T]) Action {
	c.mu.Lock()
	defer c.mu.Unlock()

	cur := c.live[subKey]
	cur.Loading = false

	switch {
	case cur.Present:
		c.live[subKey] = cur
		return ActionKept
	case durable.Decoded && !c.spec.isEmpty(durable.Payload.Value):
		c.live[subKey] = Live[T]{
			Value:     durable.Payload.Value,
			Present:   true,
			UpdatedAt: durable.Payload.Written(),
			Stale:     true,
		}
		return ActionFallback
	default:
		c.live[subKey] = cur
		return ActionFailed
	}
}

func (c *Coordinator[T]) setLoading(subKey string, loading bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	cur := c.live[subKey]
	cur.Loading = loading
	c.live[subKey] = cur
}
