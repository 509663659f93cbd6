package freshness

import (
	"time"
)

// Reason explains a fetch-eligibility decision.
type Reason string

const (
	ReasonForced    Reason = "forced"
	ReasonMissing   Reason = "missing"
	ReasonMalformed Reason = "malformed"
	ReasonEmpty     Reason = "empty"
	ReasonExpired   Reason = "expired"
	ReasonFresh     Reason = "fresh"
)

// IsFresh reports whether a payload written at written is still inside window at now.
// A payload whose age equals the window is not fresh.
func IsFresh(written time.Time, window time.Duration, now time.Time) bool {
	return now.Sub(written) < window
}

// Snapshot describes what the durable store holds for one key.
type Snapshot struct {
	Present   bool // something is stored under the key
	Decoded   bool // and it decoded into a payload
	Empty     bool // and the payload is semantically empty
	WrittenAt time.Time
}

// Decision is the result of Policy.Evaluate.
type Decision struct {
	Eligible bool
	Reason   Reason
}

// Policy decides whether a category needs a fetch.
type Policy struct {
	categories map[Category]CategoryConfig
	// SessionStart anchors session-scoped windows (Window <= 0).
	SessionStart time.Time
}

// NewPolicy builds a policy with storage keys under prefix.
func NewPolicy(prefix string, windows map[Category]time.Duration, sessionStart time.Time) *Policy {
	if windows == nil {
		windows = DefaultWindows()
	}
	p := &Policy{
		categories:   make(map[Category]CategoryConfig, len(windows)),
		SessionStart: sessionStart,
	}
	for _, c := range Categories() {
		key := string(c)
		if prefix != "" {
			key = prefix + ":" + key
		}
		p.categories[c] = CategoryConfig{StorageKey: key, Window: windows[c]}
	}
	return p
}

// Config returns the configuration of c.
func (p *Policy) Config(c Category) CategoryConfig {
	return p.categories[c]
}

// Key returns the storage key for c scoped to subKey.
func (p *Policy) Key(c Category, subKey string) string {
	return p.categories[c].Key(c, subKey)
}

// Fresh applies the category window to written. Session-scoped categories are
// fresh only when written during this session.
func (p *Policy) Fresh(c Category, written time.Time, now time.Time) bool {
	window := p.categories[c].Window
	if window <= 0 {
		return !written.Before(p.SessionStart)
	}
	return IsFresh(written, window, now)
}

// Evaluate decides whether c must be fetched given what the store holds.
func (p *Policy) Evaluate(c Category, snap Snapshot, force bool, now time.Time) Decision {
	switch {
	case force:
		return Decision{Eligible: true, Reason: ReasonForced}
	case !snap.Present:
		return Decision{Eligible: true, Reason: ReasonMissing}
	case !snap.Decoded:
		return Decision{Eligible: true, Reason: ReasonMalformed}
	case snap.Empty:
		return Decision{Eligible: true, Reason: ReasonEmpty}
	case !p.Fresh(c, snap.WrittenAt, now):
		return Decision{Eligible: true, Reason: ReasonExpired}
	}
	return Decision{Eligible: false, Reason: ReasonFresh}
}
