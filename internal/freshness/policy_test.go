package freshness

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsFresh(t *testing.T) {
	t0 := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	window := 10 * time.Minute

	tests := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"just written", t0, true},
		{"inside window", t0.Add(9*time.Minute + 59*time.Second), true},
		{"boundary equality is stale", t0.Add(window), false},
		{"past window", t0.Add(time.Hour), false},
		{"clock behind write", t0.Add(-time.Minute), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsFresh(t0, window, tt.now))
			assert.Equal(t, tt.now.Sub(t0) < window, IsFresh(t0, window, tt.now))
		})
	}
}

func TestParseCategory(t *testing.T) {
	c, err := ParseCategory(" Air-Quality ")
	require.NoError(t, err)
	assert.Equal(t, AirQuality, c)

	_, err = ParseCategory("pollen")
	assert.Error(t, err)
}

func TestPolicyKey(t *testing.T) {
	p := NewPolicy("gwada", nil, time.Now())

	assert.Equal(t, "gwada:weather", p.Key(Weather, ""))
	assert.Equal(t, "gwada:forecast:97101", p.Key(Forecast, "97101"))
	assert.Equal(t, "gwada:weather:97101", p.Key(Weather, "97101"))
	// sub-keys are ignored for archipelago-only categories
	assert.Equal(t, "gwada:vigilance", p.Key(Vigilance, "97101"))

	assert.Equal(t, "air-quality", NewPolicy("", nil, time.Now()).Key(AirQuality, ""))
}

func TestPolicyEvaluate(t *testing.T) {
	session := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	now := session.Add(2 * time.Hour)
	p := NewPolicy("gwada", nil, session)

	fresh := Snapshot{Present: true, Decoded: true, WrittenAt: now.Add(-5 * time.Minute)}

	tests := []struct {
		name     string
		category Category
		snap     Snapshot
		force    bool
		want     Decision
	}{
		{"missing", Weather, Snapshot{}, false, Decision{true, ReasonMissing}},
		{"malformed", Weather, Snapshot{Present: true}, false, Decision{true, ReasonMalformed}},
		{"empty", Weather, Snapshot{Present: true, Decoded: true, Empty: true, WrittenAt: now}, false, Decision{true, ReasonEmpty}},
		{"expired", Vigilance, Snapshot{Present: true, Decoded: true, WrittenAt: now.Add(-10 * time.Minute)}, false, Decision{true, ReasonExpired}},
		{"fresh", Weather, fresh, false, Decision{false, ReasonFresh}},
		{"forced beats fresh", Weather, fresh, true, Decision{true, ReasonForced}},
		{"water cuts from previous session", WaterCuts, Snapshot{Present: true, Decoded: true, WrittenAt: session.Add(-time.Minute)}, false, Decision{true, ReasonExpired}},
		{"water cuts from this session", WaterCuts, Snapshot{Present: true, Decoded: true, WrittenAt: session}, false, Decision{false, ReasonFresh}},
		{"forecast inside three hours", Forecast, Snapshot{Present: true, Decoded: true, WrittenAt: now.Add(-2 * time.Hour)}, false, Decision{false, ReasonFresh}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.Evaluate(tt.category, tt.snap, tt.force, now))
		})
	}
}

func TestNewPolicyCustomWindows(t *testing.T) {
	p := NewPolicy("x", map[Category]time.Duration{Weather: time.Minute}, time.Time{})
	assert.Equal(t, time.Minute, p.Config(Weather).Window)
	// unspecified categories fall back to session scope
	assert.Equal(t, time.Duration(0), p.Config(Forecast).Window)
}
