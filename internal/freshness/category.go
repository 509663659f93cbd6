package freshness

import (
	"fmt"
	"strings"
	"time"
)

// Category identifies one independently cached data domain.
type Category string

const (
	Weather    Category = "weather"
	Vigilance  Category = "vigilance"
	AirQuality Category = "air-quality"
	WaterCuts  Category = "water-cuts"
	Forecast   Category = "forecast"
)

// Categories returns every known category in a stable order.
func Categories() []Category {
	return []Category{Weather, Vigilance, AirQuality, WaterCuts, Forecast}
}

// ParseCategory maps a name to a Category.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Categories() {
		if c == known {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", s)
}

// SupportsSubKey reports whether the category can be cached per commune.
func (c Category) SupportsSubKey() bool {
	return c == Weather || c == Forecast
}

// CategoryConfig is the per-category part of the policy.
type CategoryConfig struct {
	// StorageKey is the base key of the durable payload.
	StorageKey string
	// Window is the validity window. Zero or negative means the payload is
	// only trusted when it was written during the current session.
	Window time.Duration
}

// Key returns the storage key, scoped to subKey when the category allows it.
func (cc CategoryConfig) Key(c Category, subKey string) string {
	if subKey == "" || !c.SupportsSubKey() {
		return cc.StorageKey
	}
	return cc.StorageKey + ":" + subKey
}

// DefaultWindows are the validity windows observed on the dashboard.
func DefaultWindows() map[Category]time.Duration {
	return map[Category]time.Duration{
		Weather:    45 * time.Minute,
		Vigilance:  10 * time.Minute,
		AirQuality: 30 * time.Minute,
		WaterCuts:  0,
		Forecast:   3 * time.Hour,
	}
}
