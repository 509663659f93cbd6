package water

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/i474232898/archipelago-data-aggregation/internal/common"
)

// everyDay is the phrase the schedules use for a daily cut.
const everyDay = "tous les jours"

var dayNames = []struct {
	name string
	day  time.Weekday
}{
	{"dimanche", time.Sunday},
	{"lundi", time.Monday},
	{"mardi", time.Tuesday},
	{"mercredi", time.Wednesday},
	{"jeudi", time.Thursday},
	{"vendredi", time.Friday},
	{"samedi", time.Saturday},
}

// ParseDays extracts the weekdays a free-text schedule applies to, Sunday
// first. Unknown text yields no days.
func ParseDays(horaires string) []time.Weekday {
	lower := strings.ToLower(horaires)

	if common.HasAny(lower, everyDay) {
		all := make([]time.Weekday, 0, len(dayNames))
		for _, d := range dayNames {
			all = append(all, d.day)
		}
		return all
	}

	var days []time.Weekday
	for _, d := range dayNames {
		if common.HasAny(lower, d.name) {
			days = append(days, d.day)
		}
	}
	return days
}

// AppliesOn reports whether the schedule text covers day.
func AppliesOn(horaires string, day time.Weekday) bool {
	return slices.Contains(ParseDays(horaires), day)
}

// HasCutsOnDay reports whether any sector of c has a cut on date's weekday.
func HasCutsOnDay(c Commune, date time.Time) bool {
	day := date.Weekday()
	for _, d := range c.Details {
		if AppliesOn(d.Horaires, day) {
			return true
		}
	}
	return false
}

// DateFilter selects the day a summary is computed for.
type DateFilter string

const (
	Today    DateFilter = "today"
	Tomorrow DateFilter = "tomorrow"
)

// ParseDateFilter accepts "today", "tomorrow" or an empty string (today).
func ParseDateFilter(s string) (DateFilter, error) {
	switch DateFilter(strings.ToLower(strings.TrimSpace(s))) {
	case "", Today:
		return Today, nil
	case Tomorrow:
		return Tomorrow, nil
	default:
		return "", fmt.Errorf("invalid day filter %q", s)
	}
}

// TargetDate resolves filter relative to now.
func TargetDate(filter DateFilter, now time.Time) time.Time {
	if filter == Tomorrow {
		return now.AddDate(0, 0, 1)
	}
	return now
}
