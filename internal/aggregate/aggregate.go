// Package aggregate holds the pure folds used to turn per-commune records
// into archipelago-wide values. Every function tolerates empty input.
//
// Inputs are ordered slices. Callers folding a map must iterate it with
// OrderedKeys so that tie-breaks are deterministic.
package aggregate

import (
	"cmp"
	"math"
	"slices"
	"strings"
)

// Round1 rounds v to one decimal place, halves away from zero.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Average returns the mean of the non-nil values rounded to one decimal, or
// nil when there is nothing to average.
func Average(values []*float64) *float64 {
	var (
		sum float64
		n   int
	)
	for _, v := range values {
		if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
			continue
		}
		sum += *v
		n++
	}
	if n == 0 {
		return nil
	}
	avg := Round1(sum / float64(n))
	return &avg
}

// MajorityLabel returns the most frequent label, comparing case-insensitively
// and ignoring blanks. The first label to reach the running maximum wins
// ties. The returned spelling is the first one seen for the winning label.
func MajorityLabel(labels []string) (string, bool) {
	counts := make(map[string]int, len(labels))
	spelling := make(map[string]string, len(labels))

	best := ""
	bestCount := 0
	for _, label := range labels {
		trimmed := strings.TrimSpace(label)
		if trimmed == "" {
			continue
		}
		key := strings.ToLower(trimmed)
		if _, ok := spelling[key]; !ok {
			spelling[key] = trimmed
		}
		counts[key]++
		if counts[key] > bestCount {
			bestCount = counts[key]
			best = key
		}
	}
	if bestCount == 0 {
		return "", false
	}
	return spelling[best], true
}

// Count returns how many items satisfy pred.
func Count[T any](items []T, pred func(T) bool) int {
	n := 0
	for _, item := range items {
		if pred(item) {
			n++
		}
	}
	return n
}

// Band is a named range ending (exclusively) at UpperBound.
type Band struct {
	Name       string
	UpperBound float64
}

// Classify returns the first band, in ascending order, whose upper bound
// strictly exceeds v. Values past every band get fallback.
func Classify(bands []Band, fallback string, v float64) string {
	for _, b := range bands {
		if v < b.UpperBound {
			return b.Name
		}
	}
	return fallback
}

// OrderedKeys returns the keys of m in ascending order.
func OrderedKeys[K cmp.Ordered, V any](m map[K]V) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// OrderedValues returns the values of m in ascending key order.
func OrderedValues[K cmp.Ordered, V any](m map[K]V) []V {
	out := make([]V, 0, len(m))
	for _, k := range OrderedKeys(m) {
		out = append(out, m[k])
	}
	return out
}
