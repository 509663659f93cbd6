package weather

import (
	"regexp"
	"strings"
)

// DefaultVigilanceLabel is shown when no warning is live.
const DefaultVigilanceLabel = "Aucune vigilance"

// DefaultVigilanceColor is the green of the lowest level.
const DefaultVigilanceColor = "#28d761"

var namedVigilanceColors = map[string]string{
	"vert":   "#28d761",
	"jaune":  "#f0d53c",
	"orange": "#ff9900",
	"rouge":  "#ff0000",
}

var hexColor = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// NormalizeVigilanceColor maps a French color name or a hex code (with or
// without '#', short or long) to a lowercase six-digit hex code.
func NormalizeVigilanceColor(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return DefaultVigilanceColor
	}
	if named, ok := namedVigilanceColors[strings.ToLower(trimmed)]; ok {
		return named
	}

	hex := trimmed
	if !strings.HasPrefix(hex, "#") {
		hex = "#" + hex
	}
	if !hexColor.MatchString(hex) {
		return DefaultVigilanceColor
	}
	hex = strings.ToLower(hex)
	if len(hex) == 4 {
		r, g, b := hex[1:2], hex[2:3], hex[3:4]
		return "#" + r + r + g + g + b + b
	}
	return hex
}

// VigilanceLabel returns the label of v, or the default when v is absent or
// carries none.
func VigilanceLabel(v *Vigilance) string {
	if v == nil || strings.TrimSpace(v.Label) == "" {
		return DefaultVigilanceLabel
	}
	return v.Label
}
