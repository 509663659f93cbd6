package air

import (
	"strings"

	"github.com/i474232898/archipelago-data-aggregation/internal/aggregate"
)

// DefaultAlertLabels are the index labels counted as an air-quality alert.
var DefaultAlertLabels = []string{"Mauvais", "Très Mauvais", "Extrêmement Mauvais"}

// Summary is the archipelago-wide view of air quality.
type Summary struct {
	Communes      int      `json:"communes"`
	AlertCount    int      `json:"alertCount"`
	AlertCommunes []string `json:"alertCommunes"`
	DominantLabel string   `json:"dominantLabel,omitempty"`
}

// Summarize counts communes whose label is in alertLabels (case-insensitive)
// and elects the dominant label. A nil alertLabels uses DefaultAlertLabels.
func Summarize(m Map, alertLabels []string) Summary {
	if alertLabels == nil {
		alertLabels = DefaultAlertLabels
	}
	alert := make(map[string]struct{}, len(alertLabels))
	for _, l := range alertLabels {
		alert[strings.ToLower(strings.TrimSpace(l))] = struct{}{}
	}
	isAlert := func(r Record) bool {
		_, ok := alert[strings.ToLower(strings.TrimSpace(r.LibQual))]
		return ok && r.LibQual != ""
	}

	codes := aggregate.OrderedKeys(m)
	labels := make([]string, 0, len(codes))
	alertCommunes := []string{}
	for _, code := range codes {
		r := m[code]
		labels = append(labels, r.LibQual)
		if isAlert(r) {
			alertCommunes = append(alertCommunes, code)
		}
	}

	dominant, _ := aggregate.MajorityLabel(labels)
	return Summary{
		Communes:      len(codes),
		AlertCount:    len(alertCommunes),
		AlertCommunes: alertCommunes,
		DominantLabel: dominant,
	}
}
