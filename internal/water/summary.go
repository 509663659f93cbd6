package water

import (
	"time"

	"github.com/i474232898/archipelago-data-aggregation/internal/aggregate"
)

// Summary counts communes with a cut on a given day.
type Summary struct {
	Date             string   `json:"date"`
	Weekday          int      `json:"weekday"`
	Communes         int      `json:"communes"`
	CommunesWithCuts int      `json:"communesWithCuts"`
	Codes            []string `json:"codes"`
}

// Summarize reports which communes of m have at least one cut on date.
func Summarize(m Map, date time.Time) Summary {
	codes := []string{}
	for _, code := range aggregate.OrderedKeys(m) {
		c := m[code]
		if len(c.Details) == 0 {
			continue
		}
		if HasCutsOnDay(c, date) {
			codes = append(codes, code)
		}
	}

	return Summary{
		Date:             date.Format("2006-01-02"),
		Weekday:          int(date.Weekday()),
		Communes:         len(m),
		CommunesWithCuts: len(codes),
		Codes:            codes,
	}
}
