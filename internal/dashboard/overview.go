package dashboard

import (
	"fmt"
	"time"

	"github.com/i474232898/archipelago-data-aggregation/internal/air"
	"github.com/i474232898/archipelago-data-aggregation/internal/water"
	"github.com/i474232898/archipelago-data-aggregation/internal/weather"
)

// Freshness describes the live state a view was derived from.
type Freshness struct {
	Loading     bool      `json:"loading"`
	Stale       bool      `json:"stale"`
	Placeholder bool      `json:"placeholder,omitempty"`
	// UpdatedAt is nil until a real value has been written.
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

type WeatherView struct {
	weather.Summary
	Freshness
}

type AirView struct {
	air.Summary
	Status string `json:"status"`
	Freshness
}

type WaterView struct {
	water.Summary
	Status string `json:"status"`
	Freshness
}

type VigilanceView struct {
	Label string `json:"label"`
	Color string `json:"color"`
	Level int    `json:"level"`
	Freshness
}

// Overview is the archipelago at a glance.
type Overview struct {
	Vigilance VigilanceView `json:"vigilance"`
	Weather   WeatherView   `json:"weather"`
	Air       AirView       `json:"air"`
	Water     WaterView     `json:"water"`
}

func freshnessOf(loading, stale, placeholder bool, updated time.Time) Freshness {
	f := Freshness{Loading: loading, Stale: stale, Placeholder: placeholder}
	if !updated.IsZero() {
		f.UpdatedAt = &updated
	}
	return f
}

// WeatherSummary folds the live weather map.
func (s *Service) WeatherSummary() WeatherView {
	live := s.Weather()
	return WeatherView{
		Summary:   weather.Summarize(live.Value),
		Freshness: freshnessOf(live.Loading, live.Stale, live.Placeholder, live.UpdatedAt),
	}
}

// AirSummary folds the live air-quality map.
func (s *Service) AirSummary() AirView {
	live := s.AirQuality()
	sum := air.Summarize(live.Value, s.alertLabels)
	return AirView{
		Summary:   sum,
		Status:    airStatus(sum.AlertCount),
		Freshness: freshnessOf(live.Loading, live.Stale, live.Placeholder, live.UpdatedAt),
	}
}

// WaterSummary counts communes with cuts on the day selected by filter.
func (s *Service) WaterSummary(filter water.DateFilter) WaterView {
	live := s.WaterCuts()
	sum := water.Summarize(live.Value, water.TargetDate(filter, s.now()))
	return WaterView{
		Summary:   sum,
		Status:    waterStatus(sum.CommunesWithCuts, filter),
		Freshness: freshnessOf(live.Loading, live.Stale, live.Placeholder, live.UpdatedAt),
	}
}

// VigilanceSummary reports the live warning, or the default when none is live.
func (s *Service) VigilanceSummary() VigilanceView {
	live := s.Vigilance()
	view := VigilanceView{
		Label:     weather.VigilanceLabel(nil),
		Color:     weather.NormalizeVigilanceColor(""),
		Freshness: freshnessOf(live.Loading, live.Stale, live.Placeholder, live.UpdatedAt),
	}
	if live.Present {
		view.Label = weather.VigilanceLabel(&live.Value)
		view.Color = weather.NormalizeVigilanceColor(live.Value.Color)
		view.Level = live.Value.Level
	}
	return view
}

// Overview combines every summary for today.
func (s *Service) Overview() Overview {
	return Overview{
		Vigilance: s.VigilanceSummary(),
		Weather:   s.WeatherSummary(),
		Air:       s.AirSummary(),
		Water:     s.WaterSummary(water.Today),
	}
}

func plural(n int) string {
	if n > 1 {
		return "s"
	}
	return ""
}

func airStatus(alerts int) string {
	if alerts == 0 {
		return "Qualité globale bonne à moyenne"
	}
	return fmt.Sprintf("%d commune%s en mauvaise qualité", alerts, plural(alerts))
}

func waterStatus(cuts int, filter water.DateFilter) string {
	if cuts == 0 {
		if filter == water.Tomorrow {
			return "Aucun tour d'eau signalé demain"
		}
		return "Aucun tour d'eau signalé aujourd'hui"
	}
	return fmt.Sprintf("%d commune%s avec tours d'eau", cuts, plural(cuts))
}
