package dashboard

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/i474232898/archipelago-data-aggregation/internal/air"
	"github.com/i474232898/archipelago-data-aggregation/internal/freshness"
	"github.com/i474232898/archipelago-data-aggregation/internal/logger"
	"github.com/i474232898/archipelago-data-aggregation/internal/providers"
	"github.com/i474232898/archipelago-data-aggregation/internal/refresh"
	"github.com/i474232898/archipelago-data-aggregation/internal/store"
	"github.com/i474232898/archipelago-data-aggregation/internal/water"
	"github.com/i474232898/archipelago-data-aggregation/internal/weather"
)

// Fetchers holds one fetcher per category.
type Fetchers struct {
	Weather    refresh.Fetcher[weather.Map]
	Vigilance  refresh.Fetcher[weather.Vigilance]
	AirQuality refresh.Fetcher[air.Map]
	WaterCuts  refresh.Fetcher[water.Map]
	Forecast   refresh.Fetcher[weather.ForecastMap]
}

// HTTPFetchers builds the upstream fetchers. A non-nil waterFile replaces the
// water-cuts endpoint.
func HTTPFetchers(opts providers.Options, waterFile *providers.WaterFileSource) Fetchers {
	return Fetchers{
		Weather:    providers.NewWeatherFetcher(opts),
		Vigilance:  providers.NewVigilanceFetcher(opts),
		AirQuality: providers.NewAirQualityFetcher(opts),
		WaterCuts:  providers.NewWaterCutsFetcher(opts, waterFile),
		Forecast:   providers.NewForecastFetcher(opts),
	}
}

// Options configure a Service.
type Options struct {
	Policy   *freshness.Policy
	Medium   store.Medium
	Fetchers Fetchers

	// AlertLabels override air.DefaultAlertLabels when non-empty.
	AlertLabels []string
	// ForecastCommunes are refreshed per commune with every forecast refresh.
	ForecastCommunes []string
	// WaterFile, when set, is watched and triggers water-cuts refreshes.
	WaterFile *providers.WaterFileSource

	// Now defaults to time.Now.
	Now func() time.Time
}

// Service owns one coordinator per category and derives the dashboard views
// from their live state.
type Service struct {
	weather    *refresh.Coordinator[weather.Map]
	vigilance  *refresh.Coordinator[weather.Vigilance]
	airQuality *refresh.Coordinator[air.Map]
	waterCuts  *refresh.Coordinator[water.Map]
	forecast   *refresh.Coordinator[weather.ForecastMap]

	group            *refresh.Group
	alertLabels      []string
	forecastCommunes []string
	waterFile        *providers.WaterFileSource
	now              func() time.Time
	log              *logrus.Entry
}

func isEmptyMap[M ~map[string]V, V any](m M) bool { return len(m) == 0 }

// New wires the coordinators.
func New(opts Options) *Service {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	clock := refresh.WithClock(now)
	alertLabels := opts.AlertLabels
	if len(alertLabels) == 0 {
		alertLabels = air.DefaultAlertLabels
	}

	s := &Service{
		weather: refresh.NewCoordinator(refresh.Spec[weather.Map]{
			Category: freshness.Weather,
			Fetcher:  opts.Fetchers.Weather,
			Empty:    isEmptyMap[weather.Map],
		}, opts.Policy, store.NewRecords[weather.Map](opts.Medium), clock),

		vigilance: refresh.NewCoordinator(refresh.Spec[weather.Vigilance]{
			Category:    freshness.Vigilance,
			Fetcher:     opts.Fetchers.Vigilance,
			Empty:       func(v weather.Vigilance) bool { return strings.TrimSpace(v.Department) == "" },
			Placeholder: weather.Vigilance.IsPlaceholder,
		}, opts.Policy, store.NewRecords[weather.Vigilance](opts.Medium), clock),

		airQuality: refresh.NewCoordinator(refresh.Spec[air.Map]{
			Category: freshness.AirQuality,
			Fetcher:  opts.Fetchers.AirQuality,
			Empty:    isEmptyMap[air.Map],
		}, opts.Policy, store.NewRecords[air.Map](opts.Medium), clock),

		waterCuts: refresh.NewCoordinator(refresh.Spec[water.Map]{
			Category: freshness.WaterCuts,
			Fetcher:  opts.Fetchers.WaterCuts,
			Empty:    isEmptyMap[water.Map],
		}, opts.Policy, store.NewRecords[water.Map](opts.Medium), clock),

		forecast: refresh.NewCoordinator(refresh.Spec[weather.ForecastMap]{
			Category: freshness.Forecast,
			Fetcher:  opts.Fetchers.Forecast,
			Empty:    isEmptyMap[weather.ForecastMap],
		}, opts.Policy, store.NewRecords[weather.ForecastMap](opts.Medium), clock),

		alertLabels:      alertLabels,
		forecastCommunes: opts.ForecastCommunes,
		waterFile:        opts.WaterFile,
		now:              now,
		log:              logger.WithComponent("dashboard"),
	}
	s.group = refresh.NewGroup(s.weather, s.vigilance, s.airQuality, s.waterCuts, s.forecast)
	return s
}

// Refresh runs req through the coordinators. A whole-forecast refresh also
// refreshes the configured forecast communes.
func (s *Service) Refresh(ctx context.Context, req refresh.Request) []refresh.Outcome {
	outcomes := s.group.Refresh(ctx, req)

	wantsForecast := len(req.Categories) == 0 || slices.Contains(req.Categories, freshness.Forecast)
	if req.SubKey != "" || !wantsForecast {
		return outcomes
	}
	for _, code := range s.forecastCommunes {
		outcomes = append(outcomes, s.group.Refresh(ctx, refresh.Request{
			Categories: []freshness.Category{freshness.Forecast},
			SubKey:     code,
			Force:      req.Force,
		})...)
	}
	return outcomes
}

// Start performs the initial non-forced refresh of every category and starts
// watching the water-cuts file when one is configured.
func (s *Service) Start(ctx context.Context) error {
	s.Refresh(ctx, refresh.Request{})

	if s.waterFile == nil {
		return nil
	}
	return s.waterFile.Watch(ctx, func() {
		s.log.WithField("path", s.waterFile.Path()).Info("water schedule changed")
		s.Refresh(ctx, refresh.Request{
			Categories: []freshness.Category{freshness.WaterCuts},
			Force:      true,
		})
	})
}

func (s *Service) Categories() []freshness.Category { return s.group.Categories() }

func (s *Service) Weather() refresh.Live[weather.Map] { return s.weather.Snapshot("") }

func (s *Service) Vigilance() refresh.Live[weather.Vigilance] { return s.vigilance.Snapshot("") }

func (s *Service) AirQuality() refresh.Live[air.Map] { return s.airQuality.Snapshot("") }

func (s *Service) WaterCuts() refresh.Live[water.Map] { return s.waterCuts.Snapshot("") }

// Forecast returns the forecast live state, scoped to a commune when code is set.
func (s *Service) Forecast(code string) refresh.Live[weather.ForecastMap] {
	return s.forecast.Snapshot(code)
}

// CommuneWeather refreshes the weather of one commune if needed and returns it.
func (s *Service) CommuneWeather(ctx context.Context, code string) (refresh.Live[weather.Map], refresh.Outcome) {
	out := s.weather.Refresh(ctx, code, false)
	return s.weather.Snapshot(code), out
}

// CommuneForecast refreshes the forecast of one commune if needed and returns it.
func (s *Service) CommuneForecast(ctx context.Context, code string) (refresh.Live[weather.ForecastMap], refresh.Outcome) {
	out := s.forecast.Refresh(ctx, code, false)
	return s.forecast.Snapshot(code), out
}
