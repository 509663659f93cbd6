package providers

import (
	"context"
	"net/url"

	"github.com/go-playground/validator/v10"

	"github.com/i474232898/archipelago-data-aggregation/internal/weather"
)

var validate = validator.New()

// WeatherFetcher loads current conditions for every commune.
type WeatherFetcher struct {
	up *upstream
}

func NewWeatherFetcher(opts Options) *WeatherFetcher {
	return &WeatherFetcher{up: newUpstream("weather", opts)}
}

// Fetch returns the archipelago map, or only subKey's commune when set.
func (f *WeatherFetcher) Fetch(ctx context.Context, subKey string) (weather.Map, error) {
	var raw weather.Map
	if err := f.up.getJSON(ctx, PathWeather, nil, &raw); err != nil {
		return nil, err
	}

	m := normalizeKeyed(raw, func(code string, r weather.Record) weather.Record {
		if r.CodeZone == "" {
			r.CodeZone = code
		}
		return r
	})

	if subKey == "" {
		return m, nil
	}
	out := weather.Map{}
	if r, ok := m[subKey]; ok {
		out[subKey] = r
	}
	return out, nil
}

// VigilanceFetcher loads the department weather warning.
type VigilanceFetcher struct {
	up *upstream
}

func NewVigilanceFetcher(opts Options) *VigilanceFetcher {
	return &VigilanceFetcher{up: newUpstream("vigilance", opts)}
}

// Fetch returns the warning as served. Placeholders are returned as-is; it is
// up to the caller not to cache them.
func (f *VigilanceFetcher) Fetch(ctx context.Context, _ string) (weather.Vigilance, error) {
	var v weather.Vigilance
	if err := f.up.getJSON(ctx, PathVigilance, nil, &v); err != nil {
		return weather.Vigilance{}, err
	}
	if v.IsPlaceholder() {
		return v, nil
	}
	if err := validate.Struct(v); err != nil {
		return weather.Vigilance{}, err
	}
	return v, nil
}

// ForecastFetcher loads multi-day forecasts.
type ForecastFetcher struct {
	up *upstream
}

func NewForecastFetcher(opts Options) *ForecastFetcher {
	return &ForecastFetcher{up: newUpstream("forecast", opts)}
}

// Fetch returns every commune's forecast, or a one-entry map for subKey.
func (f *ForecastFetcher) Fetch(ctx context.Context, subKey string) (weather.ForecastMap, error) {
	if subKey == "" {
		var raw weather.ForecastMap
		if err := f.up.getJSON(ctx, PathForecast, nil, &raw); err != nil {
			return nil, err
		}
		return normalizeKeyed(raw, func(code string, fc weather.Forecast) weather.Forecast {
			if fc.CodeZone == "" {
				fc.CodeZone = code
			}
			return fc
		}), nil
	}

	var fc weather.Forecast
	if err := f.up.getJSON(ctx, PathForecast, url.Values{"code_zone": {subKey}}, &fc); err != nil {
		return nil, err
	}
	if fc.CodeZone == "" {
		fc.CodeZone = subKey
	}
	return weather.ForecastMap{subKey: fc}, nil
}
