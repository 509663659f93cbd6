package providers

import (
	"context"

	"github.com/i474232898/archipelago-data-aggregation/internal/air"
)

// AirQualityFetcher loads the daily air-quality index of every commune.
type AirQualityFetcher struct {
	up *upstream
}

func NewAirQualityFetcher(opts Options) *AirQualityFetcher {
	return &AirQualityFetcher{up: newUpstream("air-quality", opts)}
}

func (f *AirQualityFetcher) Fetch(ctx context.Context, _ string) (air.Map, error) {
	var raw air.Map
	if err := f.up.getJSON(ctx, PathAirQuality, nil, &raw); err != nil {
		return nil, err
	}
	return normalizeKeyed(raw, func(code string, r air.Record) air.Record {
		if r.CodeZone == "" {
			r.CodeZone = code
		}
		return r
	}), nil
}
