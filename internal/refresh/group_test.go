package refresh

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/archipelago-data-aggregation/internal/freshness"
)

type panicky struct{ cat freshness.Category }

func (p panicky) Category() freshness.Category { return p.cat }
func (p panicky) Refresh(context.Context, string, bool) Outcome {
	panic("boom")
}

func TestGroup_FailuresAreIsolated(t *testing.T) {
	weather := newFixture(t, freshness.Weather, returns(ok(sunny)))
	air := newFixture(t, freshness.AirQuality, returns(fail(errUpstream)))
	g := NewGroup(weather.coord, air.coord, panicky{cat: freshness.WaterCuts})

	outcomes := g.Refresh(context.Background(), Request{})

	require.Len(t, outcomes, 3)
	assert.Equal(t, freshness.Weather, outcomes[0].Category)
	assert.Equal(t, ActionFetched, outcomes[0].Action)
	assert.Equal(t, ActionFailed, outcomes[1].Action)
	assert.Equal(t, ActionFailed, outcomes[2].Action)
	assert.Equal(t, "boom", outcomes[2].Error)

	assert.NotEmpty(t, outcomes[0].RunID)
	assert.Equal(t, outcomes[0].RunID, outcomes[1].RunID)
	assert.True(t, weather.coord.Snapshot("").Present)
}

func TestGroup_SelectedCategoriesAndSubKey(t *testing.T) {
	forecast := newFixture(t, freshness.Forecast, returns(ok(sunny)))
	vigilance := newFixture(t, freshness.Vigilance, returns(ok(sunny)))
	g := NewGroup(forecast.coord, vigilance.coord)

	outcomes := g.Refresh(context.Background(), Request{
		Categories: []freshness.Category{freshness.Forecast, freshness.Vigilance},
		SubKey:     "97101",
	})

	require.Len(t, outcomes, 2)
	assert.Equal(t, "97101", outcomes[0].SubKey)
	assert.Empty(t, outcomes[1].SubKey)
	assert.True(t, forecast.coord.Snapshot("97101").Present)
	assert.False(t, forecast.coord.Snapshot("").Present)
}

func TestGroup_UnknownCategory(t *testing.T) {
	g := NewGroup()
	outcomes := g.Refresh(context.Background(), Request{Categories: []freshness.Category{freshness.Forecast}})

	require.Len(t, outcomes, 1)
	assert.Equal(t, ActionFailed, outcomes[0].Action)
}

func TestGroup_Categories(t *testing.T) {
	a := newFixture(t, freshness.Weather, returns(ok(sunny)))
	b := newFixture(t, freshness.Forecast, returns(ok(sunny)))
	g := NewGroup(a.coord, b.coord, a.coord)

	assert.Equal(t, []freshness.Category{freshness.Weather, freshness.Forecast}, g.Categories())
}
