package weather

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f(v float64) *float64 { return &v }

func TestSeaState(t *testing.T) {
	tests := []struct {
		wind *float64
		want string
	}{
		{nil, SeaStateUnknown},
		{f(0), "Calme"},
		{f(9.9), "Calme"},
		{f(10), "Peu agitée"},
		{f(25), "Agitée"},
		{f(39.9), "Très agitée"},
		{f(40), "Dangereuse"},
		{f(120), "Dangereuse"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SeaState(tt.wind))
	}
}

func TestSummarize(t *testing.T) {
	m := Map{
		"97101": {CodeZone: "97101", Temperature: f(28.0), WindSpeed: f(12), WeatherDescription: "Ciel dégagé", Sunrise: "06:01", Sunset: "17:50"},
		"97102": {CodeZone: "97102", Temperature: f(30.0), WindSpeed: f(18), WeatherDescription: "ciel dégagé"},
		"97103": {CodeZone: "97103", Temperature: nil, WindSpeed: nil, WeatherDescription: "Averses"},
		"97104": {CodeZone: "97104", Temperature: f(29.0), WindSpeed: f(15), WeatherDescription: "Averses", Sunrise: "06:03"},
	}

	s := Summarize(m)

	assert.Equal(t, 4, s.Communes)
	assert.Equal(t, 3, s.Reporting)
	require.NotNil(t, s.AvgTemperature)
	assert.Equal(t, 29.0, *s.AvgTemperature)
	require.NotNil(t, s.AvgWindSpeed)
	assert.Equal(t, 15.0, *s.AvgWindSpeed)
	assert.Nil(t, s.AvgHumidity)
	assert.Equal(t, "Ciel dégagé", s.GeneralWeather)
	assert.Equal(t, "Peu agitée", s.SeaState)
	assert.Equal(t, "06:01", s.Sunrise)
	assert.Equal(t, "17:50", s.Sunset)
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)

	assert.Equal(t, 0, s.Communes)
	assert.Nil(t, s.AvgTemperature)
	assert.Nil(t, s.AvgWindSpeed)
	assert.Empty(t, s.GeneralWeather)
	assert.Equal(t, SeaStateUnknown, s.SeaState)
}

func TestVigilanceIsPlaceholder(t *testing.T) {
	assert.False(t, Vigilance{Department: "971", Level: 2}.IsPlaceholder())
	assert.True(t, Vigilance{Level: 1, Label: "Vert"}.IsPlaceholder())
	assert.True(t, Vigilance{Department: "971", Error: "credentials missing"}.IsPlaceholder())
}
