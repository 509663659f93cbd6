package weather

import (
	"strings"
)

// Record is the current weather for one commune, keyed by its INSEE code.
// Numeric fields are nil when the upstream did not report them.
type Record struct {
	CodeZone           string   `json:"code_zone"`
	LibZone            string   `json:"lib_zone"`
	Temperature        *float64 `json:"temperature"`
	FeelsLike          *float64 `json:"feels_like"`
	TempMin            *float64 `json:"temp_min"`
	TempMax            *float64 `json:"temp_max"`
	Humidity           *float64 `json:"humidity"`
	Pressure           *float64 `json:"pressure"`
	WindSpeed          *float64 `json:"wind_speed"`
	WindDeg            *float64 `json:"wind_deg"`
	WindGust           *float64 `json:"wind_gust,omitempty"`
	Clouds             *float64 `json:"clouds"`
	UVIndex            *float64 `json:"uv_index,omitempty"`
	WeatherMain        string   `json:"weather_main"`
	WeatherDescription string   `json:"weather_description"`
	WeatherIcon        string   `json:"weather_icon"`
	WeatherCode        *int     `json:"weather_code,omitempty"`
	IsDay              *bool    `json:"is_day,omitempty"`
	Sunrise            string   `json:"sunrise,omitempty"`
	Sunset             string   `json:"sunset,omitempty"`
}

// Map holds current weather by commune code.
type Map map[string]Record

// VigilanceRisk is one phenomenon with its own level.
type VigilanceRisk struct {
	Type  string `json:"type" validate:"required"`
	Level int    `json:"level" validate:"gte=0,lte=4"`
}

// Vigilance is the department-wide weather warning.
type Vigilance struct {
	Department        string          `json:"department" validate:"required"`
	DepartmentName    string          `json:"department_name"`
	Level             int             `json:"level" validate:"gte=0,lte=4"`
	Color             string          `json:"color"`
	Label             string          `json:"label"`
	Risks             []VigilanceRisk `json:"risks" validate:"dive"`
	PhenomenesPhrases []string        `json:"phenomenes_phrases,omitempty"`
	LastUpdate        int64           `json:"last_update"`

	// Error is set by the upstream when it answered with default values.
	Error string `json:"error,omitempty"`
}

// IsPlaceholder reports whether v is not real data: either the upstream
// flagged it or the department identifier is missing.
func (v Vigilance) IsPlaceholder() bool {
	return strings.TrimSpace(v.Department) == "" || v.Error != ""
}

// HourlyForecast is one hour of a daily forecast.
type HourlyForecast struct {
	Time                     string  `json:"time"`
	Hour                     string  `json:"hour"`
	Timestamp                int64   `json:"timestamp"`
	Temperature              float64 `json:"temperature"`
	FeelsLike                float64 `json:"feels_like"`
	Humidity                 float64 `json:"humidity"`
	Precipitation            float64 `json:"precipitation"`
	PrecipitationProbability float64 `json:"precipitation_probability"`
	WeatherCode              int     `json:"weather_code"`
	WeatherMain              string  `json:"weather_main"`
	WeatherDescription       string  `json:"weather_description"`
	WindSpeed                float64 `json:"wind_speed"`
	WindDeg                  float64 `json:"wind_deg"`
	Clouds                   float64 `json:"clouds"`
	IsDay                    bool    `json:"is_day"`
}

// DailyForecast summarizes one day for a commune.
type DailyForecast struct {
	Date                     string           `json:"date"`
	DayName                  string           `json:"day_name"`
	TempMin                  float64          `json:"temp_min"`
	TempMax                  float64          `json:"temp_max"`
	WeatherCode              int              `json:"weather_code"`
	WeatherMain              string           `json:"weather_main"`
	WeatherDescription       string           `json:"weather_description"`
	PrecipitationSum         float64          `json:"precipitation_sum"`
	PrecipitationProbability float64          `json:"precipitation_probability"`
	WindSpeedMax             float64          `json:"wind_speed_max"`
	WindGustsMax             float64          `json:"wind_gusts_max"`
	WindDirection            float64          `json:"wind_direction"`
	UVIndex                  float64          `json:"uv_index"`
	Sunrise                  string           `json:"sunrise"`
	Sunset                   string           `json:"sunset"`
	Hourly                   []HourlyForecast `json:"hourly,omitempty"`
}

// Forecast is the multi-day forecast of one commune.
type Forecast struct {
	CodeZone    string          `json:"code_zone"`
	LibZone     string          `json:"lib_zone"`
	Latitude    float64         `json:"latitude"`
	Longitude   float64         `json:"longitude"`
	Timezone    string          `json:"timezone"`
	Daily       []DailyForecast `json:"daily"`
	LastUpdated int64           `json:"last_updated"`
}

// ForecastMap holds forecasts by commune code.
type ForecastMap map[string]Forecast
