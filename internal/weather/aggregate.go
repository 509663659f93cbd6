package weather

import (
	"github.com/i474232898/archipelago-data-aggregation/internal/aggregate"
)

// SeaStateUnknown is reported when no commune has a wind speed.
const SeaStateUnknown = "Données non disponibles"

// seaStateBands map the average wind speed (km/h) to a sea state.
var seaStateBands = []aggregate.Band{
	{Name: "Calme", UpperBound: 10},
	{Name: "Peu agitée", UpperBound: 20},
	{Name: "Agitée", UpperBound: 30},
	{Name: "Très agitée", UpperBound: 40},
}

const seaStateDangerous = "Dangereuse"

// SeaState classifies an average wind speed.
func SeaState(windSpeed *float64) string {
	if windSpeed == nil {
		return SeaStateUnknown
	}
	return aggregate.Classify(seaStateBands, seaStateDangerous, *windSpeed)
}

// Summary is the archipelago-wide view of the current weather.
type Summary struct {
	Communes       int      `json:"communes"`
	Reporting      int      `json:"reporting"` // communes with a temperature
	AvgTemperature *float64 `json:"avgTemperature"`
	AvgWindSpeed   *float64 `json:"avgWindSpeed"`
	AvgHumidity    *float64 `json:"avgHumidity"`
	GeneralWeather string   `json:"generalWeather,omitempty"`
	SeaState       string   `json:"seaState"`
	Sunrise        string   `json:"sunrise,omitempty"`
	Sunset         string   `json:"sunset,omitempty"`
}

// Summarize folds every commune of m into a Summary. Communes are visited in
// ascending code order; sunrise and sunset come from the first commune that
// has them.
func Summarize(m Map) Summary {
	records := aggregate.OrderedValues(m)

	temps := make([]*float64, 0, len(records))
	winds := make([]*float64, 0, len(records))
	humidity := make([]*float64, 0, len(records))
	descriptions := make([]string, 0, len(records))

	var sunrise, sunset string
	for _, r := range records {
		temps = append(temps, r.Temperature)
		winds = append(winds, r.WindSpeed)
		humidity = append(humidity, r.Humidity)
		descriptions = append(descriptions, r.WeatherDescription)

		if sunrise == "" {
			sunrise = r.Sunrise
		}
		if sunset == "" {
			sunset = r.Sunset
		}
	}

	general, _ := aggregate.MajorityLabel(descriptions)
	avgWind := aggregate.Average(winds)

	return Summary{
		Communes:       len(records),
		Reporting:      aggregate.Count(records, func(r Record) bool { return r.Temperature != nil }),
		AvgTemperature: aggregate.Average(temps),
		AvgWindSpeed:   avgWind,
		AvgHumidity:    aggregate.Average(humidity),
		GeneralWeather: general,
		SeaState:       SeaState(avgWind),
		Sunrise:        sunrise,
		Sunset:         sunset,
	}
}
