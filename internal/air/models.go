package air

// Record is the air-quality index of one commune for one day.
type Record struct {
	CodeZone string `json:"code_zone"`
	LibZone  string `json:"lib_zone,omitempty"`
	CodeQual *int   `json:"code_qual,omitempty"`
	LibQual  string `json:"lib_qual,omitempty"`
	CoulQual string `json:"coul_qual,omitempty"`
	DateEch  string `json:"date_ech,omitempty"`
	DateDif  string `json:"date_dif,omitempty"`
	Source   string `json:"source,omitempty"`

	// Pollutant sub-indices.
	CodeNO2  *int `json:"code_no2,omitempty"`
	CodeSO2  *int `json:"code_so2,omitempty"`
	CodeO3   *int `json:"code_o3,omitempty"`
	CodePM10 *int `json:"code_pm10,omitempty"`
	CodePM25 *int `json:"code_pm25,omitempty"`
}

// Map holds air-quality records by commune code.
type Map map[string]Record

// Pollutants returns the reported sub-indices keyed by pollutant code.
func (r Record) Pollutants() map[string]int {
	out := make(map[string]int, 5)
	for name, v := range map[string]*int{
		"no2":  r.CodeNO2,
		"so2":  r.CodeSO2,
		"o3":   r.CodeO3,
		"pm10": r.CodePM10,
		"pm25": r.CodePM25,
	} {
		if v != nil {
			out[name] = *v
		}
	}
	return out
}
