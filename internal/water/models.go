package water

// CutDetail is one scheduled cut for a sector of a commune.
type CutDetail struct {
	Secteur                     string `json:"secteur"`
	Horaires                    string `json:"horaires"`
	ZonesAlimentationFavorables string `json:"zones_alimentation_favorables,omitempty"`
}

// Commune lists the cut schedule of one commune.
type Commune struct {
	Commune string      `json:"commune"`
	Details []CutDetail `json:"details"`
}

// Map holds cut schedules by commune code.
type Map map[string]Commune
