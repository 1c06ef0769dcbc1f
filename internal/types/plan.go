package types

import "encoding/json"

// DateRange bounds a planned trip.
type DateRange struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// PlanRequest is the client payload for trip recommendations.
type PlanRequest struct {
	City     string          `json:"city"`
	Coords   *Coordinates    `json:"coords"`
	Dates    DateRange       `json:"dates"`
	Prefs    json.RawMessage `json:"prefs,omitempty"`
	Language Language        `json:"language"`
}

// WeatherSummary is the digest line shown on the planning screen.
type WeatherSummary struct {
	Summary string `json:"summary"`
}

// TripTips bundles the pre-trip recommendations: a weather digest, what to
// wear, when to go and general advice.
type TripTips struct {
	Weather   WeatherSummary `json:"weather"`
	Clothing  []string       `json:"clothing"`
	BestTimes []string       `json:"bestTimes"`
	Tips      []string       `json:"tips"`
}
