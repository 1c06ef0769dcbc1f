package types

// CityMatch is a single candidate from a city search.
type CityMatch struct {
	Name    string  `json:"name"`
	Country string  `json:"country"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
}

// ResolvedLocation is the geocoder output for a place looked up within a
// city: its position plus a human-readable address.
type ResolvedLocation struct {
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Address string  `json:"address"`
}
