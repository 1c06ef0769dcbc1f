package types

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type Language string

const (
	LanguageRU Language = "ru"
	LanguageEN Language = "en"
)

// Valid reports whether the language is one of the supported codes.
func (l Language) Valid() bool {
	return l == LanguageRU || l == LanguageEN
}

type HungerLevel string

const (
	HungerSnack  HungerLevel = "snack"
	HungerNormal HungerLevel = "normal"
	HungerHungry HungerLevel = "hungry"
)

type TransportMode string

const (
	TransportWalk        TransportMode = "walk"
	TransportWalkTransit TransportMode = "walk+transit"
	TransportTransit     TransportMode = "transit"
)

// TripRequest is the client payload for route generation. Profile carries the
// user's saved preferences verbatim; it is forwarded to the model untouched.
type TripRequest struct {
	City      string          `json:"city"`
	Country   string          `json:"country,omitempty"`
	Time      string          `json:"time"`
	Profile   json.RawMessage `json:"profile,omitempty"`
	Hunger    HungerLevel     `json:"hunger"`
	Transport TransportMode   `json:"transport"`
	WithKids  bool            `json:"withKids"`
	Language  Language        `json:"language"`
}

// PlaceDraft is a single stop as produced by the draft generator, before
// geocoding. Order in the slice is the visiting order.
type PlaceDraft struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Time        string `json:"time"`
	Description string `json:"description"`
}

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// ResolvedPlace is a PlaceDraft enriched with geocoding output. Both Coords
// and Address stay nil when the place could not be resolved; that is a valid
// state, not an error.
type ResolvedPlace struct {
	PlaceDraft
	Coords  *Coordinates `json:"coords"`
	Address *string      `json:"address"`
}

// ItineraryDraft is the shape the draft generator returns: an itinerary
// without coordinates. TotalDistance is optional; when the generator supplies
// it, the pipeline keeps it instead of computing its own.
type ItineraryDraft struct {
	Title         string       `json:"title"`
	Duration      string       `json:"duration"`
	Places        []PlaceDraft `json:"places"`
	EstimatedCost string       `json:"estimatedCost"`
	TotalDistance string       `json:"totalDistance,omitempty"`
	Language      Language     `json:"language,omitempty"`
}

// Itinerary is the finished route returned to the client and persisted as
// history. Places has exactly the same length and order as the draft.
type Itinerary struct {
	Title         string          `json:"title"`
	Duration      string          `json:"duration"`
	Places        []ResolvedPlace `json:"places"`
	EstimatedCost string          `json:"estimatedCost"`
	TotalDistance string          `json:"totalDistance"`
	Language      Language        `json:"language,omitempty"`
}

// SavedRoute matches the routes table structure.
type SavedRoute struct {
	ID        uuid.UUID `json:"id"`
	UserID    int64     `json:"user_id"`
	City      string    `json:"city"`
	Country   *string   `json:"country,omitempty"`
	Language  Language  `json:"language"`
	Route     Itinerary `json:"route"`
	CreatedAt time.Time `json:"created_at"`
}
