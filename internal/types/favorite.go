package types

import (
	"time"

	"github.com/google/uuid"
)

// Favorite matches the favorites table structure. Coordinates and address are
// optional so a place can be saved even when geocoding failed for it.
type Favorite struct {
	ID        uuid.UUID `json:"id"`
	UserID    int64     `json:"user_id"`
	City      string    `json:"city"`
	Name      string    `json:"name"`
	Type      *string   `json:"type,omitempty"`
	Lat       *float64  `json:"lat,omitempty"`
	Lng       *float64  `json:"lng,omitempty"`
	Address   *string   `json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateFavoriteParams is the request body for saving a favorite place.
type CreateFavoriteParams struct {
	City    string   `json:"city"`
	Name    string   `json:"name"`
	Type    *string  `json:"type,omitempty"`
	Lat     *float64 `json:"lat,omitempty"`
	Lng     *float64 `json:"lng,omitempty"`
	Address *string  `json:"address,omitempty"`
}
