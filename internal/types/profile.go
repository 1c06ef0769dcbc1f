package types

import "time"

// Profile holds travel preferences the user saved from the planning screen.
// Food and activities are stored as JSON arrays of labels.
type Profile struct {
	UserID      int64     `json:"user_id"`
	Food        []string  `json:"food,omitempty"`
	Activities  []string  `json:"activities,omitempty"`
	DailyBudget *int      `json:"dailyBudget,omitempty"`
	TravelStyle *string   `json:"travelStyle,omitempty"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// UpsertProfileParams is the request body for creating or updating a profile.
// Nil fields keep their current value.
type UpsertProfileParams struct {
	Food        []string `json:"food,omitempty"`
	Activities  []string `json:"activities,omitempty"`
	DailyBudget *int     `json:"dailyBudget,omitempty"`
	TravelStyle *string  `json:"travelStyle,omitempty"`
}
