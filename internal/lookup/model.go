package lookup

import "errors"

// ErrInvalidInput is returned for an empty or oversized query.
var ErrInvalidInput = errors.New("invalid input")

const (
	MinQueryLen = 2
	MaxQueryLen = 200
	maxResults  = 10
)

// Location is a geocoded place.
type Location struct {
	FormattedAddress string   `json:"formattedAddress"`
	City             string   `json:"city,omitempty"`
	State            string   `json:"state,omitempty"`
	Country          string   `json:"country,omitempty"`
	Lat              *float64 `json:"lat,omitempty"`
	Lng              *float64 `json:"lng,omitempty"`
	PlaceID          string   `json:"placeId,omitempty"`
	Fallback         bool     `json:"fallback"`
}

// Institution is an education provider.
type Institution struct {
	ID       string `json:"id,omitempty"`
	Name     string `json:"name"`
	City     string `json:"city,omitempty"`
	State    string `json:"state,omitempty"`
	Website  string `json:"website,omitempty"`
	Fallback bool   `json:"fallback"`
}
