package geocode

import "context"

// Geocoder resolves a street address to coordinates. Used when a merchant
// registers without supplying lat/lng.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (*Result, error)
}

type Result struct {
	Address   string  `json:"formatted_address"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}
