package models

import "time"

// Location is a port/harbor identified by its short code (e.g. "PDB", "GLM").
type Location struct {
	ID        int64     `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	City      string    `json:"city"`
	Country   string    `json:"country"`
	Timezone  string    `json:"timezone"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

// Route links a departure location to an arrival location. The two foreign
// keys point at the same table and must reference different rows.
type Route struct {
	ID                       int64       `json:"id"`
	DepartureLocationID      int64       `json:"departureLocationId"`
	ArrivalLocationID        int64       `json:"arrivalLocationId"`
	DistanceKm               NullDecimal `json:"distanceKm"`
	EstimatedDurationMinutes int         `json:"estimatedDurationMinutes"`
	IsActive                 bool        `json:"isActive"`
	CreatedAt                time.Time   `json:"createdAt"`

	// Resolved codes for responses; empty unless the repo joins locations.
	DepartureCode string `json:"departureCode,omitempty"`
	ArrivalCode   string `json:"arrivalCode,omitempty"`
}
