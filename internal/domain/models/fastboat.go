package models

import (
	"encoding/json"
	"time"
)

// Fastboat is a vessel. Facilities is an open-ended JSON object
// (e.g. {"ac": true, "life_jackets": 60}).
type Fastboat struct {
	ID         int64           `json:"id"`
	Name       string          `json:"name"`
	Operator   string          `json:"operator"`
	Capacity   int             `json:"capacity"`
	BoatType   string          `json:"boatType"`
	Facilities json.RawMessage `json:"facilities"`
	IsActive   bool            `json:"isActive"`
	CreatedAt  time.Time       `json:"createdAt"`
}
