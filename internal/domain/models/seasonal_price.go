package models

import "time"

// SeasonalPrice multiplies a route's base price when the travel date falls in
// [StartDate, EndDate]. The range is year-agnostic: only month and day of the
// stored dates matter, and a range may wrap the year end (e.g. Dec 20 - Jan 5).
type SeasonalPrice struct {
	ID              int64     `json:"id"`
	RouteID         int64     `json:"routeId"`
	SeasonName      string    `json:"seasonName"`
	StartDate       string    `json:"startDate"`
	EndDate         string    `json:"endDate"`
	PriceMultiplier Decimal   `json:"priceMultiplier"`
	IsActive        bool      `json:"isActive"`
	CreatedAt       time.Time `json:"createdAt"`
}
