package models

import "time"

const (
	ScheduleStatusActive    = "active"
	ScheduleStatusSuspended = "suspended"
	ScheduleStatusCancelled = "cancelled"
)

// Schedule is a recurring service on a route operated by one fastboat.
// DepartureTime/ArrivalTime are times of day ("HH:MM"); DaysOfWeek uses
// 0=Monday .. 6=Sunday. EffectiveUntil empty means open-ended.
type Schedule struct {
	ID             int64     `json:"id"`
	RouteID        int64     `json:"routeId"`
	FastboatID     int64     `json:"fastboatId"`
	DepartureTime  string    `json:"departureTime"`
	ArrivalTime    string    `json:"arrivalTime"`
	BasePrice      Decimal   `json:"basePrice"`
	Currency       string    `json:"currency"`
	DaysOfWeek     []int     `json:"daysOfWeek"`
	EffectiveFrom  string    `json:"effectiveFrom"`
	EffectiveUntil string    `json:"effectiveUntil,omitempty"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func ValidScheduleStatus(s string) bool {
	switch s {
	case ScheduleStatusActive, ScheduleStatusSuspended, ScheduleStatusCancelled:
		return true
	}
	return false
}

// DailySchedule is the bookable unit: one calendar occurrence of a Schedule.
// Seat inventory lives here, not on the Schedule.
type DailySchedule struct {
	ID              int64       `json:"id"`
	ScheduleID      int64       `json:"scheduleId"`
	TravelDate      string      `json:"travelDate"`
	AvailableSeats  int         `json:"availableSeats"`
	PriceOverride   NullDecimal `json:"priceOverride"`
	IsAvailable     bool        `json:"isAvailable"`
	BookingDeadline *time.Time  `json:"bookingDeadline,omitempty"`
	Notes           string      `json:"notes"`
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt"`
}
