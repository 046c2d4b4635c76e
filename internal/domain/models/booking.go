package models

import "time"

const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
	BookingStatusCompleted = "completed"
)

// Booking reserves seats on one DailySchedule. BookingReference is the
// human-readable code shown to the customer (max 20 chars, unique).
type Booking struct {
	ID                 int64      `json:"id"`
	BookingReference   string     `json:"bookingReference"`
	UserID             int64      `json:"userId"`
	DailyScheduleID    int64      `json:"dailyScheduleId"`
	PassengerCount     int        `json:"passengerCount"`
	TotalAmount        Decimal    `json:"totalAmount"`
	Currency           string     `json:"currency"`
	Status             string     `json:"status"`
	ContactEmail       string     `json:"contactEmail"`
	ContactPhone       string     `json:"contactPhone"`
	SpecialRequests    string     `json:"specialRequests"`
	BookingDeadline    time.Time  `json:"bookingDeadline"`
	BookedAt           time.Time  `json:"bookedAt"`
	ConfirmedAt        *time.Time `json:"confirmedAt,omitempty"`
	CancelledAt        *time.Time `json:"cancelledAt,omitempty"`
	CancellationReason string     `json:"cancellationReason,omitempty"`

	Passengers []Passenger `json:"passengers,omitempty"`
}

func ValidBookingStatus(s string) bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCancelled, BookingStatusCompleted:
		return true
	}
	return false
}

// Passenger holds per-seat identity and travel-document details.
type Passenger struct {
	ID             int64     `json:"id"`
	BookingID      int64     `json:"bookingId"`
	FirstName      string    `json:"firstName"`
	LastName       string    `json:"lastName"`
	DateOfBirth    string    `json:"dateOfBirth,omitempty"`
	Nationality    string    `json:"nationality,omitempty"`
	PassportNumber string    `json:"passportNumber,omitempty"`
	IDNumber       string    `json:"idNumber,omitempty"`
	SpecialNeeds   string    `json:"specialNeeds,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}
