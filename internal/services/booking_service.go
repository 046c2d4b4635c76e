package services

import (
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"strconv"
	"strings"
	"time"

	intconfig "backend/internal/config"
	"backend/internal/domain"
	"backend/internal/domain/models"
	"backend/internal/repositories"
	"backend/internal/utils"

	"github.com/shopspring/decimal"
)

// Payment window fallback ketika setting booking_payment_window_minutes
// belum diisi.
const defaultPaymentWindowMinutes = 30

// BookingService creates and cancels bookings. Seat decrement, the booking
// row, and its passengers commit in one transaction so inventory never drifts
// from the bookings that hold it.
type BookingService struct {
	DB            *sql.DB
	DailyRepo     repositories.DailyScheduleRepository
	BookingRepo   repositories.BookingRepository
	PassengerRepo repositories.PassengerRepository
	SettingsRepo  repositories.SystemSettingsRepository
	Pricing       PricingService
	RequestID     string
	Now           func() time.Time
}

func (s BookingService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s BookingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// BookingInput is the validated create payload handed down by the handler.
type BookingInput struct {
	UserID          int64
	DailyScheduleID int64
	PassengerCount  int
	ContactEmail    string
	ContactPhone    string
	SpecialRequests string
	Passengers      []models.Passenger
}

// Create books seats for one daily schedule.
func (s BookingService) Create(in BookingInput) (models.Booking, error) {
	var out models.Booking

	if in.PassengerCount < 1 {
		return out, domain.ValidationError{Field: "passenger_count", Msg: "minimal 1"}
	}
	if len(in.Passengers) != in.PassengerCount {
		return out, domain.ValidationError{Field: "passenger_count", Msg: "harus sama dengan jumlah data penumpang"}
	}
	if len(strings.TrimSpace(in.ContactPhone)) > 20 {
		return out, domain.ValidationError{Field: "contact_phone", Msg: "maksimal 20 karakter"}
	}
	if len(strings.TrimSpace(in.SpecialRequests)) > 1000 {
		return out, domain.ValidationError{Field: "special_requests", Msg: "maksimal 1000 karakter"}
	}
	for i, p := range in.Passengers {
		prefix := "passengers[" + strconv.Itoa(i) + "]"
		if strings.TrimSpace(p.FirstName) == "" || strings.TrimSpace(p.LastName) == "" {
			return out, domain.ValidationError{Field: prefix, Msg: "first_name dan last_name wajib diisi"}
		}
		if len(strings.TrimSpace(p.FirstName)) > 100 || len(strings.TrimSpace(p.LastName)) > 100 {
			return out, domain.ValidationError{Field: prefix, Msg: "first_name dan last_name maksimal 100 karakter"}
		}
		if len(strings.TrimSpace(p.Nationality)) > 100 {
			return out, domain.ValidationError{Field: prefix + ".nationality", Msg: "maksimal 100 karakter"}
		}
		if len(strings.TrimSpace(p.PassportNumber)) > 50 {
			return out, domain.ValidationError{Field: prefix + ".passport_number", Msg: "maksimal 50 karakter"}
		}
		if len(strings.TrimSpace(p.IDNumber)) > 50 {
			return out, domain.ValidationError{Field: prefix + ".id_number", Msg: "maksimal 50 karakter"}
		}
		if len(strings.TrimSpace(p.SpecialNeeds)) > 500 {
			return out, domain.ValidationError{Field: prefix + ".special_needs", Msg: "maksimal 500 karakter"}
		}
	}

	bookable, err := s.DailyRepo.GetBookable(in.DailyScheduleID)
	if err != nil {
		return out, err
	}
	now := s.now()
	if bookable.ScheduleStatus != models.ScheduleStatusActive {
		return out, domain.ConflictError{Resource: "daily schedule", Msg: "schedule tidak aktif"}
	}
	if !bookable.IsAvailable {
		return out, domain.ConflictError{Resource: "daily schedule", Msg: "tanggal ini ditutup untuk booking"}
	}
	if bookable.BookingDeadline != nil && now.After(*bookable.BookingDeadline) {
		return out, domain.ConflictError{Resource: "daily schedule", Msg: "batas waktu booking sudah lewat"}
	}
	if bookable.AvailableSeats < in.PassengerCount {
		return out, domain.ConflictError{Resource: "daily schedule", Msg: "kursi tidak mencukupi"}
	}

	perSeat, err := s.Pricing.EffectivePrice(bookable)
	if err != nil {
		return out, err
	}
	total := perSeat.Mul(decimalFromInt(in.PassengerCount)).Round(2)

	booking := models.Booking{
		BookingReference: newBookingReference(),
		UserID:           in.UserID,
		DailyScheduleID:  in.DailyScheduleID,
		PassengerCount:   in.PassengerCount,
		TotalAmount:      total,
		Currency:         bookable.Currency,
		Status:           models.BookingStatusPending,
		ContactEmail:     strings.TrimSpace(in.ContactEmail),
		ContactPhone:     strings.TrimSpace(in.ContactPhone),
		SpecialRequests:  strings.TrimSpace(in.SpecialRequests),
		BookingDeadline:  s.paymentDeadline(now, bookable.BookingDeadline),
		BookedAt:         now,
	}

	tx, err := s.db().Begin()
	if err != nil {
		return out, err
	}
	defer tx.Rollback()

	if err := s.DailyRepo.DecrementSeats(tx, in.DailyScheduleID, in.PassengerCount); err != nil {
		return out, err
	}
	bookingID, err := s.BookingRepo.Insert(tx, booking)
	if err != nil {
		return out, err
	}
	for _, p := range in.Passengers {
		p.BookingID = bookingID
		if _, err := s.PassengerRepo.Insert(tx, p); err != nil {
			return out, err
		}
	}
	if err := tx.Commit(); err != nil {
		return out, err
	}

	utils.LogEvent(s.RequestID, "booking", "create",
		"booking_id="+strconv.FormatInt(bookingID, 10)+" ref="+booking.BookingReference)

	booking.ID = bookingID
	booking.Passengers = in.Passengers
	for i := range booking.Passengers {
		booking.Passengers[i].BookingID = bookingID
	}
	return booking, nil
}

// paymentDeadline is now + configured window, capped at the daily schedule's
// own booking deadline when that comes first.
func (s BookingService) paymentDeadline(now time.Time, scheduleDeadline *time.Time) time.Time {
	minutes := defaultPaymentWindowMinutes
	if setting, err := s.SettingsRepo.Get("booking_payment_window_minutes"); err == nil {
		if v, err := strconv.Atoi(strings.TrimSpace(setting.Value)); err == nil && v > 0 {
			minutes = v
		}
	}
	deadline := now.Add(time.Duration(minutes) * time.Minute)
	if scheduleDeadline != nil && scheduleDeadline.Before(deadline) {
		deadline = *scheduleDeadline
	}
	return deadline
}

// Cancel releases the seats and stamps cancelled_at.
func (s BookingService) Cancel(bookingID int64, reason string) error {
	if len(strings.TrimSpace(reason)) > 500 {
		return domain.ValidationError{Field: "reason", Msg: "maksimal 500 karakter"}
	}
	booking, err := s.BookingRepo.GetByID(bookingID)
	if err != nil {
		return err
	}

	tx, err := s.db().Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.BookingRepo.Cancel(tx, bookingID, s.now(), strings.TrimSpace(reason)); err != nil {
		return err
	}
	if err := s.DailyRepo.IncrementSeats(tx, booking.DailyScheduleID, booking.PassengerCount); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	utils.LogEvent(s.RequestID, "booking", "cancel", "booking_id="+strconv.FormatInt(bookingID, 10))
	return nil
}

// ExpireOverdue cancels pending bookings whose payment deadline passed and
// returns how many were swept.
func (s BookingService) ExpireOverdue() (int, error) {
	expired, err := s.BookingRepo.ListExpiredPending(s.now())
	if err != nil {
		return 0, err
	}
	swept := 0
	for _, b := range expired {
		if err := s.Cancel(b.ID, "pembayaran melewati batas waktu"); err != nil {
			return swept, err
		}
		swept++
	}
	return swept, nil
}

// Get returns a booking with its passengers attached.
func (s BookingService) Get(bookingID int64) (models.Booking, error) {
	booking, err := s.BookingRepo.GetByID(bookingID)
	if err != nil {
		return booking, err
	}
	passengers, err := s.PassengerRepo.ListByBookingID(bookingID)
	if err != nil {
		return booking, err
	}
	booking.Passengers = passengers
	return booking, nil
}

func decimalFromInt(n int) decimal.Decimal {
	return decimal.NewFromInt(int64(n))
}

// newBookingReference builds the customer-facing code, e.g. FB-4C21A7D90E.
// 5 random bytes keep it far under the 20-char column limit.
func newBookingReference() string {
	b := make([]byte, 5)
	if _, err := rand.Read(b); err != nil {
		return "FB-" + strconv.FormatInt(time.Now().UnixNano(), 36)
	}
	return "FB-" + strings.ToUpper(hex.EncodeToString(b))
}
