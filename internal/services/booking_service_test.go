package services

import (
	"strings"
	"testing"
	"time"

	"backend/internal/domain"
	"backend/internal/domain/models"
	"backend/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
)

func newBookingServiceForTest(t *testing.T) (BookingService, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	mock.MatchExpectationsInOrder(false)

	svc := BookingService{
		DB:            db,
		DailyRepo:     repositories.DailyScheduleRepository{DB: db},
		BookingRepo:   repositories.BookingRepository{DB: db},
		PassengerRepo: repositories.PassengerRepository{DB: db},
		SettingsRepo:  repositories.SystemSettingsRepository{DB: db},
		Pricing:       PricingService{SeasonalRepo: repositories.SeasonalPriceRepository{DB: db}},
		Now:           func() time.Time { return time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC) },
	}
	return svc, mock, func() { db.Close() }
}

func bookableRows(seats int) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "schedule_id", "route_id", "travel_date",
		"available_seats", "is_available", "booking_deadline",
		"price_override", "base_price", "currency", "status",
	}).AddRow(10, 3, 7, "2024-06-10", seats, true, nil, nil, "350000.00", "IDR", "active")
}

func TestBookingCreatePassengerCountMismatch(t *testing.T) {
	svc, _, done := newBookingServiceForTest(t)
	defer done()

	_, err := svc.Create(BookingInput{
		UserID:          1,
		DailyScheduleID: 10,
		PassengerCount:  2,
		ContactEmail:    "a@b.com",
		Passengers:      []models.Passenger{{FirstName: "Made", LastName: "Putra"}},
	})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestBookingCreateRequiresAtLeastOnePassenger(t *testing.T) {
	svc, _, done := newBookingServiceForTest(t)
	defer done()

	_, err := svc.Create(BookingInput{UserID: 1, DailyScheduleID: 10, PassengerCount: 0})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestBookingCreateRejectsOversizedFields(t *testing.T) {
	svc, mock, done := newBookingServiceForTest(t)
	defer done()

	base := BookingInput{
		UserID:          1,
		DailyScheduleID: 10,
		PassengerCount:  1,
		ContactEmail:    "a@b.com",
		Passengers:      []models.Passenger{{FirstName: "Made", LastName: "Putra"}},
	}

	in := base
	in.ContactPhone = strings.Repeat("0", 30)
	if _, err := svc.Create(in); !domain.IsValidation(err) {
		t.Fatalf("30-char contact_phone must be rejected before any SQL, got %v", err)
	}

	in = base
	in.SpecialRequests = strings.Repeat("x", 1001)
	if _, err := svc.Create(in); !domain.IsValidation(err) {
		t.Fatalf("oversized special_requests must be rejected, got %v", err)
	}

	in = base
	in.Passengers = []models.Passenger{{
		FirstName:      "Made",
		LastName:       "Putra",
		PassportNumber: strings.Repeat("A", 51),
	}}
	if _, err := svc.Create(in); !domain.IsValidation(err) {
		t.Fatalf("oversized passport_number must be rejected, got %v", err)
	}

	in = base
	in.Passengers = []models.Passenger{{
		FirstName: strings.Repeat("M", 101),
		LastName:  "Putra",
	}}
	if _, err := svc.Create(in); !domain.IsValidation(err) {
		t.Fatalf("oversized first_name must be rejected, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("validation must fire before the database is touched: %v", err)
	}
}

func TestBookingCancelRejectsLongReason(t *testing.T) {
	svc, _, done := newBookingServiceForTest(t)
	defer done()

	if err := svc.Cancel(42, strings.Repeat("x", 501)); !domain.IsValidation(err) {
		t.Fatalf("oversized cancel reason must be rejected, got %v", err)
	}
}

func TestBookingCreateSuccess(t *testing.T) {
	svc, mock, done := newBookingServiceForTest(t)
	defer done()

	mock.ExpectQuery("FROM daily_schedules ds").WithArgs(int64(10)).
		WillReturnRows(bookableRows(20))
	mock.ExpectQuery("FROM seasonal_prices").WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "route_id", "season_name", "start_date", "end_date",
			"price_multiplier", "is_active", "created_at",
		}))
	mock.ExpectQuery("FROM system_settings").WithArgs("booking_payment_window_minutes").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "key", "value", "data_type", "description", "is_public", "created_at", "updated_at",
		}))

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE daily_schedules").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO bookings").
		WillReturnResult(sqlmock.NewResult(42, 1))
	mock.ExpectExec("INSERT INTO passengers").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO passengers").
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	booking, err := svc.Create(BookingInput{
		UserID:          1,
		DailyScheduleID: 10,
		PassengerCount:  2,
		ContactEmail:    "made@example.com",
		Passengers: []models.Passenger{
			{FirstName: "Made", LastName: "Putra"},
			{FirstName: "Kadek", LastName: "Sari"},
		},
	})
	if err != nil {
		t.Fatalf("expected booking created, got %v", err)
	}
	if booking.ID != 42 {
		t.Fatalf("expected booking id 42, got %d", booking.ID)
	}
	if booking.Status != models.BookingStatusPending {
		t.Fatalf("new booking must be pending, got %q", booking.Status)
	}
	if !strings.HasPrefix(booking.BookingReference, "FB-") || len(booking.BookingReference) > 20 {
		t.Fatalf("bad booking reference %q", booking.BookingReference)
	}
	// 350000.00 per seat x 2 passengers, no seasonal multiplier
	if booking.TotalAmount.StringFixed(2) != "700000.00" {
		t.Fatalf("expected total 700000.00, got %s", booking.TotalAmount.StringFixed(2))
	}
	// default 30 minute payment window from injected now
	wantDeadline := time.Date(2024, 6, 1, 8, 30, 0, 0, time.UTC)
	if !booking.BookingDeadline.Equal(wantDeadline) {
		t.Fatalf("expected deadline %v, got %v", wantDeadline, booking.BookingDeadline)
	}
	if len(booking.Passengers) != 2 || booking.Passengers[0].BookingID != 42 {
		t.Fatalf("passengers not attached to booking: %+v", booking.Passengers)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet sqlmock expectations: %v", err)
	}
}

func TestBookingCreateInsufficientSeats(t *testing.T) {
	svc, mock, done := newBookingServiceForTest(t)
	defer done()

	mock.ExpectQuery("FROM daily_schedules ds").WithArgs(int64(10)).
		WillReturnRows(bookableRows(1))

	_, err := svc.Create(BookingInput{
		UserID:          1,
		DailyScheduleID: 10,
		PassengerCount:  2,
		ContactEmail:    "a@b.com",
		Passengers: []models.Passenger{
			{FirstName: "Made", LastName: "Putra"},
			{FirstName: "Kadek", LastName: "Sari"},
		},
	})
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict when seats are short, got %v", err)
	}
}

func TestBookingCreateSeatGuardLosesRace(t *testing.T) {
	svc, mock, done := newBookingServiceForTest(t)
	defer done()

	mock.ExpectQuery("FROM daily_schedules ds").WithArgs(int64(10)).
		WillReturnRows(bookableRows(5))
	mock.ExpectQuery("FROM seasonal_prices").WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "route_id", "season_name", "start_date", "end_date",
			"price_multiplier", "is_active", "created_at",
		}))
	mock.ExpectQuery("FROM system_settings").WithArgs("booking_payment_window_minutes").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "key", "value", "data_type", "description", "is_public", "created_at", "updated_at",
		}))

	mock.ExpectBegin()
	// another booking took the seats between the read and the guard
	mock.ExpectExec("UPDATE daily_schedules").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	_, err := svc.Create(BookingInput{
		UserID:          1,
		DailyScheduleID: 10,
		PassengerCount:  2,
		ContactEmail:    "a@b.com",
		Passengers: []models.Passenger{
			{FirstName: "Made", LastName: "Putra"},
			{FirstName: "Kadek", LastName: "Sari"},
		},
	})
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict from the seat guard, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet sqlmock expectations: %v", err)
	}
}

func TestBookingCancelReleasesSeats(t *testing.T) {
	svc, mock, done := newBookingServiceForTest(t)
	defer done()

	now := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	bookingRows := sqlmock.NewRows([]string{
		"id", "booking_reference", "user_id", "daily_schedule_id", "passenger_count",
		"total_amount", "currency", "status", "contact_email", "contact_phone",
		"special_requests", "booking_deadline", "booked_at", "confirmed_at", "cancelled_at",
		"cancellation_reason",
	}).AddRow(42, "FB-AB12CD34EF", 1, 10, 2,
		"700000.00", "IDR", "pending", "a@b.com", "",
		"", now.Add(30*time.Minute), now, nil, nil, "")
	mock.ExpectQuery("FROM bookings").WithArgs(int64(42)).WillReturnRows(bookingRows)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE bookings").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE daily_schedules").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := svc.Cancel(42, "berubah rencana"); err != nil {
		t.Fatalf("expected cancel to succeed, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet sqlmock expectations: %v", err)
	}
}
