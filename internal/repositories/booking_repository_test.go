package repositories

import (
	"testing"
	"time"

	"backend/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestBookingConfirmOnlyPending(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	// WHERE id AND status='pending' missed: booking already cancelled
	mock.ExpectExec("UPDATE bookings").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := BookingRepository{DB: db}
	err = repo.Confirm(42, time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC))
	if !domain.IsConflict(err) {
		t.Fatalf("confirming a non-pending booking must be a conflict, got %v", err)
	}
}

func TestBookingGetByReference(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	now := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{
		"id", "booking_reference", "user_id", "daily_schedule_id", "passenger_count",
		"total_amount", "currency", "status", "contact_email", "contact_phone",
		"special_requests", "booking_deadline", "booked_at", "confirmed_at", "cancelled_at",
		"cancellation_reason",
	}).AddRow(42, "FB-AB12CD34EF", 1, 10, 2,
		"700000.00", "IDR", "confirmed", "a@b.com", "",
		"", now.Add(30*time.Minute), now, now, nil, "")

	mock.ExpectQuery("WHERE booking_reference").
		WithArgs("FB-AB12CD34EF").
		WillReturnRows(rows)
	mock.ExpectQuery("WHERE booking_reference").
		WithArgs("FB-MISSING").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	repo := BookingRepository{DB: db}
	booking, err := repo.GetByReference("FB-AB12CD34EF")
	if err != nil {
		t.Fatalf("expected lookup to succeed, got %v", err)
	}
	if booking.ID != 42 || booking.Status != "confirmed" {
		t.Fatalf("wrong booking back: %+v", booking)
	}

	if _, err := repo.GetByReference("FB-MISSING"); !domain.IsNotFound(err) {
		t.Fatalf("unknown reference must be not found, got %v", err)
	}
}

func TestListExpiredPendingFiltersByDeadline(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	now := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{
		"id", "booking_reference", "user_id", "daily_schedule_id", "passenger_count",
		"total_amount", "currency", "status", "contact_email", "contact_phone",
		"special_requests", "booking_deadline", "booked_at", "confirmed_at", "cancelled_at",
		"cancellation_reason",
	}).AddRow(42, "FB-AB12CD34EF", 1, 10, 2,
		"700000.00", "IDR", "pending", "a@b.com", "",
		"", now.Add(-time.Hour), now.Add(-2*time.Hour), nil, nil, "")

	mock.ExpectQuery("FROM bookings").
		WithArgs("pending", now).
		WillReturnRows(rows)

	repo := BookingRepository{DB: db}
	expired, err := repo.ListExpiredPending(now)
	if err != nil {
		t.Fatalf("expected list to succeed, got %v", err)
	}
	if len(expired) != 1 || expired[0].ID != 42 {
		t.Fatalf("expected the overdue booking back, got %+v", expired)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet sqlmock expectations: %v", err)
	}
}
