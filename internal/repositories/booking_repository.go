package repositories

import (
	"database/sql"
	"time"

	intconfig "backend/internal/config"
	intdb "backend/internal/db"
	"backend/internal/domain"
	"backend/internal/domain/models"
)

type BookingRepository struct {
	DB *sql.DB
}

func (r BookingRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const bookingColumns = `
	id, booking_reference, user_id, daily_schedule_id, passenger_count,
	total_amount, currency, status, contact_email, contact_phone,
	special_requests, booking_deadline, booked_at, confirmed_at, cancelled_at,
	cancellation_reason`

func scanBooking(scan func(dest ...any) error) (models.Booking, error) {
	var b models.Booking
	var confirmedAt, cancelledAt sql.NullTime
	err := scan(
		&b.ID, &b.BookingReference, &b.UserID, &b.DailyScheduleID, &b.PassengerCount,
		&b.TotalAmount, &b.Currency, &b.Status, &b.ContactEmail, &b.ContactPhone,
		&b.SpecialRequests, &b.BookingDeadline, &b.BookedAt, &confirmedAt, &cancelledAt,
		&b.CancellationReason,
	)
	if confirmedAt.Valid {
		t := confirmedAt.Time
		b.ConfirmedAt = &t
	}
	if cancelledAt.Valid {
		t := cancelledAt.Time
		b.CancelledAt = &t
	}
	return b, err
}

func (r BookingRepository) GetByID(id int64) (models.Booking, error) {
	row := r.db().QueryRow(`SELECT`+bookingColumns+` FROM bookings WHERE id=? LIMIT 1`, id)
	b, err := scanBooking(row.Scan)
	if err == sql.ErrNoRows {
		return b, domain.NotFoundError{Resource: "booking"}
	}
	return b, err
}

func (r BookingRepository) GetByReference(ref string) (models.Booking, error) {
	row := r.db().QueryRow(`SELECT`+bookingColumns+` FROM bookings WHERE booking_reference=? LIMIT 1`, ref)
	b, err := scanBooking(row.Scan)
	if err == sql.ErrNoRows {
		return b, domain.NotFoundError{Resource: "booking"}
	}
	return b, err
}

// Insert writes the booking row inside the caller's transaction so the seat
// decrement and the booking commit or roll back together.
func (r BookingRepository) Insert(tx *sql.Tx, b models.Booking) (int64, error) {
	res, err := tx.Exec(`
		INSERT INTO bookings (booking_reference, user_id, daily_schedule_id, passenger_count,
		                      total_amount, currency, status, contact_email, contact_phone,
		                      special_requests, booking_deadline)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		b.BookingReference, b.UserID, b.DailyScheduleID, b.PassengerCount,
		b.TotalAmount, b.Currency, b.Status, b.ContactEmail, b.ContactPhone,
		b.SpecialRequests, b.BookingDeadline,
	)
	if err != nil {
		if intdb.IsDuplicate(err) {
			return 0, domain.ConflictError{Resource: "booking", Msg: "booking_reference sudah dipakai"}
		}
		return 0, err
	}
	return res.LastInsertId()
}

// Confirm stamps confirmed_at exactly when the status flips to confirmed.
func (r BookingRepository) Confirm(id int64, at time.Time) error {
	res, err := r.db().Exec(`
		UPDATE bookings SET status=?, confirmed_at=?
		WHERE id=? AND status=?
	`, models.BookingStatusConfirmed, at, id, models.BookingStatusPending)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ConflictError{Resource: "booking", Msg: "hanya booking pending yang bisa dikonfirmasi"}
	}
	return nil
}

// Cancel stamps cancelled_at and the reason; only pending/confirmed bookings
// can be cancelled.
func (r BookingRepository) Cancel(tx *sql.Tx, id int64, at time.Time, reason string) error {
	res, err := tx.Exec(`
		UPDATE bookings SET status=?, cancelled_at=?, cancellation_reason=?
		WHERE id=? AND status IN (?, ?)
	`, models.BookingStatusCancelled, at, reason, id,
		models.BookingStatusPending, models.BookingStatusConfirmed)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ConflictError{Resource: "booking", Msg: "booking tidak bisa dibatalkan pada status ini"}
	}
	return nil
}

// ListExpiredPending feeds the unpaid-booking sweep: pending bookings whose
// payment deadline already passed.
func (r BookingRepository) ListExpiredPending(now time.Time) ([]models.Booking, error) {
	rows, err := r.db().Query(`
		SELECT`+bookingColumns+`
		FROM bookings
		WHERE status=? AND booking_deadline < ?
		ORDER BY booking_deadline ASC
	`, models.BookingStatusPending, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// ListByUser returns a customer's bookings, newest first.
func (r BookingRepository) ListByUser(userID int64) ([]models.Booking, error) {
	rows, err := r.db().Query(`
		SELECT`+bookingColumns+`
		FROM bookings
		WHERE user_id=?
		ORDER BY booked_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
