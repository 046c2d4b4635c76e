package repositories

import (
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	intconfig "backend/internal/config"
	intdb "backend/internal/db"
	"backend/internal/domain"
	"backend/internal/domain/models"

	"github.com/shopspring/decimal"
)

type DailyScheduleRepository struct {
	DB *sql.DB
}

func (r DailyScheduleRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const dailyScheduleColumns = `
	id, schedule_id, DATE_FORMAT(travel_date, '%Y-%m-%d'), available_seats,
	price_override, is_available, booking_deadline, notes, created_at, updated_at`

func scanDailySchedule(scan func(dest ...any) error) (models.DailySchedule, error) {
	var d models.DailySchedule
	var deadline sql.NullTime
	err := scan(
		&d.ID, &d.ScheduleID, &d.TravelDate, &d.AvailableSeats,
		&d.PriceOverride, &d.IsAvailable, &deadline, &d.Notes, &d.CreatedAt, &d.UpdatedAt,
	)
	if deadline.Valid {
		t := deadline.Time
		d.BookingDeadline = &t
	}
	return d, err
}

func (r DailyScheduleRepository) GetByID(id int64) (models.DailySchedule, error) {
	row := r.db().QueryRow(`SELECT`+dailyScheduleColumns+` FROM daily_schedules WHERE id=? LIMIT 1`, id)
	d, err := scanDailySchedule(row.Scan)
	if err == sql.ErrNoRows {
		return d, domain.NotFoundError{Resource: "daily schedule"}
	}
	return d, err
}

// Insert creates one occurrence; (schedule_id, travel_date) unik sehingga
// generate ulang tidak menggandakan baris. The bool reports whether a new row
// was written: MySQL counts 1 affected row for an insert and 0 for the
// id = LAST_INSERT_ID(id) no-op on an existing date.
func (r DailyScheduleRepository) Insert(d models.DailySchedule) (int64, bool, error) {
	res, err := r.db().Exec(`
		INSERT INTO daily_schedules (schedule_id, travel_date, available_seats, price_override, is_available, booking_deadline, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE id = LAST_INSERT_ID(id)
	`,
		d.ScheduleID, d.TravelDate, d.AvailableSeats, d.PriceOverride,
		d.IsAvailable, intdb.NullTime(d.BookingDeadline), d.Notes,
	)
	if err != nil {
		return 0, false, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, false, err
	}
	n, _ := res.RowsAffected()
	return id, n == 1, nil
}

// Patch applies partial update semantics: only keys present in raw JSON are
// written, explicit null clears a nullable column, and an empty body is a
// no-op that leaves the row untouched.
func (r DailyScheduleRepository) Patch(id int64, raw json.RawMessage) error {
	var fields map[string]json.RawMessage
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &fields); err != nil {
			return domain.ValidationError{Field: "body", Msg: "payload tidak valid", Err: err}
		}
	}

	sets := []string{}
	args := []any{}
	isNull := func(v json.RawMessage) bool { return strings.TrimSpace(string(v)) == "null" }

	if v, ok := fields["available_seats"]; ok && !isNull(v) {
		var seats int
		if err := json.Unmarshal(v, &seats); err != nil {
			return domain.ValidationError{Field: "available_seats", Msg: "harus angka", Err: err}
		}
		if seats < 0 {
			return domain.ValidationError{Field: "available_seats", Msg: "tidak boleh negatif"}
		}
		sets = append(sets, "available_seats=?")
		args = append(args, seats)
	}
	if v, ok := fields["price_override"]; ok {
		if isNull(v) {
			sets = append(sets, "price_override=NULL")
		} else {
			var price decimal.Decimal
			if err := json.Unmarshal(v, &price); err != nil {
				return domain.ValidationError{Field: "price_override", Msg: "harus desimal", Err: err}
			}
			sets = append(sets, "price_override=?")
			args = append(args, price)
		}
	}
	if v, ok := fields["is_available"]; ok && !isNull(v) {
		var avail bool
		if err := json.Unmarshal(v, &avail); err != nil {
			return domain.ValidationError{Field: "is_available", Msg: "harus boolean", Err: err}
		}
		sets = append(sets, "is_available=?")
		args = append(args, avail)
	}
	if v, ok := fields["booking_deadline"]; ok {
		if isNull(v) {
			sets = append(sets, "booking_deadline=NULL")
		} else {
			var deadline time.Time
			if err := json.Unmarshal(v, &deadline); err != nil {
				return domain.ValidationError{Field: "booking_deadline", Msg: "harus timestamp RFC3339", Err: err}
			}
			sets = append(sets, "booking_deadline=?")
			args = append(args, deadline)
		}
	}
	if v, ok := fields["notes"]; ok && !isNull(v) {
		var notes string
		if err := json.Unmarshal(v, &notes); err != nil {
			return domain.ValidationError{Field: "notes", Msg: "harus string", Err: err}
		}
		if len(notes) > 500 {
			return domain.ValidationError{Field: "notes", Msg: "maksimal 500 karakter"}
		}
		sets = append(sets, "notes=?")
		args = append(args, notes)
	}

	if len(sets) == 0 {
		// patch kosong = no-op, bukan error
		return nil
	}

	sets = append(sets, "updated_at=NOW()")
	args = append(args, id)
	res, err := r.db().Exec(`UPDATE daily_schedules SET `+strings.Join(sets, ", ")+` WHERE id=?`, args...)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "daily schedule"}
	}
	return nil
}

// BookableDailySchedule bundles what booking and pricing need in one read.
type BookableDailySchedule struct {
	DailyScheduleID int64
	ScheduleID      int64
	RouteID         int64
	TravelDate      string
	AvailableSeats  int
	IsAvailable     bool
	BookingDeadline *time.Time
	PriceOverride   decimal.NullDecimal
	BasePrice       decimal.Decimal
	Currency        string
	ScheduleStatus  string
}

func (r DailyScheduleRepository) GetBookable(id int64) (BookableDailySchedule, error) {
	var b BookableDailySchedule
	var deadline sql.NullTime
	err := r.db().QueryRow(`
		SELECT ds.id, ds.schedule_id, s.route_id,
		       DATE_FORMAT(ds.travel_date, '%Y-%m-%d'),
		       ds.available_seats, ds.is_available, ds.booking_deadline,
		       ds.price_override, s.base_price, s.currency, s.status
		FROM daily_schedules ds
		JOIN schedules s ON s.id = ds.schedule_id
		WHERE ds.id=? LIMIT 1
	`, id).Scan(
		&b.DailyScheduleID, &b.ScheduleID, &b.RouteID,
		&b.TravelDate,
		&b.AvailableSeats, &b.IsAvailable, &deadline,
		&b.PriceOverride, &b.BasePrice, &b.Currency, &b.ScheduleStatus,
	)
	if err == sql.ErrNoRows {
		return b, domain.NotFoundError{Resource: "daily schedule"}
	}
	if deadline.Valid {
		t := deadline.Time
		b.BookingDeadline = &t
	}
	return b, err
}

// AvailabilityRow is one bookable departure matching a route search.
type AvailabilityRow struct {
	DailyScheduleID int64               `json:"dailyScheduleId"`
	ScheduleID      int64               `json:"scheduleId"`
	RouteID         int64               `json:"routeId"`
	FastboatName    string              `json:"fastboatName"`
	DepartureTime   string              `json:"departureTime"`
	ArrivalTime     string              `json:"arrivalTime"`
	TravelDate      string              `json:"travelDate"`
	AvailableSeats  int                 `json:"availableSeats"`
	BasePrice       decimal.Decimal     `json:"basePrice"`
	PriceOverride   decimal.NullDecimal `json:"priceOverride"`
	EffectivePrice  decimal.Decimal     `json:"effectivePrice"`
	Currency        string              `json:"currency"`
}

// Search lists bookable departures for a route and date with enough seats.
func (r DailyScheduleRepository) Search(departureLocationID, arrivalLocationID int64, travelDate string, passengerCount int) ([]AvailabilityRow, error) {
	rows, err := r.db().Query(`
		SELECT ds.id, ds.schedule_id, s.route_id, fb.name,
		       TIME_FORMAT(s.departure_time, '%H:%i'),
		       TIME_FORMAT(s.arrival_time, '%H:%i'),
		       DATE_FORMAT(ds.travel_date, '%Y-%m-%d'),
		       ds.available_seats, s.base_price, ds.price_override, s.currency
		FROM daily_schedules ds
		JOIN schedules s ON s.id = ds.schedule_id
		JOIN routes rt   ON rt.id = s.route_id
		JOIN fastboats fb ON fb.id = s.fastboat_id
		WHERE rt.departure_location_id=? AND rt.arrival_location_id=?
		  AND ds.travel_date=? AND ds.is_available=1
		  AND ds.available_seats >= ?
		  AND s.status='active' AND rt.is_active=1
		ORDER BY s.departure_time ASC
	`, departureLocationID, arrivalLocationID, travelDate, passengerCount)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []AvailabilityRow{}
	for rows.Next() {
		var a AvailabilityRow
		if err := rows.Scan(
			&a.DailyScheduleID, &a.ScheduleID, &a.RouteID, &a.FastboatName,
			&a.DepartureTime, &a.ArrivalTime, &a.TravelDate,
			&a.AvailableSeats, &a.BasePrice, &a.PriceOverride, &a.Currency,
		); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// DecrementSeats reserves seats atomically; 0 rows affected means the seats
// are gone (or the date was closed) and the caller must not book.
func (r DailyScheduleRepository) DecrementSeats(tx *sql.Tx, id int64, count int) error {
	res, err := tx.Exec(`
		UPDATE daily_schedules
		SET available_seats = available_seats - ?, updated_at=NOW()
		WHERE id=? AND is_available=1 AND available_seats >= ?
	`, count, id, count)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ConflictError{Resource: "daily schedule", Msg: "kursi tidak mencukupi"}
	}
	return nil
}

// IncrementSeats returns seats to inventory after a cancellation.
func (r DailyScheduleRepository) IncrementSeats(tx *sql.Tx, id int64, count int) error {
	_, err := tx.Exec(`
		UPDATE daily_schedules
		SET available_seats = available_seats + ?, updated_at=NOW()
		WHERE id=?
	`, count, id)
	return err
}
