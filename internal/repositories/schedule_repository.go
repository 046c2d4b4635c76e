package repositories

import (
	"database/sql"
	"encoding/json"

	intconfig "backend/internal/config"
	intdb "backend/internal/db"
	"backend/internal/domain"
	"backend/internal/domain/models"
)

type ScheduleRepository struct {
	DB *sql.DB
}

func (r ScheduleRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// DATE/TIME kolom diformat di SQL supaya model tetap string polos.
const scheduleColumns = `
	id, route_id, fastboat_id,
	TIME_FORMAT(departure_time, '%H:%i'),
	TIME_FORMAT(arrival_time, '%H:%i'),
	base_price, currency, COALESCE(days_of_week, '[]'),
	DATE_FORMAT(effective_from, '%Y-%m-%d'),
	COALESCE(DATE_FORMAT(effective_until, '%Y-%m-%d'), ''),
	status, created_at, updated_at`

func scanSchedule(scan func(dest ...any) error) (models.Schedule, error) {
	var s models.Schedule
	var days []byte
	err := scan(
		&s.ID, &s.RouteID, &s.FastboatID,
		&s.DepartureTime, &s.ArrivalTime,
		&s.BasePrice, &s.Currency, &days,
		&s.EffectiveFrom, &s.EffectiveUntil,
		&s.Status, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return s, err
	}
	if err := json.Unmarshal(days, &s.DaysOfWeek); err != nil {
		return s, domain.InternalError{Msg: "days_of_week rusak", Err: err}
	}
	return s, nil
}

func (r ScheduleRepository) GetByID(id int64) (models.Schedule, error) {
	row := r.db().QueryRow(`SELECT`+scheduleColumns+` FROM schedules WHERE id=? LIMIT 1`, id)
	s, err := scanSchedule(row.Scan)
	if err == sql.ErrNoRows {
		return s, domain.NotFoundError{Resource: "schedule"}
	}
	return s, err
}

func (r ScheduleRepository) ListByRoute(routeID int64) ([]models.Schedule, error) {
	rows, err := r.db().Query(`
		SELECT`+scheduleColumns+`
		FROM schedules
		WHERE route_id=?
		ORDER BY departure_time ASC
	`, routeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Schedule{}
	for rows.Next() {
		s, err := scanSchedule(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r ScheduleRepository) Create(s models.Schedule) (int64, error) {
	days, err := json.Marshal(s.DaysOfWeek)
	if err != nil {
		return 0, err
	}
	res, err := r.db().Exec(`
		INSERT INTO schedules (route_id, fastboat_id, departure_time, arrival_time,
		                       base_price, currency, days_of_week, effective_from, effective_until, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		s.RouteID, s.FastboatID, s.DepartureTime, s.ArrivalTime,
		s.BasePrice, s.Currency, days, s.EffectiveFrom,
		intdb.NullIfEmpty(s.EffectiveUntil), s.Status,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// SetStatus moves a schedule through its lifecycle (active/suspended/cancelled).
func (r ScheduleRepository) SetStatus(id int64, status string) error {
	if !models.ValidScheduleStatus(status) {
		return domain.ValidationError{Field: "status", Msg: "status schedule tidak dikenal"}
	}
	res, err := r.db().Exec(`UPDATE schedules SET status=?, updated_at=NOW() WHERE id=?`, status, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "schedule"}
	}
	return nil
}
