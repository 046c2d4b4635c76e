package services

import (
	"database/sql"
	"strings"

	intconfig "backend/internal/config"
	"backend/internal/domain"
	"backend/internal/domain/models"
	"backend/internal/utils"

	"github.com/shopspring/decimal"
)

// SalesReportFilters scope the report: mandatory booking-date range plus
// optional route/fastboat/status narrowing.
type SalesReportFilters struct {
	StartDate  string
	EndDate    string
	RouteID    int64
	FastboatID int64
	Status     string
}

type SalesReportRow struct {
	RouteID       int64           `json:"routeId"`
	DepartureCode string          `json:"departureCode"`
	ArrivalCode   string          `json:"arrivalCode"`
	Bookings      int             `json:"bookings"`
	Passengers    int             `json:"passengers"`
	Revenue       decimal.Decimal `json:"revenue"`
	Currency      string          `json:"currency"`
}

type SalesReport struct {
	StartDate       string           `json:"startDate"`
	EndDate         string           `json:"endDate"`
	TotalBookings   int              `json:"totalBookings"`
	TotalPassengers int              `json:"totalPassengers"`
	TotalRevenue    decimal.Decimal  `json:"totalRevenue"`
	Rows            []SalesReportRow `json:"rows"`
}

type ReportsService struct {
	DB        *sql.DB
	RequestID string
}

func (s ReportsService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

// GetSalesReport aggregates bookings per route over the booked_at range.
// Without an explicit status filter, cancelled bookings are excluded so the
// revenue column reflects money actually in play.
func (s ReportsService) GetSalesReport(f SalesReportFilters) (SalesReport, error) {
	out := SalesReport{TotalRevenue: decimal.Zero, Rows: []SalesReportRow{}}

	start, err := utils.ParseDate(f.StartDate)
	if err != nil {
		return out, domain.ValidationError{Field: "start_date", Msg: "format harus YYYY-MM-DD", Err: err}
	}
	end, err := utils.ParseDate(f.EndDate)
	if err != nil {
		return out, domain.ValidationError{Field: "end_date", Msg: "format harus YYYY-MM-DD", Err: err}
	}
	if end.Before(start) {
		return out, domain.ValidationError{Field: "end_date", Msg: "harus >= start_date"}
	}
	status := strings.TrimSpace(f.Status)
	if status != "" && !models.ValidBookingStatus(status) {
		return out, domain.ValidationError{Field: "status", Msg: "status booking tidak dikenal"}
	}

	query := `
		SELECT rt.id, dep.code, arr.code,
		       COUNT(*), COALESCE(SUM(b.passenger_count),0),
		       COALESCE(SUM(b.total_amount),0), MIN(b.currency)
		FROM bookings b
		JOIN daily_schedules ds ON ds.id = b.daily_schedule_id
		JOIN schedules s  ON s.id = ds.schedule_id
		JOIN routes rt    ON rt.id = s.route_id
		JOIN locations dep ON dep.id = rt.departure_location_id
		JOIN locations arr ON arr.id = rt.arrival_location_id
		WHERE DATE(b.booked_at) BETWEEN ? AND ?`
	args := []any{f.StartDate, f.EndDate}

	if status != "" {
		query += ` AND b.status=?`
		args = append(args, status)
	} else {
		query += ` AND b.status <> ?`
		args = append(args, models.BookingStatusCancelled)
	}
	if f.RouteID > 0 {
		query += ` AND rt.id=?`
		args = append(args, f.RouteID)
	}
	if f.FastboatID > 0 {
		query += ` AND s.fastboat_id=?`
		args = append(args, f.FastboatID)
	}
	query += `
		GROUP BY rt.id, dep.code, arr.code
		ORDER BY dep.code ASC, arr.code ASC`

	rows, err := s.db().Query(query, args...)
	if err != nil {
		return out, err
	}
	defer rows.Close()

	out.StartDate = f.StartDate
	out.EndDate = f.EndDate
	for rows.Next() {
		var r SalesReportRow
		if err := rows.Scan(
			&r.RouteID, &r.DepartureCode, &r.ArrivalCode,
			&r.Bookings, &r.Passengers, &r.Revenue, &r.Currency,
		); err != nil {
			return out, err
		}
		out.Rows = append(out.Rows, r)
		out.TotalBookings += r.Bookings
		out.TotalPassengers += r.Passengers
		out.TotalRevenue = out.TotalRevenue.Add(r.Revenue)
	}
	return out, rows.Err()
}
