package repositories

import (
	"database/sql"

	intconfig "backend/internal/config"
	"backend/internal/domain"
	"backend/internal/domain/models"
)

type RouteRepository struct {
	DB *sql.DB
}

func (r RouteRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// List joins both location codes; dua FK ke tabel yang sama, alias terpisah.
func (r RouteRepository) List(activeOnly bool) ([]models.Route, error) {
	query := `
		SELECT r.id, r.departure_location_id, r.arrival_location_id,
		       r.distance_km, r.estimated_duration_minutes, r.is_active, r.created_at,
		       dep.code, arr.code
		FROM routes r
		JOIN locations dep ON dep.id = r.departure_location_id
		JOIN locations arr ON arr.id = r.arrival_location_id`
	if activeOnly {
		query += ` WHERE r.is_active=1`
	}
	query += ` ORDER BY r.id ASC`

	rows, err := r.db().Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Route{}
	for rows.Next() {
		var rt models.Route
		if err := rows.Scan(
			&rt.ID, &rt.DepartureLocationID, &rt.ArrivalLocationID,
			&rt.DistanceKm, &rt.EstimatedDurationMinutes, &rt.IsActive, &rt.CreatedAt,
			&rt.DepartureCode, &rt.ArrivalCode,
		); err != nil {
			return nil, err
		}
		out = append(out, rt)
	}
	return out, rows.Err()
}

func (r RouteRepository) GetByID(id int64) (models.Route, error) {
	var rt models.Route
	err := r.db().QueryRow(`
		SELECT r.id, r.departure_location_id, r.arrival_location_id,
		       r.distance_km, r.estimated_duration_minutes, r.is_active, r.created_at,
		       dep.code, arr.code
		FROM routes r
		JOIN locations dep ON dep.id = r.departure_location_id
		JOIN locations arr ON arr.id = r.arrival_location_id
		WHERE r.id=? LIMIT 1
	`, id).Scan(
		&rt.ID, &rt.DepartureLocationID, &rt.ArrivalLocationID,
		&rt.DistanceKm, &rt.EstimatedDurationMinutes, &rt.IsActive, &rt.CreatedAt,
		&rt.DepartureCode, &rt.ArrivalCode,
	)
	if err == sql.ErrNoRows {
		return rt, domain.NotFoundError{Resource: "route"}
	}
	return rt, err
}

func (r RouteRepository) Create(rt models.Route) (int64, error) {
	if rt.DepartureLocationID == rt.ArrivalLocationID {
		return 0, domain.ValidationError{Field: "arrival_location_id", Msg: "lokasi tujuan harus berbeda dengan lokasi asal"}
	}
	res, err := r.db().Exec(`
		INSERT INTO routes (departure_location_id, arrival_location_id, distance_km, estimated_duration_minutes, is_active)
		VALUES (?, ?, ?, ?, ?)
	`, rt.DepartureLocationID, rt.ArrivalLocationID, rt.DistanceKm, rt.EstimatedDurationMinutes, rt.IsActive)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}
