package repositories

import (
	"database/sql"
	"strings"

	intconfig "backend/internal/config"
	intdb "backend/internal/db"
	"backend/internal/domain"
	"backend/internal/domain/models"
)

type LocationRepository struct {
	DB *sql.DB
}

func (r LocationRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r LocationRepository) List(activeOnly bool) ([]models.Location, error) {
	query := `
		SELECT id, code, name, city, country, timezone, is_active, created_at
		FROM locations`
	if activeOnly {
		query += ` WHERE is_active=1`
	}
	query += ` ORDER BY code ASC`

	rows, err := r.db().Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Location{}
	for rows.Next() {
		var l models.Location
		if err := rows.Scan(&l.ID, &l.Code, &l.Name, &l.City, &l.Country, &l.Timezone, &l.IsActive, &l.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r LocationRepository) GetByID(id int64) (models.Location, error) {
	var l models.Location
	err := r.db().QueryRow(`
		SELECT id, code, name, city, country, timezone, is_active, created_at
		FROM locations
		WHERE id=? LIMIT 1
	`, id).Scan(&l.ID, &l.Code, &l.Name, &l.City, &l.Country, &l.Timezone, &l.IsActive, &l.CreatedAt)
	if err == sql.ErrNoRows {
		return l, domain.NotFoundError{Resource: "location"}
	}
	return l, err
}

func (r LocationRepository) Create(l models.Location) (int64, error) {
	timezone := strings.TrimSpace(l.Timezone)
	if timezone == "" {
		timezone = "UTC"
	}
	res, err := r.db().Exec(`
		INSERT INTO locations (code, name, city, country, timezone, is_active)
		VALUES (?, ?, ?, ?, ?, ?)
	`, strings.ToUpper(strings.TrimSpace(l.Code)), l.Name, l.City, l.Country, timezone, l.IsActive)
	if err != nil {
		if intdb.IsDuplicate(err) {
			return 0, domain.ConflictError{Resource: "location", Msg: "code sudah terdaftar"}
		}
		return 0, err
	}
	return res.LastInsertId()
}

func (r LocationRepository) SetActive(id int64, active bool) error {
	res, err := r.db().Exec(`UPDATE locations SET is_active=? WHERE id=?`, active, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "location"}
	}
	return nil
}
