package repositories

import (
	"database/sql"
	"encoding/json"

	intconfig "backend/internal/config"
	"backend/internal/domain"
	"backend/internal/domain/models"
)

type FastboatRepository struct {
	DB *sql.DB
}

func (r FastboatRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r FastboatRepository) List(activeOnly bool) ([]models.Fastboat, error) {
	query := `
		SELECT id, name, operator, capacity, boat_type, COALESCE(facilities,'{}'), is_active, created_at
		FROM fastboats`
	if activeOnly {
		query += ` WHERE is_active=1`
	}
	query += ` ORDER BY name ASC`

	rows, err := r.db().Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Fastboat{}
	for rows.Next() {
		var f models.Fastboat
		var facilities []byte
		if err := rows.Scan(&f.ID, &f.Name, &f.Operator, &f.Capacity, &f.BoatType, &facilities, &f.IsActive, &f.CreatedAt); err != nil {
			return nil, err
		}
		f.Facilities = json.RawMessage(facilities)
		out = append(out, f)
	}
	return out, rows.Err()
}

func (r FastboatRepository) GetByID(id int64) (models.Fastboat, error) {
	var f models.Fastboat
	var facilities []byte
	err := r.db().QueryRow(`
		SELECT id, name, operator, capacity, boat_type, COALESCE(facilities,'{}'), is_active, created_at
		FROM fastboats
		WHERE id=? LIMIT 1
	`, id).Scan(&f.ID, &f.Name, &f.Operator, &f.Capacity, &f.BoatType, &facilities, &f.IsActive, &f.CreatedAt)
	if err == sql.ErrNoRows {
		return f, domain.NotFoundError{Resource: "fastboat"}
	}
	f.Facilities = json.RawMessage(facilities)
	return f, err
}

func (r FastboatRepository) Create(f models.Fastboat) (int64, error) {
	facilities := f.Facilities
	if len(facilities) == 0 {
		facilities = json.RawMessage(`{}`)
	}
	res, err := r.db().Exec(`
		INSERT INTO fastboats (name, operator, capacity, boat_type, facilities, is_active)
		VALUES (?, ?, ?, ?, ?, ?)
	`, f.Name, f.Operator, f.Capacity, f.BoatType, []byte(facilities), f.IsActive)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r FastboatRepository) SetActive(id int64, active bool) error {
	res, err := r.db().Exec(`UPDATE fastboats SET is_active=? WHERE id=?`, active, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "fastboat"}
	}
	return nil
}
