package repositories

import (
	"database/sql"

	intconfig "backend/internal/config"
	"backend/internal/domain"
	"backend/internal/domain/models"
)

type SystemSettingsRepository struct {
	DB *sql.DB
}

func (r SystemSettingsRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r SystemSettingsRepository) Get(key string) (models.SystemSetting, error) {
	var s models.SystemSetting
	err := r.db().QueryRow(`
		SELECT id, `+"`key`"+`, value, data_type, description, is_public, created_at, updated_at
		FROM system_settings
		WHERE `+"`key`"+`=? LIMIT 1
	`, key).Scan(&s.ID, &s.Key, &s.Value, &s.DataType, &s.Description, &s.IsPublic, &s.CreatedAt, &s.UpdatedAt)
	if err == sql.ErrNoRows {
		return s, domain.NotFoundError{Resource: "setting"}
	}
	return s, err
}

// Upsert writes a setting by its unique key.
func (r SystemSettingsRepository) Upsert(s models.SystemSetting) error {
	if !models.ValidSettingDataType(s.DataType) {
		return domain.ValidationError{Field: "data_type", Msg: "harus string, number, boolean, atau json"}
	}
	_, err := r.db().Exec(`
		INSERT INTO system_settings (`+"`key`"+`, value, data_type, description, is_public)
		VALUES (?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE value=VALUES(value), data_type=VALUES(data_type),
		                        description=VALUES(description), is_public=VALUES(is_public),
		                        updated_at=NOW()
	`, s.Key, s.Value, s.DataType, s.Description, s.IsPublic)
	return err
}

// ListPublic returns only settings the frontend may read.
func (r SystemSettingsRepository) ListPublic() ([]models.SystemSetting, error) {
	rows, err := r.db().Query(`
		SELECT id, ` + "`key`" + `, value, data_type, description, is_public, created_at, updated_at
		FROM system_settings
		WHERE is_public=1
		ORDER BY ` + "`key`" + ` ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.SystemSetting{}
	for rows.Next() {
		var s models.SystemSetting
		if err := rows.Scan(&s.ID, &s.Key, &s.Value, &s.DataType, &s.Description, &s.IsPublic, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
