package repositories

import (
	"database/sql"
	"strings"

	intconfig "backend/internal/config"
	intdb "backend/internal/db"
	"backend/internal/domain"
	"backend/internal/domain/models"
)

type LanguageRepository struct {
	DB *sql.DB
}

func (r LanguageRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// List returns languages, optionally only active ones.
func (r LanguageRepository) List(activeOnly bool) ([]models.Language, error) {
	query := `
		SELECT id, code, name, native_name, is_active, is_default, created_at
		FROM languages`
	if activeOnly {
		query += ` WHERE is_active=1`
	}
	query += ` ORDER BY code ASC`

	rows, err := r.db().Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Language{}
	for rows.Next() {
		var l models.Language
		if err := rows.Scan(&l.ID, &l.Code, &l.Name, &l.NativeName, &l.IsActive, &l.IsDefault, &l.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r LanguageRepository) GetByCode(code string) (models.Language, error) {
	var l models.Language
	err := r.db().QueryRow(`
		SELECT id, code, name, native_name, is_active, is_default, created_at
		FROM languages
		WHERE code=? LIMIT 1
	`, strings.TrimSpace(code)).Scan(&l.ID, &l.Code, &l.Name, &l.NativeName, &l.IsActive, &l.IsDefault, &l.CreatedAt)
	if err == sql.ErrNoRows {
		return l, domain.NotFoundError{Resource: "language"}
	}
	return l, err
}

func (r LanguageRepository) Create(l models.Language) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO languages (code, name, native_name, is_active, is_default)
		VALUES (?, ?, ?, ?, ?)
	`, l.Code, l.Name, l.NativeName, l.IsActive, l.IsDefault)
	if err != nil {
		if intdb.IsDuplicate(err) {
			return 0, domain.ConflictError{Resource: "language", Msg: "code sudah terdaftar"}
		}
		return 0, err
	}
	return res.LastInsertId()
}

// UpsertTranslation writes one (key, language) pair; the pair is unique so a
// second write with the same key updates the value in place.
func (r LanguageRepository) UpsertTranslation(t models.Translation) error {
	_, err := r.db().Exec(`
		INSERT INTO translations (`+"`key`"+`, value, language_id)
		VALUES (?, ?, ?)
		ON DUPLICATE KEY UPDATE value=VALUES(value), updated_at=NOW()
	`, t.Key, t.Value, t.LanguageID)
	return err
}

// ListTranslations returns all pairs for one language id.
func (r LanguageRepository) ListTranslations(languageID int64) ([]models.Translation, error) {
	rows, err := r.db().Query(`
		SELECT id, `+"`key`"+`, value, language_id, created_at, updated_at
		FROM translations
		WHERE language_id=?
		ORDER BY `+"`key`"+` ASC
	`, languageID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Translation{}
	for rows.Next() {
		var t models.Translation
		if err := rows.Scan(&t.ID, &t.Key, &t.Value, &t.LanguageID, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
