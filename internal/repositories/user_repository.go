package repositories

import (
	"database/sql"
	"strings"

	intconfig "backend/internal/config"
	intdb "backend/internal/db"
	"backend/internal/domain"
	"backend/internal/domain/models"
)

type UserRepository struct {
	DB *sql.DB
}

func (r UserRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const userColumns = `
	id, email, password_hash, first_name, last_name, COALESCE(phone,''),
	role, preferred_language, is_active, created_at, updated_at`

func scanUser(row *sql.Row) (models.User, error) {
	var u models.User
	err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName, &u.Phone,
		&u.Role, &u.PreferredLanguage, &u.IsActive, &u.CreatedAt, &u.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return u, domain.NotFoundError{Resource: "user"}
	}
	return u, err
}

func (r UserRepository) GetByID(id int64) (models.User, error) {
	return scanUser(r.db().QueryRow(`SELECT`+userColumns+` FROM users WHERE id=? LIMIT 1`, id))
}

func (r UserRepository) GetByEmail(email string) (models.User, error) {
	return scanUser(r.db().QueryRow(`SELECT`+userColumns+` FROM users WHERE email=? LIMIT 1`,
		strings.ToLower(strings.TrimSpace(email))))
}

// Create inserts a new user; the email uniqueness constraint surfaces as a
// conflict, not a bare driver error.
func (r UserRepository) Create(u models.User) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO users (email, password_hash, first_name, last_name, phone, role, preferred_language, is_active)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		strings.ToLower(strings.TrimSpace(u.Email)),
		u.PasswordHash,
		u.FirstName,
		u.LastName,
		intdb.NullIfEmpty(u.Phone),
		u.Role,
		u.PreferredLanguage,
		u.IsActive,
	)
	if err != nil {
		if intdb.IsDuplicate(err) {
			return 0, domain.ConflictError{Resource: "user", Msg: "email sudah terdaftar"}
		}
		return 0, err
	}
	return res.LastInsertId()
}

// SetActive soft-disables/enables an account.
func (r UserRepository) SetActive(id int64, active bool) error {
	res, err := r.db().Exec(`UPDATE users SET is_active=?, updated_at=NOW() WHERE id=?`, active, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "user"}
	}
	return nil
}
