package repositories

import (
	"database/sql"
	"encoding/json"

	intconfig "backend/internal/config"
	"backend/internal/domain/models"
)

// AdminActionRepository is append-only: audit rows are inserted and listed,
// never updated or deleted.
type AdminActionRepository struct {
	DB *sql.DB
}

func (r AdminActionRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r AdminActionRepository) Insert(a models.AdminAction) (int64, error) {
	metadata := a.Metadata
	if len(metadata) == 0 {
		metadata = json.RawMessage(`{}`)
	}
	var resourceID any
	if a.ResourceID != nil {
		resourceID = *a.ResourceID
	}
	res, err := r.db().Exec(`
		INSERT INTO admin_actions (admin_user_id, action_type, resource_type, resource_id, description, action_metadata)
		VALUES (?, ?, ?, ?, ?, ?)
	`, a.AdminUserID, a.ActionType, a.ResourceType, resourceID, a.Description, []byte(metadata))
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r AdminActionRepository) List(limit int) ([]models.AdminAction, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	rows, err := r.db().Query(`
		SELECT id, admin_user_id, action_type, resource_type, resource_id,
		       description, COALESCE(action_metadata, '{}'), created_at
		FROM admin_actions
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.AdminAction{}
	for rows.Next() {
		var a models.AdminAction
		var resourceID sql.NullInt64
		var metadata []byte
		if err := rows.Scan(
			&a.ID, &a.AdminUserID, &a.ActionType, &a.ResourceType, &resourceID,
			&a.Description, &metadata, &a.CreatedAt,
		); err != nil {
			return nil, err
		}
		if resourceID.Valid {
			id := resourceID.Int64
			a.ResourceID = &id
		}
		a.Metadata = json.RawMessage(metadata)
		out = append(out, a)
	}
	return out, rows.Err()
}
