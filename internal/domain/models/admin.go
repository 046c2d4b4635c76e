package models

import (
	"encoding/json"
	"time"
)

// AdminAction is an append-only audit record; rows are never updated or
// deleted.
type AdminAction struct {
	ID           int64           `json:"id"`
	AdminUserID  int64           `json:"adminUserId"`
	ActionType   string          `json:"actionType"`
	ResourceType string          `json:"resourceType"`
	ResourceID   *int64          `json:"resourceId,omitempty"`
	Description  string          `json:"description"`
	Metadata     json.RawMessage `json:"metadata,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// SystemSetting is one key/value configuration row. DataType tags how Value
// should be interpreted: string, number, boolean or json.
type SystemSetting struct {
	ID          int64     `json:"id"`
	Key         string    `json:"key"`
	Value       string    `json:"value"`
	DataType    string    `json:"dataType"`
	Description string    `json:"description,omitempty"`
	IsPublic    bool      `json:"isPublic"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func ValidSettingDataType(s string) bool {
	switch s {
	case "string", "number", "boolean", "json":
		return true
	}
	return false
}
