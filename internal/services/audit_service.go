package services

import (
	"encoding/json"
	"log"
	"strconv"

	"backend/internal/domain/models"
	"backend/internal/repositories"
	"backend/internal/utils"
)

// AuditService appends AdminAction rows. Audit failure is logged but never
// fails the admin operation itself.
type AuditService struct {
	Repo      repositories.AdminActionRepository
	RequestID string
}

func (s AuditService) Record(adminUserID int64, actionType, resourceType string, resourceID int64, description string, metadata any) {
	var raw json.RawMessage
	if metadata != nil {
		if b, err := json.Marshal(metadata); err == nil {
			raw = b
		}
	}
	action := models.AdminAction{
		AdminUserID:  adminUserID,
		ActionType:   actionType,
		ResourceType: resourceType,
		Description:  description,
		Metadata:     raw,
	}
	if resourceID > 0 {
		action.ResourceID = &resourceID
	}
	if _, err := s.Repo.Insert(action); err != nil {
		log.Printf("[AUDIT] insert gagal: %v", err)
		return
	}
	utils.LogEvent(s.RequestID, "audit", actionType,
		resourceType+"="+strconv.FormatInt(resourceID, 10))
}
