package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"backend/internal/domain"
	"backend/internal/domain/models"
	"backend/internal/http/middleware"
	"backend/internal/repositories"
	"backend/internal/services"

	"github.com/gin-gonic/gin"
)

// GetPublicSettings lists settings flagged is_public; no auth required.
func GetPublicSettings(c *gin.Context) {
	repo := repositories.SystemSettingsRepository{}
	settings, err := repo.ListPublic()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": settings})
}

// GetSetting returns one setting by key (admin; public rows included).
func GetSetting(c *gin.Context) {
	key := strings.TrimSpace(c.Param("key"))
	repo := repositories.SystemSettingsRepository{}
	setting, err := repo.Get(key)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"setting": setting})
}

type settingUpsertRequest struct {
	Key         string `json:"key"`
	Value       string `json:"value"`
	DataType    string `json:"data_type"`
	Description string `json:"description"`
	IsPublic    bool   `json:"is_public"`
}

// UpsertSetting inserts or replaces one configuration row (admin).
func UpsertSetting(c *gin.Context) {
	var req settingUpsertRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	key := strings.TrimSpace(req.Key)
	if key == "" || len(key) > 100 {
		RespondDomainError(c, domain.ValidationError{Field: "key", Msg: "wajib diisi, maksimal 100 karakter"})
		return
	}
	if !models.ValidSettingDataType(req.DataType) {
		RespondDomainError(c, domain.ValidationError{Field: "data_type", Msg: "harus string, number, boolean, atau json"})
		return
	}

	repo := repositories.SystemSettingsRepository{}
	if err := repo.Upsert(models.SystemSetting{
		Key:         key,
		Value:       req.Value,
		DataType:    req.DataType,
		Description: strings.TrimSpace(req.Description),
		IsPublic:    req.IsPublic,
	}); err != nil {
		RespondDomainError(c, err)
		return
	}

	audit := services.AuditService{Repo: repositories.AdminActionRepository{}, RequestID: middleware.GetRequestID(c)}
	audit.Record(middleware.GetUserID(c), "upsert", "system_setting", 0, "key="+key, req)

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// GetAdminActions lists recent audit rows, newest first (admin).
func GetAdminActions(c *gin.Context) {
	limit := 0
	if v := strings.TrimSpace(c.Query("limit")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			RespondDomainError(c, domain.ValidationError{Field: "limit", Msg: "harus bilangan positif"})
			return
		}
		limit = n
	}

	repo := repositories.AdminActionRepository{}
	actions, err := repo.List(limit)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"actions": actions})
}
