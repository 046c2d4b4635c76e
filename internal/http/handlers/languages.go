package handlers

import (
	"net/http"
	"strings"

	"backend/internal/domain"
	"backend/internal/domain/models"
	"backend/internal/http/middleware"
	"backend/internal/repositories"
	"backend/internal/services"

	"github.com/gin-gonic/gin"
)

// GetLanguages lists languages; ?all=1 includes disabled rows.
func GetLanguages(c *gin.Context) {
	repo := repositories.LanguageRepository{}
	languages, err := repo.List(c.Query("all") != "1")
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"languages": languages})
}

type languageCreateRequest struct {
	Code       string `json:"code"`
	Name       string `json:"name"`
	NativeName string `json:"native_name"`
	IsDefault  bool   `json:"is_default"`
}

// CreateLanguage registers a new language (admin).
func CreateLanguage(c *gin.Context) {
	var req languageCreateRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	code := strings.ToLower(strings.TrimSpace(req.Code))
	if code == "" || len(code) > 5 {
		RespondDomainError(c, domain.ValidationError{Field: "code", Msg: "wajib diisi, maksimal 5 karakter"})
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		RespondDomainError(c, domain.ValidationError{Field: "name", Msg: "wajib diisi"})
		return
	}

	repo := repositories.LanguageRepository{}
	id, err := repo.Create(models.Language{
		Code:       code,
		Name:       name,
		NativeName: strings.TrimSpace(req.NativeName),
		IsActive:   true,
		IsDefault:  req.IsDefault,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	audit := services.AuditService{Repo: repositories.AdminActionRepository{}, RequestID: middleware.GetRequestID(c)}
	audit.Record(middleware.GetUserID(c), "create", "language", id, "bahasa baru: "+code, req)

	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// GetTranslations lists all translations for a language code.
func GetTranslations(c *gin.Context) {
	code := strings.ToLower(strings.TrimSpace(c.Param("code")))
	repo := repositories.LanguageRepository{}
	lang, err := repo.GetByCode(code)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	translations, err := repo.ListTranslations(lang.ID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"language": lang.Code, "translations": translations})
}

type translationUpsertRequest struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// UpsertTranslation inserts or replaces one localized string for the language
// in the path (admin). (key, language) is unique so repeats overwrite.
func UpsertTranslation(c *gin.Context) {
	var req translationUpsertRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	key := strings.TrimSpace(req.Key)
	if key == "" || len(key) > 200 {
		RespondDomainError(c, domain.ValidationError{Field: "key", Msg: "wajib diisi, maksimal 200 karakter"})
		return
	}

	repo := repositories.LanguageRepository{}
	lang, err := repo.GetByCode(strings.ToLower(strings.TrimSpace(c.Param("code"))))
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	if err := repo.UpsertTranslation(models.Translation{
		Key:        key,
		Value:      req.Value,
		LanguageID: lang.ID,
	}); err != nil {
		RespondDomainError(c, err)
		return
	}

	audit := services.AuditService{Repo: repositories.AdminActionRepository{}, RequestID: middleware.GetRequestID(c)}
	audit.Record(middleware.GetUserID(c), "upsert", "translation", lang.ID, "key="+key, req)

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
