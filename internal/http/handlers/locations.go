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

// GetLocations lists active ports; ?all=1 includes disabled ones.
func GetLocations(c *gin.Context) {
	repo := repositories.LocationRepository{}
	locations, err := repo.List(c.Query("all") != "1")
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"locations": locations})
}

// GetLocation returns one port by id.
func GetLocation(c *gin.Context) {
	id := PathID(c)
	if id == 0 {
		RespondDomainError(c, domain.ValidationError{Field: "id", Msg: "id tidak valid"})
		return
	}
	repo := repositories.LocationRepository{}
	location, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"location": location})
}

type locationCreateRequest struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	City     string `json:"city"`
	Country  string `json:"country"`
	Timezone string `json:"timezone"`
}

// CreateLocation registers a new port (admin).
func CreateLocation(c *gin.Context) {
	var req locationCreateRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	code := strings.ToUpper(strings.TrimSpace(req.Code))
	if code == "" || len(code) > 10 {
		RespondDomainError(c, domain.ValidationError{Field: "code", Msg: "wajib diisi, maksimal 10 karakter"})
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		RespondDomainError(c, domain.ValidationError{Field: "name", Msg: "wajib diisi"})
		return
	}

	repo := repositories.LocationRepository{}
	id, err := repo.Create(models.Location{
		Code:     code,
		Name:     name,
		City:     strings.TrimSpace(req.City),
		Country:  strings.TrimSpace(req.Country),
		Timezone: strings.TrimSpace(req.Timezone),
		IsActive: true,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	audit := services.AuditService{Repo: repositories.AdminActionRepository{}, RequestID: middleware.GetRequestID(c)}
	audit.Record(middleware.GetUserID(c), "create", "location", id, "lokasi baru: "+code, req)

	c.JSON(http.StatusCreated, gin.H{"id": id})
}

type activeRequest struct {
	IsActive bool `json:"is_active"`
}

// SetLocationActive flips the soft-delete flag (admin).
func SetLocationActive(c *gin.Context) {
	id := PathID(c)
	if id == 0 {
		RespondDomainError(c, domain.ValidationError{Field: "id", Msg: "id tidak valid"})
		return
	}
	var req activeRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	repo := repositories.LocationRepository{}
	if err := repo.SetActive(id, req.IsActive); err != nil {
		RespondDomainError(c, err)
		return
	}

	audit := services.AuditService{Repo: repositories.AdminActionRepository{}, RequestID: middleware.GetRequestID(c)}
	audit.Record(middleware.GetUserID(c), "set_active", "location", id, "", req)

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
