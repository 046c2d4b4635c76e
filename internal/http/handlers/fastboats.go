package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"backend/internal/domain"
	"backend/internal/domain/models"
	"backend/internal/http/middleware"
	"backend/internal/repositories"
	"backend/internal/services"

	"github.com/gin-gonic/gin"
)

// GetFastboats lists vessels; ?all=1 includes inactive ones.
func GetFastboats(c *gin.Context) {
	repo := repositories.FastboatRepository{}
	boats, err := repo.List(c.Query("all") != "1")
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"fastboats": boats})
}

// GetFastboat returns one vessel by id.
func GetFastboat(c *gin.Context) {
	id := PathID(c)
	if id == 0 {
		RespondDomainError(c, domain.ValidationError{Field: "id", Msg: "id tidak valid"})
		return
	}
	repo := repositories.FastboatRepository{}
	boat, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"fastboat": boat})
}

type fastboatCreateRequest struct {
	Name       string          `json:"name"`
	Operator   string          `json:"operator"`
	Capacity   int             `json:"capacity"`
	BoatType   string          `json:"boat_type"`
	Facilities json.RawMessage `json:"facilities"`
}

// CreateFastboat registers a vessel (admin). Capacity seeds the daily seat
// inventory so it must be positive.
func CreateFastboat(c *gin.Context) {
	var req fastboatCreateRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		RespondDomainError(c, domain.ValidationError{Field: "name", Msg: "wajib diisi"})
		return
	}
	if req.Capacity <= 0 {
		RespondDomainError(c, domain.ValidationError{Field: "capacity", Msg: "harus lebih dari 0"})
		return
	}
	facilities := req.Facilities
	if len(facilities) == 0 {
		facilities = json.RawMessage(`{}`)
	} else if !json.Valid(facilities) {
		RespondDomainError(c, domain.ValidationError{Field: "facilities", Msg: "harus JSON yang valid"})
		return
	}

	repo := repositories.FastboatRepository{}
	id, err := repo.Create(models.Fastboat{
		Name:       name,
		Operator:   strings.TrimSpace(req.Operator),
		Capacity:   req.Capacity,
		BoatType:   strings.TrimSpace(req.BoatType),
		Facilities: facilities,
		IsActive:   true,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	audit := services.AuditService{Repo: repositories.AdminActionRepository{}, RequestID: middleware.GetRequestID(c)}
	audit.Record(middleware.GetUserID(c), "create", "fastboat", id, "kapal baru: "+name, req)

	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// SetFastboatActive flips the soft-delete flag (admin).
func SetFastboatActive(c *gin.Context) {
	id := PathID(c)
	if id == 0 {
		RespondDomainError(c, domain.ValidationError{Field: "id", Msg: "id tidak valid"})
		return
	}
	var req activeRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	repo := repositories.FastboatRepository{}
	if err := repo.SetActive(id, req.IsActive); err != nil {
		RespondDomainError(c, err)
		return
	}

	audit := services.AuditService{Repo: repositories.AdminActionRepository{}, RequestID: middleware.GetRequestID(c)}
	audit.Record(middleware.GetUserID(c), "set_active", "fastboat", id, "", req)

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
