package handlers

import (
	"io"
	"net/http"

	"backend/internal/domain"
	"backend/internal/http/middleware"
	"backend/internal/repositories"
	"backend/internal/services"

	"github.com/gin-gonic/gin"
)

// GetDailySchedule returns one bookable occurrence by id.
func GetDailySchedule(c *gin.Context) {
	id := PathID(c)
	if id == 0 {
		RespondDomainError(c, domain.ValidationError{Field: "id", Msg: "id tidak valid"})
		return
	}
	repo := repositories.DailyScheduleRepository{}
	daily, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"daily_schedule": daily})
}

// PatchDailySchedule applies a partial update (admin). Only fields present in
// the body change; price_override and booking_deadline accept explicit null
// to clear.
func PatchDailySchedule(c *gin.Context) {
	id := PathID(c)
	if id == 0 {
		RespondDomainError(c, domain.ValidationError{Field: "id", Msg: "id tidak valid"})
		return
	}

	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "gagal membaca body", err)
		return
	}

	repo := repositories.DailyScheduleRepository{}
	if err := repo.Patch(id, raw); err != nil {
		RespondDomainError(c, err)
		return
	}

	daily, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	audit := services.AuditService{Repo: repositories.AdminActionRepository{}, RequestID: middleware.GetRequestID(c)}
	audit.Record(middleware.GetUserID(c), "patch", "daily_schedule", id, "", nil)

	c.JSON(http.StatusOK, gin.H{"daily_schedule": daily})
}
