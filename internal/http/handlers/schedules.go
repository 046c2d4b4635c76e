package handlers

import (
	"net/http"
	"strings"

	"backend/internal/domain"
	"backend/internal/domain/models"
	"backend/internal/http/middleware"
	"backend/internal/repositories"
	"backend/internal/services"
	"backend/internal/utils"

	"github.com/gin-gonic/gin"
)

// GetSchedule returns one recurring schedule by id.
func GetSchedule(c *gin.Context) {
	id := PathID(c)
	if id == 0 {
		RespondDomainError(c, domain.ValidationError{Field: "id", Msg: "id tidak valid"})
		return
	}
	repo := repositories.ScheduleRepository{}
	schedule, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"schedule": schedule})
}

// GetRouteSchedules lists schedules on one route.
func GetRouteSchedules(c *gin.Context) {
	id := PathID(c)
	if id == 0 {
		RespondDomainError(c, domain.ValidationError{Field: "id", Msg: "id tidak valid"})
		return
	}
	repo := repositories.ScheduleRepository{}
	schedules, err := repo.ListByRoute(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"schedules": schedules})
}

type scheduleCreateRequest struct {
	RouteID        int64  `json:"route_id"`
	FastboatID     int64  `json:"fastboat_id"`
	DepartureTime  string `json:"departure_time"`
	ArrivalTime    string `json:"arrival_time"`
	BasePrice      string `json:"base_price"`
	Currency       string `json:"currency"`
	DaysOfWeek     []int  `json:"days_of_week"`
	EffectiveFrom  string `json:"effective_from"`
	EffectiveUntil string `json:"effective_until"`
}

// CreateSchedule registers a recurring service (admin). days_of_week uses
// 0=Senin .. 6=Minggu.
func CreateSchedule(c *gin.Context) {
	var req scheduleCreateRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	if req.RouteID <= 0 || req.FastboatID <= 0 {
		RespondDomainError(c, domain.ValidationError{Field: "route_id", Msg: "route_id dan fastboat_id wajib diisi"})
		return
	}
	if _, err := utils.ParseTimeOfDay(req.DepartureTime); err != nil {
		RespondDomainError(c, domain.ValidationError{Field: "departure_time", Msg: "format harus HH:MM", Err: err})
		return
	}
	if _, err := utils.ParseTimeOfDay(req.ArrivalTime); err != nil {
		RespondDomainError(c, domain.ValidationError{Field: "arrival_time", Msg: "format harus HH:MM", Err: err})
		return
	}
	basePrice, err := utils.ParseAmount(req.BasePrice)
	if err != nil {
		RespondDomainError(c, domain.ValidationError{Field: "base_price", Msg: "format desimal tidak valid", Err: err})
		return
	}
	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if !utils.ValidCurrency(currency) {
		RespondDomainError(c, domain.ValidationError{Field: "currency", Msg: "kode mata uang harus 3 huruf"})
		return
	}
	if len(req.DaysOfWeek) == 0 {
		RespondDomainError(c, domain.ValidationError{Field: "days_of_week", Msg: "minimal satu hari"})
		return
	}
	seen := map[int]bool{}
	for _, d := range req.DaysOfWeek {
		if d < 0 || d > 6 {
			RespondDomainError(c, domain.ValidationError{Field: "days_of_week", Msg: "hari harus 0 (Senin) sampai 6 (Minggu)"})
			return
		}
		if seen[d] {
			RespondDomainError(c, domain.ValidationError{Field: "days_of_week", Msg: "hari tidak boleh duplikat"})
			return
		}
		seen[d] = true
	}
	if _, err := utils.ParseDate(req.EffectiveFrom); err != nil {
		RespondDomainError(c, domain.ValidationError{Field: "effective_from", Msg: "format harus YYYY-MM-DD", Err: err})
		return
	}
	until := strings.TrimSpace(req.EffectiveUntil)
	if until != "" {
		untilDate, err := utils.ParseDate(until)
		if err != nil {
			RespondDomainError(c, domain.ValidationError{Field: "effective_until", Msg: "format harus YYYY-MM-DD", Err: err})
			return
		}
		fromDate, _ := utils.ParseDate(req.EffectiveFrom)
		if untilDate.Before(fromDate) {
			RespondDomainError(c, domain.ValidationError{Field: "effective_until", Msg: "tidak boleh sebelum effective_from"})
			return
		}
	}

	repo := repositories.ScheduleRepository{}
	id, err := repo.Create(models.Schedule{
		RouteID:        req.RouteID,
		FastboatID:     req.FastboatID,
		DepartureTime:  req.DepartureTime,
		ArrivalTime:    req.ArrivalTime,
		BasePrice:      basePrice,
		Currency:       currency,
		DaysOfWeek:     req.DaysOfWeek,
		EffectiveFrom:  req.EffectiveFrom,
		EffectiveUntil: until,
		Status:         models.ScheduleStatusActive,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	audit := services.AuditService{Repo: repositories.AdminActionRepository{}, RequestID: middleware.GetRequestID(c)}
	audit.Record(middleware.GetUserID(c), "create", "schedule", id, "", req)

	c.JSON(http.StatusCreated, gin.H{"id": id})
}

type scheduleStatusRequest struct {
	Status string `json:"status"`
}

// SetScheduleStatus moves a schedule between active/suspended/cancelled (admin).
func SetScheduleStatus(c *gin.Context) {
	id := PathID(c)
	if id == 0 {
		RespondDomainError(c, domain.ValidationError{Field: "id", Msg: "id tidak valid"})
		return
	}
	var req scheduleStatusRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	repo := repositories.ScheduleRepository{}
	if err := repo.SetStatus(id, strings.TrimSpace(req.Status)); err != nil {
		RespondDomainError(c, err)
		return
	}

	audit := services.AuditService{Repo: repositories.AdminActionRepository{}, RequestID: middleware.GetRequestID(c)}
	audit.Record(middleware.GetUserID(c), "set_status", "schedule", id, "status="+req.Status, req)

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// GetScheduleActivity answers whether the schedule operates on ?date=.
func GetScheduleActivity(c *gin.Context) {
	id := PathID(c)
	if id == 0 {
		RespondDomainError(c, domain.ValidationError{Field: "id", Msg: "id tidak valid"})
		return
	}
	date := strings.TrimSpace(c.Query("date"))
	if date == "" {
		RespondDomainError(c, domain.ValidationError{Field: "date", Msg: "query date wajib diisi"})
		return
	}

	repo := repositories.ScheduleRepository{}
	schedule, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	svc := services.ScheduleService{
		ScheduleRepo: repo,
		DailyRepo:    repositories.DailyScheduleRepository{},
		FastboatRepo: repositories.FastboatRepository{},
		RequestID:    middleware.GetRequestID(c),
	}
	active, err := svc.ActiveOn(schedule, date)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"schedule_id": id, "date": date, "active": active})
}

type generateDailyRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// GenerateDailySchedules materializes bookable rows for the date range (admin).
func GenerateDailySchedules(c *gin.Context) {
	id := PathID(c)
	if id == 0 {
		RespondDomainError(c, domain.ValidationError{Field: "id", Msg: "id tidak valid"})
		return
	}
	var req generateDailyRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	svc := services.ScheduleService{
		ScheduleRepo: repositories.ScheduleRepository{},
		DailyRepo:    repositories.DailyScheduleRepository{},
		FastboatRepo: repositories.FastboatRepository{},
		RequestID:    middleware.GetRequestID(c),
	}
	created, err := svc.MaterializeRange(id, req.From, req.To)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	audit := services.AuditService{Repo: repositories.AdminActionRepository{}, RequestID: middleware.GetRequestID(c)}
	audit.Record(middleware.GetUserID(c), "generate_daily", "schedule", id, "", req)

	c.JSON(http.StatusOK, gin.H{"schedule_id": id, "created": created})
}
