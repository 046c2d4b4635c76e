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
	"github.com/shopspring/decimal"
)

// GetRoutes lists routes with resolved location codes.
func GetRoutes(c *gin.Context) {
	repo := repositories.RouteRepository{}
	routes, err := repo.List(c.Query("all") != "1")
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"routes": routes})
}

// GetRoute returns one route by id.
func GetRoute(c *gin.Context) {
	id := PathID(c)
	if id == 0 {
		RespondDomainError(c, domain.ValidationError{Field: "id", Msg: "id tidak valid"})
		return
	}
	repo := repositories.RouteRepository{}
	route, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"route": route})
}

type routeCreateRequest struct {
	DepartureLocationID      int64  `json:"departure_location_id"`
	ArrivalLocationID        int64  `json:"arrival_location_id"`
	DistanceKm               string `json:"distance_km"`
	EstimatedDurationMinutes int    `json:"estimated_duration_minutes"`
}

// CreateRoute links two ports (admin). Departure and arrival must differ.
func CreateRoute(c *gin.Context) {
	var req routeCreateRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	if req.DepartureLocationID <= 0 || req.ArrivalLocationID <= 0 {
		RespondDomainError(c, domain.ValidationError{Field: "departure_location_id", Msg: "id lokasi wajib diisi"})
		return
	}
	if req.EstimatedDurationMinutes <= 0 {
		RespondDomainError(c, domain.ValidationError{Field: "estimated_duration_minutes", Msg: "harus lebih dari 0"})
		return
	}

	route := models.Route{
		DepartureLocationID:      req.DepartureLocationID,
		ArrivalLocationID:        req.ArrivalLocationID,
		EstimatedDurationMinutes: req.EstimatedDurationMinutes,
		IsActive:                 true,
	}
	if strings.TrimSpace(req.DistanceKm) != "" {
		d, err := utils.ParseAmount(req.DistanceKm)
		if err != nil {
			RespondDomainError(c, domain.ValidationError{Field: "distance_km", Msg: "format desimal tidak valid", Err: err})
			return
		}
		route.DistanceKm = decimal.NullDecimal{Decimal: d, Valid: true}
	}

	repo := repositories.RouteRepository{}
	id, err := repo.Create(route)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	audit := services.AuditService{Repo: repositories.AdminActionRepository{}, RequestID: middleware.GetRequestID(c)}
	audit.Record(middleware.GetUserID(c), "create", "route", id, "", req)

	c.JSON(http.StatusCreated, gin.H{"id": id})
}

type routeSearchRequest struct {
	DepartureLocationID int64  `json:"departure_location_id"`
	ArrivalLocationID   int64  `json:"arrival_location_id"`
	TravelDate          string `json:"travel_date"`
	PassengerCount      int    `json:"passenger_count"`
}

// SearchRoutes lists bookable departures for a leg and date, with the
// seasonal-adjusted per-seat price already computed.
func SearchRoutes(c *gin.Context) {
	var req routeSearchRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	if req.DepartureLocationID <= 0 || req.ArrivalLocationID <= 0 {
		RespondDomainError(c, domain.ValidationError{Field: "departure_location_id", Msg: "id lokasi wajib diisi"})
		return
	}
	if req.PassengerCount < 1 {
		RespondDomainError(c, domain.ValidationError{Field: "passenger_count", Msg: "minimal 1"})
		return
	}
	if _, err := utils.ParseDate(req.TravelDate); err != nil {
		RespondDomainError(c, domain.ValidationError{Field: "travel_date", Msg: "format harus YYYY-MM-DD", Err: err})
		return
	}

	dailyRepo := repositories.DailyScheduleRepository{}
	rows, err := dailyRepo.Search(req.DepartureLocationID, req.ArrivalLocationID, req.TravelDate, req.PassengerCount)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	pricing := services.PricingService{
		SeasonalRepo: repositories.SeasonalPriceRepository{},
		RequestID:    middleware.GetRequestID(c),
	}
	for i := range rows {
		price, err := pricing.EffectivePrice(repositories.BookableDailySchedule{
			DailyScheduleID: rows[i].DailyScheduleID,
			ScheduleID:      rows[i].ScheduleID,
			RouteID:         rows[i].RouteID,
			TravelDate:      rows[i].TravelDate,
			PriceOverride:   rows[i].PriceOverride,
			BasePrice:       rows[i].BasePrice,
			Currency:        rows[i].Currency,
		})
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		rows[i].EffectivePrice = price
	}

	c.JSON(http.StatusOK, gin.H{
		"travel_date": req.TravelDate,
		"results":     rows,
	})
}
