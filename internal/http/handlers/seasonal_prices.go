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

// GetRouteSeasonalPrices lists active seasonal multipliers on one route.
func GetRouteSeasonalPrices(c *gin.Context) {
	id := PathID(c)
	if id == 0 {
		RespondDomainError(c, domain.ValidationError{Field: "id", Msg: "id tidak valid"})
		return
	}
	repo := repositories.SeasonalPriceRepository{}
	prices, err := repo.ListActiveByRoute(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"seasonal_prices": prices})
}

type seasonalPriceCreateRequest struct {
	SeasonName      string `json:"season_name"`
	StartDate       string `json:"start_date"`
	EndDate         string `json:"end_date"`
	PriceMultiplier string `json:"price_multiplier"`
}

// CreateSeasonalPrice adds a multiplier window for the route in the path
// (admin). The window is year-agnostic and may wrap the year end.
func CreateSeasonalPrice(c *gin.Context) {
	routeID := PathID(c)
	if routeID == 0 {
		RespondDomainError(c, domain.ValidationError{Field: "id", Msg: "id tidak valid"})
		return
	}
	var req seasonalPriceCreateRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	name := strings.TrimSpace(req.SeasonName)
	if name == "" || len(name) > 100 {
		RespondDomainError(c, domain.ValidationError{Field: "season_name", Msg: "wajib diisi, maksimal 100 karakter"})
		return
	}
	if _, err := utils.ParseDate(req.StartDate); err != nil {
		RespondDomainError(c, domain.ValidationError{Field: "start_date", Msg: "format harus YYYY-MM-DD", Err: err})
		return
	}
	if _, err := utils.ParseDate(req.EndDate); err != nil {
		RespondDomainError(c, domain.ValidationError{Field: "end_date", Msg: "format harus YYYY-MM-DD", Err: err})
		return
	}
	multiplier, err := decimal.NewFromString(strings.TrimSpace(req.PriceMultiplier))
	if err != nil || multiplier.LessThanOrEqual(decimal.Zero) {
		RespondDomainError(c, domain.ValidationError{Field: "price_multiplier", Msg: "harus desimal lebih dari 0"})
		return
	}
	if multiplier.Exponent() < -3 {
		RespondDomainError(c, domain.ValidationError{Field: "price_multiplier", Msg: "maksimal 3 angka di belakang koma"})
		return
	}

	repo := repositories.SeasonalPriceRepository{}
	id, err := repo.Create(models.SeasonalPrice{
		RouteID:         routeID,
		SeasonName:      name,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		PriceMultiplier: multiplier,
		IsActive:        true,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	audit := services.AuditService{Repo: repositories.AdminActionRepository{}, RequestID: middleware.GetRequestID(c)}
	audit.Record(middleware.GetUserID(c), "create", "seasonal_price", id, "musim: "+name, req)

	c.JSON(http.StatusCreated, gin.H{"id": id})
}
