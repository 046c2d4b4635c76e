package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"backend/internal/domain"
	"backend/internal/domain/models"
	"backend/internal/http/middleware"
	"backend/internal/services"
	"backend/internal/utils"

	"github.com/gin-gonic/gin"
)

func salesFiltersFromQuery(c *gin.Context) (services.SalesReportFilters, error) {
	f := services.SalesReportFilters{
		StartDate: strings.TrimSpace(c.Query("start_date")),
		EndDate:   strings.TrimSpace(c.Query("end_date")),
		Status:    strings.TrimSpace(c.Query("status")),
	}
	if _, err := utils.ParseDate(f.StartDate); err != nil {
		return f, domain.ValidationError{Field: "start_date", Msg: "format harus YYYY-MM-DD", Err: err}
	}
	if _, err := utils.ParseDate(f.EndDate); err != nil {
		return f, domain.ValidationError{Field: "end_date", Msg: "format harus YYYY-MM-DD", Err: err}
	}
	if f.Status != "" && !models.ValidBookingStatus(f.Status) {
		return f, domain.ValidationError{Field: "status", Msg: "status booking tidak dikenal"}
	}
	if v := strings.TrimSpace(c.Query("route_id")); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil || id <= 0 {
			return f, domain.ValidationError{Field: "route_id", Msg: "id tidak valid"}
		}
		f.RouteID = id
	}
	if v := strings.TrimSpace(c.Query("fastboat_id")); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil || id <= 0 {
			return f, domain.ValidationError{Field: "fastboat_id", Msg: "id tidak valid"}
		}
		f.FastboatID = id
	}
	return f, nil
}

// GetSalesReport aggregates bookings per route for a booked_at range (admin).
func GetSalesReport(c *gin.Context) {
	filters, err := salesFiltersFromQuery(c)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	svc := services.ReportsService{RequestID: middleware.GetRequestID(c)}
	report, err := svc.GetSalesReport(filters)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"report": report})
}

// GetSalesReportPDF renders the same aggregation as a PDF download (admin).
func GetSalesReportPDF(c *gin.Context) {
	filters, err := salesFiltersFromQuery(c)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	reqID := middleware.GetRequestID(c)
	svc := services.ReportsService{RequestID: reqID}
	report, err := svc.GetSalesReport(filters)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	docs := services.DocsService{RequestID: reqID}
	pdf, filename, err := docs.GenerateSalesReportPDF(report)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
