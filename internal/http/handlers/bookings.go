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
	"backend/internal/utils"

	"github.com/gin-gonic/gin"
)

func bookingService(c *gin.Context) services.BookingService {
	reqID := middleware.GetRequestID(c)
	return services.BookingService{
		DailyRepo:     repositories.DailyScheduleRepository{},
		BookingRepo:   repositories.BookingRepository{},
		PassengerRepo: repositories.PassengerRepository{},
		SettingsRepo:  repositories.SystemSettingsRepository{},
		Pricing: services.PricingService{
			SeasonalRepo: repositories.SeasonalPriceRepository{},
			RequestID:    reqID,
		},
		RequestID: reqID,
	}
}

type passengerRequest struct {
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	DateOfBirth    string `json:"date_of_birth"`
	Nationality    string `json:"nationality"`
	PassportNumber string `json:"passport_number"`
	IDNumber       string `json:"id_number"`
	SpecialNeeds   string `json:"special_needs"`
}

type bookingCreateRequest struct {
	DailyScheduleID int64              `json:"daily_schedule_id"`
	PassengerCount  int                `json:"passenger_count"`
	ContactEmail    string             `json:"contact_email"`
	ContactPhone    string             `json:"contact_phone"`
	SpecialRequests string             `json:"special_requests"`
	Passengers      []passengerRequest `json:"passengers"`
}

// CreateBooking reserves seats for the authenticated user.
func CreateBooking(c *gin.Context) {
	var req bookingCreateRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	if req.DailyScheduleID <= 0 {
		RespondDomainError(c, domain.ValidationError{Field: "daily_schedule_id", Msg: "wajib diisi"})
		return
	}
	email := strings.TrimSpace(req.ContactEmail)
	if email == "" || !strings.Contains(email, "@") || len(email) > 255 {
		RespondDomainError(c, domain.ValidationError{Field: "contact_email", Msg: "format email tidak valid"})
		return
	}

	passengers := make([]models.Passenger, 0, len(req.Passengers))
	for i, p := range req.Passengers {
		if p.DateOfBirth != "" {
			if _, err := utils.ParseDate(p.DateOfBirth); err != nil {
				RespondDomainError(c, domain.ValidationError{
					Field: "passengers[" + strconv.Itoa(i) + "].date_of_birth",
					Msg:   "format harus YYYY-MM-DD",
					Err:   err,
				})
				return
			}
		}
		passengers = append(passengers, models.Passenger{
			FirstName:      strings.TrimSpace(p.FirstName),
			LastName:       strings.TrimSpace(p.LastName),
			DateOfBirth:    p.DateOfBirth,
			Nationality:    strings.TrimSpace(p.Nationality),
			PassportNumber: strings.TrimSpace(p.PassportNumber),
			IDNumber:       strings.TrimSpace(p.IDNumber),
			SpecialNeeds:   strings.TrimSpace(p.SpecialNeeds),
		})
	}

	svc := bookingService(c)
	booking, err := svc.Create(services.BookingInput{
		UserID:          middleware.GetUserID(c),
		DailyScheduleID: req.DailyScheduleID,
		PassengerCount:  req.PassengerCount,
		ContactEmail:    email,
		ContactPhone:    req.ContactPhone,
		SpecialRequests: req.SpecialRequests,
		Passengers:      passengers,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"booking": booking})
}

// GetBooking returns one booking with passengers. Customers only see their
// own bookings; admins see all.
func GetBooking(c *gin.Context) {
	id := PathID(c)
	if id == 0 {
		RespondDomainError(c, domain.ValidationError{Field: "id", Msg: "id tidak valid"})
		return
	}

	svc := bookingService(c)
	booking, err := svc.Get(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if !canAccessBooking(c, booking) {
		respondError(c, http.StatusForbidden, "forbidden", "booking milik user lain", nil)
		return
	}

	c.JSON(http.StatusOK, gin.H{"booking": booking})
}

// GetBookingByReference resolves the customer-facing code (e.g. FB-4C21A7D90E)
// printed on tickets and confirmation emails.
func GetBookingByReference(c *gin.Context) {
	ref := strings.TrimSpace(c.Param("ref"))
	if ref == "" || len(ref) > 20 {
		RespondDomainError(c, domain.ValidationError{Field: "ref", Msg: "referensi tidak valid"})
		return
	}

	repo := repositories.BookingRepository{}
	booking, err := repo.GetByReference(ref)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if !canAccessBooking(c, booking) {
		respondError(c, http.StatusForbidden, "forbidden", "booking milik user lain", nil)
		return
	}

	passengers, err := repositories.PassengerRepository{}.ListByBookingID(booking.ID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	booking.Passengers = passengers
	c.JSON(http.StatusOK, gin.H{"booking": booking})
}

// GetMyBookings lists the authenticated user's bookings, newest first.
func GetMyBookings(c *gin.Context) {
	repo := repositories.BookingRepository{}
	bookings, err := repo.ListByUser(middleware.GetUserID(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

type bookingCancelRequest struct {
	Reason string `json:"reason"`
}

// CancelBooking cancels a pending/confirmed booking and releases its seats.
func CancelBooking(c *gin.Context) {
	id := PathID(c)
	if id == 0 {
		RespondDomainError(c, domain.ValidationError{Field: "id", Msg: "id tidak valid"})
		return
	}
	var req bookingCancelRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	repo := repositories.BookingRepository{}
	booking, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if !canAccessBooking(c, booking) {
		respondError(c, http.StatusForbidden, "forbidden", "booking milik user lain", nil)
		return
	}

	svc := bookingService(c)
	if err := svc.Cancel(id, req.Reason); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "cancelled"})
}

// GetBookingETicket streams the booking's e-ticket PDF.
func GetBookingETicket(c *gin.Context) {
	id := PathID(c)
	if id == 0 {
		RespondDomainError(c, domain.ValidationError{Field: "id", Msg: "id tidak valid"})
		return
	}

	repo := repositories.BookingRepository{}
	booking, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if !canAccessBooking(c, booking) {
		respondError(c, http.StatusForbidden, "forbidden", "booking milik user lain", nil)
		return
	}
	if booking.Status != models.BookingStatusConfirmed && booking.Status != models.BookingStatusCompleted {
		RespondDomainError(c, domain.ConflictError{Resource: "booking", Msg: "e-ticket hanya untuk booking yang sudah dibayar"})
		return
	}

	docs := services.DocsService{
		BookingRepo:   repo,
		PassengerRepo: repositories.PassengerRepository{},
		DailyRepo:     repositories.DailyScheduleRepository{},
		ScheduleRepo:  repositories.ScheduleRepository{},
		RouteRepo:     repositories.RouteRepository{},
		FastboatRepo:  repositories.FastboatRepository{},
		RequestID:     middleware.GetRequestID(c),
	}
	pdf, filename, err := docs.GenerateETicket(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// ExpireOverdueBookings sweeps pending bookings past their payment deadline
// (admin).
func ExpireOverdueBookings(c *gin.Context) {
	svc := bookingService(c)
	swept, err := svc.ExpireOverdue()
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	audit := services.AuditService{Repo: repositories.AdminActionRepository{}, RequestID: middleware.GetRequestID(c)}
	audit.Record(middleware.GetUserID(c), "expire_sweep", "booking", 0, "", gin.H{"swept": swept})

	c.JSON(http.StatusOK, gin.H{"swept": swept})
}

func canAccessBooking(c *gin.Context, b models.Booking) bool {
	if middleware.GetRole(c) == models.RoleAdmin {
		return true
	}
	return b.UserID == middleware.GetUserID(c)
}
