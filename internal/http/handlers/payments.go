package handlers

import (
	"net/http"
	"strings"

	"backend/internal/domain"
	"backend/internal/http/middleware"
	"backend/internal/repositories"
	"backend/internal/services"

	"github.com/gin-gonic/gin"
)

func paymentService(c *gin.Context) services.PaymentService {
	return services.PaymentService{
		PaymentRepo: repositories.PaymentRepository{},
		BookingRepo: repositories.BookingRepository{},
		RequestID:   middleware.GetRequestID(c),
	}
}

type paymentCreateRequest struct {
	BookingID       int64  `json:"booking_id"`
	PaymentMethod   string `json:"payment_method"`
	GatewayProvider string `json:"gateway_provider"`
	ReturnURL       string `json:"return_url"`
}

// CreatePayment opens a settlement attempt for a pending booking. The
// response carries a redirect_url the client sends the customer to.
func CreatePayment(c *gin.Context) {
	var req paymentCreateRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	if req.BookingID <= 0 {
		RespondDomainError(c, domain.ValidationError{Field: "booking_id", Msg: "wajib diisi"})
		return
	}
	method := strings.TrimSpace(req.PaymentMethod)
	if method == "" {
		RespondDomainError(c, domain.ValidationError{Field: "payment_method", Msg: "wajib diisi"})
		return
	}
	returnURL := strings.TrimSpace(req.ReturnURL)
	if returnURL == "" {
		RespondDomainError(c, domain.ValidationError{Field: "return_url", Msg: "wajib diisi"})
		return
	}

	bookingRepo := repositories.BookingRepository{}
	booking, err := bookingRepo.GetByID(req.BookingID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if !canAccessBooking(c, booking) {
		respondError(c, http.StatusForbidden, "forbidden", "booking milik user lain", nil)
		return
	}

	svc := paymentService(c)
	payment, err := svc.Create(services.PaymentInput{
		BookingID:       req.BookingID,
		PaymentMethod:   method,
		GatewayProvider: req.GatewayProvider,
		ReturnURL:       returnURL,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"payment":      payment,
		"redirect_url": returnURL + "?payment_reference=" + payment.PaymentReference,
	})
}

// GetPayment returns one payment by id.
func GetPayment(c *gin.Context) {
	id := PathID(c)
	if id == 0 {
		RespondDomainError(c, domain.ValidationError{Field: "id", Msg: "id tidak valid"})
		return
	}

	repo := repositories.PaymentRepository{}
	payment, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	bookingRepo := repositories.BookingRepository{}
	booking, err := bookingRepo.GetByID(payment.BookingID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if !canAccessBooking(c, booking) {
		respondError(c, http.StatusForbidden, "forbidden", "payment milik user lain", nil)
		return
	}

	c.JSON(http.StatusOK, gin.H{"payment": payment})
}

// GetPaymentByReference resolves the PAY- code the gateway redirect carries.
func GetPaymentByReference(c *gin.Context) {
	ref := strings.TrimSpace(c.Param("ref"))
	if ref == "" || len(ref) > 100 {
		RespondDomainError(c, domain.ValidationError{Field: "ref", Msg: "referensi tidak valid"})
		return
	}

	repo := repositories.PaymentRepository{}
	payment, err := repo.GetByReference(ref)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	booking, err := repositories.BookingRepository{}.GetByID(payment.BookingID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if !canAccessBooking(c, booking) {
		respondError(c, http.StatusForbidden, "forbidden", "payment milik user lain", nil)
		return
	}

	c.JSON(http.StatusOK, gin.H{"payment": payment})
}

// GetBookingPayments lists every settlement attempt on one booking.
func GetBookingPayments(c *gin.Context) {
	id := PathID(c)
	if id == 0 {
		RespondDomainError(c, domain.ValidationError{Field: "id", Msg: "id tidak valid"})
		return
	}

	bookingRepo := repositories.BookingRepository{}
	booking, err := bookingRepo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if !canAccessBooking(c, booking) {
		respondError(c, http.StatusForbidden, "forbidden", "booking milik user lain", nil)
		return
	}

	repo := repositories.PaymentRepository{}
	payments, err := repo.ListByBookingID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"payments": payments})
}

// ApplyGatewayResult ingests the provider callback and moves the payment to
// completed/failed/refunded (admin; the gateway webhook hits this through an
// internal relay).
func ApplyGatewayResult(c *gin.Context) {
	id := PathID(c)
	if id == 0 {
		RespondDomainError(c, domain.ValidationError{Field: "id", Msg: "id tidak valid"})
		return
	}
	var result services.GatewayResult
	if !BindJSONOrError(c, &result) {
		return
	}

	svc := paymentService(c)
	if err := svc.ApplyGatewayResult(id, result); err != nil {
		RespondDomainError(c, err)
		return
	}

	payment, err := repositories.PaymentRepository{}.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"payment": payment})
}
