package services

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"backend/internal/domain"
	"backend/internal/domain/models"
	"backend/internal/repositories"
	"backend/internal/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentService creates settlement attempts and applies the gateway's
// outcome. The gateway itself is external; this service only owns the status
// transitions and their timestamps.
type PaymentService struct {
	PaymentRepo repositories.PaymentRepository
	BookingRepo repositories.BookingRepository
	RequestID   string
	Now         func() time.Time
}

func (s PaymentService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// PaymentInput mirrors the create payload after handler validation.
type PaymentInput struct {
	BookingID       int64
	PaymentMethod   string
	GatewayProvider string
	ReturnURL       string
}

// Create opens a pending payment covering the booking's full amount.
func (s PaymentService) Create(in PaymentInput) (models.Payment, error) {
	var out models.Payment

	if len(strings.TrimSpace(in.PaymentMethod)) > 50 {
		return out, domain.ValidationError{Field: "payment_method", Msg: "maksimal 50 karakter"}
	}
	if len(strings.TrimSpace(in.GatewayProvider)) > 50 {
		return out, domain.ValidationError{Field: "gateway_provider", Msg: "maksimal 50 karakter"}
	}

	booking, err := s.BookingRepo.GetByID(in.BookingID)
	if err != nil {
		return out, err
	}
	if booking.Status != models.BookingStatusPending {
		return out, domain.ConflictError{Resource: "booking", Msg: "hanya booking pending yang bisa dibayar"}
	}
	if s.now().After(booking.BookingDeadline) {
		return out, domain.ConflictError{Resource: "booking", Msg: "batas waktu pembayaran sudah lewat"}
	}

	payment := models.Payment{
		BookingID:        in.BookingID,
		PaymentReference: "PAY-" + uuid.NewString(),
		Amount:           booking.TotalAmount,
		Currency:         booking.Currency,
		PaymentMethod:    strings.TrimSpace(in.PaymentMethod),
		GatewayProvider:  strings.TrimSpace(in.GatewayProvider),
		Status:           models.PaymentStatusPending,
	}
	id, err := s.PaymentRepo.Create(payment)
	if err != nil {
		return out, err
	}
	payment.ID = id

	utils.LogEvent(s.RequestID, "payment", "create",
		"payment_id="+strconv.FormatInt(id, 10)+" booking_id="+strconv.FormatInt(in.BookingID, 10))
	return payment, nil
}

// GatewayResult is what the provider callback reports back.
type GatewayResult struct {
	Status        string          `json:"status"`
	TransactionID string          `json:"transaction_id"`
	FailureReason string          `json:"failure_reason"`
	RefundAmount  string          `json:"refund_amount"`
	Response      json.RawMessage `json:"response"`
}

// ApplyGatewayResult applies the status the provider reports: processing while
// the gateway still holds the attempt, otherwise the terminal state. A
// completed payment also confirms the booking.
func (s PaymentService) ApplyGatewayResult(paymentID int64, result GatewayResult) error {
	payment, err := s.PaymentRepo.GetByID(paymentID)
	if err != nil {
		return err
	}
	now := s.now()

	switch result.Status {
	case models.PaymentStatusProcessing:
		if err := s.PaymentRepo.MarkProcessing(paymentID); err != nil {
			return err
		}
	case models.PaymentStatusCompleted:
		if err := s.PaymentRepo.MarkCompleted(paymentID, now, result.TransactionID, result.Response); err != nil {
			return err
		}
		if err := s.BookingRepo.Confirm(payment.BookingID, now); err != nil {
			// booking mungkin sudah confirmed oleh attempt lain
			if !domain.IsConflict(err) {
				return err
			}
		}
	case models.PaymentStatusFailed:
		if err := s.PaymentRepo.MarkFailed(paymentID, now, strings.TrimSpace(result.FailureReason), result.Response); err != nil {
			return err
		}
	case models.PaymentStatusRefunded:
		amount := payment.Amount
		if strings.TrimSpace(result.RefundAmount) != "" {
			parsed, err := utils.ParseAmount(result.RefundAmount)
			if err != nil {
				return domain.ValidationError{Field: "refund_amount", Msg: "format desimal tidak valid", Err: err}
			}
			amount = parsed
		}
		if amount.LessThanOrEqual(decimal.Zero) || amount.GreaterThan(payment.Amount) {
			return domain.ValidationError{Field: "refund_amount", Msg: "harus > 0 dan <= jumlah payment"}
		}
		if err := s.PaymentRepo.MarkRefunded(paymentID, now, amount); err != nil {
			return err
		}
	default:
		return domain.ValidationError{Field: "status", Msg: "harus processing, completed, failed, atau refunded"}
	}

	utils.LogEvent(s.RequestID, "payment", "gateway_result",
		"payment_id="+strconv.FormatInt(paymentID, 10)+" status="+result.Status)
	return nil
}
