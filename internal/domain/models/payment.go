package models

import (
	"encoding/json"
	"time"
)

const (
	PaymentStatusPending    = "pending"
	PaymentStatusProcessing = "processing"
	PaymentStatusCompleted  = "completed"
	PaymentStatusFailed     = "failed"
	PaymentStatusRefunded   = "refunded"
)

// Payment is one settlement attempt against a booking; a booking may carry
// several (retries, refunds). GatewayResponse stores the raw gateway payload.
type Payment struct {
	ID                   int64           `json:"id"`
	BookingID            int64           `json:"bookingId"`
	PaymentReference     string          `json:"paymentReference"`
	Amount               Decimal         `json:"amount"`
	Currency             string          `json:"currency"`
	PaymentMethod        string          `json:"paymentMethod"`
	GatewayProvider      string          `json:"gatewayProvider"`
	GatewayTransactionID string          `json:"gatewayTransactionId,omitempty"`
	Status               string          `json:"status"`
	GatewayResponse      json.RawMessage `json:"gatewayResponse,omitempty"`
	ProcessedAt          *time.Time      `json:"processedAt,omitempty"`
	FailedAt             *time.Time      `json:"failedAt,omitempty"`
	FailureReason        string          `json:"failureReason,omitempty"`
	RefundedAt           *time.Time      `json:"refundedAt,omitempty"`
	RefundAmount         NullDecimal     `json:"refundAmount"`
	CreatedAt            time.Time       `json:"createdAt"`
	UpdatedAt            time.Time       `json:"updatedAt"`
}

func ValidPaymentStatus(s string) bool {
	switch s {
	case PaymentStatusPending, PaymentStatusProcessing, PaymentStatusCompleted,
		PaymentStatusFailed, PaymentStatusRefunded:
		return true
	}
	return false
}
