package services

import (
	"strings"
	"testing"
	"time"

	"backend/internal/domain"
	"backend/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
)

func newPaymentServiceForTest(t *testing.T) (PaymentService, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	mock.MatchExpectationsInOrder(false)

	svc := PaymentService{
		PaymentRepo: repositories.PaymentRepository{DB: db},
		BookingRepo: repositories.BookingRepository{DB: db},
		Now:         func() time.Time { return time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC) },
	}
	return svc, mock, func() { db.Close() }
}

func paymentRows(status, amount string) *sqlmock.Rows {
	now := time.Date(2024, 6, 1, 7, 0, 0, 0, time.UTC)
	return sqlmock.NewRows([]string{
		"id", "booking_id", "payment_reference", "amount", "currency", "payment_method",
		"gateway_provider", "gateway_transaction_id", "status",
		"gateway_response", "processed_at", "failed_at", "failure_reason",
		"refunded_at", "refund_amount", "created_at", "updated_at",
	}).AddRow(5, 42, "PAY-abc", amount, "IDR", "credit_card",
		"midtrans", "", status,
		"{}", nil, nil, "",
		nil, nil, now, now)
}

func TestPaymentCreateRejectsOversizedFields(t *testing.T) {
	svc, mock, done := newPaymentServiceForTest(t)
	defer done()

	_, err := svc.Create(PaymentInput{
		BookingID:     42,
		PaymentMethod: strings.Repeat("x", 51),
	})
	if !domain.IsValidation(err) {
		t.Fatalf("oversized payment_method must be rejected, got %v", err)
	}

	_, err = svc.Create(PaymentInput{
		BookingID:       42,
		PaymentMethod:   "credit_card",
		GatewayProvider: strings.Repeat("x", 51),
	})
	if !domain.IsValidation(err) {
		t.Fatalf("oversized gateway_provider must be rejected, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("validation must fire before the database is touched: %v", err)
	}
}

func TestApplyGatewayResultProcessing(t *testing.T) {
	svc, mock, done := newPaymentServiceForTest(t)
	defer done()

	mock.ExpectQuery("FROM payments").WithArgs(int64(5)).
		WillReturnRows(paymentRows("pending", "700000.00"))
	mock.ExpectExec("UPDATE payments").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := svc.ApplyGatewayResult(5, GatewayResult{Status: "processing"}); err != nil {
		t.Fatalf("processing status must move the payment along, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet sqlmock expectations: %v", err)
	}
}

func TestApplyGatewayResultCompletedConfirmsBooking(t *testing.T) {
	svc, mock, done := newPaymentServiceForTest(t)
	defer done()

	mock.ExpectQuery("FROM payments").WithArgs(int64(5)).
		WillReturnRows(paymentRows("processing", "700000.00"))
	mock.ExpectExec("UPDATE payments").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE bookings").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := svc.ApplyGatewayResult(5, GatewayResult{
		Status:        "completed",
		TransactionID: "mt-123",
	})
	if err != nil {
		t.Fatalf("expected completed result to apply, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet sqlmock expectations: %v", err)
	}
}

func TestApplyGatewayResultCompletedToleratesAlreadyConfirmed(t *testing.T) {
	svc, mock, done := newPaymentServiceForTest(t)
	defer done()

	mock.ExpectQuery("FROM payments").WithArgs(int64(5)).
		WillReturnRows(paymentRows("pending", "700000.00"))
	mock.ExpectExec("UPDATE payments").
		WillReturnResult(sqlmock.NewResult(0, 1))
	// booking already confirmed by another attempt, zero rows hit
	mock.ExpectExec("UPDATE bookings").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := svc.ApplyGatewayResult(5, GatewayResult{Status: "completed"}); err != nil {
		t.Fatalf("already-confirmed booking must not fail the callback, got %v", err)
	}
}

func TestApplyGatewayResultRefundOverAmountRejected(t *testing.T) {
	svc, mock, done := newPaymentServiceForTest(t)
	defer done()

	mock.ExpectQuery("FROM payments").WithArgs(int64(5)).
		WillReturnRows(paymentRows("completed", "700000.00"))

	err := svc.ApplyGatewayResult(5, GatewayResult{
		Status:       "refunded",
		RefundAmount: "900000.00",
	})
	if !domain.IsValidation(err) {
		t.Fatalf("refund above the paid amount must be rejected, got %v", err)
	}
}

func TestApplyGatewayResultUnknownStatusRejected(t *testing.T) {
	svc, mock, done := newPaymentServiceForTest(t)
	defer done()

	mock.ExpectQuery("FROM payments").WithArgs(int64(5)).
		WillReturnRows(paymentRows("pending", "700000.00"))

	if err := svc.ApplyGatewayResult(5, GatewayResult{Status: "paid"}); !domain.IsValidation(err) {
		t.Fatalf("unknown gateway status must be rejected, got %v", err)
	}
}
