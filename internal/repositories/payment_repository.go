package repositories

import (
	"database/sql"
	"encoding/json"
	"time"

	intconfig "backend/internal/config"
	intdb "backend/internal/db"
	"backend/internal/domain"
	"backend/internal/domain/models"

	"github.com/shopspring/decimal"
)

type PaymentRepository struct {
	DB *sql.DB
}

func (r PaymentRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const paymentColumns = `
	id, booking_id, payment_reference, amount, currency, payment_method,
	gateway_provider, COALESCE(gateway_transaction_id, ''), status,
	COALESCE(gateway_response, '{}'), processed_at, failed_at, failure_reason,
	refunded_at, refund_amount, created_at, updated_at`

func scanPayment(scan func(dest ...any) error) (models.Payment, error) {
	var p models.Payment
	var gatewayResponse []byte
	var processedAt, failedAt, refundedAt sql.NullTime
	err := scan(
		&p.ID, &p.BookingID, &p.PaymentReference, &p.Amount, &p.Currency, &p.PaymentMethod,
		&p.GatewayProvider, &p.GatewayTransactionID, &p.Status,
		&gatewayResponse, &processedAt, &failedAt, &p.FailureReason,
		&refundedAt, &p.RefundAmount, &p.CreatedAt, &p.UpdatedAt,
	)
	p.GatewayResponse = json.RawMessage(gatewayResponse)
	if processedAt.Valid {
		t := processedAt.Time
		p.ProcessedAt = &t
	}
	if failedAt.Valid {
		t := failedAt.Time
		p.FailedAt = &t
	}
	if refundedAt.Valid {
		t := refundedAt.Time
		p.RefundedAt = &t
	}
	return p, err
}

func (r PaymentRepository) GetByID(id int64) (models.Payment, error) {
	row := r.db().QueryRow(`SELECT`+paymentColumns+` FROM payments WHERE id=? LIMIT 1`, id)
	p, err := scanPayment(row.Scan)
	if err == sql.ErrNoRows {
		return p, domain.NotFoundError{Resource: "payment"}
	}
	return p, err
}

func (r PaymentRepository) GetByReference(ref string) (models.Payment, error) {
	row := r.db().QueryRow(`SELECT`+paymentColumns+` FROM payments WHERE payment_reference=? LIMIT 1`, ref)
	p, err := scanPayment(row.Scan)
	if err == sql.ErrNoRows {
		return p, domain.NotFoundError{Resource: "payment"}
	}
	return p, err
}

func (r PaymentRepository) ListByBookingID(bookingID int64) ([]models.Payment, error) {
	rows, err := r.db().Query(`
		SELECT`+paymentColumns+`
		FROM payments
		WHERE booking_id=?
		ORDER BY created_at ASC, id ASC
	`, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Payment{}
	for rows.Next() {
		p, err := scanPayment(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r PaymentRepository) Create(p models.Payment) (int64, error) {
	gatewayResponse := p.GatewayResponse
	if len(gatewayResponse) == 0 {
		gatewayResponse = json.RawMessage(`{}`)
	}
	res, err := r.db().Exec(`
		INSERT INTO payments (booking_id, payment_reference, amount, currency,
		                      payment_method, gateway_provider, gateway_transaction_id,
		                      status, gateway_response)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		p.BookingID, p.PaymentReference, p.Amount, p.Currency,
		p.PaymentMethod, p.GatewayProvider, intdb.NullIfEmpty(p.GatewayTransactionID),
		p.Status, []byte(gatewayResponse),
	)
	if err != nil {
		if intdb.IsDuplicate(err) {
			return 0, domain.ConflictError{Resource: "payment", Msg: "payment_reference sudah dipakai"}
		}
		return 0, err
	}
	return res.LastInsertId()
}

// MarkProcessing flags a pending payment that was handed to the gateway.
func (r PaymentRepository) MarkProcessing(id int64) error {
	res, err := r.db().Exec(`
		UPDATE payments SET status=?, updated_at=NOW()
		WHERE id=? AND status=?
	`, models.PaymentStatusProcessing, id, models.PaymentStatusPending)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ConflictError{Resource: "payment", Msg: "hanya payment pending yang bisa diproses"}
	}
	return nil
}

// MarkCompleted stamps processed_at together with the gateway result.
func (r PaymentRepository) MarkCompleted(id int64, at time.Time, transactionID string, gatewayResponse json.RawMessage) error {
	if len(gatewayResponse) == 0 {
		gatewayResponse = json.RawMessage(`{}`)
	}
	res, err := r.db().Exec(`
		UPDATE payments
		SET status=?, processed_at=?, gateway_transaction_id=?, gateway_response=?, updated_at=NOW()
		WHERE id=? AND status IN (?, ?)
	`, models.PaymentStatusCompleted, at, intdb.NullIfEmpty(transactionID), []byte(gatewayResponse),
		id, models.PaymentStatusPending, models.PaymentStatusProcessing)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ConflictError{Resource: "payment", Msg: "payment tidak dalam status pending/processing"}
	}
	return nil
}

// MarkFailed stamps failed_at and the gateway's reason.
func (r PaymentRepository) MarkFailed(id int64, at time.Time, reason string, gatewayResponse json.RawMessage) error {
	if len(gatewayResponse) == 0 {
		gatewayResponse = json.RawMessage(`{}`)
	}
	res, err := r.db().Exec(`
		UPDATE payments
		SET status=?, failed_at=?, failure_reason=?, gateway_response=?, updated_at=NOW()
		WHERE id=? AND status IN (?, ?)
	`, models.PaymentStatusFailed, at, reason, []byte(gatewayResponse),
		id, models.PaymentStatusPending, models.PaymentStatusProcessing)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ConflictError{Resource: "payment", Msg: "payment tidak dalam status pending/processing"}
	}
	return nil
}

// MarkRefunded stamps refunded_at with the (possibly partial) refund amount.
func (r PaymentRepository) MarkRefunded(id int64, at time.Time, amount decimal.Decimal) error {
	res, err := r.db().Exec(`
		UPDATE payments
		SET status=?, refunded_at=?, refund_amount=?, updated_at=NOW()
		WHERE id=? AND status=?
	`, models.PaymentStatusRefunded, at, amount, id, models.PaymentStatusCompleted)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ConflictError{Resource: "payment", Msg: "hanya payment completed yang bisa direfund"}
	}
	return nil
}
