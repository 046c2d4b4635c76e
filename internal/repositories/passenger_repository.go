package repositories

import (
	"database/sql"

	intconfig "backend/internal/config"
	intdb "backend/internal/db"
	"backend/internal/domain/models"
)

type PassengerRepository struct {
	DB *sql.DB
}

func (r PassengerRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// Insert writes one passenger inside the booking transaction.
func (r PassengerRepository) Insert(tx *sql.Tx, p models.Passenger) (int64, error) {
	res, err := tx.Exec(`
		INSERT INTO passengers (booking_id, first_name, last_name, date_of_birth,
		                        nationality, passport_number, id_number, special_needs)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		p.BookingID, p.FirstName, p.LastName, intdb.NullIfEmpty(p.DateOfBirth),
		intdb.NullIfEmpty(p.Nationality), intdb.NullIfEmpty(p.PassportNumber),
		intdb.NullIfEmpty(p.IDNumber), p.SpecialNeeds,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListByBookingID returns passengers in insert order.
func (r PassengerRepository) ListByBookingID(bookingID int64) ([]models.Passenger, error) {
	rows, err := r.db().Query(`
		SELECT id, booking_id, first_name, last_name,
		       COALESCE(DATE_FORMAT(date_of_birth, '%Y-%m-%d'), ''),
		       COALESCE(nationality, ''), COALESCE(passport_number, ''),
		       COALESCE(id_number, ''), special_needs, created_at
		FROM passengers
		WHERE booking_id=?
		ORDER BY id ASC
	`, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Passenger{}
	for rows.Next() {
		var p models.Passenger
		if err := rows.Scan(
			&p.ID, &p.BookingID, &p.FirstName, &p.LastName,
			&p.DateOfBirth, &p.Nationality, &p.PassportNumber,
			&p.IDNumber, &p.SpecialNeeds, &p.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
