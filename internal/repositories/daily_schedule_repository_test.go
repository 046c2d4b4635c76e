package repositories

import (
	"testing"

	"backend/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
)

func newMockRepo(t *testing.T) (DailyScheduleRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	return DailyScheduleRepository{DB: db}, mock, func() { db.Close() }
}

func TestDailySchedulePatchEmptyBodyIsNoOp(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()

	// no UPDATE expected for either shape of an empty patch
	if err := repo.Patch(10, []byte(`{}`)); err != nil {
		t.Fatalf("empty object patch should be a no-op, got %v", err)
	}
	if err := repo.Patch(10, nil); err != nil {
		t.Fatalf("nil body patch should be a no-op, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("no SQL should run on a no-op patch: %v", err)
	}
}

func TestDailySchedulePatchOnlyPresentFields(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()

	mock.ExpectExec(`UPDATE daily_schedules SET available_seats=\?, updated_at=NOW\(\) WHERE id=\?`).
		WithArgs(12, int64(10)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Patch(10, []byte(`{"available_seats":12}`)); err != nil {
		t.Fatalf("expected patch to apply, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet sqlmock expectations: %v", err)
	}
}

func TestDailySchedulePatchExplicitNullClearsOverride(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()

	mock.ExpectExec(`UPDATE daily_schedules SET price_override=NULL, updated_at=NOW\(\) WHERE id=\?`).
		WithArgs(int64(10)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Patch(10, []byte(`{"price_override":null}`)); err != nil {
		t.Fatalf("expected null to clear the override, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet sqlmock expectations: %v", err)
	}
}

func TestDailySchedulePatchRejectsNegativeSeats(t *testing.T) {
	repo, _, done := newMockRepo(t)
	defer done()

	err := repo.Patch(10, []byte(`{"available_seats":-1}`))
	if !domain.IsValidation(err) {
		t.Fatalf("negative seats must be rejected, got %v", err)
	}
}

func TestDailySchedulePatchRejectsLongNotes(t *testing.T) {
	repo, _, done := newMockRepo(t)
	defer done()

	long := make([]byte, 501)
	for i := range long {
		long[i] = 'a'
	}
	err := repo.Patch(10, []byte(`{"notes":"`+string(long)+`"}`))
	if !domain.IsValidation(err) {
		t.Fatalf("notes above 500 chars must be rejected, got %v", err)
	}
}

func TestDailySchedulePatchUnknownIDIsNotFound(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()

	mock.ExpectExec(`UPDATE daily_schedules`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Patch(999, []byte(`{"is_available":false}`))
	if !domain.IsNotFound(err) {
		t.Fatalf("patching a missing row must be not found, got %v", err)
	}
}

func TestDecrementSeatsGuard(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE daily_schedules`).
		WithArgs(3, int64(10), 3).
		WillReturnResult(sqlmock.NewResult(0, 0))

	tx, err := repo.DB.Begin()
	if err != nil {
		t.Fatalf("begin failed: %v", err)
	}
	defer tx.Rollback()

	if err := repo.DecrementSeats(tx, 10, 3); !domain.IsConflict(err) {
		t.Fatalf("zero rows affected must surface as conflict, got %v", err)
	}
}
