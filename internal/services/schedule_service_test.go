package services

import (
	"testing"
	"time"

	"backend/internal/domain/models"
	"backend/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
)

func sampleTime() time.Time {
	return time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
}

func mondayFridaySchedule() models.Schedule {
	return models.Schedule{
		ID:            1,
		Status:        models.ScheduleStatusActive,
		DaysOfWeek:    []int{0, 2, 4}, // Senin, Rabu, Jumat
		EffectiveFrom: "2024-01-01",
	}
}

func TestActiveOnMatchingWeekday(t *testing.T) {
	svc := ScheduleService{}
	sch := mondayFridaySchedule()

	// 2024-06-10 is a Monday
	active, err := svc.ActiveOn(sch, "2024-06-10")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !active {
		t.Fatalf("schedule should operate on Monday 2024-06-10")
	}

	// 2024-06-11 is a Tuesday, not listed
	active, err = svc.ActiveOn(sch, "2024-06-11")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if active {
		t.Fatalf("schedule should not operate on Tuesday 2024-06-11")
	}
}

func TestActiveOnRespectsEffectiveRange(t *testing.T) {
	svc := ScheduleService{}
	sch := mondayFridaySchedule()
	sch.EffectiveFrom = "2024-06-15"

	active, err := svc.ActiveOn(sch, "2024-06-10")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if active {
		t.Fatalf("date before effective_from must be inactive")
	}

	sch.EffectiveFrom = "2024-01-01"
	sch.EffectiveUntil = "2024-05-31"
	active, err = svc.ActiveOn(sch, "2024-06-10")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if active {
		t.Fatalf("date after effective_until must be inactive")
	}

	// open-ended when effective_until is empty
	sch.EffectiveUntil = ""
	active, err = svc.ActiveOn(sch, "2030-06-10")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !active {
		t.Fatalf("open-ended schedule should stay active far in the future")
	}
}

func TestActiveOnSuspendedSchedule(t *testing.T) {
	svc := ScheduleService{}
	sch := mondayFridaySchedule()
	sch.Status = models.ScheduleStatusSuspended

	active, err := svc.ActiveOn(sch, "2024-06-10")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if active {
		t.Fatalf("suspended schedule must never be active")
	}
}

func TestActiveOnRejectsBadDate(t *testing.T) {
	svc := ScheduleService{}
	if _, err := svc.ActiveOn(mondayFridaySchedule(), "10/06/2024"); err == nil {
		t.Fatalf("expected validation error for bad date format")
	}
}

func materializeScheduleRows() *sqlmock.Rows {
	now := sampleTime()
	return sqlmock.NewRows([]string{
		"id", "route_id", "fastboat_id", "departure_time", "arrival_time",
		"base_price", "currency", "days_of_week", "effective_from", "effective_until",
		"status", "created_at", "updated_at",
	}).AddRow(3, 7, 2, "09:00", "10:30",
		"350000.00", "IDR", "[0,2]", "2024-01-01", "",
		"active", now, now)
}

func materializeFastboatRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "name", "operator", "capacity", "boat_type", "facilities", "is_active", "created_at",
	}).AddRow(2, "Sea Falcon", "Blue Water", 40, "fastboat", "{}", true, sampleTime())
}

func TestMaterializeRangeRerunIsNoOp(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	svc := ScheduleService{
		ScheduleRepo: repositories.ScheduleRepository{DB: db},
		DailyRepo:    repositories.DailyScheduleRepository{DB: db},
		FastboatRepo: repositories.FastboatRepository{DB: db},
	}

	// first run inserts Monday the 10th and Wednesday the 12th
	mock.ExpectQuery("FROM schedules").WithArgs(int64(3)).WillReturnRows(materializeScheduleRows())
	mock.ExpectQuery("FROM fastboats").WithArgs(int64(2)).WillReturnRows(materializeFastboatRows())
	mock.ExpectExec("INSERT INTO daily_schedules").WillReturnResult(sqlmock.NewResult(100, 1))
	mock.ExpectExec("INSERT INTO daily_schedules").WillReturnResult(sqlmock.NewResult(101, 1))

	created, err := svc.MaterializeRange(3, "2024-06-10", "2024-06-12")
	if err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	if created != 2 {
		t.Fatalf("first run should create 2 rows, got %d", created)
	}

	// re-run hits the duplicate key on both dates: 0 affected rows each
	mock.ExpectQuery("FROM schedules").WithArgs(int64(3)).WillReturnRows(materializeScheduleRows())
	mock.ExpectQuery("FROM fastboats").WithArgs(int64(2)).WillReturnRows(materializeFastboatRows())
	mock.ExpectExec("INSERT INTO daily_schedules").WillReturnResult(sqlmock.NewResult(100, 0))
	mock.ExpectExec("INSERT INTO daily_schedules").WillReturnResult(sqlmock.NewResult(101, 0))

	created, err = svc.MaterializeRange(3, "2024-06-10", "2024-06-12")
	if err != nil {
		t.Fatalf("re-run failed: %v", err)
	}
	if created != 0 {
		t.Fatalf("re-running the same range must report 0 created, got %d", created)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet sqlmock expectations: %v", err)
	}
}
