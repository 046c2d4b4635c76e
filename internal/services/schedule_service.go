package services

import (
	"fmt"
	"strconv"

	"backend/internal/domain"
	"backend/internal/domain/models"
	"backend/internal/repositories"
	"backend/internal/utils"
)

// ScheduleService answers "does this schedule run on that date" and
// materializes DailySchedule rows that bookings attach to.
type ScheduleService struct {
	ScheduleRepo repositories.ScheduleRepository
	DailyRepo    repositories.DailyScheduleRepository
	FastboatRepo repositories.FastboatRepository
	RequestID    string
}

// Hard cap supaya generate range tidak bisa diminta bertahun-tahun sekaligus.
const maxMaterializeDays = 186

// ActiveOn reports whether the schedule operates on the given date:
// status active, weekday listed in days_of_week (0=Monday..6=Sunday), and the
// date inside [effective_from, effective_until] (open-ended when until empty).
func (s ScheduleService) ActiveOn(sch models.Schedule, date string) (bool, error) {
	day, err := utils.ParseDate(date)
	if err != nil {
		return false, domain.ValidationError{Field: "date", Msg: "format harus YYYY-MM-DD", Err: err}
	}
	if sch.Status != models.ScheduleStatusActive {
		return false, nil
	}

	from, err := utils.ParseDate(sch.EffectiveFrom)
	if err != nil {
		return false, domain.InternalError{Msg: "effective_from rusak", Err: err}
	}
	if day.Before(from) {
		return false, nil
	}
	if sch.EffectiveUntil != "" {
		until, err := utils.ParseDate(sch.EffectiveUntil)
		if err != nil {
			return false, domain.InternalError{Msg: "effective_until rusak", Err: err}
		}
		if day.After(until) {
			return false, nil
		}
	}

	weekday := utils.WeekdayMon0(day)
	for _, d := range sch.DaysOfWeek {
		if d == weekday {
			return true, nil
		}
	}
	return false, nil
}

// MaterializeRange creates one DailySchedule per operating day in [from, to],
// seeded with the fastboat's capacity. Re-running the same range is a no-op
// for dates that already exist.
func (s ScheduleService) MaterializeRange(scheduleID int64, from, to string) (int, error) {
	start, err := utils.ParseDate(from)
	if err != nil {
		return 0, domain.ValidationError{Field: "from", Msg: "format harus YYYY-MM-DD", Err: err}
	}
	end, err := utils.ParseDate(to)
	if err != nil {
		return 0, domain.ValidationError{Field: "to", Msg: "format harus YYYY-MM-DD", Err: err}
	}
	if end.Before(start) {
		return 0, domain.ValidationError{Field: "to", Msg: "harus >= from"}
	}
	if int(end.Sub(start).Hours()/24) > maxMaterializeDays {
		return 0, domain.ValidationError{Field: "to", Msg: fmt.Sprintf("rentang maksimal %d hari", maxMaterializeDays)}
	}

	sch, err := s.ScheduleRepo.GetByID(scheduleID)
	if err != nil {
		return 0, err
	}
	boat, err := s.FastboatRepo.GetByID(sch.FastboatID)
	if err != nil {
		return 0, err
	}

	created := 0
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		date := utils.FormatDate(day)
		ok, err := s.ActiveOn(sch, date)
		if err != nil {
			return created, err
		}
		if !ok {
			continue
		}
		_, inserted, err := s.DailyRepo.Insert(models.DailySchedule{
			ScheduleID:     sch.ID,
			TravelDate:     date,
			AvailableSeats: boat.Capacity,
			IsAvailable:    true,
		})
		if err != nil {
			return created, err
		}
		if inserted {
			created++
		}
	}

	utils.LogEvent(s.RequestID, "schedule", "materialize",
		"schedule_id="+strconv.FormatInt(scheduleID, 10)+" created="+strconv.Itoa(created))
	return created, nil
}
