package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/clinicdesk/reservation-service/pkg/types"
)

var (
	// ErrInvalidSchedule возвращается при некорректной конфигурации расписания
	ErrInvalidSchedule = errors.New("domain: invalid working schedule")
)

// WorkingSchedule is a doctor's working-hours configuration, owned by the
// doctor/admin configuration UI and read by the slot engine.
type WorkingSchedule struct {
	ID                   int64
	ClinicID             int64
	DoctorID             int64
	WorkingDays          []time.Weekday
	StartTime            types.TimeString
	EndTime              types.TimeString
	Is24Hours            bool
	SlotDurationMinutes  int
	MaxDailyAppointments *int // nil = без ограничения

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DefaultWorkingSchedule возвращает расписание по умолчанию:
// Пн-Пт 08:00-18:00, слоты по 30 минут
func DefaultWorkingSchedule(clinicID, doctorID int64) *WorkingSchedule {
	return &WorkingSchedule{
		ClinicID: clinicID,
		DoctorID: doctorID,
		WorkingDays: []time.Weekday{
			time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday,
		},
		StartTime:           types.TimeString(DefaultScheduleStartTime),
		EndTime:             types.TimeString(DefaultScheduleEndTime),
		SlotDurationMinutes: DefaultSlotDurationMinutes,
	}
}

// WorksOn возвращает true, если день недели входит в рабочие дни
func (s *WorkingSchedule) WorksOn(day time.Weekday) bool {
	for _, d := range s.WorkingDays {
		if d == day {
			return true
		}
	}
	return false
}

// Hours возвращает эффективные рабочие часы
// Флаг Is24Hours принудительно расширяет их до полного дня
func (s *WorkingSchedule) Hours() (start, end types.TimeString) {
	if s.Is24Hours {
		return "00:00", "23:59"
	}
	return s.StartTime, s.EndTime
}

// Validate проверяет инварианты конфигурации расписания
func (s *WorkingSchedule) Validate() error {
	if s.SlotDurationMinutes < MinSlotDurationMinutes || s.SlotDurationMinutes > MaxSlotDurationMinutes {
		return fmt.Errorf("%w: slot duration must be in [%d,%d] minutes, got %d",
			ErrInvalidSchedule, MinSlotDurationMinutes, MaxSlotDurationMinutes, s.SlotDurationMinutes)
	}

	if !s.Is24Hours {
		if err := s.StartTime.Validate(); err != nil {
			return fmt.Errorf("%w: start time: %v", ErrInvalidSchedule, err)
		}
		if err := s.EndTime.Validate(); err != nil {
			return fmt.Errorf("%w: end time: %v", ErrInvalidSchedule, err)
		}
		if !s.StartTime.IsBefore(s.EndTime) {
			return fmt.Errorf("%w: start time %s must be before end time %s",
				ErrInvalidSchedule, s.StartTime, s.EndTime)
		}
	}

	for _, d := range s.WorkingDays {
		if d < time.Sunday || d > time.Saturday {
			return fmt.Errorf("%w: invalid weekday %d", ErrInvalidSchedule, d)
		}
	}

	return nil
}

// CandidateSlots derives the ordered candidate slot start times for a date.
// Pure and deterministic: same inputs always yield the same sequence.
//
// The walk starts at the schedule's opening time and steps by the slot
// duration; a trailing slot that would end after closing time is dropped.
// A date outside the working weekdays yields an empty sequence, not an error.
func (s *WorkingSchedule) CandidateSlots(date time.Time) ([]types.TimeString, error) {
	if s.SlotDurationMinutes <= 0 {
		return nil, fmt.Errorf("%w: slot duration must be positive, got %d",
			ErrInvalidSchedule, s.SlotDurationMinutes)
	}

	if !s.WorksOn(date.Weekday()) {
		return []types.TimeString{}, nil
	}

	start, end := s.Hours()
	startMin, err := start.Minutes()
	if err != nil {
		return nil, fmt.Errorf("%w: start time: %v", ErrInvalidSchedule, err)
	}
	endMin, err := end.Minutes()
	if err != nil {
		return nil, fmt.Errorf("%w: end time: %v", ErrInvalidSchedule, err)
	}

	if startMin >= endMin {
		return nil, fmt.Errorf("%w: start time %s must be before end time %s",
			ErrInvalidSchedule, start, end)
	}

	slots := make([]types.TimeString, 0, (endMin-startMin)/s.SlotDurationMinutes)
	for m := startMin; m+s.SlotDurationMinutes <= endMin; m += s.SlotDurationMinutes {
		slot, err := types.FromMinutes(m)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidSchedule, err)
		}
		slots = append(slots, slot)
	}

	return slots, nil
}
