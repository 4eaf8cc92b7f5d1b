package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicdesk/reservation-service/pkg/types"
)

// Понедельник
var monday = time.Date(2026, time.August, 31, 0, 0, 0, 0, time.UTC)

// Воскресенье
var sunday = time.Date(2026, time.August, 30, 0, 0, 0, 0, time.UTC)

func scheduleFixture() *WorkingSchedule {
	return &WorkingSchedule{
		ClinicID:            1,
		DoctorID:            2,
		WorkingDays:         []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday},
		StartTime:           "08:00",
		EndTime:             "10:00",
		SlotDurationMinutes: 30,
	}
}

func TestCandidateSlots_BasicSequence(t *testing.T) {
	s := scheduleFixture()

	slots, err := s.CandidateSlots(monday)
	require.NoError(t, err)

	assert.Equal(t, []types.TimeString{"08:00", "08:30", "09:00", "09:30"}, slots)
}

func TestCandidateSlots_TrailingPartialSlotDropped(t *testing.T) {
	s := scheduleFixture()
	s.EndTime = "09:45"

	slots, err := s.CandidateSlots(monday)
	require.NoError(t, err)

	// 09:30 заканчивался бы в 10:00, позже закрытия 09:45
	assert.Equal(t, []types.TimeString{"08:00", "08:30", "09:00"}, slots)
}

func TestCandidateSlots_NonWorkingDayIsEmpty(t *testing.T) {
	s := scheduleFixture()

	slots, err := s.CandidateSlots(sunday)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestCandidateSlots_24Hours(t *testing.T) {
	s := scheduleFixture()
	s.Is24Hours = true
	s.SlotDurationMinutes = 60

	slots, err := s.CandidateSlots(monday)
	require.NoError(t, err)

	// 00:00..22:00; слот 23:00 заканчивался бы в 24:00, позже 23:59
	require.Len(t, slots, 23)
	assert.Equal(t, types.TimeString("00:00"), slots[0])
	assert.Equal(t, types.TimeString("22:00"), slots[22])
}

func TestCandidateSlots_Deterministic(t *testing.T) {
	s := scheduleFixture()

	first, err := s.CandidateSlots(monday)
	require.NoError(t, err)
	second, err := s.CandidateSlots(monday)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestCandidateSlots_SpacingAndRange(t *testing.T) {
	s := scheduleFixture()
	s.EndTime = "18:00"
	s.SlotDurationMinutes = 45

	slots, err := s.CandidateSlots(monday)
	require.NoError(t, err)
	require.NotEmpty(t, slots)

	startMin, _ := s.StartTime.Minutes()
	endMin, _ := s.EndTime.Minutes()

	prev := -1
	for _, slot := range slots {
		m, err := slot.Minutes()
		require.NoError(t, err)

		assert.GreaterOrEqual(t, m, startMin)
		assert.LessOrEqual(t, m+s.SlotDurationMinutes, endMin)
		if prev >= 0 {
			assert.Equal(t, s.SlotDurationMinutes, m-prev)
		}
		prev = m
	}
}

func TestCandidateSlots_InvalidDuration(t *testing.T) {
	s := scheduleFixture()
	s.SlotDurationMinutes = 0

	_, err := s.CandidateSlots(monday)
	assert.ErrorIs(t, err, ErrInvalidSchedule)
}

func TestWorkingSchedule_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*WorkingSchedule)
		wantErr bool
	}{
		{name: "valid", mutate: func(s *WorkingSchedule) {}},
		{name: "duration too short", mutate: func(s *WorkingSchedule) { s.SlotDurationMinutes = 1 }, wantErr: true},
		{name: "duration too long", mutate: func(s *WorkingSchedule) { s.SlotDurationMinutes = 500 }, wantErr: true},
		{name: "start after end", mutate: func(s *WorkingSchedule) { s.StartTime = "19:00"; s.EndTime = "08:00" }, wantErr: true},
		{name: "start equals end", mutate: func(s *WorkingSchedule) { s.StartTime = "08:00"; s.EndTime = "08:00" }, wantErr: true},
		{name: "bad start format", mutate: func(s *WorkingSchedule) { s.StartTime = "8am" }, wantErr: true},
		{name: "24h ignores hours", mutate: func(s *WorkingSchedule) { s.Is24Hours = true; s.StartTime = ""; s.EndTime = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := scheduleFixture()
			tt.mutate(s)

			err := s.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidSchedule)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDefaultWorkingSchedule(t *testing.T) {
	s := DefaultWorkingSchedule(1, 2)

	require.NoError(t, s.Validate())
	assert.True(t, s.WorksOn(time.Monday))
	assert.True(t, s.WorksOn(time.Friday))
	assert.False(t, s.WorksOn(time.Saturday))
	assert.False(t, s.WorksOn(time.Sunday))
	assert.Equal(t, types.TimeString("08:00"), s.StartTime)
	assert.Equal(t, types.TimeString("18:00"), s.EndTime)
	assert.Equal(t, 30, s.SlotDurationMinutes)
}
