package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHoldKey_StringRoundTrip(t *testing.T) {
	key := HoldKey{
		ClinicID: 7,
		DoctorID: 42,
		Date:     time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC),
		Time:     "09:30",
	}

	s := key.String()
	assert.Equal(t, "7:42:2026-09-01:09:30", s)

	parsed, err := ParseHoldKey(s)
	require.NoError(t, err)
	assert.Equal(t, key.ClinicID, parsed.ClinicID)
	assert.Equal(t, key.DoctorID, parsed.DoctorID)
	assert.True(t, key.Date.Equal(parsed.Date))
	assert.Equal(t, key.Time, parsed.Time)
}

func TestHoldKey_Deterministic(t *testing.T) {
	// Один и тот же слот всегда даёт один и тот же ключ
	date := time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)
	a := HoldKey{ClinicID: 1, DoctorID: 2, Date: date, Time: "10:00"}
	b := HoldKey{ClinicID: 1, DoctorID: 2, Date: date, Time: "10:00"}

	assert.Equal(t, a.String(), b.String())
}

func TestParseHoldKey_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "empty", input: ""},
		{name: "too few parts", input: "1:2:2026-09-01"},
		{name: "bad clinic id", input: "x:2:2026-09-01:09:30"},
		{name: "zero clinic id", input: "0:2:2026-09-01:09:30"},
		{name: "bad doctor id", input: "1:y:2026-09-01:09:30"},
		{name: "bad date", input: "1:2:01.09.2026:09:30"},
		{name: "bad time", input: "1:2:2026-09-01:9am"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseHoldKey(tt.input)
			assert.ErrorIs(t, err, ErrInvalidHoldKey)
		})
	}
}

func TestTemporaryHold_IsExpired(t *testing.T) {
	now := time.Date(2026, time.September, 1, 12, 0, 0, 0, time.UTC)

	h := &TemporaryHold{ExpiresAt: now.Add(time.Minute)}
	assert.False(t, h.IsExpired(now))

	h.ExpiresAt = now
	assert.True(t, h.IsExpired(now), "expiry moment itself counts as expired")

	h.ExpiresAt = now.Add(-time.Second)
	assert.True(t, h.IsExpired(now))
}

func TestValidHoldReleaseStatus(t *testing.T) {
	assert.True(t, ValidHoldReleaseStatus(HoldStatusCancelled))
	assert.True(t, ValidHoldReleaseStatus(HoldStatusExpired))
	assert.False(t, ValidHoldReleaseStatus(HoldStatusBlocked))
	assert.False(t, ValidHoldReleaseStatus(HoldStatusConfirmed))
	assert.False(t, ValidHoldReleaseStatus("deleted"))
}

func TestAppointment_SlotKey(t *testing.T) {
	appt := &Appointment{
		ClinicID:        7,
		DoctorID:        42,
		AppointmentDate: time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC),
		StartTime:       "09:30",
	}

	// Ключ занимаемого слота совпадает с ключом холда на тот же слот
	assert.Equal(t, "7:42:2026-09-01:09:30", appt.SlotKey().String())
}

func TestAppointment_Lifecycle(t *testing.T) {
	appt := &Appointment{Status: StatusScheduled}
	assert.True(t, appt.IsActive())
	assert.True(t, appt.CanBeCancelled())
	assert.True(t, appt.CanBeRescheduled())
	assert.True(t, appt.CanBeCompleted())

	appt.Status = StatusRescheduled
	assert.True(t, appt.IsActive())

	appt.Status = StatusCompleted
	assert.False(t, appt.IsActive())
	assert.False(t, appt.CanBeCancelled())

	appt.Status = StatusCancelled
	assert.False(t, appt.CanBeRescheduled())
}
