package appointments

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicdesk/reservation-service/internal/domain"
	apptRepo "github.com/clinicdesk/reservation-service/internal/infra/storage/appointment"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeAppointmentRepo struct {
	appt      *domain.Appointment
	appts     []*domain.Appointment
	gotFilter domain.DoctorAppointmentsFilter

	cancelled    []int64
	statusSet    map[int64]domain.AppointmentStatus
	getErr       error
	listErr      error
	cancelReason string
}

func (f *fakeAppointmentRepo) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.appt, nil
}

func (f *fakeAppointmentRepo) GetByDoctorWithFilter(ctx context.Context, filter domain.DoctorAppointmentsFilter) ([]*domain.Appointment, error) {
	f.gotFilter = filter
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.appts, nil
}

func (f *fakeAppointmentRepo) UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error {
	if f.statusSet == nil {
		f.statusSet = make(map[int64]domain.AppointmentStatus)
	}
	f.statusSet[id] = status
	return nil
}

func (f *fakeAppointmentRepo) Cancel(ctx context.Context, id int64, reason string) error {
	f.cancelled = append(f.cancelled, id)
	f.cancelReason = reason
	return nil
}

func scheduledAppointment() *domain.Appointment {
	return &domain.Appointment{
		ID:              101,
		ClinicID:        1,
		DoctorID:        2,
		PatientName:     "Anna",
		AppointmentDate: time.Date(2026, time.August, 31, 0, 0, 0, 0, time.UTC),
		StartTime:       "09:00",
		DurationMinutes: 30,
		Status:          domain.StatusScheduled,
	}
}

func TestGetByID_NotFound(t *testing.T) {
	svc := NewService(&fakeAppointmentRepo{getErr: apptRepo.ErrAppointmentNotFound}, nopLogger{})

	_, err := svc.GetByID(context.Background(), 101)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestGetByID_InvalidID(t *testing.T) {
	svc := NewService(&fakeAppointmentRepo{}, nopLogger{})

	_, err := svc.GetByID(context.Background(), 0)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetDoctorAppointments_PassesFilter(t *testing.T) {
	repo := &fakeAppointmentRepo{appts: []*domain.Appointment{scheduledAppointment()}}
	svc := NewService(repo, nopLogger{})

	start := time.Date(2026, time.August, 31, 0, 0, 0, 0, time.UTC)
	status := domain.StatusScheduled
	filter := domain.DoctorAppointmentsFilter{
		ClinicID:  1,
		DoctorID:  2,
		StartDate: &start,
		Status:    &status,
	}

	appts, err := svc.GetDoctorAppointments(context.Background(), filter)
	require.NoError(t, err)
	require.Len(t, appts, 1)
	assert.Equal(t, int64(101), appts[0].ID)

	assert.Equal(t, filter, repo.gotFilter)
}

func TestGetDoctorAppointments_InvalidFilter(t *testing.T) {
	svc := NewService(&fakeAppointmentRepo{}, nopLogger{})

	_, err := svc.GetDoctorAppointments(context.Background(), domain.DoctorAppointmentsFilter{ClinicID: 0, DoctorID: 2})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.GetDoctorAppointments(context.Background(), domain.DoctorAppointmentsFilter{ClinicID: 1, DoctorID: -1})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCancel_ActiveAppointment(t *testing.T) {
	repo := &fakeAppointmentRepo{appt: scheduledAppointment()}
	svc := NewService(repo, nopLogger{})

	err := svc.Cancel(context.Background(), 101, "patient request")
	require.NoError(t, err)

	assert.Equal(t, []int64{101}, repo.cancelled)
	assert.Equal(t, "patient request", repo.cancelReason)
}

func TestCancel_InactiveAppointment(t *testing.T) {
	appt := scheduledAppointment()
	appt.Status = domain.StatusCancelled
	repo := &fakeAppointmentRepo{appt: appt}
	svc := NewService(repo, nopLogger{})

	err := svc.Cancel(context.Background(), 101, "again")
	assert.ErrorIs(t, err, ErrAppointmentNotActive)
	assert.Empty(t, repo.cancelled)
}

func TestCancel_ReasonTooLong(t *testing.T) {
	svc := NewService(&fakeAppointmentRepo{appt: scheduledAppointment()}, nopLogger{})

	err := svc.Cancel(context.Background(), 101, strings.Repeat("a", domain.MaxCancellationReasonLength+1))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestComplete_ActiveAppointment(t *testing.T) {
	repo := &fakeAppointmentRepo{appt: scheduledAppointment()}
	svc := NewService(repo, nopLogger{})

	err := svc.Complete(context.Background(), 101)
	require.NoError(t, err)

	assert.Equal(t, domain.StatusCompleted, repo.statusSet[101])
}

func TestComplete_InactiveAppointment(t *testing.T) {
	appt := scheduledAppointment()
	appt.Status = domain.StatusCompleted
	repo := &fakeAppointmentRepo{appt: appt}
	svc := NewService(repo, nopLogger{})

	err := svc.Complete(context.Background(), 101)
	assert.ErrorIs(t, err, ErrAppointmentNotActive)
	assert.Empty(t, repo.statusSet)
}
