package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicdesk/reservation-service/internal/domain"
	scheduleRepo "github.com/clinicdesk/reservation-service/internal/infra/storage/schedule"
	clinicClient "github.com/clinicdesk/reservation-service/internal/integrations/clinicservice"
	"github.com/clinicdesk/reservation-service/pkg/types"
)

// Понедельник
var monday = time.Date(2026, time.August, 31, 0, 0, 0, 0, time.UTC)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type fakeAppointmentRepo struct {
	times []types.TimeString
	err   error
}

func (f *fakeAppointmentRepo) ListActiveTimes(ctx context.Context, clinicID, doctorID int64, date time.Time) ([]types.TimeString, error) {
	return f.times, f.err
}

type fakeHoldRepo struct {
	times  []types.TimeString
	gotNow time.Time
	err    error
}

func (f *fakeHoldRepo) ListActiveTimes(ctx context.Context, clinicID, doctorID int64, date, now time.Time) ([]types.TimeString, error) {
	f.gotNow = now
	return f.times, f.err
}

type fakeScheduleRepo struct {
	schedule *domain.WorkingSchedule
	err      error
}

func (f *fakeScheduleRepo) GetByDoctor(ctx context.Context, clinicID, doctorID int64) (*domain.WorkingSchedule, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.schedule, nil
}

type fakeClinicClient struct {
	err error
}

func (f *fakeClinicClient) GetDoctor(ctx context.Context, clinicID, doctorID int64) (*clinicClient.Doctor, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &clinicClient.Doctor{ID: doctorID, ClinicID: clinicID}, nil
}

func twoHourSchedule() *domain.WorkingSchedule {
	return &domain.WorkingSchedule{
		ClinicID:            1,
		DoctorID:            2,
		WorkingDays:         []time.Weekday{time.Monday},
		StartTime:           "08:00",
		EndTime:             "10:00",
		SlotDurationMinutes: 30,
	}
}

func newTestUseCase(appts *fakeAppointmentRepo, holds *fakeHoldRepo, schedules *fakeScheduleRepo, clinic *fakeClinicClient) *UseCase {
	uc := NewUseCase(appts, holds, schedules, clinic, nopLogger{})
	uc.timeProvider = fixedTime{now: monday.Add(9 * time.Hour)}
	return uc
}

func TestExecute_SubtractsAppointmentsAndHolds(t *testing.T) {
	uc := newTestUseCase(
		&fakeAppointmentRepo{times: []types.TimeString{"08:30"}},
		&fakeHoldRepo{times: []types.TimeString{"09:00"}},
		&fakeScheduleRepo{schedule: twoHourSchedule()},
		&fakeClinicClient{},
	)

	resp, err := uc.Execute(context.Background(), &Request{ClinicID: 1, DoctorID: 2, Date: monday})
	require.NoError(t, err)

	assert.Equal(t, []types.TimeString{"08:00", "09:30"}, resp.Slots)
}

func TestExecute_PreservesCandidateOrder(t *testing.T) {
	uc := newTestUseCase(
		&fakeAppointmentRepo{times: []types.TimeString{"09:30", "08:00"}},
		&fakeHoldRepo{},
		&fakeScheduleRepo{schedule: twoHourSchedule()},
		&fakeClinicClient{},
	)

	resp, err := uc.Execute(context.Background(), &Request{ClinicID: 1, DoctorID: 2, Date: monday})
	require.NoError(t, err)

	assert.Equal(t, []types.TimeString{"08:30", "09:00"}, resp.Slots)
}

func TestExecute_PassesNowToHoldFilter(t *testing.T) {
	// Истёкшие холды отсекаются по expires_at > now на уровне выборки;
	// usecase обязан передать туда текущее время
	holds := &fakeHoldRepo{}
	uc := newTestUseCase(
		&fakeAppointmentRepo{},
		holds,
		&fakeScheduleRepo{schedule: twoHourSchedule()},
		&fakeClinicClient{},
	)

	_, err := uc.Execute(context.Background(), &Request{ClinicID: 1, DoctorID: 2, Date: monday})
	require.NoError(t, err)

	assert.Equal(t, monday.Add(9*time.Hour), holds.gotNow)
}

func TestExecute_DefaultScheduleWhenNotConfigured(t *testing.T) {
	uc := newTestUseCase(
		&fakeAppointmentRepo{},
		&fakeHoldRepo{},
		&fakeScheduleRepo{err: scheduleRepo.ErrScheduleNotFound},
		&fakeClinicClient{},
	)

	resp, err := uc.Execute(context.Background(), &Request{ClinicID: 1, DoctorID: 2, Date: monday})
	require.NoError(t, err)

	// По умолчанию 08:00-18:00 по 30 минут = 20 слотов
	assert.Len(t, resp.Slots, 20)
	assert.Equal(t, types.TimeString("08:00"), resp.Slots[0])
	assert.Equal(t, types.TimeString("17:30"), resp.Slots[19])
}

func TestExecute_NonWorkingDayIsEmptyNotError(t *testing.T) {
	uc := newTestUseCase(
		&fakeAppointmentRepo{},
		&fakeHoldRepo{},
		&fakeScheduleRepo{schedule: twoHourSchedule()},
		&fakeClinicClient{},
	)

	sunday := monday.AddDate(0, 0, -1)
	resp, err := uc.Execute(context.Background(), &Request{ClinicID: 1, DoctorID: 2, Date: sunday})
	require.NoError(t, err)

	assert.Empty(t, resp.Slots)
}

func TestExecute_DoctorNotFound(t *testing.T) {
	uc := newTestUseCase(
		&fakeAppointmentRepo{},
		&fakeHoldRepo{},
		&fakeScheduleRepo{schedule: twoHourSchedule()},
		&fakeClinicClient{err: clinicClient.ErrDoctorNotFound},
	)

	_, err := uc.Execute(context.Background(), &Request{ClinicID: 1, DoctorID: 2, Date: monday})
	assert.ErrorIs(t, err, ErrDoctorNotFound)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := newTestUseCase(
		&fakeAppointmentRepo{},
		&fakeHoldRepo{},
		&fakeScheduleRepo{schedule: twoHourSchedule()},
		&fakeClinicClient{},
	)

	_, err := uc.Execute(context.Background(), &Request{ClinicID: 0, DoctorID: 2, Date: monday})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{ClinicID: 1, DoctorID: -1, Date: monday})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{ClinicID: 1, DoctorID: 2})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
