package create_hold

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicdesk/reservation-service/internal/domain"
	holdRepo "github.com/clinicdesk/reservation-service/internal/infra/storage/hold"
	scheduleRepo "github.com/clinicdesk/reservation-service/internal/infra/storage/schedule"
	clinicClient "github.com/clinicdesk/reservation-service/internal/integrations/clinicservice"
	"github.com/clinicdesk/reservation-service/pkg/ptr"
)

// Понедельник
var monday = time.Date(2026, time.August, 31, 0, 0, 0, 0, time.UTC)

var testNow = monday.Add(9 * time.Hour)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type passthroughTx struct{}

func (passthroughTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// memHoldStore имитирует уникальный ключ слота: Create атомарен,
// повторная вставка живого холда даёт ErrHoldExists
type memHoldStore struct {
	mu    sync.Mutex
	holds map[string]*domain.TemporaryHold
	next  int64
}

func newMemHoldStore() *memHoldStore {
	return &memHoldStore{holds: make(map[string]*domain.TemporaryHold)}
}

func (s *memHoldStore) Create(ctx context.Context, h *domain.TemporaryHold) (*domain.TemporaryHold, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := h.Key().String()
	if _, exists := s.holds[key]; exists {
		return nil, holdRepo.ErrHoldExists
	}

	s.next++
	h.ID = s.next
	s.holds[key] = h
	return h, nil
}

func (s *memHoldStore) ReclaimStale(ctx context.Context, key domain.HoldKey, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	h, ok := s.holds[key.String()]
	if !ok {
		return nil
	}
	if !h.IsBlocked() || h.IsExpired(now) {
		delete(s.holds, key.String())
	}
	return nil
}

type fakeAppointmentRepo struct {
	slotCount  int
	dailyCount int
}

func (f *fakeAppointmentRepo) CountActiveBySlot(ctx context.Context, key domain.HoldKey) (int, error) {
	return f.slotCount, nil
}

func (f *fakeAppointmentRepo) CountActiveByDoctorDate(ctx context.Context, clinicID, doctorID int64, date time.Time) (int, error) {
	return f.dailyCount, nil
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

func mondaySchedule() *domain.WorkingSchedule {
	return &domain.WorkingSchedule{
		ClinicID:            1,
		DoctorID:            2,
		WorkingDays:         []time.Weekday{time.Monday},
		StartTime:           "08:00",
		EndTime:             "12:00",
		SlotDurationMinutes: 30,
	}
}

func newTestUseCase(store *memHoldStore, appts *fakeAppointmentRepo, schedules *fakeScheduleRepo, clinic *fakeClinicClient) *UseCase {
	uc := NewUseCase(store, appts, schedules, clinic, passthroughTx{}, 5, nil, nopLogger{})
	uc.timeProvider = fixedTime{now: testNow}
	return uc
}

func validRequest() *Request {
	return &Request{ClinicID: 1, DoctorID: 2, Date: monday, Time: "09:00"}
}

func TestExecute_CreatesHold(t *testing.T) {
	store := newMemHoldStore()
	uc := newTestUseCase(store, &fakeAppointmentRepo{}, &fakeScheduleRepo{schedule: mondaySchedule()}, &fakeClinicClient{})

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, "1:2:2026-08-31:09:00", resp.BlockID)
	assert.Equal(t, testNow.Add(5*time.Minute), resp.ExpiresAt)

	h := store.holds[resp.BlockID]
	require.NotNil(t, h)
	assert.Equal(t, domain.HoldStatusBlocked, h.Status)
}

func TestExecute_CustomLeaseMinutes(t *testing.T) {
	store := newMemHoldStore()
	uc := newTestUseCase(store, &fakeAppointmentRepo{}, &fakeScheduleRepo{schedule: mondaySchedule()}, &fakeClinicClient{})

	req := validRequest()
	req.LeaseMinutes = 10

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, testNow.Add(10*time.Minute), resp.ExpiresAt)
}

func TestExecute_SecondHoldOnSameSlotFails(t *testing.T) {
	store := newMemHoldStore()
	uc := newTestUseCase(store, &fakeAppointmentRepo{}, &fakeScheduleRepo{schedule: mondaySchedule()}, &fakeClinicClient{})

	_, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotUnavailable)
}

func TestExecute_ConcurrentHoldsExactlyOneWinner(t *testing.T) {
	store := newMemHoldStore()
	uc := newTestUseCase(store, &fakeAppointmentRepo{}, &fakeScheduleRepo{schedule: mondaySchedule()}, &fakeClinicClient{})

	const attempts = 16
	var wg sync.WaitGroup
	results := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = uc.Execute(context.Background(), validRequest())
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range results {
		if err == nil {
			winners++
		} else {
			assert.ErrorIs(t, err, ErrSlotUnavailable)
		}
	}
	assert.Equal(t, 1, winners)
	assert.Len(t, store.holds, 1)
}

func TestExecute_ExpiredHoldIsReclaimed(t *testing.T) {
	store := newMemHoldStore()
	uc := newTestUseCase(store, &fakeAppointmentRepo{}, &fakeScheduleRepo{schedule: mondaySchedule()}, &fakeClinicClient{})

	// Истёкший холд занимает уникальный ключ, но не слот
	stale := &domain.TemporaryHold{
		ClinicID:  1,
		DoctorID:  2,
		SlotDate:  monday,
		SlotTime:  "09:00",
		Status:    domain.HoldStatusBlocked,
		ExpiresAt: testNow.Add(-time.Minute),
	}
	_, err := store.Create(context.Background(), stale)
	require.NoError(t, err)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, testNow.Add(5*time.Minute), resp.ExpiresAt)
}

func TestExecute_ConfirmedLeftoverDoesNotBlockSlot(t *testing.T) {
	store := newMemHoldStore()
	uc := newTestUseCase(store, &fakeAppointmentRepo{}, &fakeScheduleRepo{schedule: mondaySchedule()}, &fakeClinicClient{})

	leftover := &domain.TemporaryHold{
		ClinicID:  1,
		DoctorID:  2,
		SlotDate:  monday,
		SlotTime:  "09:00",
		Status:    domain.HoldStatusConfirmed,
		ExpiresAt: testNow.Add(time.Hour),
	}
	_, err := store.Create(context.Background(), leftover)
	require.NoError(t, err)

	// Запись на слот отменена, подтверждённый хвост холда не должен
	// блокировать слот навсегда
	_, err = uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
}

func TestExecute_SlotTakenByAppointment(t *testing.T) {
	store := newMemHoldStore()
	uc := newTestUseCase(store, &fakeAppointmentRepo{slotCount: 1}, &fakeScheduleRepo{schedule: mondaySchedule()}, &fakeClinicClient{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotUnavailable)
}

func TestExecute_TimeOutsideSchedule(t *testing.T) {
	store := newMemHoldStore()
	uc := newTestUseCase(store, &fakeAppointmentRepo{}, &fakeScheduleRepo{schedule: mondaySchedule()}, &fakeClinicClient{})

	req := validRequest()
	req.Time = "13:00" // расписание заканчивается в 12:00

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidTimeSlot)

	req.Time = "09:15" // не кратно сетке слотов
	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidTimeSlot)
}

func TestExecute_NonWorkingDay(t *testing.T) {
	store := newMemHoldStore()
	uc := newTestUseCase(store, &fakeAppointmentRepo{}, &fakeScheduleRepo{schedule: mondaySchedule()}, &fakeClinicClient{})

	req := validRequest()
	req.Date = monday.AddDate(0, 0, 1) // вторник, не рабочий день

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidTimeSlot)
}

func TestExecute_DailyLimitReached(t *testing.T) {
	schedule := mondaySchedule()
	schedule.MaxDailyAppointments = ptr.Ptr(3)

	store := newMemHoldStore()
	uc := newTestUseCase(store, &fakeAppointmentRepo{dailyCount: 3}, &fakeScheduleRepo{schedule: schedule}, &fakeClinicClient{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrDailyLimitReached)
}

func TestExecute_DoctorNotFound(t *testing.T) {
	store := newMemHoldStore()
	uc := newTestUseCase(store, &fakeAppointmentRepo{}, &fakeScheduleRepo{schedule: mondaySchedule()}, &fakeClinicClient{err: clinicClient.ErrDoctorNotFound})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrDoctorNotFound)
}

func TestExecute_DefaultScheduleWhenNotConfigured(t *testing.T) {
	store := newMemHoldStore()
	uc := newTestUseCase(store, &fakeAppointmentRepo{}, &fakeScheduleRepo{err: scheduleRepo.ErrScheduleNotFound}, &fakeClinicClient{})

	_, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
}

func TestExecute_InvalidInput(t *testing.T) {
	store := newMemHoldStore()
	uc := newTestUseCase(store, &fakeAppointmentRepo{}, &fakeScheduleRepo{schedule: mondaySchedule()}, &fakeClinicClient{})

	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{name: "zero clinic", mutate: func(r *Request) { r.ClinicID = 0 }},
		{name: "negative doctor", mutate: func(r *Request) { r.DoctorID = -5 }},
		{name: "zero date", mutate: func(r *Request) { r.Date = time.Time{} }},
		{name: "bad time", mutate: func(r *Request) { r.Time = "9am" }},
		{name: "negative lease", mutate: func(r *Request) { r.LeaseMinutes = -1 }},
		{name: "lease too long", mutate: func(r *Request) { r.LeaseMinutes = 120 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
