package get_doctor_appointments

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicdesk/reservation-service/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Error(string, ...interface{}) {}

type fakeService struct {
	appts     []*domain.Appointment
	err       error
	gotFilter domain.DoctorAppointmentsFilter
}

func (f *fakeService) GetDoctorAppointments(ctx context.Context, filter domain.DoctorAppointmentsFilter) ([]*domain.Appointment, error) {
	f.gotFilter = filter
	if f.err != nil {
		return nil, f.err
	}
	return f.appts, nil
}

func doGet(h *Handler, path string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/clinics/{clinicId}/doctors/{doctorId}/appointments", h.Handle).Methods(http.MethodGet)

	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle_ReturnsAppointments(t *testing.T) {
	fake := &fakeService{
		appts: []*domain.Appointment{
			{
				ID:              101,
				ClinicID:        1,
				DoctorID:        2,
				PatientName:     "Anna",
				AppointmentDate: time.Date(2026, time.August, 31, 0, 0, 0, 0, time.UTC),
				StartTime:       "09:00",
				DurationMinutes: 30,
				Status:          domain.StatusScheduled,
			},
		},
	}
	h := NewHandler(fake, nopLogger{})

	rec := doGet(h, "/clinics/1/doctors/2/appointments")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(1), resp.ClinicID)
	assert.Equal(t, int64(2), resp.DoctorID)
	require.Len(t, resp.Appointments, 1)
	assert.Equal(t, int64(101), resp.Appointments[0].ID)
	assert.Equal(t, "2026-08-31", resp.Appointments[0].Date)
	assert.Equal(t, "09:00", resp.Appointments[0].Time)
	assert.Equal(t, "scheduled", resp.Appointments[0].Status)

	assert.Equal(t, int64(1), fake.gotFilter.ClinicID)
	assert.Equal(t, int64(2), fake.gotFilter.DoctorID)
	assert.Nil(t, fake.gotFilter.StartDate)
	assert.Nil(t, fake.gotFilter.Status)
	assert.False(t, fake.gotFilter.IncludeInactive)
}

func TestHandle_PassesFilterParams(t *testing.T) {
	fake := &fakeService{}
	h := NewHandler(fake, nopLogger{})

	rec := doGet(h, "/clinics/1/doctors/2/appointments"+
		"?startDate=2026-08-31&endDate=2026-09-06&status=cancelled&includeInactive=true")
	require.Equal(t, http.StatusOK, rec.Code)

	require.NotNil(t, fake.gotFilter.StartDate)
	assert.True(t, fake.gotFilter.StartDate.Equal(time.Date(2026, time.August, 31, 0, 0, 0, 0, time.UTC)))
	require.NotNil(t, fake.gotFilter.EndDate)
	assert.True(t, fake.gotFilter.EndDate.Equal(time.Date(2026, time.September, 6, 0, 0, 0, 0, time.UTC)))
	require.NotNil(t, fake.gotFilter.Status)
	assert.Equal(t, domain.StatusCancelled, *fake.gotFilter.Status)
	assert.True(t, fake.gotFilter.IncludeInactive)
}

func TestHandle_EmptyListIsJSONArray(t *testing.T) {
	h := NewHandler(&fakeService{}, nopLogger{})

	rec := doGet(h, "/clinics/1/doctors/2/appointments")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"appointments":[]`)
}

func TestHandle_ServiceFailure(t *testing.T) {
	fake := &fakeService{err: errors.New("storage down")}
	h := NewHandler(fake, nopLogger{})

	rec := doGet(h, "/clinics/1/doctors/2/appointments")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestHandle_ParamValidation(t *testing.T) {
	h := NewHandler(&fakeService{}, nopLogger{})

	tests := []struct {
		name string
		path string
	}{
		{name: "zero clinic", path: "/clinics/0/doctors/2/appointments"},
		{name: "non-numeric doctor", path: "/clinics/1/doctors/abc/appointments"},
		{name: "bad start date", path: "/clinics/1/doctors/2/appointments?startDate=31.08.2026"},
		{name: "bad end date", path: "/clinics/1/doctors/2/appointments?endDate=tomorrow"},
		{name: "end before start", path: "/clinics/1/doctors/2/appointments?startDate=2026-09-06&endDate=2026-08-31"},
		{name: "unknown status", path: "/clinics/1/doctors/2/appointments?status=pending"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doGet(h, tt.path)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}
