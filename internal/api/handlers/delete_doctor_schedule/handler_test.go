package delete_doctor_schedule

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	scheduleRepo "github.com/clinicdesk/reservation-service/internal/infra/storage/schedule"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeScheduleRepo struct {
	err     error
	deleted [][2]int64
}

func (f *fakeScheduleRepo) Delete(ctx context.Context, clinicID, doctorID int64) error {
	if f.err != nil {
		return f.err
	}
	f.deleted = append(f.deleted, [2]int64{clinicID, doctorID})
	return nil
}

func doDelete(h *Handler, path string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/clinics/{clinicId}/doctors/{doctorId}/schedule", h.Handle).Methods(http.MethodDelete)

	req := httptest.NewRequest(http.MethodDelete, path, nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle_DeletesSchedule(t *testing.T) {
	repo := &fakeScheduleRepo{}
	h := NewHandler(repo, nopLogger{})

	rec := doDelete(h, "/clinics/1/doctors/2/schedule")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"success":true`)

	require.Len(t, repo.deleted, 1)
	assert.Equal(t, [2]int64{1, 2}, repo.deleted[0])
}

func TestHandle_ScheduleNotConfigured(t *testing.T) {
	repo := &fakeScheduleRepo{err: scheduleRepo.ErrScheduleNotFound}
	h := NewHandler(repo, nopLogger{})

	rec := doDelete(h, "/clinics/1/doctors/2/schedule")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandle_StorageFailure(t *testing.T) {
	repo := &fakeScheduleRepo{err: errors.New("storage down")}
	h := NewHandler(repo, nopLogger{})

	rec := doDelete(h, "/clinics/1/doctors/2/schedule")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestHandle_ParamValidation(t *testing.T) {
	h := NewHandler(&fakeScheduleRepo{}, nopLogger{})

	rec := doDelete(h, "/clinics/0/doctors/2/schedule")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doDelete(h, "/clinics/1/doctors/abc/schedule")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
