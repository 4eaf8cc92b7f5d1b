package delete_doctor_schedule

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/clinicdesk/reservation-service/internal/api/handlers"
	scheduleRepo "github.com/clinicdesk/reservation-service/internal/infra/storage/schedule"
)

// ScheduleRepository интерфейс репозитория рабочих расписаний
type ScheduleRepository interface {
	Delete(ctx context.Context, clinicID, doctorID int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Response модель ответа на удаление расписания
type Response struct {
	Success bool `json:"success"`
}

// Handler обработчик удаления рабочего расписания доктора
// DELETE /clinics/{clinicId}/doctors/{doctorId}/schedule
//
// После удаления доктор обслуживается по расписанию по умолчанию.
type Handler struct {
	scheduleRepo ScheduleRepository
	logger       Logger
}

// NewHandler создает новый экземпляр обработчика
func NewHandler(scheduleRepo ScheduleRepository, logger Logger) *Handler {
	return &Handler{
		scheduleRepo: scheduleRepo,
		logger:       logger,
	}
}

// Handle обрабатывает HTTP запрос
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	clinicID, err := strconv.ParseInt(vars["clinicId"], 10, 64)
	if err != nil || clinicID <= 0 {
		handlers.RespondBadRequest(w, "clinicId must be a positive integer")
		return
	}

	doctorID, err := strconv.ParseInt(vars["doctorId"], 10, 64)
	if err != nil || doctorID <= 0 {
		handlers.RespondBadRequest(w, "doctorId must be a positive integer")
		return
	}

	if err := h.scheduleRepo.Delete(r.Context(), clinicID, doctorID); err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			handlers.RespondNotFound(w, "schedule not configured")
			return
		}
		h.logger.Error("DeleteDoctorSchedule handler: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("DeleteDoctorSchedule: schedule removed for clinic=%d, doctor=%d", clinicID, doctorID)

	handlers.RespondJSON(w, http.StatusOK, Response{Success: true})
}
