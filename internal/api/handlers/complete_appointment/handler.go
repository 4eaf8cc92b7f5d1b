package complete_appointment

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/clinicdesk/reservation-service/internal/api/handlers"
	"github.com/clinicdesk/reservation-service/internal/service/appointments"
)

// AppointmentsService интерфейс сервиса записей
type AppointmentsService interface {
	Complete(ctx context.Context, id int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Error(format string, v ...interface{})
}

// Response модель ответа на завершение записи
type Response struct {
	Success bool `json:"success"`
}

// Handler обработчик завершения записи
// POST /appointments/{id}/complete
type Handler struct {
	service AppointmentsService
	logger  Logger
}

// NewHandler создает новый экземпляр обработчика
func NewHandler(service AppointmentsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle обрабатывает HTTP запрос
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		handlers.RespondBadRequest(w, "id must be a positive integer")
		return
	}

	if err := h.service.Complete(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, appointments.ErrAppointmentNotFound):
			handlers.RespondNotFound(w, "appointment not found")
		case errors.Is(err, appointments.ErrAppointmentNotActive):
			handlers.RespondConflict(w, "appointment is not active")
		case errors.Is(err, appointments.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())
		default:
			h.logger.Error("CompleteAppointment handler: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, Response{Success: true})
}
