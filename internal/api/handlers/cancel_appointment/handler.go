package cancel_appointment

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
	Cancel(ctx context.Context, id int64, reason string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Error(format string, v ...interface{})
}

// Request модель запроса на отмену записи
type Request struct {
	Reason string `json:"reason,omitempty"`
}

// Response модель ответа на отмену записи
type Response struct {
	Success bool `json:"success"`
}

// Handler обработчик отмены записи
// POST /appointments/{id}/cancel
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

	var req Request
	if r.ContentLength > 0 {
		if err := handlers.DecodeJSON(r, &req); err != nil {
			handlers.RespondBadRequest(w, err.Error())
			return
		}
	}

	if err := h.service.Cancel(r.Context(), id, req.Reason); err != nil {
		switch {
		case errors.Is(err, appointments.ErrAppointmentNotFound):
			handlers.RespondNotFound(w, "appointment not found")
		case errors.Is(err, appointments.ErrAppointmentNotActive):
			handlers.RespondConflict(w, "appointment is not active")
		case errors.Is(err, appointments.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())
		default:
			h.logger.Error("CancelAppointment handler: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, Response{Success: true})
}
