package get_appointment

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/clinicdesk/reservation-service/internal/api/handlers"
	"github.com/clinicdesk/reservation-service/internal/domain"
	"github.com/clinicdesk/reservation-service/internal/service/appointments"
)

// AppointmentsService интерфейс сервиса записей
type AppointmentsService interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Error(format string, v ...interface{})
}

// Response модель ответа с записью
type Response struct {
	ID              int64   `json:"id"`
	ClinicID        int64   `json:"clinicId"`
	DoctorID        int64   `json:"doctorId"`
	PatientName     string  `json:"patientName"`
	Date            string  `json:"date"`
	Time            string  `json:"time"`
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	ReminderID      *int64  `json:"reminderId,omitempty"`
	CancelReason    *string `json:"cancellationReason,omitempty"`
}

// Handler обработчик получения записи по ID
// GET /appointments/{id}
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

	appt, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrAppointmentNotFound):
			handlers.RespondNotFound(w, "appointment not found")
		case errors.Is(err, appointments.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())
		default:
			h.logger.Error("GetAppointment handler: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, Response{
		ID:              appt.ID,
		ClinicID:        appt.ClinicID,
		DoctorID:        appt.DoctorID,
		PatientName:     appt.PatientName,
		Date:            appt.AppointmentDate.Format(domain.DateFormat),
		Time:            string(appt.StartTime),
		DurationMinutes: appt.DurationMinutes,
		Status:          string(appt.Status),
		ReminderID:      appt.ReminderID,
		CancelReason:    appt.CancellationReason,
	})
}
