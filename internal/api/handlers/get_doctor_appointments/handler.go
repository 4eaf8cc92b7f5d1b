package get_doctor_appointments

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/clinicdesk/reservation-service/internal/api/handlers"
	"github.com/clinicdesk/reservation-service/internal/domain"
	"github.com/clinicdesk/reservation-service/internal/service/appointments"
)

// AppointmentsService интерфейс сервиса записей
type AppointmentsService interface {
	GetDoctorAppointments(ctx context.Context, filter domain.DoctorAppointmentsFilter) ([]*domain.Appointment, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Error(format string, v ...interface{})
}

// AppointmentItem модель записи в списке
type AppointmentItem struct {
	ID              int64  `json:"id"`
	PatientName     string `json:"patientName"`
	Date            string `json:"date"`
	Time            string `json:"time"`
	DurationMinutes int    `json:"durationMinutes"`
	Status          string `json:"status"`
}

// Response модель ответа со списком записей доктора
type Response struct {
	ClinicID     int64             `json:"clinicId"`
	DoctorID     int64             `json:"doctorId"`
	Appointments []AppointmentItem `json:"appointments"`
}

// Handler обработчик получения списка записей доктора
// GET /clinics/{clinicId}/doctors/{doctorId}/appointments
//
// Опциональные query-параметры: startDate и endDate (YYYY-MM-DD) задают
// период, status фильтрует по статусу, includeInactive=true добавляет
// завершённые и отменённые записи.
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

	filter := domain.DoctorAppointmentsFilter{
		ClinicID: clinicID,
		DoctorID: doctorID,
	}

	query := r.URL.Query()

	if v := query.Get("startDate"); v != "" {
		d, err := time.Parse(domain.DateFormat, v)
		if err != nil {
			handlers.RespondBadRequest(w, "startDate must be in YYYY-MM-DD format")
			return
		}
		filter.StartDate = &d
	}

	if v := query.Get("endDate"); v != "" {
		d, err := time.Parse(domain.DateFormat, v)
		if err != nil {
			handlers.RespondBadRequest(w, "endDate must be in YYYY-MM-DD format")
			return
		}
		filter.EndDate = &d
	}

	if filter.StartDate != nil && filter.EndDate != nil && filter.EndDate.Before(*filter.StartDate) {
		handlers.RespondBadRequest(w, "endDate must not be before startDate")
		return
	}

	if v := query.Get("status"); v != "" {
		status := domain.AppointmentStatus(v)
		switch status {
		case domain.StatusScheduled, domain.StatusRescheduled, domain.StatusCompleted, domain.StatusCancelled:
		default:
			handlers.RespondBadRequest(w, "unknown status")
			return
		}
		filter.Status = &status
	}

	filter.IncludeInactive = query.Get("includeInactive") == "true"

	appts, err := h.service.GetDoctorAppointments(r.Context(), filter)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())
		default:
			h.logger.Error("GetDoctorAppointments handler: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	items := make([]AppointmentItem, 0, len(appts))
	for _, a := range appts {
		items = append(items, AppointmentItem{
			ID:              a.ID,
			PatientName:     a.PatientName,
			Date:            a.AppointmentDate.Format(domain.DateFormat),
			Time:            string(a.StartTime),
			DurationMinutes: a.DurationMinutes,
			Status:          string(a.Status),
		})
	}

	handlers.RespondJSON(w, http.StatusOK, Response{
		ClinicID:     clinicID,
		DoctorID:     doctorID,
		Appointments: items,
	})
}
