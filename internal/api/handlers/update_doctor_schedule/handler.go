package update_doctor_schedule

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/clinicdesk/reservation-service/internal/api/handlers"
	"github.com/clinicdesk/reservation-service/internal/domain"
	clinicClient "github.com/clinicdesk/reservation-service/internal/integrations/clinicservice"
	"github.com/clinicdesk/reservation-service/pkg/types"
)

// ScheduleRepository интерфейс репозитория рабочих расписаний
type ScheduleRepository interface {
	Upsert(ctx context.Context, s *domain.WorkingSchedule) (*domain.WorkingSchedule, error)
}

// ClinicServiceClient интерфейс клиента справочника клиник
type ClinicServiceClient interface {
	GetClinic(ctx context.Context, clinicID int64) (*clinicClient.Clinic, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Request модель запроса на обновление расписания
type Request struct {
	WorkingDays          []int  `json:"workingDays"`
	StartTime            string `json:"startTime"`
	EndTime              string `json:"endTime"`
	Is24Hours            bool   `json:"is24Hours"`
	SlotDurationMinutes  int    `json:"slotDurationMinutes"`
	MaxDailyAppointments *int   `json:"maxDailyAppointments,omitempty"`
}

// Response модель ответа на обновление расписания
type Response struct {
	Success bool `json:"success"`
}

// Handler обработчик создания или обновления рабочего расписания доктора
// PUT /clinics/{clinicId}/doctors/{doctorId}/schedule
//
// Клиника проверяется в справочнике до записи: расписание для
// несуществующей клиники завести нельзя.
type Handler struct {
	scheduleRepo ScheduleRepository
	clinicClient ClinicServiceClient
	logger       Logger
}

// NewHandler создает новый экземпляр обработчика
func NewHandler(scheduleRepo ScheduleRepository, clinic ClinicServiceClient, logger Logger) *Handler {
	return &Handler{
		scheduleRepo: scheduleRepo,
		clinicClient: clinic,
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

	if _, err := h.clinicClient.GetClinic(r.Context(), clinicID); err != nil {
		if errors.Is(err, clinicClient.ErrClinicNotFound) {
			handlers.RespondNotFound(w, "clinic not found")
			return
		}
		h.logger.Error("UpdateDoctorSchedule handler: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	var req Request
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	days := make([]time.Weekday, len(req.WorkingDays))
	for i, d := range req.WorkingDays {
		days[i] = time.Weekday(d)
	}

	schedule := &domain.WorkingSchedule{
		ClinicID:             clinicID,
		DoctorID:             doctorID,
		WorkingDays:          days,
		StartTime:            types.TimeString(req.StartTime),
		EndTime:              types.TimeString(req.EndTime),
		Is24Hours:            req.Is24Hours,
		SlotDurationMinutes:  req.SlotDurationMinutes,
		MaxDailyAppointments: req.MaxDailyAppointments,
	}

	if err := schedule.Validate(); err != nil {
		if errors.Is(err, domain.ErrInvalidSchedule) {
			handlers.RespondBadRequest(w, err.Error())
			return
		}
		h.logger.Error("UpdateDoctorSchedule handler: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	if _, err := h.scheduleRepo.Upsert(r.Context(), schedule); err != nil {
		h.logger.Error("UpdateDoctorSchedule handler: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("UpdateDoctorSchedule: schedule updated for clinic=%d, doctor=%d", clinicID, doctorID)

	handlers.RespondJSON(w, http.StatusOK, Response{Success: true})
}
