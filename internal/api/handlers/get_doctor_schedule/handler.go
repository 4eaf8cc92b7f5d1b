package get_doctor_schedule

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/clinicdesk/reservation-service/internal/api/handlers"
	"github.com/clinicdesk/reservation-service/internal/domain"
	scheduleRepo "github.com/clinicdesk/reservation-service/internal/infra/storage/schedule"
)

// ScheduleRepository интерфейс репозитория рабочих расписаний
type ScheduleRepository interface {
	GetByDoctor(ctx context.Context, clinicID, doctorID int64) (*domain.WorkingSchedule, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Error(format string, v ...interface{})
}

// Response модель ответа с рабочим расписанием доктора
type Response struct {
	ClinicID             int64  `json:"clinicId"`
	DoctorID             int64  `json:"doctorId"`
	WorkingDays          []int  `json:"workingDays"`
	StartTime            string `json:"startTime"`
	EndTime              string `json:"endTime"`
	Is24Hours            bool   `json:"is24Hours"`
	SlotDurationMinutes  int    `json:"slotDurationMinutes"`
	MaxDailyAppointments *int   `json:"maxDailyAppointments,omitempty"`
	IsDefault            bool   `json:"isDefault"`
}

// Handler обработчик получения рабочего расписания доктора
// GET /clinics/{clinicId}/doctors/{doctorId}/schedule
//
// Если расписание не настроено, возвращает расписание по умолчанию
// с флагом isDefault — так же его трактует генерация слотов.
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

	isDefault := false
	schedule, err := h.scheduleRepo.GetByDoctor(r.Context(), clinicID, doctorID)
	if err != nil {
		if !errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			h.logger.Error("GetDoctorSchedule handler: %v", err)
			handlers.RespondInternalError(w)
			return
		}
		schedule = domain.DefaultWorkingSchedule(clinicID, doctorID)
		isDefault = true
	}

	days := make([]int, len(schedule.WorkingDays))
	for i, d := range schedule.WorkingDays {
		days[i] = int(d)
	}

	handlers.RespondJSON(w, http.StatusOK, Response{
		ClinicID:             schedule.ClinicID,
		DoctorID:             schedule.DoctorID,
		WorkingDays:          days,
		StartTime:            string(schedule.StartTime),
		EndTime:              string(schedule.EndTime),
		Is24Hours:            schedule.Is24Hours,
		SlotDurationMinutes:  schedule.SlotDurationMinutes,
		MaxDailyAppointments: schedule.MaxDailyAppointments,
		IsDefault:            isDefault,
	})
}
