package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/clinicdesk/reservation-service/internal/api/handlers"
	"github.com/clinicdesk/reservation-service/internal/domain"
	uc "github.com/clinicdesk/reservation-service/internal/usecase/get_available_slots"
)

// Handler обработчик получения доступных слотов доктора на дату
// GET /appointments?clinicId=1&doctorId=2&date=2026-09-01
type Handler struct {
	useCase UseCase
	logger  Logger
}

// NewHandler создает новый экземпляр обработчика
func NewHandler(useCase UseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle обрабатывает HTTP запрос
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	clinicID, err := strconv.ParseInt(r.URL.Query().Get("clinicId"), 10, 64)
	if err != nil || clinicID <= 0 {
		handlers.RespondBadRequest(w, "clinicId must be a positive integer")
		return
	}

	doctorID, err := strconv.ParseInt(r.URL.Query().Get("doctorId"), 10, 64)
	if err != nil || doctorID <= 0 {
		handlers.RespondBadRequest(w, "doctorId must be a positive integer")
		return
	}

	date, err := time.Parse(domain.DateFormat, r.URL.Query().Get("date"))
	if err != nil {
		handlers.RespondBadRequest(w, "date must be in YYYY-MM-DD format")
		return
	}

	resp, err := h.useCase.Execute(r.Context(), &uc.Request{
		ClinicID: clinicID,
		DoctorID: doctorID,
		Date:     date,
	})

	if err != nil {
		switch {
		case errors.Is(err, uc.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())
		case errors.Is(err, uc.ErrDoctorNotFound):
			handlers.RespondNotFound(w, "doctor not found")
		default:
			h.logger.Error("GetAvailableSlots handler: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	slots := make([]string, len(resp.Slots))
	for i, s := range resp.Slots {
		slots[i] = string(s)
	}

	handlers.RespondJSON(w, http.StatusOK, Response{
		ClinicID:       resp.ClinicID,
		DoctorID:       resp.DoctorID,
		Date:           resp.Date.Format(domain.DateFormat),
		AvailableSlots: slots,
	})
}
