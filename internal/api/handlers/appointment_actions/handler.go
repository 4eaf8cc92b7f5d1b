package appointment_actions

import (
	"errors"
	"net/http"
	"time"

	"github.com/clinicdesk/reservation-service/internal/api/handlers"
	"github.com/clinicdesk/reservation-service/internal/domain"
	"github.com/clinicdesk/reservation-service/internal/usecase/book_appointment"
	"github.com/clinicdesk/reservation-service/internal/usecase/create_hold"
	"github.com/clinicdesk/reservation-service/internal/usecase/release_hold"
	"github.com/clinicdesk/reservation-service/internal/usecase/reschedule_appointment"
	"github.com/clinicdesk/reservation-service/pkg/types"
)

// Handler обработчик действий над слотами и записями
// POST /appointments с диспетчеризацией по полю action:
//
//	block      — временно удержать слот, вернуть blockId и срок аренды
//	unblock    — освободить удержанный слот (идемпотентно)
//	book       — подтвердить бронь: холд становится записью
//	reschedule — перенести запись на новый удержанный слот
type Handler struct {
	createHold  CreateHoldUseCase
	releaseHold ReleaseHoldUseCase
	book        BookUseCase
	reschedule  RescheduleUseCase
	logger      Logger
}

// NewHandler создает новый экземпляр обработчика
func NewHandler(
	createHold CreateHoldUseCase,
	releaseHold ReleaseHoldUseCase,
	book BookUseCase,
	reschedule RescheduleUseCase,
	logger Logger,
) *Handler {
	return &Handler{
		createHold:  createHold,
		releaseHold: releaseHold,
		book:        book,
		reschedule:  reschedule,
		logger:      logger,
	}
}

// Handle обрабатывает HTTP запрос
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	switch req.Action {
	case "block":
		h.handleBlock(w, r, &req)
	case "unblock":
		h.handleUnblock(w, r, &req)
	case "book":
		h.handleBook(w, r, &req)
	case "reschedule":
		h.handleReschedule(w, r, &req)
	default:
		handlers.RespondBadRequest(w, "action must be one of: block, unblock, book, reschedule")
	}
}

func (h *Handler) handleBlock(w http.ResponseWriter, r *http.Request, req *Request) {
	date, err := time.Parse(domain.DateFormat, req.Date)
	if err != nil {
		handlers.RespondBadRequest(w, "date must be in YYYY-MM-DD format")
		return
	}

	slotTime, err := types.NewTimeStringFromString(req.Time)
	if err != nil {
		handlers.RespondBadRequest(w, "time must be in HH:MM format")
		return
	}

	resp, err := h.createHold.Execute(r.Context(), &create_hold.Request{
		ClinicID:     req.ClinicID,
		DoctorID:     req.DoctorID,
		Date:         date,
		Time:         slotTime,
		LeaseMinutes: req.LeaseMinutes,
	})

	if err != nil {
		switch {
		case errors.Is(err, create_hold.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())
		case errors.Is(err, create_hold.ErrDoctorNotFound):
			handlers.RespondNotFound(w, "doctor not found")
		case errors.Is(err, create_hold.ErrInvalidTimeSlot):
			handlers.RespondBadRequest(w, "time is not a working slot for this doctor")
		case errors.Is(err, create_hold.ErrSlotUnavailable):
			handlers.RespondConflict(w, "slot is not available")
		case errors.Is(err, create_hold.ErrDailyLimitReached):
			handlers.RespondConflict(w, "daily appointment limit reached")
		default:
			h.logger.Error("AppointmentActions block: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, BlockResponse{
		BlockID:   resp.BlockID,
		ExpiresAt: resp.ExpiresAt.Format(time.RFC3339),
	})
}

func (h *Handler) handleUnblock(w http.ResponseWriter, r *http.Request, req *Request) {
	resp, err := h.releaseHold.Execute(r.Context(), &release_hold.Request{
		BlockID: req.BlockID,
		Status:  req.Status,
	})

	if err != nil {
		switch {
		case errors.Is(err, release_hold.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())
		default:
			h.logger.Error("AppointmentActions unblock: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, UnblockResponse{Success: resp.Success})
}

func (h *Handler) handleBook(w http.ResponseWriter, r *http.Request, req *Request) {
	resp, err := h.book.Execute(r.Context(), &book_appointment.Request{
		BlockID:     req.BlockID,
		PatientName: req.PatientName,
		ReminderID:  req.ReminderID,
	})

	if err != nil {
		switch {
		case errors.Is(err, book_appointment.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())
		case errors.Is(err, book_appointment.ErrHoldExpired):
			handlers.RespondGone(w, "hold is expired or missing, select the slot again")
		default:
			h.logger.Error("AppointmentActions book: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, BookResponse{
		AppointmentID: resp.AppointmentID,
		ClinicID:      resp.ClinicID,
		DoctorID:      resp.DoctorID,
		Date:          resp.Date.Format(domain.DateFormat),
		Time:          string(resp.Time),
		Status:        resp.Status,
	})
}

func (h *Handler) handleReschedule(w http.ResponseWriter, r *http.Request, req *Request) {
	resp, err := h.reschedule.Execute(r.Context(), &reschedule_appointment.Request{
		AppointmentID: req.AppointmentID,
		BlockID:       req.BlockID,
	})

	if err != nil {
		switch {
		case errors.Is(err, reschedule_appointment.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())
		case errors.Is(err, reschedule_appointment.ErrAppointmentNotFound):
			handlers.RespondNotFound(w, "appointment not found")
		case errors.Is(err, reschedule_appointment.ErrAppointmentNotActive):
			handlers.RespondConflict(w, "appointment is not active")
		case errors.Is(err, reschedule_appointment.ErrSlotMismatch):
			handlers.RespondConflict(w, "hold does not match the appointment")
		case errors.Is(err, reschedule_appointment.ErrHoldExpired):
			handlers.RespondGone(w, "hold is expired or missing, select the slot again")
		default:
			h.logger.Error("AppointmentActions reschedule: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, RescheduleResponse{
		AppointmentID:   resp.AppointmentID,
		Date:            resp.Date.Format(domain.DateFormat),
		Time:            string(resp.Time),
		Status:          resp.Status,
		ReminderUpdated: resp.ReminderUpdated,
	})
}
