package reschedule_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/clinicdesk/reservation-service/internal/domain"
	apptRepo "github.com/clinicdesk/reservation-service/internal/infra/storage/appointment"
	holdRepo "github.com/clinicdesk/reservation-service/internal/infra/storage/hold"
)

// UseCase use case для переноса записи на новый удержанный слот
//
// Перенос подтверждает холд нового слота и перемещает запись одной
// транзакцией, затем best-effort переносит напоминание во внешнем
// сервисе. Сбой напоминания не откатывает перенос: запись уже живёт
// в новом слоте, ответ помечается ReminderUpdated=false.
type UseCase struct {
	holdRepo        HoldRepository
	appointmentRepo AppointmentRepository
	reminderClient  ReminderServiceClient
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	holdRepo HoldRepository,
	appointmentRepo AppointmentRepository,
	reminderClient ReminderServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		holdRepo:        holdRepo,
		appointmentRepo: appointmentRepo,
		reminderClient:  reminderClient,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case переноса записи
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleAppointment: appointment=%d, blockId=%s", req.AppointmentID, req.BlockID)

	key, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("RescheduleAppointment: validation failed: %v", err)
		return nil, err
	}

	appt, err := uc.appointmentRepo.GetByID(ctx, req.AppointmentID)
	if err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			uc.logger.Warn("RescheduleAppointment: appointment id=%d not found", req.AppointmentID)
			return nil, ErrAppointmentNotFound
		}
		uc.logger.Error("RescheduleAppointment: failed to get appointment id=%d: %v", req.AppointmentID, err)
		return nil, fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
	}

	if !appt.CanBeRescheduled() {
		uc.logger.Warn("RescheduleAppointment: appointment id=%d has status %s and cannot be rescheduled",
			appt.ID, appt.Status)
		return nil, ErrAppointmentNotActive
	}

	// Холд должен принадлежать тому же доктору той же клиники
	currentSlot := appt.SlotKey()
	if key.ClinicID != currentSlot.ClinicID || key.DoctorID != currentSlot.DoctorID {
		uc.logger.Warn("RescheduleAppointment: hold %s does not match appointment slot %s", key, currentSlot)
		return nil, ErrSlotMismatch
	}

	now := uc.timeProvider.Now()

	// Подтверждение холда и перенос записи — одна транзакция
	txErr := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if err := uc.holdRepo.Confirm(txCtx, *key, now); err != nil {
			if errors.Is(err, holdRepo.ErrHoldNotActive) {
				return ErrHoldExpired
			}
			return fmt.Errorf("failed to confirm hold: %w", err)
		}

		if err := uc.appointmentRepo.UpdateSlot(txCtx, appt.ID, key.Date, key.Time, domain.StatusRescheduled); err != nil {
			return fmt.Errorf("failed to move appointment: %w", err)
		}

		return nil
	})
	if txErr != nil {
		if errors.Is(txErr, ErrHoldExpired) {
			uc.logger.Warn("RescheduleAppointment: hold %s is expired or missing", key)
			return nil, ErrHoldExpired
		}
		uc.logger.Error("RescheduleAppointment: transaction failed: %v", txErr)
		return nil, fmt.Errorf("%w: %v", ErrInternal, txErr)
	}

	// Перенос напоминания best-effort: запись уже перенесена
	reminderUpdated := false
	if appt.ReminderID != nil {
		scheduledAt, err := key.Time.At(key.Date)
		if err != nil {
			uc.logger.Error("RescheduleAppointment: failed to build reminder time for slot %s: %v", key, err)
		} else if err := uc.reminderClient.Reschedule(ctx, *appt.ReminderID, scheduledAt); err != nil {
			uc.logger.Error("RescheduleAppointment: failed to reschedule reminder id=%d: %v",
				*appt.ReminderID, err)
		} else {
			reminderUpdated = true
		}
	}

	uc.logger.Info("RescheduleAppointment: appointment id=%d moved from slot %s to %s", appt.ID, currentSlot, key)

	return &Response{
		AppointmentID:   appt.ID,
		Date:            key.Date,
		Time:            key.Time,
		Status:          string(domain.StatusRescheduled),
		ReminderUpdated: reminderUpdated,
	}, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) (*domain.HoldKey, error) {
	if req.AppointmentID <= 0 {
		return nil, fmt.Errorf("%w: appointmentId must be positive", ErrInvalidInput)
	}

	if req.BlockID == "" {
		return nil, fmt.Errorf("%w: blockId is required", ErrInvalidInput)
	}

	key, err := domain.ParseHoldKey(req.BlockID)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed blockId: %v", ErrInvalidInput, err)
	}

	return &key, nil
}
