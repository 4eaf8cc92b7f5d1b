package book_appointment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/clinicdesk/reservation-service/internal/domain"
	holdRepo "github.com/clinicdesk/reservation-service/internal/infra/storage/hold"
	scheduleRepo "github.com/clinicdesk/reservation-service/internal/infra/storage/schedule"
)

// UseCase use case для подтверждения удержанного слота записью
//
// Подтверждение атомарно: перевод холда blocked -> confirmed и создание
// Appointment выполняются одной транзакцией. Confirm срабатывает только
// на живом холде, поэтому истёкший или отсутствующий холд даёт
// ErrHoldExpired без каких-либо побочных эффектов.
type UseCase struct {
	holdRepo        HoldRepository
	appointmentRepo AppointmentRepository
	scheduleRepo    ScheduleRepository
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	holdRepo HoldRepository,
	appointmentRepo AppointmentRepository,
	scheduleRepo ScheduleRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		holdRepo:        holdRepo,
		appointmentRepo: appointmentRepo,
		scheduleRepo:    scheduleRepo,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case подтверждения брони
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("BookAppointment: blockId=%s", req.BlockID)

	key, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("BookAppointment: validation failed: %v", err)
		return nil, err
	}

	// Длительность слота берём из рабочего расписания доктора
	schedule, err := uc.scheduleRepo.GetByDoctor(ctx, key.ClinicID, key.DoctorID)
	if err != nil {
		if !errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			uc.logger.Error("BookAppointment: failed to get schedule: %v", err)
			return nil, fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
		}
		schedule = domain.DefaultWorkingSchedule(key.ClinicID, key.DoctorID)
	}

	now := uc.timeProvider.Now()

	var created *domain.Appointment
	txErr := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if err := uc.holdRepo.Confirm(txCtx, *key, now); err != nil {
			if errors.Is(err, holdRepo.ErrHoldNotActive) {
				return ErrHoldExpired
			}
			return fmt.Errorf("failed to confirm hold: %w", err)
		}

		created, err = uc.appointmentRepo.Create(txCtx, &domain.Appointment{
			ClinicID:        key.ClinicID,
			DoctorID:        key.DoctorID,
			PatientName:     req.PatientName,
			AppointmentDate: key.Date,
			StartTime:       key.Time,
			DurationMinutes: schedule.SlotDurationMinutes,
			Status:          domain.StatusScheduled,
			ReminderID:      req.ReminderID,
		})
		if err != nil {
			return fmt.Errorf("failed to create appointment: %w", err)
		}

		return nil
	})
	if txErr != nil {
		if errors.Is(txErr, ErrHoldExpired) {
			uc.logger.Warn("BookAppointment: hold %s is expired or missing", key)
			return nil, ErrHoldExpired
		}
		uc.logger.Error("BookAppointment: transaction failed: %v", txErr)
		return nil, fmt.Errorf("%w: %v", ErrInternal, txErr)
	}

	uc.logger.Info("BookAppointment: appointment id=%d booked for slot %s", created.ID, key)

	return &Response{
		AppointmentID: created.ID,
		ClinicID:      created.ClinicID,
		DoctorID:      created.DoctorID,
		Date:          created.AppointmentDate,
		Time:          created.StartTime,
		Status:        string(created.Status),
	}, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) (*domain.HoldKey, error) {
	if req.BlockID == "" {
		return nil, fmt.Errorf("%w: blockId is required", ErrInvalidInput)
	}

	name := strings.TrimSpace(req.PatientName)
	if name == "" {
		return nil, fmt.Errorf("%w: patientName is required", ErrInvalidInput)
	}
	if len(name) > domain.MaxPatientNameLength {
		return nil, fmt.Errorf("%w: patientName must not exceed %d characters",
			ErrInvalidInput, domain.MaxPatientNameLength)
	}
	req.PatientName = name

	key, err := domain.ParseHoldKey(req.BlockID)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed blockId: %v", ErrInvalidInput, err)
	}

	return &key, nil
}
