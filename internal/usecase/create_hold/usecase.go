package create_hold

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/clinicdesk/reservation-service/internal/domain"
	holdRepo "github.com/clinicdesk/reservation-service/internal/infra/storage/hold"
	scheduleRepo "github.com/clinicdesk/reservation-service/internal/infra/storage/schedule"
	clinicClient "github.com/clinicdesk/reservation-service/internal/integrations/clinicservice"
)

// UseCase use case для временного удержания слота
//
// Удержание = создание записи TemporaryHold со статусом blocked и сроком
// аренды. Решает гонку check-then-write: проверка занятости и создание
// холда выполняются в одной сериализуемой транзакции, а сама вставка
// атомарна по уникальному ключу слота. Из двух конкурентных запросов на
// один слот ровно один получает холд, второй — ErrSlotUnavailable.
type UseCase struct {
	holdRepo        HoldRepository
	appointmentRepo AppointmentRepository
	scheduleRepo    ScheduleRepository
	clinicClient    ClinicServiceClient
	txManager       TransactionManager
	timeProvider    TimeProvider
	holdsCreated    prometheus.Counter
	logger          Logger
	leaseMinutes    int
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	holdRepo HoldRepository,
	appointmentRepo AppointmentRepository,
	scheduleRepo ScheduleRepository,
	clinicClient ClinicServiceClient,
	txManager TransactionManager,
	leaseMinutes int,
	holdsCreated prometheus.Counter,
	logger Logger,
) *UseCase {
	if leaseMinutes < domain.MinHoldLeaseMinutes || leaseMinutes > domain.MaxHoldLeaseMinutes {
		leaseMinutes = domain.DefaultHoldLeaseMinutes
	}

	return &UseCase{
		holdRepo:        holdRepo,
		appointmentRepo: appointmentRepo,
		scheduleRepo:    scheduleRepo,
		clinicClient:    clinicClient,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		holdsCreated:    holdsCreated,
		logger:          logger,
		leaseMinutes:    leaseMinutes,
	}
}

// Execute выполняет use case удержания слота
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateHold: clinic=%d, doctor=%d, date=%s, time=%s",
		req.ClinicID, req.DoctorID, req.Date.Format(domain.DateFormat), req.Time)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateHold: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем существование доктора в клинике
	if _, err := uc.clinicClient.GetDoctor(ctx, req.ClinicID, req.DoctorID); err != nil {
		if errors.Is(err, clinicClient.ErrDoctorNotFound) {
			uc.logger.Warn("CreateHold: doctor id=%d not found in clinic id=%d", req.DoctorID, req.ClinicID)
			return nil, ErrDoctorNotFound
		}
		uc.logger.Error("CreateHold: failed to get doctor id=%d: %v", req.DoctorID, err)
		return nil, fmt.Errorf("%w: failed to get doctor: %v", ErrInternal, err)
	}

	// 3. Время должно быть кандидатом рабочего расписания на эту дату
	schedule, err := uc.scheduleRepo.GetByDoctor(ctx, req.ClinicID, req.DoctorID)
	if err != nil {
		if !errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			uc.logger.Error("CreateHold: failed to get schedule: %v", err)
			return nil, fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
		}
		schedule = domain.DefaultWorkingSchedule(req.ClinicID, req.DoctorID)
	}

	candidates, err := schedule.CandidateSlots(req.Date)
	if err != nil {
		uc.logger.Error("CreateHold: failed to generate candidate slots: %v", err)
		return nil, fmt.Errorf("%w: failed to generate candidate slots: %v", ErrInternal, err)
	}

	isCandidate := false
	for _, slot := range candidates {
		if slot == req.Time {
			isCandidate = true
			break
		}
	}
	if !isCandidate {
		uc.logger.Warn("CreateHold: time %s is not a working slot for doctor id=%d on %s",
			req.Time, req.DoctorID, req.Date.Format(domain.DateFormat))
		return nil, ErrInvalidTimeSlot
	}

	// 4. Лимит записей на день (если настроен в расписании)
	if schedule.MaxDailyAppointments != nil {
		count, err := uc.appointmentRepo.CountActiveByDoctorDate(ctx, req.ClinicID, req.DoctorID, req.Date)
		if err != nil {
			uc.logger.Error("CreateHold: failed to count daily appointments: %v", err)
			return nil, fmt.Errorf("%w: failed to count daily appointments: %v", ErrInternal, err)
		}
		if count >= *schedule.MaxDailyAppointments {
			uc.logger.Warn("CreateHold: daily limit %d reached for doctor id=%d on %s",
				*schedule.MaxDailyAppointments, req.DoctorID, req.Date.Format(domain.DateFormat))
			return nil, ErrDailyLimitReached
		}
	}

	key := domain.HoldKey{
		ClinicID: req.ClinicID,
		DoctorID: req.DoctorID,
		Date:     req.Date,
		Time:     req.Time,
	}

	leaseMinutes := req.LeaseMinutes
	if leaseMinutes == 0 {
		leaseMinutes = uc.leaseMinutes
	}

	now := uc.timeProvider.Now()
	expiresAt := now.Add(time.Duration(leaseMinutes) * time.Minute)

	// 5. Создаем холд в сериализуемой транзакции:
	//    - слот не занят активной записью;
	//    - подтверждённые и истёкшие остатки по ключу убираются, чтобы
	//      они не блокировали слот навсегда;
	//    - вставка атомарна по уникальному ключу слота
	var created *domain.TemporaryHold
	txErr := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		count, err := uc.appointmentRepo.CountActiveBySlot(txCtx, key)
		if err != nil {
			return fmt.Errorf("failed to count appointments for slot: %w", err)
		}
		if count > 0 {
			return ErrSlotUnavailable
		}

		if err := uc.holdRepo.ReclaimStale(txCtx, key, now); err != nil {
			return fmt.Errorf("failed to reclaim stale hold: %w", err)
		}

		created, err = uc.holdRepo.Create(txCtx, &domain.TemporaryHold{
			ClinicID:  req.ClinicID,
			DoctorID:  req.DoctorID,
			SlotDate:  req.Date,
			SlotTime:  req.Time,
			Status:    domain.HoldStatusBlocked,
			CreatedAt: now,
			ExpiresAt: expiresAt,
		})
		if err != nil {
			if errors.Is(err, holdRepo.ErrHoldExists) {
				return ErrSlotUnavailable
			}
			return fmt.Errorf("failed to create hold: %w", err)
		}

		return nil
	})
	if txErr != nil {
		if errors.Is(txErr, ErrSlotUnavailable) {
			uc.logger.Info("CreateHold: slot %s is already taken", key)
			return nil, ErrSlotUnavailable
		}
		uc.logger.Error("CreateHold: transaction failed: %v", txErr)
		return nil, fmt.Errorf("%w: %v", ErrInternal, txErr)
	}

	if uc.holdsCreated != nil {
		uc.holdsCreated.Inc()
	}

	uc.logger.Info("CreateHold: hold id=%d created for slot %s, expires at %s",
		created.ID, key, expiresAt.Format(time.RFC3339))

	return &Response{
		BlockID:   key.String(),
		ExpiresAt: created.ExpiresAt,
	}, nil
}
