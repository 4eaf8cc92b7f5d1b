package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/clinicdesk/reservation-service/internal/domain"
	scheduleRepo "github.com/clinicdesk/reservation-service/internal/infra/storage/schedule"
	clinicClient "github.com/clinicdesk/reservation-service/internal/integrations/clinicservice"
	"github.com/clinicdesk/reservation-service/pkg/types"
)

// UseCase use case для получения доступных слотов доктора на дату
//
// Доступные слоты = кандидаты из рабочего расписания минус времена,
// занятые активной записью или живым холдом. Чтение без побочных
// эффектов; результат — снимок, а не гарантия.
type UseCase struct {
	appointmentRepo AppointmentRepository
	holdRepo        HoldRepository
	scheduleRepo    ScheduleRepository
	clinicClient    ClinicServiceClient
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	holdRepo HoldRepository,
	scheduleRepo ScheduleRepository,
	clinicClient ClinicServiceClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		holdRepo:        holdRepo,
		scheduleRepo:    scheduleRepo,
		clinicClient:    clinicClient,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: clinic=%d, doctor=%d, date=%s",
		req.ClinicID, req.DoctorID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем существование доктора в клинике
	if _, err := uc.clinicClient.GetDoctor(ctx, req.ClinicID, req.DoctorID); err != nil {
		if errors.Is(err, clinicClient.ErrDoctorNotFound) {
			uc.logger.Warn("GetAvailableSlots: doctor id=%d not found in clinic id=%d", req.DoctorID, req.ClinicID)
			return nil, ErrDoctorNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get doctor id=%d: %v", req.DoctorID, err)
		return nil, fmt.Errorf("%w: failed to get doctor: %v", ErrInternal, err)
	}

	// 3. Получаем рабочее расписание доктора
	// Если расписание не настроено, используем расписание по умолчанию —
	// отсутствие конфигурации никогда не приводит к жёсткой ошибке
	schedule, err := uc.scheduleRepo.GetByDoctor(ctx, req.ClinicID, req.DoctorID)
	if err != nil {
		if !errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			uc.logger.Error("GetAvailableSlots: failed to get schedule: %v", err)
			return nil, fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
		}
		schedule = domain.DefaultWorkingSchedule(req.ClinicID, req.DoctorID)
		uc.logger.Info("GetAvailableSlots: using default schedule for clinic=%d, doctor=%d",
			req.ClinicID, req.DoctorID)
	}

	// 4. Генерируем кандидатов из расписания
	candidates, err := schedule.CandidateSlots(req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to generate candidate slots: %v", err)
		return nil, fmt.Errorf("%w: failed to generate candidate slots: %v", ErrInternal, err)
	}

	if len(candidates) == 0 {
		return &Response{
			ClinicID: req.ClinicID,
			DoctorID: req.DoctorID,
			Date:     req.Date,
			Slots:    []types.TimeString{},
		}, nil
	}

	now := uc.timeProvider.Now()

	// 5. Времена, занятые активными записями
	appointmentTimes, err := uc.appointmentRepo.ListActiveTimes(ctx, req.ClinicID, req.DoctorID, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get appointment times: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointment times: %v", ErrInternal, err)
	}

	// 6. Времена, занятые живыми холдами
	// Репозиторий фильтрует по expires_at > now: истёкший, но не свипнутый
	// холд уже считается свободным
	holdTimes, err := uc.holdRepo.ListActiveTimes(ctx, req.ClinicID, req.DoctorID, req.Date, now)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get hold times: %v", err)
		return nil, fmt.Errorf("%w: failed to get hold times: %v", ErrInternal, err)
	}

	// 7. Вычитаем занятые времена из кандидатов
	// Слот матчится по точному времени начала; пересечение интервалов при
	// нестандартной длительности записи здесь не учитывается
	taken := make(map[types.TimeString]struct{}, len(appointmentTimes)+len(holdTimes))
	for _, t := range appointmentTimes {
		taken[t] = struct{}{}
	}
	for _, t := range holdTimes {
		taken[t] = struct{}{}
	}

	available := make([]types.TimeString, 0, len(candidates))
	for _, slot := range candidates {
		if _, occupied := taken[slot]; !occupied {
			available = append(available, slot)
		}
	}

	uc.logger.Info("GetAvailableSlots: %d/%d slots available for clinic=%d, doctor=%d, date=%s",
		len(available), len(candidates), req.ClinicID, req.DoctorID, req.Date.Format(domain.DateFormat))

	return &Response{
		ClinicID: req.ClinicID,
		DoctorID: req.DoctorID,
		Date:     req.Date,
		Slots:    available,
	}, nil
}
