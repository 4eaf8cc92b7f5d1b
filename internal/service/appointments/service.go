package appointments

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/clinicdesk/reservation-service/internal/domain"
	apptRepo "github.com/clinicdesk/reservation-service/internal/infra/storage/appointment"
)

// Service сервис управления жизненным циклом записей на приём
//
// Записи не удаляются физически: отмена и завершение переводят статус,
// слот при этом освобождается автоматически, потому что выборки
// занятости учитывают только активные статусы.
type Service struct {
	appointmentRepo AppointmentRepository
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(appointmentRepo AppointmentRepository, logger Logger) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		logger:          logger,
	}
}

// GetByID возвращает запись по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: id must be positive", ErrInvalidInput)
	}

	appt, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("Appointments: failed to get appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
	}

	return appt, nil
}

// GetDoctorAppointments возвращает записи доктора по фильтру
func (s *Service) GetDoctorAppointments(ctx context.Context, filter domain.DoctorAppointmentsFilter) ([]*domain.Appointment, error) {
	if filter.ClinicID <= 0 || filter.DoctorID <= 0 {
		return nil, fmt.Errorf("%w: clinicID and doctorID must be positive", ErrInvalidInput)
	}

	appts, err := s.appointmentRepo.GetByDoctorWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("Appointments: failed to list appointments for doctor id=%d: %v", filter.DoctorID, err)
		return nil, fmt.Errorf("%w: failed to list appointments: %v", ErrInternal, err)
	}

	return appts, nil
}

// Cancel отменяет активную запись с указанием причины
func (s *Service) Cancel(ctx context.Context, id int64, reason string) error {
	reason = strings.TrimSpace(reason)
	if len(reason) > domain.MaxCancellationReasonLength {
		return fmt.Errorf("%w: reason must not exceed %d characters",
			ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	appt, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !appt.CanBeCancelled() {
		s.logger.Warn("Appointments: appointment id=%d has status %s and cannot be cancelled", id, appt.Status)
		return ErrAppointmentNotActive
	}

	if err := s.appointmentRepo.Cancel(ctx, id, reason); err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			return ErrAppointmentNotFound
		}
		s.logger.Error("Appointments: failed to cancel appointment id=%d: %v", id, err)
		return fmt.Errorf("%w: failed to cancel appointment: %v", ErrInternal, err)
	}

	s.logger.Info("Appointments: appointment id=%d cancelled", id)
	return nil
}

// Complete помечает активную запись завершённой
func (s *Service) Complete(ctx context.Context, id int64) error {
	appt, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !appt.CanBeCompleted() {
		s.logger.Warn("Appointments: appointment id=%d has status %s and cannot be completed", id, appt.Status)
		return ErrAppointmentNotActive
	}

	if err := s.appointmentRepo.UpdateStatus(ctx, id, domain.StatusCompleted); err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			return ErrAppointmentNotFound
		}
		s.logger.Error("Appointments: failed to complete appointment id=%d: %v", id, err)
		return fmt.Errorf("%w: failed to complete appointment: %v", ErrInternal, err)
	}

	s.logger.Info("Appointments: appointment id=%d completed", id)
	return nil
}
