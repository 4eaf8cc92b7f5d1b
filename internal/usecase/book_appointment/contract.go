package book_appointment

import (
	"context"
	"time"

	"github.com/clinicdesk/reservation-service/internal/domain"
)

// HoldRepository интерфейс репозитория холдов
type HoldRepository interface {
	// Confirm переводит живой blocked-холд в confirmed; ErrHoldNotActive иначе
	Confirm(ctx context.Context, key domain.HoldKey, now time.Time) error
}

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error)
}

// ScheduleRepository интерфейс репозитория рабочих расписаний
type ScheduleRepository interface {
	GetByDoctor(ctx context.Context, clinicID, doctorID int64) (*domain.WorkingSchedule, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
