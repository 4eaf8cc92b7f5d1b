package reschedule_appointment

import (
	"context"
	"time"

	"github.com/clinicdesk/reservation-service/internal/domain"
	"github.com/clinicdesk/reservation-service/pkg/types"
)

// HoldRepository интерфейс репозитория холдов
type HoldRepository interface {
	// Confirm переводит живой blocked-холд в confirmed; ErrHoldNotActive иначе
	Confirm(ctx context.Context, key domain.HoldKey, now time.Time) error
}

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	UpdateSlot(ctx context.Context, id int64, date time.Time, startTime types.TimeString, status domain.AppointmentStatus) error
}

// ReminderServiceClient интерфейс клиента сервиса напоминаний
type ReminderServiceClient interface {
	Reschedule(ctx context.Context, reminderID int64, scheduledAt time.Time) error
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
