package create_hold

import (
	"context"
	"time"

	"github.com/clinicdesk/reservation-service/internal/domain"
	"github.com/clinicdesk/reservation-service/internal/integrations/clinicservice"
)

// HoldRepository интерфейс репозитория холдов
type HoldRepository interface {
	// Create создает холд атомарно; ErrHoldExists при живом холде на слот
	Create(ctx context.Context, h *domain.TemporaryHold) (*domain.TemporaryHold, error)
	// ReclaimStale удаляет неживую запись по ключу слота перед созданием
	ReclaimStale(ctx context.Context, key domain.HoldKey, now time.Time) error
}

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	CountActiveBySlot(ctx context.Context, key domain.HoldKey) (int, error)
	CountActiveByDoctorDate(ctx context.Context, clinicID, doctorID int64, date time.Time) (int, error)
}

// ScheduleRepository интерфейс репозитория рабочих расписаний
type ScheduleRepository interface {
	GetByDoctor(ctx context.Context, clinicID, doctorID int64) (*domain.WorkingSchedule, error)
}

// ClinicServiceClient интерфейс клиента справочника клиник
type ClinicServiceClient interface {
	GetDoctor(ctx context.Context, clinicID, doctorID int64) (*clinicservice.Doctor, error)
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
