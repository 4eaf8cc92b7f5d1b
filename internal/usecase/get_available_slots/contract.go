package get_available_slots

import (
	"context"
	"time"

	"github.com/clinicdesk/reservation-service/internal/domain"
	"github.com/clinicdesk/reservation-service/internal/integrations/clinicservice"
	"github.com/clinicdesk/reservation-service/pkg/types"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	// ListActiveTimes возвращает времена начала активных записей доктора на дату
	ListActiveTimes(ctx context.Context, clinicID, doctorID int64, date time.Time) ([]types.TimeString, error)
}

// HoldRepository интерфейс репозитория холдов
type HoldRepository interface {
	// ListActiveTimes возвращает времена живых (не истёкших) холдов доктора на дату
	ListActiveTimes(ctx context.Context, clinicID, doctorID int64, date time.Time, now time.Time) ([]types.TimeString, error)
}

// ScheduleRepository интерфейс репозитория рабочих расписаний
type ScheduleRepository interface {
	GetByDoctor(ctx context.Context, clinicID, doctorID int64) (*domain.WorkingSchedule, error)
}

// ClinicServiceClient интерфейс клиента справочника клиник
type ClinicServiceClient interface {
	GetDoctor(ctx context.Context, clinicID, doctorID int64) (*clinicservice.Doctor, error)
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
