package appointment_actions

import (
	"context"

	"github.com/clinicdesk/reservation-service/internal/usecase/book_appointment"
	"github.com/clinicdesk/reservation-service/internal/usecase/create_hold"
	"github.com/clinicdesk/reservation-service/internal/usecase/release_hold"
	"github.com/clinicdesk/reservation-service/internal/usecase/reschedule_appointment"
)

// CreateHoldUseCase интерфейс usecase удержания слота
type CreateHoldUseCase interface {
	Execute(ctx context.Context, req *create_hold.Request) (*create_hold.Response, error)
}

// ReleaseHoldUseCase интерфейс usecase освобождения холда
type ReleaseHoldUseCase interface {
	Execute(ctx context.Context, req *release_hold.Request) (*release_hold.Response, error)
}

// BookUseCase интерфейс usecase подтверждения брони
type BookUseCase interface {
	Execute(ctx context.Context, req *book_appointment.Request) (*book_appointment.Response, error)
}

// RescheduleUseCase интерфейс usecase переноса записи
type RescheduleUseCase interface {
	Execute(ctx context.Context, req *reschedule_appointment.Request) (*reschedule_appointment.Response, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
