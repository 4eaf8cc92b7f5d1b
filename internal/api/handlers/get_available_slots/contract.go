package get_available_slots

import (
	"context"

	"github.com/clinicdesk/reservation-service/internal/usecase/get_available_slots"
)

// UseCase интерфейс usecase получения доступных слотов
type UseCase interface {
	Execute(ctx context.Context, req *get_available_slots.Request) (*get_available_slots.Response, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
