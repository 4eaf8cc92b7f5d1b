package release_hold

import (
	"context"

	"github.com/clinicdesk/reservation-service/internal/domain"
)

// HoldRepository интерфейс репозитория холдов
type HoldRepository interface {
	// DeleteBlocked удаляет холд в статусе blocked; ErrHoldNotFound если его нет
	DeleteBlocked(ctx context.Context, key domain.HoldKey) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
