package sweeper

import (
	"context"
	"time"
)

// HoldRepository интерфейс репозитория холдов
type HoldRepository interface {
	// SweepExpired удаляет истёкшие blocked-холды батчем, возвращает количество
	SweepExpired(ctx context.Context, now time.Time) (int64, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
