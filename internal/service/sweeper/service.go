package sweeper

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Service сервис уборки истёкших холдов
//
// Уборка — чисто гигиеническая операция: корректность чтений не зависит
// от неё, потому что все выборки фильтруют холды по expires_at. Свип
// лишь физически удаляет мусор, освобождая уникальный ключ слота.
// Запускается по расписанию или вручную через maintenance-эндпоинт;
// конкурентные запуски безопасны.
type Service struct {
	holdRepo     HoldRepository
	timeProvider TimeProvider
	holdsSwept   prometheus.Counter
	logger       Logger
}

// NewService создает новый экземпляр сервиса уборки
func NewService(holdRepo HoldRepository, holdsSwept prometheus.Counter, logger Logger) *Service {
	return &Service{
		holdRepo:     holdRepo,
		timeProvider: &RealTimeProvider{},
		holdsSwept:   holdsSwept,
		logger:       logger,
	}
}

// Sweep удаляет все истёкшие заблокированные холды и возвращает их количество
func (s *Service) Sweep(ctx context.Context) (int64, error) {
	now := s.timeProvider.Now()

	reclaimed, err := s.holdRepo.SweepExpired(ctx, now)
	if err != nil {
		s.logger.Error("Sweeper: failed to sweep expired holds: %v", err)
		return 0, fmt.Errorf("sweeper: Sweep - delete expired holds: %w", err)
	}

	if s.holdsSwept != nil {
		s.holdsSwept.Add(float64(reclaimed))
	}

	if reclaimed > 0 {
		s.logger.Info("Sweeper: reclaimed %d expired holds", reclaimed)
	}

	return reclaimed, nil
}
