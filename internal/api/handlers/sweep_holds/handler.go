package sweep_holds

import (
	"context"
	"net/http"

	"github.com/clinicdesk/reservation-service/internal/api/handlers"
)

// Sweeper интерфейс сервиса уборки истёкших холдов
type Sweeper interface {
	Sweep(ctx context.Context) (int64, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Error(format string, v ...interface{})
}

// Response модель ответа на запуск уборки
type Response struct {
	Reclaimed int64 `json:"reclaimed"`
}

// Handler обработчик ручного запуска уборки истёкших холдов
// POST /maintenance/sweep
//
// Тот же сервис дергается планировщиком по расписанию; эндпоинт нужен
// для внешнего триггера и отладки.
type Handler struct {
	sweeper Sweeper
	logger  Logger
}

// NewHandler создает новый экземпляр обработчика
func NewHandler(sweeper Sweeper, logger Logger) *Handler {
	return &Handler{
		sweeper: sweeper,
		logger:  logger,
	}
}

// Handle обрабатывает HTTP запрос
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	reclaimed, err := h.sweeper.Sweep(r.Context())
	if err != nil {
		h.logger.Error("SweepHolds handler: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, Response{Reclaimed: reclaimed})
}
