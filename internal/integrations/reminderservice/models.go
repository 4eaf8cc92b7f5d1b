package reminderservice

import "time"

// Reminder модель напоминания из сервиса уведомлений
// Содержание и доставка уведомлений принадлежат сервису уведомлений;
// reschedule-флоу только переносит время срабатывания
type Reminder struct {
	ID          int64     `json:"id"`
	ScheduledAt time.Time `json:"scheduled_at"`
}

// rescheduleRequest тело запроса переноса напоминания
type rescheduleRequest struct {
	ScheduledAt time.Time `json:"scheduled_at"`
}
