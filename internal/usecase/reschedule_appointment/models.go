package reschedule_appointment

import (
	"time"

	"github.com/clinicdesk/reservation-service/pkg/types"
)

// Request модель запроса на перенос записи
type Request struct {
	AppointmentID int64  // ID переносимой записи
	BlockID       string // Идентификатор холда нового слота
}

// Response модель ответа на перенос записи
type Response struct {
	AppointmentID   int64            // ID записи
	Date            time.Time        // Новая дата
	Time            types.TimeString // Новое время начала
	Status          string           // Статус записи (rescheduled)
	ReminderUpdated bool             // Удалось ли перенести напоминание
}
