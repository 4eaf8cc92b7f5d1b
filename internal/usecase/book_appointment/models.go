package book_appointment

import (
	"time"

	"github.com/clinicdesk/reservation-service/pkg/types"
)

// Request модель запроса на подтверждение брони
type Request struct {
	BlockID     string // Идентификатор ранее созданного холда
	PatientName string // Имя пациента для записи
	ReminderID  *int64 // ID напоминания во внешнем сервисе (опционально)
}

// Response модель ответа с созданной записью
type Response struct {
	AppointmentID int64            // ID созданной записи
	ClinicID      int64            // ID клиники
	DoctorID      int64            // ID доктора
	Date          time.Time        // Дата записи
	Time          types.TimeString // Время начала
	Status        string           // Статус записи (scheduled)
}
