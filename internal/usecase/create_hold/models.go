package create_hold

import (
	"time"

	"github.com/clinicdesk/reservation-service/pkg/types"
)

// Request модель запроса на удержание слота
type Request struct {
	ClinicID     int64            // ID клиники
	DoctorID     int64            // ID доктора
	Date         time.Time        // Дата слота (без времени)
	Time         types.TimeString // Время начала слота (например, "09:00")
	LeaseMinutes int              // Длительность аренды; 0 = значение по умолчанию
}

// Response модель ответа с созданным холдом
type Response struct {
	BlockID   string    // Детерминированный идентификатор холда (ключ слота)
	ExpiresAt time.Time // Момент истечения аренды
}
