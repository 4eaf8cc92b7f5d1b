package get_available_slots

import (
	"time"

	"github.com/clinicdesk/reservation-service/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	ClinicID int64     // ID клиники
	DoctorID int64     // ID доктора
	Date     time.Time // Дата, на которую запрашиваются слоты (без времени)
}

// Response модель ответа со списком доступных слотов
type Response struct {
	ClinicID int64              // ID клиники
	DoctorID int64              // ID доктора
	Date     time.Time          // Дата, на которую запрашивались слоты
	Slots    []types.TimeString // Доступные времена начала, по возрастанию
}
