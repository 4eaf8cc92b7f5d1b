package appointment_actions

// Request модель запроса действия над слотом или записью
// Набор обязательных полей зависит от action
type Request struct {
	Action string `json:"action"` // block | unblock | book | reschedule

	// block
	ClinicID     int64  `json:"clinicId,omitempty"`
	DoctorID     int64  `json:"doctorId,omitempty"`
	Date         string `json:"date,omitempty"` // YYYY-MM-DD
	Time         string `json:"time,omitempty"` // HH:MM
	LeaseMinutes int    `json:"leaseMinutes,omitempty"`

	// unblock, book, reschedule
	BlockID string `json:"blockId,omitempty"`

	// unblock
	Status string `json:"status,omitempty"` // cancelled | expired

	// book
	PatientName string `json:"patientName,omitempty"`
	ReminderID  *int64 `json:"reminderId,omitempty"`

	// reschedule
	AppointmentID int64 `json:"appointmentId,omitempty"`
}

// BlockResponse модель ответа на удержание слота
type BlockResponse struct {
	BlockID   string `json:"blockId"`
	ExpiresAt string `json:"expiresAt"` // RFC3339
}

// UnblockResponse модель ответа на освобождение холда
type UnblockResponse struct {
	Success bool `json:"success"`
}

// BookResponse модель ответа на подтверждение брони
type BookResponse struct {
	AppointmentID int64  `json:"appointmentId"`
	ClinicID      int64  `json:"clinicId"`
	DoctorID      int64  `json:"doctorId"`
	Date          string `json:"date"`
	Time          string `json:"time"`
	Status        string `json:"status"`
}

// RescheduleResponse модель ответа на перенос записи
type RescheduleResponse struct {
	AppointmentID   int64  `json:"appointmentId"`
	Date            string `json:"date"`
	Time            string `json:"time"`
	Status          string `json:"status"`
	ReminderUpdated bool   `json:"reminderUpdated"`
}
