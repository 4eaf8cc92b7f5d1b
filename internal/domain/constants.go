package domain

// Default working schedule, applied when a doctor has no configuration.
// The booking flow must never hard-fail on missing configuration.
const (
	DefaultScheduleStartTime   = "08:00"
	DefaultScheduleEndTime     = "18:00"
	DefaultSlotDurationMinutes = 30
	DefaultHoldLeaseMinutes    = 5
)

// Business validation constants
const (
	MinSlotDurationMinutes      = 5
	MaxSlotDurationMinutes      = 120
	MinHoldLeaseMinutes         = 1
	MaxHoldLeaseMinutes         = 60
	MaxPatientNameLength        = 200
	MaxCancellationReasonLength = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveAppointmentStatuses статусы, при которых запись занимает свой слот
// Используется при подсчёте доступных слотов
var ActiveAppointmentStatuses = []AppointmentStatus{
	StatusScheduled,
	StatusRescheduled,
}

// InactiveAppointmentStatuses статусы, при которых слот записи освобождён
var InactiveAppointmentStatuses = []AppointmentStatus{
	StatusCompleted,
	StatusCancelled,
}
