package domain

import (
	"time"

	"github.com/clinicdesk/reservation-service/pkg/types"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusScheduled   AppointmentStatus = "scheduled"
	StatusRescheduled AppointmentStatus = "rescheduled"
	StatusCompleted   AppointmentStatus = "completed"
	StatusCancelled   AppointmentStatus = "cancelled"
)

// Appointment represents a confirmed booking of a doctor's slot.
// Appointments are never physically deleted, only transitioned by status.
type Appointment struct {
	ID              int64
	ClinicID        int64
	DoctorID        int64
	PatientName     string
	AppointmentDate time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Status          AppointmentStatus

	// ReminderID references the reminder owned by the notification service.
	// The reschedule flow updates its scheduled time but never owns it.
	ReminderID *int64

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true while the appointment occupies its slot
func (a *Appointment) IsActive() bool {
	return a.Status == StatusScheduled || a.Status == StatusRescheduled
}

// CanBeCancelled returns true if the appointment can be cancelled
func (a *Appointment) CanBeCancelled() bool {
	return a.IsActive()
}

// CanBeRescheduled returns true if the appointment can be moved to another slot
func (a *Appointment) CanBeRescheduled() bool {
	return a.IsActive()
}

// CanBeCompleted returns true if the appointment can be marked completed
func (a *Appointment) CanBeCompleted() bool {
	return a.IsActive()
}

// SlotKey returns the deterministic key of the slot the appointment occupies
func (a *Appointment) SlotKey() HoldKey {
	return HoldKey{
		ClinicID: a.ClinicID,
		DoctorID: a.DoctorID,
		Date:     a.AppointmentDate,
		Time:     a.StartTime,
	}
}

// DoctorAppointmentsFilter фильтр для выборки записей доктора
type DoctorAppointmentsFilter struct {
	ClinicID        int64              // Обязательный параметр
	DoctorID        int64              // Обязательный параметр
	StartDate       *time.Time         // Начало периода (опционально)
	EndDate         *time.Time         // Конец периода (опционально)
	Status          *AppointmentStatus // Фильтр по статусу (опционально)
	IncludeInactive bool               // Включать ли завершённые и отменённые записи
}
