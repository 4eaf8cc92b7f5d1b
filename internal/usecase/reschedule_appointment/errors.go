package reschedule_appointment

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("reschedule_appointment: appointment not found")

	// ErrAppointmentNotActive возвращается, когда запись нельзя перенести
	// (уже завершена или отменена)
	ErrAppointmentNotActive = errors.New("reschedule_appointment: appointment is not active")

	// ErrHoldExpired возвращается, когда холд нового слота не найден или
	// аренда истекла. Клиент должен заново выбрать и удержать слот
	ErrHoldExpired = errors.New("reschedule_appointment: hold is expired or missing")

	// ErrSlotMismatch возвращается, когда холд принадлежит другому доктору
	// или клинике, чем переносимая запись
	ErrSlotMismatch = errors.New("reschedule_appointment: hold does not match appointment")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reschedule_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reschedule_appointment: internal error")
)
