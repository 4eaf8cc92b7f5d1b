package get_available_slots

import "errors"

var (
	// ErrDoctorNotFound возвращается, когда доктор не найден в клинике
	ErrDoctorNotFound = errors.New("get_available_slots: doctor not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_slots: internal error")
)
