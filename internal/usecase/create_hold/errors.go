package create_hold

import "errors"

var (
	// ErrDoctorNotFound возвращается, когда доктор не найден в клинике
	ErrDoctorNotFound = errors.New("create_hold: doctor not found")

	// ErrSlotUnavailable возвращается, когда слот уже занят живым холдом
	// или активной записью. Легитимный отказ: не повторять на тот же слот
	ErrSlotUnavailable = errors.New("create_hold: slot is not available")

	// ErrInvalidTimeSlot возвращается, когда время не входит в кандидатов
	// рабочего расписания доктора на эту дату
	ErrInvalidTimeSlot = errors.New("create_hold: invalid time slot")

	// ErrDailyLimitReached возвращается при достижении лимита записей на день
	ErrDailyLimitReached = errors.New("create_hold: daily appointment limit reached")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_hold: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_hold: internal error")
)
