package reminderservice

import "errors"

var (
	// ErrReminderNotFound возвращается, когда напоминание не найдено
	ErrReminderNotFound = errors.New("reminderservice client: reminder not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("reminderservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("reminderservice client: invalid response")
)
