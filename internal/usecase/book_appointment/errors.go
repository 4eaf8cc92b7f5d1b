package book_appointment

import "errors"

var (
	// ErrHoldExpired возвращается, когда холд не найден или аренда истекла.
	// Клиент должен вернуться к выбору слота и удержать его заново
	ErrHoldExpired = errors.New("book_appointment: hold is expired or missing")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("book_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("book_appointment: internal error")
)
