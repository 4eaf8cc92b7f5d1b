package reschedule

import "errors"

var (
	// ErrInvalidTransition возвращается при вызове действия, недопустимого
	// в текущем состоянии диалога
	ErrInvalidTransition = errors.New("reschedule: invalid state transition")

	// ErrHoldExpired возвращается, когда аренда холда истекла до отправки.
	// Диалог возвращается к выбору времени на уже выбранной дате
	ErrHoldExpired = errors.New("reschedule: hold has expired")

	// ErrFlowClosed возвращается при действии над закрытым диалогом
	ErrFlowClosed = errors.New("reschedule: flow is closed")
)
