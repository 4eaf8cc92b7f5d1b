package schedule

import "errors"

var (
	// ErrScheduleNotFound возвращается, когда расписание доктора не настроено
	// Вызывающая сторона подставляет расписание по умолчанию
	ErrScheduleNotFound = errors.New("schedule.repository: working schedule not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("schedule.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("schedule.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("schedule.repository: failed to scan row")
)
