package hold

import "errors"

var (
	// ErrHoldNotFound возвращается, когда холд не найден
	ErrHoldNotFound = errors.New("hold.repository: hold not found")

	// ErrHoldExists возвращается, когда слот уже удержан живым холдом
	// Уникальный ключ (clinic_id, doctor_id, slot_date, slot_time) гарантирует
	// не более одного живого холда на слот
	ErrHoldExists = errors.New("hold.repository: active hold already exists for slot")

	// ErrHoldNotActive возвращается при попытке подтвердить холд,
	// который уже не является живым заблокированным холдом
	ErrHoldNotActive = errors.New("hold.repository: hold is not active")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("hold.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("hold.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("hold.repository: failed to scan row")
)
