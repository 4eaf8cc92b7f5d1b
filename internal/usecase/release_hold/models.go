package release_hold

// Request модель запроса на освобождение холда
type Request struct {
	BlockID string // Идентификатор холда (ключ слота)
	Status  string // Причина освобождения: cancelled или expired
}

// Response модель ответа на освобождение холда
type Response struct {
	Success bool // Всегда true: повторное освобождение — no-op
}
