package clinicservice

// Doctor модель доктора из сервиса справочника клиник
// Справочник владеет карточками докторов; движок резервирования читает
// их только для проверки существования
type Doctor struct {
	ID        int64  `json:"id"`
	ClinicID  int64  `json:"clinic_id"`
	FullName  string `json:"full_name"`
	Specialty string `json:"specialty"`
	IsActive  bool   `json:"is_active"`
}

// Clinic модель клиники из сервиса справочника
type Clinic struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Timezone string `json:"timezone"`
}

// ErrorResponse модель ошибки от сервиса справочника
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
