package get_available_slots

// Response модель ответа со свободными слотами
type Response struct {
	ClinicID       int64    `json:"clinicId"`
	DoctorID       int64    `json:"doctorId"`
	Date           string   `json:"date"`
	AvailableSlots []string `json:"availableSlots"`
}
