package create_hold

import (
	"fmt"

	"github.com/clinicdesk/reservation-service/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ClinicID <= 0 {
		return fmt.Errorf("%w: clinicID must be positive", ErrInvalidInput)
	}

	if req.DoctorID <= 0 {
		return fmt.Errorf("%w: doctorID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if err := req.Time.Validate(); err != nil {
		return fmt.Errorf("%w: time must be in HH:MM format", ErrInvalidInput)
	}

	if req.LeaseMinutes < 0 {
		return fmt.Errorf("%w: leaseMinutes must not be negative", ErrInvalidInput)
	}

	if req.LeaseMinutes > domain.MaxHoldLeaseMinutes {
		return fmt.Errorf("%w: leaseMinutes must not exceed %d", ErrInvalidInput, domain.MaxHoldLeaseMinutes)
	}

	return nil
}
