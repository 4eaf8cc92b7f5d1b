package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/clinicdesk/reservation-service/pkg/types"
)

// HoldStatus represents the lifecycle state of a temporary hold
type HoldStatus string

const (
	HoldStatusBlocked   HoldStatus = "blocked"
	HoldStatusConfirmed HoldStatus = "confirmed"
	HoldStatusCancelled HoldStatus = "cancelled"
	HoldStatusExpired   HoldStatus = "expired"
)

// ErrInvalidHoldKey возвращается при некорректном формате ключа холда
var ErrInvalidHoldKey = errors.New("domain: invalid hold key")

// ValidHoldReleaseStatus returns true for statuses a hold may be released with
func ValidHoldReleaseStatus(s HoldStatus) bool {
	return s == HoldStatusCancelled || s == HoldStatusExpired
}

// TemporaryHold is a short-lived exclusive reservation of a slot pending
// confirmation. A hold keeps concurrent sessions from grabbing the same slot
// while a user finishes the booking dialog; it expires at ExpiresAt.
type TemporaryHold struct {
	ID        int64
	ClinicID  int64
	DoctorID  int64
	SlotDate  time.Time
	SlotTime  types.TimeString
	Status    HoldStatus
	CreatedAt time.Time
	ExpiresAt time.Time
}

// IsBlocked returns true while the hold is pending confirmation
func (h *TemporaryHold) IsBlocked() bool {
	return h.Status == HoldStatusBlocked
}

// IsExpired returns true once the lease has elapsed.
// Readers must treat an expired hold as free even before the sweeper
// physically removes the record.
func (h *TemporaryHold) IsExpired(now time.Time) bool {
	return !h.ExpiresAt.After(now)
}

// Key returns the deterministic storage key of the held slot
func (h *TemporaryHold) Key() HoldKey {
	return HoldKey{
		ClinicID: h.ClinicID,
		DoctorID: h.DoctorID,
		Date:     h.SlotDate,
		Time:     h.SlotTime,
	}
}

// HoldKey is the deterministic identity of a slot hold, derived from the slot
// itself rather than a random id. Deriving the key from the slot turns the
// check-then-write race into a single create-if-absent write: the storage
// unique key admits at most one live hold per slot.
type HoldKey struct {
	ClinicID int64
	DoctorID int64
	Date     time.Time
	Time     types.TimeString
}

// String сериализует ключ в формат "clinicId:doctorId:YYYY-MM-DD:HH:MM"
// Это же значение используется как публичный blockId в API
func (k HoldKey) String() string {
	return fmt.Sprintf("%d:%d:%s:%s", k.ClinicID, k.DoctorID, k.Date.Format(DateFormat), k.Time)
}

// ParseHoldKey разбирает blockId обратно в составные части ключа
func ParseHoldKey(s string) (HoldKey, error) {
	parts := strings.SplitN(s, ":", 4)
	if len(parts) != 4 {
		return HoldKey{}, fmt.Errorf("%w: %q", ErrInvalidHoldKey, s)
	}

	clinicID, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil || clinicID <= 0 {
		return HoldKey{}, fmt.Errorf("%w: bad clinic id in %q", ErrInvalidHoldKey, s)
	}

	doctorID, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil || doctorID <= 0 {
		return HoldKey{}, fmt.Errorf("%w: bad doctor id in %q", ErrInvalidHoldKey, s)
	}

	date, err := time.Parse(DateFormat, parts[2])
	if err != nil {
		return HoldKey{}, fmt.Errorf("%w: bad date in %q", ErrInvalidHoldKey, s)
	}

	slotTime, err := types.NewTimeStringFromString(parts[3])
	if err != nil {
		return HoldKey{}, fmt.Errorf("%w: bad time in %q", ErrInvalidHoldKey, s)
	}

	return HoldKey{
		ClinicID: clinicID,
		DoctorID: doctorID,
		Date:     date,
		Time:     slotTime,
	}, nil
}
