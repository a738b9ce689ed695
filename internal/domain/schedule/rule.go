package schedule

import (
	"time"

	"github.com/google/uuid"
)

// Mode is how a consultation takes place.
type Mode string

const (
	ModeInPerson Mode = "In-Person"
	ModeCall     Mode = "Call"
)

func (m Mode) IsValid() bool {
	switch m {
	case ModeInPerson, ModeCall:
		return true
	}
	return false
}

// WeekdaySet marks which weekdays an availability rule covers,
// indexed by time.Weekday (Sunday == 0).
type WeekdaySet [7]bool

// None reports whether no weekday is active.
func (w WeekdaySet) None() bool {
	for _, on := range w {
		if on {
			return false
		}
	}
	return true
}

// AvailabilityRule is a staff-authored description of when and how a doctor
// can be booked. One rule expands into concrete schedule entries.
type AvailabilityRule struct {
	DoctorID        uuid.UUID
	FromDate        time.Time
	ToDate          time.Time
	FromSlot        string
	ToSlot          string
	ActiveWeekdays  WeekdaySet
	Mode            Mode
	CapacityPerSlot int
}

// Validate checks the rule's shape and resolves its slot range against the
// catalog. It runs before any generation or persistence so an invalid rule
// can never leave a partial schedule behind.
func (r *AvailabilityRule) Validate() (fromIdx, toIdx int, err error) {
	fromIdx, err = CatalogIndex(r.FromSlot)
	if err != nil {
		return 0, 0, err
	}
	toIdx, err = CatalogIndex(r.ToSlot)
	if err != nil {
		return 0, 0, err
	}
	if fromIdx > toIdx {
		return 0, 0, ErrInvalidRange
	}
	if r.FromDate.IsZero() || r.ToDate.IsZero() || DateOnly(r.FromDate).After(DateOnly(r.ToDate)) {
		return 0, 0, ErrInvalidRange
	}
	if !r.Mode.IsValid() {
		return 0, 0, ErrUnknownMode
	}
	if r.CapacityPerSlot < 0 {
		return 0, 0, ErrInvalidCapacity
	}
	return fromIdx, toIdx, nil
}

// DateOnly strips the time-of-day component. All schedule dates are stored
// as midnight UTC so equality checks never trip over clock components.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
