package consultation

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// SlotUsage is the number of seats taken in one (date, slot) pair.
type SlotUsage struct {
	Date     time.Time
	TimeSlot string
	Booked   int
}

type Repository interface {
	Create(ctx context.Context, c *Consultation) error
	GetByID(ctx context.Context, id uuid.UUID) (*Consultation, error)
	List(ctx context.Context, q *ListConsultationsQuery) (*PagedConsultations, error)

	// UpdateStatus persists a status change made on the aggregate.
	UpdateStatus(ctx context.Context, c *Consultation) error

	// CountBooked returns how many occupied consultations hold the given
	// (doctor, date, slot). Cancelled and no-show visits do not count.
	CountBooked(ctx context.Context, doctorID uuid.UUID, date time.Time, timeSlot string) (int, error)

	// UsageByDoctor aggregates occupied seat counts per (date, slot) for a
	// doctor from a given date onward, for capacity subtraction in bulk.
	UsageByDoctor(ctx context.Context, doctorID uuid.UUID, from time.Time) ([]SlotUsage, error)

	// UsageByDate does the same for every doctor on one exact date, keyed
	// additionally by doctor.
	UsageByDate(ctx context.Context, date time.Time) (map[uuid.UUID][]SlotUsage, error)
}
