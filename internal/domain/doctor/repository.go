package doctor

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	// Create persists a new doctor. Returns ErrDoctorAlreadyExists on a
	// duplicate email.
	Create(ctx context.Context, d *Doctor) error

	// GetByID retrieves a doctor by primary key. Returns ErrDoctorNotFound
	// if not found.
	GetByID(ctx context.Context, id uuid.UUID) (*Doctor, error)

	// GetByIDs retrieves several doctors at once, for the date-first picker.
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*Doctor, error)

	// List returns a paginated, filtered list of doctors.
	List(ctx context.Context, q *ListDoctorsQuery) (*PagedDoctors, error)

	// Deactivate marks the doctor inactive without deleting history.
	Deactivate(ctx context.Context, id uuid.UUID) error
}
