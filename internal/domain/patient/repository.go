package patient

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	// Create persists a new patient. Returns ErrPatientAlreadyExists on a
	// duplicate phone number.
	Create(ctx context.Context, p *Patient) error

	// GetByID retrieves a patient by primary key. Returns ErrPatientNotFound
	// if not found.
	GetByID(ctx context.Context, id uuid.UUID) (*Patient, error)

	// GetByPhone retrieves a patient by their phone number.
	GetByPhone(ctx context.Context, phone string) (*Patient, error)

	// SoftDelete marks the patient as deleted; history stays queryable.
	SoftDelete(ctx context.Context, id uuid.UUID) error

	// List returns a paginated, filtered list of patients.
	List(ctx context.Context, q *ListPatientsQuery) (*PagedPatients, error)

	// ExistsByPhone checks for uniqueness without fetching the full record.
	ExistsByPhone(ctx context.Context, phone string, excludeID *uuid.UUID) (bool, error)
}
