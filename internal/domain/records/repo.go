package records

import (
	"context"

	"github.com/google/uuid"
)

// Repository persists health records. Creation is provider-side; it is
// exposed for seeding and future facility integrations.
type Repository interface {
	ListPrenatal(ctx context.Context, userID uuid.UUID) ([]*PrenatalRecord, error)
	GetPrenatal(ctx context.Context, id uuid.UUID) (*PrenatalRecord, error)
	CreatePrenatal(ctx context.Context, r *PrenatalRecord) error

	ListLabResults(ctx context.Context, userID uuid.UUID) ([]*LabResult, error)
	GetLabResult(ctx context.Context, id uuid.UUID) (*LabResult, error)
	CreateLabResult(ctx context.Context, r *LabResult) error

	ListVaccinations(ctx context.Context, userID uuid.UUID) ([]*Vaccination, error)
	CreateVaccination(ctx context.Context, v *Vaccination) error
}
