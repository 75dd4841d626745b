package clinics

import (
	"context"

	"github.com/google/uuid"

	"github.com/vidapoint/vidapoint/pkg/pagination"
)

// Repository reads the clinic directory. The directory is reference data,
// writes happen through migrations and seeding only.
type Repository interface {
	ListClinics(ctx context.Context, search string, p pagination.Params) ([]*Clinic, int, error)
	GetClinic(ctx context.Context, id uuid.UUID) (*Clinic, error)
	GetClinicByCode(ctx context.Context, code string) (*Clinic, error)
	ListDoctors(ctx context.Context, clinicID uuid.UUID) ([]*Doctor, error)
	GetDoctorByCode(ctx context.Context, code string) (*Doctor, error)
}
