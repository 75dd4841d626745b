package clinics

import (
	"context"

	"github.com/google/uuid"

	"github.com/vidapoint/vidapoint/pkg/pagination"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, search string, p pagination.Params) ([]*Clinic, int, error) {
	return s.repo.ListClinics(ctx, search, p)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Clinic, error) {
	return s.repo.GetClinic(ctx, id)
}

func (s *Service) GetByCode(ctx context.Context, code string) (*Clinic, error) {
	return s.repo.GetClinicByCode(ctx, code)
}

func (s *Service) Doctors(ctx context.Context, clinicID uuid.UUID) ([]*Doctor, error) {
	return s.repo.ListDoctors(ctx, clinicID)
}

func (s *Service) DoctorByCode(ctx context.Context, code string) (*Doctor, error) {
	return s.repo.GetDoctorByCode(ctx, code)
}
