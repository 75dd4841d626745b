package records

import (
	"context"

	"github.com/google/uuid"

	"github.com/vidapoint/vidapoint/pkg/apperr"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListPrenatal(ctx context.Context, userID uuid.UUID) ([]*PrenatalRecord, error) {
	return s.repo.ListPrenatal(ctx, userID)
}

func (s *Service) GetPrenatal(ctx context.Context, userID, id uuid.UUID) (*PrenatalRecord, error) {
	p, err := s.repo.GetPrenatal(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.UserID != userID {
		return nil, apperr.NotFound("prenatal record not found")
	}
	return p, nil
}

func (s *Service) CreatePrenatal(ctx context.Context, p *PrenatalRecord) error {
	if p.UserID == uuid.Nil {
		return apperr.Validation("user_id is required")
	}
	if p.VisitDate.IsZero() {
		return apperr.Validation("visit_date is required")
	}
	if p.ProviderName == "" {
		return apperr.Validation("provider_name is required")
	}
	p.ID = uuid.New()
	return s.repo.CreatePrenatal(ctx, p)
}

func (s *Service) ListLabResults(ctx context.Context, userID uuid.UUID) ([]*LabResult, error) {
	return s.repo.ListLabResults(ctx, userID)
}

func (s *Service) GetLabResult(ctx context.Context, userID, id uuid.UUID) (*LabResult, error) {
	l, err := s.repo.GetLabResult(ctx, id)
	if err != nil {
		return nil, err
	}
	if l.UserID != userID {
		return nil, apperr.NotFound("lab result not found")
	}
	return l, nil
}

func (s *Service) CreateLabResult(ctx context.Context, l *LabResult) error {
	if l.UserID == uuid.Nil {
		return apperr.Validation("user_id is required")
	}
	if l.TestName == "" {
		return apperr.Validation("test_name is required")
	}
	if l.TestDate.IsZero() {
		return apperr.Validation("test_date is required")
	}
	l.ID = uuid.New()
	return s.repo.CreateLabResult(ctx, l)
}

func (s *Service) ListVaccinations(ctx context.Context, userID uuid.UUID) ([]*Vaccination, error) {
	return s.repo.ListVaccinations(ctx, userID)
}

func (s *Service) CreateVaccination(ctx context.Context, v *Vaccination) error {
	if v.UserID == uuid.Nil {
		return apperr.Validation("user_id is required")
	}
	if v.Vaccine == "" {
		return apperr.Validation("vaccine is required")
	}
	if v.GivenDate.IsZero() {
		return apperr.Validation("given_date is required")
	}
	v.ID = uuid.New()
	return s.repo.CreateVaccination(ctx, v)
}

// Counts returns per-type record totals for the dashboard.
func (s *Service) Counts(ctx context.Context, userID uuid.UUID) (map[string]int, error) {
	prenatal, err := s.repo.ListPrenatal(ctx, userID)
	if err != nil {
		return nil, err
	}
	labs, err := s.repo.ListLabResults(ctx, userID)
	if err != nil {
		return nil, err
	}
	vaccines, err := s.repo.ListVaccinations(ctx, userID)
	if err != nil {
		return nil, err
	}
	return map[string]int{
		TypePrenatal: len(prenatal),
		TypeLab:      len(labs),
		TypeVaccines: len(vaccines),
	}, nil
}
