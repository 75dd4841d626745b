package maternity

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/vidapoint/vidapoint/pkg/apperr"
)

type Service struct {
	profiles ProfileRepository
}

func NewService(profiles ProfileRepository) *Service {
	return &Service{profiles: profiles}
}

func (s *Service) GetProfile(ctx context.Context, userID uuid.UUID) (*Profile, error) {
	p, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, apperr.NotFound("pregnancy profile not found")
	}
	return p, nil
}

func (s *Service) UpsertProfile(ctx context.Context, p *Profile) error {
	if p.UserID == uuid.Nil {
		return apperr.Validation("user_id is required")
	}
	if p.IsPregnant && p.LastMenstruationDate == nil && p.DoctorDueDate == nil {
		return apperr.Validation("a last menstruation date or doctor due date is required when pregnant")
	}
	return s.profiles.Upsert(ctx, p)
}

// Progress derives the current week, trimester, and effective due date for a
// user. A missing profile is not an error for the dashboard: it reads as
// week 0, first trimester, matching the not-pregnant rendering.
func (s *Service) Progress(ctx context.Context, userID uuid.UUID, now time.Time) (*Progress, error) {
	p, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		p = nil
	}
	weekNum := GestationalWeek(p, now)
	return &Progress{
		Week:      weekNum,
		Trimester: Trimester(weekNum),
		DueDate:   DueDate(p),
	}, nil
}
