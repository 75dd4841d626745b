package settings

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/vidapoint/vidapoint/pkg/apperr"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetPreferences(ctx context.Context, userID uuid.UUID) (*Preferences, error) {
	return s.repo.GetPreferences(ctx, userID)
}

func (s *Service) UpdatePreferences(ctx context.Context, p *Preferences) error {
	if p.UserID == uuid.Nil {
		return apperr.Validation("user_id is required")
	}
	return s.repo.UpsertPreferences(ctx, p)
}

func (s *Service) SubmitBugReport(ctx context.Context, userID uuid.UUID, description string) (*BugReport, error) {
	if strings.TrimSpace(description) == "" {
		return nil, apperr.Validation("description is required")
	}
	rep := &BugReport{
		ID:          uuid.New(),
		UserID:      userID,
		Description: description,
		Status:      BugStatusOpen,
	}
	if err := s.repo.CreateBugReport(ctx, rep); err != nil {
		return nil, err
	}
	return rep, nil
}

func (s *Service) ListBugReports(ctx context.Context, userID uuid.UUID) ([]*BugReport, error) {
	return s.repo.ListBugReports(ctx, userID)
}
