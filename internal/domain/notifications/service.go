package notifications

import (
	"context"

	"github.com/google/uuid"

	"github.com/vidapoint/vidapoint/pkg/apperr"
)

// Service is the in-app feed. It also satisfies the Publisher shape the
// booking and sharing services depend on.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Publish appends an entry to the user's feed.
func (s *Service) Publish(ctx context.Context, userID uuid.UUID, kind, title, message string) error {
	if userID == uuid.Nil {
		return apperr.Validation("user_id is required")
	}
	if !validKinds[kind] {
		return apperr.Validation("unknown notification kind %q", kind)
	}
	if title == "" {
		return apperr.Validation("title is required")
	}
	return s.repo.Create(ctx, &Notification{
		ID:      uuid.New(),
		UserID:  userID,
		Kind:    kind,
		Title:   title,
		Message: message,
	})
}

func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]*Notification, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *Service) UnreadCount(ctx context.Context, userID uuid.UUID) (int, error) {
	return s.repo.CountUnread(ctx, userID)
}

func (s *Service) MarkRead(ctx context.Context, userID, id uuid.UUID) error {
	return s.repo.MarkRead(ctx, userID, id)
}

func (s *Service) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	return s.repo.MarkAllRead(ctx, userID)
}

func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return s.repo.Delete(ctx, userID, id)
}
