package sharing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/vidapoint/vidapoint/pkg/apperr"
)

// Notifier receives user-facing events from the sharing flow.
type Notifier interface {
	Publish(ctx context.Context, userID uuid.UUID, kind, title, message string) error
}

type Service struct {
	repo     Repository
	notifier Notifier
	now      func() time.Time
}

func NewService(repo Repository, notifier Notifier) *Service {
	return &Service{repo: repo, notifier: notifier, now: time.Now}
}

// Create stores a pending request from a completed wizard selection.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, ready ReadyToSign) (*Request, error) {
	if userID == uuid.Nil {
		return nil, apperr.Validation("user_id is required")
	}
	req := &Request{
		ID:             uuid.New(),
		UserID:         userID,
		FacilityName:   ready.FacilityName,
		Purpose:        ready.Purpose,
		RecordTypes:    ready.RecordTypes,
		AccessLevel:    ready.AccessLevel,
		Duration:       ready.Duration,
		Status:         StatusPending,
		ConsentMessage: ready.ConsentText(),
		Urgent:         ready.Urgent,
	}
	if err := s.repo.Create(ctx, req); err != nil {
		return nil, err
	}
	s.notify(ctx, userID, "Sharing request received",
		req.FacilityName+" has requested access to your records.")
	return req, nil
}

func (s *Service) Get(ctx context.Context, userID, id uuid.UUID) (*Request, error) {
	req, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.UserID != userID {
		return nil, apperr.NotFound("sharing request not found")
	}
	return req, nil
}

func (s *Service) List(ctx context.Context, userID uuid.UUID, status string) ([]*Request, error) {
	if status != "" && status != StatusPending && status != StatusApproved &&
		status != StatusDeclined && status != StatusRevoked {
		return nil, apperr.Validation("invalid status filter %q", status)
	}
	return s.repo.ListByUser(ctx, userID, status)
}

func (s *Service) PendingCount(ctx context.Context, userID uuid.UUID) (int, error) {
	return s.repo.CountPending(ctx, userID)
}

// Approve signs a pending request. The decision is terminal; approving a
// request that is no longer pending is a conflict.
func (s *Service) Approve(ctx context.Context, userID, id uuid.UUID, consentMethod string) (*Request, error) {
	if !validConsentMethods[consentMethod] {
		return nil, apperr.Validation("unknown consent method %q", consentMethod)
	}
	req, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if req.Status != StatusPending {
		return nil, apperr.Conflict("request is already %s", req.Status)
	}

	decided := s.now()
	req.Status = StatusApproved
	req.ConsentMethod = &consentMethod
	req.DecidedAt = &decided
	req.ExpiresAt = expiryFor(req.Duration, decided)
	if err := s.repo.Update(ctx, req); err != nil {
		return nil, err
	}
	s.notify(ctx, userID, "Sharing approved",
		"You approved record access for "+req.FacilityName+".")
	return req, nil
}

// Decline refuses a pending request. Also terminal.
func (s *Service) Decline(ctx context.Context, userID, id uuid.UUID) (*Request, error) {
	req, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if req.Status != StatusPending {
		return nil, apperr.Conflict("request is already %s", req.Status)
	}

	decided := s.now()
	req.Status = StatusDeclined
	req.DecidedAt = &decided
	if err := s.repo.Update(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

// Revoke ends an approved grant early. Only approved requests can be
// revoked.
func (s *Service) Revoke(ctx context.Context, userID, id uuid.UUID) (*Request, error) {
	req, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if req.Status != StatusApproved {
		return nil, apperr.Conflict("only approved requests can be revoked")
	}

	now := s.now()
	req.Status = StatusRevoked
	req.ExpiresAt = &now
	if err := s.repo.Update(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

func (s *Service) notify(ctx context.Context, userID uuid.UUID, title, message string) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Publish(ctx, userID, "sharing", title, message); err != nil {
		log.Error().Err(err).Msg("failed to publish sharing notification")
	}
}
