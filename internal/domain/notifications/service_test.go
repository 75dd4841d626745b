package notifications

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/vidapoint/vidapoint/pkg/apperr"
)

type mockRepo struct {
	notifications map[uuid.UUID]*Notification
}

func newMockRepo() *mockRepo {
	return &mockRepo{notifications: make(map[uuid.UUID]*Notification)}
}

func (m *mockRepo) Create(ctx context.Context, n *Notification) error {
	n.CreatedAt = time.Now()
	m.notifications[n.ID] = n
	return nil
}

func (m *mockRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*Notification, error) {
	var list []*Notification
	for _, n := range m.notifications {
		if n.UserID == userID {
			list = append(list, n)
		}
	}
	return list, nil
}

func (m *mockRepo) CountUnread(ctx context.Context, userID uuid.UUID) (int, error) {
	count := 0
	for _, n := range m.notifications {
		if n.UserID == userID && !n.Read {
			count++
		}
	}
	return count, nil
}

func (m *mockRepo) MarkRead(ctx context.Context, userID, id uuid.UUID) error {
	n, ok := m.notifications[id]
	if !ok || n.UserID != userID {
		return apperr.NotFound("notification not found")
	}
	n.Read = true
	return nil
}

func (m *mockRepo) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	for _, n := range m.notifications {
		if n.UserID == userID {
			n.Read = true
		}
	}
	return nil
}

func (m *mockRepo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	n, ok := m.notifications[id]
	if !ok || n.UserID != userID {
		return apperr.NotFound("notification not found")
	}
	delete(m.notifications, id)
	return nil
}

func TestPublishAndUnreadCount(t *testing.T) {
	svc := NewService(newMockRepo())
	userID := uuid.New()
	ctx := context.Background()

	if err := svc.Publish(ctx, userID, KindAppointment, "Appointment requested", "..."); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.Publish(ctx, userID, KindSharing, "Sharing request received", "..."); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	count, err := svc.UnreadCount(ctx, userID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 unread, got %d", count)
	}
}

func TestPublish_Validation(t *testing.T) {
	svc := NewService(newMockRepo())
	ctx := context.Background()

	if err := svc.Publish(ctx, uuid.Nil, KindAppointment, "t", "m"); !apperr.IsValidation(err) {
		t.Errorf("expected validation error, got %v", err)
	}
	if err := svc.Publish(ctx, uuid.New(), "gossip", "t", "m"); !apperr.IsValidation(err) {
		t.Errorf("expected validation error for unknown kind, got %v", err)
	}
	if err := svc.Publish(ctx, uuid.New(), KindAppointment, "", "m"); !apperr.IsValidation(err) {
		t.Errorf("expected validation error for empty title, got %v", err)
	}
}

func TestMarkReadFlow(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	userID := uuid.New()
	ctx := context.Background()

	if err := svc.Publish(ctx, userID, KindRecord, "New lab result", "..."); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	list, err := svc.List(ctx, userID)
	if err != nil || len(list) != 1 {
		t.Fatalf("expected one entry, got %v (%v)", list, err)
	}

	if err := svc.MarkRead(ctx, userID, list[0].ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	count, _ := svc.UnreadCount(ctx, userID)
	if count != 0 {
		t.Errorf("expected 0 unread, got %d", count)
	}

	// Another user cannot touch the entry.
	if err := svc.MarkRead(ctx, uuid.New(), list[0].ID); !apperr.IsNotFound(err) {
		t.Errorf("expected not-found for foreign entry, got %v", err)
	}
	if err := svc.Delete(ctx, uuid.New(), list[0].ID); !apperr.IsNotFound(err) {
		t.Errorf("expected not-found for foreign delete, got %v", err)
	}

	if err := svc.Delete(ctx, userID, list[0].ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	list, _ = svc.List(ctx, userID)
	if len(list) != 0 {
		t.Errorf("expected empty feed after delete, got %v", list)
	}
}

func TestMarkAllRead(t *testing.T) {
	svc := NewService(newMockRepo())
	userID := uuid.New()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := svc.Publish(ctx, userID, KindArticle, "New article", "..."); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if err := svc.MarkAllRead(ctx, userID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	count, _ := svc.UnreadCount(ctx, userID)
	if count != 0 {
		t.Errorf("expected 0 unread, got %d", count)
	}
}
