package sharing

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/vidapoint/vidapoint/pkg/apperr"
)

type mockRepo struct {
	requests map[uuid.UUID]*Request
}

func newMockRepo() *mockRepo {
	return &mockRepo{requests: make(map[uuid.UUID]*Request)}
}

func (m *mockRepo) Create(ctx context.Context, r *Request) error {
	r.RequestedAt = time.Now()
	m.requests[r.ID] = r
	return nil
}

func (m *mockRepo) GetByID(ctx context.Context, id uuid.UUID) (*Request, error) {
	r, ok := m.requests[id]
	if !ok {
		return nil, apperr.NotFound("sharing request not found")
	}
	copied := *r
	return &copied, nil
}

func (m *mockRepo) ListByUser(ctx context.Context, userID uuid.UUID, status string) ([]*Request, error) {
	var list []*Request
	for _, r := range m.requests {
		if r.UserID == userID && (status == "" || r.Status == status) {
			list = append(list, r)
		}
	}
	return list, nil
}

func (m *mockRepo) CountPending(ctx context.Context, userID uuid.UUID) (int, error) {
	count := 0
	for _, r := range m.requests {
		if r.UserID == userID && r.Status == StatusPending {
			count++
		}
	}
	return count, nil
}

func (m *mockRepo) Update(ctx context.Context, r *Request) error {
	if _, ok := m.requests[r.ID]; !ok {
		return apperr.NotFound("sharing request not found")
	}
	copied := *r
	m.requests[r.ID] = &copied
	return nil
}

type recordingNotifier struct {
	titles []string
}

func (n *recordingNotifier) Publish(ctx context.Context, userID uuid.UUID, kind, title, message string) error {
	n.titles = append(n.titles, title)
	return nil
}

func newTestService() (*Service, *mockRepo, *recordingNotifier) {
	repo := newMockRepo()
	notifier := &recordingNotifier{}
	return NewService(repo, notifier), repo, notifier
}

func createPending(t *testing.T, svc *Service, userID uuid.UUID) *Request {
	t.Helper()
	req, err := svc.Create(context.Background(), userID, completeWizard(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return req
}

func TestCreate(t *testing.T) {
	svc, repo, notifier := newTestService()
	userID := uuid.New()

	req := createPending(t, svc, userID)
	if req.Status != StatusPending {
		t.Errorf("expected pending, got %q", req.Status)
	}
	if req.ConsentMessage == "" {
		t.Error("expected consent message rendered")
	}
	if _, ok := repo.requests[req.ID]; !ok {
		t.Error("request not persisted")
	}
	if len(notifier.titles) != 1 || notifier.titles[0] != "Sharing request received" {
		t.Errorf("expected notification, got %v", notifier.titles)
	}
}

func TestApprove(t *testing.T) {
	svc, repo, _ := newTestService()
	userID := uuid.New()
	req := createPending(t, svc, userID)

	updated, err := svc.Approve(context.Background(), userID, req.ID, ConsentESignature)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Status != StatusApproved {
		t.Errorf("expected approved, got %q", updated.Status)
	}
	if updated.DecidedAt == nil || updated.ConsentMethod == nil {
		t.Errorf("expected decision metadata set: %+v", updated)
	}
	if updated.ExpiresAt == nil {
		t.Fatal("expected 30-day grant to carry an expiry")
	}
	wantExpiry := updated.DecidedAt.Add(30 * 24 * time.Hour)
	if !updated.ExpiresAt.Equal(wantExpiry) {
		t.Errorf("expected expiry %v, got %v", wantExpiry, updated.ExpiresAt)
	}
	if repo.requests[req.ID].Status != StatusApproved {
		t.Error("approval not persisted")
	}
}

func TestApprove_TerminalDecision(t *testing.T) {
	svc, _, _ := newTestService()
	userID := uuid.New()
	req := createPending(t, svc, userID)

	if _, err := svc.Decline(context.Background(), userID, req.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.Approve(context.Background(), userID, req.ID, ConsentESignature); !apperr.IsConflict(err) {
		t.Errorf("expected conflict approving a declined request, got %v", err)
	}
	if _, err := svc.Decline(context.Background(), userID, req.ID); !apperr.IsConflict(err) {
		t.Errorf("expected conflict declining twice, got %v", err)
	}
}

func TestApprove_UnknownConsentMethod(t *testing.T) {
	svc, _, _ := newTestService()
	userID := uuid.New()
	req := createPending(t, svc, userID)

	if _, err := svc.Approve(context.Background(), userID, req.ID, "verbal"); !apperr.IsValidation(err) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestApprove_NoExpiryForUntilRevoked(t *testing.T) {
	svc, _, _ := newTestService()
	userID := uuid.New()

	start, err := Begin("Clinic", []string{"prenatal"}, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	withPurpose, _ := start.SelectPurpose(PurposePrenatal)
	withAccess, _ := withPurpose.SelectAccessLevel(AccessAttendingOnly)
	withDuration, _ := withAccess.SelectDuration(DurationUntilRevoked)

	req, err := svc.Create(context.Background(), userID, withDuration.Finish())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	updated, err := svc.Approve(context.Background(), userID, req.ID, ConsentBiometric)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.ExpiresAt != nil {
		t.Errorf("expected no expiry for until-revoked, got %v", updated.ExpiresAt)
	}
}

func TestRevoke(t *testing.T) {
	svc, _, _ := newTestService()
	userID := uuid.New()
	req := createPending(t, svc, userID)

	// Pending requests cannot be revoked.
	if _, err := svc.Revoke(context.Background(), userID, req.ID); !apperr.IsConflict(err) {
		t.Errorf("expected conflict revoking pending request, got %v", err)
	}

	if _, err := svc.Approve(context.Background(), userID, req.ID, ConsentESignature); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	updated, err := svc.Revoke(context.Background(), userID, req.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Status != StatusRevoked || updated.ExpiresAt == nil {
		t.Errorf("expected revoked with expiry now, got %+v", updated)
	}
}

func TestGet_OtherUsersRequest(t *testing.T) {
	svc, _, _ := newTestService()
	req := createPending(t, svc, uuid.New())

	if _, err := svc.Get(context.Background(), uuid.New(), req.ID); !apperr.IsNotFound(err) {
		t.Errorf("expected not-found for foreign request, got %v", err)
	}
}

func TestPendingCount(t *testing.T) {
	svc, _, _ := newTestService()
	userID := uuid.New()
	first := createPending(t, svc, userID)
	createPending(t, svc, userID)
	createPending(t, svc, uuid.New())

	count, err := svc.PendingCount(context.Background(), userID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 pending, got %d", count)
	}

	if _, err := svc.Decline(context.Background(), userID, first.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	count, _ = svc.PendingCount(context.Background(), userID)
	if count != 1 {
		t.Errorf("expected 1 pending after decline, got %d", count)
	}
}

func TestList_StatusFilter(t *testing.T) {
	svc, _, _ := newTestService()
	userID := uuid.New()
	req := createPending(t, svc, userID)
	createPending(t, svc, userID)
	if _, err := svc.Approve(context.Background(), userID, req.ID, ConsentESignature); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	approved, err := svc.List(context.Background(), userID, StatusApproved)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(approved) != 1 {
		t.Errorf("expected 1 approved, got %d", len(approved))
	}

	if _, err := svc.List(context.Background(), userID, "archived"); !apperr.IsValidation(err) {
		t.Errorf("expected validation error for bad filter, got %v", err)
	}
}
