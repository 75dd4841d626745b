package records

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/vidapoint/vidapoint/pkg/apperr"
)

type mockRepo struct {
	prenatal     map[uuid.UUID]*PrenatalRecord
	labs         map[uuid.UUID]*LabResult
	vaccinations map[uuid.UUID]*Vaccination
}

func newMockRepo() *mockRepo {
	return &mockRepo{
		prenatal:     make(map[uuid.UUID]*PrenatalRecord),
		labs:         make(map[uuid.UUID]*LabResult),
		vaccinations: make(map[uuid.UUID]*Vaccination),
	}
}

func (m *mockRepo) ListPrenatal(ctx context.Context, userID uuid.UUID) ([]*PrenatalRecord, error) {
	var list []*PrenatalRecord
	for _, p := range m.prenatal {
		if p.UserID == userID {
			list = append(list, p)
		}
	}
	return list, nil
}

func (m *mockRepo) GetPrenatal(ctx context.Context, id uuid.UUID) (*PrenatalRecord, error) {
	p, ok := m.prenatal[id]
	if !ok {
		return nil, apperr.NotFound("prenatal record not found")
	}
	return p, nil
}

func (m *mockRepo) CreatePrenatal(ctx context.Context, p *PrenatalRecord) error {
	m.prenatal[p.ID] = p
	return nil
}

func (m *mockRepo) ListLabResults(ctx context.Context, userID uuid.UUID) ([]*LabResult, error) {
	var list []*LabResult
	for _, l := range m.labs {
		if l.UserID == userID {
			list = append(list, l)
		}
	}
	return list, nil
}

func (m *mockRepo) GetLabResult(ctx context.Context, id uuid.UUID) (*LabResult, error) {
	l, ok := m.labs[id]
	if !ok {
		return nil, apperr.NotFound("lab result not found")
	}
	return l, nil
}

func (m *mockRepo) CreateLabResult(ctx context.Context, l *LabResult) error {
	m.labs[l.ID] = l
	return nil
}

func (m *mockRepo) ListVaccinations(ctx context.Context, userID uuid.UUID) ([]*Vaccination, error) {
	var list []*Vaccination
	for _, v := range m.vaccinations {
		if v.UserID == userID {
			list = append(list, v)
		}
	}
	return list, nil
}

func (m *mockRepo) CreateVaccination(ctx context.Context, v *Vaccination) error {
	m.vaccinations[v.ID] = v
	return nil
}

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestCreatePrenatal(t *testing.T) {
	svc := NewService(newMockRepo())
	p := &PrenatalRecord{
		UserID:          uuid.New(),
		VisitDate:       date("2025-02-10"),
		GestationalWeek: 18,
		ProviderName:    "Dr. Reyes",
	}
	if err := svc.CreatePrenatal(context.Background(), p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ID == uuid.Nil {
		t.Error("expected id assigned")
	}
}

func TestCreatePrenatal_MissingFields(t *testing.T) {
	svc := NewService(newMockRepo())
	cases := []*PrenatalRecord{
		{VisitDate: date("2025-02-10"), ProviderName: "Dr. Reyes"},
		{UserID: uuid.New(), ProviderName: "Dr. Reyes"},
		{UserID: uuid.New(), VisitDate: date("2025-02-10")},
	}
	for i, p := range cases {
		if err := svc.CreatePrenatal(context.Background(), p); !apperr.IsValidation(err) {
			t.Errorf("case %d: expected validation error, got %v", i, err)
		}
	}
}

func TestGetPrenatal_OtherUsersRecord(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	owner := uuid.New()
	p := &PrenatalRecord{UserID: owner, VisitDate: date("2025-02-10"), ProviderName: "Dr. Reyes"}
	if err := svc.CreatePrenatal(context.Background(), p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := svc.GetPrenatal(context.Background(), uuid.New(), p.ID); !apperr.IsNotFound(err) {
		t.Errorf("expected not-found for foreign record, got %v", err)
	}
	got, err := svc.GetPrenatal(context.Background(), owner, p.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != p.ID {
		t.Errorf("expected record %s, got %s", p.ID, got.ID)
	}
}

func TestCreateLabResult(t *testing.T) {
	svc := NewService(newMockRepo())
	l := &LabResult{
		UserID:   uuid.New(),
		TestName: "Complete Blood Count",
		TestDate: date("2025-02-12"),
		Status:   "final",
		Values: map[string]LabValue{
			"Hemoglobin": {Value: "11.8", Unit: "g/dL", Reference: "11.0-15.0"},
		},
		ProviderName: "Central Lab",
	}
	if err := svc.CreateLabResult(context.Background(), l); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if l.ID == uuid.Nil {
		t.Error("expected id assigned")
	}
}

func TestCounts(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	userID := uuid.New()
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		p := &PrenatalRecord{UserID: userID, VisitDate: date("2025-02-10"), ProviderName: "Dr. Reyes"}
		if err := svc.CreatePrenatal(ctx, p); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	v := &Vaccination{UserID: userID, Vaccine: "Tdap", DoseLabel: "Dose 1", GivenDate: date("2025-01-20"), AdministeredBy: "Nurse Diaz"}
	if err := svc.CreateVaccination(ctx, v); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	counts, err := svc.Counts(ctx, userID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if counts[TypePrenatal] != 2 || counts[TypeLab] != 0 || counts[TypeVaccines] != 1 {
		t.Errorf("unexpected counts: %v", counts)
	}
}
