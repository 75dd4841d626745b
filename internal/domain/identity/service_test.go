package identity

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/vidapoint/vidapoint/internal/platform/auth"
	"github.com/vidapoint/vidapoint/internal/platform/notification"
	"github.com/vidapoint/vidapoint/pkg/apperr"
)

type mockUserRepo struct {
	users map[uuid.UUID]*User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[uuid.UUID]*User)}
}

func (m *mockUserRepo) Create(ctx context.Context, u *User) error {
	m.users[u.ID] = u
	return nil
}

func (m *mockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, apperr.NotFound("user not found")
	}
	return u, nil
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, apperr.NotFound("user not found")
}

func (m *mockUserRepo) GetByPhone(ctx context.Context, phone string) (*User, error) {
	for _, u := range m.users {
		if u.Phone == phone {
			return u, nil
		}
	}
	return nil, apperr.NotFound("user not found")
}

func (m *mockUserRepo) Update(ctx context.Context, u *User) error {
	if _, ok := m.users[u.ID]; !ok {
		return apperr.NotFound("user not found")
	}
	m.users[u.ID] = u
	return nil
}

type mockOTPStore struct {
	verifications map[string]*PhoneVerification
}

func newMockOTPStore() *mockOTPStore {
	return &mockOTPStore{verifications: make(map[string]*PhoneVerification)}
}

func (m *mockOTPStore) Upsert(ctx context.Context, v *PhoneVerification) error {
	copied := *v
	m.verifications[v.Phone] = &copied
	return nil
}

func (m *mockOTPStore) Get(ctx context.Context, phone string) (*PhoneVerification, error) {
	v, ok := m.verifications[phone]
	if !ok {
		return nil, apperr.NotFound("no verification in progress for this phone")
	}
	copied := *v
	return &copied, nil
}

func newTestService() (*Service, *mockUserRepo, *mockOTPStore, *notification.MockSMSSender) {
	users := newMockUserRepo()
	otps := newMockOTPStore()
	sms := &notification.MockSMSSender{}
	outbound := notification.NewDispatcher(&notification.MockEmailSender{}, sms, notification.NewTemplateEngine())
	tokens := auth.NewTokenIssuer([]byte("test-secret-that-is-long-enough!"), "vidapoint-test", time.Hour)
	return NewService(users, otps, outbound, tokens), users, otps, sms
}

func TestSendCode(t *testing.T) {
	svc, _, otps, sms := newTestService()

	if err := svc.SendCode(context.Background(), "+15550100"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v, ok := otps.verifications["+15550100"]
	if !ok {
		t.Fatal("expected verification stored")
	}
	if len(v.Code) != 6 || v.Verified {
		t.Errorf("unexpected verification state: %+v", v)
	}
	calls := sms.Calls()
	if len(calls) != 1 || calls[0].To != "+15550100" {
		t.Fatalf("expected one SMS to the phone, got %+v", calls)
	}
	if !strings.Contains(calls[0].Body, v.Code) {
		t.Errorf("expected rendered code in SMS body, got %q", calls[0].Body)
	}
}

func TestSendCode_MissingPhone(t *testing.T) {
	svc, _, _, _ := newTestService()
	if err := svc.SendCode(context.Background(), "  "); !apperr.IsValidation(err) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestVerifyCode(t *testing.T) {
	svc, _, otps, _ := newTestService()
	ctx := context.Background()

	if err := svc.SendCode(ctx, "+15550100"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	code := otps.verifications["+15550100"].Code

	if err := svc.VerifyCode(ctx, "+15550100", code); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v := otps.verifications["+15550100"]
	if !v.Verified || v.Code != "" {
		t.Errorf("expected verified with cleared code, got %+v", v)
	}

	// Single use: the same code cannot verify again.
	if err := svc.VerifyCode(ctx, "+15550100", code); !apperr.IsValidation(err) {
		t.Errorf("expected validation error reusing code, got %v", err)
	}
}

func TestVerifyCode_WrongCodeCountsAttempt(t *testing.T) {
	svc, _, otps, _ := newTestService()
	ctx := context.Background()

	if err := svc.SendCode(ctx, "+15550100"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.VerifyCode(ctx, "+15550100", "000000x"); !apperr.IsValidation(err) {
		t.Errorf("expected validation error, got %v", err)
	}
	if got := otps.verifications["+15550100"].Attempts; got != 1 {
		t.Errorf("expected 1 attempt recorded, got %d", got)
	}
}

func TestVerifyCode_TooManyAttempts(t *testing.T) {
	svc, _, otps, _ := newTestService()
	ctx := context.Background()

	if err := svc.SendCode(ctx, "+15550100"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	code := otps.verifications["+15550100"].Code
	wrong := "000000"
	if wrong == code {
		wrong = "000001"
	}
	for i := 0; i < MaxOTPAttempts; i++ {
		if err := svc.VerifyCode(ctx, "+15550100", wrong); !apperr.IsValidation(err) {
			t.Fatalf("expected validation error, got %v", err)
		}
	}
	// Even the right code is refused now.
	if err := svc.VerifyCode(ctx, "+15550100", code); !apperr.IsValidation(err) {
		t.Errorf("expected lockout after %d attempts, got %v", MaxOTPAttempts, err)
	}
}

func TestVerifyCode_Expired(t *testing.T) {
	svc, _, otps, _ := newTestService()
	ctx := context.Background()

	otps.verifications["+15550100"] = &PhoneVerification{
		Phone:     "+15550100",
		Code:      "123456",
		ExpiresAt: time.Now().Add(-time.Minute),
	}
	if err := svc.VerifyCode(ctx, "+15550100", "123456"); !apperr.IsValidation(err) {
		t.Errorf("expected validation error for expired code, got %v", err)
	}
}

func signupInput(phone string) SignupInput {
	return SignupInput{
		FullName: "Maria Gonzalez",
		Email:    "maria@example.com",
		Phone:    phone,
		Password: "correct-horse",
	}
}

func verifyPhone(t *testing.T, svc *Service, otps *mockOTPStore, phone string) {
	t.Helper()
	ctx := context.Background()
	if err := svc.SendCode(ctx, phone); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.VerifyCode(ctx, phone, otps.verifications[phone].Code); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSignup(t *testing.T) {
	svc, users, otps, _ := newTestService()
	verifyPhone(t, svc, otps, "+15550100")

	u, err := svc.Signup(context.Background(), signupInput("+15550100"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !u.PhoneVerified {
		t.Error("expected phone marked verified")
	}
	if u.PasswordHash == "" || u.PasswordHash == "correct-horse" {
		t.Error("expected password stored hashed")
	}
	if _, ok := users.users[u.ID]; !ok {
		t.Error("user not persisted")
	}
}

func TestSignup_UnverifiedPhone(t *testing.T) {
	svc, _, _, _ := newTestService()
	_, err := svc.Signup(context.Background(), signupInput("+15550100"))
	if !apperr.IsValidation(err) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestSignup_DuplicateEmail(t *testing.T) {
	svc, _, otps, _ := newTestService()
	verifyPhone(t, svc, otps, "+15550100")
	if _, err := svc.Signup(context.Background(), signupInput("+15550100")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	verifyPhone(t, svc, otps, "+15550101")
	_, err := svc.Signup(context.Background(), signupInput("+15550101"))
	if !apperr.IsConflict(err) {
		t.Errorf("expected conflict for duplicate email, got %v", err)
	}
}

func TestSignup_ShortPassword(t *testing.T) {
	svc, _, otps, _ := newTestService()
	verifyPhone(t, svc, otps, "+15550100")

	in := signupInput("+15550100")
	in.Password = "short"
	if _, err := svc.Signup(context.Background(), in); !apperr.IsValidation(err) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	svc, _, otps, _ := newTestService()
	verifyPhone(t, svc, otps, "+15550100")
	if _, err := svc.Signup(context.Background(), signupInput("+15550100")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	token, u, err := svc.Login(context.Background(), "maria@example.com", "correct-horse")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token == "" || u == nil {
		t.Fatal("expected token and user")
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _, otps, _ := newTestService()
	verifyPhone(t, svc, otps, "+15550100")
	if _, err := svc.Signup(context.Background(), signupInput("+15550100")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, _, err := svc.Login(context.Background(), "maria@example.com", "wrong")
	if !apperr.IsUnauthorized(err) {
		t.Errorf("expected unauthorized, got %v", err)
	}
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc, _, _, _ := newTestService()
	_, _, err := svc.Login(context.Background(), "nobody@example.com", "whatever")
	if !apperr.IsUnauthorized(err) {
		t.Errorf("expected unauthorized, got %v", err)
	}
}

func TestUpdateProfile_PreservesCredentials(t *testing.T) {
	svc, users, otps, _ := newTestService()
	verifyPhone(t, svc, otps, "+15550100")
	u, err := svc.Signup(context.Background(), signupInput("+15550100"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	update := &User{ID: u.ID, FullName: "Maria G. Lopez"}
	if err := svc.UpdateProfile(context.Background(), update); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	stored := users.users[u.ID]
	if stored.FullName != "Maria G. Lopez" {
		t.Errorf("expected name updated, got %q", stored.FullName)
	}
	if stored.Email != "maria@example.com" || stored.PasswordHash == "" {
		t.Errorf("expected credentials preserved, got %+v", stored)
	}
}
