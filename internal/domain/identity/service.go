package identity

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/vidapoint/vidapoint/internal/platform/auth"
	"github.com/vidapoint/vidapoint/internal/platform/notification"
	"github.com/vidapoint/vidapoint/pkg/apperr"
)

type Service struct {
	users    UserRepository
	otps     OTPStore
	outbound *notification.Dispatcher
	tokens   *auth.TokenIssuer
	otpTTL   time.Duration
}

func NewService(users UserRepository, otps OTPStore, outbound *notification.Dispatcher, tokens *auth.TokenIssuer) *Service {
	return &Service{users: users, otps: otps, outbound: outbound, tokens: tokens, otpTTL: OTPTTL}
}

// SendCode generates a fresh 6-digit code for the phone and dispatches it
// over SMS. Requesting a new code resets the attempt counter and replaces
// any outstanding code.
func (s *Service) SendCode(ctx context.Context, phone string) error {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return apperr.Validation("phone is required")
	}

	code, err := generateCode()
	if err != nil {
		return err
	}
	v := &PhoneVerification{
		Phone:     phone,
		Code:      code,
		ExpiresAt: time.Now().Add(s.otpTTL),
	}
	if err := s.otps.Upsert(ctx, v); err != nil {
		return err
	}

	data := map[string]string{
		"code":    code,
		"minutes": strconv.Itoa(int(s.otpTTL / time.Minute)),
	}
	if _, err := s.outbound.SendFromTemplate(ctx, "otp-code", data, phone); err != nil {
		log.Error().Err(err).Str("phone", phone).Msg("failed to send verification code")
		return err
	}
	return nil
}

// VerifyCode checks the submitted code. Codes are single-use: a successful
// verification clears the stored code. After MaxOTPAttempts wrong codes a
// new one must be requested.
func (s *Service) VerifyCode(ctx context.Context, phone, code string) error {
	v, err := s.otps.Get(ctx, phone)
	if err != nil {
		return err
	}
	if v.Code == "" {
		return apperr.Validation("no active code; request a new one")
	}
	if time.Now().After(v.ExpiresAt) {
		return apperr.Validation("code expired; request a new one")
	}
	if v.Attempts >= MaxOTPAttempts {
		return apperr.Validation("too many attempts; request a new code")
	}
	if v.Code != code {
		v.Attempts++
		if err := s.otps.Upsert(ctx, v); err != nil {
			return err
		}
		return apperr.Validation("incorrect code")
	}

	v.Code = ""
	v.Verified = true
	return s.otps.Upsert(ctx, v)
}

// SignupInput carries the signup form.
type SignupInput struct {
	FullName                string
	Email                   string
	Phone                   string
	Password                string
	IDNumber                *string
	Address                 *string
	DateOfBirth             *time.Time
	NumberOfKids            int
	YoungestChildDOB        *time.Time
	HadPrenatalCheckup      bool
	PreviousCheckupLocation *string
	HeightCM                *float64
	WeightKG                *float64
	BloodType               *string
}

// Signup creates an account. The phone must have passed OTP verification
// first, and email/phone must be unused.
func (s *Service) Signup(ctx context.Context, in SignupInput) (*User, error) {
	if in.FullName == "" || in.Email == "" || in.Phone == "" {
		return nil, apperr.Validation("full name, email, and phone are required")
	}
	if len(in.Password) < 8 {
		return nil, apperr.Validation("password must be at least 8 characters")
	}

	v, err := s.otps.Get(ctx, in.Phone)
	if err != nil || !v.Verified {
		return nil, apperr.Validation("phone number is not verified")
	}
	if _, err := s.users.GetByEmail(ctx, in.Email); err == nil {
		return nil, apperr.Conflict("an account with this email already exists")
	}
	if _, err := s.users.GetByPhone(ctx, in.Phone); err == nil {
		return nil, apperr.Conflict("an account with this phone already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := &User{
		ID:                      uuid.New(),
		FullName:                in.FullName,
		Email:                   in.Email,
		Phone:                   in.Phone,
		IDNumber:                in.IDNumber,
		Address:                 in.Address,
		DateOfBirth:             in.DateOfBirth,
		NumberOfKids:            in.NumberOfKids,
		YoungestChildDOB:        in.YoungestChildDOB,
		HadPrenatalCheckup:      in.HadPrenatalCheckup,
		PreviousCheckupLocation: in.PreviousCheckupLocation,
		HeightCM:                in.HeightCM,
		WeightKG:                in.WeightKG,
		BloodType:               in.BloodType,
		PhoneVerified:           true,
		PasswordHash:            string(hash),
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Login checks credentials and mints an access token.
func (s *Service) Login(ctx context.Context, email, password string) (string, *User, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return "", nil, apperr.Unauthorized("invalid email or password")
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return "", nil, apperr.Unauthorized("invalid email or password")
	}
	token, err := s.tokens.Issue(u.ID.String(), u.Phone, u.FullName)
	if err != nil {
		return "", nil, err
	}
	return token, u, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.users.GetByID(ctx, id)
}

// UpdateProfile applies the editable profile fields. Email, phone, and
// password change through their own flows.
func (s *Service) UpdateProfile(ctx context.Context, u *User) error {
	if u.ID == uuid.Nil {
		return apperr.Validation("user id is required")
	}
	if u.FullName == "" {
		return apperr.Validation("full name is required")
	}
	current, err := s.users.GetByID(ctx, u.ID)
	if err != nil {
		return err
	}
	u.Email = current.Email
	u.Phone = current.Phone
	u.PhoneVerified = current.PhoneVerified
	u.PasswordHash = current.PasswordHash
	return s.users.Update(ctx, u)
}
