package identity

import (
	"context"

	"github.com/google/uuid"
)

// UserRepository persists accounts.
type UserRepository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByPhone(ctx context.Context, phone string) (*User, error)
	Update(ctx context.Context, u *User) error
}

// OTPStore persists per-phone verification state.
type OTPStore interface {
	Upsert(ctx context.Context, v *PhoneVerification) error
	Get(ctx context.Context, phone string) (*PhoneVerification, error)
}
