package scheduling

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/vidapoint/vidapoint/pkg/apperr"
	"github.com/vidapoint/vidapoint/pkg/pagination"
)

// ErrSlotTaken is returned by Reserve when another booking already holds
// the same (owner, date, slot) key.
var ErrSlotTaken = apperr.Conflict("slot already booked")

// BookingStore tracks reserved slots per calendar owner and day. Reserve is
// an atomic check-and-set: exactly one of two concurrent callers for the
// same key succeeds, the other sees ErrSlotTaken.
type BookingStore interface {
	BookedTimes(ctx context.Context, ownerCode string, date time.Time) ([]string, error)
	Reserve(ctx context.Context, ownerCode string, date time.Time, slot string, appointmentID uuid.UUID) error
	Release(ctx context.Context, ownerCode string, date time.Time, slot string) error
}

// AppointmentRepository persists appointments.
type AppointmentRepository interface {
	Create(ctx context.Context, a *Appointment) error
	GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error)
	ListByUser(ctx context.Context, userID uuid.UUID, filter string, p pagination.Params) ([]*Appointment, int, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
}
