package sharing

import (
	"context"

	"github.com/google/uuid"
)

// Repository persists sharing requests.
type Repository interface {
	Create(ctx context.Context, r *Request) error
	GetByID(ctx context.Context, id uuid.UUID) (*Request, error)
	ListByUser(ctx context.Context, userID uuid.UUID, status string) ([]*Request, error)
	CountPending(ctx context.Context, userID uuid.UUID) (int, error)
	Update(ctx context.Context, r *Request) error
}
