package articles

import (
	"context"

	"github.com/google/uuid"

	"github.com/vidapoint/vidapoint/pkg/pagination"
)

// Repository reads the article library. Content is loaded by seeding.
type Repository interface {
	List(ctx context.Context, category, search string, p pagination.Params) ([]*Article, int, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Article, error)
	ListFeatured(ctx context.Context, limit int) ([]*Article, error)
}
