package articles

import (
	"context"

	"github.com/google/uuid"

	"github.com/vidapoint/vidapoint/pkg/pagination"
)

const featuredLimit = 5

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, category, search string, p pagination.Params) ([]*Article, int, error) {
	return s.repo.List(ctx, category, search, p)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Article, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Featured(ctx context.Context) ([]*Article, error) {
	return s.repo.ListFeatured(ctx, featuredLimit)
}
