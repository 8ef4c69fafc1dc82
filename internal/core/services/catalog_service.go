package services

import (
	"context"
	"errors"

	"github.com/poll/live/internal/core/domain"
	"github.com/poll/live/internal/core/ports"
)

type catalogService struct {
	repo ports.OptionRepository
}

func NewCatalogService(repo ports.OptionRepository) ports.CatalogService {
	return &catalogService{
		repo: repo,
	}
}

func (s *catalogService) List(ctx context.Context) ([]domain.Option, error) {
	return s.repo.List(ctx)
}

func (s *catalogService) ReplaceAll(ctx context.Context, options []domain.Option) error {
	if len(options) == 0 {
		return errors.New("at least one option is required")
	}

	seen := make(map[int]bool, len(options))
	for _, opt := range options {
		if seen[opt.ID] {
			return errors.New("duplicate option id")
		}
		seen[opt.ID] = true
	}

	return s.repo.ReplaceAll(ctx, options)
}

func (s *catalogService) EditOption(ctx context.Context, id int, text, image string) error {
	return s.repo.Edit(ctx, id, text, image)
}
