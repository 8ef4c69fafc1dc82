package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/poll/live/internal/core/domain"
	"github.com/poll/live/internal/core/ports"
)

type identityService struct {
	repo ports.IdentityRepository
}

func NewIdentityService(repo ports.IdentityRepository) ports.IdentityService {
	return &identityService{
		repo: repo,
	}
}

func (s *identityService) Create(ctx context.Context, user domain.User) (string, error) {
	if user.Name == "" || user.Surname == "" {
		return "", domain.ErrInvalidProfile
	}

	id := fmt.Sprintf("user_%s", uuid.New())
	if err := s.repo.Save(ctx, id, user); err != nil {
		return "", fmt.Errorf("failed to save user: %w", err)
	}

	return id, nil
}

func (s *identityService) FindByName(ctx context.Context, name, surname string) (string, domain.User, error) {
	return s.repo.FindByName(ctx, name, surname)
}

func (s *identityService) All(ctx context.Context) (map[string]domain.User, error) {
	return s.repo.All(ctx)
}
