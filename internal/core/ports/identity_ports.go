package ports

import (
	"context"

	"github.com/poll/live/internal/core/domain"
)

type IdentityRepository interface {
	Save(ctx context.Context, id string, user domain.User) error
	FindByName(ctx context.Context, name, surname string) (string, domain.User, error)
	GetByID(ctx context.Context, id string) (domain.User, error)
	All(ctx context.Context) (map[string]domain.User, error)
}

type IdentityService interface {
	// Create stores a new profile and returns its generated id. Fails with
	// domain.ErrInvalidProfile when name or surname is missing. Duplicate
	// (name, surname) pairs are allowed.
	Create(ctx context.Context, user domain.User) (string, error)

	// FindByName looks up a profile by exact (name, surname) match. When
	// duplicates exist the earliest saved profile wins. Fails with
	// domain.ErrNotFound.
	FindByName(ctx context.Context, name, surname string) (string, domain.User, error)

	All(ctx context.Context) (map[string]domain.User, error)
}
