package ports

import (
	"context"

	"github.com/poll/live/internal/core/domain"
)

type OptionRepository interface {
	List(ctx context.Context) ([]domain.Option, error)
	ReplaceAll(ctx context.Context, options []domain.Option) error
	Edit(ctx context.Context, id int, text, image string) error
}

type CatalogService interface {
	List(ctx context.Context) ([]domain.Option, error)

	// ReplaceAll swaps the whole catalog. Tallies for option ids present in
	// both old and new catalogs are preserved; new ids start at zero and
	// removed ids lose their records.
	ReplaceAll(ctx context.Context, options []domain.Option) error

	// EditOption updates one card's text and image in place, leaving its
	// tally untouched. Fails with domain.ErrOptionNotFound.
	EditOption(ctx context.Context, id int, text, image string) error
}
