package ports

import (
	"context"

	"github.com/poll/live/internal/core/domain"
)

type HistoryRepository interface {
	History(ctx context.Context) ([]domain.HistoryEntry, error)
}

type HistoryService interface {
	All(ctx context.Context) ([]domain.HistoryEntry, error)
}
