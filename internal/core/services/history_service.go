package services

import (
	"context"

	"github.com/poll/live/internal/core/domain"
	"github.com/poll/live/internal/core/ports"
)

type historyService struct {
	repo ports.HistoryRepository
}

func NewHistoryService(repo ports.HistoryRepository) ports.HistoryService {
	return &historyService{
		repo: repo,
	}
}

func (s *historyService) All(ctx context.Context) ([]domain.HistoryEntry, error) {
	return s.repo.History(ctx)
}
