package services

import (
	"context"

	"github.com/poll/live/internal/core/domain"
	"github.com/poll/live/internal/core/ports"
)

type tallyService struct {
	repo ports.TallyRepository
}

func NewTallyService(repo ports.TallyRepository) ports.TallyService {
	return &tallyService{
		repo: repo,
	}
}

func (s *tallyService) CastVote(ctx context.Context, userID string, optionID int) error {
	if userID == "" {
		return domain.ErrUnknownIdentity
	}
	return s.repo.CastVote(ctx, userID, optionID)
}

func (s *tallyService) Results(ctx context.Context) (domain.Results, error) {
	return s.repo.Results(ctx)
}

func (s *tallyService) Reset(ctx context.Context) (*domain.HistoryEntry, error) {
	return s.repo.Reset(ctx)
}
