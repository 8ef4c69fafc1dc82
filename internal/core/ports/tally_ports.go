package ports

import (
	"context"

	"github.com/poll/live/internal/core/domain"
)

type TallyRepository interface {
	CastVote(ctx context.Context, userID string, optionID int) error
	Results(ctx context.Context) (domain.Results, error)
	Reset(ctx context.Context) (*domain.HistoryEntry, error)
}

type TallyService interface {
	// CastVote registers one vote for userID. It fails with
	// domain.ErrUnknownIdentity, domain.ErrAlreadyVoted or
	// domain.ErrUnknownOption; a vote cannot be retracted afterwards.
	CastVote(ctx context.Context, userID string, optionID int) error

	// Results computes the current per-option breakdown. Read-only.
	Results(ctx context.Context) (domain.Results, error)

	// Reset archives the current generation (when it has votes) and starts
	// a fresh one. Returns the archived entry, or nil if there was nothing
	// to archive.
	Reset(ctx context.Context) (*domain.HistoryEntry, error)
}
