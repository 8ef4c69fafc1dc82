package domain

import "time"

// HistoryEntry is an immutable snapshot of a finished poll generation,
// archived when an admin resets a poll that has at least one vote.
// Results and Options are deep copies; later votes never touch them.
type HistoryEntry struct {
	ID         int64              `json:"id"`
	Date       time.Time          `json:"date"`
	TotalVotes int                `json:"totalVotes"`
	Results    map[int]VoteRecord `json:"results"`
	Options    []Option           `json:"options"`
}
