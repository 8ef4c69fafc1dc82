package domain

import "time"

// VoterEntry records who cast a vote for an option. Name is the display
// name captured at vote time; later profile edits do not rewrite it.
type VoterEntry struct {
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	Timestamp time.Time `json:"timestamp"`
}

// VoteRecord holds the tally for one option. Count always equals len(Voters).
type VoteRecord struct {
	Count  int          `json:"count"`
	Voters []VoterEntry `json:"voters"`
}

// VotedMark marks that an identity has voted in the current generation.
// Its existence is the sole source of truth for duplicate-vote rejection.
type VotedMark struct {
	OptionID  int       `json:"optionId"`
	Timestamp time.Time `json:"timestamp"`
}

// OptionResult is the derived per-option breakdown sent to observers.
// Percentages are recomputed from counts at broadcast time, never stored.
type OptionResult struct {
	Count      int          `json:"count"`
	Percentage float64      `json:"percentage"`
	Voters     []VoterEntry `json:"voters"`
}

type Results struct {
	Results    map[int]OptionResult `json:"results"`
	TotalVotes int                  `json:"totalVotes"`
}
