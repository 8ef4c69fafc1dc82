package memory

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/poll/live/internal/core/domain"
)

// Store is the single owned in-memory state of the running poll: options,
// tallies, registered users and archived generations. Everything is volatile;
// a process restart wipes it all, which clients detect via the boot id.
//
// One store-wide mutex guards every operation. Compound sequences with
// invariants (check voted mark, append voter, bump count; archive then clear
// on reset) are single locked methods, so no goroutine ever observes a
// half-applied mutation.
type Store struct {
	mu      sync.Mutex
	options []domain.Option
	votes   map[int]*domain.VoteRecord
	voters  map[string]domain.VotedMark
	users   map[string]domain.User
	order   []string
	history []domain.HistoryEntry
}

func NewStore(options []domain.Option) *Store {
	s := &Store{
		options: make([]domain.Option, len(options)),
		votes:   make(map[int]*domain.VoteRecord, len(options)),
		voters:  make(map[string]domain.VotedMark),
		users:   make(map[string]domain.User),
	}
	copy(s.options, options)
	for _, opt := range options {
		s.votes[opt.ID] = &domain.VoteRecord{}
	}
	return s
}

// DefaultOptions is the catalog seeded at process start, before an admin
// replaces it.
func DefaultOptions() []domain.Option {
	return []domain.Option{
		{ID: 1, Text: "Вариант 1", Image: "/img/opt1.svg"},
		{ID: 2, Text: "Вариант 2", Image: "/img/opt2.svg"},
		{ID: 3, Text: "Вариант 3", Image: "/img/opt3.svg"},
		{ID: 4, Text: "Вариант 4", Image: "/img/opt4.svg"},
	}
}

// --- Option catalog ---

func (s *Store) List(_ context.Context) ([]domain.Option, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	options := make([]domain.Option, len(s.options))
	copy(options, s.options)
	return options, nil
}

func (s *Store) ReplaceAll(_ context.Context, options []domain.Option) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.options = make([]domain.Option, len(options))
	copy(s.options, options)

	// New ids start at zero; retained ids keep their record untouched.
	keep := make(map[int]bool, len(options))
	for _, opt := range options {
		keep[opt.ID] = true
		if _, ok := s.votes[opt.ID]; !ok {
			s.votes[opt.ID] = &domain.VoteRecord{}
		}
	}
	for id := range s.votes {
		if !keep[id] {
			delete(s.votes, id)
		}
	}
	return nil
}

func (s *Store) Edit(_ context.Context, id int, text, image string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.options {
		if s.options[i].ID == id {
			s.options[i].Text = text
			s.options[i].Image = image
			return nil
		}
	}
	return domain.ErrOptionNotFound
}

// --- Tally ---

func (s *Store) CastVote(_ context.Context, userID string, optionID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[userID]
	if !ok {
		return domain.ErrUnknownIdentity
	}
	if _, voted := s.voters[userID]; voted {
		return domain.ErrAlreadyVoted
	}
	record, ok := s.votes[optionID]
	if !ok {
		return domain.ErrUnknownOption
	}

	now := time.Now()
	record.Voters = append(record.Voters, domain.VoterEntry{
		UserID:    userID,
		Name:      fmt.Sprintf("%s %s", user.Name, user.Surname),
		Timestamp: now,
	})
	record.Count++
	s.voters[userID] = domain.VotedMark{OptionID: optionID, Timestamp: now}
	return nil
}

func (s *Store) Results(_ context.Context) (domain.Results, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resultsLocked(), nil
}

func (s *Store) resultsLocked() domain.Results {
	total := 0
	for _, record := range s.votes {
		total += record.Count
	}

	results := make(map[int]domain.OptionResult, len(s.options))
	for _, opt := range s.options {
		record := s.votes[opt.ID]
		percentage := 0.0
		if total > 0 {
			percentage = math.Round(float64(record.Count)/float64(total)*1000) / 10
		}
		voters := make([]domain.VoterEntry, len(record.Voters))
		copy(voters, record.Voters)
		results[opt.ID] = domain.OptionResult{
			Count:      record.Count,
			Percentage: percentage,
			Voters:     voters,
		}
	}
	return domain.Results{Results: results, TotalVotes: total}
}

// Reset archives the current generation when it has votes, then clears every
// record and voted mark in the same critical section. No vote can land in
// the old generation after the archive is taken, nor in the new one before
// the clear completes.
func (s *Store) Reset(_ context.Context) (*domain.HistoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0
	for _, record := range s.votes {
		total += record.Count
	}

	var archived *domain.HistoryEntry
	if total > 0 {
		entry := domain.HistoryEntry{
			ID:         time.Now().UnixMilli(),
			Date:       time.Now(),
			TotalVotes: total,
			Results:    make(map[int]domain.VoteRecord, len(s.votes)),
			Options:    make([]domain.Option, len(s.options)),
		}
		for id, record := range s.votes {
			voters := make([]domain.VoterEntry, len(record.Voters))
			copy(voters, record.Voters)
			entry.Results[id] = domain.VoteRecord{Count: record.Count, Voters: voters}
		}
		copy(entry.Options, s.options)

		s.history = append(s.history, entry)
		archived = &entry
	}

	for id := range s.votes {
		s.votes[id] = &domain.VoteRecord{}
	}
	s.voters = make(map[string]domain.VotedMark)

	return archived, nil
}

// --- Identities ---

func (s *Store) Save(_ context.Context, id string, user domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[id]; !exists {
		s.order = append(s.order, id)
	}
	s.users[id] = user
	return nil
}

// FindByName scans in creation order so that, when duplicate profiles exist,
// the earliest saved one always wins.
func (s *Store) FindByName(_ context.Context, name, surname string) (string, domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range s.order {
		user := s.users[id]
		if user.Name == name && user.Surname == surname {
			return id, user, nil
		}
	}
	return "", domain.User{}, domain.ErrNotFound
}

func (s *Store) GetByID(_ context.Context, id string) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return domain.User{}, domain.ErrNotFound
	}
	return user, nil
}

func (s *Store) All(_ context.Context) (map[string]domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := make(map[string]domain.User, len(s.users))
	for id, user := range s.users {
		users[id] = user
	}
	return users, nil
}

// --- History ---

func (s *Store) History(_ context.Context) ([]domain.HistoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	history := make([]domain.HistoryEntry, len(s.history))
	copy(history, s.history)
	return history, nil
}
