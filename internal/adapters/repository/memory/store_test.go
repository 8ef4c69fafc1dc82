package memory

import (
	"context"
	"testing"

	"github.com/poll/live/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOptions() []domain.Option {
	return []domain.Option{
		{ID: 1, Text: "Option 1", Image: "/img/opt1.svg"},
		{ID: 2, Text: "Option 2", Image: "/img/opt2.svg"},
		{ID: 3, Text: "Option 3", Image: "/img/opt3.svg"},
	}
}

func addUser(t *testing.T, s *Store, id, name, surname string) {
	t.Helper()
	require.NoError(t, s.Save(context.Background(), id, domain.User{Name: name, Surname: surname}))
}

// countSum checks the core invariant: the summed counts always equal the
// number of identities marked as having voted.
func countSum(t *testing.T, s *Store) {
	t.Helper()
	results, err := s.Results(context.Background())
	require.NoError(t, err)

	sum := 0
	for _, r := range results.Results {
		sum += r.Count
		assert.Len(t, r.Voters, r.Count)
	}
	assert.Equal(t, results.TotalVotes, sum)

	s.mu.Lock()
	defer s.mu.Unlock()
	assert.Equal(t, sum, len(s.voters))
}

func TestCastVote(t *testing.T) {
	ctx := context.Background()
	s := NewStore(testOptions())
	addUser(t, s, "user_1", "Ada", "Lovelace")

	require.NoError(t, s.CastVote(ctx, "user_1", 2))
	countSum(t, s)

	results, err := s.Results(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, results.TotalVotes)
	assert.Equal(t, 1, results.Results[2].Count)
	require.Len(t, results.Results[2].Voters, 1)
	assert.Equal(t, "Ada Lovelace", results.Results[2].Voters[0].Name)
	assert.Equal(t, "user_1", results.Results[2].Voters[0].UserID)
}

func TestCastVoteFailures(t *testing.T) {
	ctx := context.Background()
	s := NewStore(testOptions())
	addUser(t, s, "user_1", "Ada", "Lovelace")

	// Unknown identity
	err := s.CastVote(ctx, "user_missing", 1)
	assert.ErrorIs(t, err, domain.ErrUnknownIdentity)

	// Unknown option
	err = s.CastVote(ctx, "user_1", 99)
	assert.ErrorIs(t, err, domain.ErrUnknownOption)

	// A failed cast must not leave a voted mark behind.
	require.NoError(t, s.CastVote(ctx, "user_1", 1))

	// Voting again, even for another option, is rejected and changes nothing.
	err = s.CastVote(ctx, "user_1", 2)
	assert.ErrorIs(t, err, domain.ErrAlreadyVoted)

	results, err := s.Results(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, results.Results[1].Count)
	assert.Equal(t, 0, results.Results[2].Count)
	countSum(t, s)
}

func TestResultsPercentages(t *testing.T) {
	ctx := context.Background()
	s := NewStore(testOptions())

	// Empty poll: everything at zero.
	results, err := s.Results(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, results.TotalVotes)
	for _, r := range results.Results {
		assert.Equal(t, 0.0, r.Percentage)
	}

	addUser(t, s, "user_1", "A", "A")
	addUser(t, s, "user_2", "B", "B")
	addUser(t, s, "user_3", "C", "C")
	require.NoError(t, s.CastVote(ctx, "user_1", 1))
	require.NoError(t, s.CastVote(ctx, "user_2", 1))
	require.NoError(t, s.CastVote(ctx, "user_3", 2))

	results, err = s.Results(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, results.TotalVotes)
	assert.Equal(t, 66.7, results.Results[1].Percentage)
	assert.Equal(t, 33.3, results.Results[2].Percentage)
	assert.Equal(t, 0.0, results.Results[3].Percentage)

	total := 0.0
	for _, r := range results.Results {
		total += r.Percentage
	}
	assert.InDelta(t, 100.0, total, 0.2)
}

func TestResetEmptyPoll(t *testing.T) {
	ctx := context.Background()
	s := NewStore(testOptions())

	entry, err := s.Reset(ctx)
	require.NoError(t, err)
	assert.Nil(t, entry)

	history, err := s.History(ctx)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestResetArchivesAndClears(t *testing.T) {
	ctx := context.Background()
	s := NewStore(testOptions())
	addUser(t, s, "user_1", "A", "A")
	addUser(t, s, "user_2", "B", "B")
	addUser(t, s, "user_3", "C", "C")
	require.NoError(t, s.CastVote(ctx, "user_1", 1))
	require.NoError(t, s.CastVote(ctx, "user_2", 2))
	require.NoError(t, s.CastVote(ctx, "user_3", 2))

	entry, err := s.Reset(ctx)
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, 3, entry.TotalVotes)
	assert.Equal(t, 1, entry.Results[1].Count)
	assert.Equal(t, 2, entry.Results[2].Count)
	assert.Len(t, entry.Options, 3)

	history, err := s.History(ctx)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, 3, history[0].TotalVotes)

	// Counts cleared, marks cleared: everyone may vote again.
	results, err := s.Results(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, results.TotalVotes)
	countSum(t, s)

	require.NoError(t, s.CastVote(ctx, "user_1", 3))

	// The archived snapshot is frozen; the new vote must not leak into it.
	history, err = s.History(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, history[0].TotalVotes)
	assert.Equal(t, 0, history[0].Results[3].Count)
}

func TestReplaceAllPreservesRetainedTallies(t *testing.T) {
	ctx := context.Background()
	s := NewStore(testOptions())
	addUser(t, s, "user_1", "A", "A")
	addUser(t, s, "user_2", "B", "B")
	require.NoError(t, s.CastVote(ctx, "user_1", 1))
	require.NoError(t, s.CastVote(ctx, "user_2", 2))

	// Keep id 2 (reordered), drop 1 and 3, add 4.
	err := s.ReplaceAll(ctx, []domain.Option{
		{ID: 4, Text: "New option", Image: ""},
		{ID: 2, Text: "Renamed option", Image: "/img/new.svg"},
	})
	require.NoError(t, err)

	options, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, options, 2)
	assert.Equal(t, 4, options[0].ID)

	results, err := s.Results(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, results.Results[2].Count)
	assert.Equal(t, 0, results.Results[4].Count)
	_, hasOld := results.Results[1]
	assert.False(t, hasOld)
}

func TestEditOption(t *testing.T) {
	ctx := context.Background()
	s := NewStore(testOptions())
	addUser(t, s, "user_1", "A", "A")
	require.NoError(t, s.CastVote(ctx, "user_1", 1))

	require.NoError(t, s.Edit(ctx, 1, "Edited", "/uploads/image-x.png"))

	options, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Edited", options[0].Text)
	assert.Equal(t, "/uploads/image-x.png", options[0].Image)

	// The tally for the edited card stays untouched.
	results, err := s.Results(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, results.Results[1].Count)

	err = s.Edit(ctx, 99, "x", "y")
	assert.ErrorIs(t, err, domain.ErrOptionNotFound)
}

func TestFindByNameFirstMatchWins(t *testing.T) {
	ctx := context.Background()
	s := NewStore(testOptions())

	// Duplicate profiles are allowed and never merged.
	addUser(t, s, "user_first", "Ada", "Lovelace")
	addUser(t, s, "user_second", "Ada", "Lovelace")

	id, user, err := s.FindByName(ctx, "Ada", "Lovelace")
	require.NoError(t, err)
	assert.Equal(t, "user_first", id)
	assert.Equal(t, "Ada", user.Name)

	_, _, err = s.FindByName(ctx, "Grace", "Hopper")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	users, err := s.All(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)
}

func TestListReturnsCopy(t *testing.T) {
	ctx := context.Background()
	s := NewStore(testOptions())

	options, err := s.List(ctx)
	require.NoError(t, err)
	options[0].Text = "mutated"

	fresh, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Option 1", fresh[0].Text)
}
