package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quickpoll/api/internal/adapters/repository/memory"
	"github.com/quickpoll/api/internal/core/domain"
	"github.com/quickpoll/api/internal/core/ports"
)

func newService() ports.PollService {
	return NewPollService(memory.NewStore())
}

func TestCreateValidation(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		input   ports.CreatePollInput
		wantErr error
	}{
		{
			name:    "blank question",
			input:   ports.CreatePollInput{Question: "   ", Options: []string{"A", "B"}},
			wantErr: domain.ErrQuestionRequired,
		},
		{
			name:    "no options",
			input:   ports.CreatePollInput{Question: "Q"},
			wantErr: domain.ErrTooFewOptions,
		},
		{
			name: "blank options leave only one usable",
			input: ports.CreatePollInput{
				Question: "Q",
				Options:  []string{"", "  ", "X"},
			},
			wantErr: domain.ErrTooFewOptions,
		},
		{
			name: "too many options",
			input: ports.CreatePollInput{
				Question: "Q",
				Options: []string{
					"1", "2", "3", "4", "5", "6", "7", "8", "9", "10", "11",
				},
			},
			wantErr: domain.ErrTooManyOptions,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newService().Create(ctx, tt.input)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCreateTrimsTexts(t *testing.T) {
	ctx := context.Background()

	poll, err := newService().Create(ctx, ports.CreatePollInput{
		Question: "  Lunch?  ",
		Options:  []string{" Pizza ", "", "Tacos"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Lunch?", poll.Question)
	require.Len(t, poll.Options, 2)
	assert.Equal(t, "Pizza", poll.Options[0].Text)
	assert.Equal(t, "Tacos", poll.Options[1].Text)
	assert.Equal(t, 0, poll.Options[0].SortOrder)
	assert.Equal(t, 1, poll.Options[1].SortOrder)
}

func TestCastVoteUnknownSlug(t *testing.T) {
	_, err := newService().CastVote(context.Background(), ports.CastVoteInput{
		Slug:        "missing",
		OptionID:    uuid.New(),
		Fingerprint: "f1",
		IPHash:      "ip1",
	})
	assert.ErrorIs(t, err, domain.ErrPollNotFound)
}

func TestCastVoteForeignOption(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	poll, err := svc.Create(ctx, ports.CreatePollInput{
		Question: "Q", Options: []string{"A", "B"},
	})
	require.NoError(t, err)

	_, err = svc.CastVote(ctx, ports.CastVoteInput{
		Slug:        poll.Slug,
		OptionID:    uuid.New(),
		Fingerprint: "f1",
		IPHash:      "ip1",
	})
	assert.ErrorIs(t, err, domain.ErrOptionNotFound)

	results, err := svc.Results(ctx, poll.Slug)
	require.NoError(t, err)
	assert.Equal(t, int64(0), results.TotalVotes)
}

// The full fairness scenario: one vote per fingerprint and per address,
// with the fingerprint reason reported first.
func TestVoteScenario(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	poll, err := svc.Create(ctx, ports.CreatePollInput{
		Question: "Lunch?", Options: []string{"Pizza", "Tacos"},
	})
	require.NoError(t, err)

	results, err := svc.Results(ctx, poll.Slug)
	require.NoError(t, err)
	assert.Equal(t, int64(0), results.TotalVotes)

	pizza := poll.Options[0].ID

	results, err = svc.CastVote(ctx, ports.CastVoteInput{
		Slug: poll.Slug, OptionID: pizza, Fingerprint: "f1", IPHash: "1.1.1.1",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), results.TotalVotes)
	assert.Equal(t, int64(1), results.Options[0].VoteCount)

	_, err = svc.CastVote(ctx, ports.CastVoteInput{
		Slug: poll.Slug, OptionID: pizza, Fingerprint: "f1", IPHash: "2.2.2.2",
	})
	assert.ErrorIs(t, err, domain.ErrFingerprintUsed)

	_, err = svc.CastVote(ctx, ports.CastVoteInput{
		Slug: poll.Slug, OptionID: pizza, Fingerprint: "f2", IPHash: "1.1.1.1",
	})
	assert.ErrorIs(t, err, domain.ErrAddressUsed)

	results, err = svc.CastVote(ctx, ports.CastVoteInput{
		Slug: poll.Slug, OptionID: pizza, Fingerprint: "f2", IPHash: "3.3.3.3",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), results.TotalVotes)
}

func TestHasVotedDegradesToFalse(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	assert.False(t, svc.HasVoted(ctx, "", "f1"))
	assert.False(t, svc.HasVoted(ctx, "missing", "f1"))
	assert.False(t, svc.HasVoted(ctx, "missing", ""))

	poll, err := svc.Create(ctx, ports.CreatePollInput{
		Question: "Q", Options: []string{"A", "B"},
	})
	require.NoError(t, err)

	assert.False(t, svc.HasVoted(ctx, poll.Slug, "f1"))

	_, err = svc.CastVote(ctx, ports.CastVoteInput{
		Slug: poll.Slug, OptionID: poll.Options[0].ID, Fingerprint: "f1", IPHash: "ip1",
	})
	require.NoError(t, err)

	assert.True(t, svc.HasVoted(ctx, poll.Slug, "f1"))
	assert.False(t, svc.HasVoted(ctx, poll.Slug, "f2"))
}
