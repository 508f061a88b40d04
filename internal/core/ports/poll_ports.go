package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/quickpoll/api/internal/core/domain"
)

// PollStore is the sole authority over poll/option/vote persistence and the
// fairness and aggregation logic. Two implementations exist: a durable
// postgres store and an in-process fallback store; one is selected at startup
// and the rest of the system depends only on this interface.
type PollStore interface {
	// CreatePoll persists a new poll with its options. It generates fresh
	// identifiers and a collision-free public slug, and assigns contiguous
	// 0-based sort positions in input order. The caller must pass at least
	// two option texts.
	CreatePoll(ctx context.Context, question string, optionTexts []string) (*domain.Poll, error)

	// GetPollWithResults looks the poll up by slug and returns it with
	// options in sort order, each carrying a vote count recomputed from the
	// current vote records. Returns domain.ErrPollNotFound on unknown slug.
	GetPollWithResults(ctx context.Context, slug string) (*domain.PollWithResults, error)

	// AddVote records a vote after the dedup checks pass. Check and write are
	// atomic: two concurrent votes sharing a fingerprint or IP hash for the
	// same poll never both succeed. Fingerprint collisions are reported
	// before IP-hash collisions.
	AddVote(ctx context.Context, pollID, optionID uuid.UUID, fingerprint, ipHash string) error

	// HasVotedByFingerprint reports whether a vote with this fingerprint
	// exists for the poll. Pure read.
	HasVotedByFingerprint(ctx context.Context, pollID uuid.UUID, fingerprint string) (bool, error)
}

type CreatePollInput struct {
	Question string
	Options  []string
}

type CastVoteInput struct {
	Slug        string
	OptionID    uuid.UUID
	Fingerprint string
	IPHash      string
}

type PollService interface {
	Create(ctx context.Context, input CreatePollInput) (*domain.Poll, error)
	Results(ctx context.Context, slug string) (*domain.PollWithResults, error)
	CastVote(ctx context.Context, input CastVoteInput) (*domain.PollWithResults, error)
	HasVoted(ctx context.Context, slug, fingerprint string) bool
}
