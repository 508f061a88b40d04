package domain

import (
	"time"

	"github.com/google/uuid"
)

type Poll struct {
	ID        uuid.UUID `json:"id"`
	Slug      string    `json:"slug"`
	Question  string    `json:"question"`
	Options   []Option  `json:"options,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type Option struct {
	ID        uuid.UUID `json:"id"`
	PollID    uuid.UUID `json:"pollId"`
	Text      string    `json:"text"`
	SortOrder int       `json:"sortOrder"`
}

// OptionResult is an Option annotated with its live vote count.
type OptionResult struct {
	Option
	VoteCount int64 `json:"voteCount"`
}

// PollWithResults is the aggregated view of a poll. Counts are always
// recomputed from vote records at read time, never cached.
type PollWithResults struct {
	ID         uuid.UUID      `json:"id"`
	Slug       string         `json:"slug"`
	Question   string         `json:"question"`
	CreatedAt  time.Time      `json:"createdAt"`
	TotalVotes int64          `json:"totalVotes"`
	Options    []OptionResult `json:"options"`
}

type Vote struct {
	ID               uuid.UUID `json:"id"`
	PollID           uuid.UUID `json:"pollId"`
	OptionID         uuid.UUID `json:"optionId"`
	VoterFingerprint string    `json:"-"`
	IPHash           string    `json:"-"`
	CreatedAt        time.Time `json:"createdAt"`
}
