// Package memory provides an in-process PollStore used when no database is
// configured. It is a development/fallback mode: nothing survives a restart.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/quickpoll/api/internal/core/domain"
	"github.com/quickpoll/api/internal/core/ports"
	"github.com/quickpoll/api/internal/token"
)

const maxSlugAttempts = 5

type store struct {
	mu            sync.RWMutex
	polls         map[uuid.UUID]domain.Poll
	options       map[uuid.UUID]domain.Option
	votes         map[uuid.UUID]domain.Vote
	slugToPoll    map[string]uuid.UUID
	optionsByPoll map[uuid.UUID][]uuid.UUID
	votesByPoll   map[uuid.UUID][]uuid.UUID
}

func NewStore() ports.PollStore {
	return &store{
		polls:         make(map[uuid.UUID]domain.Poll),
		options:       make(map[uuid.UUID]domain.Option),
		votes:         make(map[uuid.UUID]domain.Vote),
		slugToPoll:    make(map[string]uuid.UUID),
		optionsByPoll: make(map[uuid.UUID][]uuid.UUID),
		votesByPoll:   make(map[uuid.UUID][]uuid.UUID),
	}
}

func (s *store) CreatePoll(ctx context.Context, question string, optionTexts []string) (*domain.Poll, error) {
	if len(optionTexts) < 2 {
		return nil, domain.ErrTooFewOptions
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	slug, err := s.freeSlug()
	if err != nil {
		return nil, err
	}

	poll := domain.Poll{
		ID:        uuid.New(),
		Slug:      slug,
		Question:  question,
		CreatedAt: time.Now().UTC(),
	}

	for i, text := range optionTexts {
		opt := domain.Option{
			ID:        uuid.New(),
			PollID:    poll.ID,
			Text:      text,
			SortOrder: i,
		}
		s.options[opt.ID] = opt
		s.optionsByPoll[poll.ID] = append(s.optionsByPoll[poll.ID], opt.ID)
		poll.Options = append(poll.Options, opt)
	}

	s.polls[poll.ID] = poll
	s.slugToPoll[slug] = poll.ID

	return &poll, nil
}

// freeSlug generates a slug not yet in use. Caller must hold the write lock.
func (s *store) freeSlug() (string, error) {
	for i := 0; i < maxSlugAttempts; i++ {
		slug, err := token.NewSlug()
		if err != nil {
			return "", fmt.Errorf("failed to generate slug: %w", err)
		}
		if _, taken := s.slugToPoll[slug]; !taken {
			return slug, nil
		}
	}
	return "", domain.ErrSlugExhausted
}

func (s *store) GetPollWithResults(ctx context.Context, slug string) (*domain.PollWithResults, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pollID, ok := s.slugToPoll[slug]
	if !ok {
		return nil, domain.ErrPollNotFound
	}
	poll := s.polls[pollID]

	countByOption := make(map[uuid.UUID]int64)
	var total int64
	for _, voteID := range s.votesByPoll[pollID] {
		vote := s.votes[voteID]
		countByOption[vote.OptionID]++
		total++
	}

	result := &domain.PollWithResults{
		ID:         poll.ID,
		Slug:       poll.Slug,
		Question:   poll.Question,
		CreatedAt:  poll.CreatedAt,
		TotalVotes: total,
	}
	// optionsByPoll preserves creation order, which is sort order.
	for _, optID := range s.optionsByPoll[pollID] {
		result.Options = append(result.Options, domain.OptionResult{
			Option:    s.options[optID],
			VoteCount: countByOption[optID],
		})
	}

	return result, nil
}

func (s *store) AddVote(ctx context.Context, pollID, optionID uuid.UUID, fingerprint, ipHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.polls[pollID]; !ok {
		return domain.ErrPollNotFound
	}
	opt, ok := s.options[optionID]
	if !ok || opt.PollID != pollID {
		return domain.ErrOptionNotFound
	}

	// Dedup order matters: fingerprint first, then IP hash. Either match
	// blocks the vote.
	for _, voteID := range s.votesByPoll[pollID] {
		if s.votes[voteID].VoterFingerprint == fingerprint {
			return domain.ErrFingerprintUsed
		}
	}
	for _, voteID := range s.votesByPoll[pollID] {
		if s.votes[voteID].IPHash == ipHash {
			return domain.ErrAddressUsed
		}
	}

	vote := domain.Vote{
		ID:               uuid.New(),
		PollID:           pollID,
		OptionID:         optionID,
		VoterFingerprint: fingerprint,
		IPHash:           ipHash,
		CreatedAt:        time.Now().UTC(),
	}
	s.votes[vote.ID] = vote
	s.votesByPoll[pollID] = append(s.votesByPoll[pollID], vote.ID)

	return nil
}

func (s *store) HasVotedByFingerprint(ctx context.Context, pollID uuid.UUID, fingerprint string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, voteID := range s.votesByPoll[pollID] {
		if s.votes[voteID].VoterFingerprint == fingerprint {
			return true, nil
		}
	}
	return false, nil
}
