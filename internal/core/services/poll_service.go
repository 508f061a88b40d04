package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/quickpoll/api/internal/core/domain"
	"github.com/quickpoll/api/internal/core/ports"
)

const maxOptions = 10

type pollService struct {
	store ports.PollStore
}

func NewPollService(store ports.PollStore) ports.PollService {
	return &pollService{
		store: store,
	}
}

func (s *pollService) Create(ctx context.Context, input ports.CreatePollInput) (*domain.Poll, error) {
	question := strings.TrimSpace(input.Question)
	if question == "" {
		return nil, domain.ErrQuestionRequired
	}

	var options []string
	for _, text := range input.Options {
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		options = append(options, text)
	}
	if len(options) < 2 {
		return nil, domain.ErrTooFewOptions
	}
	if len(options) > maxOptions {
		return nil, domain.ErrTooManyOptions
	}

	return s.store.CreatePoll(ctx, question, options)
}

func (s *pollService) Results(ctx context.Context, slug string) (*domain.PollWithResults, error) {
	if slug == "" {
		return nil, domain.ErrPollNotFound
	}
	return s.store.GetPollWithResults(ctx, slug)
}

func (s *pollService) CastVote(ctx context.Context, input ports.CastVoteInput) (*domain.PollWithResults, error) {
	poll, err := s.store.GetPollWithResults(ctx, input.Slug)
	if err != nil {
		return nil, err
	}

	// The store re-validates, but rejecting here keeps foreign option ids
	// from ever reaching the write path.
	validOption := false
	for _, opt := range poll.Options {
		if opt.ID == input.OptionID {
			validOption = true
			break
		}
	}
	if !validOption {
		return nil, domain.ErrOptionNotFound
	}

	if err := s.store.AddVote(ctx, poll.ID, input.OptionID, input.Fingerprint, input.IPHash); err != nil {
		return nil, err
	}

	return s.store.GetPollWithResults(ctx, input.Slug)
}

// HasVoted degrades every failure to false: it only gates a UX shortcut, and
// a false negative just shows the voting form again.
func (s *pollService) HasVoted(ctx context.Context, slug, fingerprint string) bool {
	if slug == "" || fingerprint == "" {
		return false
	}

	poll, err := s.store.GetPollWithResults(ctx, slug)
	if err != nil {
		if !errors.Is(err, domain.ErrPollNotFound) {
			slog.Error("voted check failed", "slug", slug, "error", err)
		}
		return false
	}

	voted, err := s.store.HasVotedByFingerprint(ctx, poll.ID, fingerprint)
	if err != nil {
		slog.Error("voted check failed", "slug", slug, "error", err)
		return false
	}
	return voted
}
