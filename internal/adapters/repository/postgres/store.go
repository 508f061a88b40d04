package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/quickpoll/api/internal/core/domain"
	"github.com/quickpoll/api/internal/core/ports"
	"github.com/quickpoll/api/internal/token"
)

const maxSlugAttempts = 5

type store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) ports.PollStore {
	return &store{
		db: db,
	}
}

func (s *store) CreatePoll(ctx context.Context, question string, optionTexts []string) (*domain.Poll, error) {
	if len(optionTexts) < 2 {
		return nil, domain.ErrTooFewOptions
	}

	for i := 0; i < maxSlugAttempts; i++ {
		slug, err := token.NewSlug()
		if err != nil {
			return nil, fmt.Errorf("failed to generate slug: %w", err)
		}

		poll, err := s.insertPoll(ctx, question, slug, optionTexts)
		if isUniqueViolation(err, "polls_slug_key") {
			continue
		}
		if err != nil {
			return nil, err
		}
		return poll, nil
	}

	return nil, domain.ErrSlugExhausted
}

func (s *store) insertPoll(ctx context.Context, question, slug string, optionTexts []string) (*domain.Poll, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	poll := domain.Poll{
		ID:       uuid.New(),
		Slug:     slug,
		Question: question,
	}

	queryPoll := `
		INSERT INTO polls (id, slug, question)
		VALUES ($1, $2, $3)
		RETURNING created_at
	`
	err = tx.QueryRowContext(ctx, queryPoll, poll.ID, poll.Slug, poll.Question).Scan(&poll.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert poll: %w", err)
	}

	queryOption := `
		INSERT INTO options (id, poll_id, text, sort_order)
		VALUES ($1, $2, $3, $4)
	`
	stmt, err := tx.PrepareContext(ctx, queryOption)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare option statement: %w", err)
	}
	defer stmt.Close()

	for i, text := range optionTexts {
		opt := domain.Option{
			ID:        uuid.New(),
			PollID:    poll.ID,
			Text:      text,
			SortOrder: i,
		}
		if _, err := stmt.ExecContext(ctx, opt.ID, opt.PollID, opt.Text, opt.SortOrder); err != nil {
			return nil, fmt.Errorf("failed to insert option: %w", err)
		}
		poll.Options = append(poll.Options, opt)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &poll, nil
}

func (s *store) GetPollWithResults(ctx context.Context, slug string) (*domain.PollWithResults, error) {
	queryPoll := `
		SELECT id, slug, question, created_at
		FROM polls
		WHERE slug = $1
	`
	var result domain.PollWithResults
	err := s.db.QueryRowContext(ctx, queryPoll, slug).Scan(
		&result.ID, &result.Slug, &result.Question, &result.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrPollNotFound
		}
		return nil, fmt.Errorf("failed to get poll: %w", err)
	}

	counts, total, err := s.voteCounts(ctx, result.ID)
	if err != nil {
		return nil, err
	}
	result.TotalVotes = total

	queryOptions := `
		SELECT id, poll_id, text, sort_order
		FROM options
		WHERE poll_id = $1
		ORDER BY sort_order
	`
	rows, err := s.db.QueryContext(ctx, queryOptions, result.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get poll options: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var opt domain.Option
		if err := rows.Scan(&opt.ID, &opt.PollID, &opt.Text, &opt.SortOrder); err != nil {
			return nil, fmt.Errorf("failed to scan option: %w", err)
		}
		result.Options = append(result.Options, domain.OptionResult{
			Option:    opt,
			VoteCount: counts[opt.ID],
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating options: %w", err)
	}

	return &result, nil
}

// voteCounts recomputes per-option counts from the vote rows of one poll.
func (s *store) voteCounts(ctx context.Context, pollID uuid.UUID) (map[uuid.UUID]int64, int64, error) {
	query := `
		SELECT option_id, COUNT(*)
		FROM votes
		WHERE poll_id = $1
		GROUP BY option_id
	`
	rows, err := s.db.QueryContext(ctx, query, pollID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count votes: %w", err)
	}
	defer rows.Close()

	counts := make(map[uuid.UUID]int64)
	var total int64
	for rows.Next() {
		var optionID uuid.UUID
		var count int64
		if err := rows.Scan(&optionID, &count); err != nil {
			return nil, 0, fmt.Errorf("failed to scan vote count: %w", err)
		}
		counts[optionID] = count
		total += count
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating vote counts: %w", err)
	}

	return counts, total, nil
}

func (s *store) AddVote(ctx context.Context, pollID, optionID uuid.UUID, fingerprint, ipHash string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var exists bool
	err = tx.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM polls WHERE id = $1)`, pollID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check poll: %w", err)
	}
	if !exists {
		return domain.ErrPollNotFound
	}

	err = tx.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM options WHERE id = $1 AND poll_id = $2)`,
		optionID, pollID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check option: %w", err)
	}
	if !exists {
		return domain.ErrOptionNotFound
	}

	// Ordered dedup checks; the unique indexes below catch the race where a
	// conflicting vote lands between check and insert.
	err = tx.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM votes WHERE poll_id = $1 AND voter_fingerprint = $2)`,
		pollID, fingerprint).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check fingerprint: %w", err)
	}
	if exists {
		return domain.ErrFingerprintUsed
	}

	err = tx.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM votes WHERE poll_id = $1 AND ip_hash = $2)`,
		pollID, ipHash).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check ip hash: %w", err)
	}
	if exists {
		return domain.ErrAddressUsed
	}

	query := `
		INSERT INTO votes (id, poll_id, option_id, voter_fingerprint, ip_hash)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err = tx.ExecContext(ctx, query, uuid.New(), pollID, optionID, fingerprint, ipHash)
	if err != nil {
		if isUniqueViolation(err, "votes_poll_id_voter_fingerprint_key") {
			return domain.ErrFingerprintUsed
		}
		if isUniqueViolation(err, "votes_poll_id_ip_hash_key") {
			return domain.ErrAddressUsed
		}
		return fmt.Errorf("failed to insert vote: %w", err)
	}

	if err := tx.Commit(); err != nil {
		if isUniqueViolation(err, "votes_poll_id_voter_fingerprint_key") {
			return domain.ErrFingerprintUsed
		}
		if isUniqueViolation(err, "votes_poll_id_ip_hash_key") {
			return domain.ErrAddressUsed
		}
		return fmt.Errorf("failed to commit vote: %w", err)
	}

	return nil
}

func (s *store) HasVotedByFingerprint(ctx context.Context, pollID uuid.UUID, fingerprint string) (bool, error) {
	query := `SELECT 1 FROM votes WHERE poll_id = $1 AND voter_fingerprint = $2 LIMIT 1`
	var one int
	err := s.db.QueryRowContext(ctx, query, pollID, fingerprint).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check existing vote: %w", err)
	}
	return true, nil
}

func isUniqueViolation(err error, constraint string) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return pqErr.Code == "23505" && strings.Contains(pqErr.Constraint, constraint)
}
