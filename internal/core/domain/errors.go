package domain

import "errors"

var (
	ErrPollNotFound     = errors.New("poll not found")
	ErrOptionNotFound   = errors.New("invalid option for this poll")
	ErrQuestionRequired = errors.New("question is required")
	ErrTooFewOptions    = errors.New("at least 2 options are required")
	ErrTooManyOptions   = errors.New("at most 10 options are allowed")

	// Fairness rejections. Both dedup keys are checked on every vote;
	// fingerprint wins when both match.
	ErrFingerprintUsed = errors.New("you have already voted in this poll")
	ErrAddressUsed     = errors.New("only one vote per device/network is allowed")

	ErrSlugExhausted = errors.New("could not generate a unique poll slug")
	ErrInternal      = errors.New("internal server error")
)
