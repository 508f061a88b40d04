package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/quickpoll/api/internal/core/domain"
	"github.com/quickpoll/api/internal/core/ports"
	"github.com/quickpoll/api/internal/identity"
)

type PollHandler struct {
	service ports.PollService
}

func NewPollHandler(service ports.PollService) *PollHandler {
	return &PollHandler{
		service: service,
	}
}

type createPollRequest struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

type createPollResponse struct {
	Poll *domain.Poll `json:"poll"`
	Slug string       `json:"slug"`
}

type voteRequest struct {
	OptionID         string `json:"optionId"`
	VoterFingerprint string `json:"voterFingerprint"`
}

type votedResponse struct {
	Voted bool `json:"voted"`
}

func (h *PollHandler) CreatePoll(w http.ResponseWriter, r *http.Request) {
	var req createPollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	input := ports.CreatePollInput{
		Question: req.Question,
		Options:  req.Options,
	}

	poll, err := h.service.Create(r.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrQuestionRequired),
			errors.Is(err, domain.ErrTooFewOptions),
			errors.Is(err, domain.ErrTooManyOptions):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			slog.Error("failed to create poll", "error", err)
			writeError(w, http.StatusInternalServerError, "failed to create poll")
		}
		return
	}

	writeJSON(w, http.StatusCreated, createPollResponse{Poll: poll, Slug: poll.Slug})
}

func (h *PollHandler) GetPoll(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	if slug == "" {
		writeError(w, http.StatusBadRequest, "slug is required")
		return
	}

	poll, err := h.service.Results(r.Context(), slug)
	if err != nil {
		if errors.Is(err, domain.ErrPollNotFound) {
			writeError(w, http.StatusNotFound, "poll not found")
			return
		}
		slog.Error("failed to load poll", "slug", slug, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load poll")
		return
	}

	writeJSON(w, http.StatusOK, poll)
}

func (h *PollHandler) Vote(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	if slug == "" {
		writeError(w, http.StatusBadRequest, "slug is required")
		return
	}

	var req voteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.OptionID == "" || req.VoterFingerprint == "" {
		writeError(w, http.StatusBadRequest, "optionId and voterFingerprint are required")
		return
	}
	optionID, err := uuid.Parse(req.OptionID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid option")
		return
	}

	// Hash the apparent client address here so raw IPs never travel further
	// down the stack.
	input := ports.CastVoteInput{
		Slug:        slug,
		OptionID:    optionID,
		Fingerprint: req.VoterFingerprint,
		IPHash:      identity.Hash(clientIP(r)),
	}

	poll, err := h.service.CastVote(r.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrPollNotFound):
			writeError(w, http.StatusNotFound, "poll not found")
		case errors.Is(err, domain.ErrOptionNotFound):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, domain.ErrFingerprintUsed),
			errors.Is(err, domain.ErrAddressUsed):
			writeError(w, http.StatusConflict, err.Error())
		default:
			slog.Error("failed to submit vote", "slug", slug, "error", err)
			writeError(w, http.StatusInternalServerError, "failed to submit vote")
		}
		return
	}

	writeJSON(w, http.StatusOK, poll)
}

// CheckVoted never reports an error body: any failure degrades to voted=false.
func (h *PollHandler) CheckVoted(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	fingerprint := r.URL.Query().Get("fingerprint")

	voted := h.service.HasVoted(r.Context(), slug, fingerprint)
	writeJSON(w, http.StatusOK, votedResponse{Voted: voted})
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}
