package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type statusResponse struct {
	Storage string `json:"storage"`
	Message string `json:"message"`
}

// NewHandler builds the API router. storage names the active backend
// ("postgres" or "memory") for the status endpoint.
func NewHandler(pollHandler *PollHandler, storage string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)

	r.Route("/api", func(r chi.Router) {
		r.Get("/status", func(w http.ResponseWriter, req *http.Request) {
			msg := "Using postgres; polls persist across restarts."
			if storage == "memory" {
				msg = "Using in-memory storage; polls do not persist across restarts."
			}
			writeJSON(w, http.StatusOK, statusResponse{Storage: storage, Message: msg})
		})

		r.Route("/polls", func(r chi.Router) {
			r.Post("/", pollHandler.CreatePoll)
			r.Get("/{slug}", pollHandler.GetPoll)
			r.Post("/{slug}/vote", pollHandler.Vote)
			r.Get("/{slug}/voted", pollHandler.CheckVoted)
		})
	})

	return r
}
