// internal/httpserver/server.go
//
// Local HTTP bridge between the UI and the challenge.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs,
//     access logging).
//   - Public endpoints: "/", "/health".
//   - Round endpoints: state, light, guess, player name, next, reset,
//     reinitialize, suggestions.
//   - Catalog endpoints (routes_catalog.go): vehicles and editor drafts.
//   - Leaderboard and activity log reads.
//
// Notes:
//   - The bridge holds no game state of its own; every handler dispatches
//     one event into challenge.Challenge and renders the result.
//   - Domain errors map to JSON bodies {"error": "<code>"} (see errorStatus).

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/taillight/internal/activity"
	"github.com/robalobadob/taillight/internal/catalog"
	"github.com/robalobadob/taillight/internal/challenge"
	"github.com/robalobadob/taillight/internal/game"
	"github.com/robalobadob/taillight/internal/leaderboard"
)

// Server bundles the router and the challenge it drives.
type Server struct {
	r  *chi.Mux
	ch *challenge.Challenge
}

// New constructs a Server, installs middleware, and registers routes.
func New(ch *challenge.Challenge, clientOrigin string) *Server {
	s := &Server{r: chi.NewRouter(), ch: ch}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(requestLogger()...)              // zerolog access log
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(cors(clientOrigin))              // single-origin CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"taillight","endpoints":["/health","/state","/round/*","/vehicles","/drafts","/scores","/activity"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	// --- round ---
	s.r.Get("/state", s.handleState)
	s.r.Post("/round/next", s.handleNext)
	s.r.Post("/round/light", s.handleLight)
	s.r.Post("/round/guess", s.handleGuess)
	s.r.Post("/player", s.handlePlayer)
	s.r.Get("/suggest", s.handleSuggest)
	s.r.Post("/game/reset", s.handleReset)
	s.r.Post("/game/reinitialize", s.handleReinitialize)

	// --- catalog ---
	s.mountCatalog()

	// --- reads ---
	s.r.Get("/scores", func(w http.ResponseWriter, r *http.Request) {
		out := s.ch.Scores()
		if out == nil {
			out = []leaderboard.Record{}
		}
		writeJSON(w, http.StatusOK, out)
	})
	s.r.Get("/activity", func(w http.ResponseWriter, r *http.Request) {
		out := s.ch.Activity()
		if out == nil {
			out = []activity.Entry{}
		}
		writeJSON(w, http.StatusOK, out)
	})

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not_found","path":"`+r.URL.Path+`"}`, http.StatusNotFound)
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ------------------------------ ROUND --------------------------------------

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.ch.State())
}

func (s *Server) handleNext(w http.ResponseWriter, r *http.Request) {
	st, err := s.ch.Advance()
	s.respondState(w, st, err)
}

type lightReq struct {
	Percent int `json:"percent"`
}

func (s *Server) handleLight(w http.ResponseWriter, r *http.Request) {
	var req lightReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", nil)
		return
	}
	st, err := s.ch.SetLight(req.Percent)
	s.respondState(w, st, err)
}

type guessReq struct {
	Guess string `json:"guess"`
}

func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", nil)
		return
	}
	st, err := s.ch.SubmitGuess(r.Context(), req.Guess)
	s.respondState(w, st, err)
}

type playerReq struct {
	Name string `json:"name"`
}

func (s *Server) handlePlayer(w http.ResponseWriter, r *http.Request) {
	var req playerReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", nil)
		return
	}
	st, err := s.ch.SetPlayerName(r.Context(), req.Name)
	s.respondState(w, st, err)
}

func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	out := s.ch.Suggest(r.URL.Query().Get("q"))
	if out == nil {
		out = []string{}
	}
	writeJSON(w, http.StatusOK, map[string][]string{"suggestions": out})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	st, err := s.ch.ResetGame()
	s.respondState(w, st, err)
}

func (s *Server) handleReinitialize(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.ch.Reinitialize(r.Context()))
}

// respondState writes the state, or the mapped error with the state attached
// so the UI can keep rendering.
func (s *Server) respondState(w http.ResponseWriter, st challenge.State, err error) {
	if err != nil {
		code, msg := errorStatus(err)
		writeError(w, code, msg, map[string]any{"state": st})
		return
	}
	writeJSON(w, http.StatusOK, st)
}

// ------------------------------ helpers ------------------------------------

// errorStatus maps domain errors to an HTTP status and error code.
func errorStatus(err error) (int, string) {
	var verr *catalog.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusUnprocessableEntity, "validation"
	case errors.Is(err, game.ErrNameRequired):
		return http.StatusConflict, "name_required"
	case errors.Is(err, game.ErrNoActiveRound):
		return http.StatusConflict, "no_active_round"
	case errors.Is(err, game.ErrRoundResolved):
		return http.StatusConflict, "round_resolved"
	case errors.Is(err, game.ErrRoundInProgress):
		return http.StatusConflict, "round_in_progress"
	case errors.Is(err, game.ErrNameLocked):
		return http.StatusConflict, "name_locked"
	case errors.Is(err, game.ErrNoVehicles):
		return http.StatusConflict, "no_vehicles"
	case errors.Is(err, game.ErrEmptyGuess):
		return http.StatusBadRequest, "empty_guess"
	case errors.Is(err, game.ErrEmptyName):
		return http.StatusBadRequest, "empty_name"
	case errors.Is(err, catalog.ErrIndexOutOfRange):
		return http.StatusNotFound, "vehicle_not_found"
	case errors.Is(err, catalog.ErrDraftNotFound):
		return http.StatusNotFound, "draft_not_found"
	case errors.Is(err, catalog.ErrVehicleRemoved):
		return http.StatusConflict, "vehicle_removed"
	case errors.Is(err, catalog.ErrImageTooLarge):
		return http.StatusRequestEntityTooLarge, "image_too_large"
	case errors.Is(err, catalog.ErrEmptyImage):
		return http.StatusBadRequest, "empty_image"
	}
	log.Error().Err(err).Msg("unmapped error")
	return http.StatusInternalServerError, "internal"
}

// writeError writes {"error": code} plus any extra fields.
func writeError(w http.ResponseWriter, status int, code string, extra map[string]any) {
	body := map[string]any{"error": code}
	for k, v := range extra {
		body[k] = v
	}
	writeJSON(w, status, body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("encode response")
	}
}
