// internal/httpserver/server.go
//
// HTTP presentation layer for the solo game.
// Responsibilities:
//   - Router + middleware (request IDs, access logs, CORS, timeouts, panic
//     recovery, JSON content type).
//   - Game endpoints: POST /game/new, POST /game/guess, GET /game.
//   - Stats endpoints: GET /stats, DELETE /stats.
//   - Diagnostics: "/", "/health", "/debug/words".
//
// Notes:
//   - The current game is identified by a signed token (see token.go), sent
//     back as an HttpOnly cookie and in the /game/new body for bearer use.
//   - Starting a new game abandons the previous one without touching stats.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/solo/internal/game"
	"github.com/robalobadob/wordle/apps/solo/internal/session"
	"github.com/robalobadob/wordle/apps/solo/internal/stats"
	"github.com/robalobadob/wordle/apps/solo/internal/store"
	"github.com/robalobadob/wordle/apps/solo/internal/words"
)

// Options carries the HTTP-facing settings.
type Options struct {
	ClientOrigin  string
	SessionSecret string
	CookieName    string
	Secure        bool // Secure + SameSite=None cookies
}

// Server bundles router, session registry and the game manager.
type Server struct {
	r     *chi.Mux
	mgr   *session.Manager
	games store.Store
	dict  *words.Dictionary
	opts  Options
}

// New constructs a Server, installs middleware, and registers routes.
func New(mgr *session.Manager, games store.Store, dict *words.Dictionary, opts Options) *Server {
	if opts.CookieName == "" {
		opts.CookieName = "wordle_game"
	}
	s := &Server{r: chi.NewRouter(), mgr: mgr, games: games, dict: dict, opts: opts}

	// --- middleware ---
	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(hlog.NewHandler(log.Logger))
	s.r.Use(hlog.AccessHandler(accessLog))
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(10 * time.Second))
	s.r.Use(jsonContentType)
	s.r.Use(cors.New(cors.Options{
		AllowedOrigins:   []string{opts.ClientOrigin},
		AllowCredentials: true,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
	}).Handler)

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"service":   "wordle-solo",
			"endpoints": []string{"/health", "POST /game/new", "POST /game/guess", "GET /game", "GET /stats", "DELETE /stats"},
		})
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})
	s.r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
		a, g := s.dict.Stats()
		writeJSON(w, http.StatusOK, map[string]int{"answers": a, "allowed": g})
	})

	// --- game ---
	s.r.Post("/game/new", s.handleNewGame)
	s.r.Post("/game/guess", s.handleGuess)
	s.r.Get("/game", s.handleGetGame)

	// --- stats ---
	s.r.Get("/stats", s.handleStats)
	s.r.Delete("/stats", s.handleResetStats)

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found", "no route for "+r.URL.Path)
	})
	return s
}

// Handler exposes the router (useful for tests and http.Server).
func (s *Server) Handler() http.Handler { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

func accessLog(r *http.Request, status, size int, d time.Duration) {
	hlog.FromRequest(r).Info().
		Str("req_id", chimw.GetReqID(r.Context())).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Int("status", status).
		Int("size", size).
		Dur("duration", d).
		Msg("request")
}

// ------------------------------ GAME ---------------------------------------

type newGameReq struct {
	Answer string `json:"answer"` // optional fixed target (testing)
}

type newGameRes struct {
	GameID string `json:"gameId"`
	Token  string `json:"token"`
	Rows   int    `json:"rows"`
	Cols   int    `json:"cols"`
}

// handleNewGame starts a session, abandoning the caller's previous one.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_json", err.Error())
			return
		}
	}

	if prev, err := s.gameIDFromRequest(r); err == nil {
		_ = s.games.Delete(r.Context(), prev)
	}

	var (
		g   *game.Session
		err error
	)
	if req.Answer != "" {
		g, err = s.mgr.NewGameWith(req.Answer)
	} else {
		g, err = s.mgr.NewGame()
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_answer", err.Error())
		return
	}
	if err := s.games.Save(r.Context(), g); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("save game")
		writeError(w, http.StatusInternalServerError, "save_failed", "could not store game")
		return
	}

	tok, exp, err := s.signGameToken(g.ID())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "sign_failed", "could not sign game token")
		return
	}
	s.setGameCookie(w, tok, exp)
	writeJSON(w, http.StatusOK, newGameRes{GameID: g.ID(), Token: tok, Rows: game.MaxAttempts, Cols: game.WordLength})
}

type guessReq struct {
	Guess string `json:"guess"`
}

type guessRes struct {
	Marks   game.Feedback `json:"marks"`
	State   game.Status   `json:"state"`
	Row     int           `json:"row"`
	Message string        `json:"message,omitempty"`
	Answer  string        `json:"answer,omitempty"`
	Stats   *stats.Stats  `json:"stats,omitempty"`
}

// handleGuess applies a guess to the caller's current game.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", err.Error())
		return
	}
	g, ok := s.currentGame(w, r)
	if !ok {
		return
	}

	res, err := s.mgr.Submit(r.Context(), g, req.Guess)
	switch {
	case errors.Is(err, game.ErrIncompleteGuess):
		writeError(w, http.StatusBadRequest, "incomplete_guess", game.Message(err))
		return
	case errors.Is(err, game.ErrUnknownWord):
		writeError(w, http.StatusBadRequest, "unknown_word", game.Message(err))
		return
	case errors.Is(err, game.ErrGameOver):
		writeError(w, http.StatusConflict, "game_over", game.Message(err))
		return
	case err != nil:
		hlog.FromRequest(r).Error().Err(err).Msg("submit guess")
		writeError(w, http.StatusInternalServerError, "internal", "could not apply guess")
		return
	}
	_ = s.games.Save(r.Context(), g) // refresh idle timer

	out := guessRes{
		Marks:   res.Feedback,
		State:   res.Game.Status,
		Row:     res.Game.Row,
		Message: res.Game.Outcome(),
		Answer:  res.Game.Target,
	}
	if res.Game.Status.Finished() {
		out.Stats = &res.Stats
	}
	writeJSON(w, http.StatusOK, out)
}

// handleGetGame returns the caller's current game (target hidden until the
// game is over).
func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	g, ok := s.currentGame(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.mgr.Snapshot(g))
}

// currentGame resolves the request's game or writes an error response.
func (s *Server) currentGame(w http.ResponseWriter, r *http.Request) (*game.Session, bool) {
	id, err := s.gameIDFromRequest(r)
	switch {
	case errors.Is(err, errNoToken):
		writeError(w, http.StatusNotFound, "no_game", "start a game first")
		return nil, false
	case err != nil:
		writeError(w, http.StatusUnauthorized, "invalid_token", "game token is invalid or expired")
		return nil, false
	}
	g, err := s.games.Get(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusNotFound, "no_game", "game not found")
		return nil, false
	}
	return g, true
}

// ------------------------------ STATS --------------------------------------

type statsRes struct {
	stats.Stats
	WinRate int `json:"winRate"`
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	st := s.mgr.Stats()
	writeJSON(w, http.StatusOK, statsRes{Stats: st, WinRate: st.WinRate()})
}

func (s *Server) handleResetStats(w http.ResponseWriter, r *http.Request) {
	if err := s.mgr.ResetStats(r.Context()); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("reset stats")
		writeError(w, http.StatusInternalServerError, "reset_failed", "could not reset stats")
		return
	}
	writeJSON(w, http.StatusOK, statsRes{})
}

// ------------------------------- util --------------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorRes struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, errorRes{Error: code, Message: msg})
}
