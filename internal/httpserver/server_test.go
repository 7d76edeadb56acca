package httpserver

import (
	"context"
	"encoding/json"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/solo/internal/game"
	"github.com/robalobadob/wordle/apps/solo/internal/session"
	"github.com/robalobadob/wordle/apps/solo/internal/stats"
	"github.com/robalobadob/wordle/apps/solo/internal/store"
	"github.com/robalobadob/wordle/apps/solo/internal/words"
)

type fixture struct {
	srv   *Server
	games *store.Memory
	stats stats.Store
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dict, err := words.New([]string{"crane", "slate"}, []string{"moist", "speed", "erase"})
	require.NoError(t, err)
	st := stats.NewMemoryStore()
	mgr, err := session.NewManager(context.Background(), dict, st, session.WithRand(rand.New(rand.NewPCG(7, 7))))
	require.NoError(t, err)
	games := store.NewMemoryStore()
	srv := New(mgr, games, dict, Options{
		ClientOrigin:  "http://localhost:5173",
		SessionSecret: "test-secret",
		CookieName:    "wordle_game",
	})
	return &fixture{srv: srv, games: games, stats: st}
}

func (f *fixture) do(t *testing.T, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.srv.Handler().ServeHTTP(rec, req)
	return rec
}

func (f *fixture) newGame(t *testing.T, answer string) newGameRes {
	t.Helper()
	rec := f.do(t, http.MethodPost, "/game/new", `{"answer":"`+answer+`"}`, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var res newGameRes
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	return res
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestHealth(t *testing.T) {
	f := newFixture(t)
	rec := f.do(t, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
}

func TestDebugWords(t *testing.T) {
	f := newFixture(t)
	rec := f.do(t, http.MethodGet, "/debug/words", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"answers":2,"allowed":5}`, rec.Body.String())
}

func TestNewGame_SetsCookieAndRegisters(t *testing.T) {
	f := newFixture(t)
	rec := f.do(t, http.MethodPost, "/game/new", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	res := decode[newGameRes](t, rec)
	assert.NotEmpty(t, res.GameID)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, game.MaxAttempts, res.Rows)
	assert.Equal(t, game.WordLength, res.Cols)
	assert.Equal(t, 1, f.games.Len())

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "wordle_game", cookies[0].Name)
	assert.Equal(t, res.Token, cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
}

func TestNewGame_ReplacesPreviousGame(t *testing.T) {
	f := newFixture(t)
	first := f.newGame(t, "crane")

	rec := f.do(t, http.MethodPost, "/game/new", `{"answer":"slate"}`, first.Token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, f.games.Len())

	rec = f.do(t, http.MethodGet, "/game", "", first.Token)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	st, err := f.stats.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, stats.Stats{}, st)
}

func TestGuess_CookieRoundTrip(t *testing.T) {
	f := newFixture(t)
	rec := f.do(t, http.MethodPost, "/game/new", `{"answer":"crane"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)
	cookie := rec.Result().Cookies()[0]

	req := httptest.NewRequest(http.MethodPost, "/game/guess", strings.NewReader(`{"guess":"slate"}`))
	req.AddCookie(cookie)
	rec = httptest.NewRecorder()
	f.srv.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	res := decode[guessRes](t, rec)
	assert.Equal(t, game.Feedback{game.MarkAbsent, game.MarkAbsent, game.MarkCorrect, game.MarkAbsent, game.MarkCorrect}, res.Marks)
	assert.Equal(t, game.StatusInProgress, res.State)
	assert.Equal(t, 1, res.Row)
	assert.Empty(t, res.Answer)
	assert.Nil(t, res.Stats)
}

func TestGuess_WinReportsStats(t *testing.T) {
	f := newFixture(t)
	g := f.newGame(t, "speed")

	rec := f.do(t, http.MethodPost, "/game/guess", `{"guess":"erase"}`, g.Token)
	require.Equal(t, http.StatusOK, rec.Code)
	res := decode[guessRes](t, rec)
	assert.Equal(t, game.Feedback{game.MarkPresent, game.MarkAbsent, game.MarkAbsent, game.MarkPresent, game.MarkPresent}, res.Marks)

	rec = f.do(t, http.MethodPost, "/game/guess", `{"guess":"SPEED"}`, g.Token)
	require.Equal(t, http.StatusOK, rec.Code)
	res = decode[guessRes](t, rec)
	assert.Equal(t, game.StatusWon, res.State)
	assert.Equal(t, "Congratulations!", res.Message)
	assert.Equal(t, "speed", res.Answer)
	require.NotNil(t, res.Stats)
	assert.Equal(t, stats.Stats{GamesPlayed: 1, GamesWon: 1, CurrentStreak: 1, MaxStreak: 1}, *res.Stats)

	rec = f.do(t, http.MethodPost, "/game/guess", `{"guess":"crane"}`, g.Token)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = f.do(t, http.MethodGet, "/stats", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"gamesPlayed":1,"gamesWon":1,"currentStreak":1,"maxStreak":1,"winRate":100}`, rec.Body.String())
}

func TestGuess_LossRevealsAnswer(t *testing.T) {
	f := newFixture(t)
	g := f.newGame(t, "crane")

	var res guessRes
	for i := 0; i < game.MaxAttempts; i++ {
		rec := f.do(t, http.MethodPost, "/game/guess", `{"guess":"moist"}`, g.Token)
		require.Equal(t, http.StatusOK, rec.Code)
		res = decode[guessRes](t, rec)
	}
	assert.Equal(t, game.StatusLost, res.State)
	assert.Equal(t, "Game Over! The word was CRANE", res.Message)
	assert.Equal(t, "crane", res.Answer)
	require.NotNil(t, res.Stats)
	assert.Equal(t, 0, res.Stats.CurrentStreak)
}

func TestGuess_ValidationErrors(t *testing.T) {
	f := newFixture(t)
	g := f.newGame(t, "crane")

	tests := []struct {
		name string
		body string
		code int
		err  string
		msg  string
	}{
		{name: "short", body: `{"guess":"cra"}`, code: http.StatusBadRequest, err: "incomplete_guess", msg: "Not enough letters"},
		{name: "too long", body: `{"guess":"cranes"}`, code: http.StatusBadRequest, err: "incomplete_guess", msg: "Word must be 5 letters"},
		{name: "unknown", body: `{"guess":"zzzzz"}`, code: http.StatusBadRequest, err: "unknown_word", msg: "Not in word list"},
		{name: "bad json", body: `{`, code: http.StatusBadRequest, err: "bad_json"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := f.do(t, http.MethodPost, "/game/guess", tt.body, g.Token)
			assert.Equal(t, tt.code, rec.Code)
			res := decode[errorRes](t, rec)
			assert.Equal(t, tt.err, res.Error)
			if tt.msg != "" {
				assert.Equal(t, tt.msg, res.Message)
			}
		})
	}

	rec := f.do(t, http.MethodGet, "/game", "", g.Token)
	require.Equal(t, http.StatusOK, rec.Code)
	snap := decode[game.Snapshot](t, rec)
	assert.Equal(t, 0, snap.Row)
	assert.Empty(t, snap.Target)
}

func TestGuess_TokenProblems(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/game/guess", `{"guess":"crane"}`, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = f.do(t, http.MethodPost, "/game/guess", `{"guess":"crane"}`, "not-a-token")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	other := newFixture(t)
	other.srv.opts.SessionSecret = "another-secret"
	tok, _, err := other.srv.signGameToken("whatever")
	require.NoError(t, err)
	rec = f.do(t, http.MethodGet, "/game", "", tok)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	tok, _, err = f.srv.signGameToken("expired-or-unknown")
	require.NoError(t, err)
	rec = f.do(t, http.MethodGet, "/game", "", tok)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestNewGame_InvalidAnswer(t *testing.T) {
	f := newFixture(t)
	for _, answer := range []string{"no", "qxzvw"} {
		rec := f.do(t, http.MethodPost, "/game/new", `{"answer":"`+answer+`"}`, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, answer)
		assert.Equal(t, "invalid_answer", decode[errorRes](t, rec).Error, answer)
		assert.Empty(t, rec.Result().Cookies(), answer)
	}
	assert.Equal(t, 0, f.games.Len())
}

func TestResetStats(t *testing.T) {
	f := newFixture(t)
	g := f.newGame(t, "crane")
	rec := f.do(t, http.MethodPost, "/game/guess", `{"guess":"crane"}`, g.Token)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodDelete, "/stats", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	st, err := f.stats.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, stats.Stats{}, st)
}

func TestCORSPreflight(t *testing.T) {
	f := newFixture(t)
	req := httptest.NewRequest(http.MethodOptions, "/game/guess", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	f.srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
}

func TestUnknownRoute(t *testing.T) {
	f := newFixture(t)
	rec := f.do(t, http.MethodGet, "/nope", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", decode[errorRes](t, rec).Error)
}
