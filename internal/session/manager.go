// internal/session/manager.go
//
// Manager starts games and keeps the aggregate stats in step with them.
// Responsibilities:
//   - Draw a random target from the dictionary (injectable random source).
//   - Forward guesses to game.Session and, when a guess ends the game, fold
//     the result into Stats and persist them through stats.Store.
//   - Recover from unreadable persisted stats by starting from zero.
//
// Persisting is best effort: a failed save is logged and the in-memory
// counters stay authoritative for the rest of the process. Before a finished
// game is recorded the stored counters are re-read, so several processes
// sharing one store add to each other's results instead of overwriting them.

package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/solo/internal/game"
	"github.com/robalobadob/wordle/apps/solo/internal/stats"
	"github.com/robalobadob/wordle/apps/solo/internal/words"
)

// Dictionary is what the manager needs from a word list.
type Dictionary interface {
	game.Dictionary
	IsAnswer(word string) bool
	Random(r words.Rand) string
}

// Option customises a Manager.
type Option func(*Manager)

// WithRand sets the source used to pick targets.
func WithRand(r words.Rand) Option {
	return func(m *Manager) { m.rng = r }
}

// WithClock sets the time source passed to new sessions.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// Manager is safe for concurrent use. Sessions it hands out must only be
// advanced through Submit.
type Manager struct {
	mu    sync.Mutex
	dict  Dictionary
	store stats.Store
	rng   words.Rand
	now   func() time.Time
	stats stats.Stats
}

// NewManager loads the persisted stats and returns a ready manager.
// Unreadable stats are replaced with zeroed counters.
func NewManager(ctx context.Context, dict Dictionary, store stats.Store, opts ...Option) (*Manager, error) {
	m := &Manager{dict: dict, store: store, now: time.Now}
	for _, opt := range opts {
		opt(m)
	}
	if m.rng == nil {
		r, err := words.NewRand()
		if err != nil {
			return nil, err
		}
		m.rng = r
	}

	st, err := store.Load(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("stats unreadable, starting from zero")
		st = stats.Stats{}
	}
	m.stats = st
	return m, nil
}

// NewGame starts a session with a random target. Any previous session is
// simply abandoned; abandoning does not count towards stats.
func (m *Manager) NewGame() (*game.Session, error) {
	m.mu.Lock()
	target := m.dict.Random(m.rng)
	m.mu.Unlock()
	return m.start(target)
}

// NewGameWith starts a session with a fixed target. The target must be a
// word the dictionary accepts as a guess, otherwise the game is unwinnable.
func (m *Manager) NewGameWith(target string) (*game.Session, error) {
	if !m.dict.Contains(game.Normalize(target)) {
		return nil, fmt.Errorf("new game: %q not in word list: %w", target, game.ErrInvalidTarget)
	}
	return m.start(target)
}

func (m *Manager) start(target string) (*game.Session, error) {
	s, err := game.New(target, m.dict, game.WithClock(m.now))
	if err != nil {
		return nil, fmt.Errorf("new game: %w", err)
	}
	log.Debug().
		Str("game", s.ID()).
		Str("target", s.Target()).
		Bool("answer_list", m.dict.IsAnswer(s.Target())).
		Msg("new game")
	return s, nil
}

// Result is the outcome of an accepted guess, captured under the manager's
// lock so callers never read a session while another request advances it.
type Result struct {
	Feedback game.Feedback
	Game     game.Snapshot
	Stats    stats.Stats
}

// Submit applies guess to s. When the guess finishes the game the stats are
// updated and saved before returning.
func (m *Manager) Submit(ctx context.Context, s *game.Session, guess string) (Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	fb, err := s.Submit(guess)
	if err != nil {
		return Result{}, err
	}
	if st := s.Status(); st.Finished() {
		if cur, err := m.store.Load(ctx); err == nil {
			m.stats = cur
		} else {
			log.Warn().Err(err).Msg("reload stats, keeping in-memory counters")
		}
		m.stats.Record(st == game.StatusWon)
		log.Info().
			Str("game", s.ID()).
			Str("status", string(st)).
			Int("guesses", s.Row()).
			Dur("elapsed", s.Elapsed()).
			Msg("game finished")
		if err := m.store.Save(ctx, m.stats); err != nil {
			log.Warn().Err(err).Msg("save stats")
		}
	}
	return Result{Feedback: fb, Game: s.Snapshot(), Stats: m.stats}, nil
}

// Snapshot reads s under the manager's lock.
func (m *Manager) Snapshot(s *game.Session) game.Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return s.Snapshot()
}

// Stats returns a snapshot of the aggregate counters.
func (m *Manager) Stats() stats.Stats {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stats
}

// ResetStats zeroes and persists the counters.
func (m *Manager) ResetStats(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stats = stats.Stats{}
	if err := m.store.Save(ctx, m.stats); err != nil {
		return fmt.Errorf("reset stats: %w", err)
	}
	return nil
}
