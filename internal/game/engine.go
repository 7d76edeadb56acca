// internal/game/engine.go
//
// Core game engine for a single Wordle session.
// Responsibilities:
//   - Create new sessions with fixed dimensions (6 rows x 5 letters).
//   - Validate guesses (length, dictionary membership) without mutating state.
//   - Score guesses with the two-pass evaluation in Evaluate.
//   - Track state transitions: in_progress → won | lost.
//
// The engine never touches the environment: the dictionary, clock and ID are
// supplied by the caller (see Option).
package game

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Option customises a new Session.
type Option func(*Session)

// WithID overrides the generated session identifier.
func WithID(id string) Option {
	return func(s *Session) { s.id = id }
}

// WithClock sets the time source used for start/finish timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		if now != nil {
			s.now = now
		}
	}
}

// New starts a session for target. Guesses are checked against dict;
// a nil dict accepts any five-letter alphabetic word.
func New(target string, dict Dictionary, opts ...Option) (*Session, error) {
	target = Normalize(target)
	if len(target) != WordLength || !isAlpha(target) {
		return nil, ErrInvalidTarget
	}
	s := &Session{
		id:       uuid.NewString(),
		target:   target,
		attempts: make([]Attempt, 0, MaxAttempts),
		status:   StatusInProgress,
		dict:     dict,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.startedAt = s.now()
	return s, nil
}

// Submit validates and scores a guess, advancing the session.
//
// Validation rules (a rejected guess never changes the session):
//   - Session must still be in progress (ErrGameOver).
//   - Guess must be exactly WordLength letters (ErrIncompleteGuess, or
//     ErrGuessTooLong which wraps it).
//   - Guess must be in the dictionary (ErrUnknownWord).
//
// State transitions:
//   - guess == target → won.
//   - otherwise, the MaxAttempts-th guess → lost.
//   - otherwise stay in progress on the next row.
func (s *Session) Submit(guess string) (Feedback, error) {
	if s.status.Finished() {
		return Feedback{}, ErrGameOver
	}
	guess = Normalize(guess)
	switch n := utf8.RuneCountInString(guess); {
	case n < WordLength:
		return Feedback{}, ErrIncompleteGuess
	case n > WordLength:
		return Feedback{}, ErrGuessTooLong
	}
	if !isAlpha(guess) {
		return Feedback{}, ErrUnknownWord
	}
	if s.dict != nil && !s.dict.Contains(guess) {
		return Feedback{}, ErrUnknownWord
	}

	fb := Evaluate(guess, s.target)
	s.attempts = append(s.attempts, Attempt{Guess: guess, Feedback: fb})

	switch {
	case guess == s.target:
		s.finish(StatusWon)
	case len(s.attempts) >= MaxAttempts:
		s.finish(StatusLost)
	}
	return fb, nil
}

func (s *Session) finish(st Status) {
	s.status = st
	s.finishedAt = s.now()
}

// Evaluate classifies each letter of guess against target.
//
// Pass 1 marks exact positional matches Correct and consumes those target
// letters. Pass 2 walks the remaining positions left to right; a guess letter
// still available somewhere in the target is Present and consumes the first
// such occurrence, otherwise it stays Absent. A letter is therefore never
// credited more times than it occurs in the target.
//
// Both words are expected to be normalised and WordLength long; positions
// beyond either input are reported Absent.
func Evaluate(guess, target string) Feedback {
	var fb Feedback
	for i := range fb {
		fb[i] = MarkAbsent
	}
	g := []rune(guess)
	remaining := []rune(target)
	n := min(len(g), len(remaining), WordLength)

	for i := 0; i < n; i++ {
		if g[i] == remaining[i] {
			fb[i] = MarkCorrect
			remaining[i] = 0
		}
	}

	for i := 0; i < n; i++ {
		if fb[i] != MarkAbsent {
			continue
		}
		for j, r := range remaining {
			if r != 0 && r == g[i] {
				fb[i] = MarkPresent
				remaining[j] = 0
				break
			}
		}
	}
	return fb
}

// Normalize lowercases and trims a word.
func Normalize(w string) string {
	return strings.ToLower(strings.TrimSpace(w))
}

// isAlpha checks that a string consists only of lowercase a–z.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}
