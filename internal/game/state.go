// internal/game/state.go
//
// Sentinel errors, session accessors, snapshots and player-facing text.

package game

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Errors reported by Submit and New. None of them change session state.
var (
	ErrIncompleteGuess = errors.New("not enough letters")
	ErrUnknownWord     = errors.New("not in word list")
	ErrGameOver        = errors.New("game finished")
	ErrInvalidTarget   = errors.New("invalid target word")

	// ErrGuessTooLong is the ErrIncompleteGuess reported for overlong input.
	ErrGuessTooLong = fmt.Errorf("word must be %d letters: %w", WordLength, ErrIncompleteGuess)
)

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Status returns the current state.
func (s *Session) Status() Status { return s.status }

// Row is the zero-based index of the next attempt (0..MaxAttempts).
func (s *Session) Row() int { return len(s.attempts) }

// Target returns the hidden word. Presentation layers should only show it
// once the session is finished.
func (s *Session) Target() string { return s.target }

// Attempts returns a copy of the accepted guesses in order.
func (s *Session) Attempts() []Attempt {
	out := make([]Attempt, len(s.attempts))
	copy(out, s.attempts)
	return out
}

// StartedAt is when the session was created.
func (s *Session) StartedAt() time.Time { return s.startedAt }

// Elapsed is the play time so far, frozen once the session finishes.
func (s *Session) Elapsed() time.Duration {
	if s.status.Finished() {
		return s.finishedAt.Sub(s.startedAt)
	}
	return s.now().Sub(s.startedAt)
}

// Snapshot copies the session for rendering. The target is withheld while
// the game is in progress.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		ID:        s.id,
		Status:    s.status,
		Row:       len(s.attempts),
		Attempts:  s.Attempts(),
		StartedAt: s.startedAt,
	}
	if s.status.Finished() {
		snap.Target = s.target
		t := s.finishedAt
		snap.FinishedAt = &t
	}
	return snap
}

// Message returns the player-facing text for a Submit error.
func Message(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrGuessTooLong):
		return fmt.Sprintf("Word must be %d letters", WordLength)
	case errors.Is(err, ErrIncompleteGuess):
		return "Not enough letters"
	case errors.Is(err, ErrUnknownWord):
		return "Not in word list"
	case errors.Is(err, ErrGameOver):
		return "Game is over, start a new one"
	}
	return err.Error()
}

// Outcome is the closing line for a finished game, empty while in progress.
func (s Snapshot) Outcome() string {
	switch s.Status {
	case StatusWon:
		return "Congratulations!"
	case StatusLost:
		return "Game Over! The word was " + strings.ToUpper(s.Target)
	}
	return ""
}
