// internal/game/types.go
//
// Core type definitions for the Wordle game engine.
// Defines:
//   - Mark: per-letter result of a guess (correct/present/absent).
//   - Feedback: the five marks for one guess, aligned to the guess letters.
//   - Status: in_progress → won | lost.
//   - Attempt: one submitted row.
//   - Session: state for a single in-progress or finished game.

package game

import "time"

const (
	WordLength  = 5 // letters per word
	MaxAttempts = 6 // rows per session
)

// Mark represents the evaluation result for a single letter in a guess.
// Possible values:
//   - "correct": letter is in the target at the same position.
//   - "present": letter is in the target at another, unconsumed position.
//   - "absent":  letter is not (or no longer) available in the target.
type Mark string

const (
	MarkCorrect Mark = "correct"
	MarkPresent Mark = "present"
	MarkAbsent  Mark = "absent"
)

// Feedback is the per-letter result of one guess.
type Feedback [WordLength]Mark

// Solved reports whether every tile is correct.
func (f Feedback) Solved() bool {
	for _, m := range f {
		if m != MarkCorrect {
			return false
		}
	}
	return true
}

// Status is the coarse state of a session.
type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusWon        Status = "won"
	StatusLost       Status = "lost"
)

// Finished reports whether s is terminal.
func (s Status) Finished() bool { return s == StatusWon || s == StatusLost }

// Attempt is one accepted guess together with its feedback.
type Attempt struct {
	Guess    string   `json:"guess"`
	Feedback Feedback `json:"feedback"`
}

// Dictionary answers guess-membership queries.
// *words.Dictionary satisfies it.
type Dictionary interface {
	Contains(word string) bool
}

// Session holds the state of a single game.
// It is not safe for concurrent use; callers serialise access.
type Session struct {
	id         string
	target     string    // always lowercase
	attempts   []Attempt // len(attempts) is the current row index
	status     Status
	dict       Dictionary
	now        func() time.Time
	startedAt  time.Time
	finishedAt time.Time
}

// Snapshot is a read-only copy of a session, suitable for rendering or JSON.
// Target is only populated once the session is finished.
type Snapshot struct {
	ID         string     `json:"id"`
	Status     Status     `json:"status"`
	Row        int        `json:"row"`
	Attempts   []Attempt  `json:"attempts"`
	Target     string     `json:"target,omitempty"`
	StartedAt  time.Time  `json:"startedAt"`
	FinishedAt *time.Time `json:"finishedAt,omitempty"`
}
