// internal/stats/stats.go

// Package stats tracks aggregate results across games and persists them
// behind the Store port.
package stats

// DefaultNamespace is the key stats are stored under unless configured.
const DefaultNamespace = "wordleStats"

// Stats are the aggregate counters shown to the player.
type Stats struct {
	GamesPlayed   int `json:"gamesPlayed"`
	GamesWon      int `json:"gamesWon"`
	CurrentStreak int `json:"currentStreak"`
	MaxStreak     int `json:"maxStreak"`
}

// Record folds one finished game into the counters.
func (s *Stats) Record(won bool) {
	s.GamesPlayed++
	if won {
		s.GamesWon++
		s.CurrentStreak++
		s.MaxStreak = max(s.MaxStreak, s.CurrentStreak)
		return
	}
	s.CurrentStreak = 0
}

// Valid reports whether the counters are internally consistent. Persisted
// records failing this check are treated as corrupt.
func (s Stats) Valid() bool {
	switch {
	case s.GamesPlayed < 0, s.GamesWon < 0, s.CurrentStreak < 0, s.MaxStreak < 0:
		return false
	case s.GamesWon > s.GamesPlayed:
		return false
	case s.CurrentStreak > s.MaxStreak, s.MaxStreak > s.GamesWon:
		return false
	}
	return true
}

// WinRate is the percentage of games won, rounded down.
func (s Stats) WinRate() int {
	if s.GamesPlayed == 0 {
		return 0
	}
	return s.GamesWon * 100 / s.GamesPlayed
}
