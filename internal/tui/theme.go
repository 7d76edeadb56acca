// internal/tui/theme.go
//
// Tile, keyboard and chrome styles.

package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/robalobadob/wordle/apps/solo/internal/game"
)

// Theme groups the styles used by the board and keyboard.
type Theme struct {
	Title   lipgloss.Style
	Timer   lipgloss.Style
	Message lipgloss.Style
	Help    lipgloss.Style
	Card    lipgloss.Style

	Tile    lipgloss.Style // empty or typed, not yet evaluated
	Active  lipgloss.Style // next tile to be typed
	Correct lipgloss.Style
	Present lipgloss.Style
	Absent  lipgloss.Style

	Key lipgloss.Style // keyboard letter with no known state
}

// DefaultTheme uses the classic green / yellow / grey palette.
func DefaultTheme() Theme {
	tile := lipgloss.NewStyle().
		Width(3).
		Align(lipgloss.Center).
		Bold(true).
		Foreground(lipgloss.Color("255")).
		Background(lipgloss.Color("236"))

	return Theme{
		Title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")),
		Timer:   lipgloss.NewStyle().Faint(true),
		Message: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")),
		Help:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Card: lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")),

		Tile:    tile,
		Active:  tile.Copy().Background(lipgloss.Color("61")),
		Correct: tile.Copy().Background(lipgloss.Color("28")),
		Present: tile.Copy().Background(lipgloss.Color("136")),
		Absent:  tile.Copy().Background(lipgloss.Color("240")),

		Key: lipgloss.NewStyle().Padding(0, 1).Background(lipgloss.Color("238")),
	}
}

// tile picks the style for an evaluated mark.
func (t Theme) tile(mark game.Mark) lipgloss.Style {
	switch mark {
	case game.MarkCorrect:
		return t.Correct
	case game.MarkPresent:
		return t.Present
	case game.MarkAbsent:
		return t.Absent
	}
	return t.Tile
}

// key picks the keyboard style for a letter's best known mark.
func (t Theme) key(mark game.Mark) lipgloss.Style {
	if mark == "" {
		return t.Key
	}
	return t.tile(mark).Copy().Width(0).Padding(0, 1)
}
