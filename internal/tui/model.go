// internal/tui/model.go
//
// Terminal front end for the solo game.
// Responsibilities:
//   - Collect letters into the input row (max five), delete, submit.
//   - Show the 6x5 board, a colour-coded keyboard and a status line.
//   - Tick once per second to refresh the mm:ss timer until the game ends.
//   - Start a fresh game on request; the abandoned one does not count.
//
// All game rules and stats live in session.Manager; the model only renders.

package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/robalobadob/wordle/apps/solo/internal/game"
	"github.com/robalobadob/wordle/apps/solo/internal/session"
	"github.com/robalobadob/wordle/apps/solo/internal/stats"
)

var keyboardRows = []string{"qwertyuiop", "asdfghjkl", "zxcvbnm"}

// tickMsg drives the timer. It carries the game ID so ticks scheduled for an
// abandoned game stop on their own.
type tickMsg struct {
	game string
	at   time.Time
}

func tick(gameID string) tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg{game: gameID, at: t}
	})
}

// Model is the bubbletea model for one terminal session.
type Model struct {
	ctx   context.Context
	mgr   *session.Manager
	theme Theme
	keys  keyMap
	help  help.Model

	game    *game.Session
	snap    game.Snapshot
	input   []rune
	letters map[rune]game.Mark // best known mark per letter
	message string
	elapsed time.Duration
	stats   stats.Stats
}

// New returns a model playing g.
func New(ctx context.Context, mgr *session.Manager, g *game.Session) Model {
	m := Model{
		ctx:   ctx,
		mgr:   mgr,
		theme: DefaultTheme(),
		keys:  defaultKeyMap(),
		help:  help.New(),
	}
	m.reset(g)
	return m
}

// Run starts a random game and blocks until the player quits.
func Run(ctx context.Context, mgr *session.Manager) error {
	g, err := mgr.NewGame()
	if err != nil {
		return err
	}
	p := tea.NewProgram(New(ctx, mgr, g), tea.WithAltScreen())
	_, err = p.Run()
	return err
}

func (m *Model) reset(g *game.Session) {
	m.game = g
	m.snap = m.mgr.Snapshot(g)
	m.input = nil
	m.letters = make(map[rune]game.Mark)
	m.message = ""
	m.elapsed = 0
	m.stats = m.mgr.Stats()
}

func (m Model) Init() tea.Cmd { return tick(m.game.ID()) }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if msg.game != m.game.ID() || m.snap.Status.Finished() {
			return m, nil
		}
		m.elapsed = m.game.Elapsed()
		return m, tick(m.game.ID())

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Restart):
			return m.restart()
		case key.Matches(msg, m.keys.Submit):
			if m.snap.Status.Finished() {
				return m.restart()
			}
			return m.submit()
		case key.Matches(msg, m.keys.Delete):
			if len(m.input) > 0 {
				m.input = m.input[:len(m.input)-1]
			}
			m.message = ""
			return m, nil
		case msg.Type == tea.KeyRunes:
			m.typeLetters(msg.Runes)
			return m, nil
		}
	}
	return m, nil
}

func (m *Model) typeLetters(rs []rune) {
	if m.snap.Status.Finished() {
		return
	}
	for _, r := range rs {
		if r >= 'A' && r <= 'Z' {
			r += 'a' - 'A'
		}
		if r < 'a' || r > 'z' || len(m.input) >= game.WordLength {
			continue
		}
		m.input = append(m.input, r)
		m.message = ""
	}
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	res, err := m.mgr.Submit(m.ctx, m.game, string(m.input))
	if err != nil {
		m.message = game.Message(err)
		return m, nil
	}
	m.snap = res.Game
	m.stats = res.Stats
	m.input = nil
	m.message = res.Game.Outcome()
	m.elapsed = m.game.Elapsed()
	for i, r := range res.Game.Attempts[len(res.Game.Attempts)-1].Guess {
		m.letters[r] = better(m.letters[r], res.Feedback[i])
	}
	return m, nil
}

func (m Model) restart() (tea.Model, tea.Cmd) {
	g, err := m.mgr.NewGame()
	if err != nil {
		m.message = err.Error()
		return m, nil
	}
	m.reset(g)
	return m, tick(g.ID())
}

var markRank = map[game.Mark]int{game.MarkAbsent: 1, game.MarkPresent: 2, game.MarkCorrect: 3}

// better keeps the most informative mark seen for a keyboard letter.
func better(have, got game.Mark) game.Mark {
	if markRank[got] > markRank[have] {
		return got
	}
	return have
}

func (m Model) View() string {
	var b strings.Builder

	secs := int(m.elapsed / time.Second)
	b.WriteString(m.theme.Title.Render("WORDLE"))
	b.WriteString("  ")
	b.WriteString(m.theme.Timer.Render(fmt.Sprintf("%02d:%02d", secs/60, secs%60)))
	b.WriteString("\n\n")

	b.WriteString(m.board())
	b.WriteString("\n")
	b.WriteString(m.keyboard())
	b.WriteString("\n")

	if m.message != "" {
		b.WriteString(m.theme.Message.Render(m.message))
		b.WriteString("\n")
	}
	if m.snap.Status.Finished() {
		b.WriteString(m.theme.Help.Render(fmt.Sprintf(
			"played %d  won %d (%d%%)  streak %d  best %d",
			m.stats.GamesPlayed, m.stats.GamesWon, m.stats.WinRate(), m.stats.CurrentStreak, m.stats.MaxStreak,
		)))
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(m.keys))

	return m.theme.Card.Render(b.String())
}

func (m Model) board() string {
	rows := make([]string, 0, game.MaxAttempts)
	for r := 0; r < game.MaxAttempts; r++ {
		tiles := make([]string, game.WordLength)
		for c := 0; c < game.WordLength; c++ {
			switch {
			case r < len(m.snap.Attempts):
				a := m.snap.Attempts[r]
				tiles[c] = m.theme.tile(a.Feedback[c]).Render(strings.ToUpper(string(a.Guess[c])))
			case r == len(m.snap.Attempts) && c < len(m.input):
				tiles[c] = m.theme.Tile.Render(strings.ToUpper(string(m.input[c])))
			case r == len(m.snap.Attempts) && c == len(m.input) && !m.snap.Status.Finished():
				tiles[c] = m.theme.Active.Render("_")
			default:
				tiles[c] = m.theme.Tile.Render(" ")
			}
		}
		rows = append(rows, strings.Join(tiles, " "))
	}
	return strings.Join(rows, "\n\n") + "\n"
}

func (m Model) keyboard() string {
	lines := make([]string, 0, len(keyboardRows))
	for _, row := range keyboardRows {
		keys := make([]string, 0, len(row))
		for _, r := range row {
			keys = append(keys, m.theme.key(m.letters[r]).Render(strings.ToUpper(string(r))))
		}
		lines = append(lines, strings.Join(keys, " "))
	}
	return lipgloss.JoinVertical(lipgloss.Center, lines...) + "\n"
}
