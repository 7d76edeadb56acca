// internal/cli/stats.go
//
// `wordle stats` and `wordle stats reset`.

package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle/apps/solo/internal/stats"
)

func (a *app) statsCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "stats",
		Short: "Show played games, wins and streaks",
		RunE: func(c *cobra.Command, _ []string) error {
			if _, err := a.setupLogging(false); err != nil {
				return err
			}
			st, err := a.statsStore()
			if err != nil {
				return err
			}
			defer func() { _ = stats.Close(st) }()

			s, err := st.Load(c.Context())
			switch {
			case errors.Is(err, stats.ErrCorrupt):
				log.Warn().Err(err).Msg("stats unreadable, showing zero")
				s = stats.Stats{}
			case err != nil:
				return fmt.Errorf("load stats: %w", err)
			}
			printStats(c.OutOrStdout(), s)
			return nil
		},
	}

	c.AddCommand(a.statsResetCmd())
	return c
}

func (a *app) statsResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Zero all counters",
		RunE: func(c *cobra.Command, _ []string) error {
			if _, err := a.setupLogging(false); err != nil {
				return err
			}
			st, err := a.statsStore()
			if err != nil {
				return err
			}
			defer func() { _ = stats.Close(st) }()

			if err := st.Save(c.Context(), stats.Stats{}); err != nil {
				return fmt.Errorf("reset stats: %w", err)
			}
			fmt.Fprintln(c.OutOrStdout(), "stats reset")
			return nil
		},
	}
}

func printStats(w io.Writer, s stats.Stats) {
	fmt.Fprintf(w, "Played:         %d\n", s.GamesPlayed)
	fmt.Fprintf(w, "Won:            %d\n", s.GamesWon)
	fmt.Fprintf(w, "Win %%:          %d\n", s.WinRate())
	fmt.Fprintf(w, "Current streak: %d\n", s.CurrentStreak)
	fmt.Fprintf(w, "Max streak:     %d\n", s.MaxStreak)
}
