// internal/cli/play.go
//
// `wordle play`: the terminal game (also the default command).

package cli

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle/apps/solo/internal/tui"
)

func (a *app) playCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Play in the terminal (default)",
		RunE: func(c *cobra.Command, _ []string) error {
			return a.play(c.Context())
		},
	}
}

// play runs the TUI. Logs go to the log file since the terminal is taken.
func (a *app) play(ctx context.Context) error {
	cleanup, err := a.setupLogging(true)
	defer func() { _ = cleanup() }()
	if err != nil {
		return err
	}

	mgr, _, closeStore, err := a.manager(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = closeStore() }()

	log.Info().Str("stats_backend", a.cfg.Stats.Backend).Msg("starting terminal game")
	return tui.Run(ctx, mgr)
}
