// internal/cli/root.go

// Package cli wires configuration, logging and the game packages into the
// wordle command.
package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle/apps/solo/internal/config"
	"github.com/robalobadob/wordle/apps/solo/internal/logging"
	"github.com/robalobadob/wordle/apps/solo/internal/session"
	"github.com/robalobadob/wordle/apps/solo/internal/stats"
	"github.com/robalobadob/wordle/apps/solo/internal/words"
)

// Execute runs the root command and exits non-zero on error.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// app is filled in by the root command before any subcommand runs.
type app struct {
	configPath string
	cfg        config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:          "wordle",
		Short:        "Guess the five-letter word in six tries",
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := config.Load(a.configPath)
			if err != nil {
				return err
			}
			a.cfg = cfg
			return nil
		},
		RunE: func(c *cobra.Command, args []string) error {
			return a.play(c.Context())
		},
	}

	cmd.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/wordle/config.yaml)")

	cmd.AddCommand(a.playCmd())
	cmd.AddCommand(a.serveCmd())
	cmd.AddCommand(a.statsCmd())
	cmd.AddCommand(a.wordsCmd())
	return cmd
}

// setupLogging installs the global logger; toFile sends output to the
// configured log file instead of stderr.
func (a *app) setupLogging(toFile bool) (func() error, error) {
	opts := logging.Options{Level: a.cfg.Log.Level, Pretty: a.cfg.Log.Pretty}
	if toFile {
		opts.File = a.cfg.Log.File
	}
	return logging.Setup(opts)
}

func (a *app) dictionary() (*words.Dictionary, error) {
	return words.Load(words.Sources{
		AnswersFile: a.cfg.Words.AnswersFile,
		AllowedFile: a.cfg.Words.AllowedFile,
	})
}

func (a *app) statsStore() (stats.Store, error) {
	return stats.Open(a.cfg.Stats.Backend, a.cfg.Stats.Path, a.cfg.Stats.Namespace)
}

// manager opens the word list and stats store and returns a ready manager.
// The returned close func releases the store.
func (a *app) manager(ctx context.Context) (*session.Manager, *words.Dictionary, func() error, error) {
	dict, err := a.dictionary()
	if err != nil {
		return nil, nil, nil, err
	}
	st, err := a.statsStore()
	if err != nil {
		return nil, nil, nil, err
	}
	mgr, err := session.NewManager(ctx, dict, st)
	if err != nil {
		_ = stats.Close(st)
		return nil, nil, nil, err
	}
	return mgr, dict, func() error { return stats.Close(st) }, nil
}
