// internal/cli/serve.go
//
// `wordle serve`: the JSON API.

package cli

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle/apps/solo/internal/config"
	"github.com/robalobadob/wordle/apps/solo/internal/httpserver"
	"github.com/robalobadob/wordle/apps/solo/internal/store"
)

func (a *app) serveCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the game as a JSON API",
		RunE: func(c *cobra.Command, _ []string) error {
			cleanup, err := a.setupLogging(false)
			defer func() { _ = cleanup() }()
			if err != nil {
				return err
			}
			if port == "" {
				port = a.cfg.HTTP.Port
			}

			ctx := c.Context()
			mgr, dict, closeStore, err := a.manager(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = closeStore() }()

			answers, allowed := dict.Stats()
			log.Info().Int("answers", answers).Int("allowed", allowed).Msg("word lists loaded")

			srv := httpserver.New(mgr, store.NewMemoryStore(), dict, httpserver.Options{
				ClientOrigin:  a.cfg.HTTP.ClientOrigin,
				SessionSecret: a.cfg.HTTP.SessionSecret,
				CookieName:    a.cfg.HTTP.CookieName,
				Secure:        a.cfg.Production(),
			})
			if a.cfg.HTTP.SessionSecret == config.DevSessionSecret {
				log.Warn().Msg("using the development session secret")
			}

			log.Info().Str("port", port).Str("env", a.cfg.Env).Msg("starting wordle server")
			if err := srv.Start(ctx, ":"+port); err != nil {
				log.Error().Err(err).Msg("server exited")
				return err
			}
			log.Info().Msg("server stopped")
			return nil
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "", "listen port (overrides PORT)")
	return cmd
}
