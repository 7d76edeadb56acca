// internal/httpserver/run.go
//
// Listening, graceful shutdown and the idle-game sweeper.

package httpserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

// idleGameTTL is how long an untouched game survives in the registry.
const idleGameTTL = 2 * time.Hour

type expirer interface {
	Expire(ttl time.Duration) int
}

// Start runs the HTTP server until ctx is cancelled, then shuts it down
// gracefully. Idle games are swept from the registry every interval.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	if e, ok := s.games.(expirer); ok {
		go s.sweep(ctx, e, time.Minute)
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) sweep(ctx context.Context, e expirer, every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := e.Expire(idleGameTTL); n > 0 {
				log.Debug().Int("expired", n).Msg("swept idle games")
			}
		}
	}
}
