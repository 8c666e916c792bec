package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/stumpsai/stumpsai/internal/cache"
	"github.com/stumpsai/stumpsai/internal/config"
	"github.com/stumpsai/stumpsai/internal/store"
)

type Server struct {
	cfg   *config.Config
	http  *http.Server
	db    *store.DB    // held for graceful close
	cache *cache.Cache // held for graceful close
}

func New(ctx context.Context, cfg *config.Config) (*Server, error) {
	s := &Server{cfg: cfg}

	router, err := s.setupRoutes(ctx)
	if err != nil {
		return nil, fmt.Errorf("setup routes: %w", err)
	}

	s.http = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return s, nil
}

func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	log.Info().Str("addr", s.http.Addr).Msg("server listening")

	select {
	case <-ctx.Done():
		log.Info().Msg("graceful shutdown initiated")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		err := s.http.Shutdown(shutdownCtx)
		s.closeDependencies()
		return err
	case err := <-errCh:
		s.closeDependencies()
		return err
	}
}

func (s *Server) closeDependencies() {
	if s.db != nil {
		s.db.Close()
	}
	if s.cache != nil {
		if err := s.cache.Close(); err != nil {
			log.Warn().Err(err).Msg("closing redis client")
		}
	}
}
