package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"github.com/wrapsell/wrapsell-ledger/internal/config"
	"github.com/wrapsell/wrapsell-ledger/internal/services"
)

const shutdownTimeout = 15 * time.Second

type Server struct {
	httpServer *http.Server
	limiter    *RateLimiter
}

func New(cfg *config.ServerConfig, service *services.Service) *Server {
	h := NewHandlers(service)
	limiter := NewRateLimiter(cfg.RateLimitPerSecond, cfg.RateLimitBurst)

	r := chi.NewRouter()
	r.Use(TraceMiddleware)
	r.Use(LoggingMiddleware)
	r.Use(CorsMiddleware(cfg))
	r.Use(limiter.Handler)
	h.Routes(r)

	return &Server{
		httpServer: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
			Handler:      r,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
			IdleTimeout:  cfg.IdleTimeout,
		},
		limiter: limiter,
	}
}

func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	go s.cleanupLimiters(ctx)

	errCh := make(chan error, 1)
	go func() {
		log.Info().Msgf("Starting API server on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	log.Info().Msg("Shutting down API server")
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down API server: %w", err)
	}
	return nil
}

func (s *Server) cleanupLimiters(ctx context.Context) {
	ticker := time.NewTicker(limiterIdleLifetime)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.limiter.Cleanup(limiterIdleLifetime)
		}
	}
}
