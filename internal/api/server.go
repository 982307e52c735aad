package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/amterp/squares/internal/config"
	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

// Server wraps the HTTP server and the data watcher feeding the WebSocket hub.
type Server struct {
	httpServer *http.Server
	watcher    *DataWatcher
	logger     *log.Logger
}

// NewServer assembles routes and middleware. If dataDir is empty, file
// watching is disabled and the WebSocket endpoint only sends the greeting.
func NewServer(handler *Handler, cfg *config.Config, dataDir string, gatherer prometheus.Gatherer, logger *log.Logger) *Server {
	api := http.NewServeMux()
	handler.RegisterRoutes(api)

	hub := NewHub(cfg.AllowedOrigins, logger)

	// Upgrades hijack the connection, which http.TimeoutHandler does not
	// support, so the socket and metrics live outside the timeout.
	mux := http.NewServeMux()
	mux.Handle("/", Timeout(cfg.RequestTimeout.Duration, api))
	mux.HandleFunc("GET /api/squares/ws", hub.ServeWS)
	if gatherer != nil {
		mux.Handle("GET /metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	var watcher *DataWatcher
	if dataDir != "" {
		var err error
		watcher, err = NewDataWatcher(dataDir, logger)
		if err != nil {
			logger.Warn("File watching disabled", "err", err)
		} else {
			watcher.Subscribe(hub)
		}
	}

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           RequestID(logger, Logging(logger, Cors(cfg.AllowedOrigins, mux))),
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
		},
		watcher: watcher,
		logger:  logger,
	}
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	if s.watcher != nil {
		if err := s.watcher.Start(); err != nil {
			s.logger.Warn("File watching disabled", "err", err)
		}
		defer s.watcher.Stop()
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("Listening", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.logger.Info("Shutting down")
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown failed: %w", err)
		}
		return nil
	})

	return g.Wait()
}
