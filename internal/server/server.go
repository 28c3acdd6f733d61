// ABOUTME: HTTP server that wires the task store, task operations and front-end together
// ABOUTME: Manages listener setup, graceful shutdown and the store lifecycle

package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"github.com/2389/weekplan/internal/config"
	"github.com/2389/weekplan/internal/store"
	"github.com/2389/weekplan/internal/tasks"
	"github.com/2389/weekplan/internal/webui"
)

// Server serves the task API and, when enabled, the browser front-end.
type Server struct {
	config     *config.Config
	store      store.Store
	tasks      *tasks.Service
	httpServer *http.Server
	logger     *slog.Logger
}

// New opens the configured store, seeds it if enabled and builds the HTTP handler.
func New(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	s, err := initStore(cfg)
	if err != nil {
		return nil, err
	}

	if cfg.Store.SeedEnabled() {
		if err := store.Seed(context.Background(), s); err != nil {
			_ = s.Close()
			return nil, fmt.Errorf("seeding store: %w", err)
		}
	}

	return newServer(cfg, s, logger), nil
}

// initStore creates the store backend named by store.driver.
func initStore(cfg *config.Config) (store.Store, error) {
	switch cfg.Store.Driver {
	case config.DriverSQLite:
		s, err := store.NewSQLiteStore(cfg.Store.Path)
		if err != nil {
			return nil, fmt.Errorf("creating store: %w", err)
		}
		return s, nil
	case config.DriverMemory, "":
		return store.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}

func newServer(cfg *config.Config, s store.Store, logger *slog.Logger) *Server {
	srv := &Server{
		config: cfg,
		store:  s,
		tasks:  tasks.New(s, logger.With("component", "tasks")),
		logger: logger.With("component", "server"),
	}

	mux := http.NewServeMux()
	srv.registerRoutes(mux)

	if cfg.WebUI.IsEnabled() {
		webui.New(srv.tasks, logger.With("component", "webui")).RegisterRoutes(mux)
	}

	srv.httpServer = &http.Server{
		Addr:              cfg.Server.HTTPAddr,
		Handler:           srv.middleware(mux),
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
	}

	return srv
}

// taskPrefixes are the mount points of the task API. /api/tasks is what the
// front-end calls; /tasks serves plain API clients.
var taskPrefixes = []string{"/api/tasks", "/tasks"}

// registerRoutes adds the API, health and catch-all routes to mux.
// The literal statistics segment takes precedence over {id}.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	for _, prefix := range taskPrefixes {
		mux.HandleFunc("GET "+prefix, s.handleListTasks)
		mux.HandleFunc("GET "+prefix+"/statistics", s.handleStatistics)
		mux.HandleFunc("GET "+prefix+"/{id}", s.handleGetTask)
		mux.HandleFunc("POST "+prefix, s.handleCreateTask)
		mux.HandleFunc("PUT "+prefix+"/{id}", s.handleUpdateTask)
		mux.HandleFunc("DELETE "+prefix+"/{id}", s.handleDeleteTask)
	}

	mux.HandleFunc("GET /health", s.handleHealth)

	mux.HandleFunc("/", s.handleNotFound)
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Run listens on server.http_addr and serves until ctx is canceled.
// Returns nil on graceful shutdown, or an error if the server fails.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Server.HTTPAddr)
	if err != nil {
		_ = s.store.Close()
		return fmt.Errorf("listening on HTTP address: %w", err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is canceled, then shuts down.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	errCh := make(chan error, 1)

	go func() {
		s.logger.Info("HTTP server listening", "addr", ln.Addr().String())
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("HTTP server: %w", err)
		}
	}()

	serverErr := s.waitForShutdownSignal(ctx, errCh)
	shutdownErr := s.gracefulShutdown()

	if serverErr != nil {
		return serverErr
	}
	return shutdownErr
}

// waitForShutdownSignal waits for context cancellation or server error.
func (s *Server) waitForShutdownSignal(ctx context.Context, errCh chan error) error {
	select {
	case <-ctx.Done():
		s.logger.Info("context canceled, initiating shutdown")
		return nil
	case err := <-errCh:
		s.logger.Error("server error", "error", err)
		return err
	}
}

// gracefulShutdown uses a fresh context since the serving context is already done.
func (s *Server) gracefulShutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.config.Server.ShutdownTimeout)
	defer cancel()
	return s.Shutdown(ctx)
}

// Shutdown stops the HTTP server and closes the store.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down server")

	var errs []error
	if err := s.httpServer.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("HTTP shutdown: %w", err))
	}
	if err := s.store.Close(); err != nil {
		errs = append(errs, fmt.Errorf("store close: %w", err))
	}
	return errors.Join(errs...)
}

// handleHealth returns 200 OK if the server is alive.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}
