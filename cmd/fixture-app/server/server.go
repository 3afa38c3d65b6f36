// Package server provides an importable stand-in for the Dungeon Master Help
// web application. It serves a small single-page app with the same DOM
// contract as the real frontend (login form, sidebar, campaign dialog) so
// browser tests can run without the real stack. This allows E2E tests to
// programmatically start/stop it without running main().
package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Config holds server configuration options.
type Config struct {
	Addr         string            // Listen address (e.g., ":5173" or ":0" for random port)
	ReadTimeout  time.Duration     // HTTP read timeout
	WriteTimeout time.Duration     // HTTP write timeout
	Locale       string            // Label language, "es" or "en"
	RenderDelay  time.Duration     // Delay before client-side content appears
	Users        map[string]string // username -> password
	Logger       *zap.Logger
}

// DefaultConfig returns a configuration suitable for testing.
// Uses ":0" to bind to a random available port.
func DefaultConfig() Config {
	return Config{
		Addr:         ":0",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		Locale:       "es",
		RenderDelay:  150 * time.Millisecond,
		Users:        map[string]string{"testuser": "testpass"},
	}
}

// Server is an importable HTTP server hosting the fixture app.
type Server struct {
	httpServer *http.Server
	store      *Store
	logger     *zap.Logger
	listener   net.Listener
	addr       string
	mu         sync.Mutex
	running    bool
}

// NewServer creates a new server with the given configuration.
// The server is not started until Start() is called.
func NewServer(cfg Config) (*Server, error) {
	labels, err := LabelsFor(cfg.Locale)
	if err != nil {
		return nil, err
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	store := NewStore(cfg.Users)
	h, err := newHandler(store, labels, cfg.RenderDelay, logger)
	if err != nil {
		return nil, fmt.Errorf("render page: %w", err)
	}

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      h,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return &Server{
		httpServer: httpServer,
		store:      store,
		logger:     logger,
	}, nil
}

// Start begins listening and serving HTTP requests.
// Returns the actual address the server is listening on (useful when port is 0).
// This method is non-blocking - the server runs in a goroutine.
func (s *Server) Start() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return s.addr, nil
	}

	// Create listener to get actual port
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return "", fmt.Errorf("failed to listen: %w", err)
	}

	s.listener = ln
	s.addr = ln.Addr().String()
	s.running = true

	go func() {
		if err := s.httpServer.Serve(ln); err != nil && err != http.ErrServerClosed {
			s.logger.Error("fixture server stopped", zap.Error(err))
		}
	}()

	s.logger.Info("fixture server listening", zap.String("addr", s.addr))
	return s.addr, nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return nil
	}

	s.running = false
	return s.httpServer.Shutdown(ctx)
}

// Addr returns the address the server is listening on.
// Returns empty string if the server was never started.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addr
}

// URL returns the base URL a browser should use. The listener reports
// wildcard hosts such as [::], which Chrome cannot navigate to, so the
// host is always localhost.
func (s *Server) URL() string {
	addr := s.Addr()
	if addr == "" {
		return ""
	}
	_, port, err := net.SplitHostPort(addr)
	if err != nil {
		return ""
	}
	return "http://localhost:" + port
}

// Store returns the server's data store.
func (s *Server) Store() *Store {
	return s.store
}
