// Package app wires the relay server: the HTTP surface over the session
// manager and the document cleaner, plus process lifecycle.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/iccaka/LLM-Assistant-Toolkit/internal/cleaner"
	"github.com/iccaka/LLM-Assistant-Toolkit/internal/config"
	"github.com/iccaka/LLM-Assistant-Toolkit/internal/provider"
	"github.com/iccaka/LLM-Assistant-Toolkit/internal/session"
	"github.com/iccaka/LLM-Assistant-Toolkit/internal/tokens"
)

// Server is the relay between clients and the inference backend.
type Server struct {
	cfg      config.Config
	sessions *session.Store
	manager  *session.Manager
	cleaner  *cleaner.Service
	started  time.Time
}

// NewServer builds a relay with its gateway, session store, and cleaner
// wired from config.
func NewServer(cfg config.Config) *Server {
	gateway := provider.NewOllamaProvider(provider.OllamaConfig{
		Endpoint:    cfg.Endpoint,
		HTTPTimeout: cfg.RequestTimeout(),
	}, cfg.Debug)

	counter := tokens.NewEndpointCounter(cfg.Endpoint, cfg.RequestTimeout())
	store := session.NewStore()

	return &Server{
		cfg:      cfg,
		sessions: store,
		manager:  session.NewManager(store, gateway, cfg.ChatModel, cfg.SystemPrompt),
		cleaner:  cleaner.NewService(gateway, counter, cfg.CleanModel, cfg.ContextWindow, cfg.MaxInputTokens()),
		started:  time.Now(),
	}
}

// RunServer starts the relay HTTP server and shuts it down on signal.
func RunServer(cfg config.Config) error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	server := NewServer(cfg)

	httpServer := &http.Server{
		Addr:    cfg.Bind,
		Handler: server.Handler(),
	}

	pidFile := filepath.Join(cfg.DataDir, "relay.pid")
	if err := writePIDFile(pidFile); err != nil {
		slog.Warn("failed to write PID file", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	slog.Info("relay listening", "address", cfg.Bind, "backend", cfg.Endpoint)

	select {
	case err := <-errCh:
		os.Remove(pidFile)
		return fmt.Errorf("relay: listen %s: %w", cfg.Bind, err)
	case <-ctx.Done():
		slog.Info("received signal, shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Warn("drain timeout, forcing shutdown", "error", err)
	}

	os.Remove(pidFile)
	return nil
}
