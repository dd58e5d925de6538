package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"modelvault/config"
	"modelvault/handlers"
	"modelvault/load"
)

const shutdownTimeout = 10 * time.Second

// Run loads configuration from envFile and the environment, wires storage
// and registries, and serves HTTP until a shutdown signal arrives.
func Run(envFile string) error {
	ctx, cancel := initContext()
	defer cancel()

	cfg, err := config.Get(envFile)
	if err != nil {
		return err
	}
	setupLogger(cfg.App.LogLevel, cfg.App.LogFormat)

	fileManager, err := NewFileManager(ctx, cfg)
	if err != nil {
		return err
	}

	registries, err := NewRegistries(cfg.Registry)
	if err != nil {
		return err
	}
	defer registries.Close()

	loader := load.Init(fileManager, registries.Projects, registries.Models)
	s := handlers.NewServer(ctx, loader, cfg.App)

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- startHTTPServer(s.HTTPServer)
	}()

	return shutdownServer(s, serveErr)
}

func initContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM, syscall.SIGHUP, syscall.SIGQUIT)
}

func startHTTPServer(server *http.Server) error {
	slog.Info("starting HTTP server", "address", server.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("error starting HTTP server", "error", err)
		return err
	}
	return nil
}

func shutdownServer(s *handlers.Server, serveErr <-chan error) error {
	server := s.HTTPServer

	select {
	case err := <-serveErr:
		return err
	case <-s.Ctx.Done():
		slog.Info("received shutdown signal")
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)

		if err := server.Close(); err != nil {
			slog.Error("forced shutdown failed", "error", err)
			return err
		}
	}

	slog.Info("server shutdown complete")
	return nil
}
