// Command server runs the Filmorate HTTP API.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"filmorate/internal/bootstrap"
	"filmorate/internal/config"
	"filmorate/internal/observability"
	"filmorate/internal/server"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		observability.GlobalLogger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	rt, err := bootstrap.InitRuntime(context.Background(), cfg)
	if err != nil {
		observability.GlobalLogger.Error("failed to initialize runtime", "error", err)
		os.Exit(1)
	}

	srv := server.NewServer(cfg, rt.FilmService, rt.UserService)

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		observability.GlobalLogger.Info("shutting down server")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			observability.GlobalLogger.Error("server shutdown error", "error", err)
		}
		if err := rt.Shutdown(ctx); err != nil {
			observability.GlobalLogger.Error("runtime shutdown error", "error", err)
		}
	}()

	if err := srv.Start(); err != nil {
		observability.GlobalLogger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
