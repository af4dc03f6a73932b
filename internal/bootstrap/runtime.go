// Package bootstrap wires configuration, stores, services and seed data.
package bootstrap

import (
	"context"
	"fmt"

	"filmorate/internal/cache"
	"filmorate/internal/config"
	"filmorate/internal/observability"
	"filmorate/internal/repository"
	"filmorate/internal/seed"
	"filmorate/internal/service"
)

// Runtime holds the initialized application components.
type Runtime struct {
	FilmService *service.FilmService
	UserService *service.UserService

	shutdownTracing func(context.Context) error
}

// InitRuntime configures logging, tracing and Redis, builds the stores and
// services, and applies any configured seed data.
func InitRuntime(ctx context.Context, cfg *config.Config) (*Runtime, error) {
	observability.Configure(cfg.Env, cfg.LogLevel)

	shutdownTracing, err := observability.InitTracing(cfg.Tracing())
	if err != nil {
		return nil, fmt.Errorf("tracing init failed: %w", err)
	}

	// Init Redis (may result in nil client if unreachable)
	cache.InitRedis(cfg.RedisURL)
	cache.PopularTTL = cfg.PopularTTL()

	// Films and users are numbered independently, both starting at 1.
	userRepo := repository.NewUserRepository(repository.NewSequence())
	filmRepo := repository.NewFilmRepository(repository.NewSequence())

	rt := &Runtime{
		FilmService:     service.NewFilmService(filmRepo, userRepo),
		UserService:     service.NewUserService(userRepo),
		shutdownTracing: shutdownTracing,
	}

	if cfg.SeedFile != "" {
		if _, err := seed.ApplyFile(ctx, rt.FilmService, rt.UserService, cfg.SeedFile); err != nil {
			return nil, fmt.Errorf("failed to apply seed file: %w", err)
		}
	}

	if cfg.SeedDemoUsers > 0 || cfg.SeedDemoFilms > 0 {
		if _, err := seed.NewFactory(0).Demo(ctx, rt.FilmService, rt.UserService, cfg.SeedDemoUsers, cfg.SeedDemoFilms); err != nil {
			return nil, fmt.Errorf("failed to create demo data: %w", err)
		}
	}

	return rt, nil
}

// Shutdown flushes tracing and closes the cache client.
func (r *Runtime) Shutdown(ctx context.Context) error {
	var err error
	if r.shutdownTracing != nil {
		err = r.shutdownTracing(ctx)
	}
	if cerr := cache.Close(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}
