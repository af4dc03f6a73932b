package server

import (
	"context"
	"errors"
	"time"

	"filmorate/internal/cache"
	"filmorate/internal/config"
	"filmorate/internal/middleware"
	"filmorate/internal/models"
	"filmorate/internal/observability"
	"filmorate/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus
	filmService    *service.FilmService
	userService    *service.UserService
}

// NewServer creates a new server over the given services.
func NewServer(cfg *config.Config, filmService *service.FilmService, userService *service.UserService) *Server {
	s := &Server{
		config:         cfg,
		promMiddleware: middleware.InitMetrics("filmorate"),
		filmService:    filmService,
		userService:    userService,
	}

	s.app = fiber.New(fiber.Config{
		AppName:      "Filmorate API",
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
		ErrorHandler: s.handleError,
	})
	s.SetupMiddleware(s.app)
	s.SetupRoutes(s.app)
	return s
}

// App returns the configured Fiber application.
func (s *Server) App() *fiber.App {
	return s.app
}

// handleError renders errors that escaped the handlers, such as unknown routes.
func (s *Server) handleError(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code := models.CodeInternal
		switch {
		case fe.Code == fiber.StatusNotFound:
			code = models.CodeNotFound
		case fe.Code < fiber.StatusInternalServerError:
			code = models.CodeValidation
		}
		return models.RespondWithError(c, fe.Code, &models.AppError{Code: code, Message: fe.Message})
	}
	return s.respondError(c, err)
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())

	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))

	app.Use(middleware.TracingMiddleware())

	// Context Middleware to propagate request and trace IDs
	app.Use(middleware.ContextMiddleware())

	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	app.Use(middleware.StructuredLogger())

	app.Use(cors.New(cors.Config{
		AllowOrigins: s.allowedOrigins(),
		AllowHeaders: "Origin, Content-Type, Accept",
		MaxAge:       86400,
	}))

	app.Use(middleware.RateLimit(middleware.RateLimitConfig{
		Client: cache.GetClient(),
		Limit:  s.config.RateLimitPerMinute,
		Window: time.Minute,
		Policy: middleware.FailOpen,
		Env:    s.config.Env,
	}, "api"))
}

func (s *Server) allowedOrigins() string {
	if s.config.AllowedOrigins == "" {
		return "*"
	}
	return s.config.AllowedOrigins
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	app.Get("/healthz", s.HealthCheck)

	films := app.Group("/films")
	films.Post("/", s.CreateFilm)
	films.Put("/", s.UpdateFilm)
	films.Get("/", s.ListFilms)
	// registered before /:id so "popular" is not parsed as an ID
	films.Get("/popular", s.PopularFilms)
	films.Get("/:id", s.GetFilm)
	films.Delete("/:id", s.DeleteFilm)
	films.Put("/:id/like/:userId", s.AddLike)
	films.Delete("/:id/like/:userId", s.RemoveLike)

	users := app.Group("/users")
	users.Post("/", s.CreateUser)
	users.Put("/", s.UpdateUser)
	users.Get("/", s.ListUsers)
	users.Get("/:id", s.GetUser)
	users.Delete("/:id", s.DeleteUser)
	users.Get("/:id/friends", s.GetFriends)
	users.Get("/:id/friends/common/:otherId", s.GetCommonFriends)
	users.Put("/:id/friends/:friendId", s.AddFriend)
	users.Delete("/:id/friends/:friendId", s.RemoveFriend)
}

// HealthCheck handles GET /healthz
func (s *Server) HealthCheck(c *fiber.Ctx) error {
	redisStatus := "disabled"
	if rdb := cache.GetClient(); rdb != nil {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		redisStatus = "healthy"
		if err := rdb.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"checks": fiber.Map{
			"redis": redisStatus,
		},
		"time": time.Now(),
	})
}

// Start starts the server
func (s *Server) Start() error {
	observability.GlobalLogger.Info("server starting", "port", s.config.Port)
	return s.app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.app.ShutdownWithContext(ctx); err != nil {
		observability.GlobalLogger.Error("error shutting down HTTP server", "error", err)
		return err
	}
	observability.GlobalLogger.Info("server shutdown complete")
	return nil
}
