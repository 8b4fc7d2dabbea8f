// Package web serves the task list API, the subscription links and the
// static front end over HTTP.
package web

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/runoshun/task-reminder/internal/domain"
)

// TaskService is the task operations the API needs.
type TaskService interface {
	AddTask(ctx context.Context, name string) (bool, error)
	GetAllTasks(ctx context.Context) []domain.Task
	MarkTaskAsCompleted(ctx context.Context, id string, completed bool) (bool, error)
	DeleteTask(ctx context.Context, id string) (bool, error)
}

// SubscriptionService is the subscription operations the API needs.
type SubscriptionService interface {
	SubscribeEmail(ctx context.Context, email string) (bool, error)
	VerifySubscription(ctx context.Context, email, code string) (bool, error)
	UnsubscribeEmail(ctx context.Context, email string) (bool, error)
}

// Config configures a Server.
type Config struct {
	Tasks         TaskService
	Subscriptions SubscriptionService
	Logger        *slog.Logger // nil = slog.Default()
	StaticDir     string       // Empty disables static file serving
}

// Server is the HTTP front of the application.
type Server struct {
	app      *fiber.App
	handlers *Handlers
	logger   *slog.Logger
}

// NewServer creates a Server with every route registered.
func NewServer(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		handlers: NewHandlers(cfg.Tasks, cfg.Subscriptions, logger),
		logger:   logger,
	}
	s.app = fiber.New(fiber.Config{
		AppName:               "task-reminder",
		DisableStartupMessage: true,
		ErrorHandler:          s.errorHandler,
	})
	s.app.Use(recover.New())
	s.app.Use(s.requestLogger)
	s.registerRoutes(cfg.StaticDir)
	return s
}

// App returns the underlying fiber application.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen serves HTTP on addr until Shutdown is called.
func (s *Server) Listen(addr string) error {
	s.logger.Info("HTTP server started", "addr", addr)
	if err := s.app.Listen(addr); err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.app.ShutdownWithContext(ctx); err != nil {
		return fmt.Errorf("shutdown server: %w", err)
	}
	s.logger.Info("HTTP server stopped")
	return nil
}

// registerRoutes sets up all HTTP routes.
func (s *Server) registerRoutes(staticDir string) {
	s.app.Get("/health", s.handlers.HealthCheck)

	api := s.app.Group("/api")
	api.Get("/tasks", s.handlers.ListTasks)
	api.Post("/tasks", s.handlers.AddTask)
	api.Put("/tasks", s.handlers.UpdateTask)
	api.Delete("/tasks", s.handlers.DeleteTask)
	api.Post("/subscribe", s.handlers.Subscribe)

	s.app.Get(domain.VerifyPath, s.handlers.Verify)
	s.app.Get(domain.UnsubscribePath, s.handlers.Unsubscribe)

	// Static files last so the routes above win.
	if staticDir != "" {
		s.app.Static("/", staticDir, fiber.Static{Index: "index.html"})
	}
}

func (s *Server) requestLogger(c *fiber.Ctx) error {
	err := c.Next()
	s.logger.Debug("request", "method", c.Method(), "path", c.Path(), "status", c.Response().StatusCode())
	return err
}

// errorHandler handles errors globally.
func (s *Server) errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		message = fe.Message
	}
	if code >= fiber.StatusInternalServerError {
		s.logger.Error("HTTP error", "code", code, "path", c.Path(), "error", err)
	}

	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"error":   message,
	})
}
