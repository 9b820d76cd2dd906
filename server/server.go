// Package server exposes the vector and triangle engine over HTTP: JSON
// endpoints for resolving, solving and generating, PDF worksheets and SVG
// previews.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/Daniel-dg-conta1/math-Suite/config"
)

// Server is the HTTP API.
type Server struct {
	cfg    *config.AppConfig
	logger *slog.Logger
	app    *fiber.App
}

// New builds the API around cfg. A nil logger discards records.
func New(cfg *config.AppConfig, log *slog.Logger) *Server {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	s := &Server{cfg: cfg, logger: log}
	s.app = fiber.New(fiber.Config{
		AppName:      "mathsuite",
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		BodyLimit:    cfg.Server.BodyLimit,
		ErrorHandler: s.handleError,
	})
	s.routes()
	return s
}

// App returns the underlying fiber application.
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) routes() {
	s.app.Use(recover.New())
	s.app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path} | Content-Type: ${reqHeader:Content-Type}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
		Stream:     slogWriter{s.logger},
	}))

	s.app.Get("/health/live", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "alive"})
	})
	s.app.Get("/health/ready", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ready"})
	})

	api := s.app.Group("/api")
	api.Post("/resolve", s.resolve)
	api.Post("/inverse", s.inverse)
	api.Post("/solve", s.solve)

	api.Post("/exercises/vectors", s.vectorExercises)
	api.Post("/exercises/vectors/regenerate", s.regenerateVector)
	api.Post("/exercises/triangles", s.triangleExercises)
	api.Post("/exercises/triangles/regenerate", s.regenerateTriangle)

	api.Post("/sheets/vectors", s.vectorSheet)
	api.Post("/sheets/triangles", s.triangleSheet)

	api.Post("/preview/vectors", s.previewVectors)
	api.Post("/preview/triangle", s.previewTriangle)
}

// Listen serves on the configured address until Shutdown.
func (s *Server) Listen() error {
	s.logger.Info("starting server", "address", s.cfg.Server.Address)
	return s.app.Listen(s.cfg.Server.Address, fiber.ListenConfig{DisableStartupMessage: true})
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

// handleError renders every error as {"error": message}.
func (s *Server) handleError(c fiber.Ctx, err error) error {
	code := statusFor(err)
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	if code >= http.StatusInternalServerError {
		s.logger.Error("request failed", "method", c.Method(), "path", c.Path(), "error", err)
	}
	return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}

// slogWriter forwards access log lines to the structured logger.
type slogWriter struct {
	logger *slog.Logger
}

func (w slogWriter) Write(p []byte) (int, error) {
	line := p
	if n := len(line); n > 0 && line[n-1] == '\n' {
		line = line[:n-1]
	}
	w.logger.Info(string(line), "component", "http")
	return len(p), nil
}
