// Package api exposes the agent's local status endpoints.
package api

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/dbrecon/dbrecon/metrics"
	"github.com/dbrecon/dbrecon/version"
)

// AgentStatus is what the status endpoint reads from the running agent.
type AgentStatus interface {
	Busy() bool
	Counters() metrics.CountersSnapshot
}

// ServerOptions configures the status server.
type ServerOptions struct {
	Port  string
	Agent AgentStatus
}

// Server holds the Fiber app instance.
type Server struct {
	app  *fiber.App
	opts ServerOptions
}

// NewServer initializes the status server with recovery and request logging.
func NewServer(opts ServerOptions) *Server {
	if opts.Port == "" {
		opts.Port = "8488"
	}

	app := fiber.New(fiber.Config{
		IdleTimeout:  10 * time.Second,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	})

	app.Use(recover.New())
	app.Use(logger.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("OK")
	})

	app.Get("/version", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"service": "dbrecon agent",
			"version": version.Version,
			"build":   version.BuildDate,
			"time":    time.Now().UTC().Format(time.RFC3339),
		})
	})

	app.Get("/status", func(c *fiber.Ctx) error {
		if opts.Agent == nil {
			return c.JSON(fiber.Map{"busy": false})
		}
		counters := opts.Agent.Counters()
		return c.JSON(fiber.Map{
			"busy":      opts.Agent.Busy(),
			"processed": counters.Processed,
			"completed": counters.Completed,
			"failed":    counters.Failed,
		})
	})

	return &Server{app: app, opts: opts}
}

// GetApp exposes the underlying Fiber app, mainly for tests.
func (s *Server) GetApp() *fiber.App {
	return s.app
}

// Start runs the server until Shutdown is called.
func (s *Server) Start() error {
	return s.app.Listen(":" + s.opts.Port)
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.app.ShutdownWithContext(ctx)
}
