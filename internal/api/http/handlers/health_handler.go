package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/user-service/internal/persistence"
)

const readinessTimeout = 2 * time.Second

type pinger interface {
	Ping(ctx context.Context) error
}

type dependency struct {
	name string
	ping pinger
}

// HealthHandler serves the liveness and readiness probes.
type HealthHandler struct {
	serviceName string
	version     string
	deps        []dependency
}

// NewHealthHandler builds the probes. A nil postgres means users live in memory;
// readiness then reports the database as disabled and only checks Redis.
func NewHealthHandler(serviceName, version string, postgres *persistence.Postgres, redis *persistence.Redis) *HealthHandler {
	deps := []dependency{{name: "redis", ping: redis}}
	if postgres != nil {
		deps = append([]dependency{{name: "postgres", ping: postgres}}, deps...)
	}
	return &HealthHandler{serviceName: serviceName, version: version, deps: deps}
}

func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "alive",
		"service": h.serviceName,
		"version": h.version,
	})
}

// Ready returns 503 with per-dependency detail when any ping fails.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), readinessTimeout)
	defer cancel()

	status := fiber.Map{"postgres": "disabled"}
	ready := true
	for _, dep := range h.deps {
		if err := dep.ping.Ping(ctx); err != nil {
			status[dep.name] = err.Error()
			ready = false
			continue
		}
		status[dep.name] = "ok"
	}

	if !ready {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": fiber.Map{
				"code":    "DEPENDENCY_UNAVAILABLE",
				"message": "user store or cache unavailable",
				"details": status,
			},
		})
	}
	return c.JSON(fiber.Map{"status": "ready", "dependencies": status})
}
