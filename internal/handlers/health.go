package handlers

import (
	"github.com/gofiber/fiber/v2"
)

// HealthHandler answers the root and liveness probes. The ping func is
// nil when the server runs on the in-memory store.
type HealthHandler struct {
	ping func() error
}

func NewHealthHandler(ping func() error) *HealthHandler {
	return &HealthHandler{ping: ping}
}

func (h *HealthHandler) Root(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"service": "LocalHub Admin Backend",
		"status":  "running",
	})
}

func (h *HealthHandler) Health(c *fiber.Ctx) error {
	database := "memory"
	if h.ping != nil {
		if err := h.ping(); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status":   "unhealthy",
				"database": "unreachable",
			})
		}
		database = "connected"
	}
	return c.JSON(fiber.Map{
		"status":   "healthy",
		"database": database,
	})
}
