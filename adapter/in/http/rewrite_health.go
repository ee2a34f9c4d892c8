package http

import (
	"time"

	"rewrite_server/core/port/in"

	"github.com/gofiber/fiber/v2"
)

type HealthHandler struct {
	service in.RewriteService
}

func NewHealthHandler(service in.RewriteService) *HealthHandler {
	return &HealthHandler{service: service}
}

func (h *HealthHandler) Register(app fiber.Router) {
	app.Get("/health", h.Health)
	app.Get("/ready", h.Ready)
}

func (h *HealthHandler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// Ready reports 503 until the provider credential is configured. The
// credential itself is never echoed.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	checks := map[string]string{"provider": "configured"}
	status := "ready"
	statusCode := fiber.StatusOK

	if !h.service.Ready() {
		checks["provider"] = "not configured"
		status = "not ready"
		statusCode = fiber.StatusServiceUnavailable
	}

	return c.Status(statusCode).JSON(fiber.Map{
		"status":    status,
		"checks":    checks,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
