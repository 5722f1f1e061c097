// Package server exposes the realtime debate backend over a fiber app
// with a single websocket endpoint.
package server

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/websocket/v2"
)

// New builds the fiber app around the websocket handler.
func New(h *Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "auto-debater",
		DisableStartupMessage: true,
	})
	app.Use(logger.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/ws", h.Middleware, websocket.New(h.Handle))

	return app
}
