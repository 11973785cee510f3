package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gatepass/gatepass/internal/token"
)

// RegisterTokenRoutes wires the tokens resource, 405 on unmapped methods.
func RegisterTokenRoutes(app *fiber.App, h *token.Handler) {
	app.Post("/tokens", h.Create)
	app.Get("/tokens", h.Get)
	app.Put("/tokens", h.Renew)
	app.Delete("/tokens", h.Delete)
	app.All("/tokens", methodNotAllowed)
}
