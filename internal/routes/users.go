package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gatepass/gatepass/internal/account"
)

// RegisterUserRoutes wires the users resource. The trailing All registration
// catches every method not listed explicitly and answers 405.
func RegisterUserRoutes(app *fiber.App, h *account.Handler) {
	app.Post("/users", h.Create)
	app.Get("/users", h.Get)
	app.Put("/users", h.Update)
	app.Delete("/users", h.Delete)
	app.All("/users", methodNotAllowed)
}
