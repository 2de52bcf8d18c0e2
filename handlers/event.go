package handlers

import (
	"github.com/gofiber/fiber/v2"

	"team-manager-system/middleware"
	"team-manager-system/services"
)

func SetupEventRoutes(app *fiber.App, secret string, eventService *services.EventService) {
	events := app.Group("/events", middleware.AuthMiddleware(secret))

	// Any authenticated role can browse events
	events.Get("/", eventService.ListEndpoint)
	events.Get("/:id", eventService.GetEndpoint)

	// Mutations are admin-only; DELETE cancels, it never removes the row
	events.Post("/", middleware.RequireAdmin(), eventService.CreateEndpoint)
	events.Put("/:id", middleware.RequireAdmin(), eventService.UpdateEndpoint)
	events.Delete("/:id", middleware.RequireAdmin(), eventService.CancelEndpoint)
}
