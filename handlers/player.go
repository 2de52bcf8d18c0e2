package handlers

import (
	"github.com/gofiber/fiber/v2"

	"team-manager-system/middleware"
	"team-manager-system/services"
)

func SetupPlayerRoutes(
	app *fiber.App,
	secret string,
	playerService *services.PlayerService,
	participationService *services.ParticipationService,
	statsService *services.StatsService,
) {
	player := app.Group("/player", middleware.AuthMiddleware(secret), middleware.RequirePlayer())

	player.Get("/profile", playerService.ProfileEndpoint)
	player.Put("/profile", playerService.UpdateProfileEndpoint)

	player.Get("/my-participations", participationService.MyParticipationsEndpoint)
	player.Patch("/participation/:id", participationService.UpdateEndpoint)

	player.Get("/my-season-stats", statsService.MyStatsEndpoint)
}
