package handlers

import (
	"github.com/gofiber/fiber/v2"

	"team-manager-system/middleware"
	"team-manager-system/services"
)

func SetupAdminRoutes(
	app *fiber.App,
	secret string,
	accountService *services.AccountService,
	playerService *services.PlayerService,
	statsService *services.StatsService,
	participationService *services.ParticipationService,
	reportService *services.ReportService,
) {
	admin := app.Group("/admin", middleware.AuthMiddleware(secret), middleware.RequireAdmin())

	// Account approval lifecycle
	admin.Get("/unapproved-users", accountService.UnapprovedUsersEndpoint)
	admin.Get("/approved-users", accountService.ApprovedUsersEndpoint)
	admin.Post("/approve-player/:user_id", accountService.ApproveUserEndpoint)
	admin.Delete("/users/:id", accountService.DeleteUserEndpoint)

	// Players
	admin.Get("/players", playerService.ListEndpoint)
	admin.Post("/players/mark-unavailable", playerService.MarkUnavailableEndpoint)

	// Season stats
	admin.Get("/season-stats", statsService.ListEndpoint)
	admin.Post("/season-stats", statsService.CreateEndpoint)
	admin.Get("/season-stats/:id", statsService.GetEndpoint)
	admin.Put("/season-stats/:id", statsService.UpdateEndpoint)

	// Participations
	admin.Get("/event/:event_id/participations", participationService.ListByEventEndpoint)
	admin.Post("/event/:event_id/notify", participationService.NotifyEndpoint)

	// Reports
	admin.Get("/reports", reportService.ListEndpoint)
	admin.Post("/reports", reportService.CreateEndpoint)
}
