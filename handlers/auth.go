package handlers

import (
	"github.com/gofiber/fiber/v2"

	"team-manager-system/middleware"
	"team-manager-system/services"
)

func SetupAuthRoutes(app *fiber.App, secret string, authService *services.AuthService, accountService *services.AccountService) {
	auth := app.Group("/auth")

	// Public
	auth.Post("/register", accountService.RegisterEndpoint)
	auth.Post("/token", authService.LoginEndpoint)
	auth.Post("/refresh", authService.RefreshEndpoint)

	// Pre-flight form validation
	auth.Post("/validate-email", authService.ValidateEmailEndpoint)
	auth.Post("/validate-password", authService.ValidatePasswordEndpoint)
	auth.Post("/validate-login", authService.ValidateLoginEndpoint)

	// Authenticated
	secured := auth.Group("/", middleware.AuthMiddleware(secret))
	secured.Get("/current-user", accountService.CurrentUserEndpoint)
	secured.Put("/current-user", accountService.UpdateCurrentUserEndpoint)
}
