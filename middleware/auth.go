package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"team-manager-system/models"
	"team-manager-system/utils"
)

// AuthMiddleware validates the Bearer access token and attaches the subject
// to the request context. It fails closed: no valid subject, no handler.
func AuthMiddleware(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"detail": models.ErrUnauthenticated.Error(),
			})
		}

		token, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"detail": "en-tête Authorization invalide",
			})
		}

		claims, err := utils.ParseToken(secret, token)
		if err != nil || claims.Type != "access" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"detail": "token invalide ou expiré",
			})
		}

		c.Locals("user_id", claims.UserID)
		c.Locals("user_email", claims.Email)
		c.Locals("user_role", claims.Role)
		return c.Next()
	}
}

// RequireAdmin restricts a route to subjects with the admin role.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if role, _ := c.Locals("user_role").(string); role != models.RoleAdmin {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"detail": "accès réservé aux administrateurs",
			})
		}
		return c.Next()
	}
}

// RequirePlayer restricts a route to subjects with the player role.
func RequirePlayer() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if role, _ := c.Locals("user_role").(string); role != models.RolePlayer {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"detail": "accès réservé aux joueurs",
			})
		}
		return c.Next()
	}
}
