package services

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"team-manager-system/models"
)

// currentUser loads the authenticated subject attached by the auth
// middleware. Missing or stale subjects read as unauthenticated.
func currentUser(db *gorm.DB, c *fiber.Ctx) (*models.User, error) {
	id, _ := c.Locals("user_id").(string)
	if id == "" {
		return nil, models.ErrUnauthenticated
	}
	var user models.User
	if err := db.First(&user, "id = ?", id).Error; err != nil {
		return nil, models.ErrUnauthenticated
	}
	return &user, nil
}
