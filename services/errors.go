package services

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"team-manager-system/models"
)

// statusForError maps the domain error taxonomy onto HTTP status codes.
// Every service endpoint goes through this one mapping.
func statusForError(err error) int {
	var ve *models.ValidationErrors
	var na *models.NotApprovedError
	switch {
	case errors.As(err, &ve):
		return fiber.StatusBadRequest
	case errors.Is(err, models.ErrInvalidEmailFormat),
		errors.Is(err, models.ErrAlreadyActive),
		errors.Is(err, models.ErrAlreadyApproved),
		errors.Is(err, models.ErrAdminRequiresStaff),
		errors.Is(err, models.ErrPlayerRoleRequired):
		return fiber.StatusBadRequest
	case errors.Is(err, models.ErrInvalidCredentials),
		errors.Is(err, models.ErrUnauthenticated):
		return fiber.StatusUnauthorized
	case errors.As(err, &na),
		errors.Is(err, models.ErrAccountNotActive),
		errors.Is(err, models.ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, models.ErrNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, models.ErrEmailTaken),
		errors.Is(err, models.ErrDuplicate),
		errors.Is(err, gorm.ErrDuplicatedKey):
		return fiber.StatusConflict
	}
	return fiber.StatusInternalServerError
}

func respondError(c *fiber.Ctx, err error) error {
	status := statusForError(err)
	if status == fiber.StatusInternalServerError {
		log.Printf("[%s] internal error: %v", c.Path(), err)
		return c.Status(status).JSON(fiber.Map{"detail": "erreur interne"})
	}

	var ve *models.ValidationErrors
	if errors.As(err, &ve) {
		return c.Status(status).JSON(fiber.Map{"errors": ve.Fields})
	}
	return c.Status(status).JSON(fiber.Map{"detail": err.Error()})
}
