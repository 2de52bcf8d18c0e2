package services

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"

	"team-manager-system/models"
	"team-manager-system/utils"
)

// usernameAttempts caps the collision loop so it always terminates even on a
// pathological dataset.
const usernameAttempts = 1000

type AccountService struct {
	DB *gorm.DB
}

func NewAccountService(db *gorm.DB) *AccountService {
	return &AccountService{DB: db}
}

// GenerateUsername derives a unique username from the email local-part:
// "joueur", then "joueur1", "joueur2", ... on collision.
func (s *AccountService) GenerateUsername(tx *gorm.DB, email string) (string, error) {
	base := slug.Make(utils.EmailLocalPart(email))
	if base == "" {
		base = "joueur"
	}

	username := base
	for i := 1; i <= usernameAttempts; i++ {
		var count int64
		if err := tx.Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return username, nil
		}
		username = fmt.Sprintf("%s%d", base, i)
	}
	// Collision loop exhausted; a random suffix is always free.
	return fmt.Sprintf("%s-%s", base, uuid.NewString()[:8]), nil
}

// Register creates a player account awaiting approval. Whatever role the
// caller supplied has already been discarded: every registration is a
// player, inactive and unapproved.
func (s *AccountService) Register(email, password string) (*models.User, error) {
	email = utils.NormalizeEmail(email)
	if !utils.IsValidEmail(email) {
		return nil, models.ErrInvalidEmailFormat
	}
	if strings.TrimSpace(password) == "" {
		ve := models.NewValidationErrors()
		ve.Add("password", "Le mot de passe est requis.")
		return nil, ve
	}

	var count int64
	if err := s.DB.Model(&models.User{}).Where("lower(email) = ?", email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, models.ErrEmailTaken
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	var user *models.User
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		username, err := s.GenerateUsername(tx, email)
		if err != nil {
			return err
		}
		user = &models.User{
			Email:        email,
			Username:     username,
			PasswordHash: hash,
			Role:         models.RolePlayer,
			IsActive:     false,
			IsApproved:   false,
		}
		return tx.Create(user).Error
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Approve transitions a pending account to approved+active and, for player
// accounts, ensures exactly one Player profile exists. The whole transition
// runs in one transaction. Check order: active first, then approved.
func (s *AccountService) Approve(targetID string, actor *models.User) (*models.User, error) {
	if actor == nil || !actor.IsAdminUser() {
		return nil, models.ErrForbidden
	}

	var target models.User
	if err := s.DB.First(&target, "id = ?", targetID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	if target.IsActive {
		return nil, models.ErrAlreadyActive
	}
	if target.IsApproved {
		return nil, models.ErrAlreadyApproved
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		target.IsApproved = true
		target.IsActive = true
		if err := tx.Save(&target).Error; err != nil {
			return err
		}
		if target.Role == models.RolePlayer {
			var player models.Player
			return tx.Where(models.Player{UserID: target.ID}).
				FirstOrCreate(&player).Error
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &target, nil
}

// EnsureAdmin creates the bootstrap admin account when it does not exist.
// Admin accounts are born approved, active, staff and superuser.
func (s *AccountService) EnsureAdmin(email, password string) error {
	email = utils.NormalizeEmail(email)
	if !utils.IsValidEmail(email) {
		return models.ErrInvalidEmailFormat
	}

	var count int64
	if err := s.DB.Model(&models.User{}).Where("lower(email) = ?", email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return err
	}
	return s.DB.Transaction(func(tx *gorm.DB) error {
		username, err := s.GenerateUsername(tx, email)
		if err != nil {
			return err
		}
		admin := &models.User{
			Email:        email,
			Username:     username,
			PasswordHash: hash,
			Role:         models.RoleAdmin,
			IsActive:     true,
			IsApproved:   true,
			IsStaff:      true,
			IsSuperuser:  true,
		}
		if err := tx.Create(admin).Error; err != nil {
			return err
		}
		log.Printf("bootstrap admin created: %s", admin.Email)
		return nil
	})
}

// DeleteUser removes an account. Superuser accounts are protected.
func (s *AccountService) DeleteUser(targetID string, actor *models.User) error {
	if actor == nil || !actor.IsAdminUser() {
		return models.ErrForbidden
	}

	var target models.User
	if err := s.DB.First(&target, "id = ?", targetID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ErrNotFound
		}
		return err
	}
	if target.IsSuperuser {
		return models.ErrForbidden
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		var player models.Player
		err := tx.First(&player, "user_id = ?", target.ID).Error
		if err == nil {
			if err := tx.Where("player_id = ?", player.ID).Delete(&models.Participation{}).Error; err != nil {
				return err
			}
			if err := tx.Where("player_id = ?", player.ID).Delete(&models.SeasonStats{}).Error; err != nil {
				return err
			}
			if err := tx.Delete(&player).Error; err != nil {
				return err
			}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return tx.Delete(&target).Error
	})
}

// --- Fiber endpoints ---

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	// Role is accepted on the wire and deliberately ignored: the server
	// assigns the role, never the caller.
	Role string `json:"role"`
}

func (s *AccountService) RegisterEndpoint(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"detail": "corps JSON invalide"})
	}

	user, err := s.Register(req.Email, req.Password)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(201).JSON(fiber.Map{
		"id":          user.ID,
		"email":       user.Email,
		"username":    user.Username,
		"role":        user.Role,
		"is_approved": user.IsApproved,
	})
}

func (s *AccountService) CurrentUserEndpoint(c *fiber.Ctx) error {
	user, err := currentUser(s.DB, c)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

type updateProfileRequest struct {
	FirstName   *string `json:"first_name"`
	LastName    *string `json:"last_name"`
	PhoneNumber *string `json:"phone_number"`
	Bio         *string `json:"bio"`
	Password    *string `json:"password"`
}

func (s *AccountService) UpdateCurrentUserEndpoint(c *fiber.Ctx) error {
	user, err := currentUser(s.DB, c)
	if err != nil {
		return respondError(c, err)
	}

	var req updateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"detail": "corps JSON invalide"})
	}

	if req.FirstName != nil {
		user.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		user.LastName = strings.TrimSpace(*req.LastName)
	}
	if req.PhoneNumber != nil {
		user.PhoneNumber = req.PhoneNumber
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if req.Password != nil && strings.TrimSpace(*req.Password) != "" {
		hash, err := utils.HashPassword(*req.Password)
		if err != nil {
			return respondError(c, err)
		}
		user.PasswordHash = hash
	}

	if err := s.DB.Save(user).Error; err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

func (s *AccountService) UnapprovedUsersEndpoint(c *fiber.Ctx) error {
	var users []models.User
	if err := s.DB.Where("is_approved = ? AND role <> ?", false, models.RoleAdmin).
		Order("email").Find(&users).Error; err != nil {
		return respondError(c, err)
	}
	return c.JSON(users)
}

func (s *AccountService) ApprovedUsersEndpoint(c *fiber.Ctx) error {
	var users []models.User
	if err := s.DB.Where("is_approved = ? AND role <> ?", true, models.RoleAdmin).
		Order("email").Find(&users).Error; err != nil {
		return respondError(c, err)
	}
	return c.JSON(users)
}

func (s *AccountService) ApproveUserEndpoint(c *fiber.Ctx) error {
	actor, err := currentUser(s.DB, c)
	if err != nil {
		return respondError(c, err)
	}

	target, err := s.Approve(c.Params("user_id"), actor)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"detail": fmt.Sprintf("Utilisateur %s approuvé avec succès.", target.Email),
	})
}

func (s *AccountService) DeleteUserEndpoint(c *fiber.Ctx) error {
	actor, err := currentUser(s.DB, c)
	if err != nil {
		return respondError(c, err)
	}

	if err := s.DeleteUser(c.Params("id"), actor); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"detail": "Utilisateur supprimé."})
}
