package services

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"team-manager-system/models"
	"team-manager-system/utils"
)

type AuthService struct {
	DB     *gorm.DB
	Secret string
}

func NewAuthService(db *gorm.DB, secret string) *AuthService {
	return &AuthService{DB: db, Secret: secret}
}

// LoginResult is the login response body: the signed pair plus the identity
// claims the frontend needs without decoding the token.
type LoginResult struct {
	Access    string `json:"access"`
	Refresh   string `json:"refresh"`
	ExpiresIn int64  `json:"expires_in"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	ID        string `json:"id"`
}

// Login verifies credentials and issues the token pair. An unknown email and
// a wrong password return the same error so the response never reveals
// whether an account exists. Order: format, credentials, active, approved.
func (s *AuthService) Login(email, password string) (*LoginResult, error) {
	email = utils.NormalizeEmail(email)

	ve := models.NewValidationErrors()
	if email == "" {
		ve.Add("email", "L'email est requis.")
	} else if !utils.IsValidEmail(email) {
		ve.Add("email", "Format d'email invalide.")
	}
	if password == "" {
		ve.Add("password", "Le mot de passe est requis.")
	}
	if err := ve.ErrOrNil(); err != nil {
		return nil, err
	}

	var user models.User
	if err := s.DB.First(&user, "lower(email) = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrInvalidCredentials
		}
		return nil, err
	}
	if !utils.CheckPassword(user.PasswordHash, password) {
		return nil, models.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, models.ErrAccountNotActive
	}
	if !user.IsApproved {
		return nil, &models.NotApprovedError{Role: user.Role}
	}

	pair, err := utils.IssueTokenPair(s.Secret, user.ID, user.Email, user.Role)
	if err != nil {
		return nil, err
	}
	return &LoginResult{
		Access:    pair.Access,
		Refresh:   pair.Refresh,
		ExpiresIn: pair.ExpiresIn,
		Email:     user.Email,
		Role:      user.Role,
		ID:        user.ID,
	}, nil
}

// Refresh exchanges a valid refresh token for a new pair. The account must
// still be active and approved at exchange time.
func (s *AuthService) Refresh(refreshToken string) (*utils.TokenPair, error) {
	claims, err := utils.ParseToken(s.Secret, refreshToken)
	if err != nil || claims.Type != "refresh" {
		return nil, models.ErrUnauthenticated
	}

	var user models.User
	if err := s.DB.First(&user, "id = ?", claims.UserID).Error; err != nil {
		return nil, models.ErrUnauthenticated
	}
	if !user.IsActive || !user.IsApproved {
		return nil, models.ErrForbidden
	}
	return utils.IssueTokenPair(s.Secret, user.ID, user.Email, user.Role)
}

// --- Fiber endpoints ---

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *AuthService) LoginEndpoint(c *fiber.Ctx) error {
	var req credentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"detail": "corps JSON invalide"})
	}

	result, err := s.Login(req.Email, req.Password)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

func (s *AuthService) RefreshEndpoint(c *fiber.Ctx) error {
	var req struct {
		Refresh string `json:"refresh"`
	}
	if err := c.BodyParser(&req); err != nil || req.Refresh == "" {
		return c.Status(400).JSON(fiber.Map{"detail": "refresh token requis"})
	}

	pair, err := s.Refresh(req.Refresh)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(pair)
}

// ValidateEmailEndpoint is the pre-flight check used by the registration
// form: format first, then availability.
func (s *AuthService) ValidateEmailEndpoint(c *fiber.Ctx) error {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "corps JSON invalide"})
	}

	email := utils.NormalizeEmail(req.Email)
	if email == "" {
		return c.Status(400).JSON(fiber.Map{"error": "L'email est requis."})
	}
	if !utils.IsValidEmail(email) {
		return c.Status(400).JSON(fiber.Map{"error": "Format d'email invalide."})
	}

	var count int64
	if err := s.DB.Model(&models.User{}).Where("lower(email) = ?", email).Count(&count).Error; err != nil {
		return respondError(c, err)
	}
	if count > 0 {
		return c.Status(409).JSON(fiber.Map{"error": "Cet email est déjà utilisé."})
	}
	return c.JSON(fiber.Map{"success": "L'email est disponible."})
}

func (s *AuthService) ValidatePasswordEndpoint(c *fiber.Ctx) error {
	var req struct {
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "corps JSON invalide"})
	}

	if strings.TrimSpace(req.Password) == "" {
		return c.Status(400).JSON(fiber.Map{"valid": false, "error": "Le mot de passe est requis."})
	}
	if msg := utils.CheckPasswordStrength(req.Password); msg != "" {
		return c.Status(400).JSON(fiber.Map{"valid": false, "error": msg})
	}
	return c.JSON(fiber.Map{"valid": true, "success": "Mot de passe sécurisé."})
}

// ValidateLoginEndpoint dry-runs the credential check without issuing
// tokens, with the same uniform invalid-credentials message as login.
func (s *AuthService) ValidateLoginEndpoint(c *fiber.Ctx) error {
	var req credentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "corps JSON invalide"})
	}

	email := utils.NormalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Email et mot de passe sont requis."})
	}

	var user models.User
	err := s.DB.First(&user, "lower(email) = ?", email).Error
	if err != nil || !utils.CheckPassword(user.PasswordHash, req.Password) {
		return c.Status(401).JSON(fiber.Map{"error": "Les identifiants sont invalides."})
	}
	if !user.IsActive || !user.IsApproved {
		return c.Status(403).JSON(fiber.Map{"error": "Le compte n'est pas actif ou approuvé."})
	}
	return c.JSON(fiber.Map{"success": "Connexion réussie."})
}
