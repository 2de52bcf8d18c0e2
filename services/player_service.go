package services

import (
	"errors"
	"path/filepath"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"team-manager-system/models"
	"team-manager-system/utils"
)

type PlayerService struct {
	DB *gorm.DB
}

func NewPlayerService(db *gorm.DB) *PlayerService {
	return &PlayerService{DB: db}
}

// GetByUser returns the player profile owned by userID.
func (s *PlayerService) GetByUser(userID string) (*models.Player, error) {
	var player models.Player
	if err := s.DB.Preload("User").First(&player, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return &player, nil
}

// ListAll returns every player with its user, optionally filtered by
// position. The filter is accent-insensitive ("defenseur" matches
// "Défenseur").
func (s *PlayerService) ListAll(position string) ([]models.Player, error) {
	var players []models.Player
	if err := s.DB.Preload("User").
		Order("team_name, jersey_number").Find(&players).Error; err != nil {
		return nil, err
	}
	if position == "" {
		return players, nil
	}

	key := utils.SearchKey(position)
	filtered := players[:0]
	for _, p := range players {
		if utils.SearchKey(p.Position) == key {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}

// MarkUnavailable flags the given players as absent and returns how many
// rows changed.
func (s *PlayerService) MarkUnavailable(playerIDs []string) (int64, error) {
	if len(playerIDs) == 0 {
		return 0, nil
	}
	res := s.DB.Model(&models.Player{}).
		Where("id IN ?", playerIDs).
		Update("is_available", false)
	return res.RowsAffected, res.Error
}

// --- Fiber endpoints ---

func (s *PlayerService) ProfileEndpoint(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)
	player, err := s.GetByUser(userID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{"detail": "Profil joueur non trouvé."})
		}
		return respondError(c, err)
	}
	return c.JSON(player)
}

// UpdateProfileEndpoint accepts multipart form data so the avatar can ride
// along with the profile fields.
func (s *PlayerService) UpdateProfileEndpoint(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)
	player, err := s.GetByUser(userID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{"detail": "Profil joueur non trouvé."})
		}
		return respondError(c, err)
	}

	if v := c.FormValue("position"); v != "" {
		player.Position = utils.TitleLabel(v)
	}
	if v := c.FormValue("team_name"); v != "" {
		player.TeamName = utils.TitleLabel(v)
	}
	if v := c.FormValue("jersey_number"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return c.Status(400).JSON(fiber.Map{"detail": "jersey_number doit être un entier positif"})
		}
		player.JerseyNumber = &n
	}
	if v := c.FormValue("is_available"); v != "" {
		player.IsAvailable = v == "true" || v == "1"
	}
	if v := c.FormValue("bio"); v != "" {
		player.User.Bio = v
	}

	// Avatar → R2
	if avatar, err := c.FormFile("profile_picture"); err == nil && avatar.Size > 0 {
		if err := utils.ValidateAvatarUpload(avatar); err != nil {
			return c.Status(400).JSON(fiber.Map{"detail": err.Error()})
		}
		ext := filepath.Ext(avatar.Filename)
		if ext == "" {
			ext = ".jpg"
		}
		key := "avatars/" + uuid.NewString() + ext
		url, err := utils.UploadAvatarToR2(avatar, key)
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"detail": "échec du téléversement de la photo"})
		}
		player.User.AvatarURL = url
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(player).Error; err != nil {
			return err
		}
		return tx.Save(&player.User).Error
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(player)
}

func (s *PlayerService) ListEndpoint(c *fiber.Ctx) error {
	players, err := s.ListAll(c.Query("position"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(players)
}

func (s *PlayerService) MarkUnavailableEndpoint(c *fiber.Ctx) error {
	var req struct {
		PlayerIDs []string `json:"player_ids"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"detail": "corps JSON invalide"})
	}

	updated, err := s.MarkUnavailable(req.PlayerIDs)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"updated": updated})
}
