package services

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"team-manager-system/models"
)

type StatsService struct {
	DB *gorm.DB
}

func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{DB: db}
}

type SeasonStatsInput struct {
	PlayerID      string   `json:"player"`
	SeasonYear    string   `json:"season_year"`
	GamesPlayed   int      `json:"games_played"`
	Goals         int      `json:"goals"`
	Assists       int      `json:"assists"`
	YellowCards   int      `json:"yellow_cards"`
	RedCards      int      `json:"red_cards"`
	AverageRating *float64 `json:"average_rating"`
}

func (in SeasonStatsInput) validate() error {
	ve := models.NewValidationErrors()
	if strings.TrimSpace(in.PlayerID) == "" {
		ve.Add("player", "Le joueur est requis.")
	}
	if strings.TrimSpace(in.SeasonYear) == "" {
		ve.Add("season_year", "La saison est requise.")
	}
	if in.GamesPlayed < 0 || in.Goals < 0 || in.Assists < 0 || in.YellowCards < 0 || in.RedCards < 0 {
		ve.Add("counters", "Les compteurs ne peuvent pas être négatifs.")
	}
	return ve.ErrOrNil()
}

// Create inserts one season line per (player, season_year); a second line
// for the same pair is a conflict.
func (s *StatsService) Create(in SeasonStatsInput) (*models.SeasonStats, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	var player models.Player
	if err := s.DB.First(&player, "id = ?", in.PlayerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}

	var count int64
	if err := s.DB.Model(&models.SeasonStats{}).
		Where("player_id = ? AND season_year = ?", in.PlayerID, in.SeasonYear).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, models.ErrDuplicate
	}

	stats := &models.SeasonStats{
		PlayerID:      in.PlayerID,
		SeasonYear:    in.SeasonYear,
		GamesPlayed:   in.GamesPlayed,
		Goals:         in.Goals,
		Assists:       in.Assists,
		YellowCards:   in.YellowCards,
		RedCards:      in.RedCards,
		AverageRating: in.AverageRating,
	}
	if err := s.DB.Create(stats).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, models.ErrDuplicate
		}
		return nil, err
	}
	return stats, nil
}

func (s *StatsService) Get(id string) (*models.SeasonStats, error) {
	var stats models.SeasonStats
	if err := s.DB.First(&stats, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return &stats, nil
}

// Update rewrites the counters of an existing line. Player and season stay
// fixed once created.
func (s *StatsService) Update(id string, in SeasonStatsInput) (*models.SeasonStats, error) {
	stats, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if in.GamesPlayed < 0 || in.Goals < 0 || in.Assists < 0 || in.YellowCards < 0 || in.RedCards < 0 {
		ve := models.NewValidationErrors()
		ve.Add("counters", "Les compteurs ne peuvent pas être négatifs.")
		return nil, ve
	}

	stats.GamesPlayed = in.GamesPlayed
	stats.Goals = in.Goals
	stats.Assists = in.Assists
	stats.YellowCards = in.YellowCards
	stats.RedCards = in.RedCards
	stats.AverageRating = in.AverageRating
	if err := s.DB.Save(stats).Error; err != nil {
		return nil, err
	}
	return stats, nil
}

func (s *StatsService) List(season string) ([]models.SeasonStats, error) {
	var stats []models.SeasonStats
	q := s.DB.Order("season_year desc")
	if season != "" {
		q = q.Where("season_year = ?", season)
	}
	if err := q.Find(&stats).Error; err != nil {
		return nil, err
	}
	return stats, nil
}

// ListForUser returns the season lines of the player owned by userID.
func (s *StatsService) ListForUser(userID, season string) ([]models.SeasonStats, error) {
	var player models.Player
	if err := s.DB.First(&player, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}

	var stats []models.SeasonStats
	q := s.DB.Where("player_id = ?", player.ID).Order("season_year desc")
	if season != "" {
		q = q.Where("season_year = ?", season)
	}
	if err := q.Find(&stats).Error; err != nil {
		return nil, err
	}
	return stats, nil
}

// --- Fiber endpoints ---

func (s *StatsService) ListEndpoint(c *fiber.Ctx) error {
	stats, err := s.List(c.Query("season"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(stats)
}

func (s *StatsService) CreateEndpoint(c *fiber.Ctx) error {
	var in SeasonStatsInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(400).JSON(fiber.Map{"detail": "corps JSON invalide"})
	}

	stats, err := s.Create(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(201).JSON(stats)
}

func (s *StatsService) GetEndpoint(c *fiber.Ctx) error {
	stats, err := s.Get(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(stats)
}

func (s *StatsService) UpdateEndpoint(c *fiber.Ctx) error {
	var in SeasonStatsInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(400).JSON(fiber.Map{"detail": "corps JSON invalide"})
	}

	stats, err := s.Update(c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(stats)
}

func (s *StatsService) MyStatsEndpoint(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)
	stats, err := s.ListForUser(userID, c.Query("season"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(stats)
}
