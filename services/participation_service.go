package services

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"team-manager-system/models"
)

type ParticipationService struct {
	DB  *gorm.DB
	Now func() time.Time
}

func NewParticipationService(db *gorm.DB) *ParticipationService {
	return &ParticipationService{DB: db, Now: time.Now}
}

// ParticipationView flattens the join row with the names both sides of the
// pair display.
type ParticipationView struct {
	ID         string `json:"id"`
	PlayerID   string `json:"player"`
	PlayerName string `json:"player_name"`
	EventID    string `json:"event"`
	EventTitle string `json:"event_title"`
	WillAttend bool   `json:"will_attend"`
	Notified   bool   `json:"notified"`
}

func toView(p models.Participation) ParticipationView {
	return ParticipationView{
		ID:         p.ID,
		PlayerID:   p.PlayerID,
		PlayerName: p.Player.User.FullName(),
		EventID:    p.EventID,
		EventTitle: p.Event.Title,
		WillAttend: p.WillAttend,
		Notified:   p.Notified,
	}
}

// Create inserts the (player, event) row. A second insert for the same pair
// fails with a conflict; the unique index backs this under concurrency.
func (s *ParticipationService) Create(playerID, eventID string) (*models.Participation, error) {
	var count int64
	if err := s.DB.Model(&models.Participation{}).
		Where("player_id = ? AND event_id = ?", playerID, eventID).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, models.ErrDuplicate
	}

	p := &models.Participation{PlayerID: playerID, EventID: eventID}
	if err := s.DB.Create(p).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, models.ErrDuplicate
		}
		return nil, err
	}
	return p, nil
}

func (s *ParticipationService) ListByEvent(eventID string) ([]ParticipationView, error) {
	var rows []models.Participation
	if err := s.DB.Preload("Player.User").Preload("Event").
		Where("event_id = ?", eventID).Find(&rows).Error; err != nil {
		return nil, err
	}
	views := make([]ParticipationView, 0, len(rows))
	for _, p := range rows {
		views = append(views, toView(p))
	}
	return views, nil
}

// ListForUser returns the participations of the player owned by userID,
// most recent event first.
func (s *ParticipationService) ListForUser(userID string) ([]ParticipationView, error) {
	var player models.Player
	if err := s.DB.First(&player, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}

	var rows []models.Participation
	if err := s.DB.Preload("Player.User").Preload("Event").
		Joins("JOIN events ON events.id = participations.event_id").
		Where("participations.player_id = ?", player.ID).
		Order("events.date_event desc").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	views := make([]ParticipationView, 0, len(rows))
	for _, p := range rows {
		views = append(views, toView(p))
	}
	return views, nil
}

// UpdateWillAttend mutates the attendance intent. A non-admin actor may only
// touch the row whose player is themselves.
func (s *ParticipationService) UpdateWillAttend(id string, actor *models.User, willAttend bool) (*models.Participation, error) {
	if actor == nil {
		return nil, models.ErrUnauthenticated
	}

	var p models.Participation
	if err := s.DB.Preload("Player").First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	if !actor.IsAdminUser() && p.Player.UserID != actor.ID {
		return nil, models.ErrForbidden
	}

	p.WillAttend = willAttend
	if err := s.DB.Save(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// MarkAllNotified sets the one-way notified flag on every participation of
// an event and returns how many rows changed.
func (s *ParticipationService) MarkAllNotified(eventID string) (int64, error) {
	res := s.DB.Model(&models.Participation{}).
		Where("event_id = ? AND notified = ?", eventID, false).
		Update("notified", true)
	return res.RowsAffected, res.Error
}

// SeedUpcoming ensures one participation row per available player per
// upcoming non-cancelled event. FirstOrCreate plus the unique index makes
// the sweep idempotent and race-safe.
func (s *ParticipationService) SeedUpcoming() (int64, error) {
	var events []models.Event
	if err := s.DB.Where("is_cancelled = ? AND date_event >= ?", false, s.Now()).
		Find(&events).Error; err != nil {
		return 0, err
	}

	var players []models.Player
	if err := s.DB.Where("is_available = ?", true).Find(&players).Error; err != nil {
		return 0, err
	}

	var created int64
	for _, e := range events {
		for _, pl := range players {
			var p models.Participation
			res := s.DB.Where(models.Participation{PlayerID: pl.ID, EventID: e.ID}).
				FirstOrCreate(&p)
			if res.Error != nil {
				return created, res.Error
			}
			created += res.RowsAffected
		}
	}
	return created, nil
}

// --- Fiber endpoints ---

func (s *ParticipationService) ListByEventEndpoint(c *fiber.Ctx) error {
	views, err := s.ListByEvent(c.Params("event_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(views)
}

func (s *ParticipationService) MyParticipationsEndpoint(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)
	views, err := s.ListForUser(userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(views)
}

func (s *ParticipationService) UpdateEndpoint(c *fiber.Ctx) error {
	actor, err := currentUser(s.DB, c)
	if err != nil {
		return respondError(c, err)
	}

	var req struct {
		WillAttend *bool `json:"will_attend"`
	}
	if err := c.BodyParser(&req); err != nil || req.WillAttend == nil {
		return c.Status(400).JSON(fiber.Map{"detail": "will_attend est requis"})
	}

	p, err := s.UpdateWillAttend(c.Params("id"), actor, *req.WillAttend)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(p)
}

func (s *ParticipationService) NotifyEndpoint(c *fiber.Ctx) error {
	updated, err := s.MarkAllNotified(c.Params("event_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"notified": updated})
}
