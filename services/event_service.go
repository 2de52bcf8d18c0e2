package services

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"team-manager-system/models"
)

type EventService struct {
	DB *gorm.DB
	// Now is the validation clock, replaceable in tests.
	Now func() time.Time
}

func NewEventService(db *gorm.DB) *EventService {
	return &EventService{DB: db, Now: time.Now}
}

// EventInput carries the mutable fields of an event.
type EventInput struct {
	Title       string          `json:"title"`
	EventType   string          `json:"event_type"`
	DateEvent   time.Time       `json:"date_event"`
	Location    string          `json:"location"`
	Description string          `json:"description"`
	Opponent    models.Opponent `json:"opponent"`
}

// Validate checks every rule and aggregates all violations so the response
// lists each broken field at once.
func (s *EventService) Validate(in EventInput) error {
	ve := models.NewValidationErrors()

	if len(strings.TrimSpace(in.Title)) < 3 {
		ve.Add("title", "Le titre doit contenir au moins 3 caractères.")
	}
	if !models.IsValidEventType(in.EventType) {
		ve.Add("event_type", "Type d'événement invalide.")
	}
	if in.DateEvent.IsZero() {
		ve.Add("date_event", "La date de l'événement est requise.")
	} else if !in.DateEvent.After(s.Now()) {
		ve.Add("date_event", "La date de l'événement doit être dans le futur.")
	}
	if in.EventType != "" && in.EventType != models.EventTraining && in.Opponent.IsEmpty() {
		ve.Add("opponent", "Les événements de type Match, Tournoi ou Amical doivent avoir un adversaire.")
	}

	return ve.ErrOrNil()
}

func (s *EventService) Create(in EventInput) (*models.Event, error) {
	if err := s.Validate(in); err != nil {
		return nil, err
	}
	event := &models.Event{
		Title:       strings.TrimSpace(in.Title),
		EventType:   in.EventType,
		DateEvent:   in.DateEvent,
		Location:    in.Location,
		Description: in.Description,
		Opponent:    in.Opponent,
	}
	if err := s.DB.Create(event).Error; err != nil {
		return nil, err
	}
	return event, nil
}

func (s *EventService) Get(id string) (*models.Event, error) {
	var event models.Event
	if err := s.DB.First(&event, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return &event, nil
}

func (s *EventService) Update(id string, in EventInput) (*models.Event, error) {
	event, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if err := s.Validate(in); err != nil {
		return nil, err
	}

	event.Title = strings.TrimSpace(in.Title)
	event.EventType = in.EventType
	event.DateEvent = in.DateEvent
	event.Location = in.Location
	event.Description = in.Description
	event.Opponent = in.Opponent
	if err := s.DB.Save(event).Error; err != nil {
		return nil, err
	}
	return event, nil
}

// Cancel flips the cancellation flag. Events are never hard-deleted: history
// views still list them.
func (s *EventService) Cancel(id string) (*models.Event, error) {
	event, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	event.IsCancelled = true
	if err := s.DB.Save(event).Error; err != nil {
		return nil, err
	}
	return event, nil
}

// List returns upcoming non-cancelled events; includeAll switches to the
// unfiltered history view.
func (s *EventService) List(includeAll bool) ([]models.Event, error) {
	var events []models.Event
	q := s.DB.Order("date_event desc")
	if !includeAll {
		q = q.Where("is_cancelled = ? AND date_event >= ?", false, s.Now())
	}
	if err := q.Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

// --- Fiber endpoints ---

func (s *EventService) ListEndpoint(c *fiber.Ctx) error {
	includeAll := c.Query("all") == "1"
	if includeAll {
		if role, _ := c.Locals("user_role").(string); role != models.RoleAdmin {
			return c.Status(403).JSON(fiber.Map{"detail": "accès réservé aux administrateurs"})
		}
	}

	events, err := s.List(includeAll)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(events)
}

func (s *EventService) CreateEndpoint(c *fiber.Ctx) error {
	var in EventInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(400).JSON(fiber.Map{"detail": "corps JSON invalide"})
	}

	event, err := s.Create(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(201).JSON(event)
}

func (s *EventService) GetEndpoint(c *fiber.Ctx) error {
	event, err := s.Get(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(event)
}

func (s *EventService) UpdateEndpoint(c *fiber.Ctx) error {
	var in EventInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(400).JSON(fiber.Map{"detail": "corps JSON invalide"})
	}

	event, err := s.Update(c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(event)
}

func (s *EventService) CancelEndpoint(c *fiber.Ctx) error {
	event, err := s.Cancel(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(event)
}
