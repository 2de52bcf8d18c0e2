package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Event types. Every type except Entrainement plays against an opponent.
const (
	EventTraining   = "Entrainement"
	EventMatch      = "Match"
	EventTournament = "Tournoi"
	EventFriendly   = "Amical"
)

// EventTypes lists the accepted event_type values.
var EventTypes = []string{EventTraining, EventMatch, EventTournament, EventFriendly}

func IsValidEventType(t string) bool {
	for _, v := range EventTypes {
		if v == t {
			return true
		}
	}
	return false
}

// Opponent is the structured opposing-team descriptor stored on an event.
type Opponent struct {
	Name string `json:"name"`
	City string `json:"city,omitempty"`
}

func (o Opponent) IsEmpty() bool {
	return strings.TrimSpace(o.Name) == ""
}

// Event is a training, match, tournament or friendly. Cancellation is a flag,
// not a deletion: cancelled events stay queryable for history views.
type Event struct {
	ID          string    `json:"id" gorm:"primaryKey;type:uuid"`
	Title       string    `json:"title" gorm:"not null"`
	EventType   string    `json:"event_type" gorm:"type:varchar(20);not null"`
	DateEvent   time.Time `json:"date_event" gorm:"not null;index"`
	Location    string    `json:"location"`
	Description string    `json:"description" gorm:"type:text"`
	Opponent    Opponent  `json:"opponent" gorm:"serializer:json"`
	IsCancelled bool      `json:"is_cancelled" gorm:"default:false"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (e *Event) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}
