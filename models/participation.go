package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Participation records one player's attendance intent for one event.
// The (player_id, event_id) pair is unique at the database level so that
// concurrent seeding cannot produce duplicates.
type Participation struct {
	ID         string `json:"id" gorm:"primaryKey;type:uuid"`
	PlayerID   string `json:"player" gorm:"not null;type:uuid;uniqueIndex:idx_player_event"`
	EventID    string `json:"event" gorm:"not null;type:uuid;uniqueIndex:idx_player_event"`
	WillAttend bool   `json:"will_attend" gorm:"default:false"`
	Notified   bool   `json:"notified" gorm:"default:false"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	Player Player `json:"-" gorm:"foreignKey:PlayerID"`
	Event  Event  `json:"-" gorm:"foreignKey:EventID"`
}

func (p *Participation) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
