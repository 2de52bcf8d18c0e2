package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SeasonStats aggregates one player's counters for one season.
// season_year uses the "2025-2026" form; the (player, season) pair is unique.
type SeasonStats struct {
	ID            string   `json:"id" gorm:"primaryKey;type:uuid"`
	PlayerID      string   `json:"player" gorm:"not null;type:uuid;uniqueIndex:idx_player_season"`
	SeasonYear    string   `json:"season_year" gorm:"type:varchar(9);not null;uniqueIndex:idx_player_season"`
	GamesPlayed   int      `json:"games_played" gorm:"default:0"`
	Goals         int      `json:"goals" gorm:"default:0"`
	Assists       int      `json:"assists" gorm:"default:0"`
	YellowCards   int      `json:"yellow_cards" gorm:"default:0"`
	RedCards      int      `json:"red_cards" gorm:"default:0"`
	AverageRating *float64 `json:"average_rating,omitempty"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	Player Player `json:"-" gorm:"foreignKey:PlayerID"`
}

func (s *SeasonStats) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
