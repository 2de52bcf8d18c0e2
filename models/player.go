package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Player is the 1:1 profile of a user with the player role. It is created
// inside the approval transaction, never directly by the client.
type Player struct {
	ID           string `json:"id" gorm:"primaryKey;type:uuid"`
	UserID       string `json:"user_id" gorm:"uniqueIndex;not null;type:uuid"`
	TeamName     string `json:"team_name" gorm:"default:'FC Québec'"`
	Position     string `json:"position"`
	JerseyNumber *int   `json:"jersey_number,omitempty"`
	IsAvailable  bool   `json:"is_available" gorm:"default:true"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	User User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

func (p *Player) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// BeforeSave rejects profiles attached to non-player accounts.
func (p *Player) BeforeSave(tx *gorm.DB) error {
	var role string
	if err := tx.Model(&User{}).Select("role").Where("id = ?", p.UserID).Scan(&role).Error; err != nil {
		return err
	}
	if role != "" && role != RolePlayer {
		return ErrPlayerRoleRequired
	}
	return nil
}
