package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleAdmin  = "admin"
	RolePlayer = "player"
)

// User is an authenticated account. Email is the login identifier.
// Accounts register as players (inactive, unapproved) and are unlocked by an
// admin through the approval flow. Admin accounts are created through the
// elevated path only.
type User struct {
	ID           string  `json:"id" gorm:"primaryKey;type:uuid"`
	Email        string  `json:"email" gorm:"uniqueIndex;not null"`
	Username     string  `json:"username" gorm:"uniqueIndex;not null"`
	PasswordHash string  `json:"-" gorm:"not null"`
	Role         string  `json:"role" gorm:"type:varchar(10);default:'player'"`
	FirstName    string  `json:"first_name"`
	LastName     string  `json:"last_name"`
	PhoneNumber  *string `json:"phone_number,omitempty"`
	AvatarURL    string  `json:"profile_picture,omitempty"`
	Bio          string  `json:"bio" gorm:"type:text"`

	IsActive    bool `json:"is_active" gorm:"default:false"`
	IsApproved  bool `json:"is_approved" gorm:"default:false"`
	IsStaff     bool `json:"is_staff" gorm:"default:false"`
	IsSuperuser bool `json:"is_superuser" gorm:"default:false"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	Player *Player `json:"player,omitempty" gorm:"foreignKey:UserID"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// BeforeSave enforces the role invariant: only staff or superuser accounts
// may carry the admin role.
func (u *User) BeforeSave(tx *gorm.DB) error {
	if u.Role == RoleAdmin && !u.IsStaff && !u.IsSuperuser {
		return ErrAdminRequiresStaff
	}
	return nil
}

func (u *User) IsPlayer() bool {
	return u.Role == RolePlayer
}

// IsAdminUser is the single admin-capability predicate: admin role, staff
// flag or superuser flag all grant it.
func (u *User) IsAdminUser() bool {
	return u.Role == RoleAdmin || u.IsStaff || u.IsSuperuser
}

func (u *User) FullName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	case u.LastName != "":
		return u.LastName
	}
	return u.Email
}
