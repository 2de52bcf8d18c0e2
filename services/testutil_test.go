package services

import (
	"fmt"
	"testing"

	moderncSqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"

	_ "modernc.org/sqlite"

	"team-manager-system/models"
	"team-manager-system/utils"
)

// newTestDB opens an isolated in-memory database per test, migrated with the
// full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(moderncSqlite.New(moderncSqlite.Config{
		DSN:        dsn,
		DriverName: "sqlite",
	}), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	db.Exec("PRAGMA foreign_keys = ON;")

	if err := db.AutoMigrate(
		&models.User{},
		&models.Player{},
		&models.Event{},
		&models.Participation{},
		&models.SeasonStats{},
		&models.AdminReport{},
	); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func createUser(t *testing.T, db *gorm.DB, email, role string, active, approved bool) *models.User {
	t.Helper()

	hash, err := utils.HashPassword("Abcdef1!")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := &models.User{
		Email:        email,
		Username:     utils.EmailLocalPart(email),
		PasswordHash: hash,
		Role:         role,
		IsActive:     active,
		IsApproved:   approved,
		IsStaff:      role == models.RoleAdmin,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user %s: %v", email, err)
	}
	return user
}

func createPlayer(t *testing.T, db *gorm.DB, user *models.User) *models.Player {
	t.Helper()

	player := &models.Player{UserID: user.ID}
	if err := db.Create(player).Error; err != nil {
		t.Fatalf("create player for %s: %v", user.Email, err)
	}
	return player
}

func createEvent(t *testing.T, db *gorm.DB, event *models.Event) *models.Event {
	t.Helper()

	if event.Title == "" {
		event.Title = "Entrainement hebdo"
	}
	if event.EventType == "" {
		event.EventType = models.EventTraining
	}
	if err := db.Create(event).Error; err != nil {
		t.Fatalf("create event: %v", err)
	}
	return event
}
