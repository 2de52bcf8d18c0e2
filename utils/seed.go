package utils

import (
	"fmt"
	"log"

	"gorm.io/gorm"

	"team-manager-system/models"
)

var seedPositions = []string{"Attaquant", "Milieu", "Défenseur", "Gardien"}

// SeedPlayers creates n approved, active demo players (joueur1@test.com …),
// one transaction per account, skipping emails that already exist. Dev
// tooling only, guarded by the SEED_PLAYERS env flag in main.
func SeedPlayers(db *gorm.DB, n int) error {
	hash, err := HashPassword("Test1234!")
	if err != nil {
		return err
	}

	for i := 1; i <= n; i++ {
		email := fmt.Sprintf("joueur%d@test.com", i)

		var count int64
		if err := db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			log.Printf("seed: utilisateur déjà existant: %s", email)
			continue
		}

		jersey := i
		err := db.Transaction(func(tx *gorm.DB) error {
			user := &models.User{
				Email:        email,
				Username:     fmt.Sprintf("joueur%d", i),
				PasswordHash: hash,
				Role:         models.RolePlayer,
				IsActive:     true,
				IsApproved:   true,
			}
			if err := tx.Create(user).Error; err != nil {
				return err
			}
			player := &models.Player{
				UserID:       user.ID,
				TeamName:     "FC Québec",
				Position:     seedPositions[(i-1)%len(seedPositions)],
				JerseyNumber: &jersey,
				IsAvailable:  true,
			}
			return tx.Create(player).Error
		})
		if err != nil {
			return err
		}
		log.Printf("seed: joueur créé: %s", email)
	}
	return nil
}
