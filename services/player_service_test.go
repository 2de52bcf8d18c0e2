package services

import (
	"errors"
	"testing"

	"team-manager-system/models"
)

func TestGetPlayerByUser(t *testing.T) {
	db := newTestDB(t)
	svc := NewPlayerService(db)

	user := createUser(t, db, "joueur@test.com", models.RolePlayer, true, true)
	player := createPlayer(t, db, user)

	got, err := svc.GetByUser(user.ID)
	if err != nil {
		t.Fatalf("get by user: %v", err)
	}
	if got.ID != player.ID {
		t.Fatalf("expected player %s, got %s", player.ID, got.ID)
	}
	if got.User.Email != user.Email {
		t.Fatalf("owner not preloaded: %+v", got.User)
	}

	if _, err := svc.GetByUser("00000000-0000-0000-0000-000000000000"); !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("expected not found for unknown user, got %v", err)
	}
}

func TestListPlayersPositionFilterIgnoresAccents(t *testing.T) {
	db := newTestDB(t)
	svc := NewPlayerService(db)

	defUser := createUser(t, db, "defenseur@test.com", models.RolePlayer, true, true)
	defenseur := createPlayer(t, db, defUser)
	db.Model(defenseur).Update("position", "Défenseur")

	attUser := createUser(t, db, "attaquant@test.com", models.RolePlayer, true, true)
	attaquant := createPlayer(t, db, attUser)
	db.Model(attaquant).Update("position", "Attaquant")

	all, err := svc.ListAll("")
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 players, got %d", len(all))
	}

	// Unaccented lowercase query must still match the accented label.
	for _, query := range []string{"defenseur", "Défenseur", "DÉFENSEUR"} {
		filtered, err := svc.ListAll(query)
		if err != nil {
			t.Fatalf("list %q: %v", query, err)
		}
		if len(filtered) != 1 || filtered[0].ID != defenseur.ID {
			t.Fatalf("filter %q: expected only the defender, got %d player(s)", query, len(filtered))
		}
	}

	none, err := svc.ListAll("gardien")
	if err != nil {
		t.Fatalf("list gardien: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("expected no goalkeeper, got %d", len(none))
	}
}

func TestMarkPlayersUnavailable(t *testing.T) {
	db := newTestDB(t)
	svc := NewPlayerService(db)

	first := createPlayer(t, db, createUser(t, db, "un@test.com", models.RolePlayer, true, true))
	second := createPlayer(t, db, createUser(t, db, "deux@test.com", models.RolePlayer, true, true))
	third := createPlayer(t, db, createUser(t, db, "trois@test.com", models.RolePlayer, true, true))

	updated, err := svc.MarkUnavailable([]string{first.ID, second.ID})
	if err != nil {
		t.Fatalf("mark unavailable: %v", err)
	}
	if updated != 2 {
		t.Fatalf("expected 2 rows updated, got %d", updated)
	}

	var reloaded models.Player
	if err := db.First(&reloaded, "id = ?", first.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.IsAvailable {
		t.Fatalf("player %s still available", first.ID)
	}
	var untouched models.Player
	if err := db.First(&untouched, "id = ?", third.ID).Error; err != nil {
		t.Fatalf("reload untouched: %v", err)
	}
	if !untouched.IsAvailable {
		t.Fatalf("untouched player %s was flagged", third.ID)
	}

	// Empty selection is a no-op, not an error.
	updated, err = svc.MarkUnavailable(nil)
	if err != nil {
		t.Fatalf("empty selection: %v", err)
	}
	if updated != 0 {
		t.Fatalf("expected 0 rows for empty selection, got %d", updated)
	}
}
