package services

import (
	"errors"
	"testing"

	"team-manager-system/models"
	"team-manager-system/utils"
)

const testSecret = "test-secret"

func TestLoginIssuesTokenPair(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testSecret)
	user := createUser(t, db, "joueur@test.com", models.RolePlayer, true, true)

	result, err := svc.Login("  Joueur@Test.com ", "Abcdef1!")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if result.Access == "" || result.Refresh == "" {
		t.Fatal("expected both tokens")
	}
	if result.ExpiresIn <= 0 {
		t.Fatalf("expected positive expires_in, got %d", result.ExpiresIn)
	}
	if result.ID != user.ID || result.Email != user.Email || result.Role != models.RolePlayer {
		t.Fatalf("unexpected identity in result: %+v", result)
	}

	claims, err := utils.ParseToken(testSecret, result.Access)
	if err != nil {
		t.Fatalf("parse access token: %v", err)
	}
	if claims.Role != models.RolePlayer || claims.Email != user.Email {
		t.Fatalf("claims must embed role and email, got %+v", claims)
	}
	if claims.Type != "access" {
		t.Fatalf("expected access token type, got %q", claims.Type)
	}
}

func TestLoginDoesNotLeakAccountExistence(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testSecret)
	createUser(t, db, "existe@test.com", models.RolePlayer, true, true)

	_, errUnknown := svc.Login("inconnu@test.com", "Abcdef1!")
	_, errWrongPass := svc.Login("existe@test.com", "mauvais-mdp")

	if !errors.Is(errUnknown, models.ErrInvalidCredentials) {
		t.Fatalf("unknown email: expected invalid credentials, got %v", errUnknown)
	}
	if !errors.Is(errWrongPass, models.ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected invalid credentials, got %v", errWrongPass)
	}
	if errUnknown.Error() != errWrongPass.Error() {
		t.Fatalf("messages must be identical: %q vs %q", errUnknown, errWrongPass)
	}
}

func TestLoginRejectsInactiveThenUnapproved(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testSecret)

	createUser(t, db, "inactif@test.com", models.RolePlayer, false, false)
	if _, err := svc.Login("inactif@test.com", "Abcdef1!"); !errors.Is(err, models.ErrAccountNotActive) {
		t.Fatalf("expected account-not-active, got %v", err)
	}

	createUser(t, db, "attente@test.com", models.RolePlayer, true, false)
	_, err := svc.Login("attente@test.com", "Abcdef1!")
	var na *models.NotApprovedError
	if !errors.As(err, &na) {
		t.Fatalf("expected not-approved error, got %v", err)
	}
	if na.Role != models.RolePlayer {
		t.Fatalf("expected player role in message, got %q", na.Role)
	}
}

func TestLoginValidatesFormatBeforeLookup(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testSecret)

	_, err := svc.Login("pas-un-email", "")
	var ve *models.ValidationErrors
	if !errors.As(err, &ve) {
		t.Fatalf("expected aggregated validation errors, got %v", err)
	}
	if len(ve.Fields["email"]) == 0 || len(ve.Fields["password"]) == 0 {
		t.Fatalf("expected email and password violations together, got %v", ve.Fields)
	}
}

func TestRefreshExchangesValidToken(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testSecret)
	createUser(t, db, "joueur@test.com", models.RolePlayer, true, true)

	result, err := svc.Login("joueur@test.com", "Abcdef1!")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	pair, err := svc.Refresh(result.Refresh)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if pair.Access == "" {
		t.Fatal("expected fresh access token")
	}

	// An access token is not a refresh token.
	if _, err := svc.Refresh(result.Access); !errors.Is(err, models.ErrUnauthenticated) {
		t.Fatalf("expected unauthenticated for access token, got %v", err)
	}
}

func TestRefreshRejectsDeactivatedAccount(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testSecret)
	user := createUser(t, db, "joueur@test.com", models.RolePlayer, true, true)

	result, err := svc.Login("joueur@test.com", "Abcdef1!")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	if err := db.Model(&models.User{}).Where("id = ?", user.ID).
		Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	if _, err := svc.Refresh(result.Refresh); !errors.Is(err, models.ErrForbidden) {
		t.Fatalf("expected forbidden after deactivation, got %v", err)
	}
}
