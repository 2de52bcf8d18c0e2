package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestIssueAndParseTokenPair(t *testing.T) {
	pair, err := IssueTokenPair("secret", "user-1", "joueur@test.com", "player")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if pair.ExpiresIn != int64(AccessTokenTTL().Seconds()) {
		t.Fatalf("expires_in must surface the access TTL, got %d", pair.ExpiresIn)
	}

	claims, err := ParseToken("secret", pair.Access)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != "user-1" || claims.Email != "joueur@test.com" || claims.Role != "player" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if claims.Type != "access" {
		t.Fatalf("expected access type, got %q", claims.Type)
	}

	refreshClaims, err := ParseToken("secret", pair.Refresh)
	if err != nil {
		t.Fatalf("parse refresh: %v", err)
	}
	if refreshClaims.Type != "refresh" {
		t.Fatalf("expected refresh type, got %q", refreshClaims.Type)
	}
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	pair, err := IssueTokenPair("secret", "user-1", "joueur@test.com", "player")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := ParseToken("autre-secret", pair.Access); err == nil {
		t.Fatal("expected signature verification to fail")
	}
	if _, err := ParseToken("secret", "garbage"); err == nil {
		t.Fatal("expected malformed token to fail")
	}
}

func TestParseTokenRejectsForeignSigningMethod(t *testing.T) {
	// Only HS256 is acceptable, whatever the token header claims.
	tok := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		UserID: "user-1",
		Type:   "access",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := tok.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := ParseToken("secret", signed); err == nil {
		t.Fatal("expected unsigned token to be rejected")
	}
}
