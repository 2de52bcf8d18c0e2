package utils

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const issuer = "team-manager-system"

// Claims embeds the role and email of the subject so the role gate never
// needs a database round trip.
type Claims struct {
	UserID string `json:"uid"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Type   string `json:"typ"` // "access" or "refresh"
	jwt.RegisteredClaims
}

// TokenPair is the signed credential pair issued on login.
type TokenPair struct {
	Access    string `json:"access"`
	Refresh   string `json:"refresh"`
	ExpiresIn int64  `json:"expires_in"` // access token lifetime in seconds
}

// AccessTokenTTL reads ACCESS_TOKEN_TTL_MINUTES (default 60).
func AccessTokenTTL() time.Duration {
	if v := os.Getenv("ACCESS_TOKEN_TTL_MINUTES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return time.Duration(n) * time.Minute
		}
	}
	return 60 * time.Minute
}

func signToken(secret, userID, email, role, typ string, ttl time.Duration) (string, error) {
	now := time.Now()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID: userID,
		Email:  email,
		Role:   role,
		Type:   typ,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    issuer,
			Subject:   userID,
		},
	})
	return tok.SignedString([]byte(secret))
}

// IssueTokenPair signs an access/refresh pair for the given identity.
func IssueTokenPair(secret, userID, email, role string) (*TokenPair, error) {
	accessTTL := AccessTokenTTL()
	access, err := signToken(secret, userID, email, role, "access", accessTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := signToken(secret, userID, email, role, "refresh", 7*24*time.Hour)
	if err != nil {
		return nil, err
	}
	return &TokenPair{
		Access:    access,
		Refresh:   refresh,
		ExpiresIn: int64(accessTTL.Seconds()),
	}, nil
}

// ParseToken validates the signature and expiry and returns the claims.
func ParseToken(secret, tokenStr string) (*Claims, error) {
	tok, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !tok.Valid {
		return nil, errors.New("invalid token")
	}
	cl, ok := tok.Claims.(*Claims)
	if !ok {
		return nil, errors.New("invalid claims")
	}
	return cl, nil
}
