package utils

import (
	"regexp"

	"golang.org/x/crypto/bcrypt"
)

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

var (
	hasUpper   = regexp.MustCompile(`[A-Z]`)
	hasLower   = regexp.MustCompile(`[a-z]`)
	hasDigit   = regexp.MustCompile(`[0-9]`)
	hasSpecial = regexp.MustCompile(`[^\w\s]`)
)

// CheckPasswordStrength applies the five registration rules in order and
// returns the message of the first one that fails, or "" when all pass.
func CheckPasswordStrength(password string) string {
	switch {
	case len(password) < 8:
		return "Le mot de passe doit contenir au moins 8 caractères."
	case !hasUpper.MatchString(password):
		return "Il doit contenir au moins une lettre majuscule."
	case !hasLower.MatchString(password):
		return "Il doit contenir au moins une lettre minuscule."
	case !hasDigit.MatchString(password):
		return "Il doit contenir au moins un chiffre."
	case !hasSpecial.MatchString(password):
		return "Il doit contenir au moins un caractère spécial."
	}
	return ""
}
