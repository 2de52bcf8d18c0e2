package utils

import (
	"strings"

	"github.com/gosimple/unidecode"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var frTitle = cases.Title(language.French)

// TitleLabel normalizes free-text labels like positions and team names
// ("attaquant" → "Attaquant").
func TitleLabel(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	return frTitle.String(s)
}

// SearchKey folds accents for case-insensitive lookups ("Défenseur" →
// "defenseur").
func SearchKey(s string) string {
	return strings.ToLower(unidecode.Unidecode(strings.TrimSpace(s)))
}
