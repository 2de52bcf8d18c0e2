package utils

import "testing"

func TestTitleLabel(t *testing.T) {
	if got := TitleLabel("  attaquant "); got != "Attaquant" {
		t.Fatalf("expected title case, got %q", got)
	}
	if got := TitleLabel(""); got != "" {
		t.Fatalf("expected empty passthrough, got %q", got)
	}
}

func TestSearchKeyFoldsAccents(t *testing.T) {
	if SearchKey("Défenseur") != SearchKey("defenseur") {
		t.Fatal("accented and plain forms must fold to the same key")
	}
	if got := SearchKey(" Gardien "); got != "gardien" {
		t.Fatalf("expected trimmed lowercase key, got %q", got)
	}
}
