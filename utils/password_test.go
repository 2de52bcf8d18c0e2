package utils

import "testing"

func TestCheckPasswordStrengthRules(t *testing.T) {
	cases := []struct {
		password string
		wantMsg  string
	}{
		{"short", "Le mot de passe doit contenir au moins 8 caractères."},
		{"alllowercase1!", "Il doit contenir au moins une lettre majuscule."},
		{"ALLUPPERCASE1!", "Il doit contenir au moins une lettre minuscule."},
		{"SansChiffre!", "Il doit contenir au moins un chiffre."},
		{"SansSpecial1", "Il doit contenir au moins un caractère spécial."},
		{"Abcdef1!", ""},
	}

	for _, tc := range cases {
		if got := CheckPasswordStrength(tc.password); got != tc.wantMsg {
			t.Fatalf("password %q: expected %q, got %q", tc.password, tc.wantMsg, got)
		}
	}
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("Abcdef1!")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "Abcdef1!" {
		t.Fatal("hash must not equal the plaintext")
	}
	if !CheckPassword(hash, "Abcdef1!") {
		t.Fatal("expected correct password to verify")
	}
	if CheckPassword(hash, "autre-mdp") {
		t.Fatal("wrong password must not verify")
	}
}
