package names

import (
	"strings"
	"testing"
)

func TestValidUserName(t *testing.T) {
	valid := []string{
		"a",
		"Alice",
		"Jürgen",
		"Straße",
		"Σωκρατης", // Greek, unaccented
		strings.Repeat("a", 16),
		strings.Repeat("ä", 16),
	}
	for _, name := range valid {
		if !ValidUserName(name) {
			t.Errorf("ValidUserName(%q) = false, want true", name)
		}
	}

	invalid := []string{
		"",
		strings.Repeat("a", 17),
		"Alice Smith", // space
		"user1",       // digit
		"a-b",         // punctuation
		"Σωκράτης",    // accented Greek
		"日本",          // outside the alphabet
		"O'Brien",
	}
	for _, name := range invalid {
		if ValidUserName(name) {
			t.Errorf("ValidUserName(%q) = true, want false", name)
		}
	}
}

func TestValidListName(t *testing.T) {
	valid := []string{
		"a",
		"Groceries & stuff 2024!",
		strings.Repeat("x", 32),
		strings.Repeat("ü", 32), // rune count, not byte count
	}
	for _, name := range valid {
		if !ValidListName(name) {
			t.Errorf("ValidListName(%q) = false, want true", name)
		}
	}

	invalid := []string{
		"",
		strings.Repeat("x", 33),
	}
	for _, name := range invalid {
		if ValidListName(name) {
			t.Errorf("ValidListName(%q) = true, want false", name)
		}
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Alice", "alice"},
		{"ALICE", "alice"},
		{"Jürgen", "jurgen"},
		{"Müller", "muller"},
		{"Straße", "strase"},
		{"GRÜSSE", "grusse"},
		{"αβγ", "abg"},
		{"Σωκράτης", "sokraths"},
		{"ΨΥΧΗ", "pyxh"},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeCollisions(t *testing.T) {
	// Pairs that must fold to the same key.
	same := [][2]string{
		{"Alice", "ALICE"},
		{"Jürgen", "Jurgen"},
		{"Straße", "Strase"},
		{"Müller", "MÜLLER"},
	}
	for _, pair := range same {
		if Normalize(pair[0]) != Normalize(pair[1]) {
			t.Errorf("Expected %q and %q to collide: %q vs %q",
				pair[0], pair[1], Normalize(pair[0]), Normalize(pair[1]))
		}
	}

	if Normalize("Alice") == Normalize("Bob") {
		t.Error("Distinct names must not collide")
	}
}
