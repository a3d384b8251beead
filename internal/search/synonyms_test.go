package search

import "testing"

func TestCategoryOf(t *testing.T) {
	cases := []struct {
		token string
		want  string
		found bool
	}{
		{"amorto", "amortisseur", true},
		{"amortisseurs", "amortisseur", true},
		{"retro", "retroviseur", true},
		{"garniture", "plaquette", true},
		{"frein", "frein", true},
		{"volant", "", false},
	}
	for _, tc := range cases {
		got, found := CategoryOf(tc.token)
		if found != tc.found || got != tc.want {
			t.Errorf("CategoryOf(%q) = (%q, %v), want (%q, %v)", tc.token, got, found, tc.want, tc.found)
		}
	}
}

func TestDetectPartType(t *testing.T) {
	if got, ok := DetectPartType(Tokenize("je veux des plaquettes")); !ok || got != "plaquette" {
		t.Errorf("got (%q, %v), want (plaquette, true)", got, ok)
	}
	if _, ok := DetectPartType(Tokenize("bonjour monsieur")); ok {
		t.Error("expected no part type in a greeting")
	}
}

func TestExpandTokens(t *testing.T) {
	got := ExpandTokens([]string{"amorto"})
	want := []string{"amorto", "amortisseur", "amortisseurs"}
	if len(got) != len(want) {
		t.Fatalf("ExpandTokens = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ExpandTokens[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestExpandTokensCapsBlowUp(t *testing.T) {
	// Each token may contribute itself, its category and one variant: never
	// more than three terms per input token.
	tokens := []string{"frein", "phare", "vitre"}
	got := ExpandTokens(tokens)
	if len(got) > len(tokens)*3 {
		t.Errorf("expansion of %v produced %d terms: %v", tokens, len(got), got)
	}
}

func TestExpandTokensPassesUnknownThrough(t *testing.T) {
	got := ExpandTokens([]string{"swift", "swift"})
	if len(got) != 1 || got[0] != "swift" {
		t.Errorf("ExpandTokens = %v, want [swift]", got)
	}
}

func TestContainsVariant(t *testing.T) {
	cases := []struct {
		designation string
		category    string
		want        bool
	}{
		{"plaquette de frein av alto", "plaquette", true},
		{"plaquette de frein av alto", "frein", true},
		{"support moteur", "frein", false},
		// word-boundary matching: "feu" inside "parefeu" is not a mention
		{"parefeu moteur", "feu", false},
		{"feu arriere swift", "feu", true},
	}
	for _, tc := range cases {
		if got := ContainsVariant(tc.designation, tc.category); got != tc.want {
			t.Errorf("ContainsVariant(%q, %q) = %v, want %v", tc.designation, tc.category, got, tc.want)
		}
	}
}
