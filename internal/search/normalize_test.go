package search

import (
	"reflect"
	"testing"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"lowercases and strips accents", "Référence N° 12345", "reference n 12345"},
		{"punctuation becomes spaces", "Plaquettes de frein AVANT, Suzuki Swift !", "plaquettes de frein avant suzuki swift"},
		{"apostrophes split words", "phare d'antibrouillard", "phare d antibrouillard"},
		{"hyphens survive", "Référence: GS-31240A", "reference gs-31240a"},
		{"whitespace collapses", "  amortisseur   avant  ", "amortisseur avant"},
		{"empty stays empty", "", ""},
		{"digits survive", "9adech el batri", "9adech el batri"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Normalize(tc.in); got != tc.want {
				t.Errorf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestTokenize(t *testing.T) {
	got := Tokenize("amortisseur av g pour swift")
	want := []string{"amortisseur", "pour", "swift"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokenize = %v, want %v", got, want)
	}

	if toks := Tokenize(""); toks != nil {
		t.Errorf("Tokenize(\"\") = %v, want nil", toks)
	}
}

func TestShortTokensKeepAbbreviations(t *testing.T) {
	got := ShortTokens("amortisseur av g")
	want := []string{"amortisseur", "av", "g"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ShortTokens = %v, want %v", got, want)
	}
}

func TestNormalizeDialect(t *testing.T) {
	cases := []struct {
		name    string
		in      string
		want    string
		matched bool
	}{
		{"parts and filler", "nheb blakat lel karhba", "je veux plaquettes lel voiture", true},
		{"price question", "9adech el amortisour", "combien el amortisseur", true},
		{"qualifier words", "fanar goddem ysar", "phare avant gauche", true},
		{"plain french untouched", "plaquettes avant", "", false},
		{"empty input", "", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, matched := NormalizeDialect(tc.in)
			if matched != tc.matched {
				t.Fatalf("NormalizeDialect(%q) matched = %v, want %v", tc.in, matched, tc.matched)
			}
			if got != tc.want {
				t.Errorf("NormalizeDialect(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestNormalizeDialectWholeWordOnly(t *testing.T) {
	// "roda" must not rewrite inside a longer word.
	if _, matched := NormalizeDialect("rodage moteur"); matched {
		t.Error("expected no dialect match inside a longer word")
	}
}
