package search

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// minTokenLen is the cutoff below which a token is considered noise for
// synonym matching. Position abbreviations ("av", "g") are shorter and are
// handled separately through the short-token set.
const minTokenLen = 3

var (
	stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	nonToken   = regexp.MustCompile(`[^a-z0-9\s-]`)
	manySpaces = regexp.MustCompile(`\s+`)
)

// Normalize folds text to the canonical query form: lower-case, diacritics
// stripped, anything outside [a-z0-9\s-] replaced by a space, whitespace
// collapsed.
func Normalize(text string) string {
	lower := strings.ToLower(text)

	folded, _, err := transform.String(stripMarks, lower)
	if err != nil {
		// NFD cannot fail on valid UTF-8; keep the lower-cased input if it does.
		folded = lower
	}

	folded = nonToken.ReplaceAllString(folded, " ")
	folded = manySpaces.ReplaceAllString(folded, " ")
	return strings.TrimSpace(folded)
}

// Tokenize splits normalized text and drops tokens shorter than minTokenLen.
// This is the set synonym expansion operates on.
func Tokenize(normalized string) []string {
	var tokens []string
	for _, tok := range strings.Fields(normalized) {
		if len(tok) >= minTokenLen {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

// ShortTokens splits normalized text keeping every token. Position and side
// abbreviations ("av", "ar", "g", "d") only survive here.
func ShortTokens(normalized string) []string {
	return strings.Fields(normalized)
}
