package clarify

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/sandevgo/partsbot/internal/core"
	"github.com/sandevgo/partsbot/internal/search"
)

// followUpRe recognizes the contextual follow-up shape ("et pour
// l'arrière?", "et pour la gauche aussi") that carries the answer inside a
// sentence instead of a bare token.
var followUpRe = regexp.MustCompile(`(^|\s)et\s+pour(\s|$)`)

// Answer is a parsed reply to a pending question.
type Answer struct {
	Qualifier search.Position
	Category  string // set when the pending dimension was "type"
}

// ParseAnswer checks whether a message answers the pending dimension: a
// direct token, a combined "position side" pair, or a contextual "et pour…"
// follow-up. A message that matches nothing is not an answer and must be
// treated as a fresh query.
func ParseAnswer(pc Context, message string) (Answer, bool) {
	normalized := search.Normalize(message)
	if normalized == "" {
		return Answer{}, false
	}

	if pc.Dimension == DimensionType {
		// For a type question the answer is a category name.
		for _, tok := range search.Tokenize(normalized) {
			if category, ok := search.CategoryOf(tok); ok {
				return Answer{Category: category}, true
			}
		}
		return Answer{}, false
	}

	qualifier := search.DetectPosition(normalized)

	switch pc.Dimension {
	case DimensionPosition:
		if qualifier.HasPosition() {
			return Answer{Qualifier: qualifier}, true
		}
	case DimensionSide:
		if qualifier.HasSide() {
			return Answer{Qualifier: qualifier}, true
		}
	}

	// "et pour l'arrière" style follow-ups may answer a side question with a
	// position (or vice versa); accept any qualifier then.
	if followUpRe.MatchString(normalized) && qualifier.Any() {
		return Answer{Qualifier: qualifier}, true
	}

	return Answer{}, false
}

// Refilter narrows the pending candidate set with the answered qualifier:
// a candidate must still mention a token of the original part name (or, for
// a type answer, a variant of the chosen category) AND satisfy the stated
// position/side.
func Refilter(pc Context, ans Answer) []core.Part {
	partName := search.StripPositionTokens(search.Normalize(pc.OriginalQuery))
	nameTokens := search.Tokenize(partName)

	var kept []core.Part
	for _, part := range pc.Candidates {
		designation := search.Normalize(part.Designation)

		if ans.Category != "" {
			// The chosen category replaces the original wording: generic
			// queries ("pièces pour ma Suzuki") share no tokens with any
			// designation.
			if !search.ContainsVariant(designation, ans.Category) {
				continue
			}
		} else if len(nameTokens) > 0 && !containsAnyToken(designation, nameTokens) {
			continue
		}
		if ans.Qualifier.Any() && !search.DetectPosition(designation).Satisfies(ans.Qualifier) {
			continue
		}
		kept = append(kept, part)
	}
	return kept
}

func containsAnyToken(designation string, tokens []string) bool {
	for _, tok := range tokens {
		if strings.Contains(designation, tok) {
			return true
		}
	}
	return false
}

// Question renders the clarification question for an ambiguity. Wording
// lives here so every transport asks the same way.
func Question(partName string, amb Ambiguity) string {
	subject := strings.TrimSpace(partName)
	if subject == "" {
		subject = "cette pièce"
	}

	switch amb.Dimension {
	case DimensionPosition:
		return fmt.Sprintf("Pour %s : avant ou arrière ?", subject)
	case DimensionSide:
		return fmt.Sprintf("Pour %s : côté gauche ou côté droit ?", subject)
	case DimensionType:
		return fmt.Sprintf("Quel type de pièce cherchez-vous ? Par exemple : %s.", strings.Join(amb.Values, ", "))
	}
	return ""
}

func sortedKeys(set map[string]struct{}) []string {
	if len(set) == 0 {
		return nil
	}
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
