package search

import (
	"regexp"
	"strings"
)

// Reference codes must be at least this long and mix letters with digits,
// otherwise short words ("avant123") would be misread as catalog codes.
const minReferenceLen = 8

// referencePatterns are ordered most to least specific. Detection runs
// against the RAW query, before normalization, because normalization inserts
// spaces where codes carry punctuation.
var referencePatterns = []*regexp.Regexp{
	// whole string is a bare alphanumeric code
	regexp.MustCompile(`^\s*([A-Za-z0-9]{8,})\s*$`),
	// letter prefix with an optional hyphen or slash separator
	regexp.MustCompile(`^\s*([A-Za-z]{1,3}[-/]?[A-Za-z0-9]{5,})\s*$`),
	// same shapes embedded inside a longer sentence
	regexp.MustCompile(`\b([A-Za-z0-9]{8,})\b`),
	regexp.MustCompile(`\b([A-Za-z]{1,3}[-/][A-Za-z0-9]{5,})\b`),
	// the user spelled it out
	regexp.MustCompile(`(?i)r[eé]f[eé]rence\s*:?\s*([A-Za-z0-9/-]+)`),
}

// DetectReference scans the raw query for a catalog reference code. The
// first pattern whose capture mixes letters and digits and reaches the
// minimum length wins; classification then short-circuits to reference
// search regardless of whether the catalog has the code.
func DetectReference(raw string) (string, bool) {
	for _, re := range referencePatterns {
		for _, m := range re.FindAllStringSubmatch(raw, -1) {
			code := strings.Trim(m[1], "-/")
			if isReferenceCode(code) {
				return strings.ToUpper(code), true
			}
		}
	}
	return "", false
}

func isReferenceCode(code string) bool {
	if len(code) < minReferenceLen {
		return false
	}
	hasLetter, hasDigit := false, false
	for _, r := range code {
		switch {
		case r >= '0' && r <= '9':
			hasDigit = true
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
			hasLetter = true
		}
	}
	return hasLetter && hasDigit
}

// Position captures the four spatial requirement flags of a query or the
// spatial markers of a designation.
type Position struct {
	Front bool
	Rear  bool
	Left  bool
	Right bool
}

func (p Position) Any() bool {
	return p.Front || p.Rear || p.Left || p.Right
}

// HasPosition reports a front/rear requirement.
func (p Position) HasPosition() bool { return p.Front || p.Rear }

// HasSide reports a left/right requirement.
func (p Position) HasSide() bool { return p.Left || p.Right }

// Satisfies reports whether a designation's markers (p) honour every
// requirement the query stated (req). Unset requirements are ignored.
func (p Position) Satisfies(req Position) bool {
	if req.Front && !p.Front {
		return false
	}
	if req.Rear && !p.Rear {
		return false
	}
	if req.Left && !p.Left {
		return false
	}
	if req.Right && !p.Right {
		return false
	}
	return true
}

// Merge folds another position's flags into this one.
func (p Position) Merge(other Position) Position {
	return Position{
		Front: p.Front || other.Front,
		Rear:  p.Rear || other.Rear,
		Left:  p.Left || other.Left,
		Right: p.Right || other.Right,
	}
}

// Each qualifier is recognized standalone or adjacent to its counterpart
// ("avant gauche", "gauche avant"), on the short-token-preserving text so
// the abbreviations stay visible. The single-letter side abbreviations
// count only after a position token or at the end of the text: a bare
// mid-sentence "d" is almost always the elided French "de" ("phare
// d'origine"), not a side.
var (
	frontRe = regexp.MustCompile(`(^|\s)(avant|av)((\s+(gauche|droite?|g|d))?(\s|$))`)
	rearRe  = regexp.MustCompile(`(^|\s)(arriere|arr|ar)((\s+(gauche|droite?|g|d))?(\s|$))`)
	leftRe  = regexp.MustCompile(`(^|\s)gauche(\s|$)|(^|\s)(avant|av|arriere|arr|ar)\s+g(\s|$)|\sg\s$`)
	rightRe = regexp.MustCompile(`(^|\s)droite?(\s|$)|(^|\s)(avant|av|arriere|arr|ar)\s+d(\s|$)|\sd\s$`)
)

// DetectPosition extracts position/side requirements from normalized text.
// Callers must pass text that still carries the short abbreviations, not the
// length-filtered token stream.
func DetectPosition(normalized string) Position {
	padded := " " + normalized + " "
	return Position{
		Front: frontRe.MatchString(padded),
		Rear:  rearRe.MatchString(padded),
		Left:  leftRe.MatchString(padded),
		Right: rightRe.MatchString(padded),
	}
}

var positionWords = map[string]struct{}{
	"avant": {}, "av": {}, "arriere": {}, "arr": {}, "ar": {},
	"gauche": {}, "g": {}, "droit": {}, "droite": {}, "d": {},
}

// IsPositionWord reports whether a single normalized token is a bare
// position or side word.
func IsPositionWord(token string) bool {
	_, ok := positionWords[token]
	return ok
}

// StripPositionTokens removes position/side tokens, leaving the part name.
// Used when a clarification answer has to be recombined with the original
// query.
func StripPositionTokens(normalized string) string {
	var kept []string
	for _, tok := range strings.Fields(normalized) {
		if !IsPositionWord(tok) {
			kept = append(kept, tok)
		}
	}
	return strings.Join(kept, " ")
}
