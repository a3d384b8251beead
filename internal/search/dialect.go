package search

import "strings"

// dialectDictionary maps Tunisian dialect and common slang/typo forms to
// standard French vocabulary. It is the rule-based fallback used when the
// AI-backed normalizer is unavailable; substitution is whole-word only.
var dialectDictionary = map[string]string{
	// vehicle
	"karhba":  "voiture",
	"karahba": "voiture",
	"tomobil": "voiture",

	// parts
	"frinat":     "freins",
	"frina":      "frein",
	"blakat":     "plaquettes",
	"blaket":     "plaquettes",
	"amortisour": "amortisseur",
	"amortisur":  "amortisseur",
	"fanar":      "phare",
	"fanarat":    "phares",
	"mirwa":      "retroviseur",
	"mraya":      "retroviseur",
	"roda":       "roue",
	"rodat":      "roues",
	"dinamou":    "alternateur",
	"batri":      "batterie",
	"zjaj":       "vitre",
	"bartama":    "portiere",
	"kabot":      "capot",
	"felter":     "filtre",
	"bouji":      "bougie",
	"lambat":     "ampoules",

	// qualifiers
	"odem":    "avant",
	"goddem":  "avant",
	"loura":   "arriere",
	"ysar":    "gauche",
	"ymin":    "droite",
	"yeminne": "droite",

	// misc
	"famma":  "il y a",
	"andkom": "vous avez",
	"nheb":   "je veux",
	"bghit":  "je veux",
	"chhal":  "combien",
	"9adech": "combien",
	"kadech": "combien",
}

// NormalizeDialect substitutes whole-word dialect tokens with their standard
// French equivalents. The boolean distinguishes "no dialect detected" from a
// text that normalized to itself: it is true only when at least one token was
// actually rewritten.
func NormalizeDialect(text string) (string, bool) {
	normalized := Normalize(text)
	if normalized == "" {
		return "", false
	}

	matched := false
	tokens := strings.Fields(normalized)
	for i, tok := range tokens {
		if repl, ok := dialectDictionary[tok]; ok {
			tokens[i] = repl
			matched = true
		}
	}
	if !matched {
		return "", false
	}
	return strings.Join(tokens, " "), true
}
